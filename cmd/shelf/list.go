package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(rmCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all documents in the library",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	_, db := openLibrary()
	defer db.Close()

	docs, err := db.ListDocuments()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if !humanOutput {
		return outputJSON(docs)
	}

	for _, doc := range docs {
		marker := " "
		if doc.Status != "ok" {
			marker = "!"
		}
		fmt.Printf("%s %-24s %s (%s)\n", marker, doc.ID,
			truncateString(doc.Record.Title, ListTitleMaxLen),
			formatAuthorsShort(doc.Record.Authors, 3))
	}
	fmt.Printf("%d document(s)\n", len(docs))
	return nil
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a document from the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
	_, db := openLibrary()
	defer db.Close()

	if err := db.DeleteDocument(args[0]); err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Removed %s\n", args[0])
	} else {
		outputJSON(StatusResponse{Status: "removed", Path: args[0]})
	}
	return nil
}
