package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one document",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	_, db := openLibrary()
	defer db.Close()

	doc, err := db.GetDocument(args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if doc == nil {
		exitWithError(ExitDataError, "document %q not found", args[0])
	}

	if !humanOutput {
		return outputJSON(doc)
	}

	fmt.Printf("%s\n", doc.ID)
	fmt.Printf("  Title:      %s\n", truncateString(doc.Record.Title, DetailTitleMaxLen))
	fmt.Printf("  Authors:    %s\n", strings.Join(doc.Record.Authors, ", "))
	fmt.Printf("  Year:       %s\n", doc.Record.Year)
	fmt.Printf("  Categories: %s\n", strings.Join(doc.Record.Categories, ", "))
	if len(doc.Record.Keywords) > 0 {
		fmt.Printf("  Keywords:   %s\n", strings.Join(doc.Record.Keywords, ", "))
	}
	if doc.Record.DOI != "" {
		fmt.Printf("  DOI:        %s\n", doc.Record.DOI)
	}
	fmt.Printf("  File:       %s\n", doc.FileName)
	fmt.Printf("  Status:     %s\n", doc.Status)
	if doc.Record.Abstract != "" {
		fmt.Printf("  Abstract:   %s\n", truncateString(doc.Record.Abstract, 200))
	}
	return nil
}
