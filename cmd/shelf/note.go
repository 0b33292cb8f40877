package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tkorva/papershelf/internal/metadata"
)

var (
	noteType    string
	noteTarget  string
	noteTitle   string
	noteContent string
	noteFilter  string
)

func init() {
	noteAddCmd.Flags().StringVar(&noteType, "type", "general", "Note type: general, category, or article")
	noteAddCmd.Flags().StringVar(&noteTarget, "target", "", "Category name (category notes) or document ID (article notes)")
	noteAddCmd.Flags().StringVar(&noteTitle, "title", "", "Note title")
	noteAddCmd.Flags().StringVar(&noteContent, "content", "", "Note content")
	noteAddCmd.MarkFlagRequired("title")

	noteEditCmd.Flags().StringVar(&noteTitle, "title", "", "New note title")
	noteEditCmd.Flags().StringVar(&noteContent, "content", "", "New note content")

	noteListCmd.Flags().StringVar(&noteFilter, "type", "", "Only list notes of this type")

	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteEditCmd)
	noteCmd.AddCommand(noteRmCmd)
	rootCmd.AddCommand(noteCmd)
}

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes on the library, categories, and documents",
}

var noteAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a note",
	Long: `Create a note.

Examples:
  shelf note add --title "Reading plan" --content "Start with surveys"
  shelf note add --type category --target "AI" --title "Field overview"
  shelf note add --type article --target smith2020deep --title "Methods"`,
	RunE: runNoteAdd,
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	_, db := openLibrary()
	defer db.Close()

	t := metadata.NoteType(noteType)
	if !metadata.ValidNoteType(t) {
		exitWithError(ExitDataError, "invalid note type: %q (valid: general, category, article)", noteType)
	}
	if t != metadata.NoteGeneral && noteTarget == "" {
		exitWithError(ExitDataError, "--target is required for %s notes", t)
	}
	if t == metadata.NoteArticle {
		doc, err := db.GetDocument(noteTarget)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if doc == nil {
			exitWithError(ExitDataError, "document %q not found", noteTarget)
		}
	}

	note := metadata.Note{
		ID:        uuid.NewString(),
		Title:     noteTitle,
		Content:   noteContent,
		Type:      t,
		TargetID:  noteTarget,
		CreatedAt: time.Now(),
	}
	if t == metadata.NoteGeneral {
		note.TargetID = ""
	}

	if err := db.PutNote(note); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Created %s note %s\n", note.Type, note.ID)
	} else {
		outputJSON(note)
	}
	return nil
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	RunE:  runNoteList,
}

func runNoteList(cmd *cobra.Command, args []string) error {
	_, db := openLibrary()
	defer db.Close()

	notes, err := db.ListNotes()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if noteFilter != "" {
		var filtered []metadata.Note
		for _, n := range notes {
			if n.Type == metadata.NoteType(noteFilter) {
				filtered = append(filtered, n)
			}
		}
		notes = filtered
	}

	if !humanOutput {
		return outputJSON(notes)
	}

	for _, n := range notes {
		target := ""
		if n.TargetID != "" {
			target = " -> " + n.TargetID
		}
		fmt.Printf("%s  [%s]%s %s\n", n.ID, n.Type, target, truncateString(n.Title, ListTitleMaxLen))
	}
	fmt.Printf("%d note(s)\n", len(notes))
	return nil
}

var noteEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a note's title or content",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteEdit,
}

func runNoteEdit(cmd *cobra.Command, args []string) error {
	_, db := openLibrary()
	defer db.Close()

	note, err := db.GetNote(args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if note == nil {
		exitWithError(ExitDataError, "note %q not found", args[0])
	}

	// Whole-value update: read, modify, write back.
	if cmd.Flags().Changed("title") {
		note.Title = noteTitle
	}
	if cmd.Flags().Changed("content") {
		note.Content = noteContent
	}

	if err := db.PutNote(*note); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Updated note %s\n", note.ID)
	} else {
		outputJSON(note)
	}
	return nil
}

var noteRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteRm,
}

func runNoteRm(cmd *cobra.Command, args []string) error {
	_, db := openLibrary()
	defer db.Close()

	if err := db.DeleteNote(args[0]); err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Deleted note %s\n", args[0])
	} else {
		outputJSON(StatusResponse{Status: "deleted", Path: args[0]})
	}
	return nil
}
