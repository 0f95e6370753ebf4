package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"career-coach/letter/render"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE.docx",
	Short: "Print the paragraphs of a letter document",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	paragraphs, err := render.Paragraphs(data)
	if err != nil {
		return err
	}
	printParagraphs(cmd.OutOrStdout(), paragraphs)
	return nil
}

func printParagraphs(w io.Writer, paragraphs []render.Paragraph) {
	for i, p := range paragraphs {
		style := p.Style
		if style == "" {
			style = "-"
		}
		fmt.Fprintf(w, "%3d  %-8s %s\n", i+1, style, p.Text)
	}
	fmt.Fprintf(w, "%d paragraphs\n", len(paragraphs))
}
