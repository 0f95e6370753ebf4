package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"career-coach/internal/bootstrap"
	"career-coach/internal/coach"
)

var (
	letterInPath  string
	letterOutPath string
	letterTitle   string
)

var letterCmd = &cobra.Command{
	Use:   "letter",
	Short: "Render an edited letter text as a .docx file",
	RunE:  runLetter,
}

func init() {
	letterCmd.Flags().StringVarP(&letterInPath, "in", "i", "-", "letter text file, or - for stdin")
	letterCmd.Flags().StringVarP(&letterOutPath, "out", "o", coach.LetterFileName, "where to write the document")
	letterCmd.Flags().StringVar(&letterTitle, "title", "", "heading of the document (default: LETTER_TITLE)")
	rootCmd.AddCommand(letterCmd)
}

func runLetter(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	var (
		text []byte
		err  error
	)
	if letterInPath == "-" {
		text, err = io.ReadAll(cmd.InOrStdin())
	} else {
		text, err = os.ReadFile(letterInPath)
	}
	if err != nil {
		return fmt.Errorf("read letter: %w", err)
	}

	svc := coach.NewService(nil, bootstrap.DefaultSettings(cfg))
	svc.Title = cfg.LetterTitle
	doc, err := svc.RenderLetter(letterTitle, string(text))
	if err != nil {
		return err
	}
	if err := os.WriteFile(letterOutPath, doc.Data, 0o644); err != nil {
		return fmt.Errorf("write letter: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "letter written to %s\n", letterOutPath)
	return nil
}
