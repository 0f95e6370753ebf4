package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"career-coach/internal/bootstrap"
	"career-coach/internal/coach"
)

var (
	runResumePath   string
	runJobPath      string
	runOutPath      string
	runAnalysisPath string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Analyze a résumé against a job and write a cover letter",
	Long:  "Runs extract, analyze, letter and document in order. Model output streams to the terminal; the letter is written as a .docx file.",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runResumePath, "resume", "", "path to the résumé (pdf or docx)")
	runCmd.Flags().StringVar(&runJobPath, "job", "", "path to a text file with the job description, or - for stdin")
	runCmd.Flags().StringVarP(&runOutPath, "out", "o", coach.LetterFileName, "where to write the letter document")
	runCmd.Flags().StringVar(&runAnalysisPath, "analysis-out", "", "optional path for the Markdown analysis")
	_ = runCmd.MarkFlagRequired("resume")
	_ = runCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	resume, err := os.ReadFile(runResumePath)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}
	job, err := readJob(cmd, runJobPath)
	if err != nil {
		return err
	}

	factory, err := bootstrap.NewFactory(cfg)
	if err != nil {
		return err
	}
	svc := bootstrap.NewCoachService(cfg, factory, cmd.OutOrStdout())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := svc.Run(ctx, coach.Input{
		ResumeFileName: filepath.Base(runResumePath),
		ResumeData:     resume,
		JobDescription: job,
		Settings:       bootstrap.DefaultSettings(cfg),
	})
	if err != nil {
		if stage, ok := coach.StageOf(err); ok {
			return fmt.Errorf("%s failed: %w", stage, err)
		}
		return err
	}

	if err := os.WriteFile(runOutPath, res.Document.Data, 0o644); err != nil {
		return fmt.Errorf("write letter: %w", err)
	}
	if runAnalysisPath != "" {
		if err := os.WriteFile(runAnalysisPath, []byte(res.Analysis), 0o644); err != nil {
			return fmt.Errorf("write analysis: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if !cfg.StreamConsole {
		fmt.Fprintf(out, "%s\n\n%s\n", res.Analysis, res.Letter)
	}
	fmt.Fprintf(out, "\nletter written to %s (run %s, %d résumé characters)\n", runOutPath, res.RunID, res.ResumeChars)
	return nil
}

func readJob(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read job description: %w", err)
	}
	job := strings.TrimSpace(string(data))
	if job == "" {
		return "", fmt.Errorf("job description is empty")
	}
	return job, nil
}
