package main

import (
	"github.com/spf13/cobra"

	"career-coach/internal/shared/config"
)

var (
	cfgModel       string
	cfgTemperature float64
	cfgLanguage    string
	cfgProvider    string
	quiet          bool
)

var rootCmd = &cobra.Command{
	Use:           "coach",
	Short:         "Résumé fit analysis and cover letters from a local model",
	Long:          "coach reads a PDF résumé and a job description, asks a language model for a fit analysis and a cover letter, and writes the letter as a .docx file.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgModel, "model", "m", "", "model identifier (default: LLM_MODEL)")
	rootCmd.PersistentFlags().Float64VarP(&cfgTemperature, "temperature", "t", -1, "sampling temperature in [0,1] (default: LLM_TEMPERATURE)")
	rootCmd.PersistentFlags().StringVar(&cfgLanguage, "language", "", "language of the analysis and letter (default: LETTER_LANGUAGE)")
	rootCmd.PersistentFlags().StringVar(&cfgProvider, "provider", "", "ollama or openai (default: LLM_PROVIDER)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "do not stream model output to the terminal")
}

// loadConfig reads the environment and applies command-line overrides.
func loadConfig() config.Config {
	cfg := config.Load()
	if cfgModel != "" {
		cfg.LLMModel = cfgModel
	}
	if cfgTemperature >= 0 {
		cfg.LLMTemperature = cfgTemperature
	}
	if cfgLanguage != "" {
		cfg.LetterLanguage = cfgLanguage
	}
	if cfgProvider != "" && cfgProvider != cfg.LLMProvider {
		cfg = cfg.WithProvider(cfgProvider)
	}
	if quiet {
		cfg.StreamConsole = false
	}
	return cfg
}
