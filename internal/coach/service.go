package coach

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"career-coach/internal/extract"
	"career-coach/internal/llm"
	"career-coach/internal/shared/metrics"
	"career-coach/internal/shared/telemetry"
	"career-coach/internal/shared/util"
	"career-coach/letter/render"
)

// Service runs the coaching pipeline: extract, analyze, write the letter, render it.
type Service struct {
	Factory  llm.Factory
	Defaults Settings
	// Title heads every rendered letter; render.DefaultTitle when empty.
	Title string
	// Sinks observe model output of every run.
	Sinks []llm.TokenSink
	// Progress receives stage banners for the operator; nil disables them.
	Progress io.Writer
}

// NewService constructs a Service.
func NewService(factory llm.Factory, defaults Settings) *Service {
	return &Service{Factory: factory, Defaults: defaults}
}

// Run executes one coaching run. Stages run strictly in order and a failing stage stops the
// run: the error is a *StageError and any output of earlier stages is discarded.
func (s *Service) Run(ctx context.Context, in Input) (Result, error) {
	start := time.Now()
	runID := uuid.NewString()

	in = s.withDefaults(in)
	if err := validateStruct(in); err != nil {
		metrics.IncRun("invalid")
		return Result{}, err
	}

	fields := map[string]any{
		"run_id":      runID,
		"model":       in.Settings.Model,
		"temperature": in.Settings.Temperature,
		"language":    in.Settings.Language,
		"resume_file": in.ResumeFileName,
		"resume_hash": util.Fingerprint(in.ResumeData),
	}
	telemetry.Info("run.start", fields)

	result, err := s.run(ctx, runID, in)
	fields["duration_ms"] = time.Since(start).Milliseconds()
	if err != nil {
		fields["error"] = err
		if stage, ok := StageOf(err); ok {
			fields["stage"] = string(stage)
		}
		telemetry.Error("run.failed", fields)
		metrics.IncRun("failed")
		s.progressf("\n[%s] failed: %v\n", shortID(runID), err)
		return Result{}, err
	}

	result.Duration = time.Since(start)
	telemetry.Info("run.complete", fields)
	metrics.IncRun("ok")
	s.progressf("\n[%s] done in %s\n", shortID(runID), result.Duration.Round(time.Millisecond))
	return result, nil
}

func (s *Service) run(ctx context.Context, runID string, in Input) (Result, error) {
	var resumeText string
	if err := s.stage(runID, StageExtract, func() (int, error) {
		text, err := extract.ExtractTextFromBytes(ctx, in.ResumeData, in.ResumeFileName)
		resumeText = text
		return len(text), err
	}); err != nil {
		return Result{}, err
	}

	client, err := s.Factory(llm.Options{
		Model:       in.Settings.Model,
		Temperature: in.Settings.Temperature,
		Sinks:       s.Sinks,
	})
	if err != nil {
		return Result{}, &StageError{Stage: StageAnalyze, Err: err}
	}

	analysis, err := s.generate(ctx, runID, StageAnalyze, client, llm.PromptAnalysis, in, resumeText)
	if err != nil {
		return Result{}, err
	}
	letter, err := s.generate(ctx, runID, StageLetter, client, llm.PromptCoverLetter, in, resumeText)
	if err != nil {
		return Result{}, err
	}

	var data []byte
	if err := s.stage(runID, StageDocument, func() (int, error) {
		rendered, err := render.RenderLetter(s.Title, letter)
		data = rendered
		return len(rendered), err
	}); err != nil {
		return Result{}, err
	}

	return Result{
		RunID:       runID,
		Analysis:    analysis,
		Letter:      letter,
		Document:    newLetterDocument(data),
		ResumeChars: len([]rune(resumeText)),
	}, nil
}

func (s *Service) generate(ctx context.Context, runID string, stage Stage, client llm.Client, kind llm.PromptKind, in Input, resumeText string) (string, error) {
	var out string
	err := s.stage(runID, stage, func() (int, error) {
		prompt, err := llm.NewPromptRequest(kind, in.JobDescription, resumeText).
			WithLanguage(in.Settings.Language).
			Build()
		if err != nil {
			return 0, err
		}
		text, err := client.Complete(ctx, prompt)
		if err != nil {
			return 0, err
		}
		if strings.TrimSpace(text) == "" {
			return 0, fmt.Errorf("%w: %w", llm.ErrModel, llm.ErrEmptyResponse)
		}
		out = text
		return len(text), nil
	})
	return out, err
}

// stage times fn, records it, and tags its error with the stage.
func (s *Service) stage(runID string, stage Stage, fn func() (int, error)) error {
	s.progressf("\n[%s] %s...\n", shortID(runID), stage)
	started := time.Now()
	size, err := fn()
	elapsed := time.Since(started)
	metrics.ObserveStage(string(stage), elapsed)

	fields := map[string]any{
		"run_id":      runID,
		"stage":       string(stage),
		"duration_ms": elapsed.Milliseconds(),
	}
	if err != nil {
		metrics.IncStageFailure(string(stage))
		fields["error"] = err
		telemetry.Warn("stage.failed", fields)
		return &StageError{Stage: stage, Err: err}
	}
	fields["output_size"] = size
	telemetry.Info("stage.complete", fields)
	return nil
}

// RenderLetter renders an edited letter text into a document.
func (s *Service) RenderLetter(title, text string) (LetterDocument, error) {
	if strings.TrimSpace(text) == "" {
		return LetterDocument{}, fmt.Errorf("%w: letter text is required", ErrInvalidInput)
	}
	if strings.TrimSpace(title) == "" {
		title = s.Title
	}
	data, err := render.RenderLetter(title, text)
	if err != nil {
		return LetterDocument{}, &StageError{Stage: StageDocument, Err: err}
	}
	return newLetterDocument(data), nil
}

func (s *Service) withDefaults(in Input) Input {
	in.JobDescription = strings.TrimSpace(in.JobDescription)
	in.Settings.Model = strings.TrimSpace(in.Settings.Model)
	in.Settings.Language = strings.TrimSpace(in.Settings.Language)
	if in.Settings.Model == "" {
		in.Settings.Model = s.Defaults.Model
	}
	if in.Settings.Language == "" {
		in.Settings.Language = s.Defaults.Language
	}
	if in.Settings.Language == "" {
		in.Settings.Language = llm.DefaultLanguage
	}
	return in
}

func (s *Service) progressf(format string, args ...any) {
	if s.Progress == nil {
		return
	}
	fmt.Fprintf(s.Progress, format, args...)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
