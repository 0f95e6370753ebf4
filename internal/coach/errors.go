package coach

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Stage names one step of a coaching run.
type Stage string

const (
	StageExtract  Stage = "extract"
	StageAnalyze  Stage = "analyze"
	StageLetter   Stage = "letter"
	StageDocument Stage = "document"
)

// StageError tags a run failure with the stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf reports the failing stage carried by err, if any.
func StageOf(err error) (Stage, bool) {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage, true
	}
	return "", false
}
