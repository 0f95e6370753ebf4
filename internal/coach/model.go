package coach

import (
	"time"

	"career-coach/letter/render"
)

// LetterFileName is the download name of every generated letter.
const LetterFileName = "Cover_Letter.docx"

// Settings are the per-run model parameters. They replace any process-wide state.
type Settings struct {
	Model       string  `json:"model" validate:"required,max=200"`
	Temperature float64 `json:"temperature" validate:"gte=0,lte=1"`
	Language    string  `json:"language" validate:"omitempty,max=40"`
}

// Input is one coaching request.
type Input struct {
	ResumeFileName string
	ResumeData     []byte `validate:"required,min=1"`
	JobDescription string `validate:"required"`
	Settings       Settings
}

// LetterDocument is a rendered letter held in memory.
type LetterDocument struct {
	FileName string
	MimeType string
	Data     []byte
}

// Result pairs the analysis and the letter with the run that produced them.
type Result struct {
	RunID       string
	Analysis    string
	Letter      string
	Document    LetterDocument
	ResumeChars int
	Duration    time.Duration
}

func newLetterDocument(data []byte) LetterDocument {
	return LetterDocument{
		FileName: LetterFileName,
		MimeType: render.MimeDOCX,
		Data:     data,
	}
}
