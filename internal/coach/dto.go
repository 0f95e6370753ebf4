package coach

// LetterDocumentResponse is the JSON form of a rendered letter; Data is base64 encoded.
type LetterDocumentResponse struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

// CoachResponse is the outward-facing representation of a completed run.
type CoachResponse struct {
	RunID          string                 `json:"runId"`
	Analysis       string                 `json:"analysis"`
	Letter         string                 `json:"letter"`
	LetterDocument LetterDocumentResponse `json:"letterDocument"`
	ResumeChars    int                    `json:"resumeChars"`
	DurationMs     int64                  `json:"durationMs"`
}

// SettingsResponse exposes the defaults applied when a request leaves a setting out.
type SettingsResponse struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	Language    string  `json:"language"`
	LetterTitle string  `json:"letterTitle"`
}

type renderLetterRequest struct {
	Text  string `json:"text" binding:"required"`
	Title string `json:"title"`
}

func toResponse(res Result) CoachResponse {
	return CoachResponse{
		RunID:    res.RunID,
		Analysis: res.Analysis,
		Letter:   res.Letter,
		LetterDocument: LetterDocumentResponse{
			FileName: res.Document.FileName,
			MimeType: res.Document.MimeType,
			Data:     res.Document.Data,
		},
		ResumeChars: res.ResumeChars,
		DurationMs:  res.Duration.Milliseconds(),
	}
}
