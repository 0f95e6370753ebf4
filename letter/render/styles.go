package render

// RunStyle captures the run formatting applied to a paragraph style.
type RunStyle struct {
	Bold   bool
	Italic bool
	Size   int
	Color  string
}

const (
	TitleStyleID = "Title"
	BodyStyleID  = "Normal"

	TitleColor = "111111"
	TitleSize  = 32
	BodySize   = 22
)

// StyleMap holds the formatting for every paragraph style a letter uses.
var StyleMap = map[string]RunStyle{
	TitleStyleID: {
		Bold:  true,
		Size:  TitleSize,
		Color: TitleColor,
	},
	BodyStyleID: {
		Size: BodySize,
	},
}
