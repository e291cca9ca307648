package chat

import "strings"

// Answer is the constrained reply vocabulary of the game arbiter.
type Answer string

const (
	AnswerYes           Answer = "はい"
	AnswerNo            Answer = "いいえ"
	AnswerIndeterminate Answer = "どちらとも言えない"
)

// Highlight maps a deterministic answer to its bubble classification.
func (a Answer) Highlight() Highlight {
	switch a {
	case AnswerYes:
		return HighlightYes
	case AnswerNo:
		return HighlightNo
	default:
		return HighlightNeutral
	}
}

// ClassifyAnswer derives the presentation hint for oracle free text by
// substring match against the expected tokens. The canonical text is always
// shown verbatim; this only colors the bubble.
func ClassifyAnswer(text string) Highlight {
	switch {
	case strings.Contains(text, string(AnswerYes)):
		return HighlightYes
	case strings.Contains(text, string(AnswerNo)):
		return HighlightNo
	default:
		return HighlightNeutral
	}
}
