package chat

// Role identifies the speaker of a transcript entry.
type Role string

const (
	RoleAI   Role = "ai"
	RoleUser Role = "user"
)

// Highlight is the presentation classification attached to an answer bubble.
type Highlight string

const (
	HighlightYes     Highlight = "yes"
	HighlightNo      Highlight = "no"
	HighlightNeutral Highlight = "neutral"
)

// Message is one transcript entry. Entries are append-only and live for a
// single game.
type Message struct {
	Role      Role      `json:"type"`
	Text      string    `json:"text"`
	Highlight Highlight `json:"highlight,omitempty"`
}
