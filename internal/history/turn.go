package history

// Role identifies the speaker of a Turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn represents a single conversational message. Turns are never modified
// after creation.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}
