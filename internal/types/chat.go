package types

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ConversationTurn is one message in a session's history.
type ConversationTurn struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// MaxHistoryTurns caps a session's history at the 5 most recent exchanges.
const MaxHistoryTurns = 10

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"` // empty for a new session
}

// ChatResponse is the synthesized answer returned to the HTTP layer.
type ChatResponse struct {
	Message   string         `json:"message"`
	Sources   []SourceRecord `json:"sources,omitempty"`
	ToolCalls []string       `json:"tool_calls,omitempty"`
	SessionID string         `json:"session_id"`
}
