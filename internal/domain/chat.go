package domain

// ChatRole identifies the author of a chat turn.
type ChatRole string

const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of an assistant conversation.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// MaxChatHistory is how many previous turns are forwarded to the assistant.
const MaxChatHistory = 10
