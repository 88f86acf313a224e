package models

// Chat message senders
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// ChatMessage represents a single message in a chat session
type ChatMessage struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	SessionID string `json:"session_id"`
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}
