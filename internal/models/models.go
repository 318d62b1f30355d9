package models

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single conversational message sent to or received from the provider.
type Message struct {
	Role    string
	Content string
}

// ChatRequest is the canonical representation of a chat completion call.
type ChatRequest struct {
	Model       string
	Messages    []Message
	Temperature float32
}

// ChatReply captures a provider response. Choices may be empty.
type ChatReply struct {
	ID      string
	Choices []Choice
	Usage   Usage
}

// Choice is one candidate answer within a reply.
type Choice struct {
	Message      Message
	FinishReason string
}

// Usage records token accounting information.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// FirstContent returns the content of the first choice, if any.
func (r ChatReply) FirstContent() (string, bool) {
	if len(r.Choices) == 0 {
		return "", false
	}
	content := r.Choices[0].Message.Content
	return content, content != ""
}
