package service

import (
	"context"

	"github.com/khoahotran/career-os/internal/domain/document"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

type CompletionRequest struct {
	System string
	// CacheSystem marks the system prompt as reusable across calls sharing it.
	CacheSystem bool
	Messages    []Message
}

// Completion is the normalized provider reply. Content is empty when the
// reply carried no text block.
type Completion struct {
	Content string
	Usage   document.Usage
}

// LLMService issues exactly one model call per Complete.
type LLMService interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}
