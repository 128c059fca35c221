package agents

import (
	"context"
)

// NewsSearcher is the external news-search collaborator. The assistant only
// consumes its summary text; implementations live outside this module.
type NewsSearcher interface {
	Search(ctx context.Context, query string, limit int) (string, error)
}

// KnowledgeBase is the external knowledge-base collaborator used for
// educational trading questions.
type KnowledgeBase interface {
	Answer(ctx context.Context, question string) (string, error)
}
