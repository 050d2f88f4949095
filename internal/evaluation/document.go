package evaluation

import "context"

// DocumentRenderer turns a completed result into a paginated, printable
// document. Implementations must acquire any temporary resources in scoped
// form with cleanup on every exit path.
type DocumentRenderer interface {
	Render(ctx context.Context, result EvaluationResult) ([]byte, error)
}
