package client

import "fmt"

// NotFoundError reports a lookup (project, field, option, iteration, issue)
// that produced no exact match. It is recovered locally: the affected unit
// of work is skipped with a warning and the batch continues.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}
