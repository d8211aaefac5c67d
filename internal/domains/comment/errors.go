package comment

import "errors"

// Repository-level errors
var (
	ErrCommentNotFound = errors.New("comment not found")
)
