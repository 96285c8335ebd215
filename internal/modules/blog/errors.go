package blog

import "errors"

var (
	ErrPostNotFound = errors.New("post not found")
	ErrSlugTaken    = errors.New("a post with this title already exists")
	ErrValidation   = errors.New("title and content are required")
)
