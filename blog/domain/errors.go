package domain

import "errors"

var (
	ErrMissingParameter = errors.New("blog: required route parameter is missing")
	ErrPostNotFound     = errors.New("blog: post not found")
	ErrDuplicateSlug    = errors.New("blog: slug already exists")
	ErrUnauthorized     = errors.New("blog: admin identity required")
	ErrInvalidIntent    = errors.New("blog: unknown form intent")
)
