package domain

import "net/http"

// Admin is the resolved identity of the blog administrator.
type Admin struct {
	Email string
}

// AdminResolver resolves a request to the admin identity or fails with ErrUnauthorized.
type AdminResolver interface {
	ResolveAdmin(r *http.Request) (*Admin, error)
}
