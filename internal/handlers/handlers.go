package handlers

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/myth3x/mythex-snapshare/internal/links"
	"github.com/myth3x/mythex-snapshare/internal/models"
)

// ObjectStore is what the handlers need from the storage backend.
// Satisfied by *storage.Client; tests use a fake.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

var (
	Registry *links.Registry
	Resolver *links.Resolver
	Store    ObjectStore
)

// Init wires the handler package. Called once from main after the
// database, cache and storage client are up.
func Init(reg *links.Registry, res *links.Resolver, store ObjectStore) {
	Registry = reg
	Resolver = res
	Store = store
}

// requesterFrom builds the links.Requester for the current request.
// Missing or malformed auth context degrades to anonymous.
func requesterFrom(c *gin.Context) links.Requester {
	id, ok := c.Get("userId")
	if !ok {
		return links.Requester{}
	}
	idStr, ok := id.(string)
	if !ok {
		return links.Requester{}
	}

	req := links.Requester{ID: idStr}
	if role, ok := c.Get("role"); ok {
		if r, ok := role.(models.Role); ok {
			req.Role = r
		}
	}
	return req
}
