package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/myth3x/mythex-snapshare/internal/links"
	"github.com/myth3x/mythex-snapshare/pkg/logger"
)

// ResolveShortLink handles GET /:code and GET /s/:code. Anonymous
// requests are fine; OptionalAuthMiddleware fills in the requester when
// a valid token is present.
//
// A private code and a nonexistent one produce byte-identical 404s so
// the endpoint cannot be used to enumerate which codes exist.
func ResolveShortLink(c *gin.Context) {
	code := c.Param("code")

	res, err := Resolver.Resolve(c.Request.Context(), code, requesterFrom(c))
	switch err {
	case nil:
		c.Redirect(http.StatusFound, res.Location)
	case links.ErrNotFound, links.ErrForbidden:
		notFoundResponse(c)
	default:
		logger.Error().Err(err).Str("code", code).Msg("Resolve failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// notFoundResponse is the single generic body used for both missing and
// denied codes.
func notFoundResponse(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}
