package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/myth3x/mythex-snapshare/internal/links"
	"github.com/myth3x/mythex-snapshare/pkg/logger"
	"github.com/myth3x/mythex-snapshare/pkg/utils"
)

// ListScreenshots returns the caller's uploads for one month, newest
// first. ?month=YYYY-MM selects the window (default: current month),
// ?search= filters on the original file name.
func ListScreenshots(c *gin.Context) {
	userID := c.GetString("userId")

	month := time.Now().UTC()
	if m := c.Query("month"); m != "" {
		parsed, err := time.Parse("2006-01", m)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be formatted YYYY-MM"})
			return
		}
		month = parsed
	}
	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	search := ""
	if s := c.Query("search"); s != "" {
		search = utils.SanitizeSearchQuery(s)
	}

	recs, err := Registry.ListForOwner(c.Request.Context(), userID, from, to, search)
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list screenshots")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list screenshots"})
		return
	}

	type item struct {
		ID           string    `json:"id"`
		OriginalName string    `json:"originalName"`
		MimeType     string    `json:"mimeType"`
		ByteSize     int64     `json:"byteSize"`
		ShortCode    string    `json:"shortCode"`
		IsPublic     bool      `json:"isPublic"`
		ViewCount    int64     `json:"viewCount"`
		CreatedAt    time.Time `json:"createdAt"`
		ShortURL     string    `json:"shortUrl"`
		URL          string    `json:"url"`
	}

	items := make([]item, 0, len(recs))
	for _, rec := range recs {
		items = append(items, item{
			ID:           rec.ID,
			OriginalName: rec.OriginalName,
			MimeType:     rec.MimeType,
			ByteSize:     rec.ByteSize,
			ShortCode:    rec.ShortCode,
			IsPublic:     rec.IsPublic,
			ViewCount:    rec.ViewCount,
			CreatedAt:    rec.CreatedAt,
			ShortURL:     shortURL(rec.ShortCode),
			URL:          Store.PublicURL(rec.StorageKey),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"screenshots": items,
		"month":       from.Format("2006-01"),
	})
}

type visibilityInput struct {
	IsPublic *bool `json:"isPublic" binding:"required"`
}

// UpdateVisibility handles PATCH /api/screenshots/:id/visibility.
// Owner-only.
func UpdateVisibility(c *gin.Context) {
	userID := c.GetString("userId")
	id := c.Param("id")

	var input visibilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "isPublic is required"})
		return
	}

	rec, err := Registry.SetVisibility(c.Request.Context(), id, userID, *input.IsPublic)
	switch err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"screenshot": rec})
	case links.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Screenshot not found"})
	case links.ErrUnauthorized:
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can change visibility"})
	default:
		logger.Error().Err(err).Str("id", id).Msg("Failed to update visibility")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update visibility"})
	}
}

// DeleteScreenshot handles DELETE /api/screenshots/:id. Owner or admin.
// Removes the registry row first, then the stored bytes; a failed object
// delete leaves nothing resolvable behind.
func DeleteScreenshot(c *gin.Context) {
	id := c.Param("id")
	requester := requesterFrom(c)

	rec, err := Registry.Delete(c.Request.Context(), id, requester)
	switch err {
	case nil:
	case links.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Screenshot not found"})
		return
	case links.ErrUnauthorized:
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to delete this screenshot"})
		return
	default:
		logger.Error().Err(err).Str("id", id).Msg("Failed to delete screenshot")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete screenshot"})
		return
	}

	if err := Store.Delete(c.Request.Context(), rec.StorageKey); err != nil {
		logger.Error().Err(err).Str("key", rec.StorageKey).Msg("Failed to delete stored object")
	}

	c.JSON(http.StatusOK, gin.H{"deleted": rec.ID})
}
