package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/myth3x/mythex-snapshare/internal/config"
	"github.com/myth3x/mythex-snapshare/internal/database"
	"github.com/myth3x/mythex-snapshare/internal/links"
	"github.com/myth3x/mythex-snapshare/pkg/logger"
	"github.com/myth3x/mythex-snapshare/pkg/utils"
)

// UploadScreenshot handles POST /api/screenshots: store the bytes, then
// register the short link. The uploader is trusted, so failures surface
// their specific cause (quota, storage, code exhaustion).
func UploadScreenshot(c *gin.Context) {
	userID := c.GetString("userId")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		file, header, err = c.Request.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No valid file field found"})
			return
		}
	}
	defer file.Close()

	cfg := config.AppConfig

	if header.Size > cfg.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("File exceeds the %d byte upload limit", cfg.MaxUploadBytes),
		})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image uploads are accepted"})
		return
	}

	ok, err := database.CheckUploadQuota(userID, cfg.DailyUploadCap, 24*time.Hour)
	if err != nil {
		logger.Warn().Err(err).Str("user_id", userID).Msg("Quota check failed, allowing upload")
	}
	if !ok {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Daily upload quota reached"})
		return
	}

	// Object keys are scoped per owner: <ownerID>/<uuid><ext>
	ext := filepath.Ext(header.Filename)
	key := fmt.Sprintf("%s/%s%s", userID, utils.GenerateID(), ext)

	if err := Store.Put(c.Request.Context(), key, file, contentType); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Storage upload failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Storage upload failed"})
		return
	}

	// Bytes are durable; now the link can be registered.
	rec, err := Registry.Register(c.Request.Context(), links.Draft{
		OwnerID:      userID,
		StorageKey:   key,
		OriginalName: header.Filename,
		MimeType:     contentType,
		ByteSize:     header.Size,
		IsPublic:     c.DefaultPostForm("public", "true") == "true",
	})
	if err != nil {
		// The object is now orphaned; clean it up best-effort.
		if delErr := Store.Delete(c.Request.Context(), key); delErr != nil {
			logger.Error().Err(delErr).Str("key", key).Msg("Failed to remove orphaned object")
		}
		if err == links.ErrCodeSpaceExhausted {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not allocate a short code, please retry"})
			return
		}
		logger.Error().Err(err).Str("user_id", userID).Msg("Link registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register upload"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"screenshot": rec,
		"shortUrl":   shortURL(rec.ShortCode),
		"url":        Store.PublicURL(rec.StorageKey),
	})
}

func shortURL(code string) string {
	base := strings.TrimRight(config.AppConfig.PublicBaseURL, "/")
	if base == "" {
		return "/" + code
	}
	return base + "/" + code
}
