package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/myth3x/mythex-snapshare/internal/database"
	"github.com/myth3x/mythex-snapshare/internal/models"
	"github.com/myth3x/mythex-snapshare/pkg/logger"
	"github.com/myth3x/mythex-snapshare/pkg/utils"
)

// Admin endpoints mirror the old provisioning flow: the instance is
// private, an admin creates and removes accounts.

func AdminListUsers(c *gin.Context) {
	var users []models.User
	if err := database.DB.Order("created_at ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

type adminCreateUserInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Admin    bool   `json:"admin"`
}

func AdminCreateUser(c *gin.Context) {
	var input adminCreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.ValidateUsername(input.Username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be 3-30 characters and contain only letters, numbers, underscores, or hyphens"})
		return
	}

	role := models.RoleUser
	if input.Admin {
		role = models.RoleAdmin
	}

	user, err := createUser(input.Username, input.Email, input.Password, role)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	logger.Info().Str("user_id", user.ID).Str("by", c.GetString("userId")).Msg("User provisioned")
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// AdminDeleteUser removes an account and cascades: the user's link
// records go first, then their stored objects (best-effort).
func AdminDeleteUser(c *gin.Context) {
	id := c.Param("id")

	if id == c.GetString("userId") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot delete your own account"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	recs, err := Registry.ListAllForOwner(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enumerate user uploads"})
		return
	}

	admin := requesterFrom(c)
	for _, rec := range recs {
		if _, err := Registry.Delete(c.Request.Context(), rec.ID, admin); err != nil {
			logger.Error().Err(err).Str("id", rec.ID).Msg("Failed to delete screenshot record")
			continue
		}
		if err := Store.Delete(c.Request.Context(), rec.StorageKey); err != nil {
			logger.Error().Err(err).Str("key", rec.StorageKey).Msg("Failed to delete stored object")
		}
	}

	if err := database.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	logger.Info().Str("user_id", id).Str("by", admin.ID).Int("screenshots", len(recs)).Msg("User deleted")
	c.JSON(http.StatusOK, gin.H{"deleted": id, "screenshotsRemoved": len(recs)})
}

func AdminGetStats(c *gin.Context) {
	var userCount, screenshotCount int64
	var totalViews int64

	database.DB.Model(&models.User{}).Count(&userCount)
	database.DB.Model(&models.Screenshot{}).Count(&screenshotCount)
	database.DB.Model(&models.Screenshot{}).Select("COALESCE(SUM(view_count), 0)").Scan(&totalViews)

	c.JSON(http.StatusOK, gin.H{
		"users":       userCount,
		"screenshots": screenshotCount,
		"totalViews":  totalViews,
	})
}
