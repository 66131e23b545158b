package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/myth3x/mythex-snapshare/internal/config"
	"github.com/myth3x/mythex-snapshare/internal/database"
	"github.com/myth3x/mythex-snapshare/internal/models"
	"github.com/myth3x/mythex-snapshare/pkg/logger"
	"github.com/myth3x/mythex-snapshare/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

var (
	errAccountEmailTaken    = errors.New("An account with this email already exists")
	errAccountUsernameTaken = errors.New("This username is already taken")
	errAccountExists        = errors.New("User with this email or username already exists")
)

type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account via self-service signup. The default
// deployment keeps signup closed and accounts are provisioned by an
// admin instead (see AdminCreateUser).
func Register(c *gin.Context) {
	if !config.AppConfig.AllowSignup {
		c.JSON(http.StatusForbidden, gin.H{"error": "Signup is disabled. Ask an administrator for an account."})
		return
	}

	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.ValidateUsername(input.Username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be 3-30 characters and contain only letters, numbers, underscores, or hyphens"})
		return
	}

	user, err := createUser(input.Username, input.Email, input.Password, models.RoleUser)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Me returns the authenticated account.
func Me(c *gin.Context) {
	userID := c.GetString("userId")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// createUser is shared by signup and admin provisioning.
func createUser(username, email, password string, role models.Role) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:       utils.GenerateID(),
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}

	if result := database.DB.Create(&user); result.Error != nil {
		// Differentiate between email and username conflict
		var existing models.User
		if err := database.DB.Where("email = ?", email).First(&existing).Error; err == nil {
			return nil, errAccountEmailTaken
		}
		if err := database.DB.Where("username = ?", username).First(&existing).Error; err == nil {
			return nil, errAccountUsernameTaken
		}
		logger.Warn().Err(result.Error).Str("email", email).Msg("User creation failed: unique violation")
		return nil, errAccountExists
	}

	return &user, nil
}
