package handlers

import (
	"net/http"
	"time"

	"github.com/amoltdhage/FitChallengeBackend/challenge"
	"github.com/amoltdhage/FitChallengeBackend/db"
	"github.com/amoltdhage/FitChallengeBackend/models"
	"github.com/amoltdhage/FitChallengeBackend/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Store - адаптер хранилища, задаётся в main при старте.
var Store challenge.ActivityStore

type registerInput struct {
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=6"`
	Mobile    string  `json:"mobile" binding:"required,len=10,numeric"`
	DOB       string  `json:"dob" binding:"required"`
	Age       int     `json:"age" binding:"required,gte=1,lte=120"`
	Height    float64 `json:"height" binding:"required,gte=50,lte=250"`
	Weight    float64 `json:"weight" binding:"required,gte=20,lte=300"`
}

func Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": err.Error()})
		return
	}

	dob, err := time.Parse("2006-01-02", input.DOB)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date of birth, expected YYYY-MM-DD"})
		return
	}

	var existing models.User
	if err := db.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		utils.Logger.Warn("register_user_exists", zap.String("email", input.Email))
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.Logger.Error("register_hash_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Mobile:       input.Mobile,
		DOB:          dob,
		Age:          input.Age,
		Height:       input.Height,
		Weight:       input.Weight,
		Role:         models.RoleUser,
	}

	// Идемпотентно: повторный register с тем же email не создаст дубль
	if err := Store.CreateUserProfile(c.Request.Context(), &user); err != nil {
		utils.Logger.Error("register_db_create_failed", zap.Error(err), zap.String("email", input.Email))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		utils.Logger.Error("register_token_generation_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	utils.Logger.Info("register_success",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email),
	)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Signup successful!",
		"token":   token,
		"user": gin.H{
			"id":         user.ID,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
			"role":       user.Role,
			"picture":    user.Picture,
		},
	})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.Logger.Warn("login_user_not_found", zap.String("email", input.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if user.IsDeleted {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account deactivated"})
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		utils.Logger.Warn("login_incorrect_password", zap.String("email", input.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	utils.Logger.Info("user_logged_in", zap.Uint("user_id", user.ID))

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":         user.ID,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
			"picture":    user.Picture,
			"role":       user.Role,
		},
	})
}
