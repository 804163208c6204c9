package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/amoltdhage/FitChallengeBackend/db"
	"github.com/amoltdhage/FitChallengeBackend/models"
	"github.com/amoltdhage/FitChallengeBackend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func Profile(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func UpdateProfile(c *gin.Context) {
	userInterface, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	currentUser := userInterface.(models.User)

	file, err := c.FormFile("picture")
	if err == nil {
		if err := os.MkdirAll("./uploads", os.ModePerm); err != nil {
			utils.Logger.Error("profile_mkdir_failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload directory"})
			return
		}

		filename := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(file.Filename))
		path := filepath.Join("./uploads", filename)
		if err := c.SaveUploadedFile(file, path); err != nil {
			utils.Logger.Error("file_upload_failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
			return
		}
		currentUser.Picture = "/uploads/" + filename
	}

	if v := c.PostForm("first_name"); v != "" {
		currentUser.FirstName = v
	}
	if v := c.PostForm("last_name"); v != "" {
		currentUser.LastName = v
	}
	if v := c.PostForm("mobile"); v != "" {
		currentUser.Mobile = v
	}
	if v := c.PostForm("height"); v != "" {
		if h, err := strconv.ParseFloat(v, 64); err == nil {
			currentUser.Height = h
		}
	}
	if v := c.PostForm("weight"); v != "" {
		if w, err := strconv.ParseFloat(v, 64); err == nil {
			currentUser.Weight = w
		}
	}

	if err := db.DB.Save(&currentUser).Error; err != nil {
		utils.Logger.Error("profile_update_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	utils.Logger.Info("profile_updated", zap.Uint("user_id", currentUser.ID))
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": currentUser})
}

// DeleteProfile - мягкое удаление: аккаунт остаётся в БД с флагом is_deleted.
func DeleteProfile(c *gin.Context) {
	userInterface, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	currentUser := userInterface.(models.User)

	if err := db.DB.Model(&currentUser).Update("is_deleted", true).Error; err != nil {
		utils.Logger.Error("profile_delete_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete profile"})
		return
	}

	utils.Logger.Info("profile_soft_deleted", zap.Uint("user_id", currentUser.ID))
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
