package handlers

import (
	"net/http"

	"github.com/amoltdhage/FitChallengeBackend/challenge"
	"github.com/amoltdhage/FitChallengeBackend/db"
	"github.com/amoltdhage/FitChallengeBackend/middleware"
	"github.com/amoltdhage/FitChallengeBackend/models"
	"github.com/amoltdhage/FitChallengeBackend/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListActivityRecords - admin-обзор записей; фильтр по user_id через query.
func ListActivityRecords(c *gin.Context) {
	var records []models.ActivityRecord
	query := db.DB.Order("user_id, day_number")

	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.Find(&records).Error; err != nil {
		utils.Logger.Error("admin_list_activity_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activity records"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// ApproveActivity отмечает запись проверенной и начисляет баллы.
func ApproveActivity(c *gin.Context) {
	var input struct {
		UserID        uint `json:"user_id" binding:"required"`
		DayNumber     int  `json:"day_number" binding:"required,gte=1"`
		ActivityPoint int  `json:"activity_point" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": err.Error()})
		return
	}

	approved := true
	err := Store.UpsertActivityRecord(c.Request.Context(), input.UserID, input.DayNumber, challenge.RecordFields{
		IsAdminApproved: &approved,
		ActivityPoint:   &input.ActivityPoint,
	})
	if err != nil {
		utils.Logger.Error("admin_approve_failed",
			zap.Uint("user_id", input.UserID),
			zap.Int("day", input.DayNumber),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve activity"})
		return
	}

	if err := middleware.InvalidateChallengeCache(input.UserID); err != nil {
		utils.Logger.Warn("cache_invalidate_failed", zap.Error(err))
	}

	utils.Logger.Info("activity_approved",
		zap.Uint("user_id", input.UserID),
		zap.Int("day", input.DayNumber),
		zap.Int("points", input.ActivityPoint),
	)
	c.JSON(http.StatusOK, gin.H{"message": "Activity approved"})
}
