package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/amoltdhage/FitChallengeBackend/challenge"
	"github.com/amoltdhage/FitChallengeBackend/config"
	"github.com/amoltdhage/FitChallengeBackend/middleware"
	"github.com/amoltdhage/FitChallengeBackend/models"
	"github.com/amoltdhage/FitChallengeBackend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChallengeHandler держит зависимости ядра: адаптер хранилища, контроллер
// прогресса и часы. Всё внедряется в main, в тестах подменяется.
type ChallengeHandler struct {
	store       challenge.ActivityStore
	progression *challenge.Progression
	cfg         *config.Config
	now         func() time.Time
}

func NewChallengeHandler(store challenge.ActivityStore, progression *challenge.Progression, cfg *config.Config, now func() time.Time) *ChallengeHandler {
	if now == nil {
		now = time.Now
	}
	return &ChallengeHandler{store: store, progression: progression, cfg: cfg, now: now}
}

func currentUser(c *gin.Context) (models.User, bool) {
	userInterface, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := userInterface.(models.User)
	return user, ok
}

// GetDays отдаёт сетку всех дней программы со статусами.
func (h *ChallengeHandler) GetDays(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	records, err := h.store.ListActivityRecords(c.Request.Context(), user.ID)
	if err != nil {
		utils.Logger.Error("list_activity_failed", zap.Uint("user_id", user.ID), zap.Error(err))
		utils.ErrorCount.WithLabelValues("challenge_days", "persistence").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activity records, try again"})
		return
	}

	views := challenge.ComputeDayStatuses(h.now(), h.cfg.ChallengeStart, h.cfg.TotalDays, records)

	c.JSON(http.StatusOK, gin.H{
		"total_days": h.cfg.TotalDays,
		"start_date": challenge.Midnight(h.cfg.ChallengeStart),
		"days":       views,
	})
}

// GetSummary - счётчики статусов для шапки главного экрана.
func (h *ChallengeHandler) GetSummary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	records, err := h.store.ListActivityRecords(c.Request.Context(), user.ID)
	if err != nil {
		utils.ErrorCount.WithLabelValues("challenge_summary", "persistence").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activity records, try again"})
		return
	}

	views := challenge.ComputeDayStatuses(h.now(), h.cfg.ChallengeStart, h.cfg.TotalDays, records)

	// Имя для приветствия берём из профиля; нет профиля - дефолт
	greeting := "User"
	profile, err := h.store.GetUserProfile(c.Request.Context(), user.ID)
	if err == nil && profile.FirstName != "" {
		greeting = profile.FirstName
	} else if err != nil && !errors.Is(err, challenge.ErrNotFound) {
		utils.Logger.Warn("profile_load_failed", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"greeting_name": greeting,
		"counts":        challenge.CountByStatus(views),
	})
}

func (h *ChallengeHandler) dayParam(c *gin.Context) (int, bool) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 1 || day > h.cfg.TotalDays {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Day must be between 1 and %d", h.cfg.TotalDays),
		})
		return 0, false
	}
	return day, true
}

// SelectDay прогоняет выбранный день через контроллер прогресса.
// Для активного дня контроллер сам пишет отметку о выполнении.
func (h *ChallengeHandler) SelectDay(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	day, ok := h.dayParam(c)
	if !ok {
		return
	}

	records, err := h.store.ListActivityRecords(c.Request.Context(), user.ID)
	if err != nil {
		utils.ErrorCount.WithLabelValues("challenge_select", "persistence").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activity records, try again"})
		return
	}

	views := challenge.ComputeDayStatuses(h.now(), h.cfg.ChallengeStart, h.cfg.TotalDays, records)
	view := views[day-1]

	action, err := h.progression.SelectDay(c.Request.Context(), user.ID, view)
	if err != nil {
		// Вердикт есть, но запись не прошла: отдаём его как retryable-ошибку,
		// статусы обновятся при следующем чтении.
		utils.ErrorCount.WithLabelValues("challenge_select", "persistence").Inc()
		c.JSON(http.StatusBadGateway, gin.H{
			"error":  "Failed to record completion, try again",
			"action": action,
		})
		return
	}

	utils.DaySelections.WithLabelValues(action.Type.String()).Inc()

	if action.Type == challenge.ActionNavigateToCapture {
		if err := middleware.InvalidateChallengeCache(user.ID); err != nil {
			utils.Logger.Warn("cache_invalidate_failed", zap.Error(err))
		}
	}

	status := http.StatusOK
	if action.Type == challenge.ActionReject {
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"action": action})
}

// SubmitActivity принимает фото за день и записывает активность.
func (h *ChallengeHandler) SubmitActivity(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	day, ok := h.dayParam(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.ActivitySubmissions.WithLabelValues("no_image").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please capture an image before submitting"})
		return
	}

	if err := os.MkdirAll("./uploads", os.ModePerm); err != nil {
		utils.Logger.Error("submit_mkdir_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload directory"})
		return
	}

	filename := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(file.Filename))
	path := filepath.Join("./uploads", filename)
	if err := c.SaveUploadedFile(file, path); err != nil {
		utils.Logger.Error("submit_save_file_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}

	// Повторная отправка дополняет ту же запись, а не создаёт новую
	images := "/uploads/" + filename
	records, err := h.store.ListActivityRecords(c.Request.Context(), user.ID)
	if err == nil {
		for _, rec := range records {
			if rec.DayNumber == day && rec.Images != "" {
				images = rec.Images + "," + images
				break
			}
		}
	}

	completed := true
	date := h.now().UTC()
	err = h.store.UpsertActivityRecord(c.Request.Context(), user.ID, day, challenge.RecordFields{
		Images:      &images,
		IsCompleted: &completed,
		Date:        &date,
	})
	if err != nil {
		utils.Logger.Error("submit_upsert_failed",
			zap.Uint("user_id", user.ID),
			zap.Int("day", day),
			zap.Error(err))
		utils.ActivitySubmissions.WithLabelValues("persistence_error").Inc()
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to submit activity. Try again."})
		return
	}

	if err := middleware.InvalidateChallengeCache(user.ID); err != nil {
		utils.Logger.Warn("cache_invalidate_failed", zap.Error(err))
	}

	utils.ActivitySubmissions.WithLabelValues("success").Inc()
	utils.Logger.Info("activity_submitted",
		zap.Uint("user_id", user.ID),
		zap.Int("day", day),
	)

	c.JSON(http.StatusOK, gin.H{
		"message": "Activity submitted successfully!",
		"day":     day,
		"image":   "/uploads/" + filename,
	})
}
