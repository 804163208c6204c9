package challenge

import (
	"context"
	"errors"
	"time"

	"github.com/amoltdhage/FitChallengeBackend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore - реализация ActivityStore поверх postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetUserProfile(ctx context.Context, uid uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", uid, false).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUserProfile идемпотентен: повторный вызов для существующего email
// ничего не меняет.
func (s *GormStore) CreateUserProfile(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(user).Error
}

func (s *GormStore) ListActivityRecords(ctx context.Context, uid uint) ([]models.ActivityRecord, error) {
	var records []models.ActivityRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", uid).
		Order("day_number ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// UpsertActivityRecord пишет запись по ключу (user_id, day_number).
// Повторная запись по тому же ключу сливает только переданные поля,
// остальные не затираются.
func (s *GormStore) UpsertActivityRecord(ctx context.Context, uid uint, dayNumber int, fields RecordFields) error {
	rec := models.ActivityRecord{
		UserID:    uid,
		DayNumber: dayNumber,
	}

	assignments := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if fields.Images != nil {
		rec.Images = *fields.Images
		assignments["images"] = *fields.Images
	}
	if fields.ActivityPoint != nil {
		rec.ActivityPoint = *fields.ActivityPoint
		assignments["activity_point"] = *fields.ActivityPoint
	}
	if fields.IsCompleted != nil {
		rec.IsCompleted = *fields.IsCompleted
		assignments["is_completed"] = *fields.IsCompleted
	}
	if fields.IsAdminApproved != nil {
		rec.IsAdminApproved = *fields.IsAdminApproved
		assignments["is_admin_approved"] = *fields.IsAdminApproved
	}
	if fields.Date != nil {
		rec.Date = *fields.Date
		assignments["date"] = *fields.Date
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "day_number"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(&rec).Error
}
