package challenge

import (
	"context"
	"errors"
	"time"

	"github.com/amoltdhage/FitChallengeBackend/models"
)

var ErrNotFound = errors.New("record not found")

// RecordFields - частичное обновление записи активности. nil-поля при merge
// не трогаются, существующие значения сохраняются.
type RecordFields struct {
	Images          *string
	ActivityPoint   *int
	IsCompleted     *bool
	IsAdminApproved *bool
	Date            *time.Time
}

// ActivityStore - адаптер хранилища. Конструируется один раз в main и
// передаётся явно, в тестах подменяется на fake.
type ActivityStore interface {
	GetUserProfile(ctx context.Context, uid uint) (*models.User, error)
	CreateUserProfile(ctx context.Context, user *models.User) error
	ListActivityRecords(ctx context.Context, uid uint) ([]models.ActivityRecord, error)
	UpsertActivityRecord(ctx context.Context, uid uint, dayNumber int, fields RecordFields) error
}
