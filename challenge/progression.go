package challenge

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type ActionType int

const (
	ActionReject ActionType = iota
	ActionNavigateToCapture
	ActionAlreadyComplete
)

func (a ActionType) String() string {
	switch a {
	case ActionReject:
		return "reject"
	case ActionNavigateToCapture:
		return "navigate_to_capture"
	case ActionAlreadyComplete:
		return "already_complete"
	}
	return "unknown"
}

// Action - вердикт контроллера по выбранному дню.
type Action struct {
	Type          ActionType `json:"type"`
	DayNumber     int        `json:"day_number"`
	Reason        string     `json:"reason,omitempty"`
	ScheduledDate time.Time  `json:"scheduled_date,omitempty"`
}

// Progression проверяет действие пользователя над днём и для активного дня
// запрашивает у хранилища отметку о выполнении.
type Progression struct {
	store ActivityStore
	log   *zap.Logger
	now   func() time.Time
}

func NewProgression(store ActivityStore, log *zap.Logger, now func() time.Time) *Progression {
	if now == nil {
		now = time.Now
	}
	return &Progression{store: store, log: log, now: now}
}

// SelectDay возвращает вердикт по дню. Для активного дня дополнительно
// отправляет upsert с IsCompleted=true - день помечается выполненным при
// переходе на экран активности, не дожидаясь фото. Ошибка записи не ломает
// выбор: вердикт возвращается вместе с ошибкой, локальное состояние
// обновится при следующем чтении.
func (p *Progression) SelectDay(ctx context.Context, uid uint, view DayView) (Action, error) {
	switch view.Status {
	case StatusCompleted:
		return Action{Type: ActionAlreadyComplete, DayNumber: view.DayNumber}, nil

	case StatusActive:
		action := Action{Type: ActionNavigateToCapture, DayNumber: view.DayNumber}

		completed := true
		date := p.now().UTC()
		err := p.store.UpsertActivityRecord(ctx, uid, view.DayNumber, RecordFields{
			IsCompleted: &completed,
			Date:        &date,
		})
		if err != nil {
			p.log.Error("day_completion_write_failed",
				zap.Uint("user_id", uid),
				zap.Int("day", view.DayNumber),
				zap.Error(err),
			)
			return action, fmt.Errorf("mark day %d complete: %w", view.DayNumber, err)
		}

		p.log.Info("day_marked_complete",
			zap.Uint("user_id", uid),
			zap.Int("day", view.DayNumber),
		)
		return action, nil

	case StatusFuture:
		return Action{
			Type:          ActionReject,
			DayNumber:     view.DayNumber,
			Reason:        "not yet active",
			ScheduledDate: view.ScheduledDate,
		}, nil

	case StatusMissed:
		return Action{
			Type:          ActionReject,
			DayNumber:     view.DayNumber,
			Reason:        "missed",
			ScheduledDate: view.ScheduledDate,
		}, nil

	case StatusLocked:
		return Action{
			Type:          ActionReject,
			DayNumber:     view.DayNumber,
			Reason:        "locked",
			ScheduledDate: view.ScheduledDate,
		}, nil
	}

	return Action{}, fmt.Errorf("unknown day status %d", view.Status)
}
