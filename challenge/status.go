package challenge

import (
	"encoding/json"
	"time"
)

// DayStatus - закрытое перечисление состояний дня. Ветвления по статусу
// делаются через switch по всем значениям, без строковых сравнений.
type DayStatus int

const (
	StatusLocked DayStatus = iota
	StatusActive
	StatusCompleted
	StatusMissed
	StatusFuture
)

func (s DayStatus) String() string {
	switch s {
	case StatusLocked:
		return "locked"
	case StatusActive:
		return "active"
	case StatusCompleted:
		return "completed"
	case StatusMissed:
		return "missed"
	case StatusFuture:
		return "future"
	}
	return "unknown"
}

func (s DayStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// DayView - производное представление одного дня программы. Не хранится в БД,
// пересчитывается на каждое чтение.
type DayView struct {
	DayNumber     int       `json:"day_number"`
	ScheduledDate time.Time `json:"scheduled_date"`
	Status        DayStatus `json:"status"`
}
