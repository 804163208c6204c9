package challenge

import (
	"time"

	"github.com/amoltdhage/FitChallengeBackend/models"
)

// Midnight обрезает время до полуночи UTC. Все сравнения дат в движке идут
// только по календарному дню.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ComputeDayStatuses строит статусы всех дней программы. Чистая функция:
// часы не читает, все входы передаёт вызывающий.
//
// Правила:
//   - день с записью IsCompleted=true -> completed, независимо от даты;
//   - иначе: дата дня == today -> active, раньше -> missed, позже -> future;
//   - записи с day_number вне [1, totalDays] игнорируются;
//   - из дублей на один день берётся запись с наибольшим UpdatedAt,
//     при равенстве - с наибольшим ID.
func ComputeDayStatuses(today, programStart time.Time, totalDays int, records []models.ActivityRecord) []DayView {
	if totalDays <= 0 {
		return nil
	}

	today = Midnight(today)
	start := Midnight(programStart)

	byDay := make(map[int]models.ActivityRecord, len(records))
	for _, rec := range records {
		if rec.DayNumber < 1 || rec.DayNumber > totalDays {
			continue
		}
		cur, ok := byDay[rec.DayNumber]
		if !ok || rec.UpdatedAt.After(cur.UpdatedAt) ||
			(rec.UpdatedAt.Equal(cur.UpdatedAt) && rec.ID > cur.ID) {
			byDay[rec.DayNumber] = rec
		}
	}

	views := make([]DayView, 0, totalDays)
	for day := 1; day <= totalDays; day++ {
		scheduled := start.AddDate(0, 0, day-1)

		status := StatusFuture
		if rec, ok := byDay[day]; ok && rec.IsCompleted {
			status = StatusCompleted
		} else if scheduled.Equal(today) {
			status = StatusActive
		} else if scheduled.Before(today) {
			status = StatusMissed
		}

		views = append(views, DayView{
			DayNumber:     day,
			ScheduledDate: scheduled,
			Status:        status,
		})
	}

	return views
}

// CountByStatus - сводка для шапки главного экрана.
func CountByStatus(views []DayView) map[string]int {
	counts := map[string]int{
		StatusLocked.String():    0,
		StatusActive.String():    0,
		StatusCompleted.String(): 0,
		StatusMissed.String():    0,
		StatusFuture.String():    0,
	}
	for _, v := range views {
		counts[v.Status.String()]++
	}
	return counts
}
