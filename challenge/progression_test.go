package challenge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amoltdhage/FitChallengeBackend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordKey struct {
	uid uint
	day int
}

// fakeStore - in-memory реализация ActivityStore с теми же merge-семантиками,
// что и у GormStore.
type fakeStore struct {
	users       map[uint]models.User
	records     map[recordKey]models.ActivityRecord
	upsertCalls int
	failUpsert  error
	nextID      uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   make(map[uint]models.User),
		records: make(map[recordKey]models.ActivityRecord),
	}
}

func (f *fakeStore) GetUserProfile(_ context.Context, uid uint) (*models.User, error) {
	u, ok := f.users[uid]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (f *fakeStore) CreateUserProfile(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; ok {
		return nil
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeStore) ListActivityRecords(_ context.Context, uid uint) ([]models.ActivityRecord, error) {
	var out []models.ActivityRecord
	for k, r := range f.records {
		if k.uid == uid {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) UpsertActivityRecord(_ context.Context, uid uint, dayNumber int, fields RecordFields) error {
	f.upsertCalls++
	if f.failUpsert != nil {
		return f.failUpsert
	}

	key := recordKey{uid: uid, day: dayNumber}
	rec, ok := f.records[key]
	if !ok {
		f.nextID++
		rec = models.ActivityRecord{ID: f.nextID, UserID: uid, DayNumber: dayNumber}
	}
	if fields.Images != nil {
		rec.Images = *fields.Images
	}
	if fields.ActivityPoint != nil {
		rec.ActivityPoint = *fields.ActivityPoint
	}
	if fields.IsCompleted != nil {
		rec.IsCompleted = *fields.IsCompleted
	}
	if fields.IsAdminApproved != nil {
		rec.IsAdminApproved = *fields.IsAdminApproved
	}
	if fields.Date != nil {
		rec.Date = *fields.Date
	}
	rec.UpdatedAt = time.Now().UTC()
	f.records[key] = rec
	return nil
}

func fixedNow() time.Time {
	return time.Date(2025, 9, 7, 10, 30, 0, 0, time.UTC)
}

func TestSelectDay_Active(t *testing.T) {
	store := newFakeStore()
	p := NewProgression(store, zap.NewNop(), fixedNow)

	view := DayView{DayNumber: 3, ScheduledDate: date(2025, 9, 7), Status: StatusActive}
	action, err := p.SelectDay(context.Background(), 42, view)

	require.NoError(t, err)
	assert.Equal(t, ActionNavigateToCapture, action.Type)
	assert.Equal(t, 3, action.DayNumber)

	// ровно один upsert с IsCompleted=true
	assert.Equal(t, 1, store.upsertCalls)
	rec, ok := store.records[recordKey{uid: 42, day: 3}]
	require.True(t, ok)
	assert.True(t, rec.IsCompleted)
	assert.Equal(t, fixedNow(), rec.Date)
}

func TestSelectDay_Completed(t *testing.T) {
	store := newFakeStore()
	p := NewProgression(store, zap.NewNop(), fixedNow)

	view := DayView{DayNumber: 1, ScheduledDate: date(2025, 9, 5), Status: StatusCompleted}
	action, err := p.SelectDay(context.Background(), 42, view)

	require.NoError(t, err)
	assert.Equal(t, ActionAlreadyComplete, action.Type)
	assert.Zero(t, store.upsertCalls)
}

func TestSelectDay_Future(t *testing.T) {
	store := newFakeStore()
	p := NewProgression(store, zap.NewNop(), fixedNow)

	scheduled := date(2025, 9, 10)
	view := DayView{DayNumber: 6, ScheduledDate: scheduled, Status: StatusFuture}
	action, err := p.SelectDay(context.Background(), 42, view)

	require.NoError(t, err)
	assert.Equal(t, ActionReject, action.Type)
	assert.Equal(t, "not yet active", action.Reason)
	assert.Equal(t, scheduled, action.ScheduledDate)
	assert.Zero(t, store.upsertCalls)
}

func TestSelectDay_Missed(t *testing.T) {
	store := newFakeStore()
	p := NewProgression(store, zap.NewNop(), fixedNow)

	view := DayView{DayNumber: 2, ScheduledDate: date(2025, 9, 6), Status: StatusMissed}
	action, err := p.SelectDay(context.Background(), 42, view)

	require.NoError(t, err)
	assert.Equal(t, ActionReject, action.Type)
	assert.Equal(t, "missed", action.Reason)
	assert.Zero(t, store.upsertCalls)
}

func TestSelectDay_Locked(t *testing.T) {
	store := newFakeStore()
	p := NewProgression(store, zap.NewNop(), fixedNow)

	view := DayView{DayNumber: 4, ScheduledDate: date(2025, 9, 8), Status: StatusLocked}
	action, err := p.SelectDay(context.Background(), 42, view)

	require.NoError(t, err)
	assert.Equal(t, ActionReject, action.Type)
	assert.Equal(t, "locked", action.Reason)
	assert.Zero(t, store.upsertCalls)
}

func TestSelectDay_WriteFailureIsRecoverable(t *testing.T) {
	store := newFakeStore()
	store.failUpsert = errors.New("connection refused")
	p := NewProgression(store, zap.NewNop(), fixedNow)

	view := DayView{DayNumber: 3, ScheduledDate: date(2025, 9, 7), Status: StatusActive}
	action, err := p.SelectDay(context.Background(), 42, view)

	// ошибка возвращается, но вердикт не теряется
	require.Error(t, err)
	assert.Equal(t, ActionNavigateToCapture, action.Type)
	assert.Empty(t, store.records)
}

func TestUpsert_Idempotent(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	completed := true
	date := fixedNow()
	fields := RecordFields{IsCompleted: &completed, Date: &date}

	require.NoError(t, store.UpsertActivityRecord(ctx, 42, 3, fields))
	require.NoError(t, store.UpsertActivityRecord(ctx, 42, 3, fields))

	records, err := store.ListActivityRecords(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, records, 1, "repeated upsert must not duplicate the record")
}

func TestUpsert_MergeKeepsUnspecifiedFields(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	images := "/uploads/a.jpg"
	completed := true
	require.NoError(t, store.UpsertActivityRecord(ctx, 42, 3, RecordFields{
		Images:      &images,
		IsCompleted: &completed,
	}))

	points := 10
	approved := true
	require.NoError(t, store.UpsertActivityRecord(ctx, 42, 3, RecordFields{
		ActivityPoint:   &points,
		IsAdminApproved: &approved,
	}))

	rec := store.records[recordKey{uid: 42, day: 3}]
	assert.Equal(t, "/uploads/a.jpg", rec.Images)
	assert.True(t, rec.IsCompleted)
	assert.True(t, rec.IsAdminApproved)
	assert.Equal(t, 10, rec.ActivityPoint)
}

func TestSelectDay_ThenRecomputeShowsCompleted(t *testing.T) {
	store := newFakeStore()
	p := NewProgression(store, zap.NewNop(), fixedNow)
	ctx := context.Background()

	start := date(2025, 9, 5)
	today := date(2025, 9, 7)

	views := ComputeDayStatuses(today, start, 21, nil)
	require.Equal(t, StatusActive, views[2].Status)

	_, err := p.SelectDay(ctx, 42, views[2])
	require.NoError(t, err)

	// чтение после записи: день 3 уже completed
	records, err := store.ListActivityRecords(ctx, 42)
	require.NoError(t, err)
	views = ComputeDayStatuses(today, start, 21, records)
	assert.Equal(t, StatusCompleted, views[2].Status)
}
