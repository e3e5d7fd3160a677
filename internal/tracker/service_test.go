package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitduel/internal/clock"
	"github.com/julianstephens/habitduel/internal/constants"
	"github.com/julianstephens/habitduel/internal/models"
	"github.com/julianstephens/habitduel/internal/storage"
)

const today = "2026-01-23"

var start = time.Date(2026, 1, 23, 9, 0, 0, 0, time.UTC)

// memProvider keeps a deep copy of the last saved snapshot.
type memProvider struct {
	state   *models.State
	saveErr error
	saves   int
}

func (m *memProvider) Init() error           { return nil }
func (m *memProvider) Close() error          { return nil }
func (m *memProvider) GetConfigPath() string { return "memory" }

func (m *memProvider) Load() (models.State, error) {
	if m.state == nil {
		return models.State{}, storage.ErrNotInitialized
	}
	return deepCopy(*m.state), nil
}

func (m *memProvider) Save(s models.State) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	c := deepCopy(s)
	m.state = &c
	m.saves++
	return nil
}

func deepCopy(s models.State) models.State {
	b, err := json.Marshal(s)
	if err != nil {
		panic(err)
	}
	var out models.State
	if err := json.Unmarshal(b, &out); err != nil {
		panic(err)
	}
	out.Normalize()
	return out
}

func ids() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

type fixture struct {
	svc   *Service
	clock *clock.FakeClock
	prov  *memProvider
	newID func() string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{clock: clock.NewFakeClock(start), prov: &memProvider{}, newID: ids()}
	f.svc = f.open(t)
	return f
}

// open builds a fresh service over the fixture's provider.
func (f *fixture) open(t *testing.T) *Service {
	t.Helper()
	repo := storage.NewRepository(f.prov, f.clock, f.newID)
	svc := New(repo, WithClock(f.clock), WithRandom(clock.NewSeededRandom(7)), WithIDs(f.newID))
	_, err := svc.EnsureInitialized()
	require.NoError(t, err)
	return svc
}

func (f *fixture) users() (models.User, models.User) {
	us := f.svc.ListUsers()
	return us[0], us[1]
}

// habit returns a live pointer into the service state.
func (f *fixture) habit(t *testing.T, id string) *models.Habit {
	t.Helper()
	_, h, ok := f.svc.state.FindHabit(id)
	require.True(t, ok)
	return h
}

func (f *fixture) create(t *testing.T, in models.HabitInput) models.Habit {
	t.Helper()
	h, err := f.svc.CreateHabit(in)
	require.NoError(t, err)
	return h
}

func TestEnsureInitializedFresh(t *testing.T) {
	f := &fixture{clock: clock.NewFakeClock(start), prov: &memProvider{}, newID: ids()}
	repo := storage.NewRepository(f.prov, f.clock, f.newID)
	svc := New(repo, WithClock(f.clock), WithRandom(clock.NewSeededRandom(1)), WithIDs(f.newID))

	report, err := svc.EnsureInitialized()
	require.NoError(t, err)
	assert.True(t, report.Fresh)
	assert.Len(t, report.RefreshedUsers, 2)

	users := svc.ListUsers()
	require.Len(t, users, 2)
	assert.Equal(t, "Player 1", users[0].Profile.Name)
	assert.Equal(t, users[0].ID, svc.State().CurrentUserID)
	for _, u := range users {
		require.Len(t, u.Challenges, constants.ChallengeBatchSize)
		assert.Equal(t, "2026-01-30", u.Challenges[0].EndDate)
	}
	assert.Equal(t, 1, f.prov.saves, "initialization saves once")
}

func TestEnsureInitializedResetsMissedDays(t *testing.T) {
	f := newFixture(t)
	kept := f.create(t, models.HabitInput{Name: "Exercise", Category: models.CategoryFitness, TargetValue: 30})
	lost := f.create(t, models.HabitInput{Name: "Read", Category: models.CategoryLearning, TargetValue: 10})

	f.habit(t, kept.ID).CurrentStreak = 4
	f.habit(t, kept.ID).BestStreak = 4
	f.habit(t, kept.ID).UpsertStatus(models.DailyStatus{Date: today, Done: true, Value: 30, Mood: models.MoodHappy})
	f.habit(t, lost.ID).CurrentStreak = 5
	f.habit(t, lost.ID).BestStreak = 5
	f.svc.save()

	f.clock.AdvanceDays(1)
	reopened := f.open(t)

	h, err := reopened.GetHabit(lost.ID)
	require.NoError(t, err)
	assert.Zero(t, h.CurrentStreak)
	assert.Equal(t, 5, h.BestStreak)

	h, err = reopened.GetHabit(kept.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, h.CurrentStreak, "yesterday was done")
}

func TestEnsureInitializedKeepsTodaysStreak(t *testing.T) {
	f := newFixture(t)
	h := f.create(t, reduceHabit())

	res, err := f.svc.RecordDailyProgress(h.ID, 3, models.MoodHappy, true)
	require.NoError(t, err)
	require.Equal(t, 1, res.Habit.CurrentStreak)

	f.svc = f.open(t)
	got, err := f.svc.GetHabit(h.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentStreak, "reopening the same day keeps the streak")

	f.clock.AdvanceDays(1)
	f.svc = f.open(t)
	res, err = f.svc.RecordDailyProgress(h.ID, 3, models.MoodHappy, true)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Habit.CurrentStreak)
	assert.Equal(t, 2, res.Habit.BestStreak)
}

func TestEnsureInitializedRefreshesLapsedChallenges(t *testing.T) {
	f := newFixture(t)
	u, _ := f.users()
	old := u.Challenges[0].ID

	f.clock.AdvanceDays(7)
	reopened := f.open(t)
	cur, err := reopened.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, old, cur.Challenges[0].ID, "window still open on its end date")

	f.clock.AdvanceDays(1)
	reopened = f.open(t)
	cur, err = reopened.CurrentUser()
	require.NoError(t, err)
	assert.NotEqual(t, old, cur.Challenges[0].ID)
	assert.Equal(t, "2026-01-31", cur.Challenges[0].StartDate)
}

func TestSnapshotPersistsAfterMutations(t *testing.T) {
	f := newFixture(t)
	h := f.create(t, models.HabitInput{Name: "Exercise", Category: models.CategoryFitness, TargetValue: 30})
	_, err := f.svc.RecordDailyProgress(h.ID, 45, models.MoodHappy, true)
	require.NoError(t, err)
	u1, u2 := f.users()
	_, err = f.svc.CreateBattle(u1.ID, u2.ID, "Exercise")
	require.NoError(t, err)

	want, err := json.Marshal(f.svc.State())
	require.NoError(t, err)
	got, err := json.Marshal(*f.prov.state)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestSaveFailureDoesNotFailOperation(t *testing.T) {
	f := newFixture(t)
	h := f.create(t, models.HabitInput{Name: "Exercise", Category: models.CategoryFitness, TargetValue: 30})

	f.prov.saveErr = errors.New("disk full")
	res, err := f.svc.RecordDailyProgress(h.ID, 30, models.MoodNeutral, false)
	require.NoError(t, err)
	assert.Equal(t, 10, res.PointsEarned)
	assert.EqualError(t, f.svc.Repository().LastSaveError(), "disk full")

	got, err := f.svc.GetHabit(h.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.TotalPoints, "in-memory state stays authoritative")
}

func TestSubscribe(t *testing.T) {
	f := newFixture(t)
	var events []Event
	unsubscribe := f.svc.Subscribe(func(e Event) { events = append(events, e) })

	h := f.create(t, models.HabitInput{Name: "Exercise", Category: models.CategoryFitness, TargetValue: 30})
	require.Len(t, events, 2)
	assert.Equal(t, EventHabitsChanged, events[0].Kind)
	assert.Equal(t, h.ID, events[0].HabitID)
	assert.Equal(t, EventBadgeEarned, events[1].Kind, "first habit earns a badge")

	unsubscribe()
	_, err := f.svc.RecordDailyProgress(h.ID, 30, models.MoodNeutral, false)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
