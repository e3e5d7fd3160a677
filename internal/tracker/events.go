package tracker

// EventKind says what changed.
type EventKind string

const (
	EventCheckin        EventKind = "checkin"
	EventHabitsChanged  EventKind = "habits"
	EventUsersChanged   EventKind = "users"
	EventBattleChanged  EventKind = "battle"
	EventBadgeEarned    EventKind = "badge"
	EventChallengesDone EventKind = "challenges"
)

// Event is delivered to subscribers after a mutation has been saved.
type Event struct {
	Kind     EventKind
	UserID   string
	HabitID  string
	BattleID string
}

// Observer receives change notifications.
type Observer func(Event)

// Subscribe registers fn and returns a function that removes it.
func (s *Service) Subscribe(fn Observer) func() {
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() { delete(s.observers, id) }
}

func (s *Service) notify(events ...Event) {
	for _, e := range events {
		for id := 0; id < s.nextObs; id++ {
			if fn, ok := s.observers[id]; ok {
				fn(e)
			}
		}
	}
}
