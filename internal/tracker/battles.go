package tracker

import (
	"github.com/julianstephens/habitduel/internal/badge"
	"github.com/julianstephens/habitduel/internal/battle"
	apperrors "github.com/julianstephens/habitduel/internal/errors"
	"github.com/julianstephens/habitduel/internal/logger"
	"github.com/julianstephens/habitduel/internal/models"
)

// CreateBattle starts today's battle between two users. An empty or unknown
// habit name picks a random eligible template.
func (s *Service) CreateBattle(user1ID, user2ID, habitName string) (models.HabitBattle, error) {
	if _, err := s.GetTodaysBattle(); err != nil {
		return models.HabitBattle{}, err
	}
	if s.state.ActiveBattle != nil {
		return models.HabitBattle{}, apperrors.ErrBattleInProgress
	}
	if user1ID == user2ID {
		return models.HabitBattle{}, apperrors.Invalid("a battle needs two different users")
	}
	u1, err := s.user(user1ID)
	if err != nil {
		return models.HabitBattle{}, err
	}
	u2, err := s.user(user2ID)
	if err != nil {
		return models.HabitBattle{}, err
	}

	tmpl := battle.PickTemplate(habitName, s.rnd)
	b := battle.New(s.newID(), s.today(), *u1, *u2, tmpl)
	s.state.ActiveBattle = &b
	s.save()

	logger.Info("Battle started", "habit", b.HabitName, "user1", u1.Profile.Name, "user2", u2.Profile.Name)
	s.notify(Event{Kind: EventBattleChanged, BattleID: b.ID})
	return b, nil
}

// UpdateBattle sets userID's value in the active battle. battleID may be
// empty to mean the active battle. The battle is finalized once both
// participants complete or the cutoff hour has passed; the returned copy
// reflects that.
func (s *Service) UpdateBattle(battleID, userID string, value float64) (models.HabitBattle, error) {
	if _, err := s.GetTodaysBattle(); err != nil {
		return models.HabitBattle{}, err
	}
	b := s.state.ActiveBattle
	if b == nil {
		return models.HabitBattle{}, apperrors.ErrNoBattle
	}
	if battleID != "" && battleID != b.ID {
		return models.HabitBattle{}, apperrors.NotFound("battle", battleID)
	}
	if value < 0 {
		return models.HabitBattle{}, apperrors.Invalid("value must not be negative")
	}

	finalize, err := battle.UpdateProgress(b, userID, value, s.clock.Now())
	if err != nil {
		return models.HabitBattle{}, err
	}

	out := *b
	var badgeEvents []Event
	if finalize {
		out, badgeEvents = s.finalizeBattle()
	}
	s.save()
	s.notify(append([]Event{{Kind: EventBattleChanged, UserID: userID, BattleID: out.ID}}, badgeEvents...)...)
	return out, nil
}

// GetTodaysBattle returns the active battle for today. A battle left over
// from an earlier day is finalized into history and nil is returned.
func (s *Service) GetTodaysBattle() (*models.HabitBattle, error) {
	b := s.state.ActiveBattle
	if b == nil {
		return nil, nil
	}
	if b.Date == s.today() {
		out := *b
		return &out, nil
	}

	done, badgeEvents := s.finalizeBattle()
	s.save()
	logger.Debug("Swept stale battle", "battle", done.ID, "date", done.Date)
	s.notify(append([]Event{{Kind: EventBattleChanged, BattleID: done.ID}}, badgeEvents...)...)
	return nil, nil
}

// finalizeBattle completes the active battle, credits the bonus to the
// winner and moves it to history. It returns the badge events the bonus
// caused; callers notify them after saving.
func (s *Service) finalizeBattle() (models.HabitBattle, []Event) {
	b := s.state.ActiveBattle
	winnerID := battle.Complete(b)

	var events []Event
	if winnerID != "" {
		if u, ok := s.state.User(winnerID); ok {
			u.Profile.TotalPoints += b.BonusPoints
			earned := badge.CheckPoints(&u.Profile, s.timestamp())
			for _, e := range earned {
				logger.ForUser(u.ID, u.Profile.Name).Battle(b.ID).Info("Badge earned", "badge", e.ID)
			}
			if len(earned) > 0 {
				events = append(events, Event{Kind: EventBadgeEarned, UserID: u.ID})
			}
		}
	}

	done := *b
	s.state.Battles = append(s.state.Battles, done)
	s.state.ActiveBattle = nil

	logger.Info("Battle finished", "battle", done.ID, "status", done.Status, "winner", winnerID)
	return done, events
}

// BattleHistory returns finished battles, oldest first.
func (s *Service) BattleHistory() []models.HabitBattle {
	return append([]models.HabitBattle(nil), s.state.Battles...)
}

// BattleRecord tallies userID's wins, losses and draws.
func (s *Service) BattleRecord(userID string) (battle.Record, error) {
	if _, err := s.user(userID); err != nil {
		return battle.Record{}, err
	}
	return battle.RecordFor(s.state.Battles, userID), nil
}

// Compare returns the head-to-head comparison of two users.
func (s *Service) Compare(user1ID, user2ID string) (battle.Comparison, []battle.HabitComparison, error) {
	u1, err := s.user(user1ID)
	if err != nil {
		return battle.Comparison{}, nil, err
	}
	u2, err := s.user(user2ID)
	if err != nil {
		return battle.Comparison{}, nil, err
	}
	today := s.today()
	return battle.CompareUsers(*u1, *u2, today), battle.CompareHabits(*u1, *u2, today), nil
}
