// Package tui is the interactive dashboard: the current user's habits with
// today's progress, check-ins through a form, freezes and user switching.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitduel/internal/cli/habits"
	"github.com/julianstephens/habitduel/internal/models"
	"github.com/julianstephens/habitduel/internal/tracker"
)

type sessionState int

const (
	stateHabits sessionState = iota
	stateCheckin
)

// changedMsg is sent when the service reports a saved mutation.
type changedMsg tracker.Event

type Model struct {
	svc    *tracker.Service
	events chan tracker.Event
	unsub  func()

	state sessionState
	keys  KeyMap
	help  help.Model
	list  list.Model

	form         *huh.Form
	checkin      *habits.CheckinForm
	checkinValue *string
	checkinHabit models.Habit

	dashboard tracker.Dashboard
	battle    *models.HabitBattle
	notice    string
	err       error

	quitting bool
	width    int
	height   int
}

func NewModel(svc *tracker.Service) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	m := Model{
		svc:    svc,
		events: make(chan tracker.Event, 16),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		list:   l,
	}
	events := m.events
	m.unsub = svc.Subscribe(func(e tracker.Event) {
		select {
		case events <- e:
		default:
		}
	})
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func waitForEvent(events <-chan tracker.Event) tea.Cmd {
	return func() tea.Msg {
		return changedMsg(<-events)
	}
}

// refresh reloads the dashboard and list from the service.
func (m *Model) refresh() {
	d, err := m.svc.Dashboard("")
	if err != nil {
		m.err = err
		return
	}
	m.dashboard = d

	items := make([]list.Item, len(d.User.Habits))
	for i, h := range d.User.Habits {
		items[i] = habitItem{habit: h, today: d.Today}
	}
	m.list.SetItems(items)

	m.battle, err = m.svc.GetTodaysBattle()
	if err != nil {
		m.err = err
	}
}

func (m Model) selected() (models.Habit, bool) {
	item, ok := m.list.SelectedItem().(habitItem)
	return item.habit, ok
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case changedMsg:
		m.refresh()
		return m, waitForEvent(m.events)
	}

	if m.state == stateCheckin {
		return m.updateCheckin(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	m.notice, m.err = "", nil
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		if m.unsub != nil {
			m.unsub()
		}
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(keyMsg, m.keys.Checkin):
		h, ok := m.selected()
		if !ok {
			return m, nil
		}
		if !h.IsActive {
			m.err = fmt.Errorf("%s is paused", h.Name)
			return m, nil
		}
		return m.startCheckin(h)

	case key.Matches(keyMsg, m.keys.Freeze):
		if h, ok := m.selected(); ok {
			m.freeze(h)
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Pause):
		if h, ok := m.selected(); ok {
			if _, err := m.svc.SetHabitActive(h.ID, !h.IsActive); err != nil {
				m.err = err
			}
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.NextUser):
		m.switchUser()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) startCheckin(h models.Habit) (tea.Model, tea.Cmd) {
	in := &habits.CheckinForm{Mood: models.MoodNeutral}
	value := ""
	if st, ok := h.StatusFor(m.dashboard.Today); ok && st.StreakBefore != nil {
		in.Mood = st.Mood
		in.ReplacementDone = st.ReplacementDone
		value = strconv.FormatFloat(st.Value, 'f', -1, 64)
	}

	m.checkin = in
	m.checkinValue = &value
	m.checkinHabit = h
	m.form = habits.NewCheckinForm(h, in, m.checkinValue)
	m.state = stateCheckin
	return m, m.form.Init()
}

func (m Model) updateCheckin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.state = stateHabits
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = stateHabits
		v, err := strconv.ParseFloat(strings.TrimSpace(*m.checkinValue), 64)
		if err != nil {
			m.err = fmt.Errorf("invalid value %q", *m.checkinValue)
			return m, cmd
		}
		res, err := m.svc.RecordDailyProgress(m.checkinHabit.ID, v, m.checkin.Mood, m.checkin.ReplacementDone)
		if err != nil {
			m.err = err
			return m, cmd
		}
		m.notice = checkinNotice(res)
	case huh.StateAborted:
		m.state = stateHabits
	}
	return m, cmd
}

func checkinNotice(res tracker.CheckinResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "+%d pts for %s", res.PointsEarned, res.Habit.Name)
	if res.StreakUpdated {
		fmt.Fprintf(&b, " · 🔥 %d", res.Habit.CurrentStreak)
	}
	if res.PerfectDayBonus > 0 {
		fmt.Fprintf(&b, " · perfect day +%d", res.PerfectDayBonus)
	}
	if res.PerfectDayRevoked {
		b.WriteString(" · perfect day lost")
	}
	for _, badge := range res.NewBadges {
		fmt.Fprintf(&b, " · %s %s", badge.Icon, badge.Name)
	}
	return b.String()
}

func (m *Model) freeze(h models.Habit) {
	used, err := m.svc.UseFreeze(h.ID)
	if err != nil {
		m.err = err
		return
	}
	if used {
		m.notice = fmt.Sprintf("❄ %s is frozen for today", h.Name)
		return
	}
	_, days, err := m.svc.FreezeStatus(h.ID)
	if err != nil {
		m.err = err
		return
	}
	m.err = fmt.Errorf("freeze available again in %d day(s)", days)
}

func (m *Model) switchUser() {
	users := m.svc.ListUsers()
	if len(users) < 2 {
		return
	}
	next := users[0]
	for i, u := range users {
		if u.ID == m.dashboard.User.ID {
			next = users[(i+1)%len(users)]
			break
		}
	}
	if err := m.svc.SwitchUser(next.ID); err != nil {
		m.err = err
		return
	}
	m.list.Select(0)
}
