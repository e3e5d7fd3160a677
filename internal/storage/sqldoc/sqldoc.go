// Package sqldoc maps a whole snapshot onto per-collection tables. Each row
// holds one entity as a JSON document keyed by id, with a position column to
// keep slice order stable across a round trip.
package sqldoc

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/habitduel/internal/migration"
	"github.com/julianstephens/habitduel/internal/models"
)

const (
	metaVersion       = "version"
	metaCurrentUserID = "current_user_id"
	metaSettings      = "settings"
)

// ErrEmpty is returned by Load when the database holds no snapshot yet.
var ErrEmpty = errors.New("no snapshot stored")

// DecodeError wraps a row whose document could not be decoded.
type DecodeError struct {
	Table string
	ID    string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s row %q: %v", e.Table, e.ID, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// userDoc is the users row: the profile without owned collections.
type userDoc struct {
	ID      string             `json:"id"`
	Profile models.UserProfile `json:"profile"`
}

type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// bind rewrites ? placeholders for the dialect.
func bind(d migration.Dialect, query string) string {
	if d != migration.Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(d.Placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Load reads every table and reassembles the snapshot.
func Load(db *sql.DB, d migration.Dialect) (models.State, error) {
	var state models.State

	meta, err := loadMeta(db)
	if err != nil {
		return state, err
	}
	if len(meta) == 0 {
		return state, ErrEmpty
	}

	if v, ok := meta[metaVersion]; ok {
		if err := json.Unmarshal([]byte(v), &state.Version); err != nil {
			return state, &DecodeError{Table: "meta", ID: metaVersion, Err: err}
		}
	}
	state.CurrentUserID = meta[metaCurrentUserID]
	if v, ok := meta[metaSettings]; ok {
		if err := json.Unmarshal([]byte(v), &state.Settings); err != nil {
			return state, &DecodeError{Table: "meta", ID: metaSettings, Err: err}
		}
	}

	users, err := loadUsers(db)
	if err != nil {
		return state, err
	}
	state.Users = users

	byUser := map[string]*models.User{}
	for i := range state.Users {
		byUser[state.Users[i].ID] = &state.Users[i]
	}

	if err := eachDoc(db, "SELECT id, user_id, doc FROM habits ORDER BY position", "habits", func(id, owner string, doc []byte) error {
		var h models.Habit
		if err := json.Unmarshal(doc, &h); err != nil {
			return &DecodeError{Table: "habits", ID: id, Err: err}
		}
		if u, ok := byUser[owner]; ok {
			u.Habits = append(u.Habits, h)
		}
		return nil
	}); err != nil {
		return state, err
	}

	if err := eachDoc(db, "SELECT id, user_id, doc FROM challenges ORDER BY position", "challenges", func(id, owner string, doc []byte) error {
		var c models.MiniChallenge
		if err := json.Unmarshal(doc, &c); err != nil {
			return &DecodeError{Table: "challenges", ID: id, Err: err}
		}
		if u, ok := byUser[owner]; ok {
			u.Challenges = append(u.Challenges, c)
		}
		return nil
	}); err != nil {
		return state, err
	}

	if err := loadBattles(db, d, &state); err != nil {
		return state, err
	}

	state.Normalize()
	return state, nil
}

func loadMeta(db querier) (map[string]string, error) {
	rows, err := db.Query("SELECT key, value FROM meta")
	if err != nil {
		return nil, fmt.Errorf("failed to query meta: %w", err)
	}
	defer rows.Close()

	meta := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan meta: %w", err)
		}
		meta[k] = v
	}
	return meta, rows.Err()
}

func loadUsers(db querier) ([]models.User, error) {
	rows, err := db.Query("SELECT id, doc FROM users ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var id string
		var doc []byte
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		var ud userDoc
		if err := json.Unmarshal(doc, &ud); err != nil {
			return nil, &DecodeError{Table: "users", ID: id, Err: err}
		}
		users = append(users, models.User{ID: ud.ID, Profile: ud.Profile})
	}
	return users, rows.Err()
}

func eachDoc(db querier, query, table string, fn func(id, owner string, doc []byte) error) error {
	rows, err := db.Query(query)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, owner string
		var doc []byte
		if err := rows.Scan(&id, &owner, &doc); err != nil {
			return fmt.Errorf("failed to scan %s: %w", table, err)
		}
		if err := fn(id, owner, doc); err != nil {
			return err
		}
	}
	return rows.Err()
}

func loadBattles(db querier, d migration.Dialect, state *models.State) error {
	rows, err := db.Query(bind(d, "SELECT id, is_active, doc FROM battles ORDER BY position"))
	if err != nil {
		return fmt.Errorf("failed to query battles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var active bool
		var doc []byte
		if err := rows.Scan(&id, &active, &doc); err != nil {
			return fmt.Errorf("failed to scan battle: %w", err)
		}
		var b models.HabitBattle
		if err := json.Unmarshal(doc, &b); err != nil {
			return &DecodeError{Table: "battles", ID: id, Err: err}
		}
		if active {
			state.ActiveBattle = &b
			continue
		}
		state.Battles = append(state.Battles, b)
	}
	return rows.Err()
}

type row struct {
	id    string
	owner string
	doc   []byte
}

// Save replaces the stored snapshot inside one transaction. Rows are upserted
// by id and rows no longer present in the snapshot are deleted.
func Save(db *sql.DB, d migration.Dialect, state models.State) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	version, err := json.Marshal(state.Version)
	if err != nil {
		return fmt.Errorf("failed to encode version: %w", err)
	}
	settings, err := json.Marshal(state.Settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	for k, v := range map[string]string{
		metaVersion:       string(version),
		metaCurrentUserID: state.CurrentUserID,
		metaSettings:      string(settings),
	} {
		if _, err = tx.Exec(bind(d, "INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value"), k, v); err != nil {
			return fmt.Errorf("failed to save meta %s: %w", k, err)
		}
	}

	var users, habits, challenges []row
	for _, u := range state.Users {
		doc, err := json.Marshal(userDoc{ID: u.ID, Profile: u.Profile})
		if err != nil {
			return fmt.Errorf("failed to encode user %s: %w", u.ID, err)
		}
		users = append(users, row{id: u.ID, doc: doc})

		for _, h := range u.Habits {
			doc, err := json.Marshal(h)
			if err != nil {
				return fmt.Errorf("failed to encode habit %s: %w", h.ID, err)
			}
			habits = append(habits, row{id: h.ID, owner: u.ID, doc: doc})
		}
		for _, c := range u.Challenges {
			doc, err := json.Marshal(c)
			if err != nil {
				return fmt.Errorf("failed to encode challenge %s: %w", c.ID, err)
			}
			challenges = append(challenges, row{id: c.ID, owner: u.ID, doc: doc})
		}
	}

	if err = replaceRows(tx, d, "users", "", users); err != nil {
		return err
	}
	if err = replaceRows(tx, d, "habits", "user_id", habits); err != nil {
		return err
	}
	if err = replaceRows(tx, d, "challenges", "user_id", challenges); err != nil {
		return err
	}
	if err = saveBattles(tx, d, state); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// replaceRows upserts rows into table and deletes every other id.
func replaceRows(tx *sql.Tx, d migration.Dialect, table, ownerCol string, rows []row) error {
	cols, vals, update := "id, position, doc", "?, ?, ?", "position = excluded.position, doc = excluded.doc"
	if ownerCol != "" {
		cols = "id, " + ownerCol + ", position, doc"
		vals = "?, ?, ?, ?"
		update = ownerCol + " = excluded." + ownerCol + ", " + update
	}
	upsert := bind(d, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) DO UPDATE SET %s", table, cols, vals, update))

	keep := make([]any, 0, len(rows))
	for i, r := range rows {
		args := []any{r.id, i, string(r.doc)}
		if ownerCol != "" {
			args = []any{r.id, r.owner, i, string(r.doc)}
		}
		if _, err := tx.Exec(upsert, args...); err != nil {
			return fmt.Errorf("failed to save %s row %s: %w", table, r.id, err)
		}
		keep = append(keep, r.id)
	}

	return deleteOthers(tx, d, table, keep)
}

func deleteOthers(tx *sql.Tx, d migration.Dialect, table string, keep []any) error {
	query := "DELETE FROM " + table
	if len(keep) > 0 {
		query += " WHERE id NOT IN (" + strings.TrimSuffix(strings.Repeat("?, ", len(keep)), ", ") + ")"
	}
	if _, err := tx.Exec(bind(d, query), keep...); err != nil {
		return fmt.Errorf("failed to prune %s: %w", table, err)
	}
	return nil
}

func saveBattles(tx *sql.Tx, d migration.Dialect, state models.State) error {
	upsert := bind(d, "INSERT INTO battles (id, is_active, position, doc) VALUES (?, ?, ?, ?) ON CONFLICT (id) DO UPDATE SET is_active = excluded.is_active, position = excluded.position, doc = excluded.doc")

	var keep []any
	put := func(b models.HabitBattle, active bool, pos int) error {
		doc, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("failed to encode battle %s: %w", b.ID, err)
		}
		if _, err := tx.Exec(upsert, b.ID, active, pos, string(doc)); err != nil {
			return fmt.Errorf("failed to save battle %s: %w", b.ID, err)
		}
		keep = append(keep, b.ID)
		return nil
	}

	for i, b := range state.Battles {
		if err := put(b, false, i); err != nil {
			return err
		}
	}
	if state.ActiveBattle != nil {
		if err := put(*state.ActiveBattle, true, len(state.Battles)); err != nil {
			return err
		}
	}

	return deleteOthers(tx, d, "battles", keep)
}
