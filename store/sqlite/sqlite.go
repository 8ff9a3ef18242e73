/*
Package sqlite provides the SQLite-backed persistence layer.

PURPOSE:
  Implements planning.Repository plus team-member storage using SQLite.
  In production the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  events:      planning records (one row per event/task)
  event_team:  assigned member ids per event
  conflicts:   conflict records detected at create/update time
  members:     team members with pay classification for compliance reports

OVERLAP QUERY:
  FindOverlapping implements the strict-overlap contract in SQL:
    start_at < :end AND end_at > :start
  filtered to non-cancelled rows of one organization, optionally excluding
  one id (self-exclusion on updates). Touching endpoints never match.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. Two concurrent creations can still
  both pass their conflict checks before either commits (check-then-act);
  callers needing a hard guarantee must layer a constraint or serialized
  transaction on top.

WAL MODE:
  SQLite is opened with WAL for better concurrency: readers don't block,
  single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/plannitech.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - planning/event.go: the Repository contract
  - planning/store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/lucascenseur/plannitech/planning"
)

// timeLayout is fixed-width so stored timestamps compare correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store implements planning.Repository and member storage using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		organization_id TEXT NOT NULL,
		title TEXT NOT NULL,
		start_at TEXT NOT NULL,
		end_at TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_org_window
		ON events(organization_id, start_at, end_at);
	CREATE INDEX IF NOT EXISTS idx_events_org_status
		ON events(organization_id, status);

	CREATE TABLE IF NOT EXISTS event_team (
		event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		member_id TEXT NOT NULL,
		PRIMARY KEY (event_id, member_id)
	);

	CREATE INDEX IF NOT EXISTS idx_event_team_member ON event_team(member_id);

	CREATE TABLE IF NOT EXISTS conflicts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		conflict_type TEXT NOT NULL,
		severity TEXT NOT NULL,
		description TEXT NOT NULL,
		affected_ids TEXT NOT NULL,
		detected_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_conflicts_event ON conflicts(event_id);

	CREATE TABLE IF NOT EXISTS members (
		id TEXT PRIMARY KEY,
		organization_id TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		hourly_rate TEXT NOT NULL,
		intermittent INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_members_org ON members(organization_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EVENTS
// =============================================================================

func (s *Store) CreateEvent(ctx context.Context, event planning.Event) (planning.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return planning.Event{}, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO events (id, organization_id, title, start_at, end_at, location, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.OrganizationID, event.Title,
		event.Start.UTC().Format(timeLayout), event.End.UTC().Format(timeLayout),
		event.Location, string(event.Status),
		event.CreatedAt.UTC().Format(timeLayout), event.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return planning.Event{}, fmt.Errorf("failed to insert event: %w", err)
	}

	if err := replaceTeam(ctx, tx, event.ID, event.TeamIDs); err != nil {
		return planning.Event{}, err
	}

	if err := tx.Commit(); err != nil {
		return planning.Event{}, err
	}
	return event, nil
}

func (s *Store) GetEvent(ctx context.Context, orgID, id string) (planning.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events, err := s.queryEvents(ctx, `
		SELECT id, organization_id, title, start_at, end_at, location, status, created_at, updated_at
		FROM events WHERE organization_id = ? AND id = ?`, orgID, id)
	if err != nil {
		return planning.Event{}, err
	}
	if len(events) == 0 {
		return planning.Event{}, planning.ErrEventNotFound
	}
	return events[0], nil
}

func (s *Store) UpdateEvent(ctx context.Context, event planning.Event) (planning.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return planning.Event{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE events
		SET title = ?, start_at = ?, end_at = ?, location = ?, status = ?, updated_at = ?
		WHERE organization_id = ? AND id = ?`,
		event.Title,
		event.Start.UTC().Format(timeLayout), event.End.UTC().Format(timeLayout),
		event.Location, string(event.Status), event.UpdatedAt.UTC().Format(timeLayout),
		event.OrganizationID, event.ID,
	)
	if err != nil {
		return planning.Event{}, fmt.Errorf("failed to update event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return planning.Event{}, planning.ErrEventNotFound
	}

	if err := replaceTeam(ctx, tx, event.ID, event.TeamIDs); err != nil {
		return planning.Event{}, err
	}

	if err := tx.Commit(); err != nil {
		return planning.Event{}, err
	}
	return event, nil
}

func (s *Store) DeleteEvent(ctx context.Context, orgID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM events WHERE organization_id = ? AND id = ?`, orgID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return planning.ErrEventNotFound
	}
	return nil
}

func (s *Store) ListEvents(ctx context.Context, orgID string) ([]planning.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryEvents(ctx, `
		SELECT id, organization_id, title, start_at, end_at, location, status, created_at, updated_at
		FROM events WHERE organization_id = ?
		ORDER BY start_at, id`, orgID)
}

// FindOverlapping returns non-cancelled events of the organization strictly
// overlapping [start, end), excluding excludeID when non-empty.
func (s *Store) FindOverlapping(ctx context.Context, orgID string, start, end time.Time, excludeID string) ([]planning.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, organization_id, title, start_at, end_at, location, status, created_at, updated_at
		FROM events
		WHERE organization_id = ?
		  AND status != ?
		  AND start_at < ?
		  AND end_at > ?`
	args := []any{orgID, string(planning.StatusCancelled),
		end.UTC().Format(timeLayout), start.UTC().Format(timeLayout)}

	if excludeID != "" {
		query += ` AND id != ?`
		args = append(args, excludeID)
	}
	query += ` ORDER BY start_at, id`

	return s.queryEvents(ctx, query, args...)
}

func (s *Store) queryEvents(ctx context.Context, query string, args ...any) ([]planning.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []planning.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach team assignments.
	for i := range events {
		team, err := s.teamFor(ctx, events[i].ID)
		if err != nil {
			return nil, err
		}
		events[i].TeamIDs = team
	}
	return events, nil
}

func scanEvent(rows *sql.Rows) (planning.Event, error) {
	var (
		event                                planning.Event
		status                               string
		startStr, endStr, createdAt, updated string
	)
	if err := rows.Scan(&event.ID, &event.OrganizationID, &event.Title,
		&startStr, &endStr, &event.Location, &status, &createdAt, &updated); err != nil {
		return planning.Event{}, err
	}

	var err error
	if event.Start, err = time.Parse(timeLayout, startStr); err != nil {
		return planning.Event{}, fmt.Errorf("malformed start_at: %w", err)
	}
	if event.End, err = time.Parse(timeLayout, endStr); err != nil {
		return planning.Event{}, fmt.Errorf("malformed end_at: %w", err)
	}
	if event.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return planning.Event{}, fmt.Errorf("malformed created_at: %w", err)
	}
	if event.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return planning.Event{}, fmt.Errorf("malformed updated_at: %w", err)
	}
	event.Status = planning.Status(status)
	return event, nil
}

func (s *Store) teamFor(ctx context.Context, eventID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT member_id FROM event_team WHERE event_id = ? ORDER BY member_id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var team []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		team = append(team, id)
	}
	return team, rows.Err()
}

func replaceTeam(ctx context.Context, tx *sql.Tx, eventID string, teamIDs []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM event_team WHERE event_id = ?`, eventID); err != nil {
		return err
	}
	for _, memberID := range teamIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO event_team (event_id, member_id) VALUES (?, ?)`, eventID, memberID); err != nil {
			return fmt.Errorf("failed to assign member %s: %w", memberID, err)
		}
	}
	return nil
}

// =============================================================================
// CONFLICTS
// =============================================================================

// SaveConflicts replaces the recorded conflicts of an event with the
// latest detection result.
func (s *Store) SaveConflicts(ctx context.Context, eventID string, conflicts []planning.Conflict) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM conflicts WHERE event_id = ?`, eventID); err != nil {
		return err
	}

	detectedAt := time.Now().UTC().Format(timeLayout)
	for _, c := range conflicts {
		affected, err := json.Marshal(c.AffectedIDs)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO conflicts (event_id, conflict_type, severity, description, affected_ids, detected_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			eventID, string(c.Type), string(c.Severity), c.Description, string(affected), detectedAt)
		if err != nil {
			return fmt.Errorf("failed to insert conflict: %w", err)
		}
	}

	return tx.Commit()
}

// ConflictsFor returns the recorded conflicts of an event, in the order
// they were detected.
func (s *Store) ConflictsFor(ctx context.Context, eventID string) ([]planning.Conflict, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT conflict_type, severity, description, affected_ids
		FROM conflicts WHERE event_id = ? ORDER BY id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conflicts []planning.Conflict
	for rows.Next() {
		var (
			c        planning.Conflict
			ctype    string
			severity string
			affected string
		)
		if err := rows.Scan(&ctype, &severity, &c.Description, &affected); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(affected), &c.AffectedIDs); err != nil {
			return nil, fmt.Errorf("malformed affected_ids: %w", err)
		}
		c.Type = planning.ConflictType(ctype)
		c.Severity = planning.Severity(severity)
		conflicts = append(conflicts, c)
	}
	return conflicts, rows.Err()
}

// =============================================================================
// MEMBERS
// =============================================================================

// Member is a team member with the pay classification the compliance
// calculator needs.
type Member struct {
	ID             string
	OrganizationID string
	Name           string
	Email          string
	HourlyRate     decimal.Decimal
	Intermittent   bool
	CreatedAt      time.Time
}

func (s *Store) SaveMember(ctx context.Context, m Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO members (id, organization_id, name, email, hourly_rate, intermittent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			organization_id = excluded.organization_id,
			name = excluded.name,
			email = excluded.email,
			hourly_rate = excluded.hourly_rate,
			intermittent = excluded.intermittent`,
		m.ID, m.OrganizationID, m.Name, m.Email,
		m.HourlyRate.String(), boolToInt(m.Intermittent),
		m.CreatedAt.UTC().Format(timeLayout))
	return err
}

func (s *Store) GetMember(ctx context.Context, id string) (*Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, organization_id, name, email, hourly_rate, intermittent, created_at
		FROM members WHERE id = ?`, id)

	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Store) ListMembers(ctx context.Context, orgID string) ([]Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, organization_id, name, email, hourly_rate, intermittent, created_at
		FROM members WHERE organization_id = ? ORDER BY name, id`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*Member, error) {
	var (
		m            Member
		rate         string
		intermittent int
		createdAt    string
	)
	if err := row.Scan(&m.ID, &m.OrganizationID, &m.Name, &m.Email, &rate, &intermittent, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if m.HourlyRate, err = decimal.NewFromString(rate); err != nil {
		return nil, fmt.Errorf("malformed hourly_rate: %w", err)
	}
	if m.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("malformed created_at: %w", err)
	}
	m.Intermittent = intermittent != 0
	return &m, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Reset wipes all data. Intended for tests and local development only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"conflicts", "event_team", "events", "members"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
