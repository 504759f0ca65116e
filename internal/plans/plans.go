// Package plans saves named farm plans together with their computed totals.
package plans

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Simplici0/farmyield/internal/report"
	"github.com/Simplici0/farmyield/pkg/farm"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	// ErrNotFound is returned when no plan has the requested ID.
	ErrNotFound = errors.New("plan not found")
	// ErrMissingName is returned when saving a plan without a name.
	ErrMissingName = errors.New("plan name is required")
)

// Plan is a saved farm with the totals computed when it was saved.
type Plan struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Notes     string        `json:"notes,omitempty"`
	Farm      farm.Farm     `json:"farm"`
	Totals    report.Totals `json:"totals"`
	CreatedAt time.Time     `json:"createdAt"`
}

// ListItem is the summary of a plan returned by List.
type ListItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
	TotalYield  float64   `json:"totalYield"`
	TotalProfit float64   `json:"totalProfit"`
}

// Store persists plans in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore returns a Store over an already migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Save stores a new plan for f, computing its totals, and returns it.
func (s *Store) Save(ctx context.Context, name, notes string, f farm.Farm) (Plan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Plan{}, ErrMissingName
	}

	createdAt := s.now().UTC().Truncate(time.Second)
	plan := Plan{
		ID:        ulid.MustNew(ulid.Timestamp(createdAt), ulid.DefaultEntropy()).String(),
		Name:      name,
		Notes:     strings.TrimSpace(notes),
		Farm:      f,
		Totals:    report.Build(f).Totals,
		CreatedAt: createdAt,
	}

	entriesJSON, err := json.Marshal(plan.Farm)
	if err != nil {
		return Plan{}, fmt.Errorf("encode plan entries: %w", err)
	}
	totalsJSON, err := json.Marshal(plan.Totals)
	if err != nil {
		return Plan{}, fmt.Errorf("encode plan totals: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO farm_plans (id, name, notes, entries_json, totals_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, plan.ID, plan.Name, plan.Notes, string(entriesJSON), string(totalsJSON), createdAt.Format(timeLayout)); err != nil {
		return Plan{}, fmt.Errorf("insert plan: %w", err)
	}

	return plan, nil
}

// Get returns the plan with the given ID.
func (s *Store) Get(ctx context.Context, id string) (Plan, error) {
	var (
		plan                    Plan
		entriesJSON, totalsJSON string
		createdAt               string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(notes, ''), entries_json, totals_json, created_at
		FROM farm_plans
		WHERE id = ?
	`, id).Scan(&plan.ID, &plan.Name, &plan.Notes, &entriesJSON, &totalsJSON, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Plan{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return Plan{}, fmt.Errorf("query plan: %w", err)
	}

	if err := json.Unmarshal([]byte(entriesJSON), &plan.Farm); err != nil {
		return Plan{}, fmt.Errorf("decode plan entries: %w", err)
	}
	if err := json.Unmarshal([]byte(totalsJSON), &plan.Totals); err != nil {
		return Plan{}, fmt.Errorf("decode plan totals: %w", err)
	}
	if plan.CreatedAt, err = parseTime(createdAt); err != nil {
		return Plan{}, err
	}

	return plan, nil
}

// List returns plans whose name or notes contain query, newest first.
// An empty query lists every plan.
func (s *Store) List(ctx context.Context, query string) ([]ListItem, error) {
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, totals_json, created_at
		FROM farm_plans
		WHERE (? = '' OR name LIKE ? OR COALESCE(notes, '') LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer rows.Close()

	items := make([]ListItem, 0)
	for rows.Next() {
		var (
			item       ListItem
			totalsJSON string
			createdAt  string
		)
		if err := rows.Scan(&item.ID, &item.Name, &totalsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		item.TotalYield = extractTotalFromJSON(totalsJSON, "yield")
		item.TotalProfit = extractTotalFromJSON(totalsJSON, "profit")
		if item.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plans: %w", err)
	}

	return items, nil
}

// extractTotalFromJSON reads one figure from a stored totals document,
// returning 0 when the document or key is unusable.
func extractTotalFromJSON(totalsJSON, key string) float64 {
	var values map[string]float64
	if err := json.Unmarshal([]byte(totalsJSON), &values); err != nil {
		return 0
	}
	return values[key]
}

func parseTime(raw string) (time.Time, error) {
	for _, layout := range []string{timeLayout, time.RFC3339} {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse plan timestamp %q", raw)
}
