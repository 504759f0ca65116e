// Package catalog stores plant descriptions in SQLite and reads versioned
// YAML catalog files.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/farmyield/pkg/farm"
)

var (
	// ErrNotFound is returned when no plant has the requested name.
	ErrNotFound = errors.New("plant not found")
	// ErrConflict is returned when a plant with the same name already exists.
	ErrConflict = errors.New("plant already exists")
	// ErrMissingName is returned when storing a plant without a name.
	ErrMissingName = errors.New("plant name is required")
)

// Store is a plant catalog backed by SQLite.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store over an already migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create inserts p into the catalog.
func (s *Store) Create(ctx context.Context, p farm.Plant) error {
	if err := validateForStore(p); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create plant transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertPlant(ctx, tx, p); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create plant transaction: %w", err)
	}
	return nil
}

// Get returns the plant called name.
func (s *Store) Get(ctx context.Context, name string) (farm.Plant, error) {
	var (
		id int64
		p  farm.Plant
	)
	var cost, salePrice sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, yield, cost, sale_price
		FROM plants
		WHERE name = ?
	`, name).Scan(&id, &p.Name, &p.Yield, &cost, &salePrice)
	if errors.Is(err, sql.ErrNoRows) {
		return farm.Plant{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return farm.Plant{}, fmt.Errorf("query plant %q: %w", name, err)
	}
	p.Cost = nullableFloat(cost)
	p.SalePrice = nullableFloat(salePrice)

	factors, err := s.loadFactors(ctx, `WHERE plant_id = ?`, id)
	if err != nil {
		return farm.Plant{}, err
	}
	p.Factor = factors[id]

	return p, nil
}

// List returns every plant ordered by name.
func (s *Store) List(ctx context.Context) ([]farm.Plant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, yield, cost, sale_price
		FROM plants
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query plants: %w", err)
	}
	defer rows.Close()

	var ids []int64
	plants := make([]farm.Plant, 0)
	for rows.Next() {
		var (
			id              int64
			p               farm.Plant
			cost, salePrice sql.NullFloat64
		)
		if err := rows.Scan(&id, &p.Name, &p.Yield, &cost, &salePrice); err != nil {
			return nil, fmt.Errorf("scan plant: %w", err)
		}
		p.Cost = nullableFloat(cost)
		p.SalePrice = nullableFloat(salePrice)
		ids = append(ids, id)
		plants = append(plants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plants: %w", err)
	}
	rows.Close()

	factors, err := s.loadFactors(ctx, "")
	if err != nil {
		return nil, err
	}
	for i, id := range ids {
		plants[i].Factor = factors[id]
	}

	return plants, nil
}

// Update replaces the plant called name with p. p.Name may rename the plant.
func (s *Store) Update(ctx context.Context, name string, p farm.Plant) error {
	if err := validateForStore(p); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update plant transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM plants WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("query plant %q: %w", name, err)
	}

	if p.Name != name {
		exists, err := plantExists(ctx, tx, p.Name)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %q", ErrConflict, p.Name)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE plants
		SET
			name = ?,
			yield = ?,
			cost = ?,
			sale_price = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, p.Name, p.Yield, nullFloat(p.Cost), nullFloat(p.SalePrice), id); err != nil {
		return fmt.Errorf("update plant %q: %w", name, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM plant_factors WHERE plant_id = ?`, id); err != nil {
		return fmt.Errorf("clear factors of plant %q: %w", name, err)
	}
	if err := insertFactors(ctx, tx, id, p.Factor); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update plant transaction: %w", err)
	}
	return nil
}

// Delete removes the plant called name and its factor profiles.
func (s *Store) Delete(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM plants WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete plant %q: %w", name, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete plant %q: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

// Exists reports whether a plant called name is stored.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	return plantExists(ctx, s.db, name)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func plantExists(ctx context.Context, q queryer, name string) (bool, error) {
	var exists bool
	if err := q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM plants WHERE name = ? LIMIT 1)`, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("check plant existence: %w", err)
	}
	return exists, nil
}

// InsertTx inserts p inside an existing transaction. It fails with
// ErrConflict when the name is taken.
func InsertTx(ctx context.Context, tx *sql.Tx, p farm.Plant) error {
	if err := validateForStore(p); err != nil {
		return err
	}
	return insertPlant(ctx, tx, p)
}

func insertPlant(ctx context.Context, tx *sql.Tx, p farm.Plant) error {
	exists, err := plantExists(ctx, tx, p.Name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %q", ErrConflict, p.Name)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO plants (name, yield, cost, sale_price)
		VALUES (?, ?, ?, ?)
	`, p.Name, p.Yield, nullFloat(p.Cost), nullFloat(p.SalePrice))
	if err != nil {
		return fmt.Errorf("insert plant %q: %w", p.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("read id of plant %q: %w", p.Name, err)
	}

	return insertFactors(ctx, tx, id, p.Factor)
}

func insertFactors(ctx context.Context, tx *sql.Tx, plantID int64, factors *farm.PlantFactors) error {
	if factors == nil {
		return nil
	}
	for _, dim := range farm.Dimensions() {
		profile := factors.Profile(dim)
		if profile == nil {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO plant_factors (plant_id, dimension, low, medium, high)
			VALUES (?, ?, ?, ?, ?)
		`, plantID, string(dim), profile.Low, profile.Medium, profile.High); err != nil {
			return fmt.Errorf("insert %s factor: %w", dim, err)
		}
	}
	return nil
}

func (s *Store) loadFactors(ctx context.Context, where string, args ...any) (map[int64]*farm.PlantFactors, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT plant_id, dimension, low, medium, high
		FROM plant_factors
		`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query plant factors: %w", err)
	}
	defer rows.Close()

	factors := make(map[int64]*farm.PlantFactors)
	for rows.Next() {
		var (
			plantID int64
			rawDim  string
			profile farm.FactorProfile
		)
		if err := rows.Scan(&plantID, &rawDim, &profile.Low, &profile.Medium, &profile.High); err != nil {
			return nil, fmt.Errorf("scan plant factor: %w", err)
		}
		dim, err := farm.ParseDimension(rawDim)
		if err != nil {
			return nil, fmt.Errorf("plant factor of plant %d: %w", plantID, err)
		}

		pf, ok := factors[plantID]
		if !ok {
			pf = &farm.PlantFactors{}
			factors[plantID] = pf
		}
		pf.SetProfile(dim, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plant factors: %w", err)
	}

	return factors, nil
}

func validateForStore(p farm.Plant) error {
	if p.Name == "" {
		return ErrMissingName
	}
	return p.Validate()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return farm.Float(v.Float64)
}
