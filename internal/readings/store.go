package readings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/aliverse/internal/bazi"
	"github.com/ziadkadry99/aliverse/internal/calendar"
	"github.com/ziadkadry99/aliverse/internal/db"
)

// Store provides CRUD operations for readings.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

const columns = `id, created_at, name, gender, birth_year, birth_month, birth_day, hour_slot,
	pillars, score, bucket, thresholds, favorable, unfavorable, fuel, hexagram`

// Save inserts a reading. If r.ID is empty a UUID is generated; ID and
// CreatedAt are written back into r.
func (s *Store) Save(ctx context.Context, r *Reading) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	var fuel sql.NullString
	var hexagram sql.NullInt64
	if r.Fuel != nil {
		fuel = sql.NullString{String: r.Fuel.String(), Valid: true}
		hexagram = sql.NullInt64{Int64: int64(r.Hexagram), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO readings (`+columns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.CreatedAt.Format(time.DateTime),
		r.Birth.Name,
		r.Birth.Gender,
		r.Birth.Year,
		r.Birth.Month,
		r.Birth.Day,
		r.Birth.Slot.Index,
		r.Chart.String(),
		r.Score,
		r.Bucket.String(),
		thresholdsColumn(r.Thresholds),
		joinElements(r.Favorable),
		joinElements(r.Unfavorable),
		fuel,
		hexagram,
	)
	if err != nil {
		return fmt.Errorf("inserting reading: %w", err)
	}
	return nil
}

// SetMatrix records the fuel and hexagram chosen for a reading.
func (s *Store) SetMatrix(ctx context.Context, id string, fuel bazi.Element, hexagram int) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE readings SET fuel = ?, hexagram = ? WHERE id = ?",
		fuel.String(), hexagram, id,
	)
	if err != nil {
		return fmt.Errorf("updating reading matrix: %w", err)
	}
	return expectOne(res, id)
}

// GetByID retrieves a single reading.
func (s *Store) GetByID(ctx context.Context, id string) (*Reading, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+columns+" FROM readings WHERE id = ?", id)
	r, err := scanInto(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r, err
}

// List returns readings matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter Filter) ([]Reading, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Bucket != nil {
		clauses = append(clauses, "bucket = ?")
		args = append(args, filter.Bucket.String())
	}
	if filter.Since != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}

	query := "SELECT " + columns + " FROM readings"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			query += " LIMIT -1"
		}
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying readings: %w", err)
	}
	defer rows.Close()

	var out []Reading
	for rows.Next() {
		r, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// Delete removes a reading.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM readings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting reading: %w", err)
	}
	return expectOne(res, id)
}

// Stats counts readings per bucket. Every bucket is present in the map.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	st := Stats{ByBucket: make(map[string]int, len(bazi.Buckets()))}
	for _, b := range bazi.Buckets() {
		st.ByBucket[b.String()] = 0
	}

	rows, err := s.db.QueryContext(ctx, "SELECT bucket, COUNT(*) FROM readings GROUP BY bucket")
	if err != nil {
		return st, fmt.Errorf("counting readings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bucket string
			n      int
		)
		if err := rows.Scan(&bucket, &n); err != nil {
			return st, err
		}
		st.ByBucket[bucket] = n
		st.Total += n
	}
	return st, rows.Err()
}

func expectOne(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Reading, error) {
	var (
		r                      Reading
		ts, pillars, bucket    string
		thresholds             string
		favorable, unfavorable string
		slot                   int
		fuel                   sql.NullString
		hexagram               sql.NullInt64
	)

	err := sc.Scan(
		&r.ID, &ts, &r.Birth.Name, &r.Birth.Gender,
		&r.Birth.Year, &r.Birth.Month, &r.Birth.Day, &slot,
		&pillars, &r.Score, &bucket, &thresholds, &favorable, &unfavorable,
		&fuel, &hexagram,
	)
	if err != nil {
		return nil, err
	}

	if t, parseErr := time.Parse(time.DateTime, ts); parseErr == nil {
		r.CreatedAt = t
	} else if t, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
		r.CreatedAt = t
	}

	if r.Birth.Slot, err = calendar.SlotByIndex(slot); err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.ID, err)
	}
	if r.Chart, err = bazi.ParseChart(pillars); err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.ID, err)
	}
	if r.Bucket, err = bazi.ParseBucket(bucket); err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.ID, err)
	}
	// Rows written before thresholds were recorded leave the column empty.
	if thresholds != "" {
		if r.Thresholds, err = bazi.ParseThresholds(thresholds); err != nil {
			return nil, fmt.Errorf("reading %s: %w", r.ID, err)
		}
	}
	if r.Favorable, err = splitElements(favorable); err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.ID, err)
	}
	if r.Unfavorable, err = splitElements(unfavorable); err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.ID, err)
	}

	if fuel.Valid {
		el, err := bazi.ParseElement(fuel.String)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", r.ID, err)
		}
		r.Fuel = &el
	}
	if hexagram.Valid {
		r.Hexagram = int(hexagram.Int64)
	}

	return &r, nil
}

func thresholdsColumn(t bazi.Thresholds) string {
	if t == (bazi.Thresholds{}) {
		return ""
	}
	return t.String()
}

func joinElements(els []bazi.Element) string {
	parts := make([]string, len(els))
	for i, e := range els {
		parts[i] = e.String()
	}
	return strings.Join(parts, ",")
}

func splitElements(s string) ([]bazi.Element, error) {
	if s == "" {
		return nil, nil
	}
	var out []bazi.Element
	for _, part := range strings.Split(s, ",") {
		e, err := bazi.ParseElement(part)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
