package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/edusheet/internal/worksheet"
)

// worksheetRepo stores each worksheet as a JSON document with a few
// denormalized columns for listing.
type worksheetRepo struct {
	db  querier
	now func() time.Time
}

func (r *worksheetRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *worksheetRepo) Save(ctx context.Context, ws *worksheet.Worksheet) error {
	if ws.ID == "" {
		ws.ID = uuid.NewString()
	}
	if err := ws.Validate(); err != nil {
		return err
	}

	now := r.clock().UTC().Truncate(time.Millisecond)
	existing, err := r.Get(ctx, ws.ID)
	switch {
	case err == nil:
		ws.CreatedAt = existing.CreatedAt
	case errors.Is(err, ErrNotFound):
		if ws.CreatedAt.IsZero() {
			ws.CreatedAt = now
		}
	default:
		return err
	}
	ws.UpdatedAt = now
	ws.AnswerKey = worksheet.BuildAnswerKey(ws.Questions)

	return r.put(ctx, ws)
}

// put writes ws as-is. Used by Save and by backup import, which keeps the
// original timestamps.
func (r *worksheetRepo) put(ctx context.Context, ws *worksheet.Worksheet) error {
	data, err := json.Marshal(ws)
	if err != nil {
		return fmt.Errorf("marshal worksheet: %w", err)
	}

	query, args := builder.Insert(tableWorksheets).
		Columns("id", "title", "subject_id", "subject_name", "grade_level",
			"question_count", "data", "created_at", "updated_at").
		Values(ws.ID, ws.Title, ws.SubjectID, ws.SubjectName, string(ws.GradeLevel),
			len(ws.Questions), string(data), ws.CreatedAt.UnixMilli(), ws.UpdatedAt.UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetIgnore("created_at")
			}),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save worksheet: %w", err)
	}
	return nil
}

func (r *worksheetRepo) Get(ctx context.Context, id string) (*worksheet.Worksheet, error) {
	query, args := builder.Select("data").
		From(entsql.Table(tableWorksheets)).
		Where(entsql.EQ("id", id)).
		Query()

	var data string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get worksheet: %w", err)
	}
	return decodeWorksheet(data)
}

func (r *worksheetRepo) List(ctx context.Context) ([]worksheet.Worksheet, error) {
	query, args := builder.Select("data").
		From(entsql.Table(tableWorksheets)).
		OrderBy(entsql.Desc("updated_at"), "id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list worksheets: %w", err)
	}
	defer rows.Close()

	var out []worksheet.Worksheet
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan worksheet: %w", err)
		}
		ws, err := decodeWorksheet(data)
		if err != nil {
			return nil, err
		}
		out = append(out, *ws)
	}
	return out, rows.Err()
}

func (r *worksheetRepo) Delete(ctx context.Context, id string) error {
	query, args := builder.Delete(tableWorksheets).
		Where(entsql.EQ("id", id)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete worksheet: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete worksheet: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeWorksheet(data string) (*worksheet.Worksheet, error) {
	var ws worksheet.Worksheet
	if err := json.Unmarshal([]byte(data), &ws); err != nil {
		return nil, fmt.Errorf("decode worksheet: %w", err)
	}
	return &ws, nil
}
