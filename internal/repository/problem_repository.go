package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/leetcode-tracker/internal/database"
	"github.com/iliyamo/leetcode-tracker/internal/model"
)

// problemSelect joins every problem with its owner so rows scan straight
// into model.Problem.
const problemSelect = `SELECT p.id, p.name, p.date_solved, p.difficulty, p.topic, p.notes, p.user_id, u.username
	FROM problems p JOIN users u ON u.id = p.user_id`

// ProblemRepo encapsulates all queries against the problems table.
type ProblemRepo struct {
	db database.DBTX
}

func NewProblemRepo(db database.DBTX) *ProblemRepo {
	return &ProblemRepo{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProblem(s scanner) (*model.Problem, error) {
	var (
		p     model.Problem
		notes sql.NullString
	)
	if err := s.Scan(&p.ID, &p.Name, &p.DateSolved, &p.Difficulty, &p.Topic, &notes, &p.UserID, &p.Username); err != nil {
		return nil, err
	}
	if notes.Valid {
		p.Notes = &notes.String
	}
	return &p, nil
}

func (r *ProblemRepo) list(ctx context.Context, query string, args ...any) ([]*model.Problem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Problem{}
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// Create inserts p and sets its ID. The (user_id, name) unique key turns a
// racing duplicate into ErrConflict.
func (r *ProblemRepo) Create(ctx context.Context, p *model.Problem) error {
	const q = `INSERT INTO problems (name, date_solved, difficulty, topic, notes, user_id)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.DateSolved, string(p.Difficulty), p.Topic, nullable(p.Notes), p.UserID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert problem: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// IDByUserAndName returns the id of userID's problem called name, or
// ErrNotFound.
func (r *ProblemRepo) IDByUserAndName(ctx context.Context, userID int64, name string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM problems WHERE user_id = ? AND name = ? LIMIT 1",
		userID, name).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return id, nil
}

// GetByName returns the problem with exactly this name. Names are only
// unique per user, so a non-empty username narrows the match to that owner;
// otherwise the oldest match wins.
func (r *ProblemRepo) GetByName(ctx context.Context, name, username string) (*model.Problem, error) {
	q := problemSelect + " WHERE p.name = ?"
	args := []any{name}
	if username != "" {
		q += " AND u.username = ?"
		args = append(args, username)
	}
	q += " ORDER BY p.id LIMIT 1"

	p, err := scanProblem(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns every problem in storage order.
func (r *ProblemRepo) List(ctx context.Context) ([]*model.Problem, error) {
	return r.list(ctx, problemSelect+" ORDER BY p.id")
}

// ListByUser returns the problems owned by userID.
func (r *ProblemRepo) ListByUser(ctx context.Context, userID int64) ([]*model.Problem, error) {
	return r.list(ctx, problemSelect+" WHERE p.user_id = ? ORDER BY p.id", userID)
}

// Update replaces every column of problem id with p. MySQL reports zero
// affected rows when nothing changed, so callers check existence first.
func (r *ProblemRepo) Update(ctx context.Context, id int64, p *model.Problem) error {
	const q = `UPDATE problems
	           SET name = ?, date_solved = ?, difficulty = ?, topic = ?, notes = ?, user_id = ?
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, p.Name, p.DateSolved, string(p.Difficulty), p.Topic, nullable(p.Notes), p.UserID, id); err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return fmt.Errorf("update problem %d: %w", id, err)
	}
	p.ID = id
	return nil
}

// Delete removes problem id.
func (r *ProblemRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM problems WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete problem %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats counts problems in total and per difficulty in one pass.
func (r *ProblemRepo) Stats(ctx context.Context) (model.Stats, error) {
	const q = `SELECT COUNT(*),
	                  COALESCE(SUM(difficulty = 'Easy'), 0),
	                  COALESCE(SUM(difficulty = 'Medium'), 0),
	                  COALESCE(SUM(difficulty = 'Hard'), 0)
	           FROM problems`
	var s model.Stats
	if err := r.db.QueryRowContext(ctx, q).Scan(&s.Total, &s.Easy, &s.Medium, &s.Hard); err != nil {
		return model.Stats{}, err
	}
	return s, nil
}
