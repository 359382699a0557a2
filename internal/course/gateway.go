// Package course exposes the two facts the quiz engine needs from the
// course system: whether a course exists and who owns it. Course
// management itself lives elsewhere.
package course

import (
	"context"
	"database/sql"
	"errors"
)

type Gateway interface {
	Exists(ctx context.Context, courseID string) (bool, error)
	IsOwner(ctx context.Context, courseID, userID string) (bool, error)
}

type SQLGateway struct {
	db *sql.DB
}

func NewSQLGateway(db *sql.DB) *SQLGateway { return &SQLGateway{db: db} }

func (g *SQLGateway) Exists(ctx context.Context, courseID string) (bool, error) {
	var one int
	err := g.db.QueryRowContext(ctx, `SELECT 1 FROM courses WHERE id=$1`, courseID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (g *SQLGateway) IsOwner(ctx context.Context, courseID, userID string) (bool, error) {
	var owner string
	err := g.db.QueryRowContext(ctx, `SELECT owner_id FROM courses WHERE id=$1`, courseID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return owner == userID, nil
}
