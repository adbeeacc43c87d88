package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mtlprog/catpage/internal/content"
	"github.com/mtlprog/catpage/internal/domain"
)

// PostgresStore persists page state in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Load retrieves the state of a session with its ratings in catalog order.
func (r *PostgresStore) Load(ctx context.Context, sessionID string) (*domain.PageState, error) {
	query, args, err := psql.
		Select("active_tab", "fun_fact", "updated_at").
		From("page_sessions").
		Where(sq.Eq{"id": sessionID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Load query for session %s: %w", sessionID, err)
	}

	state := domain.PageState{SessionID: sessionID}
	var tab string
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&tab,
		&state.FunFact,
		&state.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("query session: %w", err)
	}
	state.ActiveTab = domain.Tab(tab)

	ratings, err := r.loadRatings(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	state.Ratings = ratings

	return &state, nil
}

func (r *PostgresStore) loadRatings(ctx context.Context, sessionID string) ([]int, error) {
	query, args, err := psql.
		Select("breed_index", "rating").
		From("breed_ratings").
		Where(sq.Eq{"session_id": sessionID}).
		OrderBy("breed_index ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ratings query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	ratings := make([]int, content.BreedCount())
	for rows.Next() {
		var index, rating int
		if err := rows.Scan(&index, &rating); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		if index < 0 || index >= len(ratings) {
			return nil, fmt.Errorf("%w: breed index %d out of range", domain.ErrCorruptState, index)
		}
		ratings[index] = rating
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating rows: %w", err)
	}

	return ratings, nil
}

// Put upserts the session row and all of its ratings in one transaction.
func (r *PostgresStore) Put(ctx context.Context, state *domain.PageState) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	query, args, err := psql.
		Insert("page_sessions").
		Columns("id", "active_tab", "fun_fact").
		Values(state.SessionID, string(state.ActiveTab), state.FunFact).
		Suffix("ON CONFLICT (id) DO UPDATE SET active_tab = EXCLUDED.active_tab, fun_fact = EXCLUDED.fun_fact, updated_at = NOW() RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build session upsert: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&state.UpdatedAt); err != nil {
		return fmt.Errorf("upsert session %s: %w", state.SessionID, err)
	}

	if len(state.Ratings) > 0 {
		insert := psql.
			Insert("breed_ratings").
			Columns("session_id", "breed_index", "rating")
		for i, rating := range state.Ratings {
			insert = insert.Values(state.SessionID, i, rating)
		}

		query, args, err = insert.Suffix(ratingConflict).ToSql()
		if err != nil {
			return fmt.Errorf("build ratings upsert: %w", err)
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert ratings for session %s: %w", state.SessionID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// SaveRating upserts one breed rating and touches the session row.
func (r *PostgresStore) SaveRating(ctx context.Context, sessionID string, index, rating int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := touchSession(ctx, tx, sessionID); err != nil {
		return err
	}

	query, args, err := psql.
		Insert("breed_ratings").
		Columns("session_id", "breed_index", "rating").
		Values(sessionID, index, rating).
		Suffix(ratingConflict).
		ToSql()
	if err != nil {
		return fmt.Errorf("build rating upsert: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert rating %d for session %s: %w", index, sessionID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func touchSession(ctx context.Context, tx pgx.Tx, sessionID string) error {
	query, args, err := psql.
		Update("page_sessions").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": sessionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build session touch: %w", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("touch session %s: %w", sessionID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// SaveSession updates the active tab and fun fact of a session. Ratings are
// not written.
func (r *PostgresStore) SaveSession(ctx context.Context, sessionID string, tab domain.Tab, funFact string) error {
	query, args, err := psql.
		Update("page_sessions").
		Set("active_tab", string(tab)).
		Set("fun_fact", funFact).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": sessionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build session update: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update session %s: %w", sessionID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// ResetRatings zeroes every stored rating and returns the number of
// sessions affected.
func (r *PostgresStore) ResetRatings(ctx context.Context) (int64, error) {
	query, args, err := psql.
		Update("breed_ratings").
		Set("rating", 0).
		Where(sq.Gt{"rating": 0}).
		Suffix("RETURNING session_id::text").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build reset query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("reset ratings: %w", err)
	}
	defer rows.Close()

	sessions := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("scan reset session: %w", err)
		}
		sessions[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate reset rows: %w", err)
	}

	return int64(len(sessions)), nil
}

// Ping checks that the database is reachable.
func (r *PostgresStore) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
