package repository

import sq "github.com/Masterminds/squirrel"

// psql is the shared Squirrel statement builder configured for PostgreSQL dollar placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ratingConflict turns the breed_ratings insert into an upsert.
const ratingConflict = "ON CONFLICT (session_id, breed_index) DO UPDATE SET rating = EXCLUDED.rating"
