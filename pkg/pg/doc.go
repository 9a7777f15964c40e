// Package pg connects to PostgreSQL through a pgx pool, applies goose
// migrations and classifies common driver errors.
package pg
