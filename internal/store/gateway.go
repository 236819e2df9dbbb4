// Package store is the persistent store gateway (C2): a thin, explicit
// wrapper over MySQL (relational entities), MongoDB (event logs and audit
// documents) and Redis (caching and advisory locks). It exposes only the
// operations named in the contract -- no generic query builder, no ORM, no
// reflection-driven entity mapping (see design notes on replacing
// ORM-generated dynamic queries with an explicit gateway).
package store

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/domeball/core/internal/coreerr"
)

// Gateway is the sole entry point other components use to reach durable
// state. Every call site that needs a related entity asks for it
// explicitly; there is no lazy loading.
type Gateway struct {
	db     *sql.DB
	mongo  *mongo.Database
	redis  *redis.Client
	logger zerolog.Logger
}

func New(db *sql.DB, mongoDB *mongo.Database, redisClient *redis.Client, logger zerolog.Logger) *Gateway {
	return &Gateway{db: db, mongo: mongoDB, redis: redisClient, logger: logger}
}

func (g *Gateway) Mongo() *mongo.Database  { return g.mongo }
func (g *Gateway) Redis() *redis.Client    { return g.redis }

const maxTxRetries = 5

// WithTx runs fn inside a serializable transaction. On a retryable
// serialization conflict it retries up to maxTxRetries times with bounded
// jitter; any other error, or exhaustion of retries, is returned as-is.
func (g *Gateway) WithTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt <= maxTxRetries; attempt++ {
		if attempt > 0 {
			jitter := time.Duration(rand.Intn(50)+10*attempt) * time.Millisecond
			select {
			case <-time.After(jitter):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		tx, err := g.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err != nil {
			return err
		}

		err = fn(ctx, tx)
		if err != nil {
			_ = tx.Rollback()
			if isRetryableConflict(err) {
				lastErr = coreerr.SerializationFailure(err)
				g.logger.Warn().Err(err).Int("attempt", attempt+1).Msg("transaction serialization conflict, retrying")
				continue
			}
			return err
		}

		if err := tx.Commit(); err != nil {
			if isRetryableConflict(err) {
				lastErr = coreerr.SerializationFailure(err)
				continue
			}
			return err
		}
		return nil
	}
	return lastErr
}

// isRetryableConflict recognizes a retryable *coreerr.Error and MySQL
// deadlock (1213) and lock-wait-timeout (1205) errors, the only conditions
// WithTx retries automatically.
func isRetryableConflict(err error) bool {
	var coreErr *coreerr.Error
	if errors.As(err, &coreErr) {
		return coreErr.IsRetryable()
	}
	msg := err.Error()
	return strings.Contains(msg, "Error 1213") || strings.Contains(msg, "Error 1205") || strings.Contains(msg, "Deadlock found")
}
