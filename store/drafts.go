// Package store keeps composed checks in Redis as short-lived drafts, so the
// preview and the print of a check can refer to the same data by id.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/remiges-tech/logharbour/logharbour"

	"github.com/remiges-tech/checkwriter/check"
)

// DefaultTTL is how long a draft lives when no TTL is configured.
const DefaultTTL = 24 * time.Hour

// ErrNotFound is returned for ids that were never saved or have expired.
var ErrNotFound = errors.New("store: draft not found")

// DraftKey returns the Redis key for a draft.
// Uses hash tag {id} for Redis Cluster slot co-location.
func DraftKey(id string) string {
	return fmt.Sprintf("CHECKWRITER_{%s}_DRAFT", id)
}

// Drafts stores check.Data values under generated ids.
type Drafts struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *logharbour.Logger
}

// NewDrafts returns a draft store on rdb. A ttl of zero or less uses DefaultTTL.
func NewDrafts(rdb redis.Cmdable, ttl time.Duration, logger *logharbour.Logger) *Drafts {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Drafts{rdb: rdb, ttl: ttl, logger: logger.WithModule("store")}
}

// TTL returns the lifetime given to saved drafts.
func (d *Drafts) TTL() time.Duration {
	return d.ttl
}

// Save stores data and returns the new draft id.
func (d *Drafts) Save(ctx context.Context, data check.Data) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("store: encoding draft: %w", err)
	}

	id := uuid.NewString()
	if err := d.rdb.Set(ctx, DraftKey(id), payload, d.ttl).Err(); err != nil {
		d.logger.Error(err).LogActivity("Error saving draft", map[string]any{"id": id})
		return "", fmt.Errorf("store: saving draft: %w", err)
	}

	d.logger.Debug0().LogActivity("Draft saved", map[string]any{
		"id":  id,
		"ttl": d.ttl.String(),
	})
	return id, nil
}

// Get returns the draft stored under id.
func (d *Drafts) Get(ctx context.Context, id string) (check.Data, error) {
	if _, err := uuid.Parse(id); err != nil {
		return check.Data{}, ErrNotFound
	}

	payload, err := d.rdb.Get(ctx, DraftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return check.Data{}, ErrNotFound
	}
	if err != nil {
		d.logger.Error(err).LogActivity("Error fetching draft", map[string]any{"id": id})
		return check.Data{}, fmt.Errorf("store: fetching draft: %w", err)
	}

	var data check.Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return check.Data{}, fmt.Errorf("store: decoding draft %s: %w", id, err)
	}
	return data, nil
}

// Delete removes the draft stored under id.
func (d *Drafts) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	n, err := d.rdb.Del(ctx, DraftKey(id)).Result()
	if err != nil {
		d.logger.Error(err).LogActivity("Error deleting draft", map[string]any{"id": id})
		return fmt.Errorf("store: deleting draft: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	d.logger.Debug0().LogActivity("Draft deleted", map[string]any{"id": id})
	return nil
}
