package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/leetcode-tracker/internal/queue"
)

// ActivityRepo keeps a capped, newest-first list of problem events per user
// in redis under activity:<username>.
type ActivityRepo struct {
	rdb   *redis.Client
	limit int64
}

func NewActivityRepo(rdb *redis.Client, limit int64) *ActivityRepo {
	if limit < 1 {
		limit = 1
	}
	return &ActivityRepo{rdb: rdb, limit: limit}
}

func activityKey(username string) string { return "activity:" + username }

// Record prepends ev to its user's feed and trims the feed to the limit.
func (r *ActivityRepo) Record(ctx context.Context, ev queue.ProblemEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	key := activityKey(ev.Username)
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, body)
		pipe.LTrim(ctx, key, 0, r.limit-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

// Recent returns username's feed, newest first.
func (r *ActivityRepo) Recent(ctx context.Context, username string) ([]queue.ProblemEvent, error) {
	raw, err := r.rdb.LRange(ctx, activityKey(username), 0, r.limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read activity: %w", err)
	}
	out := make([]queue.ProblemEvent, 0, len(raw))
	for _, s := range raw {
		var ev queue.ProblemEvent
		if err := json.Unmarshal([]byte(s), &ev); err != nil {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}
