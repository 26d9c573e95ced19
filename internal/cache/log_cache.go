package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const messageLogsKey = "message_logs"

// LogCache keeps an index of message-log IDs scored by send time so the
// history view can paginate recent-first without a full table scan.
type LogCache interface {
	AddLogEntry(ctx context.Context, logID int64, sentAt time.Time) error
	GetLogIDs(ctx context.Context, page int, pageSize int) ([]int64, int64, error)
}

type redisLogCache struct {
	client *redis.Client
}

func NewLogCache(client *redis.Client) LogCache {
	return &redisLogCache{client: client}
}

func (r *redisLogCache) AddLogEntry(ctx context.Context, logID int64, sentAt time.Time) error {
	member := redis.Z{
		Score:  float64(sentAt.Unix()),
		Member: strconv.FormatInt(logID, 10),
	}
	return r.client.ZAdd(ctx, messageLogsKey, member).Err()
}

func (r *redisLogCache) GetLogIDs(ctx context.Context, page int, pageSize int) ([]int64, int64, error) {
	total, err := r.client.ZCard(ctx, messageLogsKey).Result()
	if err != nil {
		return nil, 0, err
	}

	start := (page - 1) * pageSize
	stop := start + pageSize - 1

	stringIDs, err := r.client.ZRevRange(ctx, messageLogsKey, int64(start), int64(stop)).Result()
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(stringIDs))
	for i, sID := range stringIDs {
		id, _ := strconv.ParseInt(sID, 10, 64)
		ids[i] = id
	}

	return ids, total, nil
}
