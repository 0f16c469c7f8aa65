package notify

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var errMalformed = errors.New("malformed notification payload")

// DialRedis connects with short timeouts; a slow broker must not stall a
// front-desk mutation.
func DialRedis(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
}

// Healthy verifies broker connectivity for the health endpoint.
func Healthy(ctx context.Context, client *redis.Client) bool {
	if client == nil {
		return false
	}
	return client.Ping(ctx).Err() == nil
}

// RedisQueue keeps notifications in a Redis list so a separate front-desk
// display process can poll them.
type RedisQueue struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisQueue builds a queue using LPUSH/RPOP semantics on a single key.
func NewRedisQueue(client *redis.Client, key string, ttl time.Duration) *RedisQueue {
	if key == "" {
		key = "librarydesk:notifications"
	}
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &RedisQueue{client: client, key: key, ttl: ttl, now: time.Now}
}

// Publish enqueues a notification.
func (q *RedisQueue) Publish(ctx context.Context, n Notification) error {
	return q.client.LPush(ctx, q.key, serialize(n)).Err()
}

// Drain pops everything currently queued, dropping expired entries.
func (q *RedisQueue) Drain(ctx context.Context) ([]Notification, error) {
	var out []Notification
	cutoff := q.now().Add(-q.ttl)
	for {
		raw, err := q.client.RPop(ctx, q.key).Result()
		if err != nil {
			if err == redis.Nil {
				return out, nil
			}
			return out, err
		}
		n, err := deserialize(raw)
		if err != nil {
			continue
		}
		if n.At.After(cutoff) {
			out = append(out, n)
		}
	}
}

// serialize stores notifications as severity|unixnano|message; the message
// goes last so it may contain the delimiter.
func serialize(n Notification) string {
	return string(n.Severity) + "|" + strconv.FormatInt(n.At.UnixNano(), 10) + "|" + n.Message
}

func deserialize(s string) (Notification, error) {
	parts := strings.SplitN(s, "|", 3)
	if len(parts) != 3 {
		return Notification{}, errMalformed
	}
	nanos, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Notification{}, errMalformed
	}
	return Notification{
		Severity: Severity(parts[0]),
		At:       time.Unix(0, nanos),
		Message:  parts[2],
	}, nil
}
