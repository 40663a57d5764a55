package bedstatus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/geims/bedboard/internal/domain/ward"
)

// DefaultRedisHashKey matches the collection name the board has always used.
const DefaultRedisHashKey = "icu_beds"

// redisHashClient is the subset of *redis.Client the store uses.
type redisHashClient interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// redisRecord is the JSON document stored in each hash field.
type redisRecord struct {
	Status    string    `json:"status"`
	Patient   string    `json:"patient"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RedisStore keeps every bed as one field of a single Redis hash. HSET on a
// single field is atomic; HGETALL gives a consistent snapshot.
type RedisStore struct {
	client redisHashClient
	key    string
	now    func() time.Time
}

// NewRedisStore connects to url and verifies the connection.
func NewRedisStore(ctx context.Context, url, key string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return newRedisStore(client, key), nil
}

func newRedisStore(client redisHashClient, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisHashKey
	}
	return &RedisStore{client: client, key: key, now: time.Now}
}

func (s *RedisStore) GetAll(ctx context.Context) (Snapshot, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", s.key, err)
	}
	snap := make(Snapshot, len(fields))
	for id, raw := range fields {
		var rec redisRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			// Not a document: surface the value as the status so the
			// resolver renders it as unknown.
			snap[ward.BedID(id)] = BedRecord{Status: raw}
			continue
		}
		snap[ward.BedID(id)] = BedRecord{Status: rec.Status, Patient: rec.Patient}
	}
	return snap, nil
}

func (s *RedisStore) SetOne(ctx context.Context, id ward.BedID, rec BedRecord) error {
	payload, err := json.Marshal(redisRecord{
		Status:    rec.Status,
		Patient:   rec.Patient,
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal bed record: %w", err)
	}
	if err := s.client.HSet(ctx, s.key, string(id), string(payload)).Err(); err != nil {
		return fmt.Errorf("hset %s %s: %w", s.key, id, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
