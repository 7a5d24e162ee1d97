package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultMaxLen caps the stream length (approximately).
const DefaultMaxLen = 100000

// RedisRecorder appends records to a Redis stream with XADD.
type RedisRecorder struct {
	rdb    *redis.Client
	stream string
	maxLen int64
}

// NewRedis connects to addr and checks the connection.
func NewRedis(ctx context.Context, addr, stream string) (*RedisRecorder, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return &RedisRecorder{rdb: rdb, stream: stream, maxLen: DefaultMaxLen}, nil
}

func (r *RedisRecorder) Record(ctx context.Context, rec Record) error {
	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	err = r.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		MaxLen: r.maxLen,
		Approx: true,
		Values: map[string]any{
			"game_id": rec.GameID.String(),
			"index":   rec.Index,
			"player":  rec.Player,
			"action":  rec.Action,
			"payload": string(payload),
			"ts":      rec.Timestamp,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", r.stream, err)
	}
	return nil
}

// Game returns the records of one game ordered by action index.
func (r *RedisRecorder) Game(ctx context.Context, gameID uuid.UUID) ([]Record, error) {
	msgs, err := r.rdb.XRange(ctx, r.stream, "-", "+").Result()
	if err != nil {
		return nil, fmt.Errorf("xrange %s: %w", r.stream, err)
	}
	return gameRecords(msgs, gameID)
}

// gameRecords decodes the messages of one game, ordered by action index.
// Records are published concurrently, so stream order may differ.
func gameRecords(msgs []redis.XMessage, gameID uuid.UUID) ([]Record, error) {
	var out []Record
	for _, m := range msgs {
		rec, err := decode(m.Values)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", m.ID, err)
		}
		if rec.GameID == gameID {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

// Close closes the client.
func (r *RedisRecorder) Close() error {
	return r.rdb.Close()
}

func decode(values map[string]any) (Record, error) {
	str := func(k string) string {
		s, _ := values[k].(string)
		return s
	}
	var rec Record
	var err error
	if rec.GameID, err = uuid.Parse(str("game_id")); err != nil {
		return Record{}, err
	}
	if rec.Index, err = strconv.Atoi(str("index")); err != nil {
		return Record{}, err
	}
	if rec.Player, err = strconv.Atoi(str("player")); err != nil {
		return Record{}, err
	}
	if rec.Timestamp, err = strconv.ParseInt(str("ts"), 10, 64); err != nil {
		return Record{}, err
	}
	rec.Action = str("action")
	if p := str("payload"); p != "" && p != "null" {
		if err := json.Unmarshal([]byte(p), &rec.Payload); err != nil {
			return Record{}, err
		}
	}
	return rec, nil
}
