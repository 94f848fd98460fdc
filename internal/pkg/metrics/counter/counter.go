package counter

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
)

const (
	outcomesKey = "paybridge:webhook:outcomes"

	// Counting must never hold up a webhook response for long.
	incrTimeout = 500 * time.Millisecond
)

// Outcome names one terminal or intermediate step of webhook handling.
type Outcome string

const (
	OutcomeReceived         Outcome = "received"
	OutcomeSignatureMissing Outcome = "signature_missing"
	OutcomeSignatureInvalid Outcome = "signature_invalid"
	OutcomeDeviceMissing    Outcome = "device_missing"
	OutcomeAmountMissing    Outcome = "amount_missing"
	OutcomeMalformed        Outcome = "malformed"
	OutcomeAccepted         Outcome = "accepted"
	OutcomeForwarded        Outcome = "forwarded"
	OutcomeForwardFailed    Outcome = "forward_failed"
)

var AllOutcomes = []Outcome{
	OutcomeReceived,
	OutcomeSignatureMissing,
	OutcomeSignatureInvalid,
	OutcomeDeviceMissing,
	OutcomeAmountMissing,
	OutcomeMalformed,
	OutcomeAccepted,
	OutcomeForwarded,
	OutcomeForwardFailed,
}

type Recorder interface {
	Incr(outcome Outcome)
}

type Store interface {
	Recorder
	Snapshot(ctx context.Context) (map[Outcome]int64, error)
}

// New returns a Redis-backed store, or a no-op store when client is nil.
func New(client *redis.Client) Store {
	if client == nil {
		return Noop{}
	}
	return &RedisStore{client: client, key: outcomesKey}
}

// RedisStore keeps one hash field per outcome and increments it with HINCRBY.
type RedisStore struct {
	client *redis.Client
	key    string
}

func (s *RedisStore) Incr(outcome Outcome) {
	ctx, cancel := context.WithTimeout(context.Background(), incrTimeout)
	defer cancel()

	if err := s.client.HIncrBy(ctx, s.key, string(outcome), 1).Err(); err != nil {
		log.Warnf("[Counter] Failed to increment %s: %v", outcome, err)
	}
}

// Snapshot returns every known outcome, zero-filled for outcomes never counted.
func (s *RedisStore) Snapshot(ctx context.Context) (map[Outcome]int64, error) {
	data, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, err
	}

	out := emptySnapshot()
	for field, raw := range data {
		n, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil {
			continue
		}
		out[Outcome(field)] = n
	}
	return out, nil
}

type Noop struct{}

func (Noop) Incr(Outcome) {}

func (Noop) Snapshot(context.Context) (map[Outcome]int64, error) {
	return emptySnapshot(), nil
}

func emptySnapshot() map[Outcome]int64 {
	out := make(map[Outcome]int64, len(AllOutcomes))
	for _, o := range AllOutcomes {
		out[o] = 0
	}
	return out
}
