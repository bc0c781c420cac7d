package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
)

var ErrRoundsNotFound = errors.New("rounds not found")

type RoundRepository interface {
	Save(ctx context.Context, record *entity.RoundRecord) error
	ListBySession(ctx context.Context, sessionID string) ([]*entity.RoundRecord, error)
}

type dbRound struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRoundRepository keeps each session's rounds in a list that expires ttl after the
// last write. A zero ttl keeps the list forever.
func NewRoundRepository(client *redis.Client, ttl time.Duration) RoundRepository {
	return &dbRound{
		client: client,
		ttl:    ttl,
	}
}

func roundsKey(sessionID string) string {
	return "session:" + sessionID + ":rounds"
}

func (that *dbRound) Save(ctx context.Context, record *entity.RoundRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal round: %w", err)
	}

	key := roundsKey(record.SessionID)
	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, recordJSON)
		if that.ttl > 0 {
			pipe.Expire(ctx, key, that.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save round: %w", err)
	}

	return nil
}

func (that *dbRound) ListBySession(ctx context.Context, sessionID string) ([]*entity.RoundRecord, error) {
	response, err := that.client.LRange(ctx, roundsKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}

	if len(response) == 0 {
		return nil, ErrRoundsNotFound
	}

	records := make([]*entity.RoundRecord, 0, len(response))
	for _, item := range response {
		var record entity.RoundRecord
		if err = json.Unmarshal([]byte(item), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal round: %w", err)
		}
		records = append(records, &record)
	}

	return records, nil
}
