package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
)

// SessionLog remembers, in first-seen order, every session that saved a round through it.
type SessionLog struct {
	RoundRepository

	mu       sync.Mutex
	sessions []string
	seen     map[string]struct{}
}

func NewSessionLog(rounds RoundRepository) *SessionLog {
	return &SessionLog{
		RoundRepository: rounds,
		seen:            make(map[string]struct{}),
	}
}

func (that *SessionLog) Save(ctx context.Context, record *entity.RoundRecord) error {
	if err := that.RoundRepository.Save(ctx, record); err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.seen[record.SessionID]; !ok {
		that.seen[record.SessionID] = struct{}{}
		that.sessions = append(that.sessions, record.SessionID)
	}

	return nil
}

func (that *SessionLog) Sessions() []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]string(nil), that.sessions...)
}
