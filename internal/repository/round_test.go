package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
	"github.com/rocketscienceinc/tictactoe-local/testing/suite"
)

func newRecord(sessionID string, round int, outcome entity.Outcome, score1, score2 int) *entity.RoundRecord {
	return &entity.RoundRecord{
		SessionID:  sessionID,
		Round:      round,
		Mode:       entity.ModeFriend,
		Grid:       entity.Grid{entity.MarkerX, entity.MarkerX, entity.MarkerX, entity.MarkerO, entity.MarkerO},
		Outcome:    outcome,
		Score1:     score1,
		Score2:     score2,
		FinishedAt: time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRoundRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	roundRepo := NewRoundRepository(st.Storage, time.Hour)

	// Given: a finished round
	record := newRecord("abc", 1, entity.OutcomeXWins, 1, 0)

	// When: Save is called
	err := roundRepo.Save(ctx, record)

	// Then: the round is stored in a list that expires
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, "session:abc:rounds").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Hour)
}

func TestRoundRepository_ListBySession(t *testing.T) {
	t.Run("ListBySession_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		roundRepo := NewRoundRepository(st.Storage, time.Hour)

		// Given: three rounds of one session and one of another
		records := []*entity.RoundRecord{
			newRecord("abc", 1, entity.OutcomeXWins, 1, 0),
			newRecord("abc", 2, entity.OutcomeOWins, 1, 1),
			newRecord("abc", 3, entity.OutcomeDraw, 1, 1),
			newRecord("other", 1, entity.OutcomeOWins, 0, 1),
		}
		for _, record := range records {
			require.NoError(t, roundRepo.Save(ctx, record))
		}

		// When: ListBySession is called
		retrieved, err := roundRepo.ListBySession(ctx, "abc")

		// Then: the session's rounds come back in play order
		require.NoError(t, err)
		require.Len(t, retrieved, 3)
		for i, record := range retrieved {
			assert.Equal(t, records[i], record)
		}
	})

	t.Run("ListBySession_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		roundRepo := NewRoundRepository(st.Storage, time.Hour)

		// When: ListBySession is called for an unknown session
		retrieved, err := roundRepo.ListBySession(ctx, "missing")

		// Then: an ErrRoundsNotFound error should be returned
		require.ErrorIs(t, err, ErrRoundsNotFound)
		assert.Empty(t, retrieved)
	})
}

func TestRoundRepository_SaveWithoutTTL(t *testing.T) {
	ctx, st := suite.New(t)

	roundRepo := NewRoundRepository(st.Storage, 0)

	// Given: a repository without expiry
	record := newRecord("abc", 1, entity.OutcomeXWins, 1, 0)

	// When: Save is called
	err := roundRepo.Save(ctx, record)

	// Then: the list is stored and never expires
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, "session:abc:rounds").Result()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl)
}
