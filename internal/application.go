package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-local/internal/board"
	"github.com/rocketscienceinc/tictactoe-local/internal/config"
	"github.com/rocketscienceinc/tictactoe-local/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-local/internal/random"
	"github.com/rocketscienceinc/tictactoe-local/internal/repository"
	"github.com/rocketscienceinc/tictactoe-local/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-local/internal/scheduler"
	"github.com/rocketscienceinc/tictactoe-local/internal/session"
	"github.com/rocketscienceinc/tictactoe-local/internal/strategy"
	"github.com/rocketscienceinc/tictactoe-local/transport/tui"
)

const summaryTimeout = 5 * time.Second

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	var (
		roundRepo  repository.RoundRepository
		sessionLog *repository.SessionLog
	)
	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		sessionLog = repository.NewSessionLog(repository.NewRoundRepository(redisStorage.Connection, conf.Redis.TTL))
		roundRepo = sessionLog
		log.Info("round history enabled", "addr", redisAddrString, "ttl", conf.Redis.TTL)
	}

	gameBoard := board.New()
	selector := strategy.NewSelector(minimax.New(), random.New(), gameBoard)
	controller := session.NewController(
		logger,
		session.Pacing{
			ComputerMove: conf.Pacing.ComputerMove,
			ResultReveal: conf.Pacing.ResultReveal,
		},
		session.NewWinDetector(gameBoard),
		selector,
		scheduler.Realtime{},
		roundRepo,
	)

	server := tui.New(logger, controller)
	controller.SetListener(server)

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("terminal front end error: %w", err)
	}

	controller.ResetSession()

	if sessionLog != nil {
		for _, sessionID := range sessionLog.Sessions() {
			logSummary(log, sessionLog, sessionID)
		}
	}

	return nil
}

// logSummary writes the rounds recorded for one session of this run.
func logSummary(log *slog.Logger, roundRepo repository.RoundRepository, sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), summaryTimeout)
	defer cancel()

	rounds, err := roundRepo.ListBySession(ctx, sessionID)
	if errors.Is(err, repository.ErrRoundsNotFound) {
		log.Info("session ended without finished rounds", "sessionID", sessionID)
		return
	}

	if err != nil {
		log.Error("could not load session summary", "sessionID", sessionID, "error", err)
		return
	}

	last := rounds[len(rounds)-1]
	log.Info("session summary",
		"sessionID", sessionID,
		"mode", last.Mode,
		"rounds", len(rounds),
		"score_1", last.Score1,
		"score_2", last.Score2,
	)
}
