package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-console/internal/config"
	"github.com/rocketscienceinc/tictactoe-console/internal/console"
	"github.com/rocketscienceinc/tictactoe-console/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-console/internal/tictactoe"
	feed "github.com/rocketscienceinc/tictactoe-console/internal/transport/redis"
	"github.com/rocketscienceinc/tictactoe-console/internal/usecase"
)

// RunApp - plays one game on the given console. A user abort comes back as apperror.ErrUserTerminated.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) (tictactoe.Outcome, error) {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var publisher *feed.Client
	if conf.Feed.Enabled {
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Feed.Redis.GetRedisAddr())
		if err != nil {
			return tictactoe.Outcome{}, fmt.Errorf("could not connect to feed storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close feed storage", "error", err)
			}
		}()

		publisher = feed.New(redisStorage.Connection, conf.Feed.Channel)
		log.Info("Publishing game events", "channel", publisher.Channel())
	}

	reader := console.NewReader(in)
	defer reader.Close()

	display := console.NewDisplay(out, !conf.NoColor)

	// keep a nil client from turning into a non-nil interface
	var session *usecase.GameSession
	if publisher != nil {
		session = usecase.NewGameSession(logger, reader, display, publisher)
	} else {
		session = usecase.NewGameSession(logger, reader, display, nil)
	}

	log.Info("Starting game", "session_id", session.ID())

	return session.Run(ctx)
}
