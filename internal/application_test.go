package application

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/config"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-console/testing/suite"
)

func newConfig() *config.Config {
	return &config.Config{
		LogLevel:  "debug",
		LogFormat: "json",
		NoColor:   true,
		Feed: config.Feed{
			Channel: "tictactoe:events",
			Redis:   config.Redis{Host: "localhost", Port: "6379"},
		},
	}
}

func TestRunApp(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	t.Run("Plays a game to the end", func(t *testing.T) {
		// Given: a console where O completes the bottom row
		var out bytes.Buffer
		in := strings.NewReader("3\n0\n4\n1\n8\n2\n")

		// When: the app runs
		outcome, err := RunApp(logger, newConfig(), in, &out)

		// Then: O is reported as the winner
		require.NoError(t, err)
		assert.Equal(t, tictactoe.Outcome{Status: tictactoe.StatusWon, Winner: entity.PlayerO}, outcome)
		assert.Contains(t, out.String(), "Player O won!!!")
	})

	t.Run("End of input is a user termination", func(t *testing.T) {
		var out bytes.Buffer

		_, err := RunApp(logger, newConfig(), strings.NewReader("4\n"), &out)

		require.ErrorIs(t, err, apperror.ErrUserTerminated)
		assert.Contains(t, out.String(), "User terminated game")
	})

	t.Run("Fails when the feed cannot connect", func(t *testing.T) {
		// Given: a feed pointing at a closed port
		conf := newConfig()
		conf.Feed.Enabled = true
		conf.Feed.Redis = config.Redis{Host: "127.0.0.1", Port: "1"}

		// When: the app starts
		_, err := RunApp(logger, conf, strings.NewReader(""), io.Discard)

		// Then: it refuses to start
		require.Error(t, err)
		assert.Contains(t, err.Error(), "feed storage")
	})

	t.Run("Publishes the game to the feed", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a subscriber on the feed channel
		conf := newConfig()
		conf.Feed.Enabled = true
		host, port, found := strings.Cut(st.Addr, ":")
		require.True(t, found)
		conf.Feed.Redis = config.Redis{Host: host, Port: port}

		sub := st.Redis.Subscribe(ctx, conf.Feed.Channel)
		defer sub.Close()
		_, err := sub.Receive(ctx)
		require.NoError(t, err)

		// When: a drawn game is played
		outcome, err := RunApp(logger, conf, strings.NewReader("012354687"), io.Discard)

		// Then: nine moves and one result were published
		require.NoError(t, err)
		assert.Equal(t, tictactoe.StatusDraw, outcome.Status)

		messages := sub.Channel()
		for i := 0; i < 10; i++ {
			select {
			case msg := <-messages:
				assert.Contains(t, msg.Payload, `"session_id"`)
			case <-time.After(5 * time.Second):
				t.Fatal("feed message missing")
			}
		}
	})
}
