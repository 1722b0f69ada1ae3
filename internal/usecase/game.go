package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/console"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/internal/tictactoe"
)

type input interface {
	Next(ctx context.Context) (console.Key, error)
}

type display interface {
	Board(state entity.GameState) error
	Prompt(player entity.Player) error
	Occupied(cell int) error
	InvalidChar(char byte) error
	Won(player entity.Player) error
	Draw() error
	GameOver() error
	Terminated() error
}

type publisher interface {
	Publish(ctx context.Context, event *entity.Event) error
}

// GameSession drives one game. It is the only owner of its state: every read and write
// happens on the goroutine that calls Run.
type GameSession struct {
	logger *slog.Logger

	id    string
	state *entity.GameState

	input     input
	display   display
	publisher publisher
}

// NewGameSession builds a session. publisher may be nil when no feed is configured.
func NewGameSession(logger *slog.Logger, input input, display display, publisher publisher) *GameSession {
	id := uuid.NewString()

	return &GameSession{
		logger: logger.With("component", "session", "session_id", id),

		id:    id,
		state: entity.NewGameState(),

		input:     input,
		display:   display,
		publisher: publisher,
	}
}

func (that *GameSession) ID() string {
	return that.id
}

// State returns a copy of the current game state.
func (that *GameSession) State() entity.GameState {
	return *that.state
}

// Run plays until somebody wins, the board fills up, or the user terminates.
// Termination is reported as apperror.ErrUserTerminated.
func (that *GameSession) Run(ctx context.Context) (tictactoe.Outcome, error) {
	that.logger.Info("game started")

	for {
		if err := that.display.Board(*that.state); err != nil {
			return tictactoe.CurrentOutcome(that.state), err
		}

		if err := that.display.Prompt(that.state.Turn()); err != nil {
			return tictactoe.CurrentOutcome(that.state), err
		}

		outcome, err := that.takeTurn(ctx)
		if errors.Is(err, apperror.ErrUserTerminated) {
			return outcome, that.abort(ctx, err)
		}

		if err != nil {
			return outcome, err
		}

		if outcome.IsFinished() {
			return outcome, that.finish(ctx, outcome)
		}
	}
}

// takeTurn reads characters until one of them is accepted as a move.
func (that *GameSession) takeTurn(ctx context.Context) (tictactoe.Outcome, error) {
	for {
		key, err := that.input.Next(ctx)
		if err != nil {
			return tictactoe.CurrentOutcome(that.state), fmt.Errorf("failed to read move: %w", err)
		}

		switch key.Kind {
		case console.KeySkip:
			continue

		case console.KeyTerminate:
			return tictactoe.CurrentOutcome(that.state), apperror.ErrUserTerminated

		case console.KeyInvalid:
			that.logger.Debug("rejected input", "char", string(key.Char), "error", apperror.ErrInvalidInput)

			if err = that.display.InvalidChar(key.Char); err != nil {
				return tictactoe.CurrentOutcome(that.state), err
			}

		case console.KeyCell:
			mover := that.state.Turn()
			occupancy, mark := tictactoe.CellMasks(key.Cell, mover)
			that.logger.Debug("trying cell", "cell", key.Cell, "player", mover.String(),
				"occupancy_mask", fmt.Sprintf("%#x", occupancy), "mark_mask", fmt.Sprintf("%#x", mark))

			outcome, err := tictactoe.MakeTurn(that.state, key.Cell)
			if errors.Is(err, apperror.ErrCellOccupied) {
				if err = that.display.Occupied(key.Cell); err != nil {
					return outcome, err
				}
				continue
			}

			if err != nil {
				return outcome, fmt.Errorf("failed to make turn: %w", err)
			}

			that.logger.Info("move accepted", "cell", key.Cell, "player", mover.String(), "turn_count", that.state.TurnCount())
			that.publish(ctx, that.moveEvent(mover, key.Cell))

			return outcome, nil
		}
	}
}

func (that *GameSession) finish(ctx context.Context, outcome tictactoe.Outcome) error {
	if err := that.display.Board(*that.state); err != nil {
		return err
	}

	result := entity.ResultDraw
	if outcome.Status == tictactoe.StatusWon {
		result = outcome.Winner.String()
		if err := that.display.Won(outcome.Winner); err != nil {
			return err
		}
	} else if err := that.display.Draw(); err != nil {
		return err
	}

	that.logger.Info("game finished", "result", result, "turn_count", that.state.TurnCount())
	that.publish(ctx, that.resultEvent(entity.EventResult, result))

	return that.display.GameOver()
}

func (that *GameSession) abort(ctx context.Context, cause error) error {
	that.logger.Info("game aborted", "turn_count", that.state.TurnCount())

	if err := that.display.Terminated(); err != nil {
		return errors.Join(cause, err)
	}

	// the session context is usually the one that was cancelled
	that.publish(context.WithoutCancel(ctx), that.resultEvent(entity.EventAborted, ""))

	return cause
}

func (that *GameSession) publish(ctx context.Context, event *entity.Event) {
	if that.publisher == nil {
		return
	}

	if err := that.publisher.Publish(ctx, event); err != nil {
		that.logger.Warn("could not publish event", "type", event.Type, "error", err)
	}
}

func (that *GameSession) moveEvent(player entity.Player, cell int) *entity.Event {
	return &entity.Event{
		SessionID: that.id,
		Type:      entity.EventMove,
		Player:    player.String(),
		Cell:      &cell,
		TurnCount: that.state.TurnCount(),
		Board:     that.state.Notation(),
	}
}

func (that *GameSession) resultEvent(eventType, result string) *entity.Event {
	return &entity.Event{
		SessionID: that.id,
		Type:      eventType,
		TurnCount: that.state.TurnCount(),
		Board:     that.state.Notation(),
		Result:    result,
	}
}
