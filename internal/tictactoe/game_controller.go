package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

type Status int

const (
	StatusInProgress Status = iota
	StatusWon
	StatusDraw
)

func (that Status) String() string {
	switch that {
	case StatusWon:
		return "won"
	case StatusDraw:
		return "draw"
	default:
		return "in progress"
	}
}

// Outcome is the state machine position after a move. Winner is only meaningful for StatusWon.
type Outcome struct {
	Status Status
	Winner entity.Player
}

func (that Outcome) IsFinished() bool {
	return that.Status != StatusInProgress
}

// WinCombos lists the cell triples that win when one player owns all three.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// X's code (01) at each cell of a line, in WinCombos order.
// Shifting left by the turn bit turns 01 into 10, giving O's masks.
var lineMasks = [8]uint32{
	0x00015, // 2 1 0
	0x00540, // 5 4 3
	0x15000, // 8 7 6
	0x01041, // 6 3 0
	0x04104, // 7 4 1
	0x10410, // 8 5 2
	0x10101, // 8 4 0
	0x01110, // 6 4 2
}

func transposeMask(mask uint32, player entity.Player) uint32 {
	return mask << player
}

// CellMasks returns the occupancy mask of a cell and the bits the player would set there.
func CellMasks(cell int, player entity.Player) (occupancy, mark uint32) {
	shift := cell * 2
	return 0b11 << shift, uint32(player.Cell()) << shift
}

// ApplyMove places the mover's mark. It leaves the state untouched on error.
func ApplyMove(state *entity.GameState, cell int) error {
	current, err := state.Cell(cell)
	if err != nil {
		return err
	}

	if current != entity.CellEmpty {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return state.SetCell(cell, state.Turn())
}

// EvaluateWin checks the mover's lines only and sets the win flag on a match.
func EvaluateWin(state *entity.GameState) bool {
	board := state.Board()
	mover := state.Turn()

	for _, mask := range lineMasks {
		mask = transposeMask(mask, mover)
		if board&mask == mask {
			state.SetWinFlag()
			return true
		}
	}

	return false
}

func IsDraw(state *entity.GameState) bool {
	return !state.WinFlag() && state.TurnCount() >= entity.CellCount
}

// CurrentOutcome reads the state machine position without changing anything.
func CurrentOutcome(state *entity.GameState) Outcome {
	switch {
	case state.WinFlag():
		return Outcome{Status: StatusWon, Winner: state.Turn()}
	case IsDraw(state):
		return Outcome{Status: StatusDraw}
	default:
		return Outcome{Status: StatusInProgress}
	}
}

// MakeTurn runs one transition: apply, count, evaluate win, then draw, then hand over the turn.
func MakeTurn(state *entity.GameState, cell int) (Outcome, error) {
	outcome := CurrentOutcome(state)
	if outcome.IsFinished() {
		return outcome, apperror.ErrGameFinished
	}

	if err := ApplyMove(state, cell); err != nil {
		return outcome, fmt.Errorf("invalid turn: %w", err)
	}

	state.IncrementTurnCount()

	if EvaluateWin(state) {
		return Outcome{Status: StatusWon, Winner: state.Turn()}, nil
	}

	if IsDraw(state) {
		return Outcome{Status: StatusDraw}, nil
	}

	state.ToggleTurn()

	return outcome, nil
}
