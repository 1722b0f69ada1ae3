package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
)

// Cell is the 2-bit code stored for one board position.
type Cell uint8

const (
	CellEmpty Cell = 0b00
	CellX     Cell = 0b01
	CellO     Cell = 0b10
)

func (that Cell) String() string {
	switch that {
	case CellX:
		return PlayerX.String()
	case CellO:
		return PlayerO.String()
	default:
		return ""
	}
}

// Player is the turn bit: 0 for X, 1 for O.
type Player uint8

const (
	PlayerX Player = 0
	PlayerO Player = 1
)

func (that Player) String() string {
	if that == PlayerO {
		return "O"
	}
	return "X"
}

// Cell returns the code the player writes into the board.
func (that Player) Cell() Cell {
	return Cell(1 << that)
}

func (that Player) Opponent() Player {
	return that ^ 1
}

const CellCount = 9

// Layout of the packed word:
//
//	bits  0-17  board, cell i at [2i, 2i+1]
//	bits 18-21  turn count
//	bit  22     turn (0 = X, 1 = O)
//	bit  23     win flag
const (
	cellBits  = 2
	cellMask  = 0b11
	boardBits = CellCount * cellBits
	boardMask = 1<<boardBits - 1

	turnCountShift = boardBits
	turnCountMask  = 0b1111

	turnShift = turnCountShift + 4
	winShift  = turnShift + 1
)

// GameState packs the whole game into a single word. The zero value is a fresh game:
// empty board, X to move, no moves made.
type GameState struct {
	word uint32
}

func NewGameState() *GameState {
	return &GameState{}
}

// Board returns the raw 18-bit board field.
func (that *GameState) Board() uint32 {
	return that.word & boardMask
}

func (that *GameState) Cell(index int) (Cell, error) {
	if err := checkIndex(index); err != nil {
		return CellEmpty, err
	}

	return Cell(that.word >> (index * cellBits) & cellMask), nil
}

// SetCell writes the player's code at index. It does not check occupancy, callers do.
func (that *GameState) SetCell(index int, player Player) error {
	if err := checkIndex(index); err != nil {
		return err
	}

	shift := index * cellBits
	that.word = that.word&^(cellMask<<shift) | uint32(player.Cell())<<shift

	return nil
}

// Cells unpacks the board, index 0 first.
func (that *GameState) Cells() [CellCount]Cell {
	var cells [CellCount]Cell
	for i := range cells {
		cells[i] = Cell(that.word >> (i * cellBits) & cellMask)
	}
	return cells
}

// Notation spells the board from cell 0 to cell 8 with X, O and '-' for empty.
func (that *GameState) Notation() string {
	notation := make([]byte, CellCount)
	for i, cell := range that.Cells() {
		switch cell {
		case CellX:
			notation[i] = 'X'
		case CellO:
			notation[i] = 'O'
		default:
			notation[i] = '-'
		}
	}
	return string(notation)
}

func (that *GameState) Turn() Player {
	return Player(that.word >> turnShift & 1)
}

// ToggleTurn hands the move to the opponent of the current player.
func (that *GameState) ToggleTurn() {
	next := that.Turn().Opponent()
	that.word = that.word&^(1<<turnShift) | uint32(next)<<turnShift
}

func (that *GameState) TurnCount() int {
	return int(that.word >> turnCountShift & turnCountMask)
}

// IncrementTurnCount saturates at CellCount.
func (that *GameState) IncrementTurnCount() {
	if that.TurnCount() >= CellCount {
		return
	}
	that.word += 1 << turnCountShift
}

func (that *GameState) WinFlag() bool {
	return that.word>>winShift&1 == 1
}

func (that *GameState) SetWinFlag() {
	that.word |= 1 << winShift
}

func (that *GameState) String() string {
	return fmt.Sprintf("board=%#05x turn=%s count=%d win=%t",
		that.Board(), that.Turn(), that.TurnCount(), that.WinFlag())
}

func checkIndex(index int) error {
	if index < 0 || index >= CellCount {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidIndex, index)
	}
	return nil
}
