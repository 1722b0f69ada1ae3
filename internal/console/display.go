package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

const (
	colorX = "9"  // bright red
	colorO = "12" // bright blue
)

// rows lists cell indices top to bottom as they appear on screen.
var rows = [3][3]int{
	{8, 7, 6},
	{5, 4, 3},
	{2, 1, 0},
}

// Display writes the board and game messages to a terminal.
type Display struct {
	out *termenv.Output
}

// NewDisplay renders to w. With color false, or when w is not a colour terminal, the
// output is plain ASCII.
func NewDisplay(w io.Writer, color bool) *Display {
	opts := []termenv.OutputOption{}
	if !color {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}

	return &Display{out: termenv.NewOutput(w, opts...)}
}

// RenderBoard returns the three board rows, empty cells shown as their index digit.
func (that *Display) RenderBoard(state entity.GameState) string {
	cells := state.Cells()

	var sb strings.Builder
	for _, row := range rows {
		for _, index := range row {
			sb.WriteString(that.cell(index, cells[index]))
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

func (that *Display) cell(index int, cell entity.Cell) string {
	switch cell {
	case entity.CellX:
		return that.out.String("X").Foreground(that.out.Color(colorX)).Bold().String()
	case entity.CellO:
		return that.out.String("O").Foreground(that.out.Color(colorO)).Bold().String()
	default:
		return string(rune('0' + index))
	}
}

func (that *Display) Board(state entity.GameState) error {
	return that.print(that.RenderBoard(state))
}

func (that *Display) Prompt(player entity.Player) error {
	return that.printf("It is player %s's turn\n", player)
}

func (that *Display) Occupied(cell int) error {
	return that.printf("The square <%d> has already been claimed\n", cell)
}

func (that *Display) InvalidChar(char byte) error {
	// echo the byte as typed, not as a rune
	return that.printf("Invalid character <%s>\n", []byte{char})
}

func (that *Display) Won(player entity.Player) error {
	return that.printf("Player %s won!!!\n", player)
}

func (that *Display) Draw() error {
	return that.print("DRAW!!!\n")
}

func (that *Display) GameOver() error {
	return that.print("\n\nGAME OVER\n\n")
}

func (that *Display) Terminated() error {
	return that.print("\nUser terminated game\n")
}

func (that *Display) print(s string) error {
	if _, err := io.WriteString(that.out, s); err != nil {
		return fmt.Errorf("failed to write to display: %w", err)
	}
	return nil
}

func (that *Display) printf(format string, args ...any) error {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		return fmt.Errorf("failed to write to display: %w", err)
	}
	return nil
}
