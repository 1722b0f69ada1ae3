package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

type KeyKind int

const (
	KeyInvalid KeyKind = iota
	KeyCell
	KeySkip
	KeyTerminate
)

// Key is one classified input character.
type Key struct {
	Kind KeyKind
	Char byte
	Cell int
}

const (
	charEOT = 0x04
	charEOF = 0xFF
)

// Classify maps a single character to the action the game loop takes for it.
func Classify(char byte) Key {
	switch {
	case char >= '0' && char <= '8':
		return Key{Kind: KeyCell, Char: char, Cell: int(char - '0')}
	case char == '\n', char == '\r', char == ' ', char == '\t':
		return Key{Kind: KeySkip, Char: char}
	case char == charEOF, char == charEOT:
		return Key{Kind: KeyTerminate, Char: char}
	default:
		return Key{Kind: KeyInvalid, Char: char}
	}
}

type readResult struct {
	char byte
	err  error
}

// Reader hands out one character per call. The underlying reader is drained by a
// single pump goroutine so a blocked read never holds up context cancellation.
type Reader struct {
	src   *bufio.Reader
	chars chan readResult
	done  chan struct{}

	startOnce sync.Once
	closeOnce sync.Once
}

func NewReader(src io.Reader) *Reader {
	return &Reader{
		src:   bufio.NewReader(src),
		chars: make(chan readResult),
		done:  make(chan struct{}),
	}
}

func (that *Reader) pump() {
	defer close(that.chars)

	for {
		char, err := that.src.ReadByte()

		select {
		case that.chars <- readResult{char: char, err: err}:
		case <-that.done:
			return
		}

		if err != nil {
			return
		}
	}
}

// Next blocks until a character arrives. End of input and a cancelled context both
// come back as KeyTerminate.
func (that *Reader) Next(ctx context.Context) (Key, error) {
	that.startOnce.Do(func() {
		go that.pump()
	})

	select {
	case <-ctx.Done():
		return Key{Kind: KeyTerminate}, nil
	case result, ok := <-that.chars:
		if !ok || errors.Is(result.err, io.EOF) {
			return Key{Kind: KeyTerminate, Char: charEOF}, nil
		}

		if result.err != nil {
			return Key{}, fmt.Errorf("failed to read input: %w", result.err)
		}

		return Classify(result.char), nil
	}
}

// Close stops the pump. A read already blocked in the source is abandoned.
func (that *Reader) Close() {
	that.closeOnce.Do(func() {
		close(that.done)
	})
}
