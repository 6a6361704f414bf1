// Package console implements the slot machine display on a text terminal.
// On an interactive terminal the frame is redrawn in place with ANSI cursor
// control and coloured reels; on any other stream it degrades to plain lines.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"slot-machine/internal/controller"
	"slot-machine/internal/game/slot"
)

// ANSI control sequences.
const (
	clearScreen   = "\x1b[H\x1b[2J"
	saveCursor    = "\x1b7"
	restoreCursor = "\x1b8"
	resetStyle    = "\x1b[0m"
	boldStyle     = "\x1b[1m"
)

// Frame geometry, used to put each reel back in place during a spin.
const (
	reelRow     = 4
	reelColumn  = 8
	reelSpacing = 6
	frameWidth  = 40
)

// symbolColors maps each reel face to its foreground colour. 7 stands out.
var symbolColors = map[slot.Symbol]string{
	2: "\x1b[34m",
	3: "\x1b[36m",
	4: "\x1b[32m",
	5: "\x1b[35m",
	6: "\x1b[33m",
	7: "\x1b[1;31m",
}

// Options controls how the terminal draws.
type Options struct {
	// ANSI enables in-place redraws and colour.
	ANSI bool
	// Delay is the pause before each reel stops.
	Delay time.Duration
}

// Terminal is a controller.Display over a line-based reader and a writer.
type Terminal struct {
	in    *bufio.Reader
	out   io.Writer
	ansi  bool
	delay time.Duration
	sleep func(time.Duration)
}

var _ controller.Display = (*Terminal)(nil)

// New creates a Terminal reading from in and drawing to out.
func New(in io.Reader, out io.Writer, opts Options) *Terminal {
	return &Terminal{
		in:    bufio.NewReader(in),
		out:   out,
		ansi:  opts.ANSI,
		delay: opts.Delay,
		sleep: time.Sleep,
	}
}

// IsTerminal reports whether f is an interactive terminal, including
// Cygwin and MSYS pseudo terminals.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// RenderFrame redraws the machine.
func (t *Terminal) RenderFrame(f controller.Frame) {
	var b strings.Builder
	rule := strings.Repeat("=", frameWidth)

	if t.ansi {
		b.WriteString(clearScreen)
	} else {
		b.WriteString("\n")
	}

	b.WriteString(rule + "\n")
	b.WriteString(t.style(boldStyle, center("SLOT MACHINE", frameWidth)) + "\n")
	b.WriteString(rule + "\n")
	b.WriteString(strings.Repeat(" ", reelColumn-2))
	for i, s := range f.LastSpin {
		if i > 0 {
			b.WriteString(strings.Repeat(" ", reelSpacing-5))
		}
		b.WriteString("[ " + t.symbol(s) + " ]")
	}
	b.WriteString("\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Chips: %d\n", f.Chips)
	fmt.Fprintf(&b, "Last input: %s\n", f.LastInput)
	if f.IncludeOutputLine {
		b.WriteString(strings.Repeat("-", frameWidth) + "\n")
		b.WriteString(f.LastOutput + "\n")
		b.WriteString(strings.Repeat("-", frameWidth) + "\n")
	}

	io.WriteString(t.out, b.String())
}

// WriteLines prints each line below the frame.
func (t *Terminal) WriteLines(lines ...string) {
	for _, line := range lines {
		fmt.Fprintln(t.out, line)
	}
}

// ReadLine returns the next input line without its terminator. A final line
// with no newline is still returned; io.EOF is reported once input is empty.
func (t *Terminal) ReadLine() (string, error) {
	if t.ansi {
		io.WriteString(t.out, "> ")
	}

	line, err := t.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// RevealReelSymbol waits for the reel delay and then shows the reel at pos
// stopping on symbol.
func (t *Terminal) RevealReelSymbol(pos int, symbol slot.Symbol) {
	if t.delay > 0 {
		t.sleep(t.delay)
	}

	if !t.ansi {
		fmt.Fprintf(t.out, "Reel %d stops on %d\n", pos+1, symbol)
		return
	}

	col := reelColumn + 1 + pos*reelSpacing
	fmt.Fprintf(t.out, "%s\x1b[%d;%dH%s%s", saveCursor, reelRow, col, t.symbol(symbol), restoreCursor)
}

// Pause shows message and waits for the Enter key.
func (t *Terminal) Pause(message string) error {
	fmt.Fprintln(t.out, message)
	if _, err := t.in.ReadString('\n'); err != nil {
		return fmt.Errorf("failed to wait for acknowledgement: %w", err)
	}
	return nil
}

func (t *Terminal) symbol(s slot.Symbol) string {
	return t.style(symbolColors[s], fmt.Sprintf("%d", s))
}

func (t *Terminal) style(code, text string) string {
	if !t.ansi || code == "" {
		return text
	}
	return code + text + resetStyle
}

func center(text string, width int) string {
	pad := (width - len(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}
