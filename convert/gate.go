package convert

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Action is the verb shown to the operator in the confirmation prompt.
type Action string

const (
	ActionConvert Action = "convert"
	ActionMove    Action = "move"
	ActionDestroy Action = "destroy"
)

// Gate asks the operator to confirm a run before anything is mutated.
type Gate struct {
	in  *bufio.Reader
	out io.Writer
}

func NewGate(in io.Reader, out io.Writer) *Gate {
	return &Gate{in: bufio.NewReader(in), out: out}
}

// Confirm prints the prompt and blocks for one line of input. Only "yes", in
// any letter case, confirms. Closing the input without answering declines.
func (g *Gate) Confirm(action Action, count int, root string) (bool, error) {
	_, err := fmt.Fprintf(g.out, "Are you sure you want to %s %d LAZ files in %s? (yes/no): ", action, count, root)
	if err != nil {
		return false, err
	}
	line, err := g.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(g.out)
	}
	return IsAffirmative(line), nil
}

// IsAffirmative reports whether a raw input line confirms. The line terminator
// is dropped; any other whitespace makes the answer negative.
func IsAffirmative(line string) bool {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return strings.ToLower(line) == "yes"
}
