package convert

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Stage names the step a file failed in.
type Stage string

const (
	StageConvert Stage = "convert"
	StageDispose Stage = "dispose"
)

// Outcome is the per-file result of a run.
type Outcome struct {
	Source      string
	Target      string
	Disposition Disposition
	Stage       Stage
	Err         error
}

func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Summary collects every outcome of a run in discovery order.
type Summary struct {
	Root     string
	Found    int
	Outcomes []Outcome
}

// Failures returns the outcomes that did not complete.
func (s Summary) Failures() []Outcome {
	var failed []Outcome
	for _, o := range s.Outcomes {
		if o.Failed() {
			failed = append(failed, o)
		}
	}
	return failed
}

// Count returns how many files ended with disposition d.
func (s Summary) Count(d Disposition) int {
	n := 0
	for _, o := range s.Outcomes {
		if !o.Failed() && o.Disposition == d {
			n++
		}
	}
	return n
}

// Err folds the failures into one error wrapping ErrPartialFailure, or nil.
func (s Summary) Err() error {
	failed := s.Failures()
	if len(failed) == 0 {
		return nil
	}
	errs := []error{fmt.Errorf("%w: %d of %d", ErrPartialFailure, len(failed), len(s.Outcomes))}
	for _, o := range failed {
		errs = append(errs, o.Err)
	}
	return errors.Join(errs...)
}

// Print writes the end-of-run report.
func (s Summary) Print(w io.Writer) {
	failed := s.Failures()
	ok := len(s.Outcomes) - len(failed)

	fmt.Fprintf(w, "\nSummary for %s:\n", s.Root)
	fmt.Fprintf(w, "  Converted: %d\n", ok)
	if n := s.Count(DispositionMoved); n > 0 {
		fmt.Fprintf(w, "  Archived: %d\n", n)
	}
	if n := s.Count(DispositionDuplicate); n > 0 {
		fmt.Fprintf(w, "  Deleted (already archived): %d\n", n)
	}
	if n := s.Count(DispositionDeleted); n > 0 {
		fmt.Fprintf(w, "  Deleted: %d\n", n)
	}
	if len(failed) == 0 {
		return
	}
	red := color.New(color.FgRed)
	red.Fprintf(w, "  Failed: %d\n", len(failed))
	for _, o := range failed {
		red.Fprintf(w, "    - %s (%s): %v\n", o.Source, o.Stage, o.Err)
	}
}
