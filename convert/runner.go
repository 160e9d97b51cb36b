package convert

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dendrascience/lazconv/laz"
	"github.com/dendrascience/lazconv/util"
	"github.com/fatih/color"
	"go.uber.org/zap"
)

// Strategy selects how conversions are executed.
type Strategy int

const (
	// Sequential converts and disposes one file at a time.
	Sequential Strategy = iota
	// Parallel hands every conversion to a Pool, waits for all of them, then
	// disposes sequentially.
	Parallel
)

func (s Strategy) String() string {
	if s == Parallel {
		return "parallel"
	}
	return "sequential"
}

// State is a step of the run lifecycle.
type State string

const (
	StateIdle                 State = "idle"
	StateDiscovering          State = "discovering"
	StateAwaitingConfirmation State = "awaiting-confirmation"
	StateAborted              State = "aborted"
	StateConverting           State = "converting"
	StateDisposing            State = "disposing"
	StateComplete             State = "complete"
)

// Pool executes conversion jobs on workers outside the calling goroutine.
type Pool interface {
	// Connect verifies the pool can accept work.
	Connect(ctx context.Context) error
	// ConvertAll submits every job and blocks until each has finished.
	// The returned slice is index-aligned with jobs; nil means converted.
	// One failing job never cancels the others.
	ConvertAll(ctx context.Context, jobs []laz.Job) []error
	Close() error
}

// Options is the configuration of a single run.
type Options struct {
	Root    string
	Destroy bool
	Layout  Layout
	DryRun  bool
}

// DisposerFactory builds the disposer for a confirmed run.
type DisposerFactory func(opts Options, archiveName string) (Disposer, error)

// Runner drives discovery, confirmation, conversion and disposition.
type Runner struct {
	Strategy Strategy
	Codec    laz.Codec // Sequential
	Pool     Pool      // Parallel
	Gate     *Gate
	Out      io.Writer
	Log      *zap.Logger

	// NewDisposer defaults to LocalDisposers.
	NewDisposer DisposerFactory
	// OnState observes lifecycle transitions.
	OnState func(State)
}

// LocalDisposers returns a Destroyer or a DirArchiver depending on opts.
func LocalDisposers(log *zap.Logger) DisposerFactory {
	return func(opts Options, archiveName string) (Disposer, error) {
		if opts.Destroy {
			return Destroyer{}, nil
		}
		return NewDirArchiver(opts.Root, archiveName, opts.Layout, log), nil
	}
}

// ArchiveName is the archive folder name the strategy uses.
func (r *Runner) ArchiveName() string {
	if r.Strategy == Parallel {
		return ParallelArchiveName
	}
	return ArchiveName
}

func (r *Runner) action(opts Options) Action {
	switch {
	case opts.Destroy:
		return ActionDestroy
	case r.Strategy == Parallel:
		return ActionMove
	default:
		return ActionConvert
	}
}

// archiveSkip keeps archive folders from earlier runs out of discovery. A flat
// archive lives only at the top of the root, so nested folders that happen to
// share its name are still searched.
func (r *Runner) archiveSkip(opts Options) []util.FindOption {
	switch {
	case opts.Destroy:
		return nil
	case opts.Layout == LayoutPerDir:
		return []util.FindOption{util.SkipDirNamed(r.ArchiveName())}
	default:
		return []util.FindOption{util.SkipPath(filepath.Join(opts.Root, r.ArchiveName()))}
	}
}

func (r *Runner) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

func (r *Runner) setState(s State) {
	r.logger().Debug("State change", zap.String("state", string(s)))
	if r.OnState != nil {
		r.OnState(s)
	}
}

// Run performs one invocation against opts.Root. Nothing is written before
// the operator confirms. Per-file failures do not stop the run; they are
// collected in the Summary and reported through an error wrapping
// ErrPartialFailure.
func (r *Runner) Run(ctx context.Context, opts Options) (Summary, error) {
	log := r.logger()
	summary := Summary{Root: opts.Root}
	if opts.Layout == "" {
		opts.Layout = LayoutFlat
	}
	r.setState(StateIdle)

	if r.Strategy == Parallel {
		if r.Pool == nil {
			return summary, ErrNoPool
		}
		if err := r.Pool.Connect(ctx); err != nil {
			return summary, fmt.Errorf("%w: %w", ErrPoolUnreachable, err)
		}
	} else if r.Codec == nil {
		return summary, fmt.Errorf("sequential strategy requires a codec")
	}
	if err := util.CheckRoot(opts.Root); err != nil {
		return summary, err
	}
	if err := CheckWritable(opts.Root); err != nil {
		return summary, err
	}

	r.setState(StateDiscovering)
	files, err := util.FindFiles(opts.Root, laz.SourceExt, r.archiveSkip(opts)...)
	if err != nil {
		return summary, err
	}
	summary.Found = len(files)
	PrintDiscovery(r.Out, opts.Root, files)
	log.Info("Discovery finished",
		zap.String("root", opts.Root),
		zap.Int("files", len(files)),
		zap.Stringer("strategy", r.Strategy),
	)

	if len(files) == 0 {
		fmt.Fprintln(r.Out, "No LAZ files found.")
		r.setState(StateComplete)
		return summary, nil
	}

	if opts.DryRun {
		r.printPlan(opts, files)
		r.setState(StateComplete)
		return summary, nil
	}

	r.setState(StateAwaitingConfirmation)
	ok, err := r.Gate.Confirm(r.action(opts), len(files), opts.Root)
	if err != nil {
		return summary, fmt.Errorf("read confirmation: %w", err)
	}
	if !ok {
		fmt.Fprintln(r.Out, "Aborted.")
		r.setState(StateAborted)
		return summary, ErrAborted
	}

	factory := r.NewDisposer
	if factory == nil {
		factory = LocalDisposers(log)
	}
	disposer, err := factory(opts, r.ArchiveName())
	if err != nil {
		return summary, err
	}
	if err := disposer.Prepare(ctx); err != nil {
		return summary, fmt.Errorf("prepare archive: %w", err)
	}

	if r.Strategy == Parallel {
		summary.Outcomes = r.runParallel(ctx, disposer, files)
	} else {
		summary.Outcomes = r.runSequential(ctx, disposer, files)
	}

	fmt.Fprintln(r.Out, "Processing complete.")
	summary.Print(r.Out)
	r.setState(StateComplete)
	return summary, summary.Err()
}

func (r *Runner) printPlan(opts Options, files []string) {
	fmt.Fprintln(r.Out, "DRY RUN - no changes will be made")
	for _, src := range files {
		target := util.TargetPath(src, laz.TargetExt)
		var fate string
		if opts.Destroy {
			fate = "delete source"
		} else {
			key, err := archiveKey(opts.Root, r.ArchiveName(), opts.Layout, src)
			if err != nil {
				fate = fmt.Sprintf("archive (%v)", err)
			} else {
				fate = "archive to " + key
			}
		}
		fmt.Fprintf(r.Out, "  %s -> %s, %s\n", src, target, fate)
	}
}

func jobFor(src string) laz.Job {
	return laz.Job{Source: src, Target: util.TargetPath(src, laz.TargetExt)}
}

func (r *Runner) runSequential(ctx context.Context, disposer Disposer, files []string) []Outcome {
	outcomes := make([]Outcome, 0, len(files))
	for _, src := range files {
		job := jobFor(src)
		if err := ctx.Err(); err != nil {
			outcomes = append(outcomes, r.report(Outcome{Source: src, Target: job.Target, Stage: StageConvert, Err: err}))
			continue
		}
		r.setState(StateConverting)
		if err := r.Codec.Convert(ctx, job); err != nil {
			outcomes = append(outcomes, r.report(Outcome{Source: src, Target: job.Target, Stage: StageConvert, Err: err}))
			continue
		}
		r.setState(StateDisposing)
		outcomes = append(outcomes, r.dispose(ctx, disposer, job))
	}
	return outcomes
}

func (r *Runner) runParallel(ctx context.Context, disposer Disposer, files []string) []Outcome {
	jobs := make([]laz.Job, len(files))
	for i, src := range files {
		jobs[i] = jobFor(src)
	}

	r.setState(StateConverting)
	r.logger().Info("Submitting conversions to worker pool", zap.Int("jobs", len(jobs)))
	errs := r.Pool.ConvertAll(ctx, jobs)
	if len(errs) != len(jobs) {
		err := fmt.Errorf("worker pool returned %d results for %d jobs", len(errs), len(jobs))
		outcomes := make([]Outcome, len(jobs))
		for i, job := range jobs {
			outcomes[i] = r.report(Outcome{Source: job.Source, Target: job.Target, Stage: StageConvert, Err: err})
		}
		return outcomes
	}

	r.setState(StateDisposing)
	outcomes := make([]Outcome, 0, len(jobs))
	for i, job := range jobs {
		if errs[i] != nil {
			outcomes = append(outcomes, r.report(Outcome{Source: job.Source, Target: job.Target, Stage: StageConvert, Err: errs[i]}))
			continue
		}
		outcomes = append(outcomes, r.dispose(ctx, disposer, job))
	}
	return outcomes
}

func (r *Runner) dispose(ctx context.Context, disposer Disposer, job laz.Job) Outcome {
	o := Outcome{Source: job.Source, Target: job.Target}
	d, err := disposer.Dispose(ctx, job.Source)
	if err != nil {
		o.Stage = StageDispose
		o.Err = err
	} else {
		o.Disposition = d
	}
	return r.report(o)
}

func (r *Runner) report(o Outcome) Outcome {
	log := r.logger()
	if o.Failed() {
		log.Warn("File failed",
			zap.String("source", o.Source),
			zap.String("stage", string(o.Stage)),
			zap.Error(o.Err),
		)
		color.New(color.FgRed).Fprintf(r.Out, "Failed %s: %v\n", o.Source, o.Err)
		return o
	}
	log.Debug("File processed",
		zap.String("source", o.Source),
		zap.String("target", o.Target),
		zap.String("disposition", string(o.Disposition)),
	)
	fmt.Fprintf(r.Out, "Processed %s.\n", o.Source)
	return o
}
