package command

import (
	"time"

	"github.com/dd0wney/cluso-kv/pkg/logging"
	"github.com/dd0wney/cluso-kv/pkg/metrics"
	"github.com/dd0wney/cluso-kv/pkg/storage"
)

// Store is the set of operations the interpreter drives.
// *storage.LayeredStore implements it.
type Store interface {
	Set(key, value string)
	Get(key string) (string, bool)
	Unset(key string)
	Begin()
	Rollback() bool
	Commit() bool
	Depth() int
	CountByValue(value string) int
	FindByValue(value string) []string
	Stats() storage.Statistics
}

// Result is the outcome of a successfully interpreted command
type Result struct {
	Output []string // Lines to print, possibly none
	End    bool     // The session should terminate
	Status string   // metrics.StatusOK or metrics.StatusNoTransaction
}

// Interpreter validates commands and applies them to a Store.
// Like the store it drives, it is meant for a single goroutine.
type Interpreter struct {
	store   Store
	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures an Interpreter
type Option func(*Interpreter)

// WithLogger sets the logger used for per-command logging
func WithLogger(logger logging.Logger) Option {
	return func(in *Interpreter) {
		in.logger = logger
	}
}

// WithMetrics records every command in registry
func WithMetrics(registry *metrics.Registry) Option {
	return func(in *Interpreter) {
		in.metrics = registry
	}
}

// NewInterpreter creates an interpreter over store
func NewInterpreter(store Store, opts ...Option) *Interpreter {
	in := &Interpreter{
		store:  store,
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(in)
	}
	in.logger = in.logger.With(logging.Component("interpreter"))
	return in
}

// Store returns the store the interpreter drives
func (in *Interpreter) Store() Store {
	return in.store
}

// Execute validates cmd and applies it. Malformed commands return an error
// matching ErrMalformedCommand and leave the store untouched.
func (in *Interpreter) Execute(cmd Command) (Result, error) {
	timer := logging.StartTimer(in.logger, "command", logging.Command(cmd.Name), logging.Args(cmd.Args))

	h, known := handlers[cmd.Name]
	if !known {
		err := unknownCommand(cmd)
		in.record("UNKNOWN", metrics.StatusMalformed, timer.EndWarn(err))
		return Result{}, err
	}
	if len(cmd.Args) != h.arity {
		err := wrongArity(cmd, h.arity)
		in.record(cmd.Name, metrics.StatusMalformed, timer.EndWarn(err))
		return Result{}, err
	}

	result := h.run(in.store, cmd.Args)
	if result.Status == "" {
		result.Status = metrics.StatusOK
	}

	in.record(cmd.Name, result.Status, timer.End(logging.Status(result.Status)))

	outcome := transactionOutcome(cmd.Name, result.Status)
	if outcome != "" {
		in.logger.Debug("transaction "+outcome, logging.Depth(in.store.Depth()))
	}
	if in.metrics != nil {
		if outcome != "" {
			in.metrics.RecordTransaction(outcome)
		}
		if h.mutates {
			in.metrics.UpdateStoreMetrics(in.store.Stats())
		}
	}
	return result, nil
}

// ExecuteLine parses and executes one input line. ok is false for blank lines.
func (in *Interpreter) ExecuteLine(line string) (result Result, ok bool, err error) {
	cmd, ok := Parse(line)
	if !ok {
		return Result{}, false, nil
	}
	result, err = in.Execute(cmd)
	return result, true, err
}

func (in *Interpreter) record(name, status string, elapsed time.Duration) {
	if in.metrics == nil {
		return
	}
	in.metrics.RecordCommand(name, status, elapsed)
}

func transactionOutcome(name, status string) string {
	if status != metrics.StatusOK {
		return ""
	}
	switch name {
	case Begin:
		return metrics.OutcomeBegun
	case Commit:
		return metrics.OutcomeCommitted
	case Rollback:
		return metrics.OutcomeRolledBack
	}
	return ""
}
