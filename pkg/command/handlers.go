package command

import (
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-kv/pkg/metrics"
)

// handler describes one command of the protocol
type handler struct {
	arity   int
	mutates bool // changes the layer stack; refreshes store gauges
	run     func(s Store, args []string) Result
}

// handlers is the dispatch table. END never reaches the store.
var handlers = map[string]handler{
	Set:      {arity: 2, mutates: true, run: runSet},
	Get:      {arity: 1, run: runGet},
	Unset:    {arity: 1, mutates: true, run: runUnset},
	Counts:   {arity: 1, run: runCounts},
	Find:     {arity: 1, run: runFind},
	Begin:    {arity: 0, mutates: true, run: runBegin},
	Rollback: {arity: 0, mutates: true, run: runRollback},
	Commit:   {arity: 0, mutates: true, run: runCommit},
	End:      {arity: 0, run: runEnd},
}

// Arity returns the argument count expected by the named command
func Arity(name string) (int, bool) {
	h, ok := handlers[strings.ToUpper(name)]
	return h.arity, ok
}

func runSet(s Store, args []string) Result {
	s.Set(args[0], args[1])
	return Result{}
}

func runGet(s Store, args []string) Result {
	value, ok := s.Get(args[0])
	if !ok {
		value = OutputNull
	}
	return Result{Output: []string{value}}
}

func runUnset(s Store, args []string) Result {
	s.Unset(args[0])
	return Result{}
}

func runCounts(s Store, args []string) Result {
	return Result{Output: []string{strconv.Itoa(s.CountByValue(args[0]))}}
}

func runFind(s Store, args []string) Result {
	return Result{Output: []string{strings.Join(s.FindByValue(args[0]), " ")}}
}

func runBegin(s Store, _ []string) Result {
	s.Begin()
	return Result{}
}

func runRollback(s Store, _ []string) Result {
	if !s.Rollback() {
		return noTransaction()
	}
	return Result{}
}

func runCommit(s Store, _ []string) Result {
	if !s.Commit() {
		return noTransaction()
	}
	return Result{}
}

func runEnd(_ Store, _ []string) Result {
	return Result{End: true}
}

func noTransaction() Result {
	return Result{
		Output: []string{OutputNoTransaction},
		Status: metrics.StatusNoTransaction,
	}
}
