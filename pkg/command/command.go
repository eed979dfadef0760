// Package command interprets the line protocol of the key-value store.
//
// A line is split on whitespace; the first token names the command
// (case-insensitive) and the rest are its arguments. Commands are validated
// against a fixed arity table before they reach the store.
package command

import "strings"

// Command names
const (
	Set      = "SET"
	Get      = "GET"
	Unset    = "UNSET"
	Counts   = "COUNTS"
	Find     = "FIND"
	Begin    = "BEGIN"
	Rollback = "ROLLBACK"
	Commit   = "COMMIT"
	End      = "END"
)

// Literal protocol output
const (
	OutputNull          = "NULL"
	OutputNoTransaction = "NO TRANSACTION"
	OutputError         = "ERROR"
)

// Command is one parsed input line
type Command struct {
	Name string // upper-cased
	Args []string
}

// String renders the command back into protocol form
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Parse tokenizes line. ok is false for blank lines, which carry no command.
func Parse(line string) (cmd Command, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, false
	}
	return Command{
		Name: strings.ToUpper(fields[0]),
		Args: fields[1:],
	}, true
}
