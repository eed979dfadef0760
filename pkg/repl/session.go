// Package repl runs an interactive command session over a line stream.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/termenv"

	"github.com/dd0wney/cluso-kv/pkg/command"
	"github.com/dd0wney/cluso-kv/pkg/logging"
)

// Process exit codes
const (
	ExitOK          = 0
	ExitIOError     = 1
	ExitInterrupted = 130
)

// maxLineBytes bounds a single input line
const maxLineBytes = 1024 * 1024

// Session reads command lines, executes them and prints the results
type Session struct {
	id     string
	interp *command.Interpreter
	in     io.Reader
	out    io.Writer
	prompt string
	logger logging.Logger
}

// Option configures a Session
type Option func(*Session)

// WithPrompt sets the text printed before each line is read
func WithPrompt(prompt string) Option {
	return func(s *Session) {
		s.prompt = prompt
	}
}

// WithLogger sets the session logger
func WithLogger(logger logging.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithSessionID overrides the generated session ID
func WithSessionID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// NewSession creates a session reading from in and writing results to out
func NewSession(interp *command.Interpreter, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		id:     uuid.NewString(),
		interp: interp,
		in:     in,
		out:    out,
		prompt: "> ",
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logging.Component("repl"), logging.Session(s.id))
	s.prompt = stylePrompt(out, s.prompt)
	return s
}

// ID returns the session ID used in log lines
func (s *Session) ID() string {
	return s.id
}

// stylePrompt highlights the prompt when out is a color-capable terminal.
// Pipes and buffers get the prompt verbatim.
func stylePrompt(out io.Writer, prompt string) string {
	if prompt == "" {
		return prompt
	}
	renderer := lipgloss.NewRenderer(out)
	if renderer.ColorProfile() == termenv.Ascii {
		return prompt
	}
	return renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Render(prompt)
}

// readResult is one line, or the terminal error, from the reader goroutine
type readResult struct {
	line string
	err  error
}

// readLines scans in until EOF or until done is closed.
// The channel is closed after the last send.
func readLines(in io.Reader, done <-chan struct{}) <-chan readResult {
	lines := make(chan readResult)
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- readResult{line: scanner.Text()}:
			case <-done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case lines <- readResult{err: err}:
			case <-done:
			}
		}
	}()
	return lines
}

// Run executes the session until END, end of input or cancellation of ctx.
// It returns the process exit code; err is non-nil only for read or write failures.
func (s *Session) Run(ctx context.Context) (int, error) {
	s.logger.Info("session started")

	done := make(chan struct{})
	defer close(done)
	lines := readLines(s.in, done)

	for {
		if err := s.write(s.prompt); err != nil {
			return ExitIOError, err
		}

		select {
		case <-ctx.Done():
			s.logger.Info("session interrupted", logging.Error(ctx.Err()))
			return ExitInterrupted, nil

		case r, ok := <-lines:
			if !ok {
				s.logger.Info("session ended", logging.String("reason", "eof"))
				return ExitOK, nil
			}
			if r.err != nil {
				s.logger.Error("reading input failed", logging.Error(r.err))
				return ExitIOError, fmt.Errorf("read input: %w", r.err)
			}

			end, err := s.execute(r.line)
			if err != nil {
				return ExitIOError, err
			}
			if end {
				s.logger.Info("session ended", logging.String("reason", "end"))
				return ExitOK, nil
			}
		}
	}
}

// execute runs one line and prints its output. end reports an END command.
func (s *Session) execute(line string) (end bool, err error) {
	result, ok, execErr := s.interp.ExecuteLine(line)
	if !ok {
		return false, nil
	}
	if execErr != nil {
		return false, s.writeLine(command.OutputError)
	}
	for _, out := range result.Output {
		if err := s.writeLine(out); err != nil {
			return false, err
		}
	}
	return result.End, nil
}

func (s *Session) write(text string) error {
	if text == "" {
		return nil
	}
	if _, err := io.WriteString(s.out, text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func (s *Session) writeLine(line string) error {
	return s.write(line + "\n")
}
