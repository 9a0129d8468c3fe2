package bot

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/hexatron/internal/game"
)

// ErrProcessExited is returned once the agent process is gone.
var ErrProcessExited = errors.New("agent process exited")

// stopGrace is how long Close waits after closing stdin before killing.
const stopGrace = time.Second

// Subprocess is an agent running as a separate process. Each turn is one
// JSON line written to its stdin followed by one JSON line read back from
// its stdout. Calls must not overlap.
type Subprocess struct {
	command string
	args    []string
	logger  *log.Logger

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	lines  chan lineResult
	quit   chan struct{}
	done   chan struct{}
	stop   sync.Once
	mu     sync.Mutex
	closed bool
}

type lineResult struct {
	line []byte
	err  error
}

// StartSubprocess launches command and returns once the process is running.
func StartSubprocess(command string, args []string, logger *log.Logger) (*Subprocess, error) {
	cmd := exec.Command(command, args...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start process: %w", err)
	}

	s := &Subprocess{
		command: command,
		args:    args,
		logger:  logger.WithPrefix("subprocess").With("command", command, "pid", cmd.Process.Pid),
		cmd:     cmd,
		stdin:   stdin,
		lines:   make(chan lineResult, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	s.logger.Info("Agent process started", "args", args)

	go s.readLines(stdout)
	return s, nil
}

// readLines forwards stdout lines until EOF, then reaps the process. Wait
// must only run once all reads are finished.
func (s *Subprocess) readLines(stdout io.Reader) {
	defer close(s.done)

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	for scanner.Scan() {
		line := append([]byte(nil), scanner.Bytes()...)
		if !s.forward(lineResult{line: line}) {
			break
		}
	}
	err := scanner.Err()
	if err == nil {
		err = io.EOF
	}
	s.forward(lineResult{err: err})

	if err := s.cmd.Wait(); err != nil {
		s.logger.Debug("Agent process ended", "error", err)
		return
	}
	s.logger.Debug("Agent process ended")
}

func (s *Subprocess) forward(r lineResult) bool {
	select {
	case s.lines <- r:
		return true
	case <-s.quit:
		return false
	}
}

func (s *Subprocess) shutdown() {
	s.stop.Do(func() {
		s.closed = true
		close(s.quit)
	})
}

// GenerateMove sends obs and waits for the answer or ctx. When ctx ends
// first the process is killed, since its next line could no longer be
// matched to a turn.
func (s *Subprocess) GenerateMove(ctx context.Context, obs game.Observation) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrProcessExited
	}

	payload, err := json.Marshal(obs)
	if err != nil {
		return 0, fmt.Errorf("encode observation: %w", err)
	}
	if _, err := s.stdin.Write(append(payload, '\n')); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrProcessExited, err)
	}

	select {
	case res := <-s.lines:
		if res.err != nil {
			s.shutdown()
			return 0, fmt.Errorf("%w: %v", ErrProcessExited, res.err)
		}
		return ParseMove(res.line)
	case <-ctx.Done():
		s.logger.Warn("Agent did not answer in time, killing", "turn", obs.Turn)
		s.kill()
		return 0, ctx.Err()
	}
}

func (s *Subprocess) kill() {
	s.shutdown()
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
}

// Close stops the process, gracefully if it exits on end of input.
func (s *Subprocess) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shutdown()
	_ = s.stdin.Close()

	select {
	case <-s.done:
		return nil
	case <-time.After(stopGrace):
		s.logger.Debug("Force killing agent process")
		if err := s.cmd.Process.Kill(); err != nil {
			select {
			case <-s.done:
				return nil
			default:
				return fmt.Errorf("failed to kill process: %w", err)
			}
		}
		<-s.done
		return nil
	}
}
