package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/hexatron/internal/game"
	"github.com/lox/hexatron/internal/hex"
)

// helperEnv switches the test binary into an agent process.
const helperEnv = "HEXATRON_HELPER_AGENT"

func TestMain(m *testing.M) {
	switch os.Getenv(helperEnv) {
	case "":
		os.Exit(m.Run())
	case "straight":
		_ = Serve(context.Background(), NewStraightBot(log.Default()), os.Stdin, os.Stdout)
	case "float":
		answerRaw(`{"move": 1.5}`)
	case "hang":
		time.Sleep(time.Minute)
	case "exit":
	}
	os.Exit(0)
}

func answerRaw(line string) {
	buf := make([]byte, maxLineSize)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return
		}
		fmt.Println(line)
	}
}

func startHelper(t *testing.T, mode string) *Subprocess {
	t.Helper()
	t.Setenv(helperEnv, mode)
	s, err := StartSubprocess(os.Args[0], []string{"-test.run=^$"}, log.NewWithOptions(io.Discard, log.Options{}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSubprocessRoundTrip(t *testing.T) {
	s := startHelper(t, "straight")
	e := game.NewTestEngine()

	for i := 0; i < 3; i++ {
		move, err := s.GenerateMove(context.Background(), e.Observe(0))
		require.NoError(t, err)
		assert.Equal(t, 0, move)
	}
	assert.NoError(t, s.Close())
}

func TestSubprocessNonInteger(t *testing.T) {
	s := startHelper(t, "float")

	_, err := s.GenerateMove(context.Background(), game.NewTestEngine().Observe(0))
	assert.ErrorIs(t, err, ErrNonInteger)
}

func TestSubprocessTimeoutKills(t *testing.T) {
	s := startHelper(t, "hang")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := s.GenerateMove(ctx, game.NewTestEngine().Observe(0))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = s.GenerateMove(context.Background(), game.NewTestEngine().Observe(0))
	assert.ErrorIs(t, err, ErrProcessExited)
}

func TestSubprocessEarlyExit(t *testing.T) {
	s := startHelper(t, "exit")

	_, err := s.GenerateMove(context.Background(), game.NewTestEngine().Observe(0))
	assert.ErrorIs(t, err, ErrProcessExited)
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		line    string
		want    int
		wantErr error
	}{
		{line: `{"move": 2}`, want: 2},
		{line: `{"move": -1}`, want: -1},
		{line: `{"move": 7}`, want: 7},
		{line: `{"move": 1.5}`, wantErr: ErrNonInteger},
		{line: `{"move": "left"}`, wantErr: ErrNonInteger},
		{line: `{}`, wantErr: ErrNonInteger},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseMove([]byte(tt.line))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseMove([]byte(`not json`))
	assert.Error(t, err)
	_, err = ParseMove([]byte(`{"error": "boom"}`))
	assert.ErrorContains(t, err, "boom")
}

func TestServe(t *testing.T) {
	obs := game.NewTestEngine().Observe(1)
	line, err := json.Marshal(obs)
	require.NoError(t, err)

	in := strings.NewReader(string(line) + "\n" + "garbage\n")
	var out bytes.Buffer
	agent := game.NewScriptedAgent(-2)

	require.NoError(t, Serve(context.Background(), agent, in, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	move, err := ParseMove([]byte(lines[0]))
	require.NoError(t, err)
	assert.Equal(t, -2, move)
	_, err = ParseMove([]byte(lines[1]))
	assert.ErrorContains(t, err, "bad observation")
}

func TestServeLargestBoard(t *testing.T) {
	obs := game.NewTestEngine(game.WithSize(hex.MaxSize)).Observe(0)
	line, err := json.Marshal(obs)
	require.NoError(t, err)
	require.Less(t, len(line), maxLineSize)

	var out bytes.Buffer
	require.NoError(t, Serve(context.Background(), NewStraightBot(log.Default()), bytes.NewReader(append(line, '\n')), &out))

	move, err := ParseMove(bytes.TrimSpace(out.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 0, move)
}
