package bot

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/lox/hexatron/internal/game"
)

// ErrNonInteger is returned when an external agent answers with something
// other than a JSON integer.
var ErrNonInteger = errors.New("move is not an integer")

// maxLineSize bounds one protocol line. An observation of a hex.MaxSize
// board fits.
const maxLineSize = 1 << 20

// MoveResponse is the single line an external agent writes per turn.
type MoveResponse struct {
	Move  json.RawMessage `json:"move"`
	Error string          `json:"error,omitempty"`
}

// ParseMove decodes a response line into a delta. Range checking is left
// to the match driver.
func ParseMove(line []byte) (int, error) {
	var resp MoveResponse
	if err := json.Unmarshal(line, &resp); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if resp.Error != "" {
		return 0, fmt.Errorf("agent reported: %s", resp.Error)
	}
	if len(resp.Move) == 0 {
		return 0, fmt.Errorf("%w: missing move", ErrNonInteger)
	}
	n, err := strconv.ParseInt(string(resp.Move), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrNonInteger, resp.Move)
	}
	return int(n), nil
}

// Serve answers observations read line by line from r with moves written
// to w until r is exhausted or ctx is done. It is the other end of a
// Subprocess agent.
func Serve(ctx context.Context, agent game.Agent, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		var obs game.Observation
		if err := json.Unmarshal(scanner.Bytes(), &obs); err != nil {
			if encErr := enc.Encode(MoveResponse{Error: "bad observation: " + err.Error()}); encErr != nil {
				return encErr
			}
			continue
		}

		resp := MoveResponse{}
		move, err := agent.GenerateMove(ctx, obs)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Move = json.RawMessage(strconv.Itoa(move))
		}
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	return scanner.Err()
}
