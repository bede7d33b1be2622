package niri

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
)

var (
	ErrNotRunning = errors.New("niri might not be running")
	ErrRequest    = errors.New("niri refused request")
)

func connect(socketPath string) (*net.UnixConn, error) {
	if socketPath == "" {
		return nil, fmt.Errorf("socket path is empty, %w", ErrNotRunning)
	}

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	unixConn, ok := conn.(*net.UnixConn)
	if !ok {
		_ = conn.Close()
		return nil, fmt.Errorf("unexpected connection type %T", conn)
	}

	return unixConn, nil
}

// sendRequest writes a single request and closes the write half, niri only
// starts answering once it has seen the end of the request stream.
func sendRequest(conn *net.UnixConn, request string) error {
	payload, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("write to niri socket: %w", err)
	}

	if err := conn.CloseWrite(); err != nil {
		return fmt.Errorf("shut down write half: %w", err)
	}

	return nil
}

type reply struct {
	Ok  json.RawMessage `json:"Ok"`
	Err *string         `json:"Err"`
}

func readReply(reader *bufio.Reader) (json.RawMessage, error) {
	line, err := reader.ReadBytes('\n')
	if err != nil && len(line) == 0 {
		return nil, fmt.Errorf("read reply: %w", err)
	}

	var r reply
	if err := json.Unmarshal(line, &r); err != nil {
		return nil, fmt.Errorf("decode reply %q: %w", line, err)
	}

	switch {
	case r.Err != nil:
		return nil, fmt.Errorf("%w: %s", ErrRequest, *r.Err)
	case r.Ok == nil:
		return nil, fmt.Errorf("reply has neither Ok nor Err: %q", line)
	}

	return r.Ok, nil
}
