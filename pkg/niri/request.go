package niri

import (
	"bufio"
	"encoding/json"
	"fmt"
)

// Requester sends one-shot requests over niri's IPC socket, one connection
// per request.
type Requester struct {
	SocketPath string
}

func NewRequester(socketPath string) *Requester {
	return &Requester{SocketPath: socketPath}
}

func (r *Requester) Version() (string, error) {
	resp, err := r.makeRequest("Version")
	if err != nil {
		return "", err
	}

	var v struct {
		Version *string `json:"Version"`
	}
	if err := json.Unmarshal(resp, &v); err != nil {
		return "", fmt.Errorf("unmarshal version: %w", err)
	}
	if v.Version == nil {
		return "", fmt.Errorf("unexpected version response: %s", resp)
	}

	return *v.Version, nil
}

func (r *Requester) makeRequest(request string) (json.RawMessage, error) {
	conn, err := connect(r.SocketPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := sendRequest(conn, request); err != nil {
		return nil, fmt.Errorf("request %s: %w", request, err)
	}

	resp, err := readReply(bufio.NewReader(conn))
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", request, err)
	}

	return resp, nil
}
