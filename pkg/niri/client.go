package niri

import (
	"bufio"
	"fmt"
	"net"
	"strings"
)

const eventStreamRequest = "EventStream"

// Client is a subscription to niri's event stream.
type Client struct {
	conn   *net.UnixConn
	reader *bufio.Reader
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) ReadLine() (string, error) {
	str, err := c.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read from niri socket: %w", err)
	}
	return strings.TrimSuffix(str, "\n"), nil
}

func Connect(socketPath string) (*Client, error) {
	conn, err := connect(socketPath)
	if err != nil {
		return nil, err
	}

	if err := sendRequest(conn, eventStreamRequest); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("request event stream: %w", err)
	}

	reader := bufio.NewReader(conn)
	if _, err := readReply(reader); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("event stream handshake: %w", err)
	}

	return &Client{conn: conn, reader: reader}, nil
}
