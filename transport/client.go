package transport

import (
	"net"
)

type Client interface {
	Read() ([]byte, error)
	Write([]byte) (int, error)
	Remote() net.Addr
	Close() error
}

type client struct {
	conn net.Conn
	buff []byte
}

func NewClient(conn net.Conn, buff []byte) Client {
	return &client{
		buff: buff,
		conn: conn,
	}
}

// Read reads data into the internal buffer and returns a piece of it back. The returned
// slice is valid only until the next call. No deadline is set, so a silent peer blocks
// the caller forever.
func (c *client) Read() ([]byte, error) {
	n, err := c.conn.Read(c.buff)
	return c.buff[:n], err
}

// Write writes data into the underlying connection.
func (c *client) Write(b []byte) (int, error) {
	return c.conn.Write(b)
}

// Remote returns the remote address of the connection.
func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection.
func (c *client) Close() error {
	return c.conn.Close()
}
