package dummy

import (
	"io"
	"net"

	"github.com/indigo-web/rawfetch/transport"
)

var _ transport.Client = new(Client)

// Client returns the chunks it was initialised with, one per read, and reports io.EOF
// afterwards. It also tracks all the written data, making it thereby a universal mock
// suitable for most of the tests.
type Client struct {
	closed  bool
	reads   int
	pointer int
	written []byte
	data    [][]byte
	err     error
}

func NewMockClient(data ...[]byte) *Client {
	return &Client{
		data: data,
	}
}

func (c *Client) Read() (data []byte, err error) {
	if c.closed {
		return nil, io.EOF
	}

	c.reads++

	if c.pointer >= len(c.data) {
		if c.err != nil {
			return nil, c.err
		}

		return nil, io.EOF
	}

	piece := c.data[c.pointer]
	c.pointer++

	return piece, nil
}

func (c *Client) Write(p []byte) (int, error) {
	c.written = append(c.written, p...)
	return len(p), nil
}

func (*Client) Remote() net.Addr {
	return nil
}

func (c *Client) Close() error {
	c.closed = true
	return nil
}

// FailWith makes the client return err instead of io.EOF once the data is exhausted.
func (c *Client) FailWith(err error) *Client {
	c.err = err
	return c
}

// Reads returns how many times Read was called on an open client.
func (c *Client) Reads() int {
	return c.reads
}

func (c *Client) Closed() bool {
	return c.closed
}

func (c *Client) Written() string {
	return string(c.written)
}

// Split cuts data into pieces of n bytes. The last piece may be shorter.
func Split(data []byte, n int) [][]byte {
	var pieces [][]byte

	for len(data) > n {
		pieces = append(pieces, data[:n])
		data = data[n:]
	}

	if len(data) > 0 {
		pieces = append(pieces, data)
	}

	return pieces
}

// SinkholeWriter stores everything written into it.
type SinkholeWriter struct {
	Data []byte
}

func NewSinkholeWriter() *SinkholeWriter {
	return new(SinkholeWriter)
}

func (s *SinkholeWriter) Write(b []byte) (int, error) {
	s.Data = append(s.Data, b...)
	return len(b), nil
}

// ShortWriter accepts at most Limit bytes in total and silently drops the rest, reporting
// a short write without an error.
type ShortWriter struct {
	Limit int
	Data  []byte
}

func (s *ShortWriter) Write(b []byte) (int, error) {
	n := min(len(b), s.Limit-len(s.Data))
	s.Data = append(s.Data, b[:n]...)
	return n, nil
}
