package http1

import (
	"fmt"
	"io"

	"github.com/indigo-web/rawfetch/errors"
	"github.com/indigo-web/rawfetch/internal/buffer"
	"github.com/indigo-web/rawfetch/transport"
)

// boundary is the CRLFCRLF sequence packed the same way as the rolling window is
const boundary = uint32('\r')<<24 | uint32('\n')<<16 | uint32('\r')<<8 | uint32('\n')

// Splitter is a stream-based separator of the response header block from the body. The
// header isn't parsed in any way, it is just a span of bytes terminated by an empty line.
// Every byte of the header is kept in the accumulation buffer, while the last four bytes
// seen are additionally packed into a rolling window, so the boundary is detected in
// constant time per byte independently of how the stream is split into reads.
type Splitter struct {
	header buffer.Buffer
	window uint32
	strip  bool
	found  bool
	state  splitterState
}

// NewSplitter returns a splitter, stripping the header if strip is set. Otherwise, every
// byte is considered a part of the body, so the raw response is passed through as is.
func NewSplitter(header buffer.Buffer, strip bool) *Splitter {
	s := &Splitter{
		header: header,
		strip:  strip,
	}
	s.Reset()

	return s
}

// Parse consumes a single chunk of the stream. Once the header is completed, rest holds
// the body bytes arrived within the same chunk. All the following chunks are returned as
// rest verbatim.
func (s *Splitter) Parse(data []byte) (headersCompleted bool, rest []byte, err error) {
	if s.state == eStreamingBody {
		return true, data, nil
	}

	for i, c := range data {
		s.window = s.window<<8 | uint32(c)
		if s.window == boundary {
			if !s.header.Append(data[:i+1]) {
				return false, nil, errors.ErrHeaderTooLarge
			}

			s.state = eStreamingBody
			s.found = true

			return true, data[i+1:], nil
		}
	}

	if !s.header.Append(data) {
		return false, nil, errors.ErrHeaderTooLarge
	}

	return false, nil, nil
}

// Header returns the header bytes accumulated so far, including the terminating empty line
// if it was already met.
func (s *Splitter) Header() []byte {
	return s.header.Bytes()
}

// Completed reports whether the splitter streams the body now.
func (s *Splitter) Completed() bool {
	return s.state == eStreamingBody
}

// Boundary reports whether the end of the header block was actually met in the stream.
func (s *Splitter) Boundary() bool {
	return s.found
}

// Reset brings the splitter back to its initial state.
func (s *Splitter) Reset() {
	s.header.Clear()
	s.window = 0
	s.found = false
	s.state = eScanningHeader

	if !s.strip {
		s.state = eStreamingBody
	}
}

// Stats describes a single drained response.
type Stats struct {
	HeaderBytes int
	BodyBytes   int64
	Reads       int
	Boundary    bool
}

// Drain reads the client until the stream is over, writing the body into the sink. The
// stream is over on io.EOF or an empty read. Running out of data before the header is
// completed isn't an error, nothing is written in this case.
func Drain(client transport.Client, sink io.Writer, s *Splitter) (stats Stats, err error) {
	defer func() {
		stats.HeaderBytes = s.header.Len()
		stats.Boundary = s.Boundary()
	}()

	for {
		data, readErr := client.Read()
		if len(data) > 0 {
			stats.Reads++

			_, body, err := s.Parse(data)
			if err != nil {
				return stats, err
			}

			if len(body) > 0 {
				n, err := sink.Write(body)
				stats.BodyBytes += int64(n)

				switch {
				case err != nil:
					return stats, fmt.Errorf("%w: %w", errors.ErrSink, err)
				case n != len(body):
					return stats, fmt.Errorf("%w: %w", errors.ErrSink, io.ErrShortWrite)
				}
			}
		}

		switch {
		case readErr == io.EOF:
			return stats, nil
		case readErr != nil:
			return stats, fmt.Errorf("%w: %w", errors.ErrRead, readErr)
		case len(data) == 0:
			return stats, nil
		}
	}
}
