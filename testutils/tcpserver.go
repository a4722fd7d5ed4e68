package testutils

import (
	"bufio"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Server is a loopback TCP server answering every connection with the same canned
// response. Each chunk is flushed separately, with a small pause in between, so the
// client is likely to observe it as a distinct read.
type Server struct {
	Host string
	Port uint16

	l        net.Listener
	chunks   [][]byte
	mu       sync.Mutex
	requests []string
	wg       sync.WaitGroup
}

// Serve starts the server and registers its shutdown within t.Cleanup.
func Serve(t *testing.T, chunks ...[]byte) *Server {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().(*net.TCPAddr)
	s := &Server{
		Host:   "127.0.0.1",
		Port:   uint16(addr.Port),
		l:      l,
		chunks: chunks,
	}

	s.wg.Add(1)
	go s.accept()

	t.Cleanup(func() {
		_ = l.Close()
		s.wg.Wait()
	})

	return s
}

func (s *Server) accept() {
	defer s.wg.Done()

	for {
		conn, err := s.l.Accept()
		if err != nil {
			return
		}

		s.wg.Add(1)
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	request, err := readRequest(bufio.NewReader(conn))
	s.mu.Lock()
	s.requests = append(s.requests, request)
	s.mu.Unlock()
	if err != nil {
		return
	}

	for i, chunk := range s.chunks {
		if i > 0 {
			time.Sleep(5 * time.Millisecond)
		}

		if _, err = conn.Write(chunk); err != nil {
			return
		}
	}
}

// Requests returns the raw requests received so far, in order of arrival.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.requests...)
}

func readRequest(r *bufio.Reader) (string, error) {
	var request []byte

	for {
		line, err := r.ReadBytes('\n')
		request = append(request, line...)
		if err != nil {
			return string(request), err
		}

		if string(line) == "\r\n" {
			return string(request), nil
		}
	}
}

// FreePort returns a loopback port nobody listens on at the moment of return.
func FreePort(t *testing.T) uint16 {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	return uint16(port)
}
