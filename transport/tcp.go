package transport

import (
	"fmt"
	"net"
	"strconv"

	"github.com/indigo-web/rawfetch/config"
	"github.com/indigo-web/rawfetch/errors"
)

func resolveTCP(host string, port uint16) (*net.TCPAddr, error) {
	if port == 0 {
		return nil, errors.ErrBadPort
	}

	addr, err := net.ResolveTCPAddr("tcp", net.JoinHostPort(host, strconv.Itoa(int(port))))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", errors.ErrResolve, host, err)
	}

	return addr, nil
}

// Dial resolves the host and opens a TCP connection to it. Nagle's algorithm is toggled
// according to cfg.NoDelay, so small request writes go out immediately by default.
func Dial(host string, port uint16, cfg config.NET) (*net.TCPConn, error) {
	addr, err := resolveTCP(host, port)
	if err != nil {
		return nil, err
	}

	conn, err := net.DialTCP("tcp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("%w to %s: %w", errors.ErrConnect, addr, err)
	}

	if err = conn.SetNoDelay(cfg.NoDelay); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: set TCP_NODELAY: %w", errors.ErrConnect, err)
	}

	return conn, nil
}
