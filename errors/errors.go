package errors

import (
	"errors"
)

var (
	ErrResolve      = errors.New("cannot resolve host")
	ErrConnect      = errors.New("cannot connect")
	ErrBadPort      = errors.New("bad port")
	ErrWriteRequest = errors.New("cannot send request")
	ErrRead         = errors.New("cannot read response")

	ErrHeaderTooLarge = errors.New("response header too large")
	ErrSink           = errors.New("cannot write body")

	ErrFinalize   = errors.New("cannot mark file executable")
	ErrBadVersion = errors.New("bad version identifier")
	ErrBadConfig  = errors.New("bad configuration")
)
