package http1

import (
	"strconv"
)

const (
	methodGET      = "GET "
	protoHTTP11    = " HTTP/1.1\r\n"
	hostHeader     = "Host: "
	closeHeader    = "Connection: close\r\n"
	identityHeader = "Accept-Encoding: identity, *;q=0\r\n"
	crlf           = "\r\n"
)

// RenderGET appends a GET request for the path to buff. The server is asked to close the
// connection after the response and not to apply any content encoding, so the body comes
// exactly as it is stored and ends together with the stream.
func RenderGET(buff []byte, path, host string, port uint16) []byte {
	if len(path) == 0 {
		path = "/"
	}

	buff = append(buff, methodGET...)
	buff = append(buff, path...)
	buff = append(buff, protoHTTP11...)
	buff = append(buff, hostHeader...)
	buff = append(buff, host...)
	buff = append(buff, ':')
	buff = strconv.AppendUint(buff, uint64(port), 10)
	buff = append(buff, crlf...)
	buff = append(buff, closeHeader...)
	buff = append(buff, identityHeader...)

	return append(buff, crlf...)
}
