package httpserver

import (
	"bufio"
	"bytes"
	"net"
	"net/http"
	"strconv"
	"strings"
)

// LegacyListener accepts connections from BP_MQX_ETH controllers. Their
// firmware ends the request line with "HTTP/1.1 \r\n", which net/http
// rejects with 400, so every accepted connection has the trailing
// whitespace of its first line removed before the server parses it.
type LegacyListener struct {
	net.Listener
}

func NewLegacyListener(inner net.Listener) *LegacyListener {
	return &LegacyListener{Listener: inner}
}

func (l *LegacyListener) Accept() (net.Conn, error) {
	conn, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}
	return &legacyConn{Conn: conn, reader: bufio.NewReader(conn)}, nil
}

// legacyConn serves one request per connection: SingleWrite answers with
// Connection: close, so only the first line read is a request line.
type legacyConn struct {
	net.Conn
	reader  *bufio.Reader
	pending []byte
	cleaned bool
}

func (c *legacyConn) Read(p []byte) (int, error) {
	if !c.cleaned {
		c.cleaned = true
		line, err := c.reader.ReadString('\n')
		if err != nil && line == "" {
			return 0, err
		}
		c.pending = []byte(cleanRequestLine(line))
	}

	if len(c.pending) > 0 {
		n := copy(p, c.pending)
		c.pending = c.pending[n:]
		return n, nil
	}
	return c.reader.Read(p)
}

// cleanRequestLine strips spaces and tabs before the line terminator. A line
// without terminator is returned untouched.
func cleanRequestLine(line string) string {
	if !strings.HasSuffix(line, "\n") {
		return line
	}
	return strings.TrimRight(line, " \t\r\n") + "\r\n"
}

// SingleWrite buffers the whole response so it leaves with Content-Length
// and Connection: close in one write. The controllers' parser reads a single
// segment and does not understand chunked encoding.
func SingleWrite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buffered := &bufferedResponse{ResponseWriter: w}
		next.ServeHTTP(buffered, r)

		status := buffered.status
		if status == 0 {
			status = http.StatusOK
		}

		w.Header().Set("Connection", "close")
		if status != http.StatusNoContent && status != http.StatusNotModified {
			w.Header().Set("Content-Length", strconv.Itoa(buffered.body.Len()))
		}
		w.WriteHeader(status)
		if buffered.body.Len() > 0 {
			w.Write(buffered.body.Bytes())
		}
	})
}

type bufferedResponse struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (b *bufferedResponse) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}
