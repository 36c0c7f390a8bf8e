package client

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/eternalApril/moonray/resp"
	"go.uber.org/zap"
)

var (
	// ErrClosed is returned when the connection was closed, either by
	// Close or by the server ending the stream mid-reply.
	ErrClosed = errors.New("client: connection closed")

	// ErrTimeout is returned when a dial, send or receive missed its
	// configured deadline.
	ErrTimeout = errors.New("client: operation timed out")
)

// Options configure a single connection. Zero timeouts disable the
// corresponding deadline.
type Options struct {
	Addr         string
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Logger       *zap.Logger // nil disables logging
}

// Conn is one client connection to the server.
// It carries at most one outstanding request at a time and performs no
// internal locking; callers sharing a Conn across goroutines must
// serialize command executions themselves.
type Conn struct {
	conn   net.Conn
	opt    Options
	log    *zap.Logger
	buf    []byte
	closed bool
}

// Dial connects to the server at opt.Addr.
func Dial(opt Options) (*Conn, error) {
	if opt.Addr == "" {
		opt.Addr = "127.0.0.1:6379"
	}
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}

	conn, err := net.DialTimeout("tcp", opt.Addr, opt.DialTimeout)
	if err != nil {
		return nil, wrapErr("dial "+opt.Addr, err)
	}

	log.Debug("connected", zap.String("addr", opt.Addr))

	return &Conn{conn: conn, opt: opt, log: log}, nil
}

// Close terminates the underlying network connection
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}

// Do builds and executes a command in one call.
func (c *Conn) Do(name string, args ...string) (resp.Value, error) {
	cmd := Cmd(name)
	for _, arg := range args {
		cmd.Arg(arg)
	}
	return cmd.Execute(c)
}

// roundTrip sends one encoded request and reads until the accumulated
// reply bytes decode into a complete frame. Replies larger than a single
// read are handled by growing the buffer and retrying the decode.
func (c *Conn) roundTrip(req []byte) (resp.Value, error) {
	if c.closed {
		return resp.Value{}, ErrClosed
	}

	if err := c.setDeadline(c.conn.SetWriteDeadline, c.opt.WriteTimeout); err != nil {
		return resp.Value{}, wrapErr("send", err)
	}
	if _, err := c.conn.Write(req); err != nil {
		return resp.Value{}, wrapErr("send", err)
	}

	c.buf = c.buf[:0]
	chunk := make([]byte, 4096)

	for {
		if err := c.setDeadline(c.conn.SetReadDeadline, c.opt.ReadTimeout); err != nil {
			return resp.Value{}, wrapErr("receive", err)
		}

		n, err := c.conn.Read(chunk)
		if n > 0 {
			c.buf = append(c.buf, chunk[:n]...)

			v, consumed, derr := resp.Decode(c.buf, 0)
			if derr == nil {
				if consumed < len(c.buf) {
					c.log.Debug("trailing bytes after reply",
						zap.Int("extra", len(c.buf)-consumed))
				}
				return v, nil
			}
			if !errors.Is(derr, resp.ErrIncomplete) {
				return resp.Value{}, derr
			}
			c.log.Debug("reply incomplete, reading more",
				zap.Int("buffered", len(c.buf)))
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return resp.Value{}, fmt.Errorf("%w: stream ended before a complete reply", ErrClosed)
			}
			return resp.Value{}, wrapErr("receive", err)
		}
	}
}

func (c *Conn) setDeadline(set func(time.Time) error, d time.Duration) error {
	if d <= 0 {
		return set(time.Time{})
	}
	return set(time.Now().Add(d))
}

// wrapErr maps deadline misses onto ErrTimeout and tags everything else
// with the failing operation.
func wrapErr(op string, err error) error {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %s: %v", ErrTimeout, op, err)
	}
	return fmt.Errorf("client: %s: %w", op, err)
}
