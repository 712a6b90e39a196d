package bridge

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// Channel owns one live byte stream to the command port. Replies are read
// until the configured terminator; the host does not frame them otherwise.
type Channel struct {
	conn   net.Conn
	reader *bufio.Reader
	cfg    Config

	closeOnce sync.Once
	closed    atomic.Bool
	proven    atomic.Bool
}

func dialChannel(ctx context.Context, cfg Config) (*Channel, error) {
	dialer := net.Dialer{Timeout: cfg.ConnectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", cfg.Addr())
	if err != nil {
		return nil, err
	}
	return &Channel{
		conn:   conn,
		reader: bufio.NewReader(conn),
		cfg:    cfg,
	}, nil
}

// Send writes one rendered command under the write deadline.
func (c *Channel) Send(ctx context.Context, payload []byte) error {
	if c.closed.Load() {
		return ErrChannelClosed
	}
	if err := c.setWriteDeadline(ctx); err != nil {
		return err
	}
	_, err := c.conn.Write(payload)
	return err
}

// ReceiveUntil reads one reply, ending at the terminator sequence or at EOF
// with buffered data. The terminator is stripped from the result.
func (c *Channel) ReceiveUntil(ctx context.Context, terminator []byte) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrChannelClosed
	}
	if err := c.setReadDeadline(ctx); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && buf.Len() > 0 {
				return buf.Bytes(), nil
			}
			return nil, err
		}
		buf.WriteByte(b)
		if len(terminator) > 0 && bytes.HasSuffix(buf.Bytes(), terminator) {
			data := buf.Bytes()
			return data[:len(data)-len(terminator)], nil
		}
	}
}

// Proven reports whether this channel has ever produced a successful reply.
// A fresh channel that has not is the flaky-first-command case.
func (c *Channel) Proven() bool {
	return c.proven.Load()
}

func (c *Channel) MarkProven() {
	c.proven.Store(true)
}

// Close is idempotent and safe in any state.
func (c *Channel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		err = c.conn.Close()
	})
	return err
}

func (c *Channel) setWriteDeadline(ctx context.Context) error {
	deadline := time.Now().Add(c.cfg.WriteTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	return c.conn.SetWriteDeadline(deadline)
}

func (c *Channel) setReadDeadline(ctx context.Context) error {
	deadline := time.Now().Add(c.cfg.ReadTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	return c.conn.SetReadDeadline(deadline)
}
