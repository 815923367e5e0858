// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transport

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// maxLineBytes caps a single message line. Tool responses are small, but
// resource reads return the whole order ledger as indented JSON, so the
// cap is generous.
const maxLineBytes = 1024 * 1024

// StdioServerTransport carries newline-delimited JSON-RPC over a reader
// and writer pair, normally os.Stdin and os.Stdout. One line is one
// message; blank lines are skipped and a trailing carriage return is
// tolerated for clients that frame with \r\n.
//
// A single goroutine owns the input stream for the transport's lifetime
// and feeds Receive through a channel. A Receive abandoned by context
// cancellation therefore leaves no goroutine behind, and the line it
// would have consumed is delivered to the next Receive instead of being
// lost.
type StdioServerTransport struct {
	in    *bufio.Scanner
	out   io.Writer
	lines chan []byte
	start sync.Once

	mu      sync.Mutex // guards out, closed, readErr
	closed  bool
	readErr error
}

// NewStdioServerTransport creates a transport reading messages from r and
// writing them to w.
func NewStdioServerTransport(r io.Reader, w io.Writer) *StdioServerTransport {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &StdioServerTransport{
		in:    sc,
		out:   w,
		lines: make(chan []byte, 1),
	}
}

// readLoop scans the input stream line by line until it ends, then
// records the terminal error and closes the line channel.
func (t *StdioServerTransport) readLoop() {
	defer close(t.lines)
	for t.in.Scan() {
		line := bytes.TrimSuffix(t.in.Bytes(), []byte("\r"))
		if len(line) == 0 {
			continue
		}
		// The scanner reuses its buffer on the next Scan.
		msg := make([]byte, len(line))
		copy(msg, line)
		t.lines <- msg
	}

	err := t.in.Err()
	if err == nil {
		err = io.EOF
	}
	t.mu.Lock()
	t.readErr = err
	t.mu.Unlock()
}

// Send writes one message and its trailing newline to the output writer.
// Concurrent senders serialize on the transport mutex, so responses and
// notifications never interleave mid-line.
func (t *StdioServerTransport) Send(_ context.Context, message []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return errors.New("transport closed")
	}

	framed := make([]byte, 0, len(message)+1)
	framed = append(framed, message...)
	framed = append(framed, '\n')
	if _, err := t.out.Write(framed); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// Receive returns the next message line. It blocks until a line arrives,
// the input stream ends (io.EOF), or the context is cancelled.
func (t *StdioServerTransport) Receive(ctx context.Context) ([]byte, error) {
	t.start.Do(func() { go t.readLoop() })

	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return nil, errors.New("transport closed")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case msg, ok := <-t.lines:
		if !ok {
			// readLoop stores the terminal error before closing the
			// channel, so this read is ordered after that write.
			t.mu.Lock()
			err := t.readErr
			t.mu.Unlock()
			if err == nil || errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("read message: %w", err)
		}
		return msg, nil
	}
}

// Close marks the transport unusable. The underlying streams stay open:
// they are normally the process's stdin and stdout, owned by the runtime.
// The read goroutine exits when the input stream does.
func (t *StdioServerTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}
