// Package speech defines the speech I/O boundary. The engine only ever sees
// text: capture and transcription live behind Listener, rendering behind
// Speaker. ConsoleIO implements both so the assistant runs without audio
// hardware.
package speech

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// Listener blocks until an utterance is available. An empty string with a
// nil error means nothing usable was heard (timeout or unrecognized speech);
// io.EOF means the input source is gone for good.
type Listener interface {
	Listen(ctx context.Context) (string, error)
}

// Speaker renders a response. Fire-and-forget; implementations must be safe
// for concurrent use because reminder notifications interleave with the
// command loop.
type Speaker interface {
	Speak(text string)
}

// ConsoleIO is the stdin/stdout implementation of both boundaries.
type ConsoleIO struct {
	mu    sync.Mutex
	in    *bufio.Scanner
	out   io.Writer
	lines chan string
	done  chan struct{}
	err   error
	once  sync.Once
}

// NewConsoleIO creates a console listener/speaker pair over stdin/stdout
func NewConsoleIO() *ConsoleIO {
	return NewConsoleIOWith(os.Stdin, os.Stdout)
}

// NewConsoleIOWith creates a ConsoleIO over arbitrary streams (used in tests)
func NewConsoleIOWith(in io.Reader, out io.Writer) *ConsoleIO {
	return &ConsoleIO{
		in:    bufio.NewScanner(in),
		out:   out,
		lines: make(chan string),
		done:  make(chan struct{}),
	}
}

// Listen blocks until a line is typed, the input closes, or ctx is cancelled.
// The read itself runs on a dedicated goroutine so cancellation is honored
// even though the underlying read cannot be interrupted.
func (c *ConsoleIO) Listen(ctx context.Context) (string, error) {
	c.once.Do(func() {
		go func() {
			for c.in.Scan() {
				c.lines <- c.in.Text()
			}
			c.err = c.in.Err()
			if c.err == nil {
				c.err = io.EOF
			}
			close(c.done)
		}()
	})

	fmt.Fprint(c.out, "🎤 ")
	select {
	case line := <-c.lines:
		return line, nil
	case <-c.done:
		return "", c.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Speak prints the response line
func (c *ConsoleIO) Speak(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "🔊 %s\n", text)
}
