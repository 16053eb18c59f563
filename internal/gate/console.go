package gate

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ConsoleResponder prints each prompt and reads one response line from the
// input stream. Reads cannot be interrupted; when the gate times out the
// pending read is abandoned and its eventual line is discarded.
type ConsoleResponder struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewConsoleResponder creates a console responder over the given streams,
// typically os.Stdin and os.Stdout.
func NewConsoleResponder(in io.Reader, out io.Writer) *ConsoleResponder {
	return &ConsoleResponder{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Respond implements Responder.
func (c *ConsoleResponder) Respond(ctx context.Context, req Request) (string, error) {
	type lineResult struct {
		text string
		err  error
	}
	ch := make(chan lineResult, 1)

	go func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		fmt.Fprint(c.out, req.Prompt)
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			ch <- lineResult{err: err}
			return
		}
		ch <- lineResult{text: strings.TrimRight(line, "\r\n")}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.err != nil {
			return "", fmt.Errorf("reading response: %w", res.err)
		}
		return res.text, nil
	}
}
