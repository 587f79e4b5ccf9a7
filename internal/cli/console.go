package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
)

// consoleNotifier renders workflow outcomes on the terminal. Successes go to
// stdout, warnings and errors to stderr so that --format json output stays
// machine-readable.
type consoleNotifier struct {
	Out io.Writer
	Err io.Writer
}

func (n *consoleNotifier) Success(message string) {
	fmt.Fprintf(n.Out, "OK: %s\n", message)
}

func (n *consoleNotifier) Warning(message string) {
	fmt.Fprintf(n.Err, "WARNING: %s\n", message)
}

func (n *consoleNotifier) Error(message string) {
	fmt.Fprintf(n.Err, "ERROR: %s\n", message)
}

// stdinConfirmer blocks an auto-registration checkpoint until the user
// presses Enter, or until the context is cancelled (Ctrl-C).
type stdinConfirmer struct {
	In  io.Reader
	Out io.Writer

	once   sync.Once
	reader *bufio.Reader
}

func (c *stdinConfirmer) Confirm(ctx context.Context, message string) error {
	c.once.Do(func() {
		c.reader = bufio.NewReader(c.In)
	})

	fmt.Fprintln(c.Out, message)
	fmt.Fprint(c.Out, "Press Enter to continue... ")

	done := make(chan error, 1)
	go func() {
		_, err := c.reader.ReadString('\n')
		if err == io.EOF {
			// Closed stdin counts as confirmation in non-interactive runs.
			err = nil
		}
		done <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("read confirmation: %w", err)
		}
		fmt.Fprintln(c.Out)
		return nil
	}
}
