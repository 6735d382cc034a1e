package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jotterhq/jotter/pkg/core"
)

// terminalNotifier answers the engine's prompts from stdin and writes every
// message to stderr, keeping stdout free for command output.
type terminalNotifier struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminalNotifier() *terminalNotifier {
	return &terminalNotifier{in: bufio.NewReader(os.Stdin), out: os.Stderr}
}

// Confirm asks a yes/no question. Anything but y/yes declines, including a
// closed stdin.
func (t *terminalNotifier) Confirm(_ context.Context, prompt string) (bool, error) {
	fmt.Fprintf(t.out, "%s [y/N] ", prompt)
	line, err := t.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// ChooseOne presents a numbered menu. An empty line declines the choice.
func (t *terminalNotifier) ChooseOne(_ context.Context, prompt string, options []string) (string, bool, error) {
	fmt.Fprintf(t.out, "%s:\n", prompt)
	for i, opt := range options {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprintf(t.out, "Choice [1-%d, empty to cancel] ", len(options))

	line, err := t.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, err
	}
	text := strings.TrimSpace(line)
	if text == "" {
		return "", false, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 || n > len(options) {
		return "", false, fmt.Errorf("invalid choice %q", text)
	}
	return options[n-1], true, nil
}

func (t *terminalNotifier) Notify(_ context.Context, message string, severity core.Severity) {
	fmt.Fprintf(t.out, "%s: %s\n", severity, message)
}
