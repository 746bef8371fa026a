package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type terminalPasswordReader struct {
	in     *os.File
	prompt io.Writer
	lines  *bufio.Reader
}

// NewTerminalPasswordReader reads passwords from in, writing prompts to
// prompt. Echo is disabled when in is a terminal.
func NewTerminalPasswordReader(in *os.File, prompt io.Writer) PasswordReader {
	return &terminalPasswordReader{in: in, prompt: prompt, lines: bufio.NewReader(in)}
}

func (t *terminalPasswordReader) ReadPassword(prompt string) (string, error) {
	fmt.Fprint(t.prompt, prompt)

	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		line, err := t.lines.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(t.prompt)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(secret), nil
}
