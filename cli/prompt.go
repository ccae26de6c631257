// Package cli holds the terminal helpers of the interactive shell: promptui
// prompts and a boxed banner.
package cli

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// Terminal is where prompts read from and draw to. The zero value uses the
// process's stdin and stdout.
type Terminal struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

func (t Terminal) stdin() io.ReadCloser {
	if t.Stdin == nil {
		return os.Stdin
	}

	return t.Stdin
}

func (t Terminal) stdout() io.WriteCloser {
	if t.Stdout == nil {
		return os.Stdout
	}

	return t.Stdout
}

// PromptLine reads one line. Ctrl+C and Ctrl+D both end input and are
// reported as io.EOF.
func (t Terminal) PromptLine(label string) (string, error) {
	prompt := promptui.Prompt{
		Label:  label,
		Stdin:  t.stdin(),
		Stdout: t.stdout(),
	}

	line, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return "", io.EOF
		}

		return "", err
	}

	return strings.TrimSpace(line), nil
}

// PromptConfirm asks a yes/no question. Answering no is not an error.
func (t Terminal) PromptConfirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     t.stdin(),
		Stdout:    t.stdout(),
	}

	_, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}

		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return false, io.EOF
		}

		return false, err
	}

	return true, nil
}
