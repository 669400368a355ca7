// Package prompt implements the line-oriented terminal prompts the
// interactive setup wizard is built from.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter asks questions on out and reads answers from in. Answers are
// whitespace-trimmed. Prompts that validate re-ask until they get a usable
// answer; a closed input stream is an error, never an infinite loop.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prints a label and returns the trimmed answer, which may be empty.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)

	return p.readLine()
}

// AskRequired re-asks until the answer is non-empty.
func (p *Prompter) AskRequired(label string) (string, error) {
	for {
		answer, err := p.Ask(label)
		if err != nil {
			return "", err
		}

		if answer != "" {
			return answer, nil
		}

		fmt.Fprintln(p.out, "A value is required.")
	}
}

// AskDefault prints a label with a default and returns the default when the
// answer is empty.
func (p *Prompter) AskDefault(label, def string) (string, error) {
	fmt.Fprintf(p.out, "%s [%s]: ", label, def)

	answer, err := p.readLine()
	if err != nil {
		return "", err
	}

	if answer == "" {
		return def, nil
	}

	return answer, nil
}

// Confirm asks a yes/no question. Empty input picks def; anything other than
// a y/yes/n/no answer re-asks.
func (p *Prompter) Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	for {
		fmt.Fprintf(p.out, "%s (%s): ", label, hint)

		answer, err := p.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}

// AskInt asks for a number within [min, max]. Empty input picks def;
// unparsable or out-of-range answers re-ask.
func (p *Prompter) AskInt(label string, min, max, def int) (int, error) {
	for {
		fmt.Fprintf(p.out, "%s [%d]: ", label, def)

		answer, err := p.readLine()
		if err != nil {
			return 0, err
		}

		if answer == "" {
			return def, nil
		}

		n, err := strconv.Atoi(answer)
		if err == nil && n >= min && n <= max {
			return n, nil
		}

		fmt.Fprintf(p.out, "Please enter a number between %d and %d.\n", min, max)
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		// A final line without a trailing newline is still an answer.
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}

		if errors.Is(err, io.EOF) {
			return "", errors.New("input closed")
		}

		return "", fmt.Errorf("reading input: %w", err)
	}

	return strings.TrimSpace(line), nil
}
