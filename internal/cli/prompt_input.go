package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/innoq/innoq-timer/internal/notify"
)

// permissionQuestion is asked on the line-based prompt in plain mode.
const permissionQuestion = "Allow completion alerts? [y/N]: "

// stdinAsker returns a notify.Asker that asks on in/out. The read runs in
// its own goroutine so an expired ctx releases the caller even if nobody
// ever answers.
func stdinAsker(in io.Reader, out io.Writer) notify.Asker {
	return func(ctx context.Context) (bool, error) {
		answer := make(chan bool, 1)
		go func() {
			answer <- promptYesNoWithDefaultIO(in, out, permissionQuestion, false)
		}()
		select {
		case ok := <-answer:
			return ok, nil
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}

func promptYesNoWithDefaultIO(in io.Reader, out io.Writer, message string, defaultYes bool) bool {
	if out != nil {
		fmt.Fprint(out, message)
	}

	text, err := readPromptLine(in)
	if err != nil {
		return false
	}

	switch strings.TrimSpace(strings.ToLower(text)) {
	case "":
		return defaultYes
	case "y", "yes":
		return true
	default:
		return false
	}
}

// readPromptLine reads until either LF or CR so Enter works in normal and raw terminal modes.
func readPromptLine(in io.Reader) (string, error) {
	if in == nil {
		return "", io.EOF
	}

	var buf []byte
	var one [1]byte

	for {
		n, err := in.Read(one[:])
		if n > 0 {
			switch one[0] {
			case '\n', '\r':
				return string(buf), nil
			default:
				buf = append(buf, one[0])
			}
		}

		if err != nil {
			if err == io.EOF && len(buf) > 0 {
				return string(buf), nil
			}
			return string(buf), err
		}
	}
}
