package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

const dateLayout = "2006-01-02"

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// promptLine prints a prompt and reads a single trimmed line. A partial
// line before EOF is still returned.
func promptLine(reader *bufio.Reader, w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptNonEmpty re-asks nothing: empty input is a validation error the
// menu reports before touching any service.
func promptNonEmpty(reader *bufio.Reader, w io.Writer, prompt string) (string, error) {
	value, err := promptLine(reader, w, prompt)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", fmt.Errorf("input cannot be empty")
	}
	return value, nil
}

// promptPassword reads a password without echo when in is a terminal,
// falling back to a plain line read for pipes and tests.
func promptPassword(reader *bufio.Reader, in io.Reader, w io.Writer, prompt string) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if _, err := fmt.Fprint(w, prompt+": "); err != nil {
			return "", err
		}
		raw, err := readPassword(int(f.Fd()))
		fmt.Fprintln(w)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	return promptLine(reader, w, prompt)
}

func promptFloat(reader *bufio.Reader, w io.Writer, prompt string) (float64, error) {
	raw, err := promptNonEmpty(reader, w, prompt)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return value, nil
}

func promptPositiveFloat(reader *bufio.Reader, w io.Writer, prompt string) (float64, error) {
	value, err := promptFloat(reader, w, prompt)
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, fmt.Errorf("value must be positive")
	}
	return value, nil
}

func promptNonNegativeFloat(reader *bufio.Reader, w io.Writer, prompt string) (float64, error) {
	value, err := promptFloat(reader, w, prompt)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, fmt.Errorf("value cannot be negative")
	}
	return value, nil
}

func promptUint(reader *bufio.Reader, w io.Writer, prompt string) (uint, error) {
	raw, err := promptNonEmpty(reader, w, prompt)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid ID", raw)
	}
	return uint(value), nil
}

func promptDate(reader *bufio.Reader, w io.Writer, prompt string) (time.Time, error) {
	raw, err := promptNonEmpty(reader, w, prompt+" (YYYY-MM-DD)")
	if err != nil {
		return time.Time{}, err
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not a valid date", raw)
	}
	return date, nil
}

func promptYesNo(reader *bufio.Reader, w io.Writer, prompt string) (bool, error) {
	raw, err := promptLine(reader, w, prompt+" (y/n)")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(raw, "y") || strings.EqualFold(raw, "yes"), nil
}
