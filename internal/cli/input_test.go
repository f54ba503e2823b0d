package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reader(input string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(input))
}

func TestPromptLineTrims(t *testing.T) {
	var out bytes.Buffer
	value, err := promptLine(reader("  hello \n"), &out, "Input")
	require.NoError(t, err)
	assert.Equal(t, "hello", value)
	assert.Equal(t, "Input: ", out.String())
}

func TestPromptLinePartialBeforeEOF(t *testing.T) {
	var out bytes.Buffer
	value, err := promptLine(reader("no newline"), &out, "Input")
	require.NoError(t, err)
	assert.Equal(t, "no newline", value)
}

func TestPromptNonEmptyRejectsBlank(t *testing.T) {
	var out bytes.Buffer
	_, err := promptNonEmpty(reader("   \n"), &out, "Input")
	assert.Error(t, err)
}

func TestPromptPositiveFloat(t *testing.T) {
	var out bytes.Buffer

	value, err := promptPositiveFloat(reader("12.5\n"), &out, "Quantity")
	require.NoError(t, err)
	assert.Equal(t, 12.5, value)

	_, err = promptPositiveFloat(reader("0\n"), &out, "Quantity")
	assert.Error(t, err)

	_, err = promptPositiveFloat(reader("-3\n"), &out, "Quantity")
	assert.Error(t, err)

	_, err = promptPositiveFloat(reader("abc\n"), &out, "Quantity")
	assert.Error(t, err)
}

func TestPromptNonNegativeFloat(t *testing.T) {
	var out bytes.Buffer

	value, err := promptNonNegativeFloat(reader("0\n"), &out, "Emission")
	require.NoError(t, err)
	assert.Zero(t, value)

	_, err = promptNonNegativeFloat(reader("-0.1\n"), &out, "Emission")
	assert.Error(t, err)
}

func TestPromptUint(t *testing.T) {
	var out bytes.Buffer

	value, err := promptUint(reader("42\n"), &out, "User ID")
	require.NoError(t, err)
	assert.EqualValues(t, 42, value)

	_, err = promptUint(reader("-1\n"), &out, "User ID")
	assert.Error(t, err)

	_, err = promptUint(reader("x\n"), &out, "User ID")
	assert.Error(t, err)
}

func TestPromptDate(t *testing.T) {
	var out bytes.Buffer

	date, err := promptDate(reader("2027-06-01\n"), &out, "Deadline")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2027, time.June, 1, 0, 0, 0, 0, time.UTC), date)

	_, err = promptDate(reader("01/06/2027\n"), &out, "Deadline")
	assert.Error(t, err)
}

func TestPromptYesNo(t *testing.T) {
	var out bytes.Buffer

	for raw, want := range map[string]bool{
		"y\n": true, "Y\n": true, "yes\n": true,
		"n\n": false, "no\n": false, "\n": false, "maybe\n": false,
	} {
		got, err := promptYesNo(reader(raw), &out, "Sure?")
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", raw)
	}
}
