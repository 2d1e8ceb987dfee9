package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	require.Equal(t, "hello world", got)
	require.Contains(t, out.String(), "Name?")
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	require.Equal(t, "lastline", got)
}

func TestGetMultiline_StopsOnEmptyLine(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("a\nb\n\nignored\n"), "Enter text", &out)
	require.NoError(t, err)
	require.Equal(t, "a\nb", got)
}

func TestGetMultiline_CRLF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("a\r\nb\r\n\r\n"), "Enter text", &out)
	require.NoError(t, err)
	require.Equal(t, "a\nb", got)
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword(&out)
	require.Error(t, err)
}

func TestGetPassword_OK(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return []byte("s3cret"), nil
	}
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	require.Equal(t, "s3cret", pw)
}

func TestGetTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "comma separated list is split as-is",
			input:    "go, sql ,infra\n",
			expected: []string{"go", " sql ", "infra"},
		},
		{
			name:     "empty line means no tags",
			input:    "\n",
			expected: nil,
		},
		{
			name:     "single tag",
			input:    "go\n",
			expected: []string{"go"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetTags(rdr(tc.input), &out)
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}
