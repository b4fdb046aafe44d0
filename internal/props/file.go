package props

import (
	"bytes"
	"errors"
	"io/fs"
	"os"

	"bumpdeps/internal/types"

	"golang.org/x/text/encoding/charmap"
)

// Properties files are read and written as ISO-8859-1, one byte per character.
var charset = charmap.ISO8859_1

// Load reads a properties file and splits it into lines.
// Lines end at "\n", "\r\n" or "\r"; a terminator at the end of the file does not start another line.
func Load(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoded, err := charset.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, types.Err(types.ErrEncoding, err, "decode %s", path)
	}
	return SplitLines(string(decoded)), nil
}

// SplitLines splits s on any of the "\n", "\r\n" and "\r" line terminators.
func SplitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			lines = append(lines, s[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, s[start:i])
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

// Save writes lines to path, each followed by "\n". An existing file is truncated and keeps its mode.
func Save(path string, lines []string) error {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	encoded, err := charset.NewEncoder().Bytes(buf.Bytes())
	if err != nil {
		return types.Err(types.ErrEncoding, err, "encode %s as ISO-8859-1", path)
	}

	mode := fs.FileMode(0o644)
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, encoded, mode)
}
