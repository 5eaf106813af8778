package cli

import (
	"fmt"
	"io"
	"strings"
)

// confirm prints message and reads one answer. Only "y" or "yes" confirm;
// an empty answer or a closed input declines.
func confirm(in io.Reader, out io.Writer, message string) bool {
	if out != nil {
		fmt.Fprint(out, message)
	}
	text, err := readAnswer(in)
	if err != nil && text == "" {
		return false
	}
	text = strings.TrimSpace(strings.ToLower(text))
	return text == "y" || text == "yes"
}

// readAnswer stops at LF or CR so Enter works in raw terminal mode too.
func readAnswer(in io.Reader) (string, error) {
	if in == nil {
		return "", io.EOF
	}
	var buf []byte
	var one [1]byte
	for {
		n, err := in.Read(one[:])
		if n > 0 {
			if one[0] == '\n' || one[0] == '\r' {
				return string(buf), nil
			}
			buf = append(buf, one[0])
		}
		if err != nil {
			if err == io.EOF && len(buf) > 0 {
				return string(buf), nil
			}
			return string(buf), err
		}
	}
}
