package report

import (
	"bytes"
	"encoding/json"
	"io"
)

// indent is the per-level indentation used by every report format.
const indent = "    "

// Encode writes v to w as indented JSON followed by a newline.
// HTML characters are left unescaped so payload strings read as returned.
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	return enc.Encode(v)
}

// encodeBlock returns v as indented JSON without the trailing newline.
func encodeBlock(v any) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
