package header

import (
	"bytes"

	"github.com/vvka-141/flc/pkg/flc"
)

// Format renders h in style using eol as the line terminator.
//
// Each line becomes prefix, a space and the text; empty lines keep only the
// prefix. A block style appends a space and the suffix to every line. A blank
// line follows the block, so "MIT" in "//" style renders as "// MIT\n\n".
func Format(h flc.Header, style flc.CommentStyle, eol string) []byte {
	if eol == "" {
		eol = "\n"
	}
	var buf bytes.Buffer
	for _, line := range h.Lines() {
		buf.WriteString(style.Prefix)
		if line != "" {
			buf.WriteByte(' ')
			buf.WriteString(line)
		}
		if style.Suffix != "" {
			buf.WriteByte(' ')
			buf.WriteString(style.Suffix)
		}
		buf.WriteString(eol)
	}
	buf.WriteString(eol)
	return buf.Bytes()
}

// Insert returns a new buffer holding content with formatted placed at the
// preamble end. content is not modified.
func Insert(content, formatted []byte) []byte {
	offset := PreambleEnd(content)
	out := make([]byte, 0, len(content)+len(formatted))
	out = append(out, content[:offset]...)
	out = append(out, formatted...)
	out = append(out, content[offset:]...)
	return out
}
