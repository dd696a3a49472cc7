package header

import "bytes"

var (
	utf8BOM     = []byte{0xEF, 0xBB, 0xBF}
	shebang     = []byte("#!")
	xmlDecl     = []byte("<?xml")
	xmlDeclTail = []byte("?>")
)

// PreambleEnd returns the byte offset where the header is expected to start.
//
// A leading UTF-8 BOM always belongs to the preamble. After it:
//   - "#!" ends the preamble after the first '\n'; a shebang with no newline
//     is not treated as a preamble
//   - "<?xml" ends the preamble after the first "?>", plus one following
//     line break ("\n" or "\r\n") if present
//   - anything else yields an empty preamble
func PreambleEnd(content []byte) int {
	base := 0
	if bytes.HasPrefix(content, utf8BOM) {
		base = len(utf8BOM)
	}
	rest := content[base:]

	if n, ok := shebangEnd(rest); ok {
		return base + n
	}
	if n, ok := xmlDeclEnd(rest); ok {
		return base + n
	}
	return base
}

func shebangEnd(content []byte) (int, bool) {
	if !bytes.HasPrefix(content, shebang) {
		return 0, false
	}
	i := bytes.IndexByte(content, '\n')
	if i < 0 {
		return 0, false
	}
	return i + 1, true
}

func xmlDeclEnd(content []byte) (int, bool) {
	if !bytes.HasPrefix(content, xmlDecl) {
		return 0, false
	}
	i := bytes.Index(content, xmlDeclTail)
	if i < 0 {
		return 0, false
	}
	end := i + len(xmlDeclTail)
	switch {
	case bytes.HasPrefix(content[end:], []byte("\r\n")):
		end += 2
	case bytes.HasPrefix(content[end:], []byte("\n")):
		end++
	}
	return end, true
}

// LineEnding returns "\r\n" when the first line break in content is CRLF and
// "\n" otherwise, including for content without any line break.
func LineEnding(content []byte) string {
	i := bytes.IndexByte(content, '\n')
	if i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
