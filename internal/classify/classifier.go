// Package classify decides from a bounded byte sample whether a file is text
// the header matcher can work on.
package classify

import (
	"bytes"
	"unicode/utf8"

	"github.com/vvka-141/flc/pkg/flc"
)

// Options configures a Classifier.
type Options struct {
	// SkipEmpty reports zero-byte files as flc.SkipEmpty instead of letting them through.
	SkipEmpty bool

	// MaxFileSize is the fix-mode ceiling in bytes. Zero or negative disables the guard.
	MaxFileSize int64
}

// Classifier is a pure predicate over file bytes. The zero value lets empty files
// through and has no size ceiling. Safe for concurrent use.
type Classifier struct {
	opts Options
}

// New creates a Classifier.
func New(opts Options) *Classifier {
	return &Classifier{opts: opts}
}

// Classify inspects sample and returns flc.SkipNone when the file should be matched.
// truncated tells whether sample is a prefix of a longer file; a multi-byte
// sequence cut by the sample boundary is then not treated as an encoding error.
//
// Checks run in order: empty, binary (any NUL byte), UTF-8 validity.
// Classify never panics.
func (c *Classifier) Classify(sample []byte, truncated bool) flc.SkipReason {
	if len(sample) == 0 && !truncated {
		if c.opts.SkipEmpty {
			return flc.SkipEmpty
		}
		return flc.SkipNone
	}

	// NUL bytes do not occur in text; this is a heuristic and binary formats
	// without a NUL in the sample are let through.
	if bytes.IndexByte(sample, 0) >= 0 {
		return flc.SkipBinary
	}

	if !validUTF8(sample, truncated) {
		return flc.SkipUnsupportedEncoding
	}
	return flc.SkipNone
}

// CheckSize applies the fix-mode size ceiling.
func (c *Classifier) CheckSize(size int64) flc.SkipReason {
	if c.opts.MaxFileSize > 0 && size > c.opts.MaxFileSize {
		return flc.SkipTooLarge
	}
	return flc.SkipNone
}

func validUTF8(b []byte, truncated bool) bool {
	if utf8.Valid(b) {
		return true
	}
	if !truncated {
		return false
	}
	return utf8.Valid(trimPartialRune(b))
}

// trimPartialRune drops an incomplete trailing sequence of at most
// utf8.UTFMax-1 bytes. Invalid bytes are left in place.
func trimPartialRune(b []byte) []byte {
	limit := len(b) - (utf8.UTFMax - 1)
	if limit < 0 {
		limit = 0
	}
	for i := len(b) - 1; i >= limit; i-- {
		if !utf8.RuneStart(b[i]) {
			continue
		}
		if utf8.FullRune(b[i:]) {
			return b
		}
		return b[:i]
	}
	return b
}
