package header

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/flc/pkg/flc"
)

var slashes = flc.CommentStyle{Prefix: "//"}

func TestMatch_Exact(t *testing.T) {
	m := NewMatcher(mustHeader(t, "MIT"), 70)
	assert.Equal(t, flc.Exact(), m.Match([]byte("// MIT\n\nfn main() {}"), slashes))
}

func TestMatch_ExactAfterShebang(t *testing.T) {
	m := NewMatcher(mustHeader(t, "MIT"), 70)
	got := m.Match([]byte("#!/bin/bash\n# MIT\n\necho hi"), flc.CommentStyle{Prefix: "#"})
	assert.Equal(t, flc.MatchExact, got.Kind)
}

func TestMatch_ExactCRLF(t *testing.T) {
	m := NewMatcher(mustHeader(t, "MIT"), 70)
	assert.Equal(t, flc.MatchExact, m.Match([]byte("// MIT\r\n\r\ncode\r\n"), slashes).Kind)
}

func TestMatch_Absent(t *testing.T) {
	m := NewMatcher(mustHeader(t, "MIT"), 70)
	assert.Equal(t, flc.Absent(), m.Match([]byte("fn main() {}"), slashes))
}

func TestMatch_StaleHeaderIsFuzzy(t *testing.T) {
	m := NewMatcher(mustHeader(t, "MIT License"), 70)
	got := m.Match([]byte("// MIT License (old)\n\ncode"), slashes)
	require.Equal(t, flc.MatchFuzzy, got.Kind)
	assert.Equal(t, 87, got.Similarity)
}

func TestMatch_ThresholdBoundary(t *testing.T) {
	content := []byte("// MIT License (old)\n\ncode")
	assert.Equal(t, flc.MatchFuzzy, NewMatcher(mustHeader(t, "MIT License"), 87).Match(content, slashes).Kind)
	assert.Equal(t, flc.MatchAbsent, NewMatcher(mustHeader(t, "MIT License"), 88).Match(content, slashes).Kind)
}

func TestMatch_ContentShorterThanHeader(t *testing.T) {
	m := NewMatcher(mustHeader(t, "Copyright 2026 Example Corp\nSPDX-License-Identifier: Apache-2.0"), 70)
	for _, content := range []string{"", "/", "// Copy", "#!/bin/sh\n"} {
		assert.NotPanics(t, func() { m.Match([]byte(content), slashes) }, "content %q", content)
	}
	assert.Equal(t, flc.MatchAbsent, m.Match([]byte("// Copy"), slashes).Kind)
}

func TestMatch_TruncatedHeaderIsFuzzy(t *testing.T) {
	m := NewMatcher(mustHeader(t, "MIT"), 70)
	got := m.Match([]byte("// MIT\n"), slashes)
	assert.Equal(t, flc.Fuzzy(87), got)
}

func TestMatch_Deterministic(t *testing.T) {
	m := NewMatcher(mustHeader(t, "MIT License"), 70)
	content := []byte("// MIT Licence\n\nbody")
	first := m.Match(content, slashes)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, m.Match(content, slashes))
	}
}

func TestMatch_InsertThenMatchIsExact(t *testing.T) {
	m := NewMatcher(mustHeader(t, "MIT\n\nCopyright 2026"), 70)
	styles := []flc.CommentStyle{{Prefix: "//"}, {Prefix: "#"}, {Prefix: "/*", Suffix: "*/"}, {Prefix: "<!--", Suffix: "-->"}}
	inputs := []string{"", "body", "#!/bin/sh\nx", "<?xml version=\"1.0\"?>\n<a/>", "a\r\nb\r\n", "\xef\xbb\xbfx"}

	for _, style := range styles {
		for _, in := range inputs {
			out := m.Insert([]byte(in), style)
			assert.Equal(t, flc.MatchExact, m.Match(out, style).Kind, "style %v input %q", style, in)
		}
	}
}

func TestNewMatcher_ClampsThreshold(t *testing.T) {
	assert.Equal(t, 0, NewMatcher(mustHeader(t, "x"), -5).threshold)
	assert.Equal(t, 100, NewMatcher(mustHeader(t, "x"), 150).threshold)
}

func TestMatcher_Span(t *testing.T) {
	m := NewMatcher(mustHeader(t, "MIT"), 70)
	style := flc.CommentStyle{Prefix: "#"}
	formatted := m.FormattedFor([]byte("x\n"), style)

	assert.Equal(t, len(formatted), m.Span([]byte("print(1)\n"), style))
	assert.Equal(t, len("#!/bin/sh\n")+len(formatted), m.Span([]byte("#!/bin/sh\necho hi\n"), style))

	cut := []byte("#!/usr/bin/env python3 -W ignore")
	assert.Equal(t, len(cut)+len(formatted), m.Span(cut, style))
}

func TestMatcher_ConcurrentUse(t *testing.T) {
	m := NewMatcher(mustHeader(t, "MIT"), 70)
	styles := []flc.CommentStyle{{Prefix: "//"}, {Prefix: "#"}, {Prefix: "--"}}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			style := styles[i%len(styles)]
			content := m.Insert([]byte("body"), style)
			assert.Equal(t, flc.MatchExact, m.Match(content, style).Kind)
		}(i)
	}
	wg.Wait()
}

func FuzzMatch(f *testing.F) {
	f.Add([]byte("// MIT\n\nfn main() {}"), "MIT")
	f.Add([]byte("// MIT License (old)\n\ncode"), "MIT License")
	f.Add([]byte{0xff, 0x00, '\n'}, "x")
	f.Add([]byte("<?xml"), "MIT")

	f.Fuzz(func(t *testing.T, content []byte, text string) {
		h, err := flc.NewHeader(text)
		if err != nil {
			return
		}
		m := NewMatcher(h, flc.DefaultSimilarityThreshold)
		got := m.Match(content, slashes)
		if got.Similarity < 0 || got.Similarity > 100 {
			t.Fatalf("similarity out of range: %d", got.Similarity)
		}
		if again := m.Match(content, slashes); again != got {
			t.Fatalf("Match not deterministic: %v then %v", got, again)
		}
		if m.Match(m.Insert(content, slashes), slashes).Kind != flc.MatchExact {
			t.Fatal("inserted header does not match exactly")
		}
	})
}
