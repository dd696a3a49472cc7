package flc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/flc/pkg/flc"
)

func TestNewHeader(t *testing.T) {
	h, err := flc.NewHeader("MIT License\r\n\r\nCopyright 2026 Test\n\n")
	require.NoError(t, err)
	assert.Equal(t, "MIT License\n\nCopyright 2026 Test", h.Text())
	assert.Equal(t, []string{"MIT License", "", "Copyright 2026 Test"}, h.Lines())
	assert.False(t, h.IsZero())
}

func TestNewHeader_Empty(t *testing.T) {
	for _, text := range []string{"", "\n\n", "   \n\t"} {
		_, err := flc.NewHeader(text)
		assert.ErrorIs(t, err, flc.ErrEmptyHeader, "text %q", text)
	}
}

func TestHeader_LinesIsCopy(t *testing.T) {
	h, err := flc.NewHeader("a\nb")
	require.NoError(t, err)
	lines := h.Lines()
	lines[0] = "changed"
	assert.Equal(t, "a", h.Lines()[0])
}

func TestStyleMap_Lookup(t *testing.T) {
	styles := flc.StyleMap{
		"go":         {Prefix: "//"},
		"css":        {Prefix: "/*", Suffix: "*/"},
		"dockerfile": {Prefix: "#"},
	}

	tests := []struct {
		path   string
		want   flc.CommentStyle
		wantOK bool
	}{
		{"main.go", flc.CommentStyle{Prefix: "//"}, true},
		{"dir/MAIN.GO", flc.CommentStyle{Prefix: "//"}, true},
		{"site.css", flc.CommentStyle{Prefix: "/*", Suffix: "*/"}, true},
		{"build/Dockerfile", flc.CommentStyle{Prefix: "#"}, true},
		{"README", flc.CommentStyle{}, false},
		{"photo.png", flc.CommentStyle{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := styles.Lookup(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeExtension(t *testing.T) {
	assert.Equal(t, "rs", flc.NormalizeExtension(".RS"))
	assert.Equal(t, "toml", flc.NormalizeExtension("toml"))
	assert.Equal(t, "", flc.NormalizeExtension(""))
}

func TestMatchOutcome_String(t *testing.T) {
	assert.Equal(t, "exact", flc.Exact().String())
	assert.Equal(t, "absent", flc.Absent().String())
	assert.Equal(t, "fuzzy(87)", flc.Fuzzy(87).String())
}

func TestFileRecord_Passed(t *testing.T) {
	assert.True(t, flc.FileRecord{Outcome: flc.Exact()}.Passed())
	assert.False(t, flc.FileRecord{Outcome: flc.Fuzzy(90)}.Passed())
	assert.False(t, flc.FileRecord{Skip: flc.SkipBinary}.Passed())
	assert.False(t, flc.FileRecord{Err: errors.New("boom")}.Passed())
}

func TestFixSummary_Add(t *testing.T) {
	var s flc.FixSummary
	s.Add("a.go", flc.FixAction{State: flc.FixFixed})
	s.Add("b.go", flc.FixAction{State: flc.FixAlreadyHasHeader})
	s.Add("c.png", flc.FixAction{State: flc.FixSkipped, Skip: flc.SkipBinary})
	s.Add("d.go", flc.FixAction{State: flc.FixFailed, Err: flc.ErrReadOnly})
	s.Add("e.go", flc.FixAction{State: flc.FixWouldFix})

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 1, s.Fixed)
	assert.Equal(t, 1, s.AlreadyHasHeader)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.WouldFix)
	require.Len(t, s.Results, 5)
	assert.Equal(t, flc.SkipBinary, s.Results[2].Skip)
	assert.ErrorIs(t, s.Results[3].Err, flc.ErrReadOnly)
}

func TestFixAction_String(t *testing.T) {
	assert.Equal(t, "fixed", flc.FixAction{State: flc.FixFixed}.String())
	assert.Equal(t, "skipped(binary)", flc.FixAction{State: flc.FixSkipped, Skip: flc.SkipBinary}.String())
	assert.Contains(t,
		flc.FixAction{State: flc.FixFailed, Err: flc.ErrMalformedHeader, Similarity: 80}.String(),
		"similarity 80%")
}

func TestNewHeader_StripsCarriageReturns(t *testing.T) {
	h, err := flc.NewHeader("a\r\r\nb\r")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, h.Lines())
}

func TestCommentStyle_Validate(t *testing.T) {
	assert.NoError(t, flc.CommentStyle{Prefix: "//"}.Validate())
	assert.NoError(t, flc.CommentStyle{Prefix: "<!--", Suffix: "-->"}.Validate())

	for _, style := range []flc.CommentStyle{
		{},
		{Prefix: "//\n"},
		{Prefix: "/*", Suffix: "*/\r"},
		{Prefix: "#!"},
		{Prefix: "<?xml"},
	} {
		assert.ErrorIs(t, style.Validate(), flc.ErrInvalidConfig, "style %+v", style)
	}
}

func TestStyleMap_KeysSorted(t *testing.T) {
	m := flc.StyleMap{"go": {Prefix: "//"}, "css": {Prefix: "/*", Suffix: "*/"}, "py": {Prefix: "#"}}
	assert.Equal(t, []string{"css", "go", "py"}, m.Keys())
}

func TestFixSummary_SortResults(t *testing.T) {
	var s flc.FixSummary
	s.Add("b.go", flc.FixAction{State: flc.FixFixed})
	s.Add("a.go", flc.FixAction{State: flc.FixFailed, Err: errors.New("boom")})
	s.SortResults()

	require.Len(t, s.Results, 2)
	assert.Equal(t, "a.go", s.Results[0].Path)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.Fixed)
}
