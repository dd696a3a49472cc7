package config

import "github.com/vvka-141/flc/pkg/flc"

var (
	slashes  = flc.CommentStyle{Prefix: "//"}
	hash     = flc.CommentStyle{Prefix: "#"}
	markup   = flc.CommentStyle{Prefix: "<!--", Suffix: "-->"}
	cBlock   = flc.CommentStyle{Prefix: "/*", Suffix: "*/"}
	dashes   = flc.CommentStyle{Prefix: "--"}
	percent  = flc.CommentStyle{Prefix: "%"}
	lisp     = flc.CommentStyle{Prefix: ";;"}
	vimQuote = flc.CommentStyle{Prefix: "\""}
	rem      = flc.CommentStyle{Prefix: "REM"}
	tick     = flc.CommentStyle{Prefix: "'"}
	semi     = flc.CommentStyle{Prefix: ";"}
)

var defaultStyleGroups = []struct {
	style flc.CommentStyle
	names []string
}{
	{slashes, []string{
		"rs", "js", "mjs", "cjs", "ts", "jsx", "tsx", "c", "cpp", "cc", "cxx", "h", "hpp", "hxx",
		"java", "kt", "kts", "scala", "go", "swift", "cs", "fs", "fsx", "ml", "dart",
		"php", "pas", "d", "proto", "groovy", "gradle",
	}},
	{hash, []string{
		"py", "rb", "sh", "bash", "zsh", "fish", "pl", "pm", "tcl", "r", "yaml", "yml",
		"toml", "cfg", "conf", "ex", "exs", "clj", "cljs", "coffee", "nim", "nimble", "cr",
		"rspec", "thor", "ps1", "tf", "cmake",
		"makefile", "dockerfile", "gemfile", "rakefile",
	}},
	{markup, []string{"html", "htm", "xml", "svg", "vue", "xsd", "xsl", "xslt", "md"}},
	{cBlock, []string{"css", "scss", "sass", "less", "styl"}},
	{dashes, []string{"sql", "hs", "lhs", "lua", "elm"}},
	{percent, []string{"erl", "hrl", "tex"}},
	{lisp, []string{"lisp", "lsp", "el", "scm", "ss", "rkt"}},
	{vimQuote, []string{"vim", "vimrc"}},
	{rem, []string{"bat", "cmd"}},
	{tick, []string{"asp", "vb", "vbs", "bas"}},
	{semi, []string{"asm", "s", "ini"}},
}

// DefaultCommentStyles returns a fresh copy of the built-in style table.
// Keys are lowercase extensions without the dot, or lowercase base names for
// files without one.
func DefaultCommentStyles() flc.StyleMap {
	m := make(flc.StyleMap)
	for _, g := range defaultStyleGroups {
		for _, name := range g.names {
			m[name] = g.style
		}
	}
	return m
}
