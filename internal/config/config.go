package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/flc/internal/header"
	"github.com/vvka-141/flc/pkg/flc"
)

// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConfigFileNames lists the files searched for in the target root, in order.
var ConfigFileNames = []string{
	flc.DefaultConfigFile,
	".flc.toml",
	"flc.toml",
	".flc.yaml",
	".flc.yml",
}

// Config is the effective configuration of one run.
type Config struct {
	LicenseHeader       string
	LicenseFile         string
	CommentStyles       flc.StyleMap
	IgnorePatterns      []string
	MaxHeaderBytes      int
	MaxFileSize         int64
	SkipEmptyFiles      bool
	ParallelJobs        int
	SimilarityThreshold int
	FollowGitignore     bool
	CountIgnored        bool
	IncludeHidden       bool
	VerifyWrites        bool

	// Source is the file the config was read from, empty for defaults only.
	Source string
}

// fileConfig mirrors the on-disk format. Pointers distinguish unset keys
// from zero values.
type fileConfig struct {
	LicenseHeader       *string                     `toml:"license_header" yaml:"license_header"`
	LicenseFile         *string                     `toml:"license_file" yaml:"license_file"`
	CommentStyles       map[string]flc.CommentStyle `toml:"comment_styles" yaml:"comment_styles"`
	IgnorePatterns      []string                    `toml:"ignore_patterns" yaml:"ignore_patterns"`
	MaxHeaderBytes      *int                        `toml:"max_header_bytes" yaml:"max_header_bytes"`
	MaxFileSize         *int64                      `toml:"max_file_size" yaml:"max_file_size"`
	SkipEmptyFiles      *bool                       `toml:"skip_empty_files" yaml:"skip_empty_files"`
	ParallelJobs        *int                        `toml:"parallel_jobs" yaml:"parallel_jobs"`
	SimilarityThreshold *int                        `toml:"similarity_threshold" yaml:"similarity_threshold"`
	FollowGitignore     *bool                       `toml:"follow_gitignore" yaml:"follow_gitignore"`
	CountIgnored        *bool                       `toml:"count_ignored" yaml:"count_ignored"`
	IncludeHidden       *bool                       `toml:"include_hidden" yaml:"include_hidden"`
	VerifyWrites        *bool                       `toml:"verify_writes" yaml:"verify_writes"`
}

// Default returns the built-in configuration. The header is left empty.
func Default() *Config {
	return &Config{
		CommentStyles:       DefaultCommentStyles(),
		MaxHeaderBytes:      flc.DefaultMaxHeaderBytes,
		MaxFileSize:         flc.DefaultMaxFileSize,
		SkipEmptyFiles:      true,
		SimilarityThreshold: flc.DefaultSimilarityThreshold,
		FollowGitignore:     true,
		VerifyWrites:        true,
	}
}

// Discover returns the first config file present in dir.
func Discover(dir string) (string, bool) {
	for _, name := range ConfigFileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

// Load builds the configuration for root. An explicit path must exist; without
// one, the first discovered file in root (or root's directory, when root is a
// file) is used, and having none is not an error.
func Load(root, explicit string) (*Config, error) {
	cfg := Default()

	path := explicit
	if path == "" {
		dir := root
		if info, err := os.Stat(root); err == nil && !info.IsDir() {
			dir = filepath.Dir(root)
		}
		found, ok := Discover(dir)
		if !ok {
			return cfg, nil
		}
		path = found
	}

	fc, err := readFile(path)
	if err != nil {
		return nil, err
	}
	cfg.apply(fc, filepath.Dir(path))
	cfg.Source = path
	return cfg, nil
}

func readFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s: %w", flc.ErrInvalidConfig, path, ErrConfigNotFound)
		}
		return nil, fmt.Errorf("%w: %w", flc.ErrInvalidConfig, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s: %w", flc.ErrInvalidConfig, path, err)
		}
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&fc); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", flc.ErrInvalidConfig, path, err)
		}
	}
	return &fc, nil
}

func (c *Config) apply(fc *fileConfig, baseDir string) {
	if fc.LicenseHeader != nil {
		c.LicenseHeader = *fc.LicenseHeader
	}
	if fc.LicenseFile != nil && *fc.LicenseFile != "" {
		c.LicenseFile = *fc.LicenseFile
		if !filepath.IsAbs(c.LicenseFile) {
			c.LicenseFile = filepath.Join(baseDir, c.LicenseFile)
		}
	}
	for ext, style := range fc.CommentStyles {
		c.CommentStyles[flc.NormalizeExtension(ext)] = style
	}
	if fc.IgnorePatterns != nil {
		c.IgnorePatterns = append([]string(nil), fc.IgnorePatterns...)
	}
	if fc.MaxHeaderBytes != nil {
		c.MaxHeaderBytes = *fc.MaxHeaderBytes
	}
	if fc.MaxFileSize != nil {
		c.MaxFileSize = *fc.MaxFileSize
	}
	if fc.SkipEmptyFiles != nil {
		c.SkipEmptyFiles = *fc.SkipEmptyFiles
	}
	if fc.ParallelJobs != nil {
		c.ParallelJobs = *fc.ParallelJobs
	}
	if fc.SimilarityThreshold != nil {
		c.SimilarityThreshold = *fc.SimilarityThreshold
	}
	if fc.FollowGitignore != nil {
		c.FollowGitignore = *fc.FollowGitignore
	}
	if fc.CountIgnored != nil {
		c.CountIgnored = *fc.CountIgnored
	}
	if fc.IncludeHidden != nil {
		c.IncludeHidden = *fc.IncludeHidden
	}
	if fc.VerifyWrites != nil {
		c.VerifyWrites = *fc.VerifyWrites
	}
}

// Jobs returns the worker count, resolving zero to runtime.NumCPU().
func (c *Config) Jobs() int {
	if c.ParallelJobs > 0 {
		return c.ParallelJobs
	}
	return runtime.NumCPU()
}

// Header resolves the expected header. LicenseHeader wins over LicenseFile.
func (c *Config) Header() (flc.Header, error) {
	text := c.LicenseHeader
	if strings.TrimSpace(text) == "" && c.LicenseFile != "" {
		data, err := os.ReadFile(c.LicenseFile)
		if err != nil {
			return flc.Header{}, fmt.Errorf("%w: could not read license file: %w", flc.ErrInvalidConfig, err)
		}
		text = string(data)
	}
	return flc.NewHeader(text)
}

// Validate checks value ranges and the comment style table.
func (c *Config) Validate() error {
	if c.MaxHeaderBytes < flc.MinMaxHeaderBytes {
		return fmt.Errorf("%w: max_header_bytes must be at least %d, got %d",
			flc.ErrInvalidConfig, flc.MinMaxHeaderBytes, c.MaxHeaderBytes)
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 100 {
		return fmt.Errorf("%w: got %d", flc.ErrInvalidThreshold, c.SimilarityThreshold)
	}
	if c.ParallelJobs < 0 {
		return fmt.Errorf("%w: parallel_jobs must not be negative, got %d", flc.ErrInvalidConfig, c.ParallelJobs)
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("%w: max_file_size must not be negative, got %d", flc.ErrInvalidConfig, c.MaxFileSize)
	}
	for _, ext := range c.CommentStyles.Keys() {
		if err := c.CommentStyles[ext].Validate(); err != nil {
			return fmt.Errorf("comment_styles.%s: %w", ext, err)
		}
	}
	return nil
}

// ValidateHeader checks that h, rendered in every configured style with CRLF
// line endings, fits in the scan read window.
func (c *Config) ValidateHeader(h flc.Header) error {
	for _, ext := range c.CommentStyles.Keys() {
		n := len(header.Format(h, c.CommentStyles[ext], "\r\n"))
		if n > c.MaxHeaderBytes {
			return fmt.Errorf("%w: %d bytes in %s style, limit %d", flc.ErrHeaderTooLong, n, ext, c.MaxHeaderBytes)
		}
	}
	return nil
}
