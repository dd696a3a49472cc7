package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vvka-141/flc/pkg/flc"
)

// Environment variables read by ApplyEnv.
const (
	EnvHeader              = flc.EnvPrefix + "HEADER"
	EnvLicenseFile         = flc.EnvPrefix + "LICENSE_FILE"
	EnvMaxBytes            = flc.EnvPrefix + "MAX_BYTES"
	EnvMaxFileSize         = flc.EnvPrefix + "MAX_FILE_SIZE"
	EnvSimilarityThreshold = flc.EnvPrefix + "SIMILARITY_THRESHOLD"
	EnvParallelJobs        = flc.EnvPrefix + "PARALLEL_JOBS"
	EnvJobs                = flc.EnvPrefix + "JOBS"
)

// LoadDotEnv loads dir/.env into the process environment when it exists.
// Variables already set are not overwritten.
func LoadDotEnv(dir string) error {
	p := filepath.Join(dir, ".env")
	if _, err := os.Stat(p); err != nil {
		return nil
	}
	if err := godotenv.Load(p); err != nil {
		return fmt.Errorf("%w: %s: %w", flc.ErrInvalidConfig, p, err)
	}
	return nil
}

// ApplyEnv overrides c from FLC_* variables. lookup is usually os.LookupEnv.
// Blank values are ignored; malformed numbers are configuration errors.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := lookup(EnvHeader); ok && strings.TrimSpace(v) != "" {
		c.LicenseHeader = v
	}
	if v, ok := get(EnvLicenseFile); ok {
		c.LicenseFile = v
		c.LicenseHeader = ""
	}
	if v, ok := get(EnvMaxBytes); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvMaxBytes, v)
		}
		c.MaxHeaderBytes = n
	}
	if v, ok := get(EnvMaxFileSize); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return envError(EnvMaxFileSize, v)
		}
		c.MaxFileSize = n
	}
	if v, ok := get(EnvSimilarityThreshold); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvSimilarityThreshold, v)
		}
		c.SimilarityThreshold = n
	}

	key := EnvParallelJobs
	v, ok := get(key)
	if !ok {
		key = EnvJobs
		v, ok = get(key)
	}
	if ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(key, v)
		}
		c.ParallelJobs = n
	}
	return nil
}

func envError(key, value string) error {
	return fmt.Errorf("%w: %s=%q is not a number", flc.ErrInvalidConfig, key, value)
}
