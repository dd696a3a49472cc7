package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vvka-141/flc/pkg/flc"
)

//go:embed template.toml
var template []byte

// Template returns the starter configuration written by `flc init`.
func Template() []byte {
	return append([]byte(nil), template...)
}

// WriteTemplate writes the starter configuration into dir and returns its path.
// An existing file is only replaced when force is set.
func WriteTemplate(dir string, force bool) (string, error) {
	path := filepath.Join(dir, flc.DefaultConfigFile)
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		return "", err
	}
	if _, err := f.Write(template); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
