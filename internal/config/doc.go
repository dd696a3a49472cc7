// Package config loads flc settings from a project file, the environment, and
// built-in defaults.
//
// Precedence, lowest to highest: defaults, the first of ConfigFileNames found
// in the target root (or an explicit --config path), FLC_* environment
// variables, and command-line flags applied by the caller.
package config
