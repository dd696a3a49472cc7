// Package files groups the file-related sub-packages:
//   - filesystem: filesystem abstraction (OS and in-memory) for testability
//   - walker: parallel directory traversal with gitignore-style ignore rules
//   - scanner: the check pipeline that classifies and matches every walked file
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/flc/internal/files/scanner"
//	)
//
//	s, err := scanner.NewScanner(classifier, matcher, scanner.Options{Styles: styles}, logger)
//	summary, err := s.Scan(ctx, "./src")
package files
