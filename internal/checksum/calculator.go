package checksum

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Calculator computes content checksums.
type Calculator interface {
	// Sum hashes content held in memory.
	Sum(content []byte) uint64

	// SumReader hashes everything read from r.
	SumReader(r io.Reader) (uint64, error)

	// SumFile hashes the file at path.
	SumFile(path string) (uint64, error)
}

// XXHash implements Calculator using xxHash64.
//
// XXHash is a zero-size type and is safe for concurrent use by multiple goroutines.
type XXHash struct{}

// New creates a new xxHash based calculator.
func New() XXHash {
	return XXHash{}
}

// Sum computes xxHash64 of content.
func (XXHash) Sum(content []byte) uint64 {
	return xxhash.Sum64(content)
}

// SumReader computes xxHash64 of the stream.
func (XXHash) SumReader(r io.Reader) (uint64, error) {
	d := xxhash.New()
	if _, err := io.Copy(d, r); err != nil {
		return 0, fmt.Errorf("failed to hash stream: %w", err)
	}
	return d.Sum64(), nil
}

// SumFile computes xxHash64 of the file at path.
func (c XXHash) SumFile(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s for hashing: %w", path, err)
	}
	defer f.Close()
	return c.SumReader(f)
}

// Hex formats a checksum as a fixed-width lowercase hex string.
func Hex(sum uint64) string {
	s := strconv.FormatUint(sum, 16)
	for len(s) < 16 {
		s = "0" + s
	}
	return s
}

var _ Calculator = XXHash{}
