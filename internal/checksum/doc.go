// Package checksum provides content hashing used to verify file writes.
//
// The fixer hashes the bytes it intends to write, then re-reads the temporary
// file and hashes it again before the rename. A mismatch means the write was
// torn or the medium lied about durability, and the original file is left
// untouched.
//
// # Example Usage
//
//	calculator := checksum.New()
//	want := calculator.Sum(content)
//	got, err := calculator.SumFile(tmpPath)
//	if err == nil && got != want {
//	    // discard tmpPath
//	}
//
// # Thread Safety
//
// XXHash is safe for concurrent use by multiple goroutines.
package checksum
