package checksum

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestXXHash_Sum(t *testing.T) {
	calc := New()

	tests := []struct {
		name    string
		content string
	}{
		{"Empty", ""},
		{"Header", "// MIT\n\n"},
		{"CRLF", "// MIT\r\n\r\n"},
		{"Binary", "\x00\x01\x02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := calc.Sum([]byte(tt.content))
			second := calc.Sum([]byte(tt.content))
			if first != second {
				t.Errorf("Sum() is not deterministic: %x != %x", first, second)
			}
		})
	}
}

func TestXXHash_KnownValue(t *testing.T) {
	// xxHash64 of the empty input with seed 0.
	if got := New().Sum(nil); got != 0xef46db3751d8e999 {
		t.Errorf("Sum(nil) = %x, want ef46db3751d8e999", got)
	}
}

func TestXXHash_DetectsSingleByteChange(t *testing.T) {
	calc := New()
	a := calc.Sum([]byte("// MIT\n\npackage a\n"))
	b := calc.Sum([]byte("// MIT\n\npackage b\n"))
	if a == b {
		t.Errorf("expected different checksums for different content")
	}
}

func TestXXHash_SumReaderMatchesSum(t *testing.T) {
	calc := New()
	content := []byte(strings.Repeat("line of source\n", 5000))

	got, err := calc.SumReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("SumReader() error = %v", err)
	}
	if want := calc.Sum(content); got != want {
		t.Errorf("SumReader() = %x, want %x", got, want)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestXXHash_SumReaderError(t *testing.T) {
	if _, err := New().SumReader(failingReader{}); err == nil {
		t.Fatal("expected error from failing reader")
	}
}

func TestXXHash_SumFile(t *testing.T) {
	calc := New()
	path := filepath.Join(t.TempDir(), "a.go")
	content := []byte("// MIT\n\npackage a\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := calc.SumFile(path)
	if err != nil {
		t.Fatalf("SumFile() error = %v", err)
	}
	if want := calc.Sum(content); got != want {
		t.Errorf("SumFile() = %x, want %x", got, want)
	}

	if _, err := calc.SumFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestHex(t *testing.T) {
	if got := Hex(0xabc); got != "0000000000000abc" {
		t.Errorf("Hex() = %q", got)
	}
	if got := Hex(0xef46db3751d8e999); got != "ef46db3751d8e999" {
		t.Errorf("Hex() = %q", got)
	}
}

func BenchmarkSum(b *testing.B) {
	calc := New()
	content := []byte(strings.Repeat("fn main() { println!(\"hi\"); }\n", 1000))
	b.SetBytes(int64(len(content)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		calc.Sum(content)
	}
}
