// Package document loads documents for analysis.
package document

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads the whole file at path into memory.
func Load(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("document path is empty")
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only document.
			_ = cerr
		}
	}()
	return Read(file)
}

// Read reads r to the end and returns its contents.
func Read(r io.Reader) (string, error) {
	var b strings.Builder
	if _, err := io.Copy(&b, bufio.NewReader(r)); err != nil {
		return "", err
	}
	return b.String(), nil
}
