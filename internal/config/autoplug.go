package config

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ReadAutoplug returns the plugin paths listed in the autoplug file.
// Relative entries are resolved against the directory holding the file.
// A missing file yields no paths.
func ReadAutoplug(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	entries, err := ParseAutoplug(f)
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	for i, e := range entries {
		if !filepath.IsAbs(e) {
			entries[i] = filepath.Join(base, e)
		}
	}
	return entries, nil
}

// ParseAutoplug reads one entry per line. Blank lines and lines starting
// with ';' are skipped; surrounding whitespace is trimmed.
func ParseAutoplug(r io.Reader) ([]string, error) {
	var entries []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		entries = append(entries, line)
	}
	return entries, sc.Err()
}
