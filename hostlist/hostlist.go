// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package hostlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// ErrNotFound signals a missing hostname list file.
var ErrNotFound = errors.New("input file not found")

// byteOrderMark sometimes leads files written by Windows editors.
const byteOrderMark = "\ufeff"

// Read returns the hostnames from r, one per line, with surrounding whitespace
// trimmed.
func Read(r io.Reader) ([]string, error) {
	hostnames := []string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if len(hostnames) == 0 {
			line = strings.TrimPrefix(line, byteOrderMark)
		}
		hostnames = append(hostnames, strings.TrimSpace(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read hostnames: %w", err)
	}
	return hostnames, nil
}

// ReadFile returns the hostnames from the file at path. If the file doesn't
// exist, the error returned wraps ErrNotFound.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("cannot open hostname list: %w", err)
	}
	defer f.Close()
	return Read(f)
}
