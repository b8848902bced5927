// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// promptPath asks for the path of the hostname list.
func promptPath(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "path of the hostname list: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("cannot read path: %w", err)
	}
	// Paths dragged into a terminal window often come quoted.
	path := strings.Trim(strings.TrimSpace(line), `"'`)
	if path == "" {
		return "", errors.New("no hostname list given")
	}
	return path, nil
}

// pause until Enter gets pressed (or input ends).
func pause(in io.Reader, out io.Writer) {
	fmt.Fprint(out, "press Enter to exit...")
	_, _ = bufio.NewReader(in).ReadString('\n')
}

// resolveOutputPath returns the path of the CSV file to write; without an
// explicit path, the default file name in the executable's directory.
func resolveOutputPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("cannot locate executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), defaultOutputName), nil
}
