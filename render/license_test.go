// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"
)

func TestSourceLicenseHeaders(t *testing.T) {
	const want = "// SPDX-License-Identifier: MIT"
	var files []string
	for _, pattern := range []string{"*.go", filepath.Join("..", "gles", "*.go")} {
		m, err := filepath.Glob(pattern)
		if err != nil {
			t.Fatal(err)
		}
		files = append(files, m...)
	}
	if len(files) == 0 {
		t.Fatal("no source files found")
	}
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			t.Fatal(err)
		}
		sc := bufio.NewScanner(f)
		var lines []string
		for len(lines) < 2 && sc.Scan() {
			lines = append(lines, sc.Text())
		}
		f.Close()
		if len(lines) < 2 || lines[1] != want {
			t.Errorf("%s: header = %q, want second line %q", name, lines, want)
		}
	}
}
