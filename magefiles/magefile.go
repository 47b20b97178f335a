//go:build mage

// Package main contains Mage build targets for notes2docs developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the CLI expects.
var projectDirs = []string{
	".secrets",
	".notes2docs",
	"notes",
}

const (
	binDir     = "bin"
	binName    = "notes2docs"
	cmdPkg     = "./cmd/notes2docs"
	versionVar = "main.version"
	sampleNote = "notes/sample.md"
)

// Init creates the project directory structure and a sample note.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	mg.Deps(Sample)
	fmt.Println("Project directories initialized.")
	return nil
}

// Build compiles the CLI binary into bin/, stamping the version from
// $NOTES2DOCS_VERSION when set.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	args := []string{"build", "-o", out}
	if v := os.Getenv("NOTES2DOCS_VERSION"); v != "" {
		args = append(args, "-ldflags", fmt.Sprintf("-X %s=%s", versionVar, v))
	}
	args = append(args, cmdPkg)
	if err := sh.RunV("go", args...); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Preview builds the CLI and prints the compiled sample note.
func Preview() error {
	mg.Deps(Build, Sample)
	return sh.RunV(filepath.Join(binDir, binName), "compile", "--preview", sampleNote)
}

// Sample writes notes/sample.md exercising every line rule, unless it exists.
func Sample() error {
	if _, err := os.Stat(sampleNote); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(sampleNote), 0o755); err != nil {
		return err
	}
	const body = `---
title: Weekly Sync
---
# Weekly Sync
## Attendees
- Alice
- Bob
### Action items
- [ ] @alice: send the deck
- [ ] review the budget
#### Notes
- Roadmap
  - Q3 goals
    - hiring
Thanks everyone.
`
	if err := os.WriteFile(sampleNote, []byte(body), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", sampleNote, err)
	}
	fmt.Println("Wrote", sampleNote)
	return nil
}

// Stats prints project metrics: Go production/test lines and note word count.
func Stats() error {
	prodLines, testLines, err := countGoLines(".")
	if err != nil {
		return err
	}
	noteWords, err := countNoteWords("notes")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (notes):                  %d\n", noteWords)
	return nil
}

// countGoLines counts non-blank lines in production and test Go files.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), "_") || d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			if strings.TrimSpace(sc.Text()) != "" {
				n++
			}
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

// countNoteWords counts whitespace-separated words in markdown notes.
func countNoteWords(root string) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		total += len(bytes.Fields(data))
		return nil
	})
	return total, err
}
