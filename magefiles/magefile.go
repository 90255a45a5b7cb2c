//go:build mage

// Package main contains Mage build targets for taxon-engine developer tooling.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "taxon-engine"
	cmdPkg  = "./cmd/taxon-engine"

	starterList = "species_list.csv"
)

// starterSpecies seeds a fresh working directory with a usable input file.
var starterSpecies = []string{
	"Salvia rosmarinus",
	"Quercus robur",
	"Rosa canina",
	"Betula pendula",
	"Lavandula angustifolia",
}

// Init writes a starter species list unless one already exists.
func Init() error {
	if _, err := os.Stat(starterList); err == nil {
		fmt.Printf("%s already exists, leaving it alone.\n", starterList)
		return nil
	}

	var b strings.Builder
	b.WriteString("Species\n")
	for _, s := range starterSpecies {
		b.WriteString(s)
		b.WriteString("\n")
	}
	if err := os.WriteFile(starterList, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", starterList, err)
	}
	fmt.Printf("Wrote starter %s with %d species.\n", starterList, len(starterSpecies))
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.Run("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the full test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Enrich builds the binary and runs the enrichment pipeline on the species
// list in the working directory.
func Enrich() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "enrich")
}

// Stats prints project metrics: Go production and test LOC.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	return nil
}

// countGoLines walks the tree and counts non-blank lines in Go files.
// If testOnly is true it counts only _test.go files, otherwise only
// non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if path != "." && (name == binDir || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if strings.TrimSpace(scanner.Text()) != "" {
				total++
			}
		}
		return scanner.Err()
	})
	return total, err
}
