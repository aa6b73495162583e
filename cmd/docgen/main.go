// Package main generates the API reference under docs/api from Go source
// using gomarkdoc.
package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Package is a Go package to document.
type Package struct {
	Name  string
	Path  string
	Title string
	Blurb string
}

// Packages to document, in reading order.
var packages = []Package{
	{"ui", "pkg/ui", "UI", "Constructors for element trees."},
	{"binding", "pkg/binding", "Binding", "Getters, binders, struct paths and lists."},
	{"element", "pkg/element", "Element", "The abstract element tree and its tick."},
	{"builder", "pkg/builder", "Builder", "Mapping elements to backend widgets."},
	{"host", "pkg/host", "Host", "Host objects, lookups and the clock."},
	{"reactive", "pkg/reactive", "Reactive", "Observable properties."},
	{"errors", "pkg/errors", "Errors", "Error types and the global handler."},
	{"config", "pkg/config", "Config", "rosetta.yaml loading."},
	{"store", "pkg/store", "Store", "Persisted open/closed flags."},
	{"testing", "pkg/testing", "Testing", "Headless UI tester and finders."},
}

func main() {
	root, err := findRepoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding repo root: %v\n", err)
		os.Exit(1)
	}

	if _, err := exec.LookPath("gomarkdoc"); err != nil {
		fmt.Fprintln(os.Stderr, "gomarkdoc not found; install it with:")
		fmt.Fprintln(os.Stderr, "  go install github.com/princjef/gomarkdoc/cmd/gomarkdoc@latest")
		os.Exit(1)
	}

	apiDir := filepath.Join(root, "docs", "api")
	if err := os.MkdirAll(apiDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", apiDir, err)
		os.Exit(1)
	}

	var written []Package
	for _, pkg := range packages {
		if _, err := os.Stat(filepath.Join(root, pkg.Path)); os.IsNotExist(err) {
			fmt.Printf("Skipping %s (not found)\n", pkg.Name)
			continue
		}
		fmt.Printf("Generating docs for %s...\n", pkg.Name)
		ok, err := generatePackageDocs(root, pkg, apiDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating docs for %s: %v\n", pkg.Name, err)
			os.Exit(1)
		}
		if ok {
			written = append(written, pkg)
		}
	}

	if err := os.WriteFile(filepath.Join(apiDir, "README.md"), []byte(renderIndex(written)), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing index: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nWrote %d pages to %s\n", len(written), apiDir)
}

func findRepoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find go.mod in any parent directory")
		}
		dir = parent
	}
}

// generatePackageDocs writes <name>.md for pkg. It reports false when
// gomarkdoc produced nothing usable.
func generatePackageDocs(root string, pkg Package, apiDir string) (bool, error) {
	cmd := exec.Command("gomarkdoc", "./"+pkg.Path)
	cmd.Dir = root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		fmt.Printf("  Warning: skipping %s: %s\n", pkg.Name, strings.TrimSpace(stderr.String()))
		return false, nil
	}
	if stdout.Len() == 0 {
		fmt.Printf("  Warning: no documentation generated for %s\n", pkg.Name)
		return false, nil
	}

	page := "# " + pkg.Title + "\n\n" + processMarkdown(stdout.String())
	return true, os.WriteFile(filepath.Join(apiDir, pkg.Name+".md"), []byte(page), 0o644)
}

func renderIndex(pkgs []Package) string {
	var sb strings.Builder
	sb.WriteString("# API Reference\n\nGenerated from Go source by cmd/docgen.\n\n")
	for _, pkg := range pkgs {
		fmt.Fprintf(&sb, "- [%s](%s.md): %s\n", pkg.Title, pkg.Name, pkg.Blurb)
	}
	return sb.String()
}

// processMarkdown drops gomarkdoc's own title, index and import block and
// flattens example <details> blocks.
func processMarkdown(content string) string {
	lines := strings.Split(content, "\n")
	var result []string
	inIndex, inImport := false, false

	for i, line := range lines {
		if i == 0 && strings.HasPrefix(line, "# ") {
			continue
		}

		if line == "## Index" {
			inIndex = true
			continue
		}
		if inIndex {
			if !strings.HasPrefix(line, "## ") {
				continue
			}
			inIndex = false
		}

		if line == "```go" && i+1 < len(lines) && strings.HasPrefix(lines[i+1], "import ") {
			inImport = true
			continue
		}
		if inImport {
			if line == "```" {
				inImport = false
			}
			continue
		}

		if summary, ok := strings.CutPrefix(line, "<details><summary>"); ok && strings.HasSuffix(summary, "</summary>") {
			result = append(result, "", "**"+strings.TrimSuffix(summary, "</summary>")+":**", "")
			continue
		}
		if line == "</details>" || line == "<p>" || line == "</p>" {
			continue
		}

		result = append(result, line)
	}
	return strings.Join(result, "\n")
}
