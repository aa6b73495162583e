package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProcessMarkdown(t *testing.T) {
	in := strings.Join([]string{
		"# ui",
		"```go",
		`import "github.com/go-drift/rosetta/pkg/ui"`,
		"```",
		"Package ui builds element trees.",
		"## Index",
		"- [func Field](<#Field>)",
		"## func Field",
		"<details><summary>Example</summary>",
		"<p>",
		"body",
		"</p>",
		"</details>",
	}, "\n")

	want := strings.Join([]string{
		"Package ui builds element trees.",
		"## func Field",
		"",
		"**Example:**",
		"",
		"body",
	}, "\n")

	if diff := cmp.Diff(want, processMarkdown(in)); diff != "" {
		t.Errorf("processMarkdown (-want +got):\n%s", diff)
	}
}

func TestRenderIndex(t *testing.T) {
	got := renderIndex([]Package{{Name: "ui", Title: "UI", Blurb: "Constructors."}})
	if !strings.Contains(got, "- [UI](ui.md): Constructors.\n") {
		t.Errorf("index = %q", got)
	}
}
