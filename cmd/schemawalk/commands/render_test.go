package commands

import (
	"bytes"
	"strings"
	"testing"

	"go.yaml.in/yaml/v4"
)

func TestRenderSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	headers := []string{"POINTER", "KEYWORD", "TYPE"}
	rows := [][]string{
		{"#", "", "object"},
		{"/properties/name", "properties", "string"},
	}

	RenderSummaryTable(&buf, headers, rows, false)
	want := "POINTER           KEYWORD     TYPE\n" +
		"#                             object\n" +
		"/properties/name  properties  string\n"
	if got := buf.String(); got != want {
		t.Errorf("RenderSummaryTable() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderSummaryTable_Quiet(t *testing.T) {
	var buf bytes.Buffer
	RenderSummaryTable(&buf, []string{"POINTER", "KEYWORD"}, [][]string{{"/not", "not"}}, true)

	output := buf.String()
	if strings.Contains(output, "POINTER") {
		t.Error("quiet mode should not include headers")
	}
	if output != "/not\tnot\n" {
		t.Errorf("unexpected quiet output %q", output)
	}
}

func TestRenderSummaryTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	RenderSummaryTable(&buf, []string{"A"}, nil, false)
	if buf.Len() != 0 {
		t.Errorf("expected empty output for no rows, got %q", buf.String())
	}
}

func TestRenderDetail(t *testing.T) {
	v := map[string]any{"pointer": "/not"}

	var buf bytes.Buffer
	if err := RenderDetail(&buf, v, FormatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "{\n  \"pointer\": \"/not\"\n}\n" {
		t.Errorf("unexpected JSON output %q", buf.String())
	}

	buf.Reset()
	if err := RenderDetail(&buf, v, FormatYAML); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "pointer: /not\n" {
		t.Errorf("unexpected YAML output %q", buf.String())
	}

	if err := RenderDetail(&buf, v, "xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestRenderNode_KeepsKeyOrder(t *testing.T) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(`{"z": 1, "a": {"y": true, "b": null}}`), &doc); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := RenderNode(&buf, doc.Content[0], FormatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "{\n  \"z\": 1,\n  \"a\": {\n    \"y\": true,\n    \"b\": null\n  }\n}\n"
	if buf.String() != want {
		t.Errorf("RenderNode() = %q, want %q", buf.String(), want)
	}
}
