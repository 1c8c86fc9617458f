package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

type fakeTable struct{}

func (fakeTable) Headers() []string { return []string{"ID", "NAME"} }
func (fakeTable) Rows() [][]string  { return [][]string{{"list-1", "Weekly"}, {"list-2", "Party"}} }

func TestWrite_JSONEnvelope(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": []string{"a"}}, "json", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var got map[string][]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if len(got["data"]) != 1 {
		t.Fatalf("unexpected payload %v", got)
	}
}

func TestWrite_TextTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, fakeTable{}, "text", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ID", "NAME", "list-1", "Weekly", "Party"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table output:\n%s", want, out)
		}
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	if err := Write(&bytes.Buffer{}, "x", "edn", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
