package parse

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/loggrid/loggrid/internal/record"
)

// writeScript drops an executable sh script that prints a canned response
// envelope regardless of the request it receives.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "collab.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o700); err != nil {
		t.Fatalf("writing script: %v", err)
	}
	return path
}

func TestScriptSuggest(t *testing.T) {
	script := writeScript(t, `printf '%s\n' '{"success": true, "data": {"spec": "(\\S+) (\\S+)", "description": "two columns", "fieldNames": ["Host", "Status"]}}'`)
	c := NewScriptCollaborator("sh", script, testLogger())

	def, err := c.Suggest(context.Background(), "access.log", "")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if def.Spec != `(\S+) (\S+)` {
		t.Errorf("spec = %q", def.Spec)
	}
	if len(def.FieldNames) != 2 || def.FieldNames[0] != "Host" {
		t.Errorf("field names = %v", def.FieldNames)
	}
}

func TestScriptSuggestFailureEnvelope(t *testing.T) {
	script := writeScript(t, `echo '{"success": false, "error": "no matching pattern"}'`)
	c := NewScriptCollaborator("sh", script, testLogger())

	if _, err := c.Suggest(context.Background(), "access.log", ""); err == nil {
		t.Error("expected error from failure envelope")
	}
}

func TestScriptParse(t *testing.T) {
	script := writeScript(t, `echo '{"success": true, "data": [{"Timestamp": "2024-01-10 09:00:00", "Level": "ERROR", "Message": "boom"}]}'`)
	c := NewScriptCollaborator("sh", script, testLogger())

	rows, err := c.Parse(context.Background(), "app.log", record.DefaultPattern(), false, "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rows) != 1 || rows[0]["Level"] != "ERROR" {
		t.Errorf("rows = %v", rows)
	}
}

func TestScriptParseNullData(t *testing.T) {
	script := writeScript(t, `echo '{"success": true, "data": null}'`)
	c := NewScriptCollaborator("sh", script, testLogger())

	rows, err := c.Parse(context.Background(), "app.log", record.DefaultPattern(), true, "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %v, want none", rows)
	}
}

func TestScriptFailureEnvelopeOnNonZeroExit(t *testing.T) {
	// The script reports its failure in the envelope and exits non-zero;
	// the envelope wins over the exit status.
	script := writeScript(t, `echo '{"success": false, "error": "regex did not compile"}'; exit 1`)
	c := NewScriptCollaborator("sh", script, testLogger())

	_, err := c.Parse(context.Background(), "app.log", record.DefaultPattern(), false, "")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "regex did not compile" {
		t.Errorf("error = %q, want the envelope's message", got)
	}
}

func TestScriptGarbageOutput(t *testing.T) {
	script := writeScript(t, `echo 'not json at all'`)
	c := NewScriptCollaborator("sh", script, testLogger())

	if _, err := c.Parse(context.Background(), "app.log", record.DefaultPattern(), false, ""); err == nil {
		t.Error("expected error for undecodable output")
	}
}

func TestScriptRequestCarriesPayload(t *testing.T) {
	// The request travels as the final argv element; the script records it
	// so the test can inspect what was sent.
	dump := filepath.Join(t.TempDir(), "request.json")
	script := writeScript(t, `printf '%s' "$1" > `+dump+`
echo '{"success": true, "data": null}'`)
	c := NewScriptCollaborator("sh", script, testLogger())

	pattern := &record.PatternDefinition{Spec: `(\d+)`, FieldNames: []string{"Code"}}
	if _, err := c.Parse(context.Background(), "app.log", pattern, true, "/etc/patterns.yaml"); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	data, err := os.ReadFile(dump)
	if err != nil {
		t.Fatalf("reading request dump: %v", err)
	}
	request := string(data)
	for _, want := range []string{`"command":"parse"`, `"bestEffort":true`, `"customPatternsPath":"/etc/patterns.yaml"`, `"filePath":"app.log"`} {
		if !strings.Contains(request, want) {
			t.Errorf("request missing %s:\n%s", want, request)
		}
	}
}
