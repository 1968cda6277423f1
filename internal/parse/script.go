package parse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"

	"github.com/loggrid/loggrid/internal/logger"
	"github.com/loggrid/loggrid/internal/record"
)

// ScriptCollaborator talks to the external parsing script. Each call spawns
// one process: the JSON request travels as the final argv element, the JSON
// response envelope comes back on stdout. This is the only blocking I/O
// boundary of the engine; callers run it off the interactive path and may
// impose a timeout through the context.
type ScriptCollaborator struct {
	interpreter string
	scriptPath  string
	log         *logger.Logger
}

// NewScriptCollaborator creates a collaborator running scriptPath with the
// given interpreter (e.g. "python3").
func NewScriptCollaborator(interpreter, scriptPath string, log *logger.Logger) *ScriptCollaborator {
	if interpreter == "" {
		interpreter = "python3"
	}
	return &ScriptCollaborator{
		interpreter: interpreter,
		scriptPath:  scriptPath,
		log:         log,
	}
}

// Suggest implements Collaborator.
func (c *ScriptCollaborator) Suggest(ctx context.Context, filePath, customPatternsPath string) (*record.PatternDefinition, error) {
	req := SuggestRequest{
		Command:            commandSuggest,
		FilePath:           filePath,
		CustomPatternsPath: customPatternsPath,
	}
	env, err := c.run(ctx, req)
	if err != nil {
		return nil, &SuggestError{FilePath: filePath, Cause: err}
	}
	if !env.Success {
		return nil, &SuggestError{FilePath: filePath, Cause: errors.New(env.Error)}
	}

	var def record.PatternDefinition
	if err := json.Unmarshal(env.Data, &def); err != nil {
		return nil, &SuggestError{FilePath: filePath, Cause: fmt.Errorf("decoding pattern: %w", err)}
	}
	if len(def.FieldNames) == 0 {
		return nil, &SuggestError{FilePath: filePath, Cause: errors.New("suggestion carried no field names")}
	}
	return &def, nil
}

// Parse implements Collaborator.
func (c *ScriptCollaborator) Parse(ctx context.Context, filePath string, pattern *record.PatternDefinition, bestEffort bool, customPatternsPath string) ([]map[string]string, error) {
	req := ParseRequest{
		Command:            commandParse,
		FilePath:           filePath,
		PatternSpec:        pattern.Spec,
		FieldNames:         pattern.FieldNames,
		BestEffort:         bestEffort,
		CustomPatternsPath: customPatternsPath,
	}
	env, err := c.run(ctx, req)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, errors.New(env.Error)
	}
	if len(env.Data) == 0 || bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
		return nil, nil
	}

	var rows []map[string]string
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		return nil, fmt.Errorf("decoding parsed records: %w", err)
	}
	return rows, nil
}

// run executes the script and decodes the response envelope. The script may
// exit non-zero and still print a well-formed failure envelope, so stdout
// is decoded before the exit status is considered.
func (c *ScriptCollaborator) run(ctx context.Context, req interface{}) (*envelope, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	cmd := exec.CommandContext(ctx, c.interpreter, c.scriptPath, string(payload))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.log.Debug("invoking collaborator: %s %s", c.interpreter, c.scriptPath)
	runErr := cmd.Run()

	var env envelope
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &env); err != nil {
		if runErr != nil {
			return nil, fmt.Errorf("collaborator process failed: %w (stderr: %s)", runErr, stderr.String())
		}
		return nil, fmt.Errorf("decoding collaborator response: %w", err)
	}
	return &env, nil
}
