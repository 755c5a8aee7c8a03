package dataset

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"typeahead/internal/domain"
)

// Exec is an async source that runs a shell command per query. The query is
// passed as $1 and in TYPEAHEAD_QUERY; every non-blank output line becomes a
// suggestion. A line of the form "value<TAB>detail" keeps the whole line as
// the suggestion object.
type Exec struct {
	command string
	shell   string
}

// NewExec creates a source running command through /bin/sh
func NewExec(command string) *Exec {
	return &Exec{command: command, shell: "/bin/sh"}
}

// Fetch runs the command. Cancelling ctx kills it.
func (e *Exec) Fetch(ctx context.Context, query string) ([]domain.Suggestion, error) {
	cmd := exec.CommandContext(ctx, e.shell, "-c", e.command, "typeahead", query)
	cmd.Env = append(cmd.Environ(), "TYPEAHEAD_QUERY="+query)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && len(out) == 0 {
			// grep-style "no match"
			return nil, nil
		}
		return nil, fmt.Errorf("failed to run %q: %w: %s", e.command, err, strings.TrimSpace(stderr.String()))
	}

	var suggestions []domain.Suggestion
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		value, _, _ := strings.Cut(line, "\t")
		suggestions = append(suggestions, domain.Suggestion{Value: value, Object: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read output of %q: %w", e.command, err)
	}
	return suggestions, nil
}
