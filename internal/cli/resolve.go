package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/tably/internal/repository"
)

// resolveTerm picks the term for catalog and commitment commands: the flag,
// then the configured default, then the saved profile default.
func resolveTerm(ctx context.Context, app *App, flag string) (string, error) {
	if t := strings.TrimSpace(flag); t != "" {
		return t, nil
	}
	if app.DefaultTerm != "" {
		return app.DefaultTerm, nil
	}
	profile, err := app.Profile.Get(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}
	if profile != nil {
		return profile.DefaultTerm, nil
	}
	return "", nil
}

// matchIDPrefix resolves a full id or a unique id prefix against ids.
func matchIDPrefix(kind, input string, ids []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolveCommitmentID(ctx context.Context, app *App, term, input string) (string, error) {
	items, err := app.Commitments.List(ctx, term)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(items))
	for i, c := range items {
		ids[i] = c.ID
	}
	return matchIDPrefix("commitment", input, ids)
}

func resolveBlockID(ctx context.Context, app *App, input string) (string, error) {
	items, err := app.Blocks.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(items))
	for i, b := range items {
		ids[i] = b.ID
	}
	return matchIDPrefix("blocked time", input, ids)
}
