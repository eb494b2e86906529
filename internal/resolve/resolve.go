// Package resolve disambiguates among candidate executables produced by an
// installation. It defines the contract only; interactive or rule-based
// strategies are supplied by the caller.
package resolve

import (
	"errors"
	"fmt"
)

var (
	// ErrNoExecutable indicates the installation produced no candidate
	// executables.
	ErrNoExecutable = errors.New("no executable found in installation")

	// ErrInvalidSelection indicates a strategy returned a path that was
	// not among the candidates it was given.
	ErrInvalidSelection = errors.New("selection is not among the candidates")
)

// Strategy picks one path from a non-empty candidate list. It is only
// invoked when the choice is genuinely ambiguous (two or more candidates).
type Strategy func(candidates []string) (string, error)

// First is a non-interactive strategy that picks the first candidate.
func First(candidates []string) (string, error) {
	return candidates[0], nil
}

// Executable picks the single executable for an installation. Zero
// candidates fail with ErrNoExecutable; exactly one is returned directly
// without consulting the strategy; more than one defers to the strategy,
// whose answer must be one of the candidates.
func Executable(candidates []string, strategy Strategy) (string, error) {
	switch len(candidates) {
	case 0:
		return "", ErrNoExecutable
	case 1:
		return candidates[0], nil
	}

	if strategy == nil {
		return "", fmt.Errorf("%d candidate executables and no disambiguation strategy", len(candidates))
	}

	choice, err := strategy(candidates)
	if err != nil {
		return "", fmt.Errorf("disambiguating executable: %w", err)
	}
	for _, c := range candidates {
		if c == choice {
			return choice, nil
		}
	}
	return "", fmt.Errorf("strategy returned %q: %w", choice, ErrInvalidSelection)
}
