package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/atticlabs/attic/internal/library"
	"github.com/atticlabs/attic/internal/resolve"
	"github.com/atticlabs/attic/internal/store"
)

// selectFromList presents a numbered list and returns the selected index.
func selectFromList(reader *bufio.Reader, w io.Writer, prompt string, items []string) (int, error) {
	fmt.Fprintf(w, "\n%s\n", prompt)
	for i, item := range items {
		fmt.Fprintf(w, "  %d) %s\n", i+1, item)
	}
	fmt.Fprintf(w, "Enter number [1-%d]: ", len(items))

	line, err := reader.ReadString('\n')
	if err != nil {
		return 0, fmt.Errorf("reading selection: %w", err)
	}

	num, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || num < 1 || num > len(items) {
		return 0, fmt.Errorf("invalid selection %q: choose 1-%d", strings.TrimSpace(line), len(items))
	}

	return num - 1, nil
}

// pickTitleID resolves the title a command should operate on. An explicit
// id wins; a name goes through the catalog's strict lookup first (so an
// ambiguous name fails loudly instead of picking the wrong title), falling
// back to the record store for titles that have left the catalog; with
// neither, the user picks interactively from the reconciled statuses.
func (a *app) pickTitleID(ctx context.Context, name, id string, installedOnly bool, in io.Reader, out io.Writer) (string, error) {
	if id != "" {
		return id, nil
	}

	if name != "" {
		entry, err := a.mirror.FindByName(name)
		if err == nil {
			return entry.TitleID, nil
		}
		if !errors.Is(err, library.ErrNotFound) {
			return "", err
		}

		res, storeErr := a.store.Get(ctx, store.Query{Name: name})
		if storeErr != nil {
			return "", err // the catalog error is the better message
		}
		if res.Duplicate {
			fmt.Fprintf(out, "warning: multiple records named %q; using %s\n", name, res.Record.TitleID)
		}
		return res.Record.TitleID, nil
	}

	statuses, err := library.Statuses(ctx, a.store, a.mirror)
	if err != nil {
		return "", err
	}

	var choices []library.Status
	for _, s := range statuses {
		if installedOnly && !s.Installed {
			continue
		}
		choices = append(choices, s)
	}
	if len(choices) == 0 {
		if installedOnly {
			return "", fmt.Errorf("no installed titles")
		}
		return "", fmt.Errorf("no titles in your library")
	}

	names := make([]string, len(choices))
	for i, s := range choices {
		names[i] = s.Name
	}

	idx, err := selectFromList(bufio.NewReader(in), out, "Select a title:", names)
	if err != nil {
		return "", err
	}
	return choices[idx].TitleID, nil
}

// execStrategy returns an interactive disambiguation strategy for
// installations that produce more than one candidate executable.
func execStrategy(in io.Reader, out io.Writer) resolve.Strategy {
	reader := bufio.NewReader(in)
	return func(candidates []string) (string, error) {
		fmt.Fprintln(out, "Ambiguous executable detected.")
		idx, err := selectFromList(reader, out, "Select the executable used to launch the title:", candidates)
		if err != nil {
			return "", err
		}
		return candidates[idx], nil
	}
}
