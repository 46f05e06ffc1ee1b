// Package rules discovers project rule files and renders them as labelled
// text blocks for the system prompt.
package rules

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// RuleSet holds the rendered rule text for one composition. Either half may
// be empty.
type RuleSet struct {
	ModeRules    string
	GenericRules string
}

// Empty reports whether neither half carries content.
func (r RuleSet) Empty() bool {
	return r.ModeRules == "" && r.GenericRules == ""
}

// GenericSources are read for every mode, in order. Each entry may be a
// regular file or a directory that is read recursively.
var GenericSources = []string{
	".ricochet/rules",
	".ricochetrules",
	".clinerules",
	".cursorrules",
	".windsurfrules",
}

// ModeSources returns the mode-scoped sources for slug, in order.
func ModeSources(mode string) []string {
	return []string{
		".ricochet/rules-" + mode,
		".ricochetrules-" + mode,
		".clinerules-" + mode,
	}
}

// Manager handles project-specific rules discovery and loading
type Manager struct {
	log zerolog.Logger
}

func NewManager(log zerolog.Logger) *Manager {
	return &Manager{log: log.With().Str("component", "rules").Logger()}
}

// GetRuleSections reads the mode-specific and generic rule files under cwd.
// Missing files and directories contribute nothing; any other read failure
// is returned.
func (m *Manager) GetRuleSections(ctx context.Context, cwd, mode string) (RuleSet, error) {
	var set RuleSet
	var err error

	if mode != "" {
		set.ModeRules, err = m.render(ctx, cwd, ModeSources(mode))
		if err != nil {
			return RuleSet{}, err
		}
	}

	set.GenericRules, err = m.render(ctx, cwd, GenericSources)
	if err != nil {
		return RuleSet{}, err
	}
	return set, nil
}

func (m *Manager) render(ctx context.Context, cwd string, sources []string) (string, error) {
	var blocks []string
	for _, src := range sources {
		files, err := listSource(cwd, src)
		if err != nil {
			return "", err
		}
		for _, rel := range files {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			data, err := os.ReadFile(filepath.Join(cwd, filepath.FromSlash(rel)))
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return "", fmt.Errorf("read rule file %s: %w", rel, err)
			}
			content := strings.TrimSpace(string(data))
			if content == "" {
				continue
			}
			m.log.Debug().Str("file", rel).Int("bytes", len(content)).Msg("loaded rule file")
			blocks = append(blocks, fmt.Sprintf("# Rules from %s:\n%s", rel, content))
		}
	}
	return strings.Join(blocks, "\n\n"), nil
}

// listSource expands src (relative to cwd, slash separated) to the rule
// files it contains, sorted lexically.
func listSource(cwd, src string) ([]string, error) {
	info, err := os.Stat(filepath.Join(cwd, filepath.FromSlash(src)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat rule source %s: %w", src, err)
	}
	if !info.IsDir() {
		if !info.Mode().IsRegular() {
			return nil, nil
		}
		return []string{src}, nil
	}

	matches, err := doublestar.Glob(os.DirFS(filepath.Join(cwd, filepath.FromSlash(src))), "**", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("list rule directory %s: %w", src, err)
	}
	sort.Strings(matches)

	files := make([]string, 0, len(matches))
	for _, match := range matches {
		if strings.HasPrefix(path.Base(match), ".") {
			continue
		}
		files = append(files, path.Join(src, match))
	}
	return files, nil
}
