package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/igoryan-dao/ricochet-prompt/internal/modes"
	"github.com/igoryan-dao/ricochet-prompt/internal/tools"
)

func mustFind(t *testing.T, slug string) modes.Mode {
	t.Helper()
	m, ok := modes.FindMode(slug, nil)
	if !ok {
		t.Fatalf("mode %s not found", slug)
	}
	return m
}

func TestEditVerdict(t *testing.T) {
	ok, reason := editVerdict(mustFind(t, "test"), "internal/server/handler_test.go")
	assert.True(t, ok, reason)

	ok, reason = editVerdict(mustFind(t, "test"), "internal/server/handler.go")
	assert.False(t, ok)
	assert.Contains(t, reason, `.*_test\.go$`)

	ok, reason = editVerdict(mustFind(t, "ask"), "README.md")
	assert.False(t, ok)
	assert.Equal(t, "ask has no edit tools", reason)

	ok, _ = editVerdict(mustFind(t, "code"), "main.go")
	assert.True(t, ok)
}

func TestModeRow(t *testing.T) {
	row := modeRow(mustFind(t, "code"), nil)
	assert.False(t, row.ReadOnly)
	assert.Contains(t, row.Access, string(tools.CategoryWrite))

	reader := modes.Mode{Slug: "reader", Name: "Reader", ToolGroups: []string{modes.GroupRead}, RoleDefinition: "You read."}
	row = modeRow(reader, nil)
	assert.True(t, row.ReadOnly)
	assert.Equal(t, []string{"read", "meta"}, row.Access)
}
