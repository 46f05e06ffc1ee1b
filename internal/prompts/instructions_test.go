package prompts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igoryan-dao/ricochet-prompt/internal/rules"
)

type fakeRules struct {
	set   rules.RuleSet
	err   error
	mu    sync.Mutex
	calls []string
}

func (f *fakeRules) GetRuleSections(_ context.Context, cwd, mode string) (rules.RuleSet, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cwd+"|"+mode)
	f.mu.Unlock()
	return f.set, f.err
}

const header = "USER'S CUSTOM INSTRUCTIONS"

func TestAddCustomInstructions_Empty(t *testing.T) {
	cases := []struct {
		name       string
		mode, glob string
		set        rules.RuleSet
	}{
		{name: "all empty"},
		{name: "whitespace instructions", mode: "  \n\t", glob: " "},
		{name: "whitespace rules", set: rules.RuleSet{ModeRules: "\n\n", GenericRules: "  "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := AddCustomInstructions(context.Background(), &fakeRules{set: tc.set},
				tc.mode, tc.glob, "/test/path", "code", InstructionOptions{})
			require.NoError(t, err)
			assert.Equal(t, "", got)
		})
	}
}

func TestAddCustomInstructions_GlobalBeforeMode(t *testing.T) {
	provider := &fakeRules{}
	got, err := AddCustomInstructions(context.Background(), provider,
		"Mode-specific instructions", "Global instructions", "/test/path", "code", InstructionOptions{})
	require.NoError(t, err)

	headerAt := strings.Index(got, header)
	globalAt := strings.Index(got, "Global instructions")
	modeAt := strings.Index(got, "Mode-specific instructions")
	require.NotEqual(t, -1, headerAt)
	require.NotEqual(t, -1, globalAt)
	require.NotEqual(t, -1, modeAt)
	assert.Less(t, headerAt, globalAt)
	assert.Less(t, globalAt, modeAt)

	assert.Equal(t, []string{"/test/path|code"}, provider.calls)
}

func TestAddCustomInstructions_ExactOutput(t *testing.T) {
	provider := &fakeRules{set: rules.RuleSet{
		ModeRules:    "# Rules from .clinerules-code:\nmode rule",
		GenericRules: "# Rules from .clinerules:\ngeneric rule",
	}}
	got, err := AddCustomInstructions(context.Background(), provider, "M", "G", "/w", "code",
		InstructionOptions{Language: "fr"})
	require.NoError(t, err)

	want := "\n====\n\nUSER'S CUSTOM INSTRUCTIONS\n\n" +
		"The following additional instructions are provided by the user, and should be followed to the best of your ability without interfering with the TOOL USE guidelines.\n\n" +
		"Language Preference:\nYou should always speak and think in the \"fr\" language.\n\n" +
		"Global Instructions:\nG\n\n" +
		"Mode-specific Instructions:\nM\n\n" +
		"Rules:\n\n# Rules from .clinerules-code:\nmode rule\n\n# Rules from .clinerules:\ngeneric rule"
	assert.Equal(t, want, got)
}

func TestAddCustomInstructions_Language(t *testing.T) {
	got, err := AddCustomInstructions(context.Background(), &fakeRules{}, "", "", "/test/path", "code",
		InstructionOptions{Language: "es"})
	require.NoError(t, err)

	assert.Contains(t, got, "Language Preference:")
	assert.Contains(t, got, `speak and think in the "es" language`)
	assert.Contains(t, got, header)
}

func TestAddCustomInstructions_LanguageComesFirst(t *testing.T) {
	provider := &fakeRules{set: rules.RuleSet{GenericRules: "# Rules from .cursorrules:\nr"}}
	got, err := AddCustomInstructions(context.Background(), provider, "M", "G", "/w", "code",
		InstructionOptions{Language: "de"})
	require.NoError(t, err)

	body := got[strings.Index(got, "TOOL USE guidelines.\n\n")+len("TOOL USE guidelines.\n\n"):]
	assert.True(t, strings.HasPrefix(body, "Language Preference:\nYou should always speak and think in the \"de\" language."))
}

func TestAddCustomInstructions_Trimming(t *testing.T) {
	padded, err := AddCustomInstructions(context.Background(), &fakeRules{}, " X ", "", "/dir", "code", InstructionOptions{})
	require.NoError(t, err)
	plain, err := AddCustomInstructions(context.Background(), &fakeRules{}, "X", "", "/dir", "code", InstructionOptions{})
	require.NoError(t, err)
	assert.Equal(t, plain, padded)

	padded, err = AddCustomInstructions(context.Background(), &fakeRules{}, "", "\tG\n", "/dir", "code",
		InstructionOptions{Language: " es "})
	require.NoError(t, err)
	plain, err = AddCustomInstructions(context.Background(), &fakeRules{}, "", "G", "/dir", "code",
		InstructionOptions{Language: "es"})
	require.NoError(t, err)
	assert.Equal(t, plain, padded)
}

func TestAddCustomInstructions_HeaderOnce(t *testing.T) {
	provider := &fakeRules{}
	var first string
	for i := 0; i < 3; i++ {
		got, err := AddCustomInstructions(context.Background(), provider, "", "G", "/dir", "code", InstructionOptions{})
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(got, header))
		assert.Equal(t, 1, strings.Count(got, "====\n"))
		assert.Equal(t, 1, strings.Count(got, "Global Instructions:"))
		assert.True(t, strings.HasSuffix(got, "Global Instructions:\nG"))
		if i == 0 {
			first = got
		}
		assert.Equal(t, first, got)
	}
}

func TestAddCustomInstructions_RulesOnly(t *testing.T) {
	cases := []struct {
		name string
		set  rules.RuleSet
		want string
	}{
		{"generic only", rules.RuleSet{GenericRules: "generic"}, "Rules:\n\ngeneric"},
		{"mode only", rules.RuleSet{ModeRules: "mode"}, "Rules:\n\nmode"},
		{"both", rules.RuleSet{ModeRules: "mode", GenericRules: "generic"}, "Rules:\n\nmode\n\ngeneric"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := AddCustomInstructions(context.Background(), &fakeRules{set: tc.set}, "", "", "/w", "ask", InstructionOptions{})
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(got, "guidelines.\n\n"+tc.want), got)
		})
	}
}

func TestAddCustomInstructions_ProviderError(t *testing.T) {
	sentinel := errors.New("permission denied")
	got, err := AddCustomInstructions(context.Background(), &fakeRules{err: sentinel}, "M", "G", "/w", "code", InstructionOptions{})
	assert.Empty(t, got)
	assert.ErrorIs(t, err, sentinel)
	assert.Same(t, sentinel, err)
}

func TestAddCustomInstructions_Concurrent(t *testing.T) {
	provider := &fakeRules{set: rules.RuleSet{GenericRules: "shared"}}

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := AddCustomInstructions(context.Background(), provider, fmt.Sprintf("mode %d", i), "", "/w", "code", InstructionOptions{})
			assert.NoError(t, err)
			results[i] = out
		}(i)
	}
	wg.Wait()

	for i, out := range results {
		assert.Contains(t, out, fmt.Sprintf("Mode-specific Instructions:\nmode %d", i))
		assert.Contains(t, out, "shared")
	}
	assert.Len(t, provider.calls, len(results))
}
