package tools

import "fmt"

// DiffStrategy describes how the model should express file edits through
// the apply_diff tool. Applying the edits is the host's job.
type DiffStrategy interface {
	Name() string
	ToolDescription(args Args) string
}

// SearchReplaceStrategy asks for SEARCH/REPLACE blocks.
type SearchReplaceStrategy struct {
	// FuzzyThreshold is the minimum similarity (0-1) the host accepts when
	// locating the SEARCH text.
	FuzzyThreshold float64
}

func (s SearchReplaceStrategy) Name() string { return "search-replace" }

func (s SearchReplaceStrategy) ToolDescription(args Args) string {
	threshold := s.FuzzyThreshold
	if threshold <= 0 {
		threshold = 1.0
	}
	return fmt.Sprintf(`## apply_diff
Description: Request to replace existing code using a search and replace block.
The SEARCH section must match existing content (similarity threshold %.2f), including whitespace and indentation.
Parameters:
- path: (required) The path of the file to modify (relative to the current working directory %s)
- diff: (required) The search/replace block defining the changes.
- start_line: (required) The line number where the search block starts.
- end_line: (required) The line number where the search block ends.
Diff format:
`+"```"+`
<<<<<<< SEARCH
[exact content to find]
=======
[new content to replace with]
>>>>>>> REPLACE
`+"```"+`
Usage:
<apply_diff>
<path>File path here</path>
<diff>Your search/replace content here</diff>
<start_line>1</start_line>
<end_line>5</end_line>
</apply_diff>`, threshold, args.Cwd)
}

// UnifiedDiffStrategy asks for unified diffs.
type UnifiedDiffStrategy struct{}

func (UnifiedDiffStrategy) Name() string { return "unified" }

func (UnifiedDiffStrategy) ToolDescription(args Args) string {
	return fmt.Sprintf(`## apply_diff
Description: Apply a unified diff to a file at the specified path. Include at least three lines of context around each change.
Parameters:
- path: (required) The path of the file to apply the diff to (relative to the current working directory %s)
- diff: (required) The diff content in unified format to apply to the file.
Usage:
<apply_diff>
<path>File path here</path>
<diff>
Your diff here
</diff>
</apply_diff>`, args.Cwd)
}

// NewDiffStrategy picks the strategy for the experiment set.
func NewDiffStrategy(experiments Experiments, fuzzyThreshold float64) DiffStrategy {
	if experiments.Enabled(ExpDiffStrategy) {
		return UnifiedDiffStrategy{}
	}
	return SearchReplaceStrategy{FuzzyThreshold: fuzzyThreshold}
}
