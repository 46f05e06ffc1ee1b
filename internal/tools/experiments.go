package tools

// Experiment ids.
const (
	ExpDiffStrategy     = "diff_strategy"
	ExpSearchAndReplace = "search_and_replace"
	ExpInsertContent    = "insert_content"
)

var experimentDefaults = map[string]bool{
	ExpDiffStrategy:     false,
	ExpSearchAndReplace: false,
	ExpInsertContent:    false,
}

// Experiments holds feature flags keyed by experiment id. A nil map means
// every experiment is at its default.
type Experiments map[string]bool

// Enabled reports the flag value, falling back to the default.
func (e Experiments) Enabled(id string) bool {
	if v, ok := e[id]; ok {
		return v
	}
	return experimentDefaults[id]
}

// Resolved returns a map with every known experiment set explicitly.
func (e Experiments) Resolved() map[string]bool {
	out := make(map[string]bool, len(experimentDefaults))
	for id := range experimentDefaults {
		out[id] = e.Enabled(id)
	}
	return out
}

// KnownExperiment reports whether id is a recognised experiment.
func KnownExperiment(id string) bool {
	_, ok := experimentDefaults[id]
	return ok
}
