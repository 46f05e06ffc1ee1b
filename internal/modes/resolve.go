package modes

// RoleSource records which lookup supplied a mode's role definition.
type RoleSource int

const (
	RoleSourceOverride RoleSource = iota
	RoleSourceCustom
	RoleSourceBuiltin
	RoleSourceDefault
)

func (s RoleSource) String() string {
	switch s {
	case RoleSourceOverride:
		return "override"
	case RoleSourceCustom:
		return "custom"
	case RoleSourceBuiltin:
		return "builtin"
	default:
		return "default"
	}
}

// RoleSelection is the outcome of resolving a mode slug.
type RoleSelection struct {
	Mode               Mode
	RoleDefinition     string
	CustomInstructions string
	Source             RoleSource
}

// FindMode looks the slug up in the custom registry first, then the
// built-in table.
func FindMode(slug string, custom []Mode) (Mode, bool) {
	if m, ok := findIn(slug, custom); ok {
		return m, true
	}
	return findIn(slug, BuiltinModes)
}

// ResolveRole picks the role definition and custom instructions for slug.
// Lookup order: per-mode override, custom mode registry, built-in table,
// default mode. Role definition and custom instructions fall through
// independently, so an override may replace one and keep the other.
func ResolveRole(slug string, custom []Mode, overrides map[string]PromptComponent) RoleSelection {
	sel := RoleSelection{Source: RoleSourceDefault, Mode: DefaultMode()}

	type candidate struct {
		source RoleSource
		find   func() (Mode, bool)
	}
	lookups := []candidate{
		{RoleSourceCustom, func() (Mode, bool) { return findIn(slug, custom) }},
		{RoleSourceBuiltin, func() (Mode, bool) { return findIn(slug, BuiltinModes) }},
	}
	for _, c := range lookups {
		if m, ok := c.find(); ok {
			sel.Mode = m
			sel.Source = c.source
			break
		}
	}

	sel.RoleDefinition = sel.Mode.RoleDefinition
	sel.CustomInstructions = sel.Mode.CustomInstructions

	if o, ok := overrides[slug]; ok {
		if o.RoleDefinition != "" {
			sel.RoleDefinition = o.RoleDefinition
			sel.Source = RoleSourceOverride
		}
		if o.CustomInstructions != "" {
			sel.CustomInstructions = o.CustomInstructions
		}
	}
	return sel
}

// AllModes returns built-in modes followed by custom modes, with custom
// entries replacing built-ins that share a slug in place.
func AllModes(custom []Mode) []Mode {
	out := make([]Mode, 0, len(BuiltinModes)+len(custom))
	seen := make(map[string]int)
	for _, m := range BuiltinModes {
		seen[m.Slug] = len(out)
		out = append(out, m)
	}
	for _, m := range custom {
		if i, ok := seen[m.Slug]; ok {
			out[i] = m
			continue
		}
		seen[m.Slug] = len(out)
		out = append(out, m)
	}
	return out
}

func findIn(slug string, list []Mode) (Mode, bool) {
	for _, m := range list {
		if m.Slug == slug {
			return m, true
		}
	}
	return Mode{}, false
}
