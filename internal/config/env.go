package config

import (
	"os"
	"strings"
)

// Environment variables that override stored settings.
const (
	EnvLanguage = "RICOCHET_LANGUAGE"
	EnvMode     = "RICOCHET_MODE"
)

func applyEnv(s *Settings) {
	if lang, ok := os.LookupEnv(EnvLanguage); ok {
		s.Prompt.Language = strings.TrimSpace(lang)
	}
	if mode := strings.TrimSpace(os.Getenv(EnvMode)); mode != "" {
		s.Prompt.Mode = mode
	}
}
