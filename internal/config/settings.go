package config

import "github.com/brume-cli/brume/internal/core/ports/driven"

// Settings is the typed view over the raw Store that the CLI and services
// layer actually consume, matching the keys SPEC_FULL.md's ambient-stack
// section names: API base URL, throttle window, default search limit, and
// the active embedder/model selection.
type Settings struct {
	APIBaseURL      string
	ThrottleMinMS   int
	ThrottleMaxMS   int
	DefaultLimit    int
	EmbedderKind    string // "local" or "openai"
	EmbeddingModel  string
	SummarizerModel string
}

// DefaultSettings returns brume's built-in defaults, the lowest-precedence
// layer beneath config-file values and CLI flags.
func DefaultSettings() Settings {
	return Settings{
		ThrottleMinMS:  100,
		ThrottleMaxMS:  300,
		DefaultLimit:   10,
		EmbedderKind:   "local",
		EmbeddingModel: "text-embedding-3-small",
	}
}

// Load overlays config-file values onto DefaultSettings(); CLI flags
// override the result afterward at the call site.
func Load(store driven.ConfigStore) Settings {
	s := DefaultSettings()
	if v := store.GetString("api_base_url"); v != "" {
		s.APIBaseURL = v
	}
	if v, ok := store.Get("throttle_min_ms"); ok {
		if n, ok := toInt(v); ok {
			s.ThrottleMinMS = n
		}
	}
	if v, ok := store.Get("throttle_max_ms"); ok {
		if n, ok := toInt(v); ok {
			s.ThrottleMaxMS = n
		}
	}
	if v, ok := store.Get("default_limit"); ok {
		if n, ok := toInt(v); ok {
			s.DefaultLimit = n
		}
	}
	if v := store.GetString("embedder_kind"); v != "" {
		s.EmbedderKind = v
	}
	if v := store.GetString("embedding_model"); v != "" {
		s.EmbeddingModel = v
	}
	if v := store.GetString("summarizer_model"); v != "" {
		s.SummarizerModel = v
	}
	return s
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}
