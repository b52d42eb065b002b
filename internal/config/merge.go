package config

// MergeLocal merges a workspace-local config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	// Theme is global-only and inherited through the shallow copy.
	merged := *global

	if local.Git != "" {
		merged.Git = local.Git
	}
	if local.RefreshMS != nil {
		merged.RefreshMS = *local.RefreshMS
	}
	if local.IndexConcurrency != nil {
		merged.IndexConcurrency = *local.IndexConcurrency
	}

	// Ignore patterns (append with dedup)
	if len(local.Discovery.Ignore) > 0 {
		merged.Discovery.Ignore = appendUnique(global.Discovery.Ignore, local.Discovery.Ignore)
	}

	return &merged
}

// appendUnique appends items from extra to base, skipping duplicates.
// Returns a new slice (never mutates base).
func appendUnique(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	for _, v := range base {
		seen[v] = true
	}

	result := make([]string, len(base))
	copy(result, base)

	for _, v := range extra {
		if !seen[v] {
			result = append(result, v)
			seen[v] = true
		}
	}

	return result
}
