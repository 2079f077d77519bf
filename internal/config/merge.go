package config

// Merge appends local entries to p, skipping duplicates.
// Returns p unchanged if local is nil.
func (p Project) Merge(local *Project) Project {
	if local == nil {
		return p
	}
	return Project{
		ShareFiles: appendUnique(p.ShareFiles, local.ShareFiles),
		CloneFiles: appendUnique(p.CloneFiles, local.CloneFiles),
		Commands:   appendUnique(p.Commands, local.Commands),
	}
}

// appendUnique appends items from extra to base, skipping duplicates.
// Returns a new slice (never mutates base).
func appendUnique(base, extra []string) []string {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(base))
	result := make([]string, 0, len(base)+len(extra))
	for _, v := range base {
		if !seen[v] {
			result = append(result, v)
			seen[v] = true
		}
	}
	for _, v := range extra {
		if !seen[v] {
			result = append(result, v)
			seen[v] = true
		}
	}
	return result
}
