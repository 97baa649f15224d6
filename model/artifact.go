package model

import "fmt"

// ArtifactName applies the toolchain's naming pattern for the given artifact
// category to a base name. When the toolchain declares no pattern for the
// category the base name is returned unchanged; an unknown category is an
// error.
func (t *Toolchain) ArtifactName(category, base string) (string, error) {
	if !KnownArtifactCategory(category) {
		return "", fmt.Errorf("unknown artifact category %q", category)
	}
	for _, p := range t.ArtifactNamePatterns {
		if p.Category == category {
			return p.Prefix + base + p.Extension, nil
		}
	}
	return base, nil
}
