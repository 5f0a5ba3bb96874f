// Package hidden models OS hidden-file handling as a capability consumed at
// the staging boundary: probing whether an entry is hidden and producing a
// revealed (un-hidden) counterpart.
package hidden

// Prober detects and reveals hidden filesystem entries.
type Prober interface {
	// IsHidden reports whether the entry at path is hidden.
	IsHidden(path string) bool
	// Reveal un-hides the entry and returns its (possibly renamed) path.
	Reveal(path string) (string, error)
}

// ForPlatform returns the Prober for the running OS.
func ForPlatform() Prober {
	return platformProber()
}

// RevealName strips the hiding convention from a single path component
// without touching the filesystem: a leading dot is removed. Used when
// staging copies files under new names.
func RevealName(name string) string {
	if len(name) > 1 && name[0] == '.' {
		return name[1:]
	}
	return name
}
