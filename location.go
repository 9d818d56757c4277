package kasane

import (
	"path/filepath"
	"slices"
	"strings"
)

// Location identifies a settings file by path, absolute or relative.
// For load order two locations are the same only if their paths are equal
// strings.
type Location string

// Name returns the final path component. Both '/' and '\' are treated as
// separators so that ordering is the same for paths written on any platform.
func (l Location) Name() string {
	s := string(l)
	if i := strings.LastIndexAny(s, `/\`); i >= 0 {
		return s[i+1:]
	}
	return s
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return string(l)
}

// sameFile reports whether a and b name the same file once cleaned lexically,
// e.g. "./a.yml" and "a.yml". Symlinks and tildes are not resolved.
func sameFile(a, b Location) bool {
	return a == b || filepath.Clean(string(a)) == filepath.Clean(string(b))
}

// compareLocations orders by file name, then by full path so that files with
// the same name in different directories still sort deterministically.
func compareLocations(a, b Location) int {
	if c := strings.Compare(a.Name(), b.Name()); c != 0 {
		return c
	}
	return strings.Compare(string(a), string(b))
}

// normalizeLocations returns the load order for locs: duplicates removed,
// sorted by file name, with def (if set) moved to the end.
// The input slice is not modified.
func normalizeLocations(locs []Location, def Location) []Location {
	seen := make(map[Location]struct{}, len(locs))
	out := make([]Location, 0, len(locs)+1)
	for _, l := range locs {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}

	slices.SortFunc(out, compareLocations)

	if def != "" {
		if i := slices.Index(out, def); i >= 0 {
			out = slices.Delete(out, i, i+1)
		}
		out = append(out, def)
	}
	return out
}
