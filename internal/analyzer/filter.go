package analyzer

import (
	"strings"
)

// Filter applies filtering options to a set of class models. Associations to
// a class that was removed from the set, or to a member of it such as
// `Lib.Data`, are dropped; associations to names that were never in the set
// are kept, since they may resolve in another file. The input models are not
// modified.
func Filter(classes []*ClassModel, opts FilterOptions) []*ClassModel {
	removed := make(map[string]bool)
	kept := make([]*ClassModel, 0, len(classes))

	for _, c := range classes {
		if excluded(c, opts) {
			removed[c.Name] = true
			continue
		}
		kept = append(kept, c)
	}
	if len(removed) == 0 {
		return kept
	}

	// A name removed in one file may still be declared by a kept class.
	for _, c := range kept {
		delete(removed, c.Name)
	}

	filtered := make([]*ClassModel, 0, len(kept))
	for _, c := range kept {
		clone := *c
		clone.Associations = make([]Association, 0, len(c.Associations))
		for _, a := range c.Associations {
			if removed[parseClassName(a.TargetClassName)] {
				continue
			}
			clone.Associations = append(clone.Associations, a)
		}
		filtered = append(filtered, &clone)
	}
	return filtered
}

func excluded(c *ClassModel, opts FilterOptions) bool {
	if opts.Prefix != "" && !strings.HasPrefix(c.Name, opts.Prefix) {
		return true
	}
	if opts.HideLibraries && c.Stereotype == ClassLibrary {
		return true
	}
	if opts.HideInterfaces && c.Stereotype == ClassInterface {
		return true
	}
	return false
}
