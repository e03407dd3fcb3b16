package analyze

import (
	"fmt"
	"go/types"
)

// CopyMode tells how generated code keeps a base value apart from the
// caller's copy.
type CopyMode int

const (
	CopyNone  CopyMode = iota // plain values, assignment copies everything
	CopySlice                 // slices.Clone on the way in and out
	CopyMap                   // maps.Clone on the way in and out
)

// ClonePkg returns the package providing the clone function, or "".
func (m CopyMode) ClonePkg() string {
	switch m {
	case CopySlice:
		return "slices"
	case CopyMap:
		return "maps"
	default:
		return ""
	}
}

// CopyModeOf decides how a base type is kept unshared. Slices and maps of
// plain values are cloned. Any other reference reachable from t (pointers,
// channels, funcs, interfaces, nested slices or maps) is an error, since a
// shallow copy would still let the caller change the wrapped value.
//
// Unexported struct fields of types declared outside local are skipped: the
// caller cannot reach them either.
func CopyModeOf(t types.Type, local *types.Package) (CopyMode, error) {
	switch u := t.Underlying().(type) {
	case *types.Slice:
		if ref := sharedRef(u.Elem(), local); ref != "" {
			return CopyNone, fmt.Errorf("slice elements hold a %s", ref)
		}

		return CopySlice, nil
	case *types.Map:
		if ref := sharedRef(u.Key(), local); ref != "" {
			return CopyNone, fmt.Errorf("map keys hold a %s", ref)
		}

		if ref := sharedRef(u.Elem(), local); ref != "" {
			return CopyNone, fmt.Errorf("map values hold a %s", ref)
		}

		return CopyMap, nil
	}

	if ref := sharedRef(t, local); ref != "" {
		return CopyNone, fmt.Errorf("it holds a %s", ref)
	}

	return CopyNone, nil
}

// sharedRef names the first reference reachable from t, or returns "".
func sharedRef(t types.Type, local *types.Package) string {
	switch u := t.Underlying().(type) {
	case *types.Basic:
		if u.Kind() == types.UnsafePointer {
			return "pointer"
		}

		return ""
	case *types.Array:
		return sharedRef(u.Elem(), local)
	case *types.Struct:
		for i := range u.NumFields() {
			f := u.Field(i)
			if !f.Exported() && f.Pkg() != local {
				continue
			}

			if ref := sharedRef(f.Type(), local); ref != "" {
				return ref + " (field " + f.Name() + ")"
			}
		}

		return ""
	case *types.Pointer:
		return "pointer"
	case *types.Slice:
		return "slice"
	case *types.Map:
		return "map"
	case *types.Chan:
		return "channel"
	case *types.Signature:
		return "func"
	case *types.Interface:
		return "interface"
	default:
		return ""
	}
}
