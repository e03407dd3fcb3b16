package common

import "strings"

// UnknownStr is the String() value of enum members without a name.
const UnknownStr = "unknown"

// IsInternalPath reports whether pkgPath is an internal package or lives below one.
func IsInternalPath(pkgPath string) bool {
	return pkgPath == "internal" ||
		strings.HasPrefix(pkgPath, "internal/") ||
		strings.HasSuffix(pkgPath, "/internal") ||
		strings.Contains(pkgPath, "/internal/")
}

// SplitQualified splits "time.Duration" into ("time", "Duration").
// Unqualified names return an empty qualifier.
func SplitQualified(name string) (qualifier, ident string) {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return "", name
	}

	return name[:i], name[i+1:]
}
