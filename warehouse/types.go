// Package warehouse is a fixture that store does not import. Analysis tests
// resolve its types by full import path, which loads it on demand.
package warehouse

// BinCode identifies a storage bin, e.g. "A-12-03".
type BinCode string

// Shelf is a struct type; it can be a base but not a text format base.
type Shelf struct {
	Aisle string
	Level int
}

// bin is unexported and cannot be used from another package.
type bin string

// Bins lists bin codes so bin is used.
func Bins(codes ...string) []BinCode {
	out := make([]BinCode, 0, len(codes))
	for _, c := range codes {
		out = append(out, BinCode(bin(c)))
	}

	return out
}
