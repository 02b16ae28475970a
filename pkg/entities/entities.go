// Package entities holds the HTML5 named character reference tables and the
// lookups the decoder performs against them.
package entities

//go:generate go run gen.go

// Resolver resolves character reference names against a full table and a
// legacy table. The legacy table holds the names that may appear without a
// terminating semicolon; every legacy name is expected to be in the full
// table too.
//
// A Resolver is read-only once built and is safe for concurrent use.
type Resolver struct {
	full   map[string]string
	legacy map[string]string
	// Length of the longest legacy name, bounds prefix tracking.
	longestLegacy int
}

var defaultResolver = NewResolver(full, legacyTable())

// Default returns the resolver over the built-in HTML5 tables.
func Default() *Resolver {
	return defaultResolver
}

// NewResolver creates a resolver over the given tables. The maps are used
// as-is and must not be modified afterwards.
func NewResolver(fullTable, legacyTable map[string]string) *Resolver {
	r := &Resolver{
		full:   fullTable,
		legacy: legacyTable,
	}
	for name := range legacyTable {
		if len(name) > r.longestLegacy {
			r.longestLegacy = len(name)
		}
	}
	return r
}

// Extend returns a new resolver whose tables are the receiver's plus extra.
// Names listed in legacyNames become valid without a semicolon; each must be
// present in extra or already known to the receiver. A name in extra replaces
// the receiver's value, in both tables.
func (r *Resolver) Extend(extra map[string]string, legacyNames []string) (*Resolver, error) {
	fullTable := make(map[string]string, len(r.full)+len(extra))
	for name, value := range r.full {
		fullTable[name] = value
	}
	for name, value := range extra {
		if !IsName(name) {
			return nil, &InvalidNameError{Name: name}
		}
		fullTable[name] = value
	}

	legacyTable := make(map[string]string, len(r.legacy)+len(legacyNames))
	for name := range r.legacy {
		legacyTable[name] = fullTable[name]
	}
	for _, name := range legacyNames {
		value, ok := fullTable[name]
		if !ok {
			return nil, &UnknownNameError{Name: name}
		}
		legacyTable[name] = value
	}

	return NewResolver(fullTable, legacyTable), nil
}

// Full looks up name, without its semicolon, in the full table.
func (r *Resolver) Full(name string) (string, bool) {
	value, ok := r.full[name]
	return value, ok
}

// Legacy looks up name in the legacy table.
func (r *Resolver) Legacy(name string) (string, bool) {
	value, ok := r.legacy[name]
	return value, ok
}

// Len returns the number of names in the full table.
func (r *Resolver) Len() int {
	return len(r.full)
}

// Prefix starts tracking a new candidate name.
func (r *Resolver) Prefix() Prefix {
	return Prefix{resolver: r}
}

// Decode returns the replacement text for a named character reference, given
// without its leading ampersand and trailing semicolon.
func Decode(name string) (string, bool) {
	return defaultResolver.Full(name)
}

// IsName reports whether s is a non-empty run of ASCII alphanumerics, the only
// characters a reference name may contain.
func IsName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsAlphanumeric(rune(s[i])) {
			return false
		}
	}
	return true
}

// IsAlphanumeric reports whether r is an ASCII letter or digit.
func IsAlphanumeric(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || IsDecimal(r)
}

// IsDecimal reports whether r is an ASCII decimal digit.
func IsDecimal(r rune) bool {
	return '0' <= r && r <= '9'
}

// IsHexadecimal reports whether r is an ASCII hexadecimal digit.
func IsHexadecimal(r rune) bool {
	return IsDecimal(r) || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}

func legacyTable() map[string]string {
	table := make(map[string]string, len(legacy))
	for _, name := range legacy {
		table[name] = full[name]
	}
	return table
}
