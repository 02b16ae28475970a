package entities

// Prefix tracks a reference name as it is scanned one character at a time and
// remembers the longest legacy name matched so far, so the scanner can fall
// back to it without walking backwards.
//
// The zero value is not usable; obtain one from Resolver.Prefix. A Prefix
// belongs to a single scan and must not be shared.
type Prefix struct {
	resolver *Resolver
	name     []byte
	match    int
	value    string
}

// Extend appends c to the candidate name and checks the legacy table.
func (p *Prefix) Extend(c byte) {
	p.name = append(p.name, c)
	// No legacy name is longer than this, keep scanning without lookups.
	if len(p.name) > p.resolver.longestLegacy {
		return
	}
	if value, ok := p.resolver.legacy[string(p.name)]; ok {
		p.match = len(p.name)
		p.value = value
	}
}

// Match returns the length of the longest legacy name that is a prefix of the
// candidate, and its replacement. The length is zero when nothing matched.
func (p *Prefix) Match() (int, string) {
	return p.match, p.value
}

// Resolve finishes a candidate that was terminated by a semicolon: a full
// table match on the whole name overrides the legacy match.
func (p *Prefix) Resolve() {
	if value, ok := p.resolver.full[string(p.name)]; ok {
		p.match = len(p.name)
		p.value = value
	}
}
