// Package keyword holds the keyword normalizer and the deduplicated keyword set.
//
// A keyword is a trimmed, case-folded, non-empty string. Two keywords are equal
// when their normalized forms are byte-equal. Sets keep first-seen order so that
// results are reproducible; order carries no meaning.
package keyword

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
)

// Set is an ordered, deduplicated collection of normalized keywords.
// The zero value is an empty set ready to use.
type Set struct {
	items []string
	index map[string]struct{}
}

// Blacklist holds normalized terms that never make it into a Set.
type Blacklist map[string]struct{}

// NewBlacklist normalizes terms into a Blacklist. Empty terms are ignored.
func NewBlacklist(terms ...string) Blacklist {
	c := cases.Fold()
	bl := make(Blacklist, len(terms))
	for _, t := range terms {
		if k := canonical(c, t); k != "" {
			bl[k] = struct{}{}
		}
	}
	return bl
}

// Contains reports whether the normalized term is blacklisted.
func (b Blacklist) Contains(term string) bool {
	_, ok := b[term]
	return ok
}

// Terms returns the blacklisted terms in no particular order.
func (b Blacklist) Terms() []string {
	out := make([]string, 0, len(b))
	for t := range b {
		out = append(out, t)
	}
	return out
}

// Normalize trims and case-folds tokens, drops empty and blacklisted ones and
// deduplicates the rest. It never fails.
func Normalize(tokens []string, blacklist Blacklist) Set {
	c := cases.Fold()
	var s Set
	for _, t := range tokens {
		k := canonical(c, t)
		if k == "" || blacklist.Contains(k) {
			continue
		}
		s.add(k)
	}
	return s
}

// NormalizeValues is Normalize for loosely typed input: anything that is not
// a string is treated as empty and dropped.
func NormalizeValues(values []any, blacklist Blacklist) Set {
	tokens := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			tokens = append(tokens, s)
		}
	}
	return Normalize(tokens, blacklist)
}

// Of builds a set from already normalized keywords without re-normalizing.
// Empty strings and duplicates are still dropped.
func Of(keywords ...string) Set {
	var s Set
	for _, k := range keywords {
		if k != "" {
			s.add(k)
		}
	}
	return s
}

func canonical(c cases.Caser, token string) string {
	t := strings.TrimSpace(token)
	if t == "" {
		return ""
	}
	return strings.TrimSpace(c.String(t))
}

func (s *Set) add(k string) {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[k]; ok {
		return
	}
	s.index[k] = struct{}{}
	s.items = append(s.items, k)
}

// Len returns the number of keywords.
func (s Set) Len() int { return len(s.items) }

// IsEmpty reports whether the set has no keywords.
func (s Set) IsEmpty() bool { return len(s.items) == 0 }

// Contains reports whether the normalized keyword is in the set.
func (s Set) Contains(k string) bool {
	_, ok := s.index[k]
	return ok
}

// Slice returns a copy of the keywords in first-seen order.
func (s Set) Slice() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Union returns a new set with the keywords of s followed by those of others.
func (s Set) Union(others ...Set) Set {
	var out Set
	for _, k := range s.items {
		out.add(k)
	}
	for _, o := range others {
		for _, k := range o.items {
			out.add(k)
		}
	}
	return out
}

// Without returns a new set with every keyword of remove taken out.
func (s Set) Without(remove Set) Set {
	var out Set
	for _, k := range s.items {
		if !remove.Contains(k) {
			out.add(k)
		}
	}
	return out
}

// Equal reports whether both sets hold the same keywords, ignoring order.
func (s Set) Equal(o Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	for _, k := range s.items {
		if !o.Contains(k) {
			return false
		}
	}
	return true
}

// Join concatenates the keywords with sep.
func (s Set) Join(sep string) string {
	return strings.Join(s.items, sep)
}

// MarshalJSON encodes the set as a JSON array (never null).
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice()) //nolint:wrapcheck // plain slice encoding
}

// UnmarshalJSON decodes a JSON array of strings, dropping empty entries.
func (s *Set) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err //nolint:wrapcheck // decoding error is self-describing
	}
	*s = Of(items...)
	return nil
}
