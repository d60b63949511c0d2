// Package vocab maps loosely-typed strings onto fixed enum vocabularies.
//
// Coerce is total: every input resolves to a member, falling back to the vocabulary default
// when neither an exact member nor a synonym matches.
package vocab

import (
	"regexp"
	"strings"
)

var separatorRun = regexp.MustCompile(`[\s\-]+`)

// Vocabulary is an immutable enum description. Synonym keys are stored normalized.
type Vocabulary[T ~string] struct {
	name     string
	order    []T
	members  map[string]T
	synonyms map[string]T
	fallback T
}

// New builds a vocabulary. The fallback must be one of the members.
func New[T ~string](name string, members []T, synonyms map[string]T, fallback T) *Vocabulary[T] {
	v := &Vocabulary[T]{
		name:     name,
		order:    append([]T(nil), members...),
		members:  make(map[string]T, len(members)),
		synonyms: make(map[string]T, len(synonyms)),
		fallback: fallback,
	}
	for _, m := range members {
		v.members[string(m)] = m
	}
	if _, ok := v.members[string(fallback)]; !ok {
		panic("vocab: fallback " + string(fallback) + " is not a member of " + name)
	}
	for raw, m := range synonyms {
		if _, ok := v.members[string(m)]; !ok {
			panic("vocab: synonym target " + string(m) + " is not a member of " + name)
		}
		v.synonyms[Normalize(raw)] = m
	}
	return v
}

// Normalize uppercases the value and replaces whitespace or hyphen runs with an underscore.
func Normalize(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	return separatorRun.ReplaceAllString(s, "_")
}

func (v *Vocabulary[T]) Name() string { return v.name }

func (v *Vocabulary[T]) Fallback() T { return v.fallback }

// IsMember reports whether value is exactly a member, without normalization.
func (v *Vocabulary[T]) IsMember(value T) bool {
	_, ok := v.members[string(value)]
	return ok
}

// Members returns the vocabulary in declaration order.
func (v *Vocabulary[T]) Members() []T {
	return append([]T(nil), v.order...)
}

// Strings returns the members as plain strings, e.g. for a schema enum.
func (v *Vocabulary[T]) Strings() []string {
	out := make([]string, len(v.order))
	for i, m := range v.order {
		out[i] = string(m)
	}
	return out
}

// Coerce resolves raw to a member. matched is false when the fallback was used.
func (v *Vocabulary[T]) Coerce(raw string) (value T, matched bool) {
	key := Normalize(raw)
	if m, ok := v.members[key]; ok {
		return m, true
	}
	if m, ok := v.synonyms[key]; ok {
		return m, true
	}
	return v.fallback, false
}
