package iri

import (
	"fmt"
	"strings"
)

// Validator checks whether a resolved, absolute IRI string is
// syntactically acceptable. Implementations are deliberately narrow —
// this package does not attempt general RFC 3987 validation.
type Validator interface {
	Validate(iri string) error
}

// ValidatorFunc adapts a function to a Validator.
type ValidatorFunc func(string) error

// Validate implements Validator.
func (f ValidatorFunc) Validate(iri string) error { return f(iri) }

// disallowedChars are the characters the teacher's rdf.go NewURI rejects:
// space and <>{}|^`\ plus the double quote.
const disallowedChars = " <>{}|^`\"\\"

// Pragmatic is the default validation strategy: it rejects the empty
// string and the characters that cannot legally appear in an IRI, grounded on the
// teacher's NewURI character blacklist (rdf.go). It accepts anything
// else, including IRIs with no scheme, since RDF/XML base resolution can
// legitimately produce those from a relative document base.
var Pragmatic Validator = ValidatorFunc(func(s string) error {
	if s == "" {
		return fmt.Errorf("iri: empty IRI")
	}
	if i := strings.IndexAny(s, disallowedChars); i >= 0 {
		return fmt.Errorf("iri: disallowed character %q in %q", s[i], s)
	}
	return nil
})

// Strict additionally requires a scheme (letter followed by letters,
// digits, '+', '-', '.', then ':').
var Strict Validator = ValidatorFunc(func(s string) error {
	if err := Pragmatic.Validate(s); err != nil {
		return err
	}
	i := strings.IndexByte(s, ':')
	if i <= 0 {
		return fmt.Errorf("iri: %q has no scheme", s)
	}
	scheme := s[:i]
	if !isSchemeStart(scheme[0]) {
		return fmt.Errorf("iri: %q has an invalid scheme", s)
	}
	for j := 1; j < len(scheme); j++ {
		if !isSchemeChar(scheme[j]) {
			return fmt.Errorf("iri: %q has an invalid scheme", s)
		}
	}
	return nil
})

// None performs no validation; every IRI is accepted.
var None Validator = ValidatorFunc(func(string) error { return nil })

func isSchemeStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSchemeChar(c byte) bool {
	return isSchemeStart(c) || (c >= '0' && c <= '9') || c == '+' || c == '-' || c == '.'
}
