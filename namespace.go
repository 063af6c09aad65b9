package rdfxml

import "github.com/go-rdf/rdfxml/term"

// namespaceChain is an ordered sequence of prefix->IRI maps (spec.md
// section 3's NamespaceChain). Lookup walks right-to-left, so the
// innermost binding wins. Generalized from the teacher's flat
// d.ns/d.ctx.NS pair (rdfxml.go) into a proper chain so namespace scopes
// nest arbitrarily deep instead of only two levels (top-level + current).
type namespaceChain []map[string]string

// rootNamespaceChain returns the chain every document starts with: the
// fixed xml prefix binding required by XML Namespaces.
func rootNamespaceChain() namespaceChain {
	return namespaceChain{{"xml": term.XMLNS}}
}

// push returns a chain with an additional scope appended, if decls is
// non-empty; otherwise it returns c unchanged (so children that declare
// no new prefixes reuse their parent's chain by reference, per spec.md
// section 4.3).
func (c namespaceChain) push(decls map[string]string) namespaceChain {
	if len(decls) == 0 {
		return c
	}
	next := make(namespaceChain, len(c)+1)
	copy(next, c)
	next[len(c)] = decls
	return next
}

// ExpandedName is the (local, uri) pair produced by resolving an
// encoding/xml name (spec.md section 3's expanded-name concept). The
// tokenizer itself performs prefix resolution, so this is a thin wrapper
// rather than a QName expansion done by hand against the namespace chain.
type ExpandedName struct {
	Local string
	URI   string
}

// QName reconstructs a full IRI by concatenating the namespace URI and
// local name, which is how RDF/XML element and attribute names become
// predicate/type IRIs (no ':' or other separator — this is how the spec's
// underlying XML-Names expansion is defined).
func (n ExpandedName) QName() string { return n.URI + n.Local }

// reversePrefix finds a prefix currently bound to uri, walking innermost
// scope first. encoding/xml resolves element and attribute names to their
// namespace URI and discards the original prefix string, so XML-literal
// re-serialization (spec.md section 4.4) has to recover a usable prefix
// this way instead of replaying the source text.
func (c namespaceChain) reversePrefix(uri string) (string, bool) {
	for i := len(c) - 1; i >= 0; i-- {
		for p, u := range c[i] {
			if u == uri {
				return p, true
			}
		}
	}
	return "", false
}
