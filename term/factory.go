package term

import "fmt"

// Factory constructs the RDF terms a decoder emits. The default Factory
// returned by NewFactory builds the concrete types in this package;
// callers that need pooled/interned terms can supply their own Factory
// implementation instead.
type Factory interface {
	// NamedNode returns a named node for the given (already resolved,
	// absolute) IRI.
	NamedNode(iri string) Term

	// BlankNode returns a blank node for the given label. The decoder
	// guarantees labels are unique per document unless they were
	// supplied by rdf:nodeID, in which case equal labels denote the
	// same node, as required by RDF/XML semantics.
	BlankNode(label string) Term

	// Literal returns a plain or datatyped literal. lang and dir are
	// empty/DirNone when not applicable; datatype is the zero NamedNode
	// when a language tag is present instead.
	Literal(lexical, lang string, dir Direction, datatype NamedNode) Term

	// TripleTerm returns an RDF 1.2 triple term.
	TripleTerm(s, p, o Term) Term

	// NextBlankNode mints a fresh, document-unique anonymous blank node.
	NextBlankNode() Term
}

// defaultFactory is the Factory returned by NewFactory.
type defaultFactory struct {
	n int
}

// NewFactory returns the default Factory, which builds the term types
// defined in this package and mints anonymous blank nodes named "b0",
// "b1", ... in encounter order.
func NewFactory() Factory {
	return &defaultFactory{}
}

func (f *defaultFactory) NamedNode(iri string) Term {
	return NamedNode{IRI: iri}
}

func (f *defaultFactory) BlankNode(label string) Term {
	return BlankNode{Label: label}
}

func (f *defaultFactory) Literal(lexical, lang string, dir Direction, datatype NamedNode) Term {
	if lang != "" {
		dt := RDFLangString
		if dir != DirNone {
			dt = RDFDirLangString
		}
		return Literal{Lexical: lexical, Lang: lang, Direction: dir, Datatype: dt}
	}
	if datatype.IRI == "" {
		datatype = XSDString
	}
	return Literal{Lexical: lexical, Datatype: datatype}
}

func (f *defaultFactory) TripleTerm(s, p, o Term) Term {
	return TripleTerm{Subject: s, Predicate: p, Object: o}
}

func (f *defaultFactory) NextBlankNode() Term {
	label := fmt.Sprintf("b%d", f.n)
	f.n++
	return BlankNode{Label: label}
}
