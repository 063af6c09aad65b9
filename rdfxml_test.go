package rdfxml

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-rdf/rdfxml/term"
)

const nsHeader = `<rdf:RDF
	xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	xmlns:ex="http://example.org/ns#"
	xmlns:dc="http://purl.org/dc/elements/1.1/"
	xmlns:its="http://www.w3.org/2005/11/its">`

func decodeAll(t *testing.T, doc string, opts ...Option) []term.Quad {
	t.Helper()
	quads, err := NewDecoder(strings.NewReader(doc), opts...).DecodeAll()
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	return quads
}

func nn(iri string) term.NamedNode { return term.NamedNode{IRI: iri} }
func bn(label string) term.BlankNode { return term.BlankNode{Label: label} }
func lit(lex string) term.Literal {
	return term.Literal{Lexical: lex, Datatype: term.XSDString}
}

func q(s, p, o term.Term) term.Quad {
	return term.Quad{Subject: s, Predicate: p, Object: o, Graph: term.DefaultGraph{}}
}

func checkQuads(t *testing.T, got, want []term.Quad) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b term.Term) bool { return a.Equal(b) })); diff != "" {
		t.Errorf("quads mismatch (-want +got):\n%s", diff)
	}
}

// Scenario 1: plain property attribute on an untyped node.
func TestDescriptionWithPropertyAttribute(t *testing.T) {
	doc := nsHeader + `
	<rdf:Description rdf:about="http://s" dc:title="T"/>
	</rdf:RDF>`
	got := decodeAll(t, doc)
	want := []term.Quad{
		q(nn("http://s"), nn("http://purl.org/dc/elements/1.1/title"), lit("T")),
	}
	checkQuads(t, got, want)
}

// Scenario 2: typed node.
func TestTypedNode(t *testing.T) {
	doc := nsHeader + `
	<ex:Doc rdf:about="http://s"/>
	</rdf:RDF>`
	got := decodeAll(t, doc)
	want := []term.Quad{
		q(nn("http://s"), term.RDFType, nn("http://example.org/ns#Doc")),
	}
	checkQuads(t, got, want)
}

// Scenario 3: rdf:resource property.
func TestResourceProperty(t *testing.T) {
	doc := nsHeader + `
	<rdf:Description rdf:about="http://s">
		<ex:p rdf:resource="http://o"/>
	</rdf:Description>
	</rdf:RDF>`
	got := decodeAll(t, doc)
	want := []term.Quad{
		q(nn("http://s"), nn("http://example.org/ns#p"), nn("http://o")),
	}
	checkQuads(t, got, want)
}

// Scenario 4: parseType="Collection".
func TestCollection(t *testing.T) {
	doc := nsHeader + `
	<rdf:Description rdf:about="http://s">
		<ex:p rdf:parseType="Collection">
			<rdf:Description rdf:about="http://a"/>
			<rdf:Description rdf:about="http://b"/>
		</ex:p>
	</rdf:Description>
	</rdf:RDF>`
	got := decodeAll(t, doc)
	want := []term.Quad{
		q(nn("http://s"), nn("http://example.org/ns#p"), bn("b0")),
		q(bn("b0"), term.RDFFirst, nn("http://a")),
		q(bn("b0"), term.RDFRest, bn("b1")),
		q(bn("b1"), term.RDFFirst, nn("http://b")),
		q(bn("b1"), term.RDFRest, term.RDFNil),
	}
	checkQuads(t, got, want)
}

// Empty collection asserts rdf:nil directly, with no blank nodes.
func TestEmptyCollection(t *testing.T) {
	doc := nsHeader + `
	<rdf:Description rdf:about="http://s">
		<ex:p rdf:parseType="Collection"></ex:p>
	</rdf:Description>
	</rdf:RDF>`
	got := decodeAll(t, doc)
	want := []term.Quad{
		q(nn("http://s"), nn("http://example.org/ns#p"), term.RDFNil),
	}
	checkQuads(t, got, want)
}

// A non-empty collection with rdf:ID reifies the property assertion
// (subject predicate firstListNode), not the list terminator.
func TestCollectionReification(t *testing.T) {
	doc := nsHeader + `
	<rdf:Description rdf:about="http://s">
		<ex:p rdf:parseType="Collection" rdf:ID="r">
			<rdf:Description rdf:about="http://a"/>
		</ex:p>
	</rdf:Description>
	</rdf:RDF>`
	got := decodeAll(t, doc, WithBase("http://b/"))
	main := q(nn("http://s"), nn("http://example.org/ns#p"), bn("b0"))
	r := nn("http://b/#r")
	want := []term.Quad{
		main,
		q(bn("b0"), term.RDFFirst, nn("http://a")),
		q(bn("b0"), term.RDFRest, term.RDFNil),
		q(r, term.RDFType, term.RDFStatement),
		q(r, term.RDFSubject, main.Subject),
		q(r, term.RDFPredicate, main.Predicate),
		q(r, term.RDFObject, main.Object),
	}
	checkQuads(t, got, want)
}

// Scenario 5: legacy reification via rdf:ID on a property element.
func TestLegacyReification(t *testing.T) {
	doc := nsHeader + `
	<rdf:Description rdf:about="http://s">
		<ex:p rdf:ID="r">x</ex:p>
	</rdf:Description>
	</rdf:RDF>`
	got := decodeAll(t, doc, WithBase("http://b/"))
	main := q(nn("http://s"), nn("http://example.org/ns#p"), lit("x"))
	r := nn("http://b/#r")
	want := []term.Quad{
		main,
		q(r, term.RDFType, term.RDFStatement),
		q(r, term.RDFSubject, main.Subject),
		q(r, term.RDFPredicate, main.Predicate),
		q(r, term.RDFObject, main.Object),
	}
	checkQuads(t, got, want)
}

// Scenario 6: RDF 1.2 annotation.
func TestAnnotation(t *testing.T) {
	doc := nsHeader + `
	<rdf:Description rdf:about="http://s">
		<ex:p rdf:annotation="http://a">x</ex:p>
	</rdf:Description>
	</rdf:RDF>`
	got := decodeAll(t, doc)
	main := q(nn("http://s"), nn("http://example.org/ns#p"), lit("x"))
	want := []term.Quad{
		main,
		q(nn("http://a"), term.RDFReifies, term.TripleTerm{
			Subject: main.Subject, Predicate: main.Predicate, Object: main.Object,
		}),
	}
	checkQuads(t, got, want)
}

// parseType="Resource" bridges into an anonymous node with nested
// properties.
func TestResourceBridge(t *testing.T) {
	doc := nsHeader + `
	<rdf:Description rdf:about="http://s">
		<ex:p rdf:parseType="Resource">
			<ex:q>v</ex:q>
		</ex:p>
	</rdf:Description>
	</rdf:RDF>`
	got := decodeAll(t, doc)
	want := []term.Quad{
		q(nn("http://s"), nn("http://example.org/ns#p"), bn("b0")),
		q(bn("b0"), nn("http://example.org/ns#q"), lit("v")),
	}
	checkQuads(t, got, want)
}

// Implicit blank node materialized from a property element's own
// non-RDF attributes.
func TestImplicitBlankFromPropertyAttributes(t *testing.T) {
	doc := nsHeader + `
	<rdf:Description rdf:about="http://s">
		<ex:p ex:q="v"/>
	</rdf:Description>
	</rdf:RDF>`
	got := decodeAll(t, doc)
	want := []term.Quad{
		q(nn("http://s"), nn("http://example.org/ns#p"), bn("b0")),
		q(bn("b0"), nn("http://example.org/ns#q"), lit("v")),
	}
	checkQuads(t, got, want)
}

// parseType="Triple" requires an in-scope rdf:version and wraps a single
// child triple as an RDF 1.2 triple term.
func TestParseTypeTriple(t *testing.T) {
	doc := nsHeader + `
	<rdf:Description rdf:about="http://s" rdf:version="1.2">
		<ex:p rdf:parseType="Triple">
			<rdf:Description rdf:about="http://a"><ex:q rdf:resource="http://b"/></rdf:Description>
		</ex:p>
	</rdf:Description>
	</rdf:RDF>`
	got := decodeAll(t, doc)
	want := []term.Quad{
		q(nn("http://s"), nn("http://example.org/ns#p"), term.TripleTerm{
			Subject: nn("http://a"), Predicate: nn("http://example.org/ns#q"), Object: nn("http://b"),
		}),
	}
	checkQuads(t, got, want)
}

func TestParseTypeTripleWithoutVersionIsUnsupported(t *testing.T) {
	doc := nsHeader + `
	<rdf:Description rdf:about="http://s">
		<ex:p rdf:parseType="Triple">
			<rdf:Description rdf:about="http://a"><ex:q rdf:resource="http://b"/></rdf:Description>
		</ex:p>
	</rdf:Description>
	</rdf:RDF>`
	_, err := NewDecoder(strings.NewReader(doc)).DecodeAll()
	if err == nil {
		t.Fatal("expected an error")
	}
	perr, ok := err.(*Error)
	if !ok || perr.Kind != ErrUnsupported {
		t.Fatalf("got %v, want ErrUnsupported", err)
	}
}

func TestParseTypeTripleWrongCount(t *testing.T) {
	doc := nsHeader + `
	<rdf:Description rdf:about="http://s" rdf:version="1.2">
		<ex:p rdf:parseType="Triple">
			<rdf:Description rdf:about="http://a">
				<ex:q rdf:resource="http://b"/>
				<ex:r rdf:resource="http://c"/>
			</rdf:Description>
		</ex:p>
	</rdf:Description>
	</rdf:RDF>`
	_, err := NewDecoder(strings.NewReader(doc)).DecodeAll()
	perr, ok := err.(*Error)
	if !ok || perr.Kind != ErrWrongTripleTermCount {
		t.Fatalf("got %v, want ErrWrongTripleTermCount", err)
	}
}

// Boundary: empty rdf:RDF yields zero quads.
func TestEmptyDocument(t *testing.T) {
	got := decodeAll(t, nsHeader+`</rdf:RDF>`)
	if len(got) != 0 {
		t.Fatalf("got %d quads, want 0", len(got))
	}
}

// Boundary: a missing outer rdf:RDF with a single typed root is accepted.
func TestBareRootNode(t *testing.T) {
	doc := `<ex:Doc xmlns:ex="http://example.org/ns#" rdf:about="http://s" xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"/>`
	got := decodeAll(t, doc)
	want := []term.Quad{
		q(nn("http://s"), term.RDFType, nn("http://example.org/ns#Doc")),
	}
	checkQuads(t, got, want)
}

// Boundary: xml:lang="" clears the inherited language.
func TestLangClearing(t *testing.T) {
	doc := nsHeader + `
	<rdf:Description rdf:about="http://s" xml:lang="en">
		<ex:p xml:lang="">x</ex:p>
	</rdf:Description>
	</rdf:RDF>`
	got := decodeAll(t, doc)
	want := []term.Quad{
		q(nn("http://s"), nn("http://example.org/ns#p"), lit("x")),
	}
	checkQuads(t, got, want)
}

// its:dir tags a language literal with an explicit base direction (RDF
// 1.2), switching its datatype from rdf:langString to rdf:dirLangString.
func TestBaseDirection(t *testing.T) {
	doc := nsHeader + `
	<rdf:Description rdf:about="http://s">
		<ex:p xml:lang="en" its:dir="rtl">x</ex:p>
	</rdf:Description>
	</rdf:RDF>`
	got := decodeAll(t, doc)
	want := []term.Quad{
		q(nn("http://s"), nn("http://example.org/ns#p"), term.Literal{
			Lexical: "x", Lang: "en", Direction: term.DirRTL, Datatype: term.RDFDirLangString,
		}),
	}
	checkQuads(t, got, want)
}

// Boundary: a baseIRI with a fragment is truncated before resolution.
func TestBaseIRIFragmentTruncated(t *testing.T) {
	doc := nsHeader + `
	<rdf:Description rdf:ID="s" dc:title="T"/>
	</rdf:RDF>`
	got := decodeAll(t, doc, WithBase("http://b/doc#frag"))
	want := []term.Quad{
		q(nn("http://b/doc#s"), nn("http://purl.org/dc/elements/1.1/title"), lit("T")),
	}
	checkQuads(t, got, want)
}

// DOCTYPE entities expand before tokenization.
func TestDoctypeEntityExpansion(t *testing.T) {
	doc := `<?xml version="1.0"?>
	<!DOCTYPE rdf:RDF [ <!ENTITY base "http://example.org/"> ]>
	` + nsHeader + `
	<rdf:Description rdf:about="&base;s" dc:title="T"/>
	</rdf:RDF>`
	got := decodeAll(t, doc)
	want := []term.Quad{
		q(nn("http://example.org/s"), nn("http://purl.org/dc/elements/1.1/title"), lit("T")),
	}
	checkQuads(t, got, want)
}

// XML-literal serialization preserves in-scope namespaces on the
// outermost serialized element.
func TestParseTypeLiteral(t *testing.T) {
	doc := nsHeader + `
	<rdf:Description rdf:about="http://s">
		<ex:p rdf:parseType="Literal"><ex:b>hi</ex:b></ex:p>
	</rdf:Description>
	</rdf:RDF>`
	quads := decodeAll(t, doc)
	if len(quads) != 1 {
		t.Fatalf("got %d quads, want 1", len(quads))
	}
	lit, ok := quads[0].Object.(term.Literal)
	if !ok {
		t.Fatalf("object is %T, want term.Literal", quads[0].Object)
	}
	if !lit.Datatype.Equal(term.RDFXMLLiteral) {
		t.Fatalf("datatype = %v, want rdf:XMLLiteral", lit.Datatype)
	}
	if !strings.Contains(lit.Lexical, `xmlns:ex="http://example.org/ns#"`) {
		t.Fatalf("literal %q does not inject the ex: namespace", lit.Lexical)
	}
	if !strings.Contains(lit.Lexical, "<ex:b") || !strings.Contains(lit.Lexical, "hi</ex:b>") {
		t.Fatalf("literal %q does not serialize the child element", lit.Lexical)
	}
}

func TestDuplicateRdfIDIsRejected(t *testing.T) {
	doc := nsHeader + `
	<rdf:Description rdf:about="http://a"><ex:p rdf:ID="r">1</ex:p></rdf:Description>
	<rdf:Description rdf:about="http://b"><ex:p rdf:ID="r">2</ex:p></rdf:Description>
	</rdf:RDF>`
	_, err := NewDecoder(strings.NewReader(doc)).DecodeAll()
	perr, ok := err.(*Error)
	if !ok || perr.Kind != ErrDuplicateID {
		t.Fatalf("got %v, want ErrDuplicateID", err)
	}
	if perr.Line == 0 {
		t.Fatalf("DuplicateID error has no position, want Line/Col attached (trackPosition defaults to true)")
	}
}

func TestConflictingSubjectAttributes(t *testing.T) {
	doc := nsHeader + `<rdf:Description rdf:about="http://s" rdf:nodeID="x"/></rdf:RDF>`
	_, err := NewDecoder(strings.NewReader(doc)).DecodeAll()
	perr, ok := err.(*Error)
	if !ok || perr.Kind != ErrConflictingSubject {
		t.Fatalf("got %v, want ErrConflictingSubject", err)
	}
}
