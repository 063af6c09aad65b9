package rdfxml

import (
	"bytes"
	"strings"

	"github.com/go-rdf/rdfxml/term"
)

// parseMode is the grammar mode an element (or its children) is parsed
// in, per spec.md section 4.4.
type parseMode int

const (
	modeNode parseMode = iota
	modeProperty
)

// frameKind distinguishes the three roles a stack frame can play. Only
// frameNode and frameProperty correspond to spec.md's node-element and
// property-element categories; frameWrapper is the (optional) rdf:RDF
// document wrapper, which never itself carries a subject or predicate.
type frameKind int

const (
	frameWrapper frameKind = iota
	frameNode
	frameProperty
)

// activeTag is one stack frame: the scope carrier for a single open XML
// element, per spec.md section 3. The namespace chain, language, direction
// and base IRI are inherited from the parent frame (see childFrame); the
// other fields start at their zero values and are set by the handlers.
type activeTag struct {
	kind frameKind

	ns      namespaceChain
	lang    string
	dir     term.Direction
	baseIRI string

	// childMode is the mode this frame's children are parsed in.
	childMode parseMode

	// isRoot marks the frame whose EndElement ends the document: either
	// the rdf:RDF wrapper, or a single top-level node element when the
	// wrapper is omitted.
	isRoot bool

	// -- node-element fields --
	subject term.Term

	// -- property-element fields --
	predicate        term.Term
	hasDatatype      bool
	datatype         term.NamedNode
	collectedText    strings.Builder
	hadChildren      bool
	predicateEmitted bool
	pendingPreds     []term.Term
	pendingObjs      []term.Term

	// mainTriple records the first (usually only) triple this property
	// element asserts directly from its own subject/predicate, so
	// reification/annotation (spec.md section 4.5) has something
	// concrete to point at regardless of which parseType branch
	// produced it.
	mainTriple    term.Quad
	hasMainTriple bool

	// -- parseType="Resource" --
	isResourceBridge bool

	// -- parseType="Collection" --
	isCollection bool
	collTailSubj term.Term
	collTailPred term.Term

	// -- parseType="Literal" --
	inLiteral     bool
	literalBuf    *bytes.Buffer
	literalDepth  int
	literalNSDone bool
	literalTags   []string

	// -- parseType="Triple" (RDF 1.2) --
	isTripleMode     bool
	tripleChildCount int

	// -- reification / annotation (RDF 1.2) --
	reifiedID     string
	hasReifiedID  bool
	annotation    term.Term
	hasAnnotation bool

	// liCounter is this (node) frame's rdf:_n counter for its property
	// children, per spec.md section 3.
	liCounter int
}

// tagStack is the active-tag stack: one frame per open XML element
// (spec.md section 3's invariant that stack depth equals element depth).
// Frames own their fields by value; children reference their parent only
// by stack adjacency, matching spec.md section 9's arena-style ownership
// note.
type tagStack struct {
	frames []*activeTag
}

func (s *tagStack) push(f *activeTag) { s.frames = append(s.frames, f) }

func (s *tagStack) pop() *activeTag {
	n := len(s.frames)
	f := s.frames[n-1]
	s.frames = s.frames[:n-1]
	return f
}

func (s *tagStack) top() *activeTag {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

func (s *tagStack) len() int { return len(s.frames) }

// childFrame returns a new frame that inherits namespace chain, language,
// base IRI and direction from parent (or the document defaults, if
// parent is nil), per spec.md section 4.3.
func childFrame(parent *activeTag, kind frameKind, baseIRI string) *activeTag {
	f := &activeTag{kind: kind, childMode: modeNode}
	if parent == nil {
		f.ns = rootNamespaceChain()
		f.baseIRI = baseIRI
	} else {
		f.ns = parent.ns
		f.lang = parent.lang
		f.dir = parent.dir
		f.baseIRI = parent.baseIRI
	}
	return f
}
