package rdfxml

import (
	"encoding/xml"

	"github.com/go-rdf/rdfxml/term"
)

// taggedAttr is a property triple derived from a non-RDF, non-xml
// namespaced attribute on a node element, buffered until the node's
// subject is known.
type taggedAttr struct {
	pred term.NamedNode
	obj  term.Term
}

// openNode implements node-element handling (spec.md section 4.4, NODE
// mode). f is the freshly pushed frame for this element; parent is its
// parent frame, or nil at a bare (wrapper-less) document root.
func (d *Decoder) openNode(f *activeTag, parent *activeTag, t xml.StartElement) error {
	f.childMode = modeProperty

	name := expandXMLName(t.Name)
	isTyped := true
	if name.URI == term.RDFNS {
		switch name.Local {
		case "RDF", "Description":
			// Both fall through as untyped nodes at any depth. The
			// source this grammar is modeled on permits "RDF" here
			// via an unintentional case fall-through; that quirk is
			// preserved rather than tightened.
			isTyped = false
		default:
			if forbiddenNodeNames[name.Local] {
				return d.posErrorf(ErrIllegalNodeName, "illegal node-element name rdf:%s", name.Local)
			}
		}
	}

	var (
		subjectKind      string
		aboutIRI, idIRI  string
		nodeIDLabel      string
		explicitType     string
		haveExplicitType bool
		attrs            []taggedAttr
	)

	for _, a := range t.Attr {
		if _, ok := xmlnsDecl(a); ok {
			continue
		}
		if isXMLAttr(a.Name) || isITSAttr(a.Name) {
			continue
		}
		local, ok := isRDFName(a.Name)
		if !ok {
			if a.Name.Space != "" {
				attrs = append(attrs, taggedAttr{
					pred: term.NamedNode{IRI: a.Name.Space + a.Name.Local},
					obj:  d.cfg.factory.Literal(a.Value, f.lang, f.dir, term.NamedNode{}),
				})
			}
			continue
		}

		switch local {
		case "about":
			if subjectKind != "" {
				return d.posErrorf(ErrConflictingSubject, "conflicting subject: rdf:%s and rdf:about both set", subjectKind)
			}
			resolved, err := d.resolve(a.Value, f.baseIRI)
			if err != nil {
				return err
			}
			aboutIRI = resolved
			subjectKind = "about"
		case "ID":
			if subjectKind != "" {
				return d.posErrorf(ErrConflictingSubject, "conflicting subject: rdf:%s and rdf:ID both set", subjectKind)
			}
			if err := d.validateNCName(a.Value); err != nil {
				return err
			}
			resolved, err := d.resolve("#"+a.Value, f.baseIRI)
			if err != nil {
				return err
			}
			idIRI = resolved
			subjectKind = "ID"
		case "nodeID":
			if subjectKind != "" {
				return d.posErrorf(ErrConflictingSubject, "conflicting subject: rdf:%s and rdf:nodeID both set", subjectKind)
			}
			if err := d.validateNCName(a.Value); err != nil {
				return err
			}
			nodeIDLabel = a.Value
			subjectKind = "nodeID"
		case "type":
			resolved, err := d.resolve(a.Value, f.baseIRI)
			if err != nil {
				return err
			}
			explicitType = resolved
			haveExplicitType = true
		case "version":
			d.recordVersion(a.Value)
		case "bagID", "aboutEach", "aboutEachPrefix", "li":
			return d.posErrorf(ErrUnsupported, "rdf:%s is not supported", local)
		}
	}

	var subject term.Term
	switch subjectKind {
	case "about":
		subject = d.cfg.factory.NamedNode(aboutIRI)
	case "ID":
		subject = d.cfg.factory.NamedNode(idIRI)
		if err := d.claimID(idIRI); err != nil {
			return err
		}
	case "nodeID":
		subject = d.blankNode(nodeIDLabel)
	default:
		subject = d.cfg.factory.NextBlankNode()
	}
	f.subject = subject

	if parent != nil && parent.kind == frameProperty {
		if err := d.materializePropertyObject(parent, subject); err != nil {
			return err
		}
	}

	if haveExplicitType {
		d.emit(term.Quad{Subject: subject, Predicate: term.RDFType, Object: d.cfg.factory.NamedNode(explicitType), Graph: d.cfg.defaultGraph})
	}
	if isTyped {
		d.emit(term.Quad{Subject: subject, Predicate: term.RDFType, Object: d.cfg.factory.NamedNode(name.QName()), Graph: d.cfg.defaultGraph})
	}
	for _, a := range attrs {
		d.emit(term.Quad{Subject: subject, Predicate: a.pred, Object: a.obj, Graph: d.cfg.defaultGraph})
	}
	return nil
}

// materializePropertyObject resolves a property element's object now that
// its child node element's subject is known (spec.md section 4.4's
// "materialize the property object" clause).
func (d *Decoder) materializePropertyObject(parent *activeTag, childSubject term.Term) error {
	if parent.isCollection {
		link := d.cfg.factory.NextBlankNode()
		head := term.Quad{Subject: parent.collTailSubj, Predicate: parent.collTailPred, Object: link, Graph: d.cfg.defaultGraph}
		d.emit(head)
		if !parent.hasMainTriple {
			parent.mainTriple, parent.hasMainTriple = head, true
		}
		d.emit(term.Quad{Subject: link, Predicate: term.RDFFirst, Object: childSubject, Graph: d.cfg.defaultGraph})
		parent.collTailSubj = link
		parent.collTailPred = term.RDFRest
		parent.hadChildren = true
		return nil
	}

	if parent.isTripleMode {
		parent.tripleChildCount++
		if parent.tripleChildCount > 1 {
			return d.posErrorf(ErrWrongTripleTermCount, "rdf:parseType=\"Triple\" property has more than one child node element")
		}
		return nil
	}

	q := term.Quad{Subject: parent.subject, Predicate: parent.predicate, Object: childSubject, Graph: d.cfg.defaultGraph}
	d.emit(q)
	parent.mainTriple = q
	parent.hasMainTriple = true
	parent.predicateEmitted = true
	parent.hadChildren = true

	for i := range parent.pendingPreds {
		d.emit(term.Quad{Subject: childSubject, Predicate: parent.pendingPreds[i], Object: parent.pendingObjs[i], Graph: d.cfg.defaultGraph})
	}
	parent.pendingPreds = nil
	parent.pendingObjs = nil
	return nil
}
