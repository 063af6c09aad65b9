package rdfxml

import (
	"bytes"
	"encoding/xml"
	"strconv"

	"github.com/go-rdf/rdfxml/term"
)

// openProperty implements property-element handling (spec.md section
// 4.4, PROPERTY mode). f is the freshly pushed frame for this element;
// parent is the node element it belongs to.
func (d *Decoder) openProperty(f *activeTag, parent *activeTag, t xml.StartElement) error {
	f.subject = parent.subject
	f.childMode = modeNode

	name := expandXMLName(t.Name)
	var predIRI string
	if name.URI == term.RDFNS && name.Local == "li" {
		parent.liCounter++
		predIRI = term.RDFNS + "_" + strconv.Itoa(parent.liCounter)
	} else {
		if name.URI == term.RDFNS && forbiddenPropertyNames[name.Local] {
			return d.posErrorf(ErrIllegalPropertyName, "illegal property-element name rdf:%s", name.Local)
		}
		predIRI = name.QName()
	}
	f.predicate = term.NamedNode{IRI: predIRI}

	var (
		objTerm                term.Term
		haveObjTerm            bool
		haveResource, haveNode bool
		datatypeIRI            string
		haveDatatype           bool
		parseTypeVal           string
		haveParseType          bool
		haveOtherAttrs         bool
		reifID                 string
		haveReifID             bool
		annotationTerm         term.Term
		haveAnnotation         bool
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
				haveOtherAttrs = true
				f.pendingPreds = append(f.pendingPreds, term.NamedNode{IRI: a.Name.Space + a.Name.Local})
				f.pendingObjs = append(f.pendingObjs, d.cfg.factory.Literal(a.Value, f.lang, f.dir, term.NamedNode{}))
			}
			continue
		}

		switch local {
		case "resource":
			if haveNode {
				return d.posErrorf(ErrConflictingProperty, "rdf:resource conflicts with rdf:nodeID")
			}
			resolved, err := d.resolve(a.Value, f.baseIRI)
			if err != nil {
				return err
			}
			objTerm = d.cfg.factory.NamedNode(resolved)
			haveObjTerm, haveResource = true, true
		case "nodeID":
			if haveResource {
				return d.posErrorf(ErrConflictingProperty, "rdf:nodeID conflicts with rdf:resource")
			}
			if err := d.validateNCName(a.Value); err != nil {
				return err
			}
			objTerm = d.blankNode(a.Value)
			haveObjTerm, haveNode = true, true
		case "datatype":
			resolved, err := d.resolve(a.Value, f.baseIRI)
			if err != nil {
				return err
			}
			datatypeIRI, haveDatatype = resolved, true
		case "parseType":
			parseTypeVal, haveParseType = a.Value, true
		case "ID":
			if err := d.validateNCName(a.Value); err != nil {
				return err
			}
			resolved, err := d.resolve("#"+a.Value, f.baseIRI)
			if err != nil {
				return err
			}
			if err := d.claimID(resolved); err != nil {
				return err
			}
			reifID, haveReifID = resolved, true
		case "annotation":
			resolved, err := d.resolve(a.Value, f.baseIRI)
			if err != nil {
				return err
			}
			annotationTerm, haveAnnotation = d.cfg.factory.NamedNode(resolved), true
		case "annotationNodeID":
			if err := d.validateNCName(a.Value); err != nil {
				return err
			}
			annotationTerm, haveAnnotation = d.blankNode(a.Value), true
		case "bagID":
			return d.posErrorf(ErrUnsupported, "rdf:bagID is not supported")
		}
	}

	if haveParseType && (haveResource || haveNode || haveDatatype || haveOtherAttrs) {
		return d.posErrorf(ErrConflictingProperty, "rdf:parseType is incompatible with resource/nodeID/datatype/property attributes")
	}
	if haveDatatype && haveOtherAttrs {
		return d.posErrorf(ErrConflictingProperty, "rdf:datatype is incompatible with property attributes")
	}

	if haveDatatype {
		f.hasDatatype = true
		f.datatype = term.NamedNode{IRI: datatypeIRI}
	}
	if haveReifID {
		f.reifiedID, f.hasReifiedID = reifID, true
	}
	if haveAnnotation {
		f.annotation, f.hasAnnotation = annotationTerm, true
	}

	switch {
	case haveParseType:
		return d.openParseType(f, parseTypeVal)
	case haveObjTerm:
		q := term.Quad{Subject: f.subject, Predicate: f.predicate, Object: objTerm, Graph: d.cfg.defaultGraph}
		d.emit(q)
		f.mainTriple, f.hasMainTriple = q, true
		f.predicateEmitted, f.hadChildren = true, true
		for i := range f.pendingPreds {
			d.emit(term.Quad{Subject: objTerm, Predicate: f.pendingPreds[i], Object: f.pendingObjs[i], Graph: d.cfg.defaultGraph})
		}
		f.pendingPreds, f.pendingObjs = nil, nil
	}
	return nil
}

// openParseType applies rdf:parseType semantics, per spec.md section 4.4.
func (d *Decoder) openParseType(f *activeTag, v string) error {
	switch v {
	case "Resource":
		blank := d.cfg.factory.NextBlankNode()
		q := term.Quad{Subject: f.subject, Predicate: f.predicate, Object: blank, Graph: d.cfg.defaultGraph}
		d.emit(q)
		f.mainTriple, f.hasMainTriple = q, true
		f.predicateEmitted, f.hadChildren = true, true
		f.isResourceBridge = true
		f.subject = blank
		f.predicate = nil
		f.childMode = modeProperty
	case "Collection":
		f.isCollection = true
		f.collTailSubj = f.subject
		f.collTailPred = f.predicate
		f.childMode = modeNode
	case "Triple":
		if !d.versionSeen {
			return d.posErrorf(ErrUnsupported, `rdf:parseType="Triple" requires an in-scope rdf:version declaration`)
		}
		f.isTripleMode = true
		f.childMode = modeNode
		d.pushSink()
	default:
		// "Literal" and any unrecognized value serialize as an XML
		// literal, per spec.md section 4.4's parseType table.
		f.inLiteral = true
		f.literalBuf = &bytes.Buffer{}
	}
	return nil
}

// closeProperty implements the property-element branch of close-tag
// handling, per spec.md section 4.4.
func (d *Decoder) closeProperty(f *activeTag) error {
	if f.isCollection {
		q := term.Quad{Subject: f.collTailSubj, Predicate: f.collTailPred, Object: term.RDFNil, Graph: d.cfg.defaultGraph}
		d.emit(q)
		// For a non-empty collection, materializePropertyObject already
		// recorded the property assertion S P firstListNode as the main
		// triple when the first child materialized. This guard only fires
		// for an empty collection, where that never happened and S P
		// rdf:nil (this terminator) is itself the sole, correct main triple.
		if !f.hasMainTriple {
			f.mainTriple, f.hasMainTriple = q, true
		}
		return d.reifyAndAnnotate(f)
	}

	if f.isTripleMode {
		triples := d.popSink()
		if len(triples) != 1 {
			return d.posErrorf(ErrWrongTripleTermCount, `rdf:parseType="Triple" produced %d triples, want exactly 1`, len(triples))
		}
		tt := d.cfg.factory.TripleTerm(triples[0].Subject, triples[0].Predicate, triples[0].Object)
		q := term.Quad{Subject: f.subject, Predicate: f.predicate, Object: tt, Graph: d.cfg.defaultGraph}
		d.emit(q)
		f.mainTriple, f.hasMainTriple = q, true
		return d.reifyAndAnnotate(f)
	}

	if !f.hadChildren {
		if len(f.pendingPreds) > 0 {
			// Implicit blank child: property-attributes were buffered
			// against an object whose identity only becomes known now.
			blank := d.cfg.factory.NextBlankNode()
			q := term.Quad{Subject: f.subject, Predicate: f.predicate, Object: blank, Graph: d.cfg.defaultGraph}
			d.emit(q)
			f.mainTriple, f.hasMainTriple = q, true
			for i := range f.pendingPreds {
				d.emit(term.Quad{Subject: blank, Predicate: f.pendingPreds[i], Object: f.pendingObjs[i], Graph: d.cfg.defaultGraph})
			}
		} else {
			var obj term.Term
			if f.hasDatatype {
				obj = d.cfg.factory.Literal(f.collectedText.String(), "", term.DirNone, f.datatype)
			} else {
				obj = d.cfg.factory.Literal(f.collectedText.String(), f.lang, f.dir, term.NamedNode{})
			}
			q := term.Quad{Subject: f.subject, Predicate: f.predicate, Object: obj, Graph: d.cfg.defaultGraph}
			d.emit(q)
			f.mainTriple, f.hasMainTriple = q, true
		}
	}

	return d.reifyAndAnnotate(f)
}
