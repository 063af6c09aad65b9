package rdfxml

import "github.com/go-rdf/rdfxml/term"

// reifyAndAnnotate emits legacy reification and/or RDF 1.2 annotation
// quads for f's main triple, per spec.md section 4.5. It is a no-op for
// property elements that never resolved a main triple (e.g. an
// attribute-conflict error aborted processing earlier).
func (d *Decoder) reifyAndAnnotate(f *activeTag) error {
	if !f.hasMainTriple {
		return nil
	}

	if f.hasReifiedID {
		r := d.cfg.factory.NamedNode(f.reifiedID)
		d.emit(term.Quad{Subject: r, Predicate: term.RDFType, Object: term.RDFStatement, Graph: d.cfg.defaultGraph})
		d.emit(term.Quad{Subject: r, Predicate: term.RDFSubject, Object: f.mainTriple.Subject, Graph: d.cfg.defaultGraph})
		d.emit(term.Quad{Subject: r, Predicate: term.RDFPredicate, Object: f.mainTriple.Predicate, Graph: d.cfg.defaultGraph})
		d.emit(term.Quad{Subject: r, Predicate: term.RDFObject, Object: f.mainTriple.Object, Graph: d.cfg.defaultGraph})
	}

	if f.hasAnnotation {
		tt := d.cfg.factory.TripleTerm(f.mainTriple.Subject, f.mainTriple.Predicate, f.mainTriple.Object)
		d.emit(term.Quad{Subject: f.annotation, Predicate: term.RDFReifies, Object: tt, Graph: d.cfg.defaultGraph})
	}

	return nil
}
