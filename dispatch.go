package rdfxml

import (
	"encoding/xml"

	"github.com/go-rdf/rdfxml/term"
)

// handleStart dispatches an opening tag to node-element or
// property-element handling, based on the current top frame's
// childMode, per spec.md section 4.4's two-mode alternation.
func (d *Decoder) handleStart(t xml.StartElement) error {
	if d.stack.len() == 0 {
		return d.openRoot(t)
	}

	parent := d.stack.top()
	kind := frameNode
	if parent.childMode == modeProperty {
		kind = frameProperty
	}
	f := childFrame(parent, kind, parent.baseIRI)
	if err := d.applyScopedAttrs(f, t); err != nil {
		return err
	}
	d.stack.push(f)

	if parent.childMode == modeNode {
		return d.openNode(f, parent, t)
	}
	return d.openProperty(f, parent, t)
}

// openRoot handles the very first start tag of the document: either the
// optional rdf:RDF wrapper, or — when it is omitted — a single top-level
// node element (spec.md section 4.4).
func (d *Decoder) openRoot(t xml.StartElement) error {
	name := expandXMLName(t.Name)
	if name.URI == term.RDFNS && name.Local == "RDF" {
		f := childFrame(nil, frameWrapper, d.cfg.baseIRI)
		if err := d.applyScopedAttrs(f, t); err != nil {
			return err
		}
		f.isRoot = true
		f.childMode = modeNode
		d.stack.push(f)
		d.scanVersion(t.Attr)
		return nil
	}

	f := childFrame(nil, frameNode, d.cfg.baseIRI)
	if err := d.applyScopedAttrs(f, t); err != nil {
		return err
	}
	f.isRoot = true
	d.stack.push(f)
	return d.openNode(f, nil, t)
}

// handleEnd pops the top frame and runs its close-tag handling, per
// spec.md section 4.4.
func (d *Decoder) handleEnd(t xml.EndElement) error {
	f := d.stack.pop()
	switch f.kind {
	case frameProperty:
		if err := d.closeProperty(f); err != nil {
			return err
		}
	}
	if f.isRoot {
		d.done = true
	}
	return nil
}

// scanVersion records rdf:version once per document, per spec.md
// section 6's version-signal note.
func (d *Decoder) scanVersion(attrs []xml.Attr) {
	if v, ok := attrValue(attrs, term.RDFNS, "version"); ok {
		d.recordVersion(v)
	}
}

func (d *Decoder) recordVersion(v string) {
	if !d.versionSeen {
		d.version = v
		d.versionSeen = true
	}
}
