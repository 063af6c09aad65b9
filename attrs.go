package rdfxml

import (
	"encoding/xml"
	"strings"

	"github.com/go-rdf/rdfxml/term"
)

// expandXMLName converts an encoding/xml name, already namespace-resolved
// by the tokenizer (Space holds the URI, not a prefix), into an
// ExpandedName. Unprefixed attributes have Space == "", which correctly
// carries through as an unbound/default-namespace ExpandedName.
func expandXMLName(n xml.Name) ExpandedName {
	return ExpandedName{Local: n.Local, URI: n.Space}
}

// isRDFName reports whether n is in the RDF/XML syntax namespace, and
// returns its local part.
func isRDFName(n xml.Name) (local string, ok bool) {
	if n.Space == term.RDFNS {
		return n.Local, true
	}
	return "", false
}

// isXMLAttr reports whether n is in the XML namespace (xml:lang, xml:base
// or any other xml:-prefixed attribute; the xml prefix is bound by the XML
// specification itself, and encoding/xml resolves it to term.XMLNS without
// requiring an explicit xmlns:xml declaration).
func isXMLAttr(n xml.Name) bool { return n.Space == term.XMLNS }

// isITSAttr reports whether n is in the RDF 1.2 its:dir namespace.
func isITSAttr(n xml.Name) bool { return n.Space == term.ITSNS }

// xmlnsDecl reports whether attr is a namespace declaration (xmlns or
// xmlns:prefix) and, if so, the prefix it binds ("" for the default
// namespace).
func xmlnsDecl(attr xml.Attr) (prefix string, ok bool) {
	if attr.Name.Space == "xmlns" {
		return attr.Name.Local, true
	}
	if attr.Name.Space == "" && attr.Name.Local == "xmlns" {
		return "", true
	}
	return "", false
}

// forbiddenNodeNames are RDF/XML-namespaced local names that cannot be
// used as a node-element's own tag name, per spec.md section 4.4. "RDF"
// is listed for documentation but never actually consulted here: the
// caller intercepts it earlier and lets it through as an untyped node at
// any depth, preserving a fall-through quirk rather than tightening it.
var forbiddenNodeNames = map[string]bool{
	"RDF": true, "ID": true, "about": true, "bagID": true,
	"parseType": true, "resource": true, "nodeID": true,
	"li": true, "aboutEach": true, "aboutEachPrefix": true,
}

// forbiddenPropertyNames are RDF/XML-namespaced local names that cannot
// be used as a property-element's own tag name, per spec.md section 4.4.
var forbiddenPropertyNames = map[string]bool{
	"Description": true, "RDF": true, "ID": true, "about": true,
	"bagID": true, "parseType": true, "resource": true, "nodeID": true,
	"aboutEach": true, "aboutEachPrefix": true,
}

// attrValue looks up the literal string value of a raw attribute by its
// expanded name components.
func attrValue(attrs []xml.Attr, space, local string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// escapeAttrValue double-quote-escapes v for re-serialization inside an
// XML-literal attribute, per spec.md section 4.4's serialization rules.
func escapeAttrValue(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '"':
			b.WriteString("&quot;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escapeText escapes character data for re-serialization inside an
// XML-literal.
func escapeText(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
