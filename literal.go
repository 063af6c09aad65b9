package rdfxml

import (
	"encoding/xml"
	"strings"

	"github.com/go-rdf/rdfxml/term"
)

// handleLiteralToken re-serializes tokens encountered while the top frame
// is in parseType="Literal" mode, per spec.md section 4.4's "XML-literal
// serialization" subsection. It bypasses the node/property dispatch
// entirely: nothing inside a literal is RDF-interpreted, it is only
// replayed as text.
func (d *Decoder) handleLiteralToken(tok xml.Token) error {
	f := d.stack.top()

	switch t := tok.(type) {
	case xml.StartElement:
		qname := qnameFor(f.ns, t.Name)
		f.literalBuf.WriteString(serializeStartTag(f, t, qname, f.literalDepth == 0 && !f.literalNSDone))
		if f.literalDepth == 0 {
			f.literalNSDone = true
		}
		f.literalTags = append(f.literalTags, qname)
		f.literalDepth++
		return nil

	case xml.EndElement:
		if f.literalDepth == 0 {
			f.inLiteral = false
			f.hasDatatype = true
			f.datatype = term.RDFXMLLiteral
			f.collectedText.Reset()
			f.collectedText.WriteString(f.literalBuf.String())
			f.hadChildren = false
			return d.handleEnd(t)
		}
		n := len(f.literalTags)
		qname := f.literalTags[n-1]
		f.literalTags = f.literalTags[:n-1]
		f.literalBuf.WriteString("</" + qname + ">")
		f.literalDepth--
		return nil

	case xml.CharData:
		f.literalBuf.WriteString(escapeText(string(t)))
		return nil

	default:
		return nil
	}
}

// qnameFor reconstructs a displayable QName for a namespace-resolved
// xml.Name. encoding/xml discards the source prefix, so the prefix is
// recovered by reverse-looking-up the URI in the namespace chain that was
// in scope when the enclosing literal started.
func qnameFor(ns namespaceChain, n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	if prefix, ok := ns.reversePrefix(n.Space); ok && prefix != "" {
		return prefix + ":" + n.Local
	}
	return n.Local
}

// serializeStartTag renders t as a start-tag string, per spec.md section
// 4.4: attributes in source order with double-quote escaping, and, for
// the literal's outermost element, every namespace binding in scope
// injected so the fragment is self-contained.
func serializeStartTag(f *activeTag, t xml.StartElement, qname string, injectNS bool) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(qname)

	if injectNS {
		seen := map[string]bool{}
		for i := len(f.ns) - 1; i >= 0; i-- {
			for p, u := range f.ns[i] {
				if p == "xml" || seen[p] {
					continue
				}
				seen[p] = true
				b.WriteByte(' ')
				if p == "" {
					b.WriteString("xmlns")
				} else {
					b.WriteString("xmlns:" + p)
				}
				b.WriteString(`="`)
				b.WriteString(escapeAttrValue(u))
				b.WriteString(`"`)
			}
		}
	}

	for _, a := range t.Attr {
		if _, ok := xmlnsDecl(a); ok {
			continue
		}
		aname := qnameFor(f.ns, a.Name)
		b.WriteByte(' ')
		b.WriteString(aname)
		b.WriteString(`="`)
		b.WriteString(escapeAttrValue(a.Value))
		b.WriteString(`"`)
	}

	b.WriteByte('>')
	return b.String()
}
