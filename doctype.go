package rdfxml

import (
	"encoding/xml"
	"regexp"
)

// entityDecl matches a single <!ENTITY name "value"> (or '...') internal
// DTD subset declaration, per spec.md section 6's DOCTYPE-entity note.
// This is a pragmatic subset of DTD entity syntax: internal, non-parameter
// general entities with a literal replacement text, which covers every
// RDF/XML document encountered in practice.
var entityDecl = regexp.MustCompile(`(?s)<!ENTITY\s+([A-Za-z_][\w.-]*)\s+(?:"([^"]*)"|'([^']*)')\s*>`)

// scanEntities extracts ENTITY declarations out of a DOCTYPE directive's
// raw bytes and installs them into dec's Entity map, so later Token calls
// expand &name; references in attribute values and character data before
// we ever see them.
func scanEntities(dec *xml.Decoder, dir xml.Directive) {
	for _, m := range entityDecl.FindAllSubmatch(dir, -1) {
		name := string(m[1])
		value := string(m[2])
		if value == "" && m[3] != nil {
			value = string(m[3])
		}
		if dec.Entity == nil {
			dec.Entity = make(map[string]string)
		}
		dec.Entity[name] = value
	}
}
