package rdfxml

// idRegistry de-duplicates rdf:ID within a document, per spec.md section
// 4.6. It is owned exclusively by one Decoder; distinct Decoders have
// independent registries.
type idRegistry struct {
	seen       map[string]struct{}
	allowDupes bool
}

func newIDRegistry(allowDupes bool) *idRegistry {
	return &idRegistry{seen: make(map[string]struct{}), allowDupes: allowDupes}
}

// claim registers iri (the rdf:ID value already resolved against the
// active base IRI) as used. It returns an error if iri was already
// claimed and duplicates are not allowed. The returned error carries no
// position; callers go through Decoder.claimID, which attaches one.
func (r *idRegistry) claim(iri string) error {
	if _, dup := r.seen[iri]; dup && !r.allowDupes {
		return newErrorf(ErrDuplicateID, "duplicate rdf:ID %q", iri)
	}
	r.seen[iri] = struct{}{}
	return nil
}
