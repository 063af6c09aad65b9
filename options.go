package rdfxml

import (
	"github.com/go-rdf/rdfxml/iri"
	"github.com/go-rdf/rdfxml/term"
)

// config holds the Decoder's constructor configuration (spec.md section
// 6), assembled via functional Options. The pattern is grounded on
// other_examples' justin4957-regula RDFXMLOption (a functional-option
// constructor for a RDF/XML serializer), used here instead of the
// teacher's runtime-typed SetOption(ParseOption, interface{}) so
// misconfiguration is caught at compile time.
type config struct {
	factory              term.Factory
	baseIRI              string
	defaultGraph         term.Term
	strictXML            bool
	trackPosition        bool
	validateURI          bool
	validator            iri.Validator
	allowDuplicateRdfIDs bool
}

func defaultConfig() config {
	return config{
		factory:       term.NewFactory(),
		defaultGraph:  term.DefaultGraph{},
		trackPosition: true,
		validateURI:   true,
		validator:     iri.Pragmatic,
	}
}

// Option configures a Decoder constructed by NewDecoder.
type Option func(*config)

// WithTermFactory overrides the default term.Factory used to construct
// emitted terms.
func WithTermFactory(f term.Factory) Option {
	return func(c *config) { c.factory = f }
}

// WithBase sets the document's initial base IRI.
func WithBase(base string) Option {
	return func(c *config) { c.baseIRI = base }
}

// WithDefaultGraph overrides the term used as a Quad's Graph for
// statements not in a named graph. RDF/XML has no syntax for named
// graphs, so every quad a Decoder emits uses this graph.
func WithDefaultGraph(g term.Term) Option {
	return func(c *config) { c.defaultGraph = g }
}

// WithStrictXML rejects malformed XML strictly rather than tolerating the
// loose constructs encoding/xml otherwise accepts.
func WithStrictXML(strict bool) Option {
	return func(c *config) { c.strictXML = strict }
}

// WithTrackPosition enables or disables Line/Col attachment on errors.
// Enabled by default.
func WithTrackPosition(track bool) Option {
	return func(c *config) { c.trackPosition = track }
}

// WithIRIValidation enables or disables external IRI validation of
// resolved IRIs, and selects the Validator strategy to use when enabled.
func WithIRIValidation(enabled bool, strategy iri.Validator) Option {
	return func(c *config) {
		c.validateURI = enabled
		if strategy != nil {
			c.validator = strategy
		}
	}
}

// WithAllowDuplicateRdfIDs disables the rdf:ID uniqueness check.
func WithAllowDuplicateRdfIDs(allow bool) Option {
	return func(c *config) { c.allowDuplicateRdfIDs = allow }
}
