package byteconv

import (
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// ConverterFunc performs a single direct conversion edge src -> dst. It
// receives the options record passed to the top-level Convert call
// unchanged.
type ConverterFunc func(value any, opts Options) (any, error)

// converterEdge is one registered src->dst conversion.
type converterEdge struct {
	src, dst Kind
	fn       ConverterFunc
	schema   *gojsonschema.Schema
}

// TransferFunc performs a specialized bulk transfer from src to dst,
// returning the number of bytes moved.
type TransferFunc func(src, dst any, opts Options) (int64, error)

type transferEdge struct {
	src, dst Kind
	fn       TransferFunc
}

// Registry holds the process-wide tables of direct conversion edges and
// specialized transfer edges (spec §4.B). The zero Registry is not usable;
// construct with NewRegistry. A single package-level instance (see
// DefaultRegistry) backs the public Convert/Transfer API, but tests and
// embedders may build their own.
//
// The tables are keyed by src.String() rather than src itself: a Many(K)
// Kind carries an internal *Kind pointer (see kind.go), so two separately
// constructed Many(K) values are never == to each other even though they
// are the same Kind — the same reason planner.go's memoization cache is
// string-keyed rather than Kind-keyed.
type Registry struct {
	mu         sync.RWMutex
	converters map[string][]converterEdge
	transfers  map[string][]transferEdge
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		converters: make(map[string][]converterEdge),
		transfers:  make(map[string][]transferEdge),
	}
}

// RegisterConversion adds a direct src->dst conversion edge. Registering
// the same (src, dst) pair again replaces the earlier edge: lookups return
// the most recently registered one.
func (r *Registry) RegisterConversion(src, dst Kind, fn ConverterFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := src.String()
	r.converters[key] = append(r.converters[key], converterEdge{src: src, dst: dst, fn: fn})
}

// RegisterConversionSchema is RegisterConversion plus a JSON Schema (spec
// PART II Configuration) the caller's Options must satisfy before fn runs.
// schemaJSON must be a valid JSON Schema document; a malformed document
// panics at registration time, matching this module's convention of
// panicking only for programmer errors that can only originate in its own
// source (see the panic convention in SPEC_FULL.md PART II).
func (r *Registry) RegisterConversionSchema(src, dst Kind, fn ConverterFunc, schemaJSON string) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		panic("byteconv: invalid options schema for " + src.String() + "->" + dst.String() + ": " + err.Error())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := src.String()
	r.converters[key] = append(r.converters[key], converterEdge{src: src, dst: dst, fn: fn, schema: schema})
}

// RegisterTransfer adds a specialized src->dst transfer edge.
func (r *Registry) RegisterTransfer(src, dst Kind, fn TransferFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := src.String()
	r.transfers[key] = append(r.transfers[key], transferEdge{src: src, dst: dst, fn: fn})
}

// findConverter returns the most recently registered edge for the exact
// pair (src, dst), if any.
func (r *Registry) findConverter(src, dst Kind) (ConverterFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	edges := r.converters[src.String()]
	for i := len(edges) - 1; i >= 0; i-- {
		if e := edges[i]; e.dst.Equal(dst) {
			return e.fn, true
		}
	}
	return nil, false
}

// findConverterEdge is like findConverter but also returns the edge's
// optional options schema, used by the driver to validate Options before
// invoking fn.
func (r *Registry) findConverterEdge(src, dst Kind) (converterEdge, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	edges := r.converters[src.String()]
	for i := len(edges) - 1; i >= 0; i-- {
		if e := edges[i]; e.dst.Equal(dst) {
			return e, true
		}
	}
	return converterEdge{}, false
}

// allDestinationsFrom returns every Kind reachable from src by one direct
// registered edge, used by the planner as the neighbor function for BFS.
func (r *Registry) allDestinationsFrom(src Kind) []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	edges := r.converters[src.String()]
	out := make([]Kind, 0, len(edges))
	for _, e := range edges {
		out = append(out, e.dst)
	}
	return out
}

// findTransfer returns the most recently registered specialized transfer
// for the exact pair (src, dst), if any.
func (r *Registry) findTransfer(src, dst Kind) (TransferFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	edges := r.transfers[src.String()]
	for i := len(edges) - 1; i >= 0; i-- {
		if e := edges[i]; e.dst.Equal(dst) {
			return e.fn, true
		}
	}
	return nil, false
}

// DefaultRegistry is the process-wide Registry populated by the builtin,
// codec, framed, and blob packages' init functions, and used by the
// package-level Convert/Transfer/RegisterConversion/RegisterTransfer
// functions in convert.go.
var DefaultRegistry = NewRegistry()
