package byteconv

import "github.com/xeipuuv/gojsonschema"

// Driver applies a resolved Plan to a value, threading Options through
// every step and lifting edges across Many(·) where the plan calls for it
// (spec §4.D).
type Driver struct {
	registry *Registry
}

// NewDriver returns a Driver backed by registry.
func NewDriver(registry *Registry) *Driver {
	return &Driver{registry: registry}
}

// Apply runs every edge in plan in order, starting from value, and returns
// the final result. A plan with a single step (src already satisfies dst)
// returns value unchanged.
func (d *Driver) Apply(plan *Plan, value any, opts Options) (any, error) {
	cur := value
	for i := 0; i+1 < len(plan.Steps); i++ {
		from := plan.Steps[i]
		to := plan.Steps[i+1]

		next, err := d.applyStep(from, to, cur, opts)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// applyStep performs one edge of a plan: a registered direct converter
// (whatever its arity — concrete->concrete, concrete->Many, Many->concrete,
// or Many->Many, e.g. the §4.F reducer/pipe-bridge edges) takes priority
// over the implicit element-wise Many lifting, which only applies when
// both ends are Many and no direct edge covers the pair.
func (d *Driver) applyStep(from, to Kind, value any, opts Options) (any, error) {
	if edge, ok := d.registry.findConverterEdge(from, to); ok {
		if edge.schema != nil {
			if err := validateOptions(edge.schema, opts); err != nil {
				return nil, err
			}
		}
		return edge.fn(value, opts)
	}

	fromInner, fromMany := from.IsMany()
	toInner, toMany := to.IsMany()
	if fromMany && toMany {
		fn, ok := d.registry.findConverter(fromInner, toInner)
		if !ok {
			return nil, &InvariantError{Src: from, Dst: to}
		}
		seq, ok := value.(Seq)
		if !ok {
			return nil, &InvariantError{Src: from, Dst: to}
		}
		return MapSeq(seq, fn, opts), nil
	}

	return nil, &InvariantError{Src: from, Dst: to}
}

// validateOptions checks opts against a converter's declared JSON Schema,
// surfacing a violation as an OptionsError (spec PART II Configuration).
func validateOptions(schema *gojsonschema.Schema, opts Options) error {
	values := opts.values
	if values == nil {
		values = map[string]any{}
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(values))
	if err != nil {
		return &OptionsError{Code: ErrorOptions, Message: "options validation failed: " + err.Error()}
	}
	if !result.Valid() {
		msg := "invalid options:"
		for _, re := range result.Errors() {
			msg += " " + re.String() + ";"
		}
		return &OptionsError{Code: ErrorOptions, Message: msg}
	}
	return nil
}
