package byteconv

// Options is an unordered map of option name to value, passed to converters
// and to the transfer pump (spec §4.A). Recognized keys are chunk-size,
// direct?, encoding, append?; unrecognized keys are ignored by every
// converter in this module, never rejected. direct? is readable through
// Direct but no built-in converter consults it.
type Options struct {
	values map[string]any
}

// NoOptions is the empty Options record.
func NoOptions() Options {
	return Options{}
}

// NewOptions builds an Options record from the given key/value pairs.
func NewOptions(values map[string]any) Options {
	return Options{values: values}
}

// With returns a copy of o with key set to value.
func (o Options) With(key string, value any) Options {
	out := make(map[string]any, len(o.values)+1)
	for k, v := range o.values {
		out[k] = v
	}
	out[key] = value
	return Options{values: out}
}

// Get returns the raw value stored under key, if any.
func (o Options) Get(key string) (any, bool) {
	if o.values == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o Options) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// IntOr returns the int stored under key, or fallback if absent or not an
// int-like value. Accepts int, int64 and float64 (truncated) for callers
// that built Options from decoded JSON/YAML numeric literals.
func (o Options) IntOr(key string, fallback int) int {
	v, ok := o.Get(key)
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return fallback
	}
}

// BoolOr returns the bool stored under key, or fallback if absent or not a
// bool.
func (o Options) BoolOr(key string, fallback bool) bool {
	v, ok := o.Get(key)
	if !ok {
		return fallback
	}
	b, ok := v.(bool)
	if !ok {
		return fallback
	}
	return b
}

// StringOr returns the string stored under key, or fallback if absent or
// not a string.
func (o Options) StringOr(key string, fallback string) string {
	v, ok := o.Get(key)
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	return s
}

// ChunkSize returns the chunk-size option, defaulting to defaultChunkSize.
func (o Options) ChunkSize(defaultChunkSize int) int {
	return o.IntOr("chunk-size", defaultChunkSize)
}

// Direct reports the direct? option, defaulting to false.
func (o Options) Direct() bool {
	return o.BoolOr("direct?", false)
}

// Encoding returns the encoding option, defaulting to "utf-8".
func (o Options) Encoding() string {
	return o.StringOr("encoding", "utf-8")
}

// Append reports the append? option, defaulting to true (spec §3).
func (o Options) Append() bool {
	return o.BoolOr("append?", true)
}

// Logger returns a value stashed under the "logger" key by callers that
// want transfer pump diagnostics (see transfer.go), and whether one was
// set.
func (o Options) Logger() (any, bool) {
	return o.Get("logger")
}
