package byteconv

import "reflect"

// defaultPlanner plans routes over DefaultRegistry; rebuilt (via
// resetDefaultPlanner) whenever a new conversion edge is registered, since
// an added edge can shorten or create paths the memoization cache would
// otherwise keep reporting as absent.
var defaultPlanner = NewPlanner(DefaultRegistry)

var defaultDriver = NewDriver(DefaultRegistry)

// RegisterConversion adds a direct conversion edge to DefaultRegistry. It
// is meant to be called from package init functions (builtin, codec,
// framed, blob); call it directly only when extending the fabric with a
// converter of your own.
func RegisterConversion(src, dst Kind, fn ConverterFunc) {
	DefaultRegistry.RegisterConversion(src, dst, fn)
	resetDefaultPlanner()
}

// RegisterConversionSchema is RegisterConversion plus a mandatory JSON
// Schema for the converter's Options (spec PART II Configuration).
func RegisterConversionSchema(src, dst Kind, fn ConverterFunc, schemaJSON string) {
	DefaultRegistry.RegisterConversionSchema(src, dst, fn, schemaJSON)
	resetDefaultPlanner()
}

// RegisterTransfer adds a specialized transfer edge to DefaultRegistry.
func RegisterTransfer(src, dst Kind, fn TransferFunc) {
	DefaultRegistry.RegisterTransfer(src, dst, fn)
}

func resetDefaultPlanner() {
	defaultPlanner = NewPlanner(DefaultRegistry)
}

// Convert produces a value of kind dst equivalent to value, composing
// intermediate conversions as needed (spec §6). dst may be a concrete
// Kind, a capability Kind, or a Many(·) lifting of either.
func Convert(value any, dst Kind, opts Options) (any, error) {
	src := KindOf(value)
	plan, err := defaultPlanner.FindPath(src, dst)
	if err != nil {
		return nil, err
	}
	return defaultDriver.Apply(plan, adaptSeqSource(value, src), opts)
}

// ConvertKind is like Convert but takes an explicit source Kind instead of
// inferring it from value via KindOf — use it when the caller already
// knows value's Kind more precisely than KindOf could (e.g. a capability
// Kind the value happens to satisfy, to search from that Kind's edges
// rather than its exact concrete Kind).
func ConvertKind(value any, src, dst Kind, opts Options) (any, error) {
	plan, err := defaultPlanner.FindPath(src, dst)
	if err != nil {
		return nil, err
	}
	return defaultDriver.Apply(plan, adaptSeqSource(value, src), opts)
}

// adaptSeqSource bridges KindOf's reporting convention to the driver's
// runtime expectations: kind_of(value) reports Many(...) for a
// materialized []T without changing value's representation (spec §4.A),
// but every Many step the driver executes needs a Seq to pull from. A
// value that is already a Seq (or whose src isn't Many at all) passes
// through unchanged; a plain slice is wrapped in a SliceSeq.
func adaptSeqSource(value any, src Kind) any {
	if _, isMany := src.IsMany(); !isMany {
		return value
	}
	if _, ok := value.(Seq); ok {
		return value
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return value
	}
	elems := make([]any, rv.Len())
	for i := range elems {
		elems[i] = rv.Index(i).Interface()
	}
	return NewSliceSeq(elems)
}

// ConversionPath returns the sequence of Kinds Convert(value, dst, ...)
// would route through, without performing the conversion.
func ConversionPath(src, dst Kind) ([]Kind, error) {
	plan, err := defaultPlanner.FindPath(src, dst)
	if err != nil {
		return nil, err
	}
	return plan.Steps, nil
}

// PossibleConversions returns every Kind reachable from src by zero or
// more registered edges (including src itself), computed by exhausting
// the planner's neighbor function over the reachable set.
func PossibleConversions(src Kind) []Kind {
	visited := map[string]Kind{src.String(): src}
	queue := []Kind{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range defaultPlanner.neighbors(cur) {
			if _, ok := visited[next.String()]; ok {
				continue
			}
			visited[next.String()] = next
			queue = append(queue, next)
		}
	}
	out := make([]Kind, 0, len(visited))
	for _, k := range visited {
		out = append(out, k)
	}
	return out
}

// Transfer moves bulk bytes from src to dst using DefaultRegistry's
// specialized transfer edges, falling back to the generic pump (spec
// §4.E).
func Transfer(src, dst any, opts Options) (int64, error) {
	return DefaultRegistry.Transfer(src, dst, opts)
}

// Convenience destination Kinds for the built-in seed converters (spec
// §4.F); kept here rather than in builtin/ so callers can reference
// ToByteBuffer etc. without importing builtin directly when they only
// need the Kind, not its registration side effects.
var (
	KindBytes             = Concrete("bytes")
	KindByteBuffer        = Concrete("byte-buffer")
	KindDirectByteBuffer  = Concrete("direct-byte-buffer")
	KindInputStream       = Concrete("input-stream")
	KindReader            = Concrete("reader")
	KindReadableChan      = Concrete("readable-channel")
	KindWritableChan      = Concrete("writable-channel")
	KindCharSequence      = Concrete("char-sequence")
	KindString            = Concrete("string")
	KindFile              = Concrete("file")
	KindByteSourceCap     = CapabilityKind(CapByteSource)
	KindByteSinkCap       = CapabilityKind(CapByteSink)
	KindCloseableCap      = CapabilityKind(CapCloseable)
)

// ToByteBuffer converts value to the byte-buffer Kind.
func ToByteBuffer(value any, opts Options) (any, error) {
	return Convert(value, KindByteBuffer, opts)
}

// ToByteArray converts value to the bytes Kind.
func ToByteArray(value any, opts Options) (any, error) {
	return Convert(value, KindBytes, opts)
}

// ToInputStream converts value to the input-stream Kind.
func ToInputStream(value any, opts Options) (any, error) {
	return Convert(value, KindInputStream, opts)
}

// ToReadableChannel converts value to the readable-channel Kind.
func ToReadableChannel(value any, opts Options) (any, error) {
	return Convert(value, KindReadableChan, opts)
}

// ToByteSource converts value to any Kind implementing the byte-source
// capability.
func ToByteSource(value any, opts Options) (any, error) {
	return Convert(value, KindByteSourceCap, opts)
}

// ToByteSink converts value to any Kind implementing the byte-sink
// capability.
func ToByteSink(value any, opts Options) (any, error) {
	return Convert(value, KindByteSinkCap, opts)
}

// ToLineSeq converts value to Many(char-sequence) through the conversion
// graph: a lazy sequence holding the char-sequence form of each chunk the
// route produces (for example one element per chunk of up to chunk-size
// bytes pulled from a readable channel). Elements are not split at
// newlines, so one element can hold several lines or part of a line.
func ToLineSeq(value any, opts Options) (any, error) {
	return Convert(value, Many(KindCharSequence), opts)
}
