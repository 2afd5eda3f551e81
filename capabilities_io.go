package byteconv

// ByteSource and ByteSink are the two capabilities the generic transfer
// pump is built on (spec §4.E). They mirror io.Reader/io.Writer's calling
// convention deliberately — most adapters in streamio/, framed/ and blob/
// wrap an io.Reader/io.Writer under the hood — but are kept as their own
// interfaces because not every ByteSource/ByteSink in this module is
// backed by one (e.g. a channel-backed source).
type ByteSource interface {
	// TakeBytes returns up to n bytes. It returns a non-nil, possibly
	// short, slice with err == nil while data remains; once the
	// underlying source is exhausted it may return a final short (or
	// empty) slice together with io.EOF, or an empty slice and io.EOF on
	// the following call — callers must be prepared for either (spec §9
	// "two-stage EOF").
	TakeBytes(n int, opts Options) ([]byte, error)
}

// ByteSink is the push side of the transfer pump.
type ByteSink interface {
	// SendBytes writes all of data, returning the number of bytes
	// accepted. A short write without an error is never valid: SendBytes
	// either consumes all of data or returns an error.
	SendBytes(data []byte, opts Options) (int, error)
}

// Closeable is implemented by any Kind that holds an underlying resource
// (file descriptor, network connection, goroutine) that must be released.
// Convert never closes a value the caller passed in (spec §9). Transfer
// closes its source and sink, when they implement Closeable, once it
// finishes.
type Closeable interface {
	Close() error
}

// Capability names used when registering concrete Kinds with
// RegisterCapability, shared across builtin/, framed/, blob/.
const (
	CapByteSource = "byte-source"
	CapByteSink   = "byte-sink"
	CapCloseable  = "closeable"
)
