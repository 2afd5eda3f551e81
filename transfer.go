package byteconv

import (
	"io"

	kitlog "github.com/go-kit/log"
)

const defaultTransferChunkSize = 1024

// Transfer moves bulk bytes from src to dst (spec §4.E): a specialized
// registered transfer edge is tried first; if none is registered for the
// exact (kind_of(src), kind_of(dst)) pair, src is converted to the
// ByteSource capability and dst to ByteSink — a no-op when they already
// satisfy those capabilities directly — and the generic pump runs over the
// results. It returns the number of bytes moved.
func (r *Registry) Transfer(src, dst any, opts Options) (int64, error) {
	srcKind := KindOf(src)
	dstKind := KindOf(dst)

	if fn, ok := r.findTransfer(srcKind, dstKind); ok {
		return fn(src, dst, opts)
	}

	source, err := asByteSource(src, opts)
	if err != nil {
		return 0, &NoTransferError{Src: srcKind, Dst: dstKind}
	}
	sink, err := asByteSink(dst, opts)
	if err != nil {
		return 0, &NoTransferError{Src: srcKind, Dst: dstKind}
	}
	return pump(source, sink, opts)
}

// asByteSource returns src as a ByteSource: itself, if it already
// implements the capability directly, otherwise the result of converting
// it to the ByteSource capability Kind (spec §4.E step 3 "if src can be
// converted to ByteSource").
func asByteSource(src any, opts Options) (ByteSource, error) {
	if source, ok := src.(ByteSource); ok {
		return source, nil
	}
	converted, err := Convert(src, KindByteSourceCap, opts)
	if err != nil {
		return nil, err
	}
	source, ok := converted.(ByteSource)
	if !ok {
		return nil, &InvariantError{Src: KindOf(src), Dst: KindByteSourceCap}
	}
	return source, nil
}

// asByteSink is asByteSource's ByteSink counterpart.
func asByteSink(dst any, opts Options) (ByteSink, error) {
	if sink, ok := dst.(ByteSink); ok {
		return sink, nil
	}
	converted, err := Convert(dst, KindByteSinkCap, opts)
	if err != nil {
		return nil, err
	}
	sink, ok := converted.(ByteSink)
	if !ok {
		return nil, &InvariantError{Src: KindOf(dst), Dst: KindByteSinkCap}
	}
	return sink, nil
}

// pump is the generic fallback transfer (spec §4.E step 3): repeatedly
// take_bytes from source and send_bytes to sink until the source reports
// end-of-data. It closes whichever of source/sink implement Closeable when
// it finishes, both on normal completion and when it stops at the first
// error from either side, which it then returns.
func pump(source ByteSource, sink ByteSink, opts Options) (int64, error) {
	logger := optsLogger(opts)
	chunkSize := opts.ChunkSize(defaultTransferChunkSize)
	if chunkSize <= 0 {
		chunkSize = defaultTransferChunkSize
	}

	var total int64
	for {
		chunk, err := source.TakeBytes(chunkSize, opts)
		if len(chunk) > 0 {
			n, sendErr := sink.SendBytes(chunk, opts)
			total += int64(n)
			if sendErr != nil {
				logger.Log("msg", "transfer pump: send failed", "bytes_moved", total, "err", sendErr)
				closeIfCloseable(source)
				closeIfCloseable(sink)
				return total, sendErr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Log("msg", "transfer pump: take failed", "bytes_moved", total, "err", err)
			closeIfCloseable(source)
			closeIfCloseable(sink)
			return total, err
		}
		if len(chunk) == 0 {
			break
		}
	}

	closeIfCloseable(source)
	closeIfCloseable(sink)
	logger.Log("msg", "transfer pump complete", "bytes_moved", total)
	return total, nil
}

func closeIfCloseable(v any) {
	if c, ok := v.(Closeable); ok {
		_ = c.Close()
	}
}

// optsLogger extracts a go-kit logger stashed under the "logger" Options
// key, falling back to a no-op logger so transfer.go never has to branch
// on whether one was configured (spec's Options are caller-optional;
// logging is an ambient concern, not part of the conversion semantics).
func optsLogger(opts Options) kitlog.Logger {
	if v, ok := opts.Logger(); ok {
		if l, ok := v.(kitlog.Logger); ok {
			return l
		}
	}
	return kitlog.NewNopLogger()
}
