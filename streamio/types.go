// Package streamio provides the concrete Go types backing the streaming
// Kinds of the conversion fabric (input-stream, readable-channel,
// writable-channel, byte-buffer, direct-byte-buffer) and their
// byteconv.ByteSource/ByteSink/Closeable implementations (spec §4.F
// "Capability implementations").
package streamio

import (
	"bytes"
	"io"

	"github.com/machinefabric/byteconv-go"
)

// InputStream is the input-stream Kind: an io.Reader-backed ByteSource.
// TakeBytes loop-fills its buffer over short reads the way a network
// socket read would require, returning once n bytes have been read, the
// reader reports an error/EOF, or a Read call returns no bytes.
type InputStream struct {
	R io.Reader
}

// NewInputStream wraps r as an InputStream.
func NewInputStream(r io.Reader) *InputStream {
	return &InputStream{R: r}
}

func (s *InputStream) TakeBytes(n int, _ byteconv.Options) ([]byte, error) {
	buf := make([]byte, n)
	read := 0
	for read < n {
		k, err := s.R.Read(buf[read:])
		read += k
		if err != nil {
			if err == io.EOF {
				if read == 0 {
					return nil, io.EOF
				}
				return buf[:read], nil
			}
			return buf[:read], err
		}
		if k == 0 {
			break
		}
	}
	return buf[:read], nil
}

// Close releases the underlying reader if it is itself Closeable.
func (s *InputStream) Close() error {
	if c, ok := s.R.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Reader exposes the InputStream's underlying io.Reader for converters
// that need to hand it to a stdlib API (bufio.Scanner, etc.).
func (s *InputStream) Reader() io.Reader { return s.R }

// OutputStream is the ByteSink counterpart of InputStream, wrapping an
// io.Writer.
type OutputStream struct {
	W io.Writer
}

// NewOutputStream wraps w as an OutputStream.
func NewOutputStream(w io.Writer) *OutputStream {
	return &OutputStream{W: w}
}

func (s *OutputStream) SendBytes(data []byte, _ byteconv.Options) (int, error) {
	return s.W.Write(data)
}

func (s *OutputStream) Close() error {
	if c, ok := s.W.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// ByteBuffer is the byte-buffer Kind: an in-memory, growable buffer.
// TakeBytes slices a view rather than copying through an io.Reader loop,
// since the whole buffer is already resident.
type ByteBuffer struct {
	buf    *bytes.Buffer
	direct bool // set when constructed with direct? (spec §3 Options)
}

// NewByteBuffer wraps an existing *bytes.Buffer.
func NewByteBuffer(buf *bytes.Buffer) *ByteBuffer {
	return &ByteBuffer{buf: buf}
}

// NewDirectByteBuffer constructs an empty buffer flagged direct (spec §3
// direct? option) — this module has no real off-heap allocator, so
// "direct" is tracked purely as a flag a converter can branch on, matching
// the teacher's own pattern of tracking capability metadata without a
// backing implementation for concerns outside this module's scope.
func NewDirectByteBuffer() *ByteBuffer {
	return &ByteBuffer{buf: new(bytes.Buffer), direct: true}
}

// IsDirect reports whether this buffer was requested as direct.
func (b *ByteBuffer) IsDirect() bool { return b.direct }

// Bytes returns the buffer's contents without copying.
func (b *ByteBuffer) Bytes() []byte { return b.buf.Bytes() }

// Buffer exposes the underlying *bytes.Buffer.
func (b *ByteBuffer) Buffer() *bytes.Buffer { return b.buf }

func (b *ByteBuffer) TakeBytes(n int, _ byteconv.Options) ([]byte, error) {
	if b.buf.Len() == 0 {
		return nil, io.EOF
	}
	return b.buf.Next(n), nil
}

func (b *ByteBuffer) SendBytes(data []byte, _ byteconv.Options) (int, error) {
	return b.buf.Write(data)
}

// ReadableChannel is the readable-channel Kind: a <-chan []byte of chunks,
// optionally paired with an error channel for the producer's terminal
// error (nil on clean close).
type ReadableChannel struct {
	Chunks <-chan []byte
	Errs   <-chan error

	pending []byte
}

// NewReadableChannel wraps chunks (and, optionally, errs) as a
// ReadableChannel.
func NewReadableChannel(chunks <-chan []byte, errs <-chan error) *ReadableChannel {
	return &ReadableChannel{Chunks: chunks, Errs: errs}
}

// TakeBytes reads at most one producer chunk per pull (spec §4.F
// "channel-backed sources read once per pull"): it never blocks on the
// channel more than once to satisfy a call. Any part of a chunk beyond n is
// held over as pending and served first on the next call, so a caller
// requesting a smaller n than the producer's chunk size never loses bytes.
func (r *ReadableChannel) TakeBytes(n int, _ byteconv.Options) ([]byte, error) {
	if len(r.pending) == 0 {
		chunk, ok := <-r.Chunks
		if !ok {
			if r.Errs != nil {
				if err, ok := <-r.Errs; ok && err != nil {
					return nil, err
				}
			}
			return nil, io.EOF
		}
		r.pending = chunk
	}
	if len(r.pending) > n {
		out := r.pending[:n]
		r.pending = r.pending[n:]
		return out, nil
	}
	out := r.pending
	r.pending = nil
	return out, nil
}

// WritableChannel is the writable-channel Kind: a chan<- []byte sink.
type WritableChannel struct {
	Chunks chan<- []byte
}

// NewWritableChannel wraps chunks as a WritableChannel.
func NewWritableChannel(chunks chan<- []byte) *WritableChannel {
	return &WritableChannel{Chunks: chunks}
}

func (w *WritableChannel) SendBytes(data []byte, _ byteconv.Options) (int, error) {
	cp := make([]byte, len(data))
	copy(cp, data)
	w.Chunks <- cp
	return len(data), nil
}

func (w *WritableChannel) Close() error {
	close(w.Chunks)
	return nil
}
