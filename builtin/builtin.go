// Package builtin installs the seed converter table (spec §4.F) into
// byteconv's DefaultRegistry: the bytes/byte-buffer/input-stream/
// readable-channel/writable-channel/string/reader/char-sequence/file
// lattice every other Kind in this module ultimately round-trips through.
//
// Importing this package for its side effect is how a program opts into
// the seed table — mirroring the teacher's standard_caps.go pattern of a
// bundled registration installed once, at package init, rather than
// constructed per call.
package builtin

import (
	"bytes"
	"fmt"
	"io"

	"github.com/machinefabric/byteconv-go"
	"github.com/machinefabric/byteconv-go/streamio"
)

func init() {
	registerKindRecognizers()
	registerCapabilities()
	registerBufferConversions()
	registerStreamConversions()
	registerChannelConversions()
	registerTextConversions()
	registerFileConversions()
}

func registerKindRecognizers() {
	byteconv.RegisterKindOf(func(v any) (byteconv.Kind, bool) {
		switch vv := v.(type) {
		case []byte:
			return byteconv.KindBytes, true
		case string:
			return byteconv.KindString, true
		case streamio.CharSequence:
			return byteconv.KindCharSequence, true
		case *streamio.ByteBuffer:
			if vv.IsDirect() {
				return byteconv.KindDirectByteBuffer, true
			}
			return byteconv.KindByteBuffer, true
		case *streamio.InputStream:
			return byteconv.KindInputStream, true
		case *streamio.Reader:
			return byteconv.KindReader, true
		case *streamio.ReadableChannel:
			return byteconv.KindReadableChan, true
		case *streamio.WritableChannel:
			return byteconv.KindWritableChan, true
		case *fileWritableChannel:
			return byteconv.KindWritableChan, true
		case *streamio.File:
			return byteconv.KindFile, true
		}
		return byteconv.Kind{}, false
	})
}

func registerCapabilities() {
	byteconv.RegisterCapability(byteconv.CapByteSource, byteconv.KindByteBuffer)
	byteconv.RegisterCapability(byteconv.CapByteSource, byteconv.KindDirectByteBuffer)
	byteconv.RegisterCapability(byteconv.CapByteSource, byteconv.KindInputStream)
	byteconv.RegisterCapability(byteconv.CapByteSource, byteconv.KindReadableChan)

	byteconv.RegisterCapability(byteconv.CapByteSink, byteconv.KindByteBuffer)
	byteconv.RegisterCapability(byteconv.CapByteSink, byteconv.KindDirectByteBuffer)
	byteconv.RegisterCapability(byteconv.CapByteSink, byteconv.KindWritableChan)

	byteconv.RegisterCapability(byteconv.CapCloseable, byteconv.KindInputStream)
	byteconv.RegisterCapability(byteconv.CapCloseable, byteconv.KindWritableChan)
}

// registerBufferConversions wires bytes<->byte-buffer<->direct-byte-buffer
// and bytes->input-stream (spec §4.F).
func registerBufferConversions() {
	byteconv.RegisterConversion(byteconv.KindBytes, byteconv.KindByteBuffer, func(v any, _ byteconv.Options) (any, error) {
		return streamio.NewByteBuffer(bytes.NewBuffer(v.([]byte))), nil
	})
	byteconv.RegisterConversion(byteconv.KindByteBuffer, byteconv.KindBytes, func(v any, _ byteconv.Options) (any, error) {
		return append([]byte(nil), v.(*streamio.ByteBuffer).Bytes()...), nil
	})
	byteconv.RegisterConversion(byteconv.KindByteBuffer, byteconv.KindDirectByteBuffer, func(v any, _ byteconv.Options) (any, error) {
		src := v.(*streamio.ByteBuffer)
		direct := streamio.NewDirectByteBuffer()
		direct.Buffer().Write(src.Bytes())
		return direct, nil
	})
	byteconv.RegisterConversion(byteconv.KindDirectByteBuffer, byteconv.KindByteBuffer, func(v any, _ byteconv.Options) (any, error) {
		src := v.(*streamio.ByteBuffer)
		return streamio.NewByteBuffer(bytes.NewBuffer(src.Bytes())), nil
	})
	byteconv.RegisterConversion(byteconv.KindBytes, byteconv.KindInputStream, func(v any, _ byteconv.Options) (any, error) {
		return streamio.NewInputStream(bytes.NewReader(v.([]byte))), nil
	})

	// Many(byte-buffer)->byte-buffer is a reducer, not a lift: it drains
	// the whole lazy sequence and concatenates it into one buffer (spec
	// §4.F "reducer, not a lift" — distinguishing it from the implicit
	// element-wise Many lifting every other direct edge gets for free).
	byteconv.RegisterConversion(byteconv.Many(byteconv.KindByteBuffer), byteconv.KindByteBuffer, func(v any, _ byteconv.Options) (any, error) {
		seq := v.(byteconv.Seq)
		out := streamio.NewByteBuffer(new(bytes.Buffer))
		for {
			elem, err := seq.Next()
			if err == io.EOF {
				return out, nil
			}
			if err != nil {
				return nil, err
			}
			buf, ok := elem.(*streamio.ByteBuffer)
			if !ok {
				return nil, &byteconv.InvariantError{Src: byteconv.Many(byteconv.KindByteBuffer), Dst: byteconv.KindByteBuffer}
			}
			out.Buffer().Write(buf.Bytes())
		}
	})
}

// registerStreamConversions wires readable-channel<->input-stream and
// input-stream->reader (spec §4.F).
func registerStreamConversions() {
	byteconv.RegisterConversion(byteconv.KindReadableChan, byteconv.KindInputStream, func(v any, _ byteconv.Options) (any, error) {
		rc := v.(*streamio.ReadableChannel)
		return streamio.NewInputStream(&channelReader{rc: rc}), nil
	})
	byteconv.RegisterConversion(byteconv.KindInputStream, byteconv.KindReadableChan, func(v any, opts byteconv.Options) (any, error) {
		is := v.(*streamio.InputStream)
		chunkSize := opts.ChunkSize(4096)
		return spawnChunkProducer(is.Reader(), chunkSize, nil), nil
	})
	byteconv.RegisterConversion(byteconv.KindInputStream, byteconv.KindReader, func(v any, _ byteconv.Options) (any, error) {
		is := v.(*streamio.InputStream)
		return streamio.NewReader(is.Reader()), nil
	})
}

// channelReader adapts a *streamio.ReadableChannel into an io.Reader by
// pulling synchronously on each Read call — no background goroutine is
// needed in this direction since the channel is only ever drained by the
// caller's own Read.
type channelReader struct {
	rc      *streamio.ReadableChannel
	pending []byte
}

func (c *channelReader) Read(p []byte) (int, error) {
	if len(c.pending) == 0 {
		chunk, err := c.rc.TakeBytes(len(p), byteconv.NoOptions())
		if err != nil {
			return 0, err
		}
		c.pending = chunk
	}
	n := copy(p, c.pending)
	c.pending = c.pending[n:]
	return n, nil
}

// spawnChunkProducer starts a background producer goroutine reading
// chunkSize-sized chunks from r and pushing them onto a channel until r is
// exhausted or errors. owned, when non-nil, is a resource the calling
// converter opened itself; the producer closes it when it stops.
func spawnChunkProducer(r io.Reader, chunkSize int, owned io.Closer) *streamio.ReadableChannel {
	chunks := make(chan []byte)
	errs := make(chan error, 1)
	go func() {
		defer close(chunks)
		defer close(errs)
		if owned != nil {
			defer owned.Close()
		}
		for {
			buf := make([]byte, chunkSize)
			n, err := r.Read(buf)
			if n > 0 {
				chunks <- buf[:n]
			}
			if err != nil {
				if err != io.EOF {
					errs <- err
				}
				return
			}
		}
	}()
	return streamio.NewReadableChannel(chunks, errs)
}

// registerChannelConversions wires readable-channel->Many(byte-buffer)
// (lazy) and Many(byte-buffer)->readable-channel (pipe + background
// producer, spec §4.F).
func registerChannelConversions() {
	byteconv.RegisterConversion(byteconv.KindReadableChan, byteconv.Many(byteconv.KindByteBuffer), func(v any, opts byteconv.Options) (any, error) {
		rc := v.(*streamio.ReadableChannel)
		chunkSize := opts.ChunkSize(4096)
		return &readableChannelSeq{rc: rc, chunkSize: chunkSize}, nil
	})
	byteconv.RegisterConversion(byteconv.Many(byteconv.KindByteBuffer), byteconv.KindReadableChan, func(v any, opts byteconv.Options) (any, error) {
		seq := v.(byteconv.Seq)
		chunks := make(chan []byte)
		errs := make(chan error, 1)
		go func() {
			defer close(chunks)
			defer close(errs)
			for {
				elem, err := seq.Next()
				if err == io.EOF {
					return
				}
				if err != nil {
					errs <- err
					return
				}
				buf, ok := elem.(*streamio.ByteBuffer)
				if !ok {
					errs <- &byteconv.InvariantError{Src: byteconv.Many(byteconv.KindByteBuffer), Dst: byteconv.KindReadableChan}
					return
				}
				chunks <- append([]byte(nil), buf.Bytes()...)
			}
		}()
		return streamio.NewReadableChannel(chunks, errs), nil
	})
}

// readableChannelSeq lazily pulls chunks from a ReadableChannel, one per
// Next() call, each wrapped as a *streamio.ByteBuffer (spec §4.F
// "readable-channel->Many(byte-buffer) (lazy)").
type readableChannelSeq struct {
	rc        *streamio.ReadableChannel
	chunkSize int
}

func (s *readableChannelSeq) Next() (any, error) {
	chunk, err := s.rc.TakeBytes(s.chunkSize, byteconv.NoOptions())
	if err != nil {
		return nil, err
	}
	return streamio.NewByteBuffer(bytes.NewBuffer(chunk)), nil
}

// registerTextConversions wires string<->bytes, byte-buffer->char-sequence
// (enabling the implicit Many lift used by ToLineSeq), and
// reader->char-sequence->string (spec §4.F).
func registerTextConversions() {
	byteconv.RegisterConversion(byteconv.KindString, byteconv.KindBytes, func(v any, opts byteconv.Options) (any, error) {
		if err := requireUTF8(opts); err != nil {
			return nil, err
		}
		return []byte(v.(string)), nil
	})
	byteconv.RegisterConversion(byteconv.KindBytes, byteconv.KindString, func(v any, opts byteconv.Options) (any, error) {
		if err := requireUTF8(opts); err != nil {
			return nil, err
		}
		return string(v.([]byte)), nil
	})
	byteconv.RegisterConversion(byteconv.KindByteBuffer, byteconv.KindCharSequence, func(v any, opts byteconv.Options) (any, error) {
		if err := requireUTF8(opts); err != nil {
			return nil, err
		}
		return streamio.CharSequence(v.(*streamio.ByteBuffer).Bytes()), nil
	})
	byteconv.RegisterConversion(byteconv.KindReader, byteconv.KindCharSequence, func(v any, _ byteconv.Options) (any, error) {
		return v.(*streamio.Reader).ReadAll()
	})
	byteconv.RegisterConversion(byteconv.KindCharSequence, byteconv.KindString, func(v any, _ byteconv.Options) (any, error) {
		return v.(streamio.CharSequence).String(), nil
	})
}

// requireUTF8 enforces the module's one supported encoding (spec §1 "not
// defined; the core delegates to platform-provided implementations" —
// Go's native string/[]byte conversion is that platform-provided
// implementation, and it is UTF-8).
func requireUTF8(opts byteconv.Options) error {
	enc := opts.Encoding()
	if enc != "utf-8" && enc != "UTF-8" && enc != "" {
		return &byteconv.EncodingError{Encoding: enc, Message: "unsupported encoding"}
	}
	return nil
}

// registerFileConversions wires file->readable-channel and
// file->writable-channel (spec §4.F).
func registerFileConversions() {
	byteconv.RegisterConversion(byteconv.KindFile, byteconv.KindReadableChan, func(v any, opts byteconv.Options) (any, error) {
		f := v.(*streamio.File)
		handle, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", f.Path, err)
		}
		chunkSize := opts.ChunkSize(4096)
		rc := spawnChunkProducer(handle, chunkSize, handle)
		return rc, nil
	})
	byteconv.RegisterConversion(byteconv.KindFile, byteconv.KindWritableChan, func(v any, opts byteconv.Options) (any, error) {
		f := v.(*streamio.File)
		handle, err := f.Create(opts)
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", f.Path, err)
		}
		chunks := make(chan []byte)
		done := make(chan struct{})
		go func() {
			defer close(done)
			defer handle.Close()
			for chunk := range chunks {
				if _, err := handle.Write(chunk); err != nil {
					return
				}
			}
		}()
		return &fileWritableChannel{WritableChannel: streamio.NewWritableChannel(chunks), done: done}, nil
	})
}

// fileWritableChannel overrides WritableChannel's Close to wait for the
// file-writer goroutine to drain the channel and close the file, so a
// caller that closes the sink can safely read the file back immediately
// afterward.
type fileWritableChannel struct {
	*streamio.WritableChannel
	done chan struct{}
}

func (f *fileWritableChannel) Close() error {
	err := f.WritableChannel.Close()
	<-f.done
	return err
}
