package blob

import (
	"io"
	"os"

	"github.com/machinefabric/byteconv-go"
)

// LocalFile is the local-file Kind: a named local file accessed as a
// whole-object ByteSource/ByteSink, distinct from the core file Kind
// (builtin package) which only ever produces a readable-channel or
// writable-channel — LocalFile instead implements the streaming
// capabilities directly, the way S3Object/RedisKey do, so the three blob
// Kinds share one DetectKindFromExtension convenience and one generic
// pump path without routing local files through a channel.
type LocalFile struct {
	Path string

	file *os.File
}

// NewLocalFile names path without opening it.
func NewLocalFile(path string) *LocalFile {
	return &LocalFile{Path: path}
}

var KindLocalFile = byteconv.Concrete("local-file")

func init() {
	byteconv.RegisterKindOf(func(v any) (byteconv.Kind, bool) {
		if _, ok := v.(*LocalFile); ok {
			return KindLocalFile, true
		}
		return byteconv.Kind{}, false
	})
	byteconv.RegisterCapability(byteconv.CapByteSource, KindLocalFile)
	byteconv.RegisterCapability(byteconv.CapByteSink, KindLocalFile)
	byteconv.RegisterCapability(byteconv.CapCloseable, KindLocalFile)

	byteconv.RegisterConversion(KindLocalFile, byteconv.KindBytes, func(v any, _ byteconv.Options) (any, error) {
		return os.ReadFile(v.(*LocalFile).Path)
	})
}

func (f *LocalFile) ensureOpenForRead() error {
	if f.file != nil {
		return nil
	}
	handle, err := os.Open(f.Path)
	if err != nil {
		return err
	}
	f.file = handle
	return nil
}

func (f *LocalFile) ensureOpenForWrite(opts byteconv.Options) error {
	if f.file != nil {
		return nil
	}
	flags := os.O_CREATE | os.O_WRONLY
	if opts.Append() {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	handle, err := os.OpenFile(f.Path, flags, 0o644)
	if err != nil {
		return err
	}
	f.file = handle
	return nil
}

func (f *LocalFile) TakeBytes(n int, _ byteconv.Options) ([]byte, error) {
	if err := f.ensureOpenForRead(); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(f.file, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	if read == 0 {
		return nil, io.EOF
	}
	var retErr error
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		retErr = nil // short final read is not itself an error; next call reports io.EOF
	}
	return buf[:read], retErr
}

func (f *LocalFile) SendBytes(data []byte, opts byteconv.Options) (int, error) {
	if err := f.ensureOpenForWrite(opts); err != nil {
		return 0, err
	}
	return f.file.Write(data)
}

func (f *LocalFile) Close() error {
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}
