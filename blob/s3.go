package blob

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"

	"github.com/machinefabric/byteconv-go"
)

// S3Object is the S3Object Kind: a bucket+key addressed object on any
// S3-compatible store, accessed via github.com/minio/minio-go/v7 (the
// representative S3-compatible client for this module — see DESIGN.md).
type S3Object struct {
	Client *minio.Client
	Bucket string
	Key    string

	reader  io.ReadCloser
	pending *s3PendingPut
}

// NewS3Object names an object without fetching it.
func NewS3Object(client *minio.Client, bucket, key string) *S3Object {
	return &S3Object{Client: client, Bucket: bucket, Key: key}
}

var KindS3Object = byteconv.Concrete("s3-object")

func init() {
	byteconv.RegisterKindOf(func(v any) (byteconv.Kind, bool) {
		if _, ok := v.(*S3Object); ok {
			return KindS3Object, true
		}
		return byteconv.Kind{}, false
	})
	byteconv.RegisterCapability(byteconv.CapByteSource, KindS3Object)
	byteconv.RegisterCapability(byteconv.CapByteSink, KindS3Object)
	byteconv.RegisterCapability(byteconv.CapCloseable, KindS3Object)

	byteconv.RegisterConversion(KindS3Object, byteconv.KindBytes, func(v any, _ byteconv.Options) (any, error) {
		obj := v.(*S3Object)
		out, err := obj.Client.GetObject(context.Background(), obj.Bucket, obj.Key, minio.GetObjectOptions{})
		if err != nil {
			return nil, err
		}
		defer out.Close()
		return io.ReadAll(out)
	})
	// No bytes->S3Object conversion is registered (nor bytes->RedisKey or
	// bytes->LocalFile): an S3Object's identity (bucket, key, client) cannot be derived from a
	// []byte alone, so constructing one is only ever done explicitly via
	// NewS3Object, then written to via the ByteSink capability below.
}

// TakeBytes implements byteconv.ByteSource by opening (once, lazily) a
// streaming GetObject reader and loop-filling like an input-stream (spec
// §4.F "io.Reader-backed sources loop-fill").
func (o *S3Object) TakeBytes(n int, _ byteconv.Options) ([]byte, error) {
	if o.reader == nil {
		obj, err := o.Client.GetObject(context.Background(), o.Bucket, o.Key, minio.GetObjectOptions{})
		if err != nil {
			return nil, err
		}
		o.reader = obj
	}
	buf := make([]byte, n)
	read := 0
	for read < n {
		k, err := o.reader.Read(buf[read:])
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

// s3PendingPut buffers SendBytes calls in memory and performs a single
// PutObject on Close: S3 has no append API, so a streaming ByteSink has to
// either use multipart upload or buffer-then-put; this module chooses the
// simpler buffer-then-put since objects produced by this fabric are not
// expected to exceed memory (spec non-goals exclude buffer-pool policy
// tuning for this module).
type s3PendingPut struct {
	buf bytes.Buffer
}

func (o *S3Object) SendBytes(data []byte, _ byteconv.Options) (int, error) {
	if o.pending == nil {
		o.pending = &s3PendingPut{}
	}
	return o.pending.buf.Write(data)
}

func (o *S3Object) Close() error {
	if o.reader != nil {
		_ = o.reader.Close()
		o.reader = nil
	}
	if o.pending != nil {
		data := o.pending.buf.Bytes()
		o.pending = nil
		_, err := o.Client.PutObject(context.Background(), o.Bucket, o.Key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
		return err
	}
	return nil
}
