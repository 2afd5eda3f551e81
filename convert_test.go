package byteconv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machinefabric/byteconv-go"
	_ "github.com/machinefabric/byteconv-go/builtin"
	"github.com/machinefabric/byteconv-go/streamio"
)

func TestConvertBytesToByteBufferAndBack(t *testing.T) {
	original := []byte("hello, fabric")

	buf, err := byteconv.ToByteBuffer(original, byteconv.NoOptions())
	require.NoError(t, err)

	back, err := byteconv.ToByteArray(buf, byteconv.NoOptions())
	require.NoError(t, err)
	assert.Equal(t, original, back)
}

func TestConvertStringRoundTrip(t *testing.T) {
	s := "round trip me"

	bytesOut, err := byteconv.Convert(s, byteconv.KindBytes, byteconv.NoOptions())
	require.NoError(t, err)
	assert.Equal(t, []byte(s), bytesOut)

	back, err := byteconv.Convert(bytesOut, byteconv.KindString, byteconv.NoOptions())
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestConvertShortestPathComposesThroughBuffer(t *testing.T) {
	// string -> bytes -> input-stream is the only registered route; Convert
	// should compose it automatically.
	out, err := byteconv.Convert("abc", byteconv.KindInputStream, byteconv.NoOptions())
	require.NoError(t, err)

	is, ok := out.(*streamio.InputStream)
	require.True(t, ok)

	data, err := is.TakeBytes(16, byteconv.NoOptions())
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}

func TestConvertUnreachableKindFails(t *testing.T) {
	_, err := byteconv.Convert(42, byteconv.Concrete("nonexistent-kind"), byteconv.NoOptions())
	require.Error(t, err)
	_, ok := err.(*byteconv.NoPathError)
	assert.True(t, ok, "expected *NoPathError, got %T", err)
}

func TestPossibleConversionsIncludesSelf(t *testing.T) {
	dests := byteconv.PossibleConversions(byteconv.KindBytes)
	found := false
	for _, k := range dests {
		if k.Equal(byteconv.KindBytes) {
			found = true
		}
	}
	assert.True(t, found, "PossibleConversions should include the source kind itself")
}

func TestConversionPathReportsRoute(t *testing.T) {
	path, err := byteconv.ConversionPath(byteconv.KindString, byteconv.KindInputStream)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(path), 2)
	assert.True(t, path[0].Equal(byteconv.KindString))
	assert.True(t, path[len(path)-1].Equal(byteconv.KindInputStream))
}

func TestManyByteBufferReducerIsNotALift(t *testing.T) {
	seq := byteconv.NewSliceSeq([]any{
		mustBuffer(t, []byte("foo")),
		mustBuffer(t, []byte("bar")),
	})

	out, err := byteconv.ConvertKind(seq, byteconv.Many(byteconv.KindByteBuffer), byteconv.KindByteBuffer, byteconv.NoOptions())
	require.NoError(t, err)

	buf := out.(*streamio.ByteBuffer)
	assert.Equal(t, []byte("foobar"), buf.Bytes())
}

func mustBuffer(t *testing.T, data []byte) *streamio.ByteBuffer {
	t.Helper()
	out, err := byteconv.ToByteBuffer(data, byteconv.NoOptions())
	require.NoError(t, err)
	return out.(*streamio.ByteBuffer)
}
