// Package blob adds remote and local blob-storage Kinds (S3Object,
// RedisKey, LocalFile) implementing ByteSource/ByteSink/Closeable,
// grounded in the storage/cache client stack used elsewhere in the
// corpus (SPEC_FULL.md PART III "Blob store kinds").
package blob

import "strings"

// extensionKinds is the trimmed media-type-by-extension table (see
// DESIGN.md "blob/"): json and yaml only; byteconv/codec's third format,
// cbor, has no extension entry.
var extensionKinds = map[string]string{
	".json": "json-value",
	".yaml": "yaml-value",
	".yml":  "yaml-value",
}

// DetectKindFromExtension returns the codec Kind name (matching
// codec.KindJSON/KindYAML's String() form) associated with path's
// extension, if recognized.
func DetectKindFromExtension(path string) (string, bool) {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 {
		return "", false
	}
	kind, ok := extensionKinds[strings.ToLower(path[idx:])]
	return kind, ok
}
