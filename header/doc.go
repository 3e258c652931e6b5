// Package header implements typed codecs for HTTP header field values that
// carry timestamps or delta-seconds.
//
// Each value type decodes from the raw field-values stored under one header
// name and re-encodes to a single canonical representation. Decoding never
// fails with an error: malformed input simply yields no value. Encoding
// writes canonical bytes to an io.Writer and fails only on a sink I/O error.
package header
