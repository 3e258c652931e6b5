// Package headers provides a raw-bytes storage container for HTTP header
// fields with typed access through header identities.
package headers

//go:generate errtrace -w .

import (
	"bytes"
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/httpwire/httphdr/header"
	"github.com/httpwire/httphdr/internal/ioutil"
)

// Headers maps lowercase field names to their raw field-values. The zero
// value is not usable, call [New]. Headers is not safe for concurrent use.
type Headers struct {
	m map[header.Name]header.RawFields
}

// New creates an empty Headers container.
func New() *Headers {
	return &Headers{m: make(map[header.Name]header.RawFields)}
}

// Len returns the number of distinct field names stored.
func (h *Headers) Len() int { return len(h.m) }

// Has reports whether any raw field-values are stored under name.
func (h *Headers) Has(name header.Name) bool {
	_, ok := h.m[name.Key()]
	return ok
}

// GetRaw returns the raw field-values stored under name, nil if none.
func (h *Headers) GetRaw(name header.Name) header.RawFields {
	return h.m[name.Key()]
}

// SetRaw replaces the raw field-values stored under name.
func (h *Headers) SetRaw(name header.Name, raw header.RawFields) {
	h.m[name.Key()] = raw
}

// AddRaw appends one raw field-value under name, keeping earlier ones.
func (h *Headers) AddRaw(name header.Name, field []byte) {
	key := name.Key()
	h.m[key] = append(h.m[key], field)
}

// DelRaw removes all field-values stored under name.
func (h *Headers) DelRaw(name header.Name) {
	delete(h.m, name.Key())
}

// Names returns the stored field names in sorted order.
func (h *Headers) Names() []header.Name {
	names := make([]header.Name, 0, len(h.m))
	for name := range h.m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// RenderTo writes all stored fields as "Canonic-Name: value" lines
// terminated by CRLF, in sorted name order. Raw bytes are written as stored;
// canonicalization happens at [Set] time, not here.
func (h *Headers) RenderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for _, name := range h.Names() {
		for _, field := range h.m[name] {
			cw.Fprint(name.ToCanonic(), ": ")
			cw.Write(field) //nolint:errcheck
			cw.WriteString("\r\n")
		}
	}
	return errtrace.Wrap2(cw.Result())
}

// Clone returns a deep copy of the container.
func (h *Headers) Clone() *Headers {
	h2 := &Headers{m: make(map[header.Name]header.RawFields, len(h.m))}
	for name, raw := range h.m {
		h2.m[name] = raw.Clone()
	}
	return h2
}

// Get decodes the value stored under the identity's name. The second result
// is false when nothing is stored or the raw bytes do not form a valid
// instance of the value type.
func Get[H header.Header](h *Headers, id header.Identity[H]) (H, bool) {
	return id.Parse(h.GetRaw(id.Name()))
}

// Set encodes hdr to its canonical bytes and stores them as the single
// field-value under the identity's name. Whatever representation a value
// was decoded from, the stored bytes are canonical: re-encoding is lossy by
// design.
func Set[H header.Header](h *Headers, id header.Identity[H], hdr H) error {
	var buf bytes.Buffer
	if _, err := hdr.RenderValueTo(&buf); err != nil {
		return errtrace.Wrap(err)
	}
	h.SetRaw(id.Name(), header.RawFields{buf.Bytes()})
	return nil
}

// Del removes the fields stored under the identity's name.
func Del[H header.Header](h *Headers, id header.Identity[H]) {
	h.DelRaw(id.Name())
}
