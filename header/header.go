package header

//go:generate errtrace -w .

import (
	"encoding/json"
	"fmt"
	"io"
	"net/textproto"

	"braces.dev/errtrace"

	"github.com/httpwire/httphdr/internal/errorutil"
	"github.com/httpwire/httphdr/internal/util"
)

// Header represents a typed HTTP header field value.
type Header interface {
	// CanonicName returns the primary canonical field name of the value type.
	// A value type shared by several field names (e.g. Date serving
	// Last-Modified) is stored under the name of its [Identity] instead.
	CanonicName() Name
	// RenderTo writes the full "Name: value" line to w.
	RenderTo(w io.Writer) (num int, err error)
	// RenderValueTo writes the canonical value bytes to w.
	// It fails only with an I/O error reported by w.
	RenderValueTo(w io.Writer) (num int, err error)
	// RenderValue returns the canonical value as a string.
	RenderValue() string
	// Clone returns a copy of the header value.
	Clone() Header
	// Equal compares this value with another for equality.
	Equal(val any) bool
	// IsValid checks whether the value can be rendered to a valid field value.
	IsValid() bool
}

// RawFields is the ordered sequence of raw field-values received for one
// header name. It may be empty, a singleton, or multi-valued when the name
// occurred several times.
type RawFields [][]byte

// Single returns the one field-value iff raw contains exactly one element.
// Every strict codec applies this check before interpreting bytes: any other
// cardinality means the header has no decodable value.
func (raw RawFields) Single() ([]byte, bool) {
	if len(raw) != 1 {
		return nil, false
	}
	return raw[0], true
}

// Clone returns a deep copy of the raw field-values.
func (raw RawFields) Clone() RawFields {
	if raw == nil {
		return nil
	}
	raw2 := make(RawFields, len(raw))
	for i := range raw {
		raw2[i] = append([]byte(nil), raw[i]...)
	}
	return raw2
}

// Name represents an HTTP header field name.
type Name string

// ToCanonic converts the Name to its canonical display form, e.g.
// "last-modified" converts to "Last-Modified".
func (n Name) ToCanonic() Name { return CanonicName(n) }

// Key converts the Name to the lowercase form used as a storage key.
func (n Name) Key() Name { return util.LCase(util.TrimSP(n)) }

// IsValid checks whether the Name is a syntactically valid field name (token).
func (n Name) IsValid() bool { return isToken(string(n)) }

// Equal compares this Name with another for equality, ignoring case.
func (n Name) Equal(val any) bool {
	var other Name
	switch v := val.(type) {
	case Name:
		other = v
	case *Name:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return n.Key() == other.Key()
}

// CanonicName converts name to the canonical display form: the first letter
// and any letter following a hyphen upper case, the rest lower case.
func CanonicName[T ~string](name T) Name {
	return Name(textproto.CanonicalMIMEHeaderKey(string(util.TrimSP(name))))
}

// isToken reports whether s is a non-empty RFC 7230 token.
func isToken(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isTokenByte(s[i]) {
			return false
		}
	}
	return true
}

func isTokenByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}

type headerData struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ToJSON serializes hdr into the {name, value} JSON envelope.
func ToJSON(hdr Header) ([]byte, error) {
	var hd *headerData
	if hdr != nil {
		hd = &headerData{
			Name:  string(hdr.CanonicName()),
			Value: hdr.RenderValue(),
		}
	}
	return errtrace.Wrap2(json.Marshal(hd))
}

var (
	errNotHeaderJSON  errorutil.Error = "not a header JSON"
	errUnknownHeader  errorutil.Error = "unknown header name"
	errMalformedValue errorutil.Error = "malformed header value"
)

// FromJSON deserializes a header from the {name, value} JSON envelope and
// decodes the value through the identity table.
func FromJSON[T ~string | ~[]byte](data T) (Header, error) {
	var hd *headerData
	if err := json.Unmarshal([]byte(data), &hd); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if hd == nil {
		return nil, errtrace.Wrap(errNotHeaderJSON)
	}

	if !Known(Name(hd.Name)) {
		return nil, errtrace.Wrap(fmt.Errorf("decode header %q: %w", hd.Name, errUnknownHeader))
	}
	hdr, ok := Decode(Name(hd.Name), RawFields{[]byte(hd.Value)})
	if !ok {
		return nil, errtrace.Wrap(fmt.Errorf("decode header %q: %w", hd.Name, errMalformedValue))
	}
	return hdr, nil
}
