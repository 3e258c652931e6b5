package header

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"braces.dev/errtrace"

	"github.com/httpwire/httphdr/internal/errorutil"
	"github.com/httpwire/httphdr/internal/ioutil"
	"github.com/httpwire/httphdr/internal/util"
)

// Expires represents the Expires header field value: either an expiry
// timestamp or the "already expired" sentinel. An Expires value received in
// an invalid format must be interpreted as a time in the past (RFC 9111
// section 5.3), so decoding a malformed single field yields the sentinel
// instead of failing.
type Expires struct {
	// Date is the expiry timestamp. A nil Date is the past sentinel: the
	// zero Expires value means "already expired" and renders as "0".
	Date *Date
}

// ExpiresDate creates an Expires carrying the given expiry timestamp.
func ExpiresDate(t time.Time) *Expires {
	return &Expires{Date: &Date{t.UTC()}}
}

// ExpiresPast creates the "already expired" sentinel value.
func ExpiresPast() *Expires { return &Expires{} }

// ParseExpires decodes the Expires header field value. Decoding is total
// over any single field: bytes that do not parse as an HTTP-date yield the
// past sentinel, never an absent value. Only a field-cardinality failure
// (zero or multiple fields) yields absent. This makes the Expires mapping
// intentionally non-bijective: encode(decode(b)) canonicalizes any
// malformed b to "0".
func ParseExpires(raw RawFields) (*Expires, bool) {
	if _, ok := raw.Single(); !ok {
		return nil, false
	}
	if d, ok := ParseDate(raw); ok {
		return &Expires{Date: d}, true
	}
	return &Expires{}, true
}

// Past reports whether the value is the "already expired" sentinel.
func (hdr *Expires) Past() bool { return hdr != nil && hdr.Date == nil }

// CanonicName returns the canonical name of the header.
func (*Expires) CanonicName() Name { return "Expires" }

// RenderTo writes the header to the provided writer.
func (hdr *Expires) RenderTo(w io.Writer) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(hdr.CanonicName(), ": ")
	cw.Call(hdr.RenderValueTo)
	return errtrace.Wrap2(cw.Result())
}

// RenderValueTo writes the canonical value to w: "0" for the past sentinel,
// the canonical RFC 1123 date otherwise.
func (hdr *Expires) RenderValueTo(w io.Writer) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	if hdr.Date == nil {
		return errtrace.Wrap2(io.WriteString(w, "0"))
	}
	return errtrace.Wrap2(hdr.Date.RenderValueTo(w))
}

// Render returns the string representation of the header.
func (hdr *Expires) Render() string {
	if hdr == nil {
		return ""
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	hdr.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// RenderValue returns the header value without the name prefix.
func (hdr *Expires) RenderValue() string {
	if hdr == nil {
		return ""
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	hdr.RenderValueTo(sb) //nolint:errcheck
	return sb.String()
}

func (hdr *Expires) String() string { return hdr.RenderValue() }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr *Expires) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			hdr.RenderTo(f) //nolint:errcheck
			return
		}
		fmt.Fprint(f, hdr.String())
		return
	case 'q':
		if f.Flag('+') {
			fmt.Fprint(f, strconv.Quote(hdr.Render()))
			return
		}
		fmt.Fprint(f, strconv.Quote(hdr.String()))
		return
	default:
		type hideMethods Expires
		type Expires hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Expires)(hdr))
		return
	}
}

// Clone returns a copy of the header.
func (hdr *Expires) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	if hdr.Date != nil {
		d := *hdr.Date
		hdr2.Date = &d
	}
	return &hdr2
}

// Equal compares this header with another for equality.
func (hdr *Expires) Equal(val any) bool {
	var other *Expires
	switch v := val.(type) {
	case Expires:
		other = &v
	case *Expires:
		other = v
	default:
		return false
	}

	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}

	if hdr.Date == nil || other.Date == nil {
		return hdr.Date == nil && other.Date == nil
	}
	return hdr.Date.Equal(other.Date)
}

// IsValid checks whether the header is syntactically valid.
func (hdr *Expires) IsValid() bool {
	return hdr != nil && (hdr.Date == nil || hdr.Date.IsValid())
}

func (hdr *Expires) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

var zeroExpires Expires

func (hdr *Expires) UnmarshalJSON(data []byte) error {
	gh, err := FromJSON(data)
	if err != nil {
		*hdr = zeroExpires
		if errors.Is(err, errNotHeaderJSON) {
			return nil
		}
		return errtrace.Wrap(err)
	}

	h, ok := gh.(*Expires)
	if !ok {
		*hdr = zeroExpires
		return errtrace.Wrap(errorutil.Errorf("unexpected header: got %T, want %T", gh, hdr))
	}

	*hdr = *h
	return nil
}
