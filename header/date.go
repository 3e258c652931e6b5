package header

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/httpwire/httphdr/internal/errorutil"
	"github.com/httpwire/httphdr/internal/ioutil"
	"github.com/httpwire/httphdr/internal/util"
)

// Date represents an HTTP-date header field value.
// The same value type serves the Date, If-Modified-Since, If-Unmodified-Since
// and Last-Modified field names through their identities. The carried time is
// always in UTC.
type Date struct {
	time.Time
}

// dateLayouts are the accepted HTTP-date grammars, tried in this fixed
// order with the first match winning. The grammars are not mutually
// exclusive in their character sets, so the order is part of the contract.
var dateLayouts = [...]string{
	time.RFC1123,  // RFC 822, updated by RFC 1123
	time.RFC1123Z, // RFC 822 with a numeric zone offset
	time.RFC850,   // RFC 850, obsoleted by RFC 1036
	time.ANSIC,    // ANSI C asctime() format, no zone, assumed UTC
}

// ParseDate decodes an HTTP-date from the raw field-values. It requires
// exactly one field of valid UTF-8 and returns the parsed timestamp
// normalized to UTC.
//
// Zone names other than "GMT"/"UTC" are accepted lexically but not
// interpreted: an unknown abbreviation parses with a zero offset, so only
// the literal "GMT" is semantically trusted. Two-digit RFC 850 years follow
// the time package pivot: 69-99 map to 1969-1999, 00-68 to 2000-2068.
func ParseDate(raw RawFields) (*Date, bool) {
	f, ok := raw.Single()
	if !ok {
		return nil, false
	}
	if !utf8.Valid(f) {
		return nil, false
	}

	s := string(f)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &Date{t.UTC()}, true
		}
	}
	return nil, false
}

// CanonicName returns the canonical name of the header.
func (*Date) CanonicName() Name { return "Date" }

// RenderTo writes the header to the provided writer.
func (hdr *Date) RenderTo(w io.Writer) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(hdr.CanonicName(), ": ")
	cw.Call(hdr.RenderValueTo)
	return errtrace.Wrap2(cw.Result())
}

// RenderValueTo writes the canonical RFC 1123 form of the timestamp to w.
// Whatever grammar the value was decoded from, the output is always
// "Weekday, DD Mon YYYY HH:MM:SS GMT" of the UTC instant.
func (hdr *Date) RenderValueTo(w io.Writer) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(fmt.Fprint(w, hdr.UTC().Format(http.TimeFormat)))
}

// Render returns the string representation of the header.
func (hdr *Date) Render() string {
	if hdr == nil {
		return ""
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	hdr.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// RenderValue returns the header value without the name prefix.
func (hdr *Date) RenderValue() string {
	if hdr == nil {
		return ""
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	hdr.RenderValueTo(sb) //nolint:errcheck
	return sb.String()
}

func (hdr *Date) String() string { return hdr.RenderValue() }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr *Date) Format(f fmt.State, verb rune) {
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
		type hideMethods Date
		type Date hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Date)(hdr))
		return
	}
}

// Clone returns a copy of the header.
func (hdr *Date) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	return &hdr2
}

// Equal compares this header with another for equality.
// Timestamps are compared as instants, regardless of the input zone.
func (hdr *Date) Equal(val any) bool {
	var other *Date
	switch v := val.(type) {
	case Date:
		other = &v
	case *Date:
		other = v
	default:
		return false
	}

	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}

	return hdr.Time.Equal(other.Time)
}

// IsValid checks whether the header is syntactically valid.
func (hdr *Date) IsValid() bool { return hdr != nil && !hdr.IsZero() }

func (hdr *Date) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

var zeroDate Date

func (hdr *Date) UnmarshalJSON(data []byte) error {
	gh, err := FromJSON(data)
	if err != nil {
		*hdr = zeroDate
		if errors.Is(err, errNotHeaderJSON) {
			return nil
		}
		return errtrace.Wrap(err)
	}

	h, ok := gh.(*Date)
	if !ok {
		*hdr = zeroDate
		return errtrace.Wrap(errorutil.Errorf("unexpected header: got %T, want %T", gh, hdr))
	}

	*hdr = *h
	return nil
}
