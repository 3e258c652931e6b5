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

// RetryAfter represents the Retry-After header field value: either an
// absolute HTTP-date or a non-negative number of delta-seconds.
type RetryAfter struct {
	// Date is the absolute form. When Date is nil the value carries Delta.
	Date *Date
	// Delta is the relative form in seconds, meaningful only with a nil Date.
	Delta uint64
}

// RetryAfterDate creates a RetryAfter carrying an absolute timestamp.
func RetryAfterDate(t time.Time) *RetryAfter {
	return &RetryAfter{Date: &Date{t.UTC()}}
}

// RetryAfterDelta creates a RetryAfter carrying delta-seconds.
func RetryAfterDelta(sec uint64) *RetryAfter {
	return &RetryAfter{Delta: sec}
}

// ParseRetryAfter decodes the Retry-After header field value from a single
// field: first as an HTTP-date, then as non-negative delta-seconds. A field
// matching neither grammar yields absent.
func ParseRetryAfter(raw RawFields) (*RetryAfter, bool) {
	f, ok := raw.Single()
	if !ok {
		return nil, false
	}
	if d, ok := ParseDate(raw); ok {
		return &RetryAfter{Date: d}, true
	}
	if n, ok := decUint(f); ok {
		return &RetryAfter{Delta: n}, true
	}
	return nil, false
}

// Delayed reports whether the value carries delta-seconds rather than an
// absolute date.
func (hdr *RetryAfter) Delayed() bool { return hdr != nil && hdr.Date == nil }

// CanonicName returns the canonical name of the header.
func (*RetryAfter) CanonicName() Name { return "Retry-After" }

// RenderTo writes the header to the provided writer.
func (hdr *RetryAfter) RenderTo(w io.Writer) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(hdr.CanonicName(), ": ")
	cw.Call(hdr.RenderValueTo)
	return errtrace.Wrap2(cw.Result())
}

// RenderValueTo writes the canonical value to w: the canonical RFC 1123
// date for the absolute form, the decimal delta-seconds otherwise.
func (hdr *RetryAfter) RenderValueTo(w io.Writer) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	if hdr.Date != nil {
		return errtrace.Wrap2(hdr.Date.RenderValueTo(w))
	}
	return errtrace.Wrap2(io.WriteString(w, strconv.FormatUint(hdr.Delta, 10)))
}

// Render returns the string representation of the header.
func (hdr *RetryAfter) Render() string {
	if hdr == nil {
		return ""
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	hdr.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// RenderValue returns the header value without the name prefix.
func (hdr *RetryAfter) RenderValue() string {
	if hdr == nil {
		return ""
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	hdr.RenderValueTo(sb) //nolint:errcheck
	return sb.String()
}

func (hdr *RetryAfter) String() string { return hdr.RenderValue() }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr *RetryAfter) Format(f fmt.State, verb rune) {
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
		type hideMethods RetryAfter
		type RetryAfter hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*RetryAfter)(hdr))
		return
	}
}

// Clone returns a copy of the header.
func (hdr *RetryAfter) Clone() Header {
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
func (hdr *RetryAfter) Equal(val any) bool {
	var other *RetryAfter
	switch v := val.(type) {
	case RetryAfter:
		other = &v
	case *RetryAfter:
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
		return hdr.Date == nil && other.Date == nil && hdr.Delta == other.Delta
	}
	return hdr.Date.Equal(other.Date)
}

// IsValid checks whether the header is syntactically valid.
func (hdr *RetryAfter) IsValid() bool {
	return hdr != nil && (hdr.Date == nil || hdr.Date.IsValid())
}

func (hdr *RetryAfter) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

var zeroRetryAfter RetryAfter

func (hdr *RetryAfter) UnmarshalJSON(data []byte) error {
	gh, err := FromJSON(data)
	if err != nil {
		*hdr = zeroRetryAfter
		if errors.Is(err, errNotHeaderJSON) {
			return nil
		}
		return errtrace.Wrap(err)
	}

	h, ok := gh.(*RetryAfter)
	if !ok {
		*hdr = zeroRetryAfter
		return errtrace.Wrap(errorutil.Errorf("unexpected header: got %T, want %T", gh, hdr))
	}

	*hdr = *h
	return nil
}
