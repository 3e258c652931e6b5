package header

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/httpwire/httphdr/internal/errorutil"
	"github.com/httpwire/httphdr/internal/util"
)

// ParseInt decodes a signed base-10 integer field. The input must be a
// single field of valid UTF-8 containing only an optional leading '-' and
// digits: a leading '+', an empty field and out-of-range values are all
// rejected.
func ParseInt(raw RawFields) (int64, bool) {
	f, ok := raw.Single()
	if !ok {
		return 0, false
	}
	return decInt(f)
}

// ParseUint decodes a non-negative base-10 integer field. Like [ParseInt]
// but any sign, including '-', is rejected.
func ParseUint(raw RawFields) (uint64, bool) {
	f, ok := raw.Single()
	if !ok {
		return 0, false
	}
	return decUint(f)
}

func decInt(f []byte) (int64, bool) {
	if len(f) == 0 || !utf8.Valid(f) {
		return 0, false
	}
	// strconv tolerates a leading '+', the wire grammar does not.
	if f[0] == '+' {
		return 0, false
	}
	n, err := strconv.ParseInt(string(f), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func decUint(f []byte) (uint64, bool) {
	if len(f) == 0 || !utf8.Valid(f) {
		return 0, false
	}
	if f[0] == '+' || f[0] == '-' {
		return 0, false
	}
	n, err := strconv.ParseUint(string(f), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Age represents the Age header field value: the non-negative number of
// seconds the response has spent in caches (delta-seconds).
type Age uint64

// ParseAge decodes the Age header field value.
func ParseAge(raw RawFields) (Age, bool) {
	n, ok := ParseUint(raw)
	return Age(n), ok
}

// CanonicName returns the canonical name of the header.
func (Age) CanonicName() Name { return "Age" }

// RenderTo writes the header to the provided writer.
func (hdr Age) RenderTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(fmt.Fprint(w, hdr.CanonicName(), ": ", hdr.RenderValue()))
}

// RenderValueTo writes the canonical decimal value to w.
func (hdr Age) RenderValueTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(io.WriteString(w, hdr.RenderValue()))
}

// Render returns the string representation of the header.
func (hdr Age) Render() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	hdr.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// RenderValue returns the header value without the name prefix.
func (hdr Age) RenderValue() string { return strconv.FormatUint(uint64(hdr), 10) }

func (hdr Age) String() string { return hdr.RenderValue() }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr Age) Format(f fmt.State, verb rune) {
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
		type hideMethods Age
		type Age hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Age(hdr))
		return
	}
}

// Clone returns a copy of the header.
func (hdr Age) Clone() Header { return hdr }

// Equal compares this header with another for equality.
func (hdr Age) Equal(val any) bool {
	var other Age
	switch v := val.(type) {
	case Age:
		other = v
	case *Age:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return hdr == other
}

// IsValid checks whether the header is syntactically valid.
func (Age) IsValid() bool { return true }

func (hdr Age) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Age) UnmarshalJSON(data []byte) error {
	gh, err := FromJSON(data)
	if err != nil {
		*hdr = 0
		if errors.Is(err, errNotHeaderJSON) {
			return nil
		}
		return errtrace.Wrap(err)
	}

	h, ok := gh.(Age)
	if !ok {
		*hdr = 0
		return errtrace.Wrap(errorutil.Errorf("unexpected header: got %T, want %T", gh, *hdr))
	}

	*hdr = h
	return nil
}
