package header

// Identity binds a header value type to the canonical lowercase field name
// used as the lookup key by a header container. Identities are immutable
// static descriptors: one per field name, created once at package init.
type Identity[H Header] struct {
	name  Name
	parse func(raw RawFields) (H, bool)
}

// NewIdentity creates an identity from a field name and a decode function.
func NewIdentity[H Header](name Name, parse func(raw RawFields) (H, bool)) Identity[H] {
	return Identity[H]{name: name.Key(), parse: parse}
}

// Name returns the canonical lowercase field name.
func (id Identity[H]) Name() Name { return id.name }

// Parse decodes the raw field-values associated with the identity's name.
// The second result is false when raw does not form a valid value.
func (id Identity[H]) Parse(raw RawFields) (H, bool) { return id.parse(raw) }

// Static identities for the supported header field names.
var (
	AgeID               = NewIdentity("age", ParseAge)
	DateID              = NewIdentity("date", ParseDate)
	ExpiresID           = NewIdentity("expires", ParseExpires)
	IfModifiedSinceID   = NewIdentity("if-modified-since", ParseDate)
	IfUnmodifiedSinceID = NewIdentity("if-unmodified-since", ParseDate)
	LastModifiedID      = NewIdentity("last-modified", ParseDate)
	RetryAfterID        = NewIdentity("retry-after", ParseRetryAfter)
)

// parsers is the static dispatch table behind [Decode], keyed by the
// canonical lowercase field name.
var parsers = map[Name]func(raw RawFields) (Header, bool){
	AgeID.Name():               asParser(ParseAge),
	DateID.Name():              asParser(ParseDate),
	ExpiresID.Name():           asParser(ParseExpires),
	IfModifiedSinceID.Name():   asParser(ParseDate),
	IfUnmodifiedSinceID.Name(): asParser(ParseDate),
	LastModifiedID.Name():      asParser(ParseDate),
	RetryAfterID.Name():        asParser(ParseRetryAfter),
}

func asParser[H Header](parse func(raw RawFields) (H, bool)) func(raw RawFields) (Header, bool) {
	return func(raw RawFields) (Header, bool) {
		hdr, ok := parse(raw)
		if !ok {
			return nil, false
		}
		return hdr, true
	}
}

// Known reports whether name has a registered codec.
func Known(name Name) bool {
	_, ok := parsers[name.Key()]
	return ok
}

// Decode decodes the raw field-values of the named header through the static
// codec table. It returns false when the name is unknown or the raw values do
// not form a valid instance of the header's value type.
func Decode(name Name, raw RawFields) (Header, bool) {
	parse, ok := parsers[name.Key()]
	if !ok {
		return nil, false
	}
	return parse(raw)
}
