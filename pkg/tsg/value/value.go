// Package value implements the primitive carriers of the TSG format: genomic
// locations, strand, read evidence, structural-variant descriptors, typed
// attribute values, and oriented element references (spec §4.2).
//
// Every type here follows the same shape: a Parse<Thing> function that
// turns a token into a value (or a *errors.Error), and a String method that
// is its exact inverse. Round-tripping a value through String and back
// through Parse must reproduce the same value — this is the basis for the
// document-level round-trip law (spec §4.5).
package value

import (
	"fmt"
	"strconv"
	"strings"

	tsgerrors "github.com/tsgraph/tsg/pkg/tsg/errors"
)

// Strand is the orientation of a genomic location.
type Strand byte

const (
	// StrandUnknown is the absent/unspecified strand, serialized as "?".
	StrandUnknown Strand = 0
	// StrandForward is the '+' strand.
	StrandForward Strand = '+'
	// StrandReverse is the '-' strand.
	StrandReverse Strand = '-'
)

// ParseStrand parses a single strand token.
func ParseStrand(s string) (Strand, error) {
	switch s {
	case "+":
		return StrandForward, nil
	case "-":
		return StrandReverse, nil
	case "?", "":
		return StrandUnknown, nil
	default:
		return 0, tsgerrors.New(tsgerrors.CodeValue, "invalid strand %q: want '+', '-', or '?'", s)
	}
}

// String renders the strand using the format's own unknown token ("?") so
// that a genomic location always round-trips through the same three
// colon-separated fields.
func (s Strand) String() string {
	switch s {
	case StrandForward:
		return "+"
	case StrandReverse:
		return "-"
	default:
		return "?"
	}
}

// Interval is a closed genomic interval [Start, End].
type Interval struct {
	Start, End int
}

// ParseInterval parses "start-end".
func ParseInterval(s string) (Interval, error) {
	a, b, ok := strings.Cut(s, "-")
	if !ok {
		return Interval{}, tsgerrors.New(tsgerrors.CodeValue, "invalid interval %q: want start-end", s)
	}
	start, err := strconv.Atoi(a)
	if err != nil {
		return Interval{}, tsgerrors.Wrap(tsgerrors.CodeValue, err, "invalid interval start %q", a)
	}
	end, err := strconv.Atoi(b)
	if err != nil {
		return Interval{}, tsgerrors.Wrap(tsgerrors.CodeValue, err, "invalid interval end %q", b)
	}
	if start > end {
		return Interval{}, tsgerrors.New(tsgerrors.CodeValue, "invalid interval %q: start > end", s)
	}
	return Interval{Start: start, End: end}, nil
}

// String renders the interval as "start-end".
func (iv Interval) String() string {
	return fmt.Sprintf("%d-%d", iv.Start, iv.End)
}

// Location is a node's genomic location: chromosome, strand, and an
// ordered list of exon intervals (spec §4.2).
type Location struct {
	Chromosome string
	Strand     Strand
	Intervals  []Interval
}

// ParseLocation parses "chromosome:strand:interval_list".
func ParseLocation(s string) (Location, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return Location{}, tsgerrors.New(tsgerrors.CodeValue, "invalid genomic location %q: want chromosome:strand:intervals", s)
	}
	strand, err := ParseStrand(parts[1])
	if err != nil {
		return Location{}, err
	}
	var intervals []Interval
	for _, tok := range strings.Split(parts[2], ",") {
		iv, err := ParseInterval(tok)
		if err != nil {
			return Location{}, err
		}
		intervals = append(intervals, iv)
	}
	return Location{Chromosome: parts[0], Strand: strand, Intervals: intervals}, nil
}

// String renders the location as "chromosome:strand:interval_list". Unlike
// the original Rust implementation this always includes the strand field
// even when unknown, since the parser requires exactly three
// colon-separated fields (spec §4.5).
func (l Location) String() string {
	ivs := make([]string, len(l.Intervals))
	for i, iv := range l.Intervals {
		ivs[i] = iv.String()
	}
	return fmt.Sprintf("%s:%s:%s", l.Chromosome, l.Strand, strings.Join(ivs, ","))
}

// Span returns the leftmost start and rightmost end across all intervals.
// Span returns (0, 0) for a location with no intervals.
func (l Location) Span() (start, end int) {
	if len(l.Intervals) == 0 {
		return 0, 0
	}
	start, end = l.Intervals[0].Start, l.Intervals[0].End
	for _, iv := range l.Intervals[1:] {
		if iv.Start < start {
			start = iv.Start
		}
		if iv.End > end {
			end = iv.End
		}
	}
	return start, end
}

// ReadTag classifies a read's role at the node it is attached to.
type ReadTag string

const (
	// TagSpanning ("SO") marks a read that spans (originates at) the node.
	TagSpanning ReadTag = "SO"
	// TagInterior ("IN") marks a read that must continue through the node
	// to adjacent nodes sharing the same read id (spec §4.7).
	TagInterior ReadTag = "IN"
	// TagSink ("SI") marks a read that terminates at the node.
	TagSink ReadTag = "SI"
)

// Read is one (read_id, type_tag) pair attached to a node.
type Read struct {
	ID  string
	Tag ReadTag
}

// ParseRead parses "read_id:type_tag".
func ParseRead(s string) (Read, error) {
	id, tag, ok := strings.Cut(s, ":")
	if !ok {
		return Read{}, tsgerrors.New(tsgerrors.CodeValue, "invalid read evidence %q: want read_id:type_tag", s)
	}
	switch ReadTag(tag) {
	case TagSpanning, TagInterior, TagSink:
	default:
		return Read{}, tsgerrors.New(tsgerrors.CodeValue, "invalid read type tag %q: want SO, IN, or SI", tag)
	}
	return Read{ID: id, Tag: ReadTag(tag)}, nil
}

// String renders the read as "read_id:type_tag".
func (r Read) String() string {
	return r.ID + ":" + string(r.Tag)
}

// ParseReads parses a comma-separated list of read evidence entries. An
// empty string yields a nil (not empty, non-nil) slice.
func ParseReads(s string) ([]Read, error) {
	if s == "" {
		return nil, nil
	}
	toks := strings.Split(s, ",")
	reads := make([]Read, len(toks))
	for i, tok := range toks {
		r, err := ParseRead(tok)
		if err != nil {
			return nil, err
		}
		reads[i] = r
	}
	return reads, nil
}

// FormatReads renders a reads list as a comma-separated string.
func FormatReads(reads []Read) string {
	toks := make([]string, len(reads))
	for i, r := range reads {
		toks[i] = r.String()
	}
	return strings.Join(toks, ",")
}

// HasTag reports whether reads contains at least one entry with the given
// tag.
func HasTag(reads []Read, tag ReadTag) bool {
	for _, r := range reads {
		if r.Tag == tag {
			return true
		}
	}
	return false
}

// IDSet returns the set of distinct read ids in reads, ignoring tag.
func IDSet(reads []Read) map[string]struct{} {
	set := make(map[string]struct{}, len(reads))
	for _, r := range reads {
		set[r.ID] = struct{}{}
	}
	return set
}

// Intersects reports whether a and b share at least one read id.
func Intersects(a, b []Read) bool {
	sa := IDSet(a)
	for _, r := range b {
		if _, ok := sa[r.ID]; ok {
			return true
		}
	}
	return false
}

// StructuralVariant describes the edge annotation: two reference names, two
// breakpoints, and a free-form SV type (spec §4.2).
type StructuralVariant struct {
	Ref1, Ref2     string
	Breakpoint1    int
	Breakpoint2    int
	Type           string
}

// ParseStructuralVariant parses "ref1,ref2,bp1,bp2,sv_type".
func ParseStructuralVariant(s string) (StructuralVariant, error) {
	parts := strings.SplitN(s, ",", 5)
	if len(parts) != 5 {
		return StructuralVariant{}, tsgerrors.New(tsgerrors.CodeValue, "invalid SV descriptor %q: want ref1,ref2,bp1,bp2,sv_type", s)
	}
	bp1, err := strconv.Atoi(parts[2])
	if err != nil {
		return StructuralVariant{}, tsgerrors.Wrap(tsgerrors.CodeValue, err, "invalid SV breakpoint1 %q", parts[2])
	}
	bp2, err := strconv.Atoi(parts[3])
	if err != nil {
		return StructuralVariant{}, tsgerrors.Wrap(tsgerrors.CodeValue, err, "invalid SV breakpoint2 %q", parts[3])
	}
	return StructuralVariant{
		Ref1: parts[0], Ref2: parts[1],
		Breakpoint1: bp1, Breakpoint2: bp2,
		Type: parts[4],
	}, nil
}

// String renders the SV descriptor as "ref1,ref2,bp1,bp2,sv_type".
func (sv StructuralVariant) String() string {
	return fmt.Sprintf("%s,%s,%d,%d,%s", sv.Ref1, sv.Ref2, sv.Breakpoint1, sv.Breakpoint2, sv.Type)
}

// IsSplice reports whether the SV type is the splice placeholder used by
// ordinary adjacency edges (as opposed to a structural variant the VCF
// emitter should project, spec §6).
func (sv StructuralVariant) IsSplice() bool {
	return sv.Type == "" || sv.Type == "splice"
}

// Orientation is the sign carried by an oriented element reference.
type Orientation byte

const (
	// Plus ('+') is the forward orientation.
	Plus Orientation = '+'
	// Minus ('-') is the reverse orientation.
	Minus Orientation = '-'
)

// OrientedRef is a reference to an element together with its orientation
// (spec §9: "model as a pair (id, sign), not a signed integer").
type OrientedRef struct {
	ID          string
	Orientation Orientation
}

// ParseOrientedRef parses "element_id" immediately followed by '+' or '-'.
func ParseOrientedRef(s string) (OrientedRef, error) {
	if len(s) < 2 {
		return OrientedRef{}, tsgerrors.New(tsgerrors.CodeValue, "invalid oriented reference %q", s)
	}
	sign := s[len(s)-1]
	if sign != '+' && sign != '-' {
		return OrientedRef{}, tsgerrors.New(tsgerrors.CodeValue, "invalid oriented reference %q: must end in + or -", s)
	}
	return OrientedRef{ID: s[:len(s)-1], Orientation: Orientation(sign)}, nil
}

// String renders the oriented reference as "element_id" followed by its
// sign.
func (r OrientedRef) String() string {
	return r.ID + string(r.Orientation)
}

// AttrType is the type code of a typed attribute value (spec §4.2).
type AttrType byte

const (
	AttrInt    AttrType = 'i'
	AttrFloat  AttrType = 'f'
	AttrString AttrType = 'Z'
	AttrJSON   AttrType = 'J'
	AttrHex    AttrType = 'H'
	AttrBytes  AttrType = 'B'
)

// Attribute is a typed, tagged piece of metadata attached to an element
// (spec §3). Value is kept in its raw textual form; AsInt/AsFloat/AsString
// interpret it according to Type.
type Attribute struct {
	Tag   string
	Type  AttrType
	Value string
}

// ParseAttribute parses "tag:type:value". The value may itself contain
// colons (e.g. a JSON object or hex string), so splitting stops after the
// second colon.
func ParseAttribute(s string) (Attribute, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return Attribute{}, tsgerrors.New(tsgerrors.CodeLex, "invalid attribute triplet %q: want tag:type:value", s)
	}
	if len(parts[1]) != 1 {
		return Attribute{}, tsgerrors.New(tsgerrors.CodeLex, "invalid attribute type code %q", parts[1])
	}
	t := AttrType(parts[1][0])
	if err := validateAttrType(t); err != nil {
		return Attribute{}, err
	}
	return Attribute{Tag: parts[0], Type: t, Value: parts[2]}, nil
}

func validateAttrType(t AttrType) error {
	switch t {
	case AttrInt, AttrFloat, AttrString, AttrJSON, AttrHex, AttrBytes:
		return nil
	default:
		return tsgerrors.New(tsgerrors.CodeLex, "invalid attribute type code %q", string(t))
	}
}

// String renders the attribute as "tag:type:value".
func (a Attribute) String() string {
	return fmt.Sprintf("%s:%c:%s", a.Tag, byte(a.Type), a.Value)
}

// AsInt interprets Value as a signed integer. Returns an error if Type is
// not AttrInt or the value doesn't parse.
func (a Attribute) AsInt() (int64, error) {
	if a.Type != AttrInt {
		return 0, tsgerrors.New(tsgerrors.CodeValue, "attribute %s is type %c, not int", a.Tag, byte(a.Type))
	}
	return strconv.ParseInt(a.Value, 10, 64)
}

// AsFloat interprets Value as an IEEE-754 double. Returns an error if Type
// is not AttrFloat or the value doesn't parse.
func (a Attribute) AsFloat() (float64, error) {
	if a.Type != AttrFloat {
		return 0, tsgerrors.New(tsgerrors.CodeValue, "attribute %s is type %c, not float", a.Tag, byte(a.Type))
	}
	return strconv.ParseFloat(a.Value, 64)
}

// AsString interprets Value as a plain string. Returns an error if Type is
// not AttrString.
func (a Attribute) AsString() (string, error) {
	if a.Type != AttrString {
		return "", tsgerrors.New(tsgerrors.CodeValue, "attribute %s is type %c, not string", a.Tag, byte(a.Type))
	}
	return a.Value, nil
}
