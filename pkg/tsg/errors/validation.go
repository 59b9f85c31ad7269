package errors

import "fmt"

// validStrands enumerates the strand tokens the format allows.
var validStrands = map[string]bool{"+": true, "-": true, "?": true}

// ValidateStrand checks that s is one of the strand tokens the genomic
// location grammar allows (§4.2): '+', '-', or '?' for unknown.
func ValidateStrand(s string) error {
	if !validStrands[s] {
		return New(CodeValue, "invalid strand %q: want '+', '-', or '?'", s)
	}
	return nil
}

// validAttributeTypes enumerates the attribute type codes the format
// allows (§4.2).
var validAttributeTypes = map[byte]bool{'i': true, 'f': true, 'Z': true, 'J': true, 'H': true, 'B': true}

// ValidateAttributeType checks that t is one of the attribute type codes
// the format allows.
func ValidateAttributeType(t byte) error {
	if !validAttributeTypes[t] {
		return New(CodeValue, "invalid attribute type code %q: want one of i,f,Z,J,H,B", string(t))
	}
	return nil
}

// validReadTags enumerates the read-evidence type tags the format allows.
var validReadTags = map[string]bool{"SO": true, "IN": true, "SI": true}

// ValidateReadTag checks that tag is one of SO, IN, or SI.
func ValidateReadTag(tag string) error {
	if !validReadTags[tag] {
		return New(CodeValue, "invalid read type tag %q: want SO, IN, or SI", tag)
	}
	return nil
}

// ValidateRecordTag checks that tag is one of the record tags the lexical
// layer recognizes.
func ValidateRecordTag(tag byte) error {
	switch tag {
	case 'H', 'G', 'N', 'E', 'U', 'P', 'C', 'A', 'L':
		return nil
	default:
		return New(CodeLex, "unknown record tag %q", string(tag))
	}
}

// ValidateArity checks that got is at least want, returning a LexError
// describing the shortfall for record kind.
func ValidateArity(record string, want, got int) error {
	if got < want {
		return New(CodeLex, "%s record: expected at least %d fields, got %d", record, want, got)
	}
	return nil
}

// ValidateOddLength checks that n is odd and at least 1, as required of a
// chain's element count (§3 invariant 3).
func ValidateOddLength(n int) error {
	if n < 1 || n%2 == 0 {
		return New(CodeChain, "chain must have an odd element count >= 1, got %d", n)
	}
	return nil
}

func init() {
	// Guard against accidental drift between the attribute-type map above and the
	// lexical contract in §4.1/§4.2; a panic here means this file and the
	// specification have diverged.
	if len(validAttributeTypes) != 6 {
		panic(fmt.Sprintf("tsg/errors: expected 6 attribute type codes, got %d", len(validAttributeTypes)))
	}
}
