// Package lex implements the lexical layer of the TSG format (spec §4.1):
// converting a byte stream into a sequence of typed raw records without
// interpreting their semantics. Semantic interpretation (resolving ids,
// building the graph) belongs to package document.
package lex

import (
	"bufio"
	"io"
	"strings"

	tsgerrors "github.com/tsgraph/tsg/pkg/tsg/errors"
)

// Tag is a single-letter record tag.
type Tag byte

const (
	TagHeader  Tag = 'H'
	TagGraph   Tag = 'G'
	TagNode    Tag = 'N'
	TagEdge    Tag = 'E'
	TagSet     Tag = 'U'
	TagPath    Tag = 'P'
	TagChain   Tag = 'C'
	TagAttr    Tag = 'A'
	TagLink    Tag = 'L'
)

// Record is one non-skipped, tokenized line: a tag plus its fields (split
// on tabs when the line has any, else on whitespace; the tag token itself
// is not included in
// Fields), retaining the source line number for diagnostics.
type Record struct {
	Tag    Tag
	Fields []string
	Line   int
}

// Field returns the i-th field, or "" if it doesn't exist.
func (r Record) Field(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return r.Fields[i]
}

// Scan reads r line by line and returns the sequence of typed records.
// Blank lines and comment lines (first non-whitespace char '#') are
// skipped. Scan returns the first LexError encountered (an unknown or
// multi-character tag); it does not validate field arity per tag —
// that is the parser's responsibility since arity depends on which tag it
// is (spec: "Fails with LexError{line, column, kind} where kind in
// {UnknownTag, EmptyField, BadAttributeTriplet, BadInteger, BadFloat}" —
// UnknownTag is caught here, the others downstream where the value is
// actually interpreted).
func Scan(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var records []Record
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		tagTok := fields[0]
		if len(tagTok) != 1 {
			return nil, tsgerrors.AtLine(tsgerrors.CodeLex, lineNo, "unknown record tag %q", tagTok)
		}
		tag := Tag(tagTok[0])
		if err := validateTag(tag); err != nil {
			return nil, tsgerrors.AtLine(tsgerrors.CodeLex, lineNo, "unknown record tag %q", tagTok)
		}

		all := rejoinLastField(line, fields)
		records = append(records, Record{Tag: tag, Fields: all[1:], Line: lineNo})
	}
	if err := scanner.Err(); err != nil {
		return nil, tsgerrors.Wrap(tsgerrors.CodeIO, err, "reading TSG input")
	}
	return records, nil
}

func validateTag(t Tag) error {
	switch t {
	case TagHeader, TagGraph, TagNode, TagEdge, TagSet, TagPath, TagChain, TagAttr, TagLink:
		return nil
	default:
		return tsgerrors.New(tsgerrors.CodeLex, "unknown record tag %q", string(t))
	}
}

// rejoinLastField picks the field split for a line. A line without tabs
// keeps its whitespace split. A line with tabs is split on each single tab
// instead, so a field may contain spaces (a chain or path element list, a
// free-form value) and an empty field between two tabs keeps its position
// (an N line with no reads but a sequence: "N\tid\tloc\t\tSEQ").
// Surrounding whitespace, including trailing tabs, is trimmed first, so
// trailing empty fields are dropped; Record.Field returns "" for them.
func rejoinLastField(line string, spaceFields []string) []string {
	if !strings.Contains(line, "\t") {
		return spaceFields
	}
	return strings.Split(strings.TrimSpace(line), "\t")
}
