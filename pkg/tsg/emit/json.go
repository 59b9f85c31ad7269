package emit

import (
	"encoding/json"
	"io"

	"github.com/tsgraph/tsg/pkg/tsg/document"
	tsgerrors "github.com/tsgraph/tsg/pkg/tsg/errors"
	"github.com/tsgraph/tsg/pkg/tsg/graph"
	"github.com/tsgraph/tsg/pkg/tsg/value"
)

// jsonDocument mirrors document.Document's shape for JSON encoding (spec
// §6). Field names are chosen for the external contract rather than
// reusing the internal Go identifiers verbatim.
type jsonDocument struct {
	Headers  []document.Header       `json:"headers"`
	Sections []jsonSection           `json:"sections"`
	Links    []document.InterGraphLink `json:"links"`
}

type jsonSection struct {
	ID         string              `json:"id"`
	Attributes []value.Attribute   `json:"attributes,omitempty"`
	Nodes      []*graph.Node       `json:"nodes"`
	Edges      []*graph.Edge       `json:"edges"`
	Chains     []*graph.Chain      `json:"chains,omitempty"`
	Paths      []*graph.OrderedPath `json:"paths,omitempty"`
	Sets       []*graph.UnorderedSet `json:"sets,omitempty"`
}

// toJSONDocument converts doc into its JSON-serializable mirror.
func toJSONDocument(doc *document.Document) jsonDocument {
	out := jsonDocument{Headers: doc.Headers, Links: doc.Links}
	for _, s := range doc.Sections() {
		out.Sections = append(out.Sections, jsonSection{
			ID:         s.ID,
			Attributes: s.Attributes,
			Nodes:      s.Nodes(),
			Edges:      s.Edges(),
			Chains:     s.Chains(),
			Paths:      s.Paths(),
			Sets:       s.Sets(),
		})
	}
	return out
}

// WriteJSON encodes doc as JSON, mirroring the in-memory document (spec
// §6). When pretty is true the output is indented two spaces per level.
func WriteJSON(doc *document.Document, w io.Writer, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return tsgerrors.Wrap(tsgerrors.CodeIO, enc.Encode(toJSONDocument(doc)), "encoding document as JSON")
}
