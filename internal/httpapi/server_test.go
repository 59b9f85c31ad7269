package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tsgraph/tsg/pkg/cache"
	"github.com/tsgraph/tsg/pkg/store"
	"github.com/tsgraph/tsg/pkg/tsg/document"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s := New(store.NewMemoryIndex(), cache.NewNullCache(), nil)

	input := "N\tn1\tchr1:+:1000-1200\t\tACGT\n" +
		"N\tn2\tchr1:+:2000-2200\t\tTGCA\n" +
		"E\te1\tn1\tn2\tchr1,chr1,1200,2000,splice\n"
	doc, err := document.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := s.LoadDocument(context.Background(), "doc1", "graph.tsg", doc); err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	return s
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandleListDocuments(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/documents", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var recs []*store.DocumentRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &recs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "doc1" {
		t.Fatalf("recs = %+v", recs)
	}
}

func TestHandleGetDocumentNotFound(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/documents/missing", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandleSectionSummary(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/documents/doc1/sections/G.graph/summary", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"Nodes":2`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHandleSectionPaths(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/documents/doc1/sections/G.graph/paths", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "n1+") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHandleSectionTopologyUnknownSection(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/documents/doc1/sections/nope/topology", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
