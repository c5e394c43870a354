package qdrant

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"docchat/internal/domain"
)

type capturedUpsert struct {
	Points []struct {
		ID      string         `json:"id"`
		Vector  []float32      `json:"vector"`
		Payload map[string]any `json:"payload"`
	} `json:"points"`
}

func TestUpsertAssignsUniquePointIDs(t *testing.T) {
	var captured capturedUpsert
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/points") {
			if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
				t.Errorf("bad upsert body: %v", err)
			}
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	s := NewStorage(Config{URL: srv.URL, Collection: "docs"})
	if err := s.Init(2); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	chunks := []domain.Chunk{
		{Text: "alpha", Source: "u", Title: "t", Page: 0, Type: domain.DocTypePDF},
		{Text: "beta", Source: "u", Title: "t", Page: 1, Type: domain.DocTypePDF},
	}
	if err := s.Upsert(chunks, [][]float32{{1, 0}, {0, 1}}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if len(captured.Points) != 2 {
		t.Fatalf("got %d points", len(captured.Points))
	}
	seen := make(map[string]struct{})
	for i, p := range captured.Points {
		if _, err := uuid.Parse(p.ID); err != nil {
			t.Fatalf("point %d id %q is not a UUID: %v", i, p.ID, err)
		}
		if _, dup := seen[p.ID]; dup {
			t.Fatalf("duplicate point id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	if captured.Points[0].Payload["text"] != "alpha" || captured.Points[1].Payload["page"] != float64(1) {
		t.Fatalf("unexpected payload: %v", captured.Points)
	}
}

func TestSearchDecodesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/points/search") {
			w.Write([]byte(`{"result":[{"score":0.91,"payload":{"text":"alpha","source":"https://a.test/x.pdf","title":"X","page":2,"doc_type":"pdf"}}]}`))
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	s := NewStorage(Config{URL: srv.URL, Collection: "docs"})
	results, err := s.Search([]float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results", len(results))
	}
	c := results[0].Chunk
	if c.Text != "alpha" || c.Source != "https://a.test/x.pdf" || c.Page != 2 || c.Type != domain.DocTypePDF {
		t.Fatalf("payload not decoded: %+v", c)
	}
	if results[0].Score != 0.91 {
		t.Fatalf("score = %f", results[0].Score)
	}
}
