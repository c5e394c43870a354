package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"docchat/internal/domain"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		url  string
		want domain.DocType
	}{
		{"https://example.com/manual.pdf", domain.DocTypePDF},
		{"https://example.com/MANUAL.PDF", domain.DocTypePDF},
		{"https://example.com/manual.pdf?version=2", domain.DocTypePDF},
		{"https://example.com/guide.html", domain.DocTypeHTML},
		{"https://example.com/guide", domain.DocTypeHTML},
		{"https://example.com/pdf-overview", domain.DocTypeHTML},
	}
	for _, c := range cases {
		if got := Classify(c.url); got != c.want {
			t.Errorf("Classify(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Maintenance Guide</title></head>
<body>
<article>
<h1>Maintenance Guide</h1>
<p>Regular maintenance keeps the pump running within its rated tolerances.
Inspect the intake filter once a month and replace it when the pressure
differential across it exceeds the threshold printed on the housing.</p>
<p>Lubricate the drive shaft bearings every five hundred operating hours
using the grease grade listed in the appendix. Over-greasing is as harmful
as neglect, so wipe off any excess before closing the access panel.</p>
</article>
</body>
</html>`

func TestFetchHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	doc, err := NewFetcher(0).Fetch(context.Background(), srv.URL+"/guide")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if doc.Type != domain.DocTypeHTML {
		t.Fatalf("type = %q, want html", doc.Type)
	}
	if len(doc.Pages) != 1 || doc.Pages[0].Number != 0 {
		t.Fatalf("expected a single page numbered 0, got %v", doc.Pages)
	}
	if doc.Title != "Maintenance Guide" {
		t.Fatalf("title = %q", doc.Title)
	}
	if doc.Pages[0].Text == "" {
		t.Fatalf("empty extracted text")
	}
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewFetcher(0).Fetch(context.Background(), srv.URL+"/missing")
	var ferr *domain.FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if ferr.URL != srv.URL+"/missing" {
		t.Fatalf("error carries url %q", ferr.URL)
	}
}

func TestFetchUnreachableHost(t *testing.T) {
	_, err := NewFetcher(0).Fetch(context.Background(), "http://127.0.0.1:1/doc")
	var ferr *domain.FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
}

func TestFetchUnparsablePDF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("this is not a pdf"))
	}))
	defer srv.Close()

	_, err := NewFetcher(0).Fetch(context.Background(), srv.URL+"/broken.pdf")
	var perr *domain.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}
