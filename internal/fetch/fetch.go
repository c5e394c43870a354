package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/ledongthuc/pdf"

	"docchat/internal/domain"
)

// Fetcher downloads a document by URL and parses it into pages of plain text.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Classify decides how a URL should be parsed, by sniffing the path
// extension. Anything that is not a PDF is treated as HTML.
func Classify(rawURL string) domain.DocType {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		path = u.Path
	}
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return domain.DocTypePDF
	}
	return domain.DocTypeHTML
}

// Fetch retrieves and parses a single document. Network failures and bad
// statuses surface as *domain.FetchError, undecodable content as
// *domain.ParseError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (domain.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return domain.Document{}, &domain.FetchError{URL: rawURL, Err: err}
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return domain.Document{}, &domain.FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return domain.Document{}, &domain.FetchError{URL: rawURL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Document{}, &domain.FetchError{URL: rawURL, Err: err}
	}

	switch Classify(rawURL) {
	case domain.DocTypePDF:
		return parsePDF(rawURL, data)
	default:
		return parseHTML(rawURL, data)
	}
}

func parsePDF(rawURL string, data []byte) (domain.Document, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return domain.Document{}, &domain.ParseError{URL: rawURL, Err: err}
	}
	doc := domain.Document{
		URL:   rawURL,
		Title: pdfTitle(reader, rawURL),
		Type:  domain.DocTypePDF,
	}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		doc.Pages = append(doc.Pages, domain.Page{Number: i - 1, Text: text})
	}
	if len(doc.Pages) == 0 {
		return domain.Document{}, &domain.ParseError{URL: rawURL, Err: fmt.Errorf("no extractable text")}
	}
	return doc, nil
}

// pdfTitle reads the Title entry of the document information dictionary,
// falling back to the URL when absent.
func pdfTitle(reader *pdf.Reader, rawURL string) string {
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return rawURL
	}
	title := info.Key("Title")
	if title.Kind() != pdf.String {
		return rawURL
	}
	if t := strings.TrimSpace(title.Text()); t != "" {
		return t
	}
	return rawURL
}

func parseHTML(rawURL string, data []byte) (domain.Document, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return domain.Document{}, &domain.ParseError{URL: rawURL, Err: err}
	}
	article, err := readability.FromReader(bytes.NewReader(data), pageURL)
	if err != nil {
		return domain.Document{}, &domain.ParseError{URL: rawURL, Err: err}
	}
	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return domain.Document{}, &domain.ParseError{URL: rawURL, Err: fmt.Errorf("no extractable text")}
	}
	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = rawURL
	}
	return domain.Document{
		URL:   rawURL,
		Title: title,
		Type:  domain.DocTypeHTML,
		Pages: []domain.Page{{Number: 0, Text: text}},
	}, nil
}
