package domain

// DocType identifies how a source document was parsed.
type DocType string

const (
	DocTypePDF  DocType = "pdf"
	DocTypeHTML DocType = "html"
)

// Page is a single extracted page of a source document. HTML documents
// produce exactly one page, numbered 0.
type Page struct {
	Number int
	Text   string
}

// Document represents a fetched and parsed source document.
type Document struct {
	URL   string
	Title string
	Type  DocType
	Pages []Page
}

// Chunk is a bounded, overlapping piece of a document used as the unit of
// retrieval. Immutable once created.
type Chunk struct {
	Text   string
	Source string
	Title  string
	Page   int
	Type   DocType
}

// SearchResult represents a matching chunk with a relevance score.
type SearchResult struct {
	Chunk Chunk
	Score float32
}

// Role marks the author of a dialogue message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation transcript.
type Message struct {
	Role    Role
	Content string
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}
