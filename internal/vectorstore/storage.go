package vectorstore

import "docchat/internal/domain"

// Storage persists chunk vectors and supports similarity search.
type Storage interface {
	Init(dimension int) error
	Upsert(chunks []domain.Chunk, vectors [][]float32) error
	Search(vector []float32, topK int) ([]domain.SearchResult, error)
	Clear() error
}
