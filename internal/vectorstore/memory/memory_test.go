package memory

import (
	"testing"

	"docchat/internal/domain"
)

func chunk(text string) domain.Chunk {
	return domain.Chunk{Text: text, Source: "u", Title: "u"}
}

func TestSearchOrdersByDescendingScore(t *testing.T) {
	s := NewStorage()
	if err := s.Init(2); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	err := s.Upsert(
		[]domain.Chunk{chunk("east"), chunk("north"), chunk("diagonal")},
		[][]float32{{1, 0}, {0, 1}, {0.7071, 0.7071}},
	)
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	results, err := s.Search([]float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Chunk.Text != "east" || results[1].Chunk.Text != "diagonal" || results[2].Chunk.Text != "north" {
		t.Fatalf("unexpected order: %v", results)
	}
	if results[0].Score < results[1].Score || results[1].Score < results[2].Score {
		t.Fatalf("scores not descending: %v", results)
	}
}

func TestSearchTiesKeepInsertionOrder(t *testing.T) {
	s := NewStorage()
	if err := s.Init(2); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	err := s.Upsert(
		[]domain.Chunk{chunk("first"), chunk("second"), chunk("third")},
		[][]float32{{0, 1}, {0, 1}, {0, 1}},
	)
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	results, err := s.Search([]float32{0, 1}, 3)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	for i, want := range []string{"first", "second", "third"} {
		if results[i].Chunk.Text != want {
			t.Fatalf("result %d = %q, want %q", i, results[i].Chunk.Text, want)
		}
	}
}

func TestSearchTopKBound(t *testing.T) {
	s := NewStorage()
	if err := s.Init(1); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := s.Upsert([]domain.Chunk{chunk("only")}, [][]float32{{1}}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	results, err := s.Search([]float32{1}, 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected topK clamped to store size, got %d", len(results))
	}
}

func TestUpsertRejectsDimensionMismatch(t *testing.T) {
	s := NewStorage()
	if err := s.Init(3); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := s.Upsert([]domain.Chunk{chunk("bad")}, [][]float32{{1, 0}}); err == nil {
		t.Fatalf("expected dimension mismatch error")
	}
	if err := s.Upsert([]domain.Chunk{chunk("a"), chunk("b")}, [][]float32{{1, 0, 0}}); err == nil {
		t.Fatalf("expected length mismatch error")
	}
}

func TestClearEmptiesStore(t *testing.T) {
	s := NewStorage()
	if err := s.Init(1); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := s.Upsert([]domain.Chunk{chunk("x")}, [][]float32{{1}}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	results, err := s.Search([]float32{1}, 5)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty store, got %v", results)
	}
}

func TestInitRejectsNonPositiveDimension(t *testing.T) {
	if err := NewStorage().Init(0); err == nil {
		t.Fatalf("expected error for zero dimension")
	}
}
