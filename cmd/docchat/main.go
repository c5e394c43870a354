package main

import (
	"flag"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"docchat/internal/chunker"
	"docchat/internal/config"
	"docchat/internal/domain"
	"docchat/internal/embedding"
	openaiembed "docchat/internal/embedding/openai"
	"docchat/internal/embedding/tfidf"
	"docchat/internal/fetch"
	"docchat/internal/index"
	"docchat/internal/llm"
	anthropicllm "docchat/internal/llm/anthropic"
	openaillm "docchat/internal/llm/openai"
	"docchat/internal/summarizer"
	"docchat/internal/tui"
	"docchat/internal/vectorstore"
	"docchat/internal/vectorstore/memory"
	"docchat/internal/vectorstore/qdrant"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docchat/config.yaml if not provided)")
	flag.Parse()
	urls := flag.Args()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Assemble components
	var emb embedding.Embedder
	switch cfg.Embedder.Type {
	case "openai", "":
		client, err := openaiembed.NewClient(openaiembed.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		emb = client
	case "tfidf":
		emb = tfidf.NewEmbedder()
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var ch domain.Chunker
	switch cfg.Chunker.Type {
	case "chars", "":
		ch = chunker.NewCharChunker(cfg.Chunker.ChunkSize, cfg.Chunker.ChunkOverlap)
	case "sentence":
		ch = chunker.NewSentenceChunker(cfg.Chunker.SentencesPerChunk, cfg.Chunker.OverlapSentences)
	default:
		log.Fatalf("unknown chunker: %s", cfg.Chunker.Type)
	}

	var newStore func() vectorstore.Storage
	switch cfg.VectorStore.Type {
	case "memory", "":
		newStore = func() vectorstore.Storage { return memory.NewStorage() }
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			log.Fatalf("qdrant config missing")
		}
		qcfg := qdrant.Config{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     cfg.VectorStore.Qdrant.APIKey,
			Collection: cfg.VectorStore.Qdrant.Collection,
			Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		}
		newStore = func() vectorstore.Storage { return qdrant.NewStorage(qcfg) }
	default:
		log.Fatalf("unknown vector store: %s", cfg.VectorStore.Type)
	}

	fetcher := fetch.NewFetcher(time.Duration(cfg.Fetcher.TimeoutSecs) * time.Second)
	builder := index.NewBuilder(fetcher, ch, emb, newStore).
		WithSummarizer(summarizer.NewFrequencySummarizer(), cfg.Summarizer.MaxSentences)

	newCompleter := func(apiKey string) (llm.Completer, error) {
		lcfg := llm.Config{
			APIKey:    apiKey,
			Model:     cfg.Completion.Model,
			MaxTokens: cfg.Completion.MaxTokens,
			Timeout:   time.Duration(cfg.Completion.TimeoutSecs) * time.Second,
		}
		switch cfg.Completion.Provider {
		case "anthropic":
			return anthropicllm.NewCompleter(lcfg)
		default:
			return openaillm.NewCompleter(lcfg)
		}
	}

	m := tui.New(tui.Deps{
		Builder:        builder,
		NewCompleter:   newCompleter,
		APIKey:         os.Getenv(cfg.Completion.APIKeyEnv),
		SnippetWindow:  cfg.Memory.SnippetWindow,
		SearchMessages: cfg.Memory.SearchMessages,
		HistoryWindow:  cfg.Memory.HistoryWindow,
		PromptMessages: cfg.Memory.PromptMessages,
	}, urls)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
