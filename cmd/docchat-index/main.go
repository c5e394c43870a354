package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"docchat/internal/chunker"
	"docchat/internal/config"
	openaiembed "docchat/internal/embedding/openai"
	"docchat/internal/fetch"
	"docchat/internal/index"
	"docchat/internal/summarizer"
	"docchat/internal/vectorstore"
	"docchat/internal/vectorstore/qdrant"
)

// docchat-index builds a persistent Qdrant index for a URL set, so a chat
// session against the same collection can skip the download/embed step.
func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file")
	flag.Parse()
	urls := flag.Args()
	if len(urls) == 0 {
		fmt.Println("Usage: docchat-index [--config=config.yaml] url1 [url2 ...]")
		os.Exit(1)
	}

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
	if cfg.VectorStore.Type != "qdrant" || cfg.VectorStore.Qdrant == nil {
		log.Fatalf("docchat-index requires vector_store.type: qdrant in the config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\nAborting...")
		cancel()
	}()

	emb, err := openaiembed.NewClient(openaiembed.Config{
		BaseURL:   cfg.Embedder.OpenAI.BaseURL,
		APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
		Model:     cfg.Embedder.OpenAI.Model,
		Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("openai embedder init failed: %v", err)
	}

	qcfg := qdrant.Config{
		URL:        cfg.VectorStore.Qdrant.URL,
		APIKey:     cfg.VectorStore.Qdrant.APIKey,
		Collection: cfg.VectorStore.Qdrant.Collection,
		Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
	}
	fetcher := fetch.NewFetcher(time.Duration(cfg.Fetcher.TimeoutSecs) * time.Second)
	ch := chunker.NewCharChunker(cfg.Chunker.ChunkSize, cfg.Chunker.ChunkOverlap)
	builder := index.NewBuilder(fetcher, ch, emb, func() vectorstore.Storage { return qdrant.NewStorage(qcfg) }).
		WithSummarizer(summarizer.NewFrequencySummarizer(), cfg.Summarizer.MaxSentences)

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Printf("%s %d document(s) into collection %s\n", boldGreen("Indexing"), len(urls), boldCyan(qcfg.Collection))
	for _, u := range urls {
		fmt.Printf("  %s (%s)\n", u, fetch.Classify(u))
	}

	start := time.Now()
	ix, err := builder.Build(ctx, urls)
	if err != nil {
		color.Red("Index build failed: %v", err)
		os.Exit(1)
	}

	fmt.Printf("%s %d chunks in %s\n", boldGreen("Indexed"), ix.Len(), time.Since(start).Round(time.Millisecond))
	if ix.Summary != "" {
		fmt.Printf("Summary: %s\n", ix.Summary)
	}
}
