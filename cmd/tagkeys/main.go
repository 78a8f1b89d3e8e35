package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/lexitag/pkg/lexitag/config"
	"github.com/cognicore/lexitag/pkg/lexitag/enhance"
	"github.com/cognicore/lexitag/pkg/lexitag/pipeline"
	"github.com/cognicore/lexitag/pkg/lexitag/pool"
	"github.com/cognicore/lexitag/pkg/lexitag/pool/memstore"
	"github.com/cognicore/lexitag/pkg/lexitag/pool/sqlite"
)

func main() {
	var (
		dictDir      = flag.String("dicts", "", "Dictionary directory (optional)")
		stoplistPath = flag.String("stoplist", "", "Stoplist file (optional)")
		phrasesPath  = flag.String("phrases", "", "Phrase table file (optional)")
		spansPath    = flag.String("spans", "", "Span table file (optional)")
		dbPath       = flag.String("db", "", "Candidate pool database (optional)")
		aiURL        = flag.String("ai-url", "", "Chat completion endpoint (optional)")
		aiKey        = flag.String("ai-key", os.Getenv("LEXITAG_AI_KEY"), "API key for the endpoint")
		aiModel      = flag.String("ai-model", "", "Model name for the endpoint")
		keyword      = flag.String("keyword", "", "One-shot keyword (non-interactive mode)")
		jsonOut      = flag.Bool("json", false, "Emit JSON instead of text")
	)
	flag.Parse()

	ctx := context.Background()

	p, cleanup, err := buildPipeline(ctx, *dictDir, *stoplistPath, *phrasesPath, *spansPath, *dbPath, *aiURL, *aiKey, *aiModel)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	// One-shot mode
	if *keyword != "" {
		if err := analyze(ctx, p, *keyword, *jsonOut); err != nil {
			log.Fatal(err)
		}
		return
	}

	// Interactive mode
	fmt.Println("===========================================")
	fmt.Println("  lexitag keyword tagger")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("Type a keyword (Ctrl+D to exit):")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		kw := strings.TrimSpace(scanner.Text())
		if kw == "" {
			continue
		}

		if err := analyze(ctx, p, kw, *jsonOut); err != nil {
			fmt.Println("Error:", err)
		}
	}

	fmt.Println("\nGoodbye!")
}

func analyze(ctx context.Context, p *pipeline.Pipeline, keyword string, jsonOut bool) error {
	res, err := p.Process(ctx, keyword)
	if err != nil {
		return fmt.Errorf("process: %w", err)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Printf("\nKeyword:  %s\n", res.Original)
	fmt.Printf("Language: %s\n", res.Language)
	fmt.Println("Tokens:")
	for _, r := range res.Tagged {
		fmt.Printf("  %-20s %-10s %.2f  (%s)\n", r.Token, r.Primary, r.Confidence, r.Method)
	}
	if len(res.Summary) > 0 {
		fmt.Println("Summary:")
		for tagName, tokens := range res.Summary {
			fmt.Printf("  %-10s %v\n", tagName, tokens)
		}
	}
	fmt.Println()
	return nil
}

func buildPipeline(ctx context.Context, dictDir, stoplistPath, phrasesPath, spansPath, dbPath, aiURL, aiKey, aiModel string) (*pipeline.Pipeline, func(), error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, nil, err
	}

	loader := config.Loader{
		DictDir:      dictDir,
		StoplistPath: stoplistPath,
		PhrasesPath:  phrasesPath,
		SpansPath:    spansPath,
	}
	components, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	cleanup := func() { _ = logger.Sync() }

	var enhancer *enhance.Enhancer
	if aiURL != "" && aiModel != "" {
		var store pool.Store = memstore.New()
		if dbPath != "" {
			store, err = sqlite.Open(ctx, dbPath)
			if err != nil {
				return nil, nil, fmt.Errorf("open pool store: %w", err)
			}
			closeStore := store.Close
			prev := cleanup
			cleanup = func() {
				_ = closeStore()
				prev()
			}
		}
		candidates := pool.New(store, pool.DefaultOptions(), logger)
		enhancer, err = enhance.New(&enhance.Client{
			BaseURL: aiURL,
			APIKey:  aiKey,
			Model:   aiModel,
		}, candidates, enhance.DefaultOptions(), logger)
		if err != nil {
			return nil, nil, fmt.Errorf("build enhancer: %w", err)
		}
	}

	p := pipeline.New(pipeline.Config{
		Dicts:     components.Dicts,
		Tagger:    components.Tagger,
		Merger:    components.Merger,
		Extractor: components.Extractor,
		Enhancer:  enhancer,
		Logger:    logger,
	})
	return p, cleanup, nil
}
