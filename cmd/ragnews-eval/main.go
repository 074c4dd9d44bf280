package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"ragnews/config"
	"ragnews/internal/adapter/analyzer"
	"ragnews/internal/adapter/llm"
	"ragnews/internal/adapter/memstore"
	"ragnews/internal/adapter/retriever"
	"ragnews/internal/adapter/store"
	"ragnews/internal/logging"
	"ragnews/internal/port"
	"ragnews/internal/usecase"
)

func main() {
	dataPath := flag.String("data", "", "JSONL file of masked evaluation cases")
	dbPath := flag.String("db", "", "article database path (default from config)")
	cfgPath := flag.String("config", "", "config file (default is ./ragnews.yaml)")
	flag.Parse()

	if *dataPath == "" {
		fmt.Println("Usage: ragnews-eval -data cases.jsonl [-db ragnews.db]")
		fmt.Println("\nEach line is a JSON object:")
		fmt.Println(`  {"masked_text": "[MASK0] is the democratic nominee", "masks": ["Kamala Harris"]}`)
		fmt.Println("\nA case counts as correct when the generated answer mentions")
		fmt.Println("every mask value.")
		os.Exit(1)
	}

	_ = godotenv.Load()

	var cfg *config.Config
	var err error
	if *cfgPath != "" {
		cfg, err = config.Load(*cfgPath)
	} else {
		cfg, err = config.LoadFromDir(".")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.Store.Path = *dbPath
	}

	log, err := logging.New(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	f, err := os.Open(*dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening cases: %v\n", err)
		os.Exit(1)
	}
	cases, err := usecase.LoadEvalCases(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading cases: %v\n", err)
		os.Exit(1)
	}
	if len(cases) == 0 {
		fmt.Fprintln(os.Stderr, "No cases found.")
		os.Exit(1)
	}

	tokenizer := analyzer.NewTokenizer()
	var st port.ArticleStore
	if cfg.Store.Path == "" {
		st = memstore.NewMemoryStore(tokenizer)
	} else {
		st, err = store.NewBoltStore(cfg.Store.Path, tokenizer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
			os.Exit(1)
		}
	}
	defer st.Close()

	completer, err := llm.NewClient(cfg.LLM)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating completion client: %v\n", err)
		os.Exit(1)
	}

	searcher := retriever.NewTimeBiasedSearcher(st, tokenizer, log)
	answerer := usecase.NewAnswerer(completer, searcher, cfg.Search.Limit, cfg.Search.TimeBiasAlpha, log)
	evaluator := usecase.NewEvaluator(answerer, log)

	count, _ := st.CountArticles()
	fmt.Println("MASKED-PREDICTION BENCHMARK")
	fmt.Printf("Cases:    %d\n", len(cases))
	fmt.Printf("Articles: %d\n", count)
	fmt.Printf("Model:    %s\n", completer.ModelName())
	fmt.Println()

	report, err := evaluator.Run(context.Background(), cases)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Evaluation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Correct:  %d/%d\n", report.Correct, report.Total)
	fmt.Printf("Accuracy: %.1f%%\n", report.Accuracy*100)
}
