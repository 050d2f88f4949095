package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/sbogelman-afk/hart-backend-dual/internal/config"
	"github.com/sbogelman-afk/hart-backend-dual/internal/evaluation"
	"github.com/sbogelman-afk/hart-backend-dual/internal/llm"
)

// hart-eval runs one intake form through the evaluation pipeline from the
// command line and prints the formatted report, or the full result as JSON.
func main() {
	var (
		inputPath  = flag.String("input", "", "Path to intake form JSON (use - for stdin)")
		cfgFile    = flag.String("config", "", "Path to config file (optional)")
		asJSON     = flag.Bool("json", false, "Print the full evaluation result as JSON")
		outputPath = flag.String("output", "", "Write output to file instead of stdout")
	)
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("missing required -input")
	}

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		log.Fatal(err)
	}

	var in []byte
	if *inputPath == "-" {
		in, err = io.ReadAll(os.Stdin)
	} else {
		in, err = os.ReadFile(*inputPath)
	}
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	var form evaluation.IntakeForm
	if err := json.Unmarshal(in, &form); err != nil {
		log.Fatalf("decode intake form: %v", err)
	}

	generator, err := llm.New(llm.Config{
		Provider:          cfg.Provider,
		Model:             cfg.Model,
		APIKey:            cfg.APIKey,
		BaseURL:           cfg.BaseURL,
		MaxTokens:         cfg.MaxTokens,
		Timeout:           cfg.RequestTimeout,
		RequestsPerMinute: cfg.RequestsPerMinute,
	})
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	evaluator := evaluation.NewEvaluator(generator, nil)
	result, err := evaluator.Evaluate(ctx, form)
	if err != nil {
		log.Fatalf("evaluate (stage=%s code=%s): %v",
			evaluation.StageFromError(err), evaluation.ErrorCode(err), err)
	}

	out := result.FormattedReport
	if *asJSON {
		b, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("encode result: %v", err)
		}
		out = string(b) + "\n"
	}

	if *outputPath == "" {
		fmt.Print(out)
		return
	}
	if err := os.WriteFile(*outputPath, []byte(out), 0o644); err != nil {
		log.Fatalf("write output: %v", err)
	}
}
