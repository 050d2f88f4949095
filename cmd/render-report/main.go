package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/sbogelman-afk/hart-backend-dual/internal/docrender"
	"github.com/sbogelman-afk/hart-backend-dual/internal/evaluation"
)

// render-report rebuilds a PDF document from a saved evaluation result, for
// reprinting past evaluations without another provider call.
func main() {
	var (
		inputPath  = flag.String("input", "", "Path to saved evaluation result JSON")
		outputPath = flag.String("output", "evaluation.pdf", "Path to write the PDF")
	)
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("missing required -input")
	}

	in, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	var result evaluation.EvaluationResult
	if err := json.Unmarshal(in, &result); err != nil {
		log.Fatalf("decode result JSON: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pdf, err := docrender.NewChromiumRenderer().Render(ctx, result)
	if err != nil {
		log.Fatalf("render pdf: %v", err)
	}
	if err := os.WriteFile(*outputPath, pdf, 0o644); err != nil {
		log.Fatalf("write pdf: %v", err)
	}
	log.Printf("wrote %s (%d bytes)", *outputPath, len(pdf))
}
