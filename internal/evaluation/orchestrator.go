package evaluation

import (
	"context"
	"errors"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Generator is the external generation collaborator. It is invoked exactly
// once per request and is expected, but not guaranteed, to return a JSON
// object matching the result schema.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Evaluator composes the core: build prompt → generate → parse → normalize →
// render. It holds no mutable state across requests, so a single Evaluator is
// safe for unlimited concurrent use.
type Evaluator struct {
	generator Generator
	documents DocumentRenderer
	tracer    trace.Tracer
}

// NewEvaluator constructs an evaluator around the generation collaborator.
// documents may be nil when document export is not configured.
func NewEvaluator(generator Generator, documents DocumentRenderer) *Evaluator {
	return &Evaluator{
		generator: generator,
		documents: documents,
		tracer:    otel.Tracer("evaluation"),
	}
}

// Evaluate runs a single deterministic attempt through the state machine
// Building → AwaitingGeneration → Normalizing → Rendered. Failures terminate
// the request with a typed *Error; no retry or backoff happens here.
func (e *Evaluator) Evaluate(ctx context.Context, form IntakeForm) (EvaluationResult, error) {
	ctx, span := e.tracer.Start(ctx, "evaluation.evaluate")
	defer span.End()

	stage := StageBuilding
	prompt := BuildPrompt(form)

	stage = StageAwaitingGeneration
	raw, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		span.SetStatus(otelcodes.Error, CodeGenerationUnavailable)
		return EvaluationResult{}, newError(stage, CodeGenerationUnavailable,
			"generation collaborator failed", true, err)
	}

	stage = StageNormalizing
	obj, err := Parse(raw)
	if err != nil {
		// A parse failure short-circuits before the normalizer: its totality
		// guarantee only holds for parsed JSON, not for malformed text.
		code := CodeMalformedResponse
		var pe *ParseError
		if errors.As(err, &pe) && pe.Reason == ParseNotAnObject {
			code = CodeUnexpectedShape
			log.Printf("provider returned well-formed JSON of the wrong shape: %s", pe.Detail)
		}
		span.SetStatus(otelcodes.Error, code)
		return EvaluationResult{}, newError(stage, code, "provider response unusable", false, err)
	}
	result := Normalize(obj)

	result.FormattedReport = RenderText(result, form)
	span.SetAttributes(
		attribute.String("evaluation.stage", string(StageRendered)),
		attribute.Int("evaluation.risk_flags", len(result.RiskFlags)),
		attribute.Int("evaluation.followups", len(result.RecommendedFollowups)),
	)
	return result, nil
}

// RenderDocument exports a completed result in printable page form.
func (e *Evaluator) RenderDocument(ctx context.Context, result EvaluationResult) ([]byte, error) {
	ctx, span := e.tracer.Start(ctx, "evaluation.render_document")
	defer span.End()

	if e.documents == nil {
		span.SetStatus(otelcodes.Error, CodeRenderFailure)
		return nil, newError(StageRendered, CodeRenderFailure, "no document renderer configured", false, nil)
	}
	doc, err := e.documents.Render(ctx, result)
	if err != nil {
		span.SetStatus(otelcodes.Error, CodeRenderFailure)
		return nil, newError(StageRendered, CodeRenderFailure, "document export failed", false, err)
	}
	return doc, nil
}
