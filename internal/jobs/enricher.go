package jobs

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/levelup-labs/jobscout/internal/ai"
	"github.com/levelup-labs/jobscout/internal/search"
)

// Enricher derives a short human-readable blurb for one raw listing. An
// enricher never fails: whatever happens it returns a usable summary.
type Enricher interface {
	Enrich(ctx context.Context, result search.Result) string
}

const encouragement = "This role is perfect for building essential skills."

// TemplateEnricher synthesizes the summary from a fixed template.
type TemplateEnricher struct{}

func (TemplateEnricher) Enrich(_ context.Context, result search.Result) string {
	title := result.Title
	if title == "" {
		title = NoTitle
	}
	url := result.URL
	if url == "" {
		url = NoURL
	}
	return fmt.Sprintf("Opportunity: %s\nExplore details at: %s\n%s", title, url, encouragement)
}

// GenerativeEnricher asks the generation capability for the blurb and falls
// back to the template when generation fails or returns nothing.
type GenerativeEnricher struct {
	Generator ai.Generator
	Fallback  Enricher
	Logger    *zap.Logger
}

func NewGenerativeEnricher(generator ai.Generator, logger *zap.Logger) *GenerativeEnricher {
	return &GenerativeEnricher{
		Generator: generator,
		Fallback:  TemplateEnricher{},
		Logger:    logger,
	}
}

func (e *GenerativeEnricher) Enrich(ctx context.Context, result search.Result) string {
	prompt := fmt.Sprintf(
		"Write an encouraging 2-3 line summary of this job listing for a young job seeker.\n"+
			"Title: %s\nURL: %s\nDescription: %s",
		result.Title, result.URL, result.Content,
	)

	summary, err := e.Generator.GenerateContent(ctx, prompt)
	if err != nil {
		e.Logger.Warn("summary generation failed, using template",
			zap.String("title", result.Title),
			zap.Error(err),
		)
		return e.Fallback.Enrich(ctx, result)
	}

	return summary
}
