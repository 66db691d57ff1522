// Package extraction runs the skill extraction pipeline: pattern rules, the
// ontology matcher and the optional AI signal are fused, validated against
// context, and analyzed for clusters and gaps.
package extraction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/skill-extractor/internal/analysis"
	"github.com/jonathan/skill-extractor/internal/knowledge"
	"github.com/jonathan/skill-extractor/internal/llm"
	"github.com/jonathan/skill-extractor/internal/logger"
	"github.com/jonathan/skill-extractor/internal/parsing"
	"github.com/jonathan/skill-extractor/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// EngineVersion is reported in every result's metadata.
const EngineVersion = "1.0.0"

// Config holds the engine parameters fixed at construction.
type Config struct {
	ConfidenceThreshold float64
	ContextWindowSize   int
	AITimeout           time.Duration
	Tier                llm.ModelTier
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold: DefaultConfidenceThreshold,
		ContextWindowSize:   DefaultContextWindowSize,
		AITimeout:           DefaultAITimeout,
		Tier:                llm.TierLite,
	}
}

// Request is one extraction call.
type Request struct {
	Text           string
	Industry       types.Industry
	JobDescription string
}

// Engine extracts skills from document text. It is safe for concurrent use;
// each call reads the knowledge snapshot current when it starts.
type Engine struct {
	store     *knowledge.Store
	validator *Validator
	ai        *AIAdapter
	logger    *zap.Logger
}

// NewEngine creates an engine. client may be nil, in which case the AI signal
// is disabled.
func NewEngine(store *knowledge.Store, cfg Config, client llm.Client, log *zap.Logger) (*Engine, error) {
	if store == nil || store.Load() == nil {
		return nil, errors.New("extraction engine requires a knowledge snapshot")
	}
	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 1 {
		return nil, fmt.Errorf("confidence threshold %v is outside [0,1]", cfg.ConfidenceThreshold)
	}
	if cfg.ContextWindowSize < 0 {
		return nil, fmt.Errorf("context window size %d is negative", cfg.ContextWindowSize)
	}

	log = logger.OrNop(log)
	return &Engine{
		store:     store,
		validator: NewValidator(cfg.ConfidenceThreshold, cfg.ContextWindowSize),
		ai:        NewAIAdapter(client, cfg.Tier, cfg.AITimeout, log),
		logger:    log,
	}, nil
}

// AIEnabled reports whether the engine consults the AI signal.
func (e *Engine) AIEnabled() bool {
	return e.ai.Enabled()
}

// KnowledgeVersion returns the version of the current knowledge snapshot.
func (e *Engine) KnowledgeVersion() string {
	return e.store.Load().Version
}

// Extract runs the pipeline. It never fails: missing industries, empty text
// and AI failures all reduce the result rather than abort it. Cancelling ctx
// abandons the AI call only.
func (e *Engine) Extract(ctx context.Context, req Request) *types.ExtractionResult {
	start := time.Now()
	requestID := uuid.New().String()
	snap := e.store.Load()
	doc := parsing.Analyze(req.Text)

	var patternMatches, aiMatches, ontologyMatches []types.SkillMatch
	var g errgroup.Group
	g.Go(func() error {
		patternMatches = snap.Rules.Extract(doc.Text, req.Industry, snap.Ontology)
		return nil
	})
	g.Go(func() error {
		aiMatches = e.ai.Extract(ctx, req.Text, doc.Text, req.Industry, snap.Ontology)
		return nil
	})
	g.Go(func() error {
		ontologyMatches = MatchOntology(doc.Text, req.Industry, snap.Ontology)
		return nil
	})
	_ = g.Wait()

	fused := Fuse(patternMatches, aiMatches, ontologyMatches)
	matches := e.validator.Validate(doc.Text, req.JobDescription, fused)
	Rank(matches)

	var jobSkills []string
	if req.JobDescription != "" {
		for _, m := range snap.Rules.Extract(parsing.NormalizeText(req.JobDescription), req.Industry, snap.Ontology) {
			jobSkills = append(jobSkills, m.NormalizedForm)
		}
	}
	gaps := analysis.FindGaps(snap.Ontology, matches, snap.Trending.For(req.Industry), jobSkills)

	density := 0.0
	if doc.TokenCount > 0 {
		density = types.Clamp01(float64(len(matches)) / float64(doc.TokenCount))
	}

	elapsed := time.Since(start)
	result := &types.ExtractionResult{
		Matches:               matches,
		SkillClusters:         analysis.Clusters(snap.Ontology, matches),
		MissingCriticalSkills: gaps.Missing,
		EmergingSkills:        gaps.Emerging,
		ConfidenceScore:       types.MeanConfidence(matches),
		Metadata: types.ExtractionMetadata{
			RequestID:        requestID,
			EngineVersion:    EngineVersion,
			KnowledgeVersion: snap.Version,
			Industry:         req.Industry,
			TokenCount:       doc.TokenCount,
			TechnicalDensity: density,
			ProcessingTimeMS: elapsed.Milliseconds(),
			AISignal:         len(aiMatches) > 0,
			SourceCounts: types.SourceCounts{
				Pattern:  len(patternMatches),
				AI:       len(aiMatches),
				Ontology: len(ontologyMatches),
			},
		},
	}

	e.logger.Debug("extraction complete",
		append(logger.RequestFields(requestID, req.Industry.String(), snap.Version),
			zap.Int("pattern_candidates", len(patternMatches)),
			zap.Int("ai_candidates", len(aiMatches)),
			zap.Int("ontology_candidates", len(ontologyMatches)),
			zap.Int("matches", len(matches)),
			zap.Duration("latency", elapsed),
		)...,
	)

	return result
}
