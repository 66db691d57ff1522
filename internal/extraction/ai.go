package extraction

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/skill-extractor/internal/llm"
	"github.com/jonathan/skill-extractor/internal/logger"
	"github.com/jonathan/skill-extractor/internal/ontology"
	"github.com/jonathan/skill-extractor/internal/parsing"
	"github.com/jonathan/skill-extractor/internal/prompts"
	"github.com/jonathan/skill-extractor/internal/types"
	"go.uber.org/zap"
)

const (
	promptFile = "extraction.json"
	promptKey  = "extract-skills"

	aiWeightFactor = 0.9
	aiContext      = 0.6

	// DefaultAITimeout bounds a single model call.
	DefaultAITimeout = 15 * time.Second

	maxLogLength = 200
)

// AIAdapter turns a model reply into candidate matches. It never fails:
// every transport, timeout or parse problem is logged and yields no matches.
type AIAdapter struct {
	client  llm.Client
	tier    llm.ModelTier
	timeout time.Duration
	logger  *zap.Logger
}

// NewAIAdapter wraps client. A nil client produces an adapter that is always
// silent.
func NewAIAdapter(client llm.Client, tier llm.ModelTier, timeout time.Duration, log *zap.Logger) *AIAdapter {
	if timeout <= 0 {
		timeout = DefaultAITimeout
	}
	if tier == "" {
		tier = llm.TierLite
	}
	return &AIAdapter{client: client, tier: tier, timeout: timeout, logger: logger.OrNop(log)}
}

// Enabled reports whether the adapter has a client to call.
func (a *AIAdapter) Enabled() bool {
	return a != nil && a.client != nil
}

// Extract asks the model for skills in raw and converts the reply. The
// normalized text is used to locate each skill so that negation detection
// can inspect its surroundings; skills that cannot be located get position -1.
func (a *AIAdapter) Extract(ctx context.Context, raw, text string, industry types.Industry, onto *ontology.Ontology) []types.SkillMatch {
	if !a.Enabled() || text == "" {
		return nil
	}

	log := a.logger.With(zap.String(logger.FieldIndustry, industry.String()))

	prompt, err := prompts.Render(promptFile, promptKey, map[string]string{
		"Industry": industryLabel(industry),
		"Text":     raw,
	})
	if err != nil {
		log.Warn("AI extraction skipped: prompt unavailable", zap.Error(err))
		return nil
	}

	log.Debug("AI extraction request",
		zap.String(logger.FieldModel, a.client.GetModel(a.tier)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, maxLogLength)),
	)

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	reply, err := a.client.GenerateJSON(callCtx, prompt, a.tier)
	if err != nil {
		reason := "error"
		if errors.Is(err, context.DeadlineExceeded) {
			reason = "timeout"
		} else if errors.Is(err, context.Canceled) {
			reason = "canceled"
		}
		log.Warn("AI extraction degraded", zap.String("reason", reason), zap.Error(err))
		return nil
	}

	log.Debug("AI extraction response",
		zap.Int("response_length", utf8.RuneCountInString(reply)),
		zap.String("response_preview", logger.TruncateForLog(reply, maxLogLength)),
	)

	candidates, ok := llm.ParseSkillCandidates(reply)
	if !ok {
		log.Warn("AI extraction degraded", zap.String("reason", "unparseable reply"),
			zap.String("response_preview", logger.TruncateForLog(reply, maxLogLength)))
		return nil
	}

	return candidatesToMatches(candidates, text, industry, onto)
}

// candidatesToMatches converts model candidates, keeping the first candidate
// for each normalized form.
func candidatesToMatches(candidates []llm.SkillCandidate, text string, industry types.Industry, onto *ontology.Ontology) []types.SkillMatch {
	seen := make(map[string]bool, len(candidates))
	matches := make([]types.SkillMatch, 0, len(candidates))

	for _, c := range candidates {
		normalized := onto.NormalizedForm(c.Skill)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true

		confidence := types.Clamp01(c.Confidence)
		var phrases []string
		if c.Context != "" {
			phrases = []string{c.Context}
		}

		matches = append(matches, types.SkillMatch{
			Keyword:            c.Skill,
			NormalizedForm:     normalized,
			Category:           c.Category,
			ConfidenceScore:    confidence,
			ContextRelevance:   aiContext,
			Weight:             confidence * aiWeightFactor,
			MatchType:          types.MatchSemantic,
			ContextPhrases:     phrases,
			SemanticVariations: onto.SynonymsOf(normalized),
			IndustryRelevance:  onto.IndustryRelevance(normalized, industry),
			WordPosition:       findTerm(text, parsing.NormalizeText(c.Skill)),
		})
	}
	return matches
}

func industryLabel(industry types.Industry) string {
	if industry == types.IndustryUnknown {
		return "general"
	}
	return industry.String()
}

// findTerm returns the byte offset of the first whole-word occurrence of
// term in text, or -1.
func findTerm(text, term string) int {
	if term == "" {
		return -1
	}
	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], term)
		if i < 0 {
			return -1
		}
		start := offset + i
		end := start + len(term)
		if !wordBefore(text, start) && !wordAfter(text, end) {
			return start
		}
		offset = start + 1
	}
	return -1
}

func wordBefore(text string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return isWordRune(r)
}

func wordAfter(text string, i int) bool {
	if i >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
