package questions

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/AshwinChaudhary21/InterviewChatbot/internal/ai"
	"github.com/AshwinChaudhary21/InterviewChatbot/internal/utils"

	"go.uber.org/zap"
)

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// Service turns a candidate's tech stack into a normalized question Set using
// an LLM generator.
type Service struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
}

func NewService(generator ai.Generator, logger *zap.Logger, maxLogLength int) *Service {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Generate requests 3-5 interview questions per technology in a single
// blocking round trip and normalizes the response. An empty tech list (after
// trimming) is a trivial success and does not touch the generator. Failures
// are surfaced as the typed errors in this package, never coerced to an empty
// result.
func (s *Service) Generate(ctx context.Context, techs []string) (Set, error) {
	cleaned := make([]string, 0, len(techs))
	for _, t := range techs {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}

	if len(cleaned) == 0 {
		return Set{}, nil
	}

	prompt := buildPrompt(cleaned)

	s.logger.Debug("question generation request",
		zap.Strings("techs", cleaned),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	s.logger.Debug("question generation response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, s.maxLogLen)),
	)

	cleanedJSON := extractJSON(raw)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleanedJSON), &parsed); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}

	set, err := Normalize(parsed, cleaned)
	if err != nil {
		return nil, err
	}

	return set, nil
}

func buildPrompt(techs []string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Generate 3-5 interview questions per technology as strict JSON.\n\nTechnologies: {{TECH_LIST}}"
	}
	return strings.ReplaceAll(template, "{{TECH_LIST}}", strings.Join(techs, ", "))
}

// extractJSON strips a markdown code fence when the model wraps its output in
// one despite the JSON-only instruction.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
