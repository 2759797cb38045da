package scoring

import (
	"fmt"
	"strconv"
	"strings"

	"ppif-diagnostic/internal/domain"
)

// ParsedAnswer is the typed view of a raw answer value, keyed by the
// question type. Exactly one variant field is populated.
type ParsedAnswer struct {
	Type       domain.QuestionType
	Selection  string
	Selections []string
	Number     float64
	Text       string
}

// ParseAnswer validates a raw answer value against its question definition.
// Multi-select values arrive comma-joined.
func ParseAnswer(q domain.Question, raw string) (ParsedAnswer, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ParsedAnswer{}, invalidf("question %s: empty answer value", q.ID)
	}

	switch q.Type {
	case domain.QuestionSingleSelect:
		if !hasOption(q.Options, raw) {
			return ParsedAnswer{}, invalidf("question %s: %q is not a valid option", q.ID, raw)
		}
		return ParsedAnswer{Type: q.Type, Selection: raw}, nil

	case domain.QuestionMultiSelect:
		parts := strings.Split(raw, ",")
		selections := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if !hasOption(q.Options, p) {
				return ParsedAnswer{}, invalidf("question %s: %q is not a valid option", q.ID, p)
			}
			selections = append(selections, p)
		}
		if len(selections) == 0 {
			return ParsedAnswer{}, invalidf("question %s: no options selected", q.ID)
		}
		return ParsedAnswer{Type: q.Type, Selections: selections}, nil

	case domain.QuestionNumeric:
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return ParsedAnswer{}, invalidf("question %s: %q is not numeric", q.ID, raw)
		}
		if value < 0 {
			return ParsedAnswer{}, invalidf("question %s: value must be >= 0", q.ID)
		}
		return ParsedAnswer{Type: q.Type, Number: value}, nil

	case domain.QuestionFreeText:
		return ParsedAnswer{Type: q.Type, Text: raw}, nil
	}
	return ParsedAnswer{}, invalidf("question %s: unknown question type %q", q.ID, q.Type)
}

// Maturity derives the 0-5 maturity point value for a parsed answer.
// The second return is false for qualitative answers that carry no maturity
// signal (free text without a mapping match); those are excluded from the
// weighted denominator rather than scored as zero.
func Maturity(q domain.Question, a ParsedAnswer) (float64, bool) {
	switch a.Type {
	case domain.QuestionSingleSelect:
		if score, ok := q.MaturityMapping[a.Selection]; ok {
			return clamp05(score), true
		}
		// Options are ordered worst-to-best; fall back to positional scoring.
		if idx := optionIndex(q.Options, a.Selection); idx >= 0 && len(q.Options) > 0 {
			return clamp05(float64(idx) / float64(len(q.Options)) * 5.0), true
		}
		return 2.5, true

	case domain.QuestionMultiSelect:
		if len(q.MaturityMapping) > 0 {
			sum, n := 0.0, 0
			for _, sel := range a.Selections {
				if score, ok := q.MaturityMapping[sel]; ok {
					sum += score
					n++
				}
			}
			if n > 0 {
				return clamp05(sum / float64(n)), true
			}
		}
		if len(q.Options) > 0 {
			// Breadth of adoption: more selected practices, higher maturity.
			return clamp05(float64(len(a.Selections)) / float64(len(q.Options)) * 5.0), true
		}
		return 2.5, true

	case domain.QuestionNumeric:
		if q.Numeric != nil {
			if score, ok := q.Numeric.ScoreFor(a.Number); ok {
				return clamp05(score), true
			}
		}
		return 0, true

	case domain.QuestionFreeText:
		for key, score := range q.MaturityMapping {
			if strings.Contains(strings.ToLower(a.Text), strings.ToLower(key)) {
				return clamp05(score), true
			}
		}
		return 0, false
	}
	return 0, false
}

// MaturityForValue parses and scores a raw answer value in one step.
func MaturityForValue(q domain.Question, raw string) (*float64, error) {
	parsed, err := ParseAnswer(q, raw)
	if err != nil {
		return nil, err
	}
	score, ok := Maturity(q, parsed)
	if !ok {
		return nil, nil
	}
	return &score, nil
}

// invalidf builds a validation error wrapping domain.ErrInvalidAnswer so
// callers can distinguish bad input from infrastructure failures.
func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidAnswer, fmt.Sprintf(format, args...))
}

func hasOption(options []string, value string) bool {
	// Free-form catalogs may omit options; accept anything then.
	if len(options) == 0 {
		return true
	}
	return optionIndex(options, value) >= 0
}

func optionIndex(options []string, value string) int {
	for i, opt := range options {
		if opt == value {
			return i
		}
	}
	return -1
}

func clamp05(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return v
}
