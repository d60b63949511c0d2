package ingest

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/domain/career"
	"github.com/khoahotran/portfolio-builder/internal/domain/profile"
	"github.com/khoahotran/portfolio-builder/internal/domain/project"
	"github.com/khoahotran/portfolio-builder/internal/domain/skill"
	"github.com/khoahotran/portfolio-builder/internal/domain/vocab"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"2006-01",
	"01/2006",
	"January 2006",
	"Jan 2006",
	"Jan. 2006",
	"2006",
}

var openEndedDates = map[string]struct{}{
	"present": {},
	"current": {},
	"now":     {},
	"ongoing": {},
	"today":   {},
}

// normalizer turns raw ingestion values into domain values, logging every lossy fallback.
type normalizer struct {
	log logger.Logger
}

func coerce[T ~string](n normalizer, v *vocab.Vocabulary[T], raw string) T {
	value, ok := v.Coerce(raw)
	if !ok {
		n.log.Warn("Unrecognized enum value, using fallback",
			zap.String("enum", v.Name()),
			zap.String("raw", raw),
			zap.String("fallback", string(value)),
		)
	}
	return value
}

func (n normalizer) languageLevel(raw string) profile.LanguageLevel {
	return coerce(n, profile.LanguageLevels, raw)
}

func (n normalizer) skillCategory(raw string) skill.Category {
	return coerce(n, skill.Categories, raw)
}

func (n normalizer) projectCategory(raw string) project.Category {
	return coerce(n, project.Categories, raw)
}

func (n normalizer) projectStatus(raw string) project.Status {
	return coerce(n, project.Statuses, raw)
}

func (n normalizer) educationType(raw string) career.EducationType {
	return coerce(n, career.EducationTypes, raw)
}

// date parses an ISO-ish date. Blank and open-ended values ("present") are absent;
// unparseable values are dropped with a warning.
func (n normalizer) date(field, raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if _, ok := openEndedDates[strings.ToLower(s)]; ok {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	n.log.Warn("Unparseable date dropped", zap.String("field", field), zap.String("raw", raw))
	return nil
}

const (
	minRating = 1
	maxRating = 5
)

// rating rounds to the nearest whole star. Values outside 1..5 after rounding are dropped
// with a warning.
func (n normalizer) rating(raw *float64) *int {
	if raw == nil {
		return nil
	}
	rounded := math.Round(*raw)
	if math.IsNaN(rounded) || rounded < minRating || rounded > maxRating {
		n.log.Warn("Out of range rating dropped", zap.Float64("raw", *raw))
		return nil
	}
	r := int(rounded)
	return &r
}

// socials keeps structured values, parses JSON-looking strings and keeps other strings verbatim.
func (n normalizer) socials(raw any) *profile.Socials {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
			var parsed any
			if err := json.Unmarshal([]byte(s), &parsed); err == nil {
				return profile.NewSocials(parsed)
			}
			n.log.Warn("Socials look like JSON but failed to parse, storing raw string")
		}
		return profile.NewSocials(v)
	case json.RawMessage:
		var parsed any
		if err := json.Unmarshal(v, &parsed); err != nil {
			return profile.NewSocials(string(v))
		}
		return n.socials(parsed)
	default:
		return profile.NewSocials(v)
	}
}

// optional returns nil for blank strings so absent fields are never written.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
