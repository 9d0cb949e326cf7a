package logger

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	FieldProvider    = "ai_provider"
	FieldModel       = "ai_model"
	FieldFirmQuery   = "firm_query"
	FieldMatchedFirm = "matched_firm"
	FieldMatchScore  = "match_score"
	FieldCandidateID = "candidate_id"
	FieldCandidate   = "candidate"
)

// StringField is a string-valued structured field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields. Keys and values are trimmed
// and pairs with a blank key or value are dropped.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		key, value := strings.TrimSpace(f.Key), strings.TrimSpace(f.Value)
		if key == "" || value == "" {
			continue
		}
		result = append(result, zap.String(key, value))
	}
	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// AIFields names the generation provider and model.
func AIFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithAIFields attaches AIFields to logger.
func WithAIFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, AIFields(provider, model)...)
}

// FirmFields describes how a free-form firm name was resolved.
func FirmFields(query, matched string) []zap.Field {
	return StringFields(
		StringField{Key: FieldFirmQuery, Value: query},
		StringField{Key: FieldMatchedFirm, Value: matched},
	)
}

// MatchFields extends FirmFields with the similarity score when a firm matched.
func MatchFields(query, matched string, score float64) []zap.Field {
	fields := FirmFields(query, matched)
	if strings.TrimSpace(matched) != "" {
		fields = append(fields, zap.String(FieldMatchScore, strconv.FormatFloat(score, 'f', 2, 64)))
	}
	return fields
}

// CandidateFields identifies one attorney record.
func CandidateFields(id, name string) []zap.Field {
	return StringFields(
		StringField{Key: FieldCandidateID, Value: id},
		StringField{Key: FieldCandidate, Value: name},
	)
}
