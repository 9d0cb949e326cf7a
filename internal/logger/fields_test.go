package logger

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func fieldMap(fields []zap.Field) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Key] = f.String
	}
	return out
}

func TestFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fields []zap.Field
		expect map[string]string
	}{
		{
			name: "string fields trim and drop blanks",
			fields: StringFields(
				StringField{Key: "  provider  ", Value: "  Gemini  "},
				StringField{Key: "ignored", Value: "   "},
				StringField{Key: "   ", Value: "empty key"},
			),
			expect: map[string]string{"provider": "Gemini"},
		},
		{
			name:   "ai fields",
			fields: AIFields(" gemini ", "gemini-2.5-flash"),
			expect: map[string]string{FieldProvider: "gemini", FieldModel: "gemini-2.5-flash"},
		},
		{
			name:   "ai fields without values",
			fields: AIFields("", ""),
			expect: map[string]string{},
		},
		{
			name:   "unresolved firm",
			fields: FirmFields(" goodwin ", ""),
			expect: map[string]string{FieldFirmQuery: "goodwin"},
		},
		{
			name:   "matched firm carries score",
			fields: MatchFields("goodwin", "Goodwin Procter LLP", 0.8),
			expect: map[string]string{
				FieldFirmQuery:   "goodwin",
				FieldMatchedFirm: "Goodwin Procter LLP",
				FieldMatchScore:  "0.80",
			},
		},
		{
			name:   "score omitted without a match",
			fields: MatchFields("unknown", "", 0),
			expect: map[string]string{FieldFirmQuery: "unknown"},
		},
		{
			name:   "candidate",
			fields: CandidateFields("c1", "Ada Lovelace"),
			expect: map[string]string{FieldCandidateID: "c1", FieldCandidate: "Ada Lovelace"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.expect, fieldMap(tt.fields)); diff != "" {
				t.Fatalf("fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWithAIFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithAIFields(zap.New(core), "gemini", "model-x").Info("narrative requested")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx[FieldProvider] != "gemini" || ctx[FieldModel] != "model-x" {
		t.Fatalf("unexpected context: %v", ctx)
	}

	// a nil logger falls back to a no-op one
	WithAIFields(nil, "gemini", "model-x").Info("dropped")
	WithFields(nil).Info("dropped")
}
