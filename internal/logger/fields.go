package logger

import (
	"go.uber.org/zap"
)

// Structured log field keys shared by the extraction components.
const (
	FieldRequestID = "request_id"
	FieldIndustry  = "industry"
	FieldProvider  = "ai_provider"
	FieldModel     = "ai_model"
	FieldKnowledge = "knowledge_version"
)

// RequestFields returns the fields identifying one extraction call.
func RequestFields(requestID, industry, knowledgeVersion string) []zap.Field {
	fields := make([]zap.Field, 0, 3)
	if requestID != "" {
		fields = append(fields, zap.String(FieldRequestID, requestID))
	}
	if industry != "" {
		fields = append(fields, zap.String(FieldIndustry, industry))
	}
	if knowledgeVersion != "" {
		fields = append(fields, zap.String(FieldKnowledge, knowledgeVersion))
	}
	return fields
}

// WithAI attaches the AI provider and model to the logger, skipping empty values.
func WithAI(l *zap.Logger, provider, model string) *zap.Logger {
	l = OrNop(l)
	var fields []zap.Field
	if provider != "" {
		fields = append(fields, zap.String(FieldProvider, provider))
	}
	if model != "" {
		fields = append(fields, zap.String(FieldModel, model))
	}
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}
