package apperror

import (
	"errors"

	"go.uber.org/zap"

	"github.com/khoahotran/career-os/pkg/logger"
)

// Response is the sanitized failure handed to callers.
type Response struct {
	Kind    Kind     `json:"kind"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
	Entity  string   `json:"entity,omitempty"`
	ID      string   `json:"id,omitempty"`
}

var defaultMessages = map[Kind]string{
	KindAuthentication: MsgAuthentication,
	KindAIService:      MsgAIService,
	KindDatabase:       MsgDatabase,
	KindInternal:       MsgInternal,
}

// safeMessages are the only texts allowed through for kinds other than
// validation and not-found.
var safeMessages = map[Kind]map[string]bool{
	KindAuthentication: {MsgAuthentication: true},
	KindAIService:      {MsgAIService: true, MsgAIConfiguration: true, MsgAIRateLimit: true, MsgAITimeout: true},
	KindDatabase:       {MsgDatabase: true, MsgDatabaseConnection: true},
	KindInternal:       {MsgInternal: true},
}

type Mapper struct {
	logger logger.Logger
}

func NewMapper(log logger.Logger) *Mapper {
	return &Mapper{logger: log}
}

// Render logs err in full exactly once and returns what the caller may see.
func (m *Mapper) Render(err error, fields ...zap.Field) Response {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternal("unclassified error", err)
	}
	kind := appErr.Kind()

	fields = append(fields, zap.String("kind", string(kind)))
	if len(appErr.Fields) > 0 {
		fields = append(fields, zap.Strings("fields", appErr.Fields))
	}
	m.logger.Error("Operation failed", err, fields...)

	resp := Response{Kind: kind}
	switch kind {
	case KindValidation:
		resp.Message = appErr.Message
		resp.Fields = appErr.Fields
	case KindNotFound:
		resp.Message = appErr.Message
		resp.Entity = appErr.Entity
		resp.ID = appErr.ID
	default:
		resp.Message = defaultMessages[kind]
		if safeMessages[kind][appErr.Message] {
			resp.Message = appErr.Message
		}
	}
	return resp
}
