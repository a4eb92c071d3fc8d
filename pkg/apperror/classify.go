package apperror

import (
	"errors"
	"strings"
)

// Classifier turns raw dependency failures into taxonomy errors.
//
// The default implementation matches substrings of the error text. Neither the
// model provider nor the store is guaranteed to keep that wording stable, so
// this is best effort; a classifier reading structured codes can replace it
// without changing the kinds callers see.
type Classifier interface {
	ClassifyAI(err error) *AppError
	ClassifyDatabase(err error) *AppError
}

type SubstringClassifier struct{}

func (SubstringClassifier) ClassifyAI(err error) *AppError {
	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "api key"):
		return newAppError(ErrAIService, MsgAIConfiguration, "model provider rejected configuration", err)
	case strings.Contains(text, "rate limit"):
		return newAppError(ErrAIService, MsgAIRateLimit, "model provider rate limited the request", err)
	case strings.Contains(text, "timeout"):
		return newAppError(ErrAIService, MsgAITimeout, "model provider request timed out", err)
	default:
		return NewAIService("model provider request failed", err)
	}
}

func (SubstringClassifier) ClassifyDatabase(err error) *AppError {
	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "connection"):
		return newAppError(ErrDatabase, MsgDatabaseConnection, "record store unreachable", err)
	case strings.Contains(text, "duplicate key"):
		return NewConflict("record store rejected a duplicate key", err)
	default:
		return NewDatabase("record store operation failed", err)
	}
}

var DefaultClassifier Classifier = SubstringClassifier{}

// ClassifyAIError leaves already-classified errors untouched.
func ClassifyAIError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	return DefaultClassifier.ClassifyAI(err)
}

func ClassifyDatabaseError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	return DefaultClassifier.ClassifyDatabase(err)
}
