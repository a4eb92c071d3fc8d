package persistence

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/khoahotran/career-os/pkg/apperror"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	// required on a struct-typed field such as calendar.Date means non-zero
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so callers see the same field names they sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRecord checks v against its validate tags and collects every failing field.
func validateRecord(entity string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewInternal("validate "+entity, err)
	}

	fields := make([]string, 0, len(verrs))
	onlyMissing := true
	for _, fe := range verrs {
		ns := fe.Namespace()
		if i := strings.IndexByte(ns, '.'); i >= 0 {
			ns = ns[i+1:]
		}
		fields = append(fields, ns)
		if fe.Tag() != "required" {
			onlyMissing = false
		}
	}

	if onlyMissing {
		return apperror.NewMissingFields(entity, fields)
	}
	return apperror.NewValidation(fmt.Sprintf("Missing or invalid %s fields: %s", entity, strings.Join(fields, ", ")), fields...)
}
