package validator

import (
	stderrors "errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/quadrago-discovery/internal/pkg/errors"
)

var (
	validate *validator.Validate

	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return datePattern.MatchString(fl.Field().String())
	})
}

// Validate - валидация структуры, ошибки приводятся к INVALID_REQUEST с перечнем полей
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.ErrInvalidRequest
	}

	fields := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
		"fields": fields,
	})
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
