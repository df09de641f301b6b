package inventory

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/erazemk/shouna/internal/model"
)

// ErrInvalid marks input rejected by validation.
var ErrInvalid = errors.New("invalid input")

// ValidationError lists the rejected fields by their JSON names.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		validate = v
	})
	return validate
}

// Validate checks a new item the way the add-item form does: name and
// category are required, quantity must be positive, dates are YYYY-MM-DD.
func Validate(in model.NewItem) error {
	err := getValidator().Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating item: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			fields[field] = "必填"
		case "min":
			fields[field] = fmt.Sprintf("不能小于 %s", e.Param())
		case "max":
			fields[field] = fmt.Sprintf("不能超过 %s", e.Param())
		case "datetime":
			fields[field] = "日期格式应为 YYYY-MM-DD"
		default:
			fields[field] = "无效"
		}
	}
	return &ValidationError{Fields: fields}
}
