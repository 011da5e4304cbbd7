package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperrors "cricket-registration-backend/internal/errors"

	"github.com/go-playground/validator/v10"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// NewValidator returns a validator that reports fields by their JSON names
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validationError converts the first validator failure into an apperrors.ValidationError
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.NewValidationError("", err.Error())
	}

	fe := fieldErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return apperrors.NewValidationError(field, field+" is required")
	case "email":
		return apperrors.NewValidationError(field, "must be a valid email address")
	case "min", "gte":
		return apperrors.NewValidationError(field, fmt.Sprintf("must be at least %s", fe.Param()))
	case "max", "lte":
		return apperrors.NewValidationError(field, fmt.Sprintf("must be at most %s", fe.Param()))
	case "len":
		return apperrors.NewValidationError(field, fmt.Sprintf("must be exactly %s characters", fe.Param()))
	case "oneof":
		return apperrors.NewValidationError(field, fmt.Sprintf("must be one of: %s", fe.Param()))
	case "numeric":
		return apperrors.NewValidationError(field, "must contain digits only")
	}
	return apperrors.NewValidationError(field, fmt.Sprintf("failed %s check", fe.Tag()))
}

// normalizePage maps page/pageSize query values onto limit and offset
func normalizePage(page, pageSize int) (int, int, int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize, pageSize, (page - 1) * pageSize
}
