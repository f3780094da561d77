package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ideaboard/internal/common"
	"github.com/go-playground/validator/v10"
)

// validationError flattens validator output into common.ErrValidation with
// a readable field list, e.g. "validation error: email must be a valid email".
func validationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "email":
			msgs = append(msgs, field+" must be a valid email")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(msgs, ", "))
}

func validateStruct(v *validator.Validate, in any) error {
	if err := v.Struct(in); err != nil {
		return validationError(err)
	}
	return nil
}

func validateEmail(v *validator.Validate, email string) error {
	if err := v.Var(email, "required,email"); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 && ve[0].Tag() == "required" {
			return fmt.Errorf("%w: email is required", common.ErrValidation)
		}
		return fmt.Errorf("%w: email must be a valid email", common.ErrValidation)
	}
	return nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
