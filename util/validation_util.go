// util/validation_util.go

package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	rm_errors "github.com/abhiraj070/RuleMind/errors"
	"github.com/abhiraj070/RuleMind/model"
	"github.com/abhiraj070/RuleMind/pdp/engine"
)

type ValidationUtil struct {
	validate *validator.Validate
}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// ValidateRule checks a complete rule definition. Every failure wraps
// ErrValidation.
func (v *ValidationUtil) ValidateRule(rule model.Rule) error {
	if err := v.validate.Struct(rule); err != nil {
		return validationError(err)
	}
	for i, condition := range rule.Conditions {
		if err := ValidateCondition(condition); err != nil {
			return fmt.Errorf("%w (condition %d)", err, i+1)
		}
	}
	return nil
}

// ValidatePatch checks the fields a patch sets.
func (v *ValidationUtil) ValidatePatch(patch model.RulePatch) error {
	if patch.IsEmpty() {
		return fmt.Errorf("%w: patch changes nothing", rm_errors.ErrValidation)
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("%w: rule name cannot be empty", rm_errors.ErrValidation)
	}
	if patch.Severity != nil && patch.Severity.Rank() == 0 {
		return fmt.Errorf("%w: unknown severity %q", rm_errors.ErrValidation, *patch.Severity)
	}
	if patch.Action != nil && !patch.Action.Valid() {
		return fmt.Errorf("%w: unknown action %q", rm_errors.ErrValidation, *patch.Action)
	}
	if patch.Conditions != nil {
		if len(patch.Conditions) == 0 {
			return fmt.Errorf("%w: rule must have at least one condition", rm_errors.ErrValidation)
		}
		for i, condition := range patch.Conditions {
			if err := ValidateCondition(condition); err != nil {
				return fmt.Errorf("%w (condition %d)", err, i+1)
			}
		}
	}
	return nil
}

// ValidateCondition checks that the field is recognized, the operator is
// known and the value fits both.
func ValidateCondition(condition model.Condition) error {
	def, ok := model.LookupField(condition.Field)
	if !ok {
		return fmt.Errorf("%w: unknown field %q", rm_errors.ErrValidation, condition.Field)
	}

	switch condition.Operator {
	case model.OpExists, model.OpMissing:
		return nil
	case model.OpIn:
		if len(condition.Values) == 0 {
			return fmt.Errorf("%w: operator \"in\" needs at least one value", rm_errors.ErrValidation)
		}
		if def.Kind == model.FieldNumeric {
			return fmt.Errorf("%w: operator \"in\" is not supported on numeric field %q", rm_errors.ErrValidation, def.Name)
		}
		for _, value := range condition.Values {
			if !def.Allows(value) {
				return fmt.Errorf("%w: %q is not a valid %s", rm_errors.ErrValidation, value, def.Name)
			}
		}
		return nil
	case model.OpGreaterThan, model.OpLessThan, model.OpEqual, model.OpNotEqual:
		value := condition.Value.String()
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: operator %q needs a value", rm_errors.ErrValidation, condition.Operator)
		}
		if def.Kind == model.FieldNumeric {
			if _, err := engine.ParseNumericValue(value); err != nil {
				return fmt.Errorf("%w: field %q expects a number, got %q", rm_errors.ErrValidation, def.Name, value)
			}
			return nil
		}
		if condition.Operator == model.OpGreaterThan || condition.Operator == model.OpLessThan {
			return fmt.Errorf("%w: operator %q is only supported on numeric fields", rm_errors.ErrValidation, condition.Operator)
		}
		if !def.Allows(value) {
			return fmt.Errorf("%w: %q is not a valid %s", rm_errors.ErrValidation, value, def.Name)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown operator %q", rm_errors.ErrValidation, condition.Operator)
	}
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", rm_errors.ErrValidation, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", rm_errors.ErrValidation, strings.Join(msgs, "; "))
}
