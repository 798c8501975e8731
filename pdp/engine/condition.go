package engine

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	rm_errors "github.com/abhiraj070/RuleMind/errors"
	"github.com/abhiraj070/RuleMind/model"
)

// EvaluateCondition tests one condition against a transaction snapshot.
// Unknown fields and operators fail with ErrInvalidCondition instead of
// evaluating to false; an unparsable amount fails with ErrMalformedInput.
func EvaluateCondition(condition model.Condition, tx model.TransactionSnapshot) (bool, error) {
	spec, ok := model.LookupField(condition.Field)
	if !ok {
		return false, fmt.Errorf("%w: unknown field %q", rm_errors.ErrInvalidCondition, condition.Field)
	}
	value, _ := tx.FieldValue(spec.Name)

	switch condition.Operator {
	case model.OpExists:
		return value != "", nil
	case model.OpMissing:
		return value == "", nil
	case model.OpIn:
		if len(condition.Values) == 0 {
			return false, fmt.Errorf("%w: operator %q on field %q needs a value set", rm_errors.ErrInvalidCondition, condition.Operator, condition.Field)
		}
		return slices.Contains(condition.Values, value), nil
	case model.OpGreaterThan, model.OpLessThan, model.OpEqual, model.OpNotEqual:
		if spec.Kind == model.FieldNumeric {
			return compareNumeric(condition, value)
		}
		return compareString(condition.Operator, value, condition.Value.String()), nil
	default:
		return false, fmt.Errorf("%w: unknown operator %q", rm_errors.ErrInvalidCondition, condition.Operator)
	}
}

func compareNumeric(condition model.Condition, value string) (bool, error) {
	target, err := ParseNumericValue(condition.Value.String())
	if err != nil {
		return false, fmt.Errorf("%w: field %q expects a number, got %q", rm_errors.ErrInvalidCondition, condition.Field, condition.Value)
	}

	actual, err := model.NormalizeAmount(value)
	if err != nil {
		return false, err
	}

	switch condition.Operator {
	case model.OpGreaterThan:
		return actual > target, nil
	case model.OpLessThan:
		return actual < target, nil
	case model.OpEqual:
		return actual == target, nil
	default:
		return actual != target, nil
	}
}

func compareString(op model.Operator, value, target string) bool {
	switch op {
	case model.OpGreaterThan:
		return value > target
	case model.OpLessThan:
		return value < target
	case model.OpEqual:
		return value == target
	default:
		return value != target
	}
}

// ParseNumericValue parses a numeric comparison value from a rule. Thousands
// separators are accepted the same way they are in transaction amounts.
func ParseNumericValue(raw string) (float64, error) {
	cleaned := strings.NewReplacer(",", "", "_", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0, strconv.ErrSyntax
	}
	return model.ParseDecimal(cleaned)
}
