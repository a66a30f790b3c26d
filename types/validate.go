package types

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ═══════════════════════════════════════════════════════════════════════════════
// SNAPSHOT VALIDATION - Collect every violated rule, not just the first
// ═══════════════════════════════════════════════════════════════════════════════

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Let numeric tags (gt, gte, lte) see decimal fields as float64.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// SnapshotError reports all input rules a snapshot violates. Callers decide
// whether to block on it; ClassifyVIX itself clamps rather than rejects.
type SnapshotError struct {
	Violations []string
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("invalid breadth snapshot: %s", strings.Join(e.Violations, "; "))
}

// Validate checks the snapshot against the strict input rules and returns a
// *SnapshotError listing every violation, or nil. Apply WithDefaults first
// so an unset portfolio size is not reported.
func (s BreadthSnapshot) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	se := &SnapshotError{}
	for _, fe := range verrs {
		se.Violations = append(se.Violations, violationMessage(fe))
	}
	return se
}

func violationMessage(fe validator.FieldError) string {
	switch fe.StructField() {
	case "T2108":
		return fmt.Sprintf("t2108 must be within [0,100], got %v", fe.Value())
	case "VIX":
		return fmt.Sprintf("vix must be within [0,200], got %v", fe.Value())
	case "Up4Pct":
		return fmt.Sprintf("up4pct must not be negative, got %v", fe.Value())
	case "Down4Pct":
		return fmt.Sprintf("down4pct must not be negative, got %v", fe.Value())
	case "BasePosition":
		return fmt.Sprintf("base position must be positive, got %v", fe.Value())
	case "PortfolioSize":
		return fmt.Sprintf("portfolio size must be positive, got %v", fe.Value())
	default:
		return fmt.Sprintf("%s failed rule %q", fe.StructField(), fe.Tag())
	}
}
