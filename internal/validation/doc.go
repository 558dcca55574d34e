// Package validation provides input validation for alexops.
//
// It supports both struct tag validation (using the validator library)
// and programmatic validation with error collection. Struct tag
// validation is used for fixture and model constraints; decimal.Decimal
// fields participate in numeric tags (gt, gte, lte) through a custom
// type function.
//
// # Struct Tag Validation
//
//	type Position struct {
//	    Symbol   string          `validate:"required"`
//	    Quantity decimal.Decimal `validate:"gt=0"`
//	}
//	err := validation.Validate(p)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("binary", cfg.Binary)
//	err := v.Validate()
package validation
