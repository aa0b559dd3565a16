// Package validation validates configuration structs through
// go-playground/validator struct tags and reports failures as
// INVALID_CONFIG AppErrors that name every offending field.
//
//	type Config struct {
//	    Name string `mapstructure:"name" validate:"required"`
//	}
//	err := validation.Validate(cfg)
package validation
