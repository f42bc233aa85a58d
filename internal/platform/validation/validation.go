package validation

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/FleetScanHQ/fuel_tax_app/internal/core/domain"
)

var stateCodeRe = regexp.MustCompile(`^[A-Za-z]{2}$`)

// RegisterCustomValidators attaches domain validations to gin's binding
// engine. Called once at startup.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("fueltype", validFuelType)
	_ = v.RegisterValidation("usstate", validStateCode)
}

// validFuelType accepts only the closed fuel type set.
func validFuelType(fl validator.FieldLevel) bool {
	return domain.FuelType(fl.Field().String()).IsValid()
}

// validStateCode accepts a 2-letter code in either case; the domain
// normalizes to uppercase afterwards.
func validStateCode(fl validator.FieldLevel) bool {
	return stateCodeRe.MatchString(fl.Field().String())
}
