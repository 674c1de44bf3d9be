package executor

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/spachava753/howmanytries/internal/i18n"
	"github.com/spachava753/howmanytries/internal/models"
)

// hardAttemptCap bounds the cap when no limit is configured.
const hardAttemptCap = math.MaxInt32

// paramValidate is the validator instance for simulation parameters.
// Initialized in init() with custom validators.
var paramValidate *validator.Validate

func init() {
	paramValidate = validator.New()

	// truthy rejects 0, -0 and NaN: a zero rate is treated like a missing one.
	mustRegister("truthy", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return f != 0 && !math.IsNaN(f)
	})
	mustRegister("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	mustRegister("integral", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return f == math.Trunc(f)
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := paramValidate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %s validator: %v", tag, err))
	}
}

// Validate checks the caller-supplied parameters in order and returns the
// attempt cap to use. The first failing rule wins:
//
//  1. successRate must be finite, non-zero and within [0, 100]. Exactly 0 is
//     rejected even though the engine can run it.
//  2. attemptCap, when given, must be a finite whole number above 0. A nil cap
//     defaults to models.DefaultAttemptCap.
//  3. attemptCap must not exceed limit (when limit > 0).
func Validate(successRate float64, attemptCap *float64, limit int) (int, error) {
	if err := paramValidate.Var(successRate, "truthy,finite,gte=0,lte=100"); err != nil {
		return 0, &models.ValidationError{Field: "successRate", Message: i18n.MsgSuccessRate}
	}

	if attemptCap == nil {
		return models.DefaultAttemptCap, nil
	}

	if err := paramValidate.Var(*attemptCap, "finite,gt=0,integral"); err != nil {
		return 0, &models.ValidationError{Field: "maxAttempts", Message: i18n.MsgMaxAttempts}
	}

	if limit <= 0 || limit > hardAttemptCap {
		limit = hardAttemptCap
	}
	if *attemptCap > float64(limit) {
		return 0, &models.ValidationError{Field: "maxAttempts", Message: i18n.MsgMaxAttemptsLimit, Args: []any{limit}}
	}

	return int(*attemptCap), nil
}
