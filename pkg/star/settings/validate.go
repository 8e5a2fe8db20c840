package settings

import (
	stderrors "errors"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/starbar/pkg/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
			f := fl.Field().Float()
			return !math.IsNaN(f) && !math.IsInf(f, 0)
		})
	})
	return validate
}

// Validate checks s and returns an INVALID_SETTINGS error describing the
// first offending field.
func (s Settings) Validate() error {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidSettings, err, "invalid settings")
	}
	fe := fieldErrs[0]
	return errors.New(errors.ErrCodeInvalidSettings, "%s: %s", fieldName(fe), describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "min":
		return "needs at least " + fe.Param() + " points"
	case "finite":
		return "must be a finite number"
	case "required":
		return "is required"
	default:
		return "failed " + fe.Tag()
	}
}

var fieldNames = map[string]string{
	"TotalStars":       "total_stars",
	"FillMode":         "fill_mode",
	"FillCorrection":   "fill_correction",
	"StarSize":         "star_size",
	"StarMargin":       "star_margin",
	"EmptyBorderWidth": "empty_border_width",
	"StarPoints":       "star_points",
	"TextMargin":       "text_margin",
	"Family":           "font_family",
	"PointSize":        "font_size",
}

// fieldName maps struct fields to their settings file keys so errors read
// the same whether they came from flags or TOML.
func fieldName(fe validator.FieldError) string {
	if name, ok := fieldNames[fe.StructField()]; ok {
		return name
	}
	return strings.ToLower(fe.Field())
}
