package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MinReleaseYear     = 1900
	MaxAlbumNameLength = 100
	RecordNumberPrefix = "ECM "
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Validators are registered at init; a failure here is a programming error.
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "fullname", func(fl validator.FieldLevel) bool {
		return strings.Contains(strings.TrimSpace(fl.Field().String()), " ")
	})
	mustRegister(v, "ecmrecord", func(fl validator.FieldLevel) bool {
		return strings.HasPrefix(fl.Field().String(), RecordNumberPrefix)
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validator: %v", tag, err))
	}
}

// checkStruct runs the struct tags of s and translates the first failing
// field into the matching domain error. fieldErrs is keyed by struct
// namespace with any slice index dropped, e.g. "Album.Tracks".
func checkStruct(s any, fieldErrs map[string]error) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidEntity, err)
	}

	fe := verrs[0]
	key := fe.StructNamespace()
	if i := strings.IndexByte(key, '['); i >= 0 {
		key = key[:i]
	}
	if sentinel, ok := fieldErrs[key]; ok {
		return fmt.Errorf("%w: %s failed %q", sentinel, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %s failed %q", ErrInvalidEntity, fe.StructNamespace(), fe.Tag())
}

// ValidateReleaseYear checks year against [MinReleaseYear, currentYear].
func ValidateReleaseYear(year, currentYear int) error {
	if year < MinReleaseYear || year > currentYear {
		return fmt.Errorf("%w: got %d", ErrInvalidReleaseYear, year)
	}
	return nil
}
