package service

import (
	"errors"
	"reflect"
	"strings"

	"bloodconnect/pkg/types"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	// custom validation tags
	bloodTypeTag = "bloodtype"
	urgencyTag   = "urgency"
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report errors by form field name, that is what the templates key on.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(bloodTypeTag, bloodTypeValidation)
	_ = validate.RegisterValidation(urgencyTag, urgencyValidation)

	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range []string{bloodTypeTag, urgencyTag} {
		_ = validate.RegisterTranslation(tag, translator, registerFn, translateCustomValidationErrs)
	}
}

func translateCustomValidationErrs(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case bloodTypeTag:
		return "select a valid blood type"
	case urgencyTag:
		return "select a valid urgency level"
	default:
		return ""
	}
}

func bloodTypeValidation(fl validator.FieldLevel) bool {
	_, err := types.ParseBloodType(fl.Field().String())
	return err == nil
}

func urgencyValidation(fl validator.FieldLevel) bool {
	_, err := types.ParseUrgency(fl.Field().String())
	return err == nil
}

// validateStruct runs the struct's validate tags and converts failures into
// a *types.ValidationError keyed by form field.
func validateStruct(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &types.ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		verr.Fields[fe.Field()] = fe.Translate(translator)
	}
	return verr
}
