package account

import (
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core"
)

var (
	sectionTag  = "section"
	sectionText = "unknown section"

	accountTypeTag  = "accounttype"
	accountTypeText = fmt.Sprintf("must be one of %s or %s", TypeSchool, TypeFocal)
)

// RegisterValidators registers the account validation tags on validate.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(sectionTag, sectionValidation)
	_ = validate.RegisterValidation(accountTypeTag, accountTypeValidation)

	core.RegisterCustomTranslation(validate, translator, accountTypeTag, accountTypeText)
	_ = validate.RegisterTranslation(
		sectionTag, translator,
		func(t ut.Translator) error { return t.Add(sectionTag, sectionText, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(sectionTag)
			if s, ok := fe.Value().(string); ok {
				if suggestion := SuggestSection(s); suggestion != "" {
					msg += fmt.Sprintf(", did you mean %q?", suggestion)
				}
			}
			return msg
		},
	)
}

// sectionValidation checks that the field is one of Sections
func sectionValidation(fl validator.FieldLevel) bool {
	_, ok := LookupSection(fl.Field().String())
	return ok
}

// accountTypeValidation checks that the field names a concrete account type
func accountTypeValidation(fl validator.FieldLevel) bool {
	return ParseType(fl.Field().String()).Valid()
}
