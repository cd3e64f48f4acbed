package Controllers

import (
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	locale := en.New()
	uni := ut.New(locale, locale)
	trans, _ = uni.GetTranslator("en")
	validate = validator.New()
	_ = entranslations.RegisterDefaultTranslations(validate, trans)
}

// validationMessage turns validator errors into one readable sentence.
func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	var parts []string
	for _, fe := range errs {
		parts = append(parts, fe.Translate(trans))
	}
	return strings.Join(parts, "; ")
}
