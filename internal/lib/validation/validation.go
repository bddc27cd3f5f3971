// Package validation настраивает общий валидатор входящих DTO.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// DateTag проверяет, что строка является датой в формате models.DateLayout.
const DateTag = "date"

// New возвращает валидатор, который называет поля по их json-тегам,
// чтобы ошибки совпадали с именами полей в запросе.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Ошибка возможна только при пустом имени тега или nil-функции.
	_ = v.RegisterValidation(DateTag, isDate)
	return v
}

func isDate(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	_, err := models.ParseDate(field.String())
	return err == nil
}
