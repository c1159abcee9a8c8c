package validator

import (
	"log"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// размер колонки users.phone
const maxPhoneLength = 20

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'notblank': строка не пустая после trim
	mustRegister("notblank", validateNotBlank)

	// 'phone': не длиннее колонки users.phone, формат не проверяется
	mustRegister("phone", validatePhone)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validatePhone(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true // пустое значение проверяет 'required'
	}
	return utf8.RuneCountInString(value) <= maxPhoneLength
}

// ValidPhone проверяет телефон вне struct-валидации (PATCH профиля)
func ValidPhone(value string) bool {
	value = strings.TrimSpace(value)
	return utf8.RuneCountInString(value) <= maxPhoneLength
}
