package dto

import (
	"encoding/json"
	"strings"
)

// OptionalString различает три состояния поля PATCH-запроса:
// ключ отсутствует (Set=false), передан null (Set=true, Valid=false)
// и передана строка (Set=true, Valid=true).
type OptionalString struct {
	Set   bool
	Valid bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		o.Value = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Valid = true
	o.Value = s
	return nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Trimmed возвращает значение без пробелов по краям; null даёт ""
func (o OptionalString) Trimmed() string {
	if !o.Valid {
		return ""
	}
	return strings.TrimSpace(o.Value)
}

// Normalized: trim, пустая строка и null превращаются в nil
func (o OptionalString) Normalized() *string {
	v := o.Trimmed()
	if v == "" {
		return nil
	}
	return &v
}

// Some - заполненное значение, удобно в тестах и при сборке запросов в коде
func Some(v string) OptionalString {
	return OptionalString{Set: true, Valid: true, Value: v}
}

// Null - явно переданный null
func Null() OptionalString {
	return OptionalString{Set: true}
}

// NormalizeText применяет то же правило к *string: trim, пустое -> nil
func NormalizeText(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
