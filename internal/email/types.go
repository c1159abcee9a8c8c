package email

// Email представляет структуру email сообщения
type Email struct {
	From     string   `json:"from"`
	To       []string `json:"to"`
	Subject  string   `json:"subject"`
	Body     string   `json:"body"`
	HTMLBody string   `json:"htmlBody,omitempty"`
}

// TemplateData представляет данные для шаблонов писем
type TemplateData map[string]interface{}
