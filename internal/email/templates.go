package email

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
)

//go:embed templates/*.html
var builtinTemplates embed.FS

const TemplatePasswordReset = "password_reset"

// TemplateManager хранит разобранные html-шаблоны писем
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*template.Template),
	}
}

// NewDefaultTemplateManager загружает встроенные шаблоны
func NewDefaultTemplateManager() (*TemplateManager, error) {
	tm := NewTemplateManager()
	if err := tm.LoadFS(builtinTemplates, "templates"); err != nil {
		return nil, err
	}
	return tm, nil
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

// LoadFS загружает все *.html из каталога dir файловой системы fsys
func (tm *TemplateManager) LoadFS(fsys fs.FS, dir string) error {
	return fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".html") {
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", p, err)
		}

		name := strings.TrimSuffix(path.Base(p), ".html")
		if err := tm.AddTemplate(name, string(content)); err != nil {
			return fmt.Errorf("failed to add template %s: %w", name, err)
		}
		return nil
	})
}
