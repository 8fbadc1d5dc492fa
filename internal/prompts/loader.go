// Package prompts holds the model prompts. They live in YAML files
// embedded at compile time; every value is a text/template.
package prompts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var promptFiles embed.FS

var (
	cache   = make(map[string]map[string]*template.Template)
	cacheMu sync.RWMutex
)

var funcs = template.FuncMap{
	"json": func(v any) (string, error) {
		data, err := json.Marshal(v)
		return string(data), err
	},
	"inc": func(i int) int { return i + 1 },
}

// Render executes the prompt stored under key in file with data.
func Render(file, key string, data any) (string, error) {
	templates, err := loadFile(file)
	if err != nil {
		return "", err
	}

	tmpl, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, file)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt %s/%s: %w", file, key, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// Keys lists the prompt keys defined in file.
func Keys(file string) ([]string, error) {
	templates, err := loadFile(file)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(templates))
	for key := range templates {
		keys = append(keys, key)
	}
	return keys, nil
}

func loadFile(file string) (map[string]*template.Template, error) {
	cacheMu.RLock()
	templates, ok := cache[file]
	cacheMu.RUnlock()
	if ok {
		return templates, nil
	}

	data, err := promptFiles.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", file, err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", file, err)
	}

	templates = make(map[string]*template.Template, len(raw))
	for key, text := range raw {
		tmpl, err := template.New(key).Funcs(funcs).Option("missingkey=error").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse prompt %s/%s: %w", file, key, err)
		}
		templates[key] = tmpl
	}

	cacheMu.Lock()
	cache[file] = templates
	cacheMu.Unlock()

	return templates, nil
}
