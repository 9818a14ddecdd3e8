package notify

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-caseform/pkg/form"
)

//go:embed messages/*.tpl
var embeddedMessages embed.FS

const messageExt = ".tpl"

// MessagesFS exposes the bundled message templates.
func MessagesFS() fs.FS {
	sub, err := fs.Sub(embeddedMessages, "messages")
	if err != nil {
		panic(fmt.Sprintf("notify: embedded messages: %v", err))
	}
	return sub
}

// MessageOption configures Messages.
type MessageOption func(*messageConfig)

type messageConfig struct {
	files fs.FS
	dir   string
}

// WithMessagesFS loads templates from files instead of the bundled set.
func WithMessagesFS(files fs.FS) MessageOption {
	return func(cfg *messageConfig) {
		if files != nil {
			cfg.files = files
		}
	}
}

// WithMessagesDir loads templates from a directory on disk. Templates missing
// there fall back to the bundled set.
func WithMessagesDir(dir string) MessageOption {
	return func(cfg *messageConfig) {
		cfg.dir = strings.TrimSpace(dir)
	}
}

// Messages renders notice text from one template per kind.
type Messages struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[Kind]*pongo2.Template
}

// NewMessages builds a renderer over the configured templates.
func NewMessages(opts ...MessageOption) (*Messages, error) {
	cfg := messageConfig{files: MessagesFS()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var loaders []pongo2.TemplateLoader
	if cfg.dir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.dir)
		if err != nil {
			return nil, fmt.Errorf("notify: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	loaders = append(loaders, pongo2.NewFSLoader(cfg.files))

	if err := registerFilters(); err != nil {
		return nil, err
	}
	return &Messages{
		set:       pongo2.NewSet("caseform-messages", loaders...),
		templates: make(map[Kind]*pongo2.Template),
	}, nil
}

// Render produces the message for kind. data becomes the template context.
func (m *Messages) Render(kind Kind, data map[string]any) (string, error) {
	if m == nil || m.set == nil {
		return "", errors.New("notify: messages not initialised")
	}
	tmpl, err := m.template(kind)
	if err != nil {
		return "", err
	}

	ctx := pongo2.Context{}
	for key, value := range data {
		ctx[key] = value
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("notify: execute %s: %w", kind, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// Notice renders the message for kind and returns a populated notice.
func (m *Messages) Notice(kind Kind, caseType string, fields []string, receipt string) (Notice, error) {
	msg, err := m.Render(kind, map[string]any{
		"caseType": caseType,
		"fields":   fields,
		"receipt":  receipt,
	})
	if err != nil {
		return Notice{}, err
	}
	return Notice{
		Kind:     kind,
		CaseType: caseType,
		Message:  msg,
		Fields:   append([]string(nil), fields...),
		Receipt:  receipt,
	}, nil
}

func (m *Messages) template(kind Kind) (*pongo2.Template, error) {
	m.mu.RLock()
	if tmpl, ok := m.templates[kind]; ok {
		m.mu.RUnlock()
		return tmpl, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if tmpl, ok := m.templates[kind]; ok {
		return tmpl, nil
	}

	name := string(kind) + messageExt
	tmpl, err := m.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("notify: load template %q: %w", name, err)
	}
	m.templates[kind] = tmpl
	return tmpl, nil
}

var registerOnce sync.Once
var registerErr error

func registerFilters() error {
	registerOnce.Do(func() {
		if pongo2.FilterExists("caselabel") {
			return
		}
		registerErr = pongo2.RegisterFilter("caselabel", func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
			return pongo2.AsValue(form.CaseLabel(in.String())), nil
		})
	})
	return registerErr
}
