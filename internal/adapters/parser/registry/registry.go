package registry

import (
	"strings"

	"github.com/JSHWJ/QA-helper/internal/ports"
)

// Registry resolves a table parser by file extension.
type Registry struct{ byExt map[string]ports.TableParser }

func New() *Registry { return &Registry{byExt: map[string]ports.TableParser{}} }

func (r *Registry) Register(p ports.TableParser) {
	for _, ext := range p.Extensions() {
		r.byExt[strings.ToLower(ext)] = p
	}
}

// Get resolves by extension, with or without a leading dot.
func (r *Registry) Get(ext string) (ports.TableParser, bool) {
	p, ok := r.byExt[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return p, ok
}
