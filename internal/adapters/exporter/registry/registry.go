package registry

import "github.com/JSHWJ/QA-helper/internal/ports"

type Registry struct{ byFormat map[string]ports.RowExporter }

func New(exporters ...ports.RowExporter) *Registry {
	r := &Registry{byFormat: map[string]ports.RowExporter{}}
	for _, e := range exporters {
		r.Register(e)
	}
	return r
}

func (r *Registry) Register(e ports.RowExporter) { r.byFormat[e.Format()] = e }

func (r *Registry) Get(format string) (ports.RowExporter, bool) {
	e, ok := r.byFormat[format]
	return e, ok
}

func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.byFormat))
	for f := range r.byFormat {
		out = append(out, f)
	}
	return out
}
