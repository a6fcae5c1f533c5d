package manifest

import (
	"bytes"
	"fmt"
	"io"
	"text/template"

	"github.com/pkg/errors"
	"golang.org/x/tools/imports"
)

// DefaultPackage is the package clause of generated code when the
// manifest does not name one.
const DefaultPackage = "types"

var source = template.Must(template.New("gen").Funcs(template.FuncMap{
	"camel":  camel,
	"quote":  func(s string) string { return fmt.Sprintf("%q", s) },
	"member": func(d Decl, v Member) string { return d.MemberName(v) },
}).Parse(`// Code generated by gval gen. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/wetware/gval/gtype"
	"github.com/wetware/gval/value"
)

// Type identifiers, valid after package initialization.
var (
{{- range .Types}}
	{{.Ident}}Type gtype.Type // {{.Name}}
{{- end}}
)
{{range .Types}}{{if eq .Kind "enum"}}
// {{.Ident}} mirrors the {{.Name}} enumeration.
type {{.Ident}} int32

const (
{{- $d := .}}{{range .Values}}
	{{$d.Ident}}{{camel .Nick}} {{$d.Ident}} = {{.Value}} // {{member $d .}}
{{- end}}
)
{{else if eq .Kind "flags"}}
// {{.Ident}} mirrors the {{.Name}} flags.
type {{.Ident}} uint32

const (
{{- $d := .}}{{range .Values}}
	{{$d.Ident}}{{camel .Nick}} {{$d.Ident}} = {{.Value}} // {{member $d .}}
{{- end}}
)
{{end}}{{end}}
func init() {
{{- range .Types}}{{$d := .}}
{{- if eq .Kind "enum"}}
	{{.Ident}}Type = mustRegister(gtype.RegisterEnum({{quote .Name}}, []gtype.EnumValue{
	{{- range .Values}}
		{Value: {{.Value}}, Name: {{quote (member $d .)}}, Nick: {{quote .Nick}}},
	{{- end}}
	}))
	value.RegisterType[{{.Ident}}]({{.Ident}}Type)
{{- else if eq .Kind "flags"}}
	{{.Ident}}Type = mustRegister(gtype.RegisterFlags({{quote .Name}}, []gtype.FlagsValue{
	{{- range .Values}}
		{Value: {{.Value}}, Name: {{quote (member $d .)}}, Nick: {{quote .Nick}}},
	{{- end}}
	}))
	value.RegisterType[{{.Ident}}]({{.Ident}}Type)
{{- else if eq .Kind "object"}}
	{{.Ident}}Type = mustRegister(gtype.RegisterObject({{quote .Name}}, {{$.Ref .Parent "GObject"}}
	{{- range .Interfaces}}, {{$.Ref . ""}}{{end}}))
{{- else if eq .Kind "interface"}}
	{{.Ident}}Type = mustRegister(gtype.RegisterInterface({{quote .Name}}))
{{- else if eq .Kind "derived"}}
	{{.Ident}}Type = mustRegister(gtype.Register({{quote .Name}}, {{$.Ref .Parent ""}}))
{{- else if eq .Kind "boxed"}}
	{{.Ident}}Type = mustRegister(gtype.RegisterBoxed({{quote .Name}}, gtype.BoxedFuncs{
		Copy: func(v any) any { return v },
	}))
{{- end}}
{{- end}}
}

func mustRegister(t gtype.Type, err error) gtype.Type {
	if err != nil {
		panic(err)
	}

	return t
}
`))

// generator is the template's view of a manifest.
type generator struct {
	*Manifest
	declared map[string]string
}

// Ref returns an expression for the type named name: the generated
// variable if the manifest declares it, otherwise a lookup by name.
// An empty name stands for def.
func (g generator) Ref(name, def string) string {
	if name == "" {
		name = def
	}

	if id, ok := g.declared[name]; ok {
		return id + "Type"
	}

	return fmt.Sprintf("gtype.FromName(%q)", name)
}

// Generate writes Go source that registers the manifest's types from an
// init function, declares a Go type with constants for every enum and
// flags type, and binds those Go types with value.RegisterType.
func (m *Manifest) Generate(w io.Writer) error {
	if err := m.Validate(); err != nil {
		return err
	}

	g := generator{
		Manifest: m,
		declared: make(map[string]string, len(m.Types)),
	}
	for _, d := range m.Types {
		g.declared[d.Name] = d.Ident()
	}

	if g.Package == "" {
		dup := *m
		dup.Package = DefaultPackage
		g.Manifest = &dup
	}

	var buf bytes.Buffer
	if err := source.Execute(&buf, g); err != nil {
		return errors.Wrap(err, "execute template")
	}

	src, err := imports.Process("types_gen.go", buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: false, // drop the value import when nothing is bound
	})
	if err != nil {
		return errors.Wrap(err, "format generated source")
	}

	_, err = w.Write(src)
	return err
}
