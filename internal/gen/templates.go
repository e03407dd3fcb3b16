package gen

import (
	"strconv"
	"text/template"
)

var newtypeTemplate = template.Must(
	template.New("newtype").
		Funcs(template.FuncMap{
			"comment": commentLine,
			"quote":   strconv.Quote,
		}).
		Parse(newtypeTemplateText))

const newtypeTemplateText = `// Code generated by newtype-generator. DO NOT EDIT.

package {{.PackageName}}
{{if eq (len .Imports) 1}}
{{with index .Imports 0}}import {{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"{{end}}
{{else if .Imports}}
import (
{{range .Imports}}{{if .Path}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{else}}
{{end}}{{end}})
{{end}}
{{- $recv := .Recv}}
{{- $comments := .GenerateComments}}
{{- with .W}}
{{if $.Sentinel}}
// {{$.Sentinel}} is returned when a {{.Base.Expr}} is rejected by {{.Check.Predicate}}.
var {{$.Sentinel}} = errors.New({{quote $.Message}})
{{end}}
{{range .Doc}}{{comment .}}
{{end}}{{if .Attributes}}//
{{range .Attributes}}{{.}}
{{end}}{{end}}type {{.Name}} struct {
	value {{.Base.Expr}}
}
{{if not .Manual}}
{{if $comments}}{{range $.CtorDoc}}{{comment .}}
{{end}}{{end}}func {{.Constructor}}(val {{.Base.Expr}}) ({{.Name}}, error) {
{{- if $.Clone}}
	val = {{$.Clone}}(val)
{{end}}
{{- if .Check}}
	if !{{.Check.Predicate}}({{.Check.Arg}}) {
		return {{.Name}}{}, {{.Check.Failure.Expr}}
	}
{{end}}
	return {{.Name}}{value: val}, nil
}
{{end}}
{{if $comments}}// {{.Accessor}} returns {{if $.Clone}}a copy of {{end}}the wrapped {{.Base.Expr}}.
{{end}}func ({{$recv}} {{.Name}}) {{.Accessor}}() {{.Base.Expr}} {
	return {{$.Read}}
}
{{if .Has "json"}}
{{if $comments}}// UnmarshalJSON decodes a {{.Base.Expr}} and admits it through {{.Constructor}}.
// A JSON null decodes to the zero {{.Base.Expr}}, which must be admitted as well.
{{end}}func ({{$recv}} *{{.Name}}) UnmarshalJSON(data []byte) error {
	var raw {{.Base.Expr}}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	wrapped, err := {{.Constructor}}(raw)
	if err != nil {
		return fmt.Errorf("unmarshal {{.Name}}: %w", err)
	}

	*{{$recv}} = wrapped

	return nil
}

{{if $comments}}// MarshalJSON encodes the wrapped {{.Base.Expr}}.
{{end}}func ({{$recv}} {{.Name}}) MarshalJSON() ([]byte, error) {
	return json.Marshal({{$recv}}.value)
}
{{end}}
{{if .Has "yaml"}}
{{if $comments}}// UnmarshalYAML decodes a {{.Base.Expr}} and admits it through {{.Constructor}}.
// yaml.v3 does not call it for a null node, which leaves the receiver unchanged.
{{end}}func ({{$recv}} *{{.Name}}) UnmarshalYAML(node *yaml.Node) error {
	var raw {{.Base.Expr}}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	wrapped, err := {{.Constructor}}(raw)
	if err != nil {
		return fmt.Errorf("line %d: unmarshal {{.Name}}: %w", node.Line, err)
	}

	*{{$recv}} = wrapped

	return nil
}

{{if $comments}}// MarshalYAML encodes the wrapped {{.Base.Expr}}.
{{end}}func ({{$recv}} {{.Name}}) MarshalYAML() (any, error) {
	return {{$.Read}}, nil
}
{{end}}
{{if .Has "text"}}
{{if $comments}}// UnmarshalText admits text through {{.Constructor}}.
{{end}}func ({{$recv}} *{{.Name}}) UnmarshalText(text []byte) error {
	wrapped, err := {{.Constructor}}({{.Base.Expr}}(text))
	if err != nil {
		return fmt.Errorf("unmarshal {{.Name}}: %w", err)
	}

	*{{$recv}} = wrapped

	return nil
}

{{if $comments}}// MarshalText encodes the wrapped {{.Base.Expr}}.
{{end}}func ({{$recv}} {{.Name}}) MarshalText() ([]byte, error) {
	return []byte({{$recv}}.value), nil
}
{{end}}
{{- end}}
`
