package logic

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	mask "github.com/showa-93/go-mask"
)

// Show prints cfg as YAML, keyed by flag name. Fields tagged with mask are masked.
func Show[T any](w io.Writer, cfg T) error {
	masked, err := mask.Mask(cfg)
	if err != nil {
		return fmt.Errorf("masking configuration: %w", err)
	}

	out, err := yaml.Marshal(fields(reflect.Indirect(reflect.ValueOf(masked))))
	if err != nil {
		return fmt.Errorf("marshalling configuration: %w", err)
	}

	_, err = w.Write(out)

	return err
}

func fields(v reflect.Value) yaml.MapSlice {
	var out yaml.MapSlice

	t := v.Type()

	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		value := v.Field(i)

		if field.Anonymous && value.Kind() == reflect.Struct {
			out = append(out, fields(value)...)

			continue
		}

		item := value.Interface()
		if s, ok := item.(fmt.Stringer); ok {
			item = s.String()
		}

		out = append(out, yaml.MapItem{Key: name(field), Value: item})
	}

	return out
}

func name(field reflect.StructField) string {
	tag, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
	if tag == "" || tag == "-" {
		return strings.ToLower(field.Name)
	}

	return tag
}
