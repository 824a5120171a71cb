package inspector

import (
	"fmt"
	"io"
	"math"
	"reflect"
	"strings"
)

const barWidth = 20

// Describe writes one block per component: the type name followed by an
// indented line per field.
func Describe(w io.Writer, components ...any) error {
	for _, c := range components {
		fields := ExtractFields(c)
		if fields == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\n", typeName(c)); err != nil {
			return err
		}
		for _, f := range fields {
			if _, err := fmt.Fprintf(w, "  %-14s %s\n", f.Name, Render(f)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Render formats a single field according to its widget.
func Render(f Field) string {
	switch f.Widget {
	case WidgetBar:
		v, ok := GetFloatValue(f.Value)
		if !ok {
			return FormatValue(f.Value, f.Options["fmt"])
		}
		return bar(v, GetMax(f.Options))
	case WidgetAngle:
		v, ok := GetFloatValue(f.Value)
		if !ok {
			return FormatValue(f.Value, "")
		}
		return fmt.Sprintf("%.0f°", v*180/math.Pi)
	case WidgetBool:
		if b, ok := f.Value.(bool); ok && b {
			return "yes"
		}
		return "no"
	default:
		return FormatValue(f.Value, f.Options["fmt"])
	}
}

// bar draws value as a fixed-width gauge against maxVal.
func bar(value, maxVal float64) string {
	frac := min(max(value/maxVal, 0), 1)
	filled := int(math.Round(frac * barWidth))
	return fmt.Sprintf("[%s%s] %.2f/%g",
		strings.Repeat("#", filled),
		strings.Repeat(".", barWidth-filled),
		value, maxVal)
}

func typeName(c any) string {
	t := reflect.TypeOf(c)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
