package lightapi

import (
	"net/url"
	"slices"
	"strings"
)

// Arg is one name/value pair of a form-encoded request body.
type Arg struct {
	Name  string
	Value string
}

// ArgTuplesToBody collapses args into a map. A name given more than once keeps
// its last value.
func ArgTuplesToBody(args []Arg) map[string]string {
	body := make(map[string]string, len(args))
	for _, arg := range args {
		body[arg.Name] = arg.Value
	}

	return body
}

// ArgsFromBody turns a body map back into args ordered by name.
func ArgsFromBody(body map[string]string) []Arg {
	names := make([]string, 0, len(body))
	for name := range body {
		names = append(names, name)
	}

	slices.Sort(names)

	args := make([]Arg, 0, len(names))
	for _, name := range names {
		args = append(args, Arg{Name: name, Value: body[name]})
	}

	return args
}

// encodeForm form-encodes args. Names keep the position of their first
// occurrence and the value of their last.
func encodeForm(args []Arg) string {
	values := ArgTuplesToBody(args)
	order := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))

	for _, arg := range args {
		if _, ok := seen[arg.Name]; ok {
			continue
		}

		seen[arg.Name] = struct{}{}
		order = append(order, arg.Name)
	}

	var sb strings.Builder

	for idx, name := range order {
		if idx > 0 {
			sb.WriteByte('&')
		}

		sb.WriteString(url.QueryEscape(name))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(values[name]))
	}

	return sb.String()
}
