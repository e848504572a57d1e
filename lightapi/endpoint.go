package lightapi

import (
	"fmt"
	"net/url"
	"strings"
)

const placeholder = "{}"

// FormatEndpoint substitutes pathArgs, in order, for the "{}" placeholders in
// template. Each argument is escaped as a single path segment, so selectors
// such as "label:Living Room" stay intact.
func FormatEndpoint(template string, pathArgs []string) (string, error) {
	want := strings.Count(template, placeholder)
	if want != len(pathArgs) {
		return "", fmt.Errorf("%w: %q expects %d path arguments, got %d",
			ErrEndpoint, template, want, len(pathArgs))
	}

	var sb strings.Builder

	rest := template
	for _, arg := range pathArgs {
		idx := strings.Index(rest, placeholder)
		sb.WriteString(rest[:idx])
		sb.WriteString(url.PathEscape(arg))
		rest = rest[idx+len(placeholder):]
	}

	sb.WriteString(rest)

	return sb.String(), nil
}

func joinURL(baseURL, endpoint string) string {
	return baseURL + strings.TrimPrefix(endpoint, "/")
}
