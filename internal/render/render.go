// Package render substitutes placeholder tokens into message templates.
package render

import "strings"

const fallbackService = "our"

// Vars holds the substitution values for a single message.
type Vars struct {
	Name            string
	ChurchName      string
	ServiceAttended string
}

// Render replaces every occurrence of {{name}}, {{church_name}} and
// {{service_attended}} in the template. A missing service falls back to
// "our" so templates like "thank you for attending {{service_attended}}
// service" still read naturally. Text without tokens passes through
// unchanged, so rendering already-substituted text is a no-op.
func Render(template string, vars Vars) string {
	service := vars.ServiceAttended
	if service == "" {
		service = fallbackService
	}

	out := strings.ReplaceAll(template, "{{name}}", vars.Name)
	out = strings.ReplaceAll(out, "{{church_name}}", vars.ChurchName)
	out = strings.ReplaceAll(out, "{{service_attended}}", service)
	return out
}
