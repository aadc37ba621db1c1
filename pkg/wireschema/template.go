package wireschema

import "io"

// TemplateRenderer mirrors the github.com/goliatone/go-template engine
// contract, giving the generator a seam so callers can swap the template
// implementation without touching emission logic.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
