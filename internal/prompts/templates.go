package prompts

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/cbroglie/mustache"
)

func init() {
	mustache.AllowMissingVariables = false
}

//go:embed templates/*.mustache
var templatesFS embed.FS

// fsPartialProvider resolves {{> name}} against the embedded templates.
type fsPartialProvider struct {
	fs fs.ReadFileFS
}

func (p *fsPartialProvider) Get(name string) (string, error) {
	data, err := p.fs.ReadFile(fmt.Sprintf("templates/%s.mustache", name))
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func mustParseTemplate(fileSystem fs.ReadFileFS, name string) *mustache.Template {
	data, err := fileSystem.ReadFile(fmt.Sprintf("templates/%s.mustache", name))
	if err != nil {
		panic(err)
	}
	tmpl, err := mustache.ParseStringPartials(string(data), &fsPartialProvider{fs: fileSystem})
	if err != nil {
		panic(err)
	}
	return tmpl
}

var (
	capabilitiesTemplate = mustParseTemplate(templatesFS, "capabilities")
	mcpServersTemplate   = mustParseTemplate(templatesFS, "mcp_servers")
	modesTemplate        = mustParseTemplate(templatesFS, "modes")
	rulesTemplate        = mustParseTemplate(templatesFS, "rules")
	systemInfoTemplate   = mustParseTemplate(templatesFS, "system_info")
)

func render(tmpl *mustache.Template, data map[string]any) (string, error) {
	out, err := tmpl.Render(data)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}
