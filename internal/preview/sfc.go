package preview

import (
	"fmt"
	"strings"
)

// renderVue handles Vue single-file components: the script block becomes the
// component options object, the template block is re-embedded as a template
// literal on App.template, and the global Vue build mounts it.
func renderVue(files FileSet) *Result {
	res, entry, style := extract(files, FrameworkVue)

	if block := extractStyleBlock(entry); block != "" {
		style = style + "\n" + block
	}

	var inline string
	if entry != "" {
		script := stripImports(extractScriptBlock(entry))
		script = normalizeDefaultExport(script, mountTarget)
		if strings.TrimSpace(script) == "" {
			script = "const " + mountTarget + " = {};"
		}
		template := escapeTemplateLiteral(extractTemplateBlock(entry))

		inline = fmt.Sprintf(`    <script>
try {
%s
%s.template = `+"`%s`"+`;
Vue.createApp(%s).mount("#root");
} catch (err) {
  window.__previewFail(err && err.message ? err.message : String(err));
}
    </script>
`, escapeInlineScript(script), mountTarget, escapeInlineScript(template), mountTarget)
	}

	res.Document = assembleDocument(FrameworkVue, style, inline)
	return &res
}

// renderSvelte is the weakest approximation of the four: without an
// in-browser Svelte compiler the component's markup is injected statically
// and its script block runs as plain JavaScript. Reactive bindings and
// directives in the markup render inert.
func renderSvelte(files FileSet) *Result {
	res, entry, style := extract(files, FrameworkSvelte)

	if block := extractStyleBlock(entry); block != "" {
		style = style + "\n" + block
	}

	var inline string
	if entry != "" {
		script := stripImports(extractScriptBlock(entry))
		markup := escapeTemplateLiteral(stripBlocks(entry))

		inline = fmt.Sprintf(`    <script>
try {
%s
document.getElementById("root").innerHTML = `+"`%s`"+`;
} catch (err) {
  window.__previewFail(err && err.message ? err.message : String(err));
}
    </script>
`, escapeInlineScript(script), escapeInlineScript(markup))
	}

	res.Document = assembleDocument(FrameworkSvelte, style, inline)
	return &res
}
