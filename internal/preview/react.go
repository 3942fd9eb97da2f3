package preview

import (
	"fmt"
	"strings"
)

// renderReact handles the react and nextjs variants. Both run the entry
// component through Babel standalone; nextjs additionally drops the leading
// "use client" directive its pages carry.
func renderReact(files FileSet, framework Framework) *Result {
	res, entry, style := extract(files, framework)

	var inline string
	if entry != "" {
		src := entry
		if framework == FrameworkNextJS {
			src = stripClientDirective(src)
		}
		bindings := collectReactBindings(src)
		src = stripImports(src)
		src = normalizeDefaultExport(src, mountTarget)

		var sb strings.Builder
		if len(bindings) > 0 {
			fmt.Fprintf(&sb, "const { %s } = React;\n", strings.Join(bindings, ", "))
		}
		sb.WriteString(src)
		fmt.Fprintf(&sb, `
try {
  ReactDOM.createRoot(document.getElementById("root")).render(React.createElement(%s));
} catch (err) {
  window.__previewFail(err && err.message ? err.message : String(err));
}
`, mountTarget)

		inline = fmt.Sprintf("    <script type=\"text/babel\" data-presets=\"react,typescript\" data-filename=\"entry.tsx\">\n%s\n    </script>\n",
			escapeInlineScript(sb.String()))
	}

	res.Document = assembleDocument(framework, style, inline)
	return &res
}
