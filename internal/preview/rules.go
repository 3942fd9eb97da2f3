package preview

import (
	"regexp"
	"strings"
)

// Conventional paths, in precedence order, matching the layouts the
// template engine and the LLM generator emit. The first present key wins.
var entryCandidates = map[Framework][]string{
	FrameworkReact:  {"src/App.jsx", "src/App.tsx", "src/App.js", "App.jsx", "App.tsx"},
	FrameworkNextJS: {"app/page.tsx", "app/page.jsx", "pages/index.tsx", "pages/index.jsx"},
	FrameworkVue:    {"src/App.vue", "App.vue"},
	FrameworkSvelte: {"src/App.svelte", "App.svelte"},
}

var styleCandidates = map[Framework][]string{
	FrameworkReact:  {"src/index.css", "src/App.css", "src/styles.css", "index.css"},
	FrameworkNextJS: {"app/globals.css", "styles/globals.css", "src/app/globals.css"},
	FrameworkVue:    {"src/style.css", "src/assets/main.css", "style.css"},
	FrameworkSvelte: {"src/app.css", "src/styles.css", "app.css"},
}

// probe returns the first candidate path present in files and its content.
func probe(files FileSet, candidates []string) (string, string) {
	for _, path := range candidates {
		if src, ok := files[path]; ok {
			return path, src
		}
	}
	return "", ""
}

var (
	reactBindingsRe     = regexp.MustCompile(`import\s*\{([^}]+)\}\s*from\s*['"]react['"]`)
	importLineRe        = regexp.MustCompile(`(?m)^[ \t]*import\b[^\n]*\n?`)
	clientDirectiveRe   = regexp.MustCompile(`^\s*(?:"use client"|'use client')\s*;?[ \t]*\n?`)
	exportDefaultDeclRe = regexp.MustCompile(`export\s+default\s+(function|class)\s+(\w+)`)
	exportDefaultNameRe = regexp.MustCompile(`(?m)^[ \t]*export\s+default\s+(\w+)\s*;?[ \t]*$`)
	exportDefaultExprRe = regexp.MustCompile(`export\s+default\s+`)
)

// collectReactBindings returns the names destructured from the source's
// `import { ... } from 'react'` line, in declaration order. Aliased imports
// keep only the original name.
func collectReactBindings(src string) []string {
	m := reactBindingsRe.FindStringSubmatch(src)
	if m == nil {
		return nil
	}
	var names []string
	for _, part := range strings.Split(m[1], ",") {
		name := strings.TrimSpace(part)
		if i := strings.IndexAny(name, " \t"); i >= 0 {
			name = name[:i]
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// stripImports removes every whole-line import statement. The output runs
// as an inline script with no module resolution, so imports can only break.
func stripImports(src string) string {
	return importLineRe.ReplaceAllString(src, "")
}

// stripClientDirective drops a leading Next.js "use client" marker.
func stripClientDirective(src string) string {
	return clientDirectiveRe.ReplaceAllString(src, "")
}

// normalizeDefaultExport rewrites the entry component's default export into
// a plain local declaration bound to target. Unrecognized shapes pass
// through unchanged; the in-document guard surfaces the resulting failure.
func normalizeDefaultExport(src, target string) string {
	if m := exportDefaultDeclRe.FindStringSubmatch(src); m != nil {
		kind, name := m[1], m[2]
		src = exportDefaultDeclRe.ReplaceAllString(src, kind+" "+name)
		if name != target {
			src += "\nconst " + target + " = " + name + ";"
		}
		return src
	}
	if m := exportDefaultNameRe.FindStringSubmatch(src); m != nil {
		name := m[1]
		if name == target {
			return exportDefaultNameRe.ReplaceAllString(src, "")
		}
		return exportDefaultNameRe.ReplaceAllString(src, "const "+target+" = "+name+";")
	}
	if loc := exportDefaultExprRe.FindStringIndex(src); loc != nil {
		return src[:loc[0]] + "const " + target + " = " + src[loc[1]:]
	}
	return src
}

var (
	templateBlockRe = regexp.MustCompile(`(?s)<template[^>]*>(.*)</template>`)
	scriptBlockRe   = regexp.MustCompile(`(?s)<script[^>]*>(.*?)</script>`)
	styleBlockRe    = regexp.MustCompile(`(?s)<style[^>]*>(.*?)</style>`)
	svelteTagRe     = regexp.MustCompile(`(?s)<svelte:\w+[^>]*/?>|</svelte:\w+>`)
)

// extractTemplateBlock returns the content between an SFC's template tags.
func extractTemplateBlock(src string) string {
	if m := templateBlockRe.FindStringSubmatch(src); m != nil {
		return m[1]
	}
	return ""
}

// extractScriptBlock returns the content between an SFC's script tags.
func extractScriptBlock(src string) string {
	if m := scriptBlockRe.FindStringSubmatch(src); m != nil {
		return m[1]
	}
	return ""
}

// extractStyleBlock returns the content between an SFC's style tags.
func extractStyleBlock(src string) string {
	if m := styleBlockRe.FindStringSubmatch(src); m != nil {
		return m[1]
	}
	return ""
}

// stripBlocks removes script/style blocks and svelte: special elements,
// leaving the bare markup of a single-file component.
func stripBlocks(src string) string {
	src = scriptBlockRe.ReplaceAllString(src, "")
	src = styleBlockRe.ReplaceAllString(src, "")
	src = svelteTagRe.ReplaceAllString(src, "")
	return strings.TrimSpace(src)
}

// escapeTemplateLiteral escapes backslashes, backticks and `${` so text can
// be embedded inside a generated template literal without terminating it.
func escapeTemplateLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "${", "\\${")
	return s
}
