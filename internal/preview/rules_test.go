package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectReactBindings(t *testing.T) {
	src := `import { useState, useEffect } from 'react'
import App from './App'`
	assert.Equal(t, []string{"useState", "useEffect"}, collectReactBindings(src))
}

func TestCollectReactBindingsAliased(t *testing.T) {
	src := `import { useState as useLocal, useRef } from "react"`
	assert.Equal(t, []string{"useState", "useRef"}, collectReactBindings(src))
}

func TestCollectReactBindingsAbsent(t *testing.T) {
	assert.Nil(t, collectReactBindings(`const x = 1`))
}

func TestStripImportsRemovesAllImportLines(t *testing.T) {
	src := `import React from 'react'
import { useState } from 'react'
import './index.css'

function App() {
  return null
}
`
	out := stripImports(src)
	for _, line := range strings.Split(out, "\n") {
		assert.False(t, strings.HasPrefix(strings.TrimSpace(line), "import"), "import line survived: %q", line)
	}
	assert.Contains(t, out, "function App()")
}

func TestStripImportsIdempotent(t *testing.T) {
	src := "import a from 'a'\nconst x = 1\n"
	once := stripImports(src)
	assert.Equal(t, once, stripImports(once))
}

func TestStripClientDirective(t *testing.T) {
	src := "\"use client\"\n\nimport { useState } from 'react'\n"
	out := stripClientDirective(src)
	assert.NotContains(t, out, "use client")
	assert.Contains(t, out, "import { useState }")

	// Only a leading directive is a directive.
	mid := "const s = 1\n\"use client\"\n"
	assert.Equal(t, mid, stripClientDirective(mid))
}

func TestNormalizeDefaultExportFunctionDecl(t *testing.T) {
	out := normalizeDefaultExport("export default function Portfolio() {\n  return null\n}", "App")
	assert.Contains(t, out, "function Portfolio()")
	assert.Contains(t, out, "const App = Portfolio;")
	assert.NotContains(t, out, "export default")
}

func TestNormalizeDefaultExportNamedReference(t *testing.T) {
	out := normalizeDefaultExport("const Site = () => null\nexport default Site\n", "App")
	assert.Contains(t, out, "const App = Site;")
	assert.NotContains(t, out, "export default")
}

func TestNormalizeDefaultExportAlreadyTarget(t *testing.T) {
	out := normalizeDefaultExport("function App() {}\nexport default App\n", "App")
	assert.Contains(t, out, "function App()")
	assert.NotContains(t, out, "export default")
	assert.NotContains(t, out, "const App = App")
}

func TestNormalizeDefaultExportObjectExpression(t *testing.T) {
	out := normalizeDefaultExport("export default {\n  data() { return {} }\n}", "App")
	assert.True(t, strings.HasPrefix(out, "const App = {"), "got: %s", out)
}

func TestNormalizeDefaultExportUnrecognizedPassesThrough(t *testing.T) {
	src := "module.exports = thing\n"
	assert.Equal(t, src, normalizeDefaultExport(src, "App"))
}

func TestExtractSFCBlocks(t *testing.T) {
	src := `<template>
  <div class="hero">{{ name }}</div>
</template>

<script>
export default { data() { return { name: 'Ada' } } }
</script>

<style scoped>
.hero { color: red; }
</style>`

	assert.Contains(t, extractTemplateBlock(src), `<div class="hero">`)
	assert.Contains(t, extractScriptBlock(src), "export default")
	assert.Contains(t, extractStyleBlock(src), ".hero")
}

func TestStripBlocksLeavesMarkup(t *testing.T) {
	src := `<script>
  let scrolled = false;
</script>

<svelte:window on:scroll={handleScroll} />

<nav class:scrolled>
  <h2>Ada</h2>
</nav>

<style>
nav { color: red; }
</style>`

	out := stripBlocks(src)
	assert.Contains(t, out, "<nav")
	assert.NotContains(t, out, "scrolled = false")
	assert.NotContains(t, out, "svelte:window")
	assert.NotContains(t, out, "color: red")
}

func TestEscapeTemplateLiteral(t *testing.T) {
	out := escapeTemplateLiteral("a `b` ${c} \\d")
	assert.Zero(t, countUnescapedBackticks(out))
	assert.Contains(t, out, "\\${c}")
}

// countUnescapedBackticks counts backticks not preceded by an odd run of
// backslashes.
func countUnescapedBackticks(s string) int {
	count := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '`' {
			continue
		}
		slashes := 0
		for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
			slashes++
		}
		if slashes%2 == 0 {
			count++
		}
	}
	return count
}

func TestProbePrecedence(t *testing.T) {
	files := FileSet{
		"src/App.css":   "b",
		"src/index.css": "a",
	}
	path, content := probe(files, styleCandidates[FrameworkReact])
	assert.Equal(t, "src/index.css", path)
	assert.Equal(t, "a", content)

	delete(files, "src/index.css")
	path, content = probe(files, styleCandidates[FrameworkReact])
	assert.Equal(t, "src/App.css", path)
	assert.Equal(t, "b", content)

	path, content = probe(FileSet{}, styleCandidates[FrameworkReact])
	assert.Empty(t, path)
	assert.Empty(t, content)
}
