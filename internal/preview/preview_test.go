package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allFrameworks = []Framework{FrameworkReact, FrameworkNextJS, FrameworkVue, FrameworkSvelte}

func TestRenderEmptyFileSet(t *testing.T) {
	for _, fw := range allFrameworks {
		res, err := Render(FileSet{}, fw)
		require.NoError(t, err, fw)
		assert.True(t, strings.HasPrefix(res.Document, "<!doctype html>"), fw)
		assert.True(t, strings.HasSuffix(strings.TrimSpace(res.Document), "</html>"), fw)
		assert.Contains(t, res.Document, "<style></style>", fw)
		assert.ElementsMatch(t, []string{FragmentEntry, FragmentStylesheet}, res.Missing, fw)
		for _, url := range runtimeTags[fw] {
			assert.Contains(t, res.Document, url, fw)
		}
	}
}

func TestRenderUnsupportedFramework(t *testing.T) {
	res, err := Render(FileSet{}, Framework("angular"))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrUnsupportedFramework)

	_, err = ParseFramework("angular")
	assert.ErrorIs(t, err, ErrUnsupportedFramework)
}

func TestParseFrameworkAliases(t *testing.T) {
	for in, want := range map[string]Framework{
		"React":   FrameworkReact,
		"next.js": FrameworkNextJS,
		"NEXT":    FrameworkNextJS,
		"vue":     FrameworkVue,
		" svelte": FrameworkSvelte,
	} {
		got, err := ParseFramework(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestRenderStylesheetPrecedence(t *testing.T) {
	files := FileSet{
		"src/index.css": ".primary { color: red; }",
		"src/App.css":   ".secondary { color: blue; }",
	}
	res, err := Render(files, FrameworkReact)
	require.NoError(t, err)
	assert.Equal(t, "src/index.css", res.StylePath)
	assert.Contains(t, res.Document, ".primary { color: red; }")
	assert.NotContains(t, res.Document, ".secondary")

	delete(files, "src/index.css")
	res, err = Render(files, FrameworkReact)
	require.NoError(t, err)
	assert.Equal(t, "src/App.css", res.StylePath)
	assert.Contains(t, res.Document, ".secondary { color: blue; }")
}

const reactEntry = `import { useState, useEffect } from 'react'
import './index.css'

export default function Portfolio() {
  const [open, setOpen] = useState(false)
  useEffect(() => {}, [])
  return <div className="hero">Hello</div>
}
`

func TestRenderReactPipeline(t *testing.T) {
	files := FileSet{
		"src/App.jsx":   reactEntry,
		"src/index.css": ".hero {}",
	}
	res, err := Render(files, FrameworkReact)
	require.NoError(t, err)

	assert.Equal(t, "src/App.jsx", res.EntryPath)
	assert.Empty(t, res.Missing)
	assert.Contains(t, res.Document, "const { useState, useEffect } = React;")
	assert.Contains(t, res.Document, "function Portfolio()")
	assert.Contains(t, res.Document, "const App = Portfolio;")
	assert.Contains(t, res.Document, "React.createElement(App)")
	assert.Contains(t, res.Document, `type="text/babel"`)

	// No import statement survives normalization.
	for _, line := range strings.Split(res.Document, "\n") {
		assert.False(t, strings.HasPrefix(strings.TrimSpace(line), "import "), "import survived: %q", line)
	}
}

func TestRenderNextJSStripsClientDirective(t *testing.T) {
	files := FileSet{
		"app/page.tsx": "\"use client\"\n\n" + reactEntry,
	}
	res, err := Render(files, FrameworkNextJS)
	require.NoError(t, err)
	assert.Equal(t, "app/page.tsx", res.EntryPath)
	assert.NotContains(t, res.Document, "use client")
	assert.Contains(t, res.Document, "React.createElement(App)")
}

func TestRenderVuePipeline(t *testing.T) {
	files := FileSet{
		"src/App.vue": "<template>\n  <div class=\"hero\">{{ name }} `quoted` ${raw}</div>\n</template>\n\n<script>\nimport { ref } from 'vue'\nexport default {\n  data() { return { name: 'Ada' } }\n}\n</script>\n",
		"src/style.css": ".hero { color: red; }",
	}
	res, err := Render(files, FrameworkVue)
	require.NoError(t, err)

	assert.Contains(t, res.Document, "const App = {")
	assert.Contains(t, res.Document, "App.template = `")
	assert.Contains(t, res.Document, `Vue.createApp(App).mount("#root")`)
	assert.Contains(t, res.Document, ".hero { color: red; }")
	assert.NotContains(t, res.Document, "import { ref }")

	// The embedded template cannot terminate the generated literal early:
	// the only unescaped backticks are the pair the assembler emits.
	start := strings.Index(res.Document, "App.template = ")
	end := strings.Index(res.Document[start:], ";")
	literal := res.Document[start : start+end]
	assert.Equal(t, 2, countUnescapedBackticks(literal), "literal: %s", literal)
}

func TestRenderSveltePipeline(t *testing.T) {
	files := FileSet{
		"src/App.svelte": "<script>\n  import { onMount } from 'svelte';\n  let scrolled = false;\n</script>\n\n<svelte:window on:scroll={handleScroll} />\n\n<nav class:scrolled>\n  <h2>Ada</h2>\n</nav>\n\n<style>\nnav { color: red; }\n</style>\n",
		"src/app.css":    "body { margin: 0; }",
	}
	res, err := Render(files, FrameworkSvelte)
	require.NoError(t, err)

	assert.Contains(t, res.Document, "let scrolled = false;")
	assert.Contains(t, res.Document, "<nav")
	assert.Contains(t, res.Document, "body { margin: 0; }")
	assert.Contains(t, res.Document, "nav { color: red; }")
	assert.NotContains(t, res.Document, "svelte:window")
	assert.NotContains(t, res.Document, "import { onMount }")
}

func TestRenderErrorGuard(t *testing.T) {
	files := FileSet{
		"src/App.jsx": "export default function App() { return notDefined }",
	}
	res, err := Render(files, FrameworkReact)
	require.NoError(t, err)

	// The guard is installed before the mount script and the mount call is
	// wrapped so a thrown error's message lands in the panel verbatim.
	guardAt := strings.Index(res.Document, "window.__previewFail = function")
	mountAt := strings.Index(res.Document, "React.createElement(App)")
	require.Greater(t, guardAt, 0)
	require.Greater(t, mountAt, guardAt)
	assert.Contains(t, res.Document, `window.addEventListener("error"`)
	assert.Contains(t, res.Document, "window.__previewFail(err && err.message ? err.message : String(err));")
	assert.Contains(t, res.Document, `class="preview-error"`)
}

func TestRenderDoesNotMutateInput(t *testing.T) {
	files := FileSet{
		"src/App.jsx":   reactEntry,
		"src/index.css": ".hero {}",
		"README.md":     "docs",
	}
	for _, fw := range allFrameworks {
		_, err := Render(files, fw)
		require.NoError(t, err)
	}
	assert.Len(t, files, 3)
	assert.Equal(t, reactEntry, files["src/App.jsx"])
	assert.Equal(t, ".hero {}", files["src/index.css"])
}
