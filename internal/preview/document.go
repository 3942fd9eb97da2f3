package preview

import (
	"fmt"
	"strings"
)

// Fixed CDN runtime URLs. The preview document fetches these at evaluation
// time; if a CDN is unreachable the in-document error guard reports it.
const (
	cdnReact    = "https://unpkg.com/react@18.3.1/umd/react.production.min.js"
	cdnReactDOM = "https://unpkg.com/react-dom@18.3.1/umd/react-dom.production.min.js"
	cdnBabel    = "https://unpkg.com/@babel/standalone@7.24.7/babel.min.js"
	cdnVue      = "https://unpkg.com/vue@3.4.27/dist/vue.global.prod.js"
	cdnSvelte   = "https://unpkg.com/svelte@4.2.17/internal/index.js"
)

// mountTarget is the identifier the inline mount script expects the
// normalized entry component to be bound to.
const mountTarget = "App"

var runtimeTags = map[Framework][]string{
	FrameworkReact:  {cdnReact, cdnReactDOM, cdnBabel},
	FrameworkNextJS: {cdnReact, cdnReactDOM, cdnBabel},
	FrameworkVue:    {cdnVue},
	FrameworkSvelte: {cdnSvelte},
}

// guardScript installs the error panel. Mount scripts call __previewFail on
// caught errors; the window listener covers parse-time failures (e.g. Babel
// syntax errors) that never reach a try/catch. textContent keeps the error
// message verbatim without interpreting it as markup.
const guardScript = `(function () {
  window.__previewFail = function (message) {
    var el = document.getElementById("root");
    if (!el) return;
    el.innerHTML = '<div class="preview-error" style="margin:16px;padding:16px;border:1px solid #fca5a5;border-radius:8px;background:#fef2f2;color:#991b1b;font-family:monospace"><strong>Preview error</strong><pre style="white-space:pre-wrap"></pre></div>';
    el.querySelector("pre").textContent = message;
  };
  window.addEventListener("error", function (e) {
    window.__previewFail(e.message || String(e.error));
  });
})();`

// assembleDocument builds the fixed HTML skeleton around the extracted
// stylesheet, the framework's runtime tags and the inline mount script.
// inline may be empty (no entry source was found).
func assembleDocument(framework Framework, stylesheet, inline string) string {
	var tags strings.Builder
	for _, src := range runtimeTags[framework] {
		fmt.Fprintf(&tags, "    <script crossorigin src=%q></script>\n", src)
	}

	// A stray closing tag inside embedded text would otherwise terminate
	// the surrounding style/script element early.
	stylesheet = strings.ReplaceAll(stylesheet, "</style", "<\\/style")

	return fmt.Sprintf(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <style>%s</style>
%s  </head>
  <body>
    <div id="root"></div>
    <script>%s</script>
%s  </body>
</html>
`, stylesheet, tags.String(), guardScript, inline)
}

// escapeInlineScript guards script content against premature termination.
func escapeInlineScript(src string) string {
	return strings.ReplaceAll(src, "</script", "<\\/script")
}
