// Package preview turns a generated portfolio project (a map of file paths
// to source text) into a single self-contained HTML document that can be
// loaded into a sandboxed iframe for live preview.
//
// The rewriting is heuristic by design: it patches import statements and
// export shapes with regular expressions so the source can run as a flat
// inline script against CDN-hosted runtimes. It is not a compiler and only
// needs to handle the conventional shapes our generator emits.
package preview

import (
	"errors"
	"fmt"
	"strings"
)

// Framework selects the extraction/rewrite strategy and CDN runtime tags.
type Framework string

const (
	FrameworkReact  Framework = "react"
	FrameworkNextJS Framework = "nextjs"
	FrameworkVue    Framework = "vue"
	FrameworkSvelte Framework = "svelte"
)

// FileSet maps relative file paths to file content. Render never mutates it.
type FileSet map[string]string

// ErrUnsupportedFramework is returned for any framework tag outside the
// four recognized ones.
var ErrUnsupportedFramework = errors.New("unsupported framework")

// Fragment names reported in Result.Missing.
const (
	FragmentEntry      = "entry"
	FragmentStylesheet = "stylesheet"
)

// Result is a rendered preview document plus a report of which conventional
// fragments were actually found. A document is produced even when fragments
// are missing; callers decide whether a partial render is acceptable.
type Result struct {
	Document  string    `json:"document"`
	Framework Framework `json:"framework"`
	EntryPath string    `json:"entryPath"`
	StylePath string    `json:"stylePath"`
	Missing   []string  `json:"missing"`
}

// ParseFramework normalizes a caller-supplied framework identifier.
func ParseFramework(s string) (Framework, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "react":
		return FrameworkReact, nil
	case "nextjs", "next", "next.js":
		return FrameworkNextJS, nil
	case "vue", "vuejs", "vue.js":
		return FrameworkVue, nil
	case "svelte":
		return FrameworkSvelte, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFramework, s)
	}
}

// Render builds a preview document for the given files and framework.
// It is a pure function of its inputs and safe for concurrent use.
func Render(files FileSet, framework Framework) (*Result, error) {
	switch framework {
	case FrameworkReact, FrameworkNextJS:
		return renderReact(files, framework), nil
	case FrameworkVue:
		return renderVue(files), nil
	case FrameworkSvelte:
		return renderSvelte(files), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFramework, framework)
	}
}

// extract probes the conventional entry and stylesheet paths for a framework
// and records which fragments were absent.
func extract(files FileSet, framework Framework) (res Result, entry, style string) {
	res.Framework = framework
	res.EntryPath, entry = probe(files, entryCandidates[framework])
	res.StylePath, style = probe(files, styleCandidates[framework])
	if res.EntryPath == "" {
		res.Missing = append(res.Missing, FragmentEntry)
	}
	if res.StylePath == "" {
		res.Missing = append(res.Missing, FragmentStylesheet)
	}
	return res, entry, style
}
