package service

import (
	"encoding/json"
	"fmt"

	"github.com/yourusername/foliogen-api/internal/model"
)

// Engine deterministically renders a resume into a complete project file
// map for one of the supported stacks. No LLM involved; refinement happens
// afterwards through chat.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// SupportedStacks lists the stacks Generate accepts
var SupportedStacks = []string{"react", "nextjs", "vue", "svelte"}

// Generate builds the project files for the given stack and template
func (e *Engine) Generate(stack string, data model.ResumeData, tpl *Template) (map[string]string, error) {
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling resume data: %w", err)
	}

	switch stack {
	case "react":
		return e.reactProject(string(payload), tpl), nil
	case "nextjs":
		return e.nextProject(string(payload), tpl), nil
	case "vue":
		return e.vueProject(string(payload), tpl), nil
	case "svelte":
		return e.svelteProject(string(payload), tpl), nil
	default:
		return nil, fmt.Errorf("unsupported stack %q", stack)
	}
}

// ── Shared fragments ──────────────────────────────────

// stylesheet renders the template palette and layout into the base CSS every
// stack shares. Class names match the markup the per-stack builders emit.
func stylesheet(tpl *Template) string {
	layoutCSS := ""
	switch tpl.Layout {
	case "split":
		layoutCSS = `
.portfolio { display: flex; gap: 3rem; }
.portfolio > header { position: sticky; top: 2rem; align-self: flex-start; width: 260px; flex-shrink: 0; }
`
	case "grid":
		layoutCSS = `
.projects { display: grid; grid-template-columns: repeat(auto-fill, minmax(280px, 1fr)); gap: 1.5rem; }
`
	}

	return fmt.Sprintf(`:root {
  --primary: %s;
  --background: %s;
  --surface: %s;
  --text: %s;
  --accent: %s;
}

* { box-sizing: border-box; margin: 0; }

body {
  background: var(--background);
  color: var(--text);
  font-family: -apple-system, "Segoe UI", Roboto, sans-serif;
  line-height: 1.6;
}

.portfolio { max-width: 960px; margin: 0 auto; padding: 3rem 1.5rem; }

h1 { color: var(--primary); font-size: 2.5rem; }
h2 { color: var(--primary); margin: 2.5rem 0 1rem; }
.tagline { color: var(--accent); font-size: 1.2rem; }
.contact { margin: 0.5rem 0 1.5rem; font-size: 0.9rem; }
.contact a { color: var(--accent); }

.skills { display: flex; flex-wrap: wrap; gap: 0.5rem; padding: 0; list-style: none; }
.skills li {
  background: var(--surface);
  border: 1px solid var(--accent);
  border-radius: 999px;
  padding: 0.25rem 0.75rem;
  font-size: 0.85rem;
}

.card {
  background: var(--surface);
  border-radius: 8px;
  padding: 1.25rem;
  margin-bottom: 1rem;
}
.card h3 { color: var(--primary); }
.card .meta { color: var(--accent); font-size: 0.85rem; margin-bottom: 0.5rem; }
%s`, tpl.Colors.Primary, tpl.Colors.Background, tpl.Colors.Surface, tpl.Colors.Text, tpl.Colors.Accent, layoutCSS)
}

// jsxBody is the component markup shared by the React and Next.js builders
const jsxBody = `  return (
    <div className="portfolio">
      <header>
        <h1>{data.name}</h1>
        <p className="tagline">{data.title}</p>
        <p className="contact">
          {data.email && <a href={"mailto:" + data.email}>{data.email}</a>}
          {data.phone && <span> &middot; {data.phone}</span>}
        </p>
        <p>{data.summary}</p>
      </header>
      <main>
        <section>
          <h2>Skills</h2>
          <ul className="skills">
            {data.skills.map((skill) => (
              <li key={skill}>{skill}</li>
            ))}
          </ul>
        </section>
        <section>
          <h2>Projects</h2>
          <div className="projects">
            {data.projects.map((project) => (
              <div className="card" key={project.name}>
                <h3>{project.name}</h3>
                <p className="meta">{project.technologies.join(", ")}</p>
                <p>{project.description}</p>
              </div>
            ))}
          </div>
        </section>
        <section>
          <h2>Experience</h2>
          {data.experience.map((job) => (
            <div className="card" key={job.company + job.title}>
              <h3>{job.title}</h3>
              <p className="meta">
                {job.company} &middot; {job.startDate} &ndash; {job.current ? "present" : job.endDate}
              </p>
              <p>{job.description}</p>
            </div>
          ))}
        </section>
        <section>
          <h2>Education</h2>
          {data.education.map((edu) => (
            <div className="card" key={edu.school}>
              <h3>{edu.school}</h3>
              <p className="meta">
                {edu.degree} in {edu.field} &middot; {edu.startDate} &ndash; {edu.endDate}
              </p>
            </div>
          ))}
        </section>
      </main>
    </div>
  );`

// ── React ─────────────────────────────────────────────

func (e *Engine) reactProject(payload string, tpl *Template) map[string]string {
	app := fmt.Sprintf(`const data = %s;

export default function App() {
%s
}
`, payload, jsxBody)

	return map[string]string{
		"src/App.jsx":   app,
		"src/main.jsx":  reactMain,
		"src/index.css": stylesheet(tpl),
		"index.html":    viteIndexHTML("/src/main.jsx"),
		"package.json":  reactPackageJSON,
	}
}

const reactMain = `import React from "react";
import ReactDOM from "react-dom/client";
import App from "./App.jsx";
import "./index.css";

ReactDOM.createRoot(document.getElementById("root")).render(
  <React.StrictMode>
    <App />
  </React.StrictMode>
);
`

const reactPackageJSON = `{
  "name": "portfolio",
  "private": true,
  "version": "0.1.0",
  "type": "module",
  "scripts": {
    "dev": "vite",
    "build": "vite build",
    "preview": "vite preview"
  },
  "dependencies": {
    "react": "^18.3.1",
    "react-dom": "^18.3.1"
  },
  "devDependencies": {
    "@vitejs/plugin-react": "^4.3.0",
    "vite": "^5.2.0"
  }
}
`

// ── Next.js ───────────────────────────────────────────

func (e *Engine) nextProject(payload string, tpl *Template) map[string]string {
	page := fmt.Sprintf(`"use client";

const data = %s;

export default function Home() {
%s
}
`, payload, jsxBody)

	return map[string]string{
		"app/page.tsx":    page,
		"app/layout.tsx":  nextLayout,
		"app/globals.css": stylesheet(tpl),
		"package.json":    nextPackageJSON,
	}
}

const nextLayout = `import "./globals.css";

export const metadata = {
  title: "Portfolio",
};

export default function RootLayout({ children }: { children: React.ReactNode }) {
  return (
    <html lang="en">
      <body>{children}</body>
    </html>
  );
}
`

const nextPackageJSON = `{
  "name": "portfolio",
  "private": true,
  "version": "0.1.0",
  "scripts": {
    "dev": "next dev",
    "build": "next build",
    "start": "next start"
  },
  "dependencies": {
    "next": "^14.2.0",
    "react": "^18.3.1",
    "react-dom": "^18.3.1"
  }
}
`

// ── Vue ───────────────────────────────────────────────

func (e *Engine) vueProject(payload string, tpl *Template) map[string]string {
	app := fmt.Sprintf(`<template>
  <div class="portfolio">
    <header>
      <h1>{{ resume.name }}</h1>
      <p class="tagline">{{ resume.title }}</p>
      <p class="contact">
        <a v-if="resume.email" :href="'mailto:' + resume.email">{{ resume.email }}</a>
        <span v-if="resume.phone"> &middot; {{ resume.phone }}</span>
      </p>
      <p>{{ resume.summary }}</p>
    </header>
    <main>
      <section>
        <h2>Skills</h2>
        <ul class="skills">
          <li v-for="skill in resume.skills" :key="skill">{{ skill }}</li>
        </ul>
      </section>
      <section>
        <h2>Projects</h2>
        <div class="projects">
          <div class="card" v-for="project in resume.projects" :key="project.name">
            <h3>{{ project.name }}</h3>
            <p class="meta">{{ project.technologies.join(", ") }}</p>
            <p>{{ project.description }}</p>
          </div>
        </div>
      </section>
      <section>
        <h2>Experience</h2>
        <div class="card" v-for="job in resume.experience" :key="job.company + job.title">
          <h3>{{ job.title }}</h3>
          <p class="meta">{{ job.company }} &middot; {{ job.startDate }} &ndash; {{ job.current ? "present" : job.endDate }}</p>
          <p>{{ job.description }}</p>
        </div>
      </section>
      <section>
        <h2>Education</h2>
        <div class="card" v-for="edu in resume.education" :key="edu.school">
          <h3>{{ edu.school }}</h3>
          <p class="meta">{{ edu.degree }} in {{ edu.field }} &middot; {{ edu.startDate }} &ndash; {{ edu.endDate }}</p>
        </div>
      </section>
    </main>
  </div>
</template>

<script>
export default {
  data() {
    return {
      resume: %s
    };
  }
};
</script>
`, payload)

	return map[string]string{
		"src/App.vue":   app,
		"src/main.js":   vueMain,
		"src/style.css": stylesheet(tpl),
		"index.html":    viteIndexHTML("/src/main.js"),
		"package.json":  vuePackageJSON,
	}
}

const vueMain = `import { createApp } from "vue";
import App from "./App.vue";
import "./style.css";

createApp(App).mount("#root");
`

const vuePackageJSON = `{
  "name": "portfolio",
  "private": true,
  "version": "0.1.0",
  "type": "module",
  "scripts": {
    "dev": "vite",
    "build": "vite build",
    "preview": "vite preview"
  },
  "dependencies": {
    "vue": "^3.4.27"
  },
  "devDependencies": {
    "@vitejs/plugin-vue": "^5.0.0",
    "vite": "^5.2.0"
  }
}
`

// ── Svelte ────────────────────────────────────────────

func (e *Engine) svelteProject(payload string, tpl *Template) map[string]string {
	app := fmt.Sprintf(`<script>
  const resume = %s;
</script>

<div class="portfolio">
  <header>
    <h1>{resume.name}</h1>
    <p class="tagline">{resume.title}</p>
    <p class="contact">
      {#if resume.email}<a href={"mailto:" + resume.email}>{resume.email}</a>{/if}
      {#if resume.phone}<span> &middot; {resume.phone}</span>{/if}
    </p>
    <p>{resume.summary}</p>
  </header>
  <main>
    <section>
      <h2>Skills</h2>
      <ul class="skills">
        {#each resume.skills as skill}
          <li>{skill}</li>
        {/each}
      </ul>
    </section>
    <section>
      <h2>Projects</h2>
      <div class="projects">
        {#each resume.projects as project}
          <div class="card">
            <h3>{project.name}</h3>
            <p class="meta">{project.technologies.join(", ")}</p>
            <p>{project.description}</p>
          </div>
        {/each}
      </div>
    </section>
    <section>
      <h2>Experience</h2>
      {#each resume.experience as job}
        <div class="card">
          <h3>{job.title}</h3>
          <p class="meta">{job.company} &middot; {job.startDate} &ndash; {job.current ? "present" : job.endDate}</p>
          <p>{job.description}</p>
        </div>
      {/each}
    </section>
    <section>
      <h2>Education</h2>
      {#each resume.education as edu}
        <div class="card">
          <h3>{edu.school}</h3>
          <p class="meta">{edu.degree} in {edu.field} &middot; {edu.startDate} &ndash; {edu.endDate}</p>
        </div>
      {/each}
    </section>
  </main>
</div>
`, payload)

	return map[string]string{
		"src/App.svelte": app,
		"src/main.js":    svelteMain,
		"src/app.css":    stylesheet(tpl),
		"index.html":     viteIndexHTML("/src/main.js"),
		"package.json":   sveltePackageJSON,
	}
}

const svelteMain = `import App from "./App.svelte";
import "./app.css";

const app = new App({
  target: document.getElementById("root"),
});

export default app;
`

const sveltePackageJSON = `{
  "name": "portfolio",
  "private": true,
  "version": "0.1.0",
  "type": "module",
  "scripts": {
    "dev": "vite",
    "build": "vite build",
    "preview": "vite preview"
  },
  "devDependencies": {
    "@sveltejs/vite-plugin-svelte": "^3.1.0",
    "svelte": "^4.2.17",
    "vite": "^5.2.0"
  }
}
`

func viteIndexHTML(entry string) string {
	return fmt.Sprintf(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>Portfolio</title>
  </head>
  <body>
    <div id="root"></div>
    <script type="module" src="%s"></script>
  </body>
</html>
`, entry)
}
