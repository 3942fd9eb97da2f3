package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/yourusername/foliogen-api/internal/model"
)

// GroqClient wraps Groq's OpenAI-compatible chat completions API
type GroqClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewGroqClient(apiKey, baseURL, model string) *GroqClient {
	return &GroqClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// ── Groq API request/response types ───────────────────

type groqRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
	Messages    []groqMessage `json:"messages"`
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// complete sends one system+user exchange and returns the assistant text
func (c *GroqClient) complete(ctx context.Context, system string, messages []groqMessage, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("Groq API key not configured")
	}

	reqBody := groqRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: 0.3,
		Messages:    append([]groqMessage{{Role: "system", Content: system}}, messages...),
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Groq API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Groq API returned %d: %s", resp.StatusCode, string(body))
	}

	var groqResp groqResponse
	if err := json.Unmarshal(body, &groqResp); err != nil {
		return "", fmt.Errorf("parsing Groq response: %w", err)
	}

	if len(groqResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from Groq")
	}

	return strings.TrimSpace(groqResp.Choices[0].Message.Content), nil
}

// ── Resume parsing ────────────────────────────────────

const parseResumeSystemPrompt = `You are a resume parser. Extract structured data from resume text.

Always respond with ONLY a JSON object (no markdown, no backticks, no explanation) with these fields:
{
  "name": "Full name",
  "title": "Professional title or headline",
  "email": "Email address, empty string if not found",
  "phone": "Phone number, empty string if not found",
  "summary": "Professional summary (2-3 sentences)",
  "skills": ["skill1", "skill2"],
  "projects": [{"name": "Project name", "description": "What it does", "technologies": ["tech1"], "url": ""}],
  "experience": [{"title": "Role", "company": "Company", "startDate": "2021-03", "endDate": "2023-07", "current": false, "description": "What they did"}],
  "education": [{"school": "School", "degree": "Degree", "field": "Field of study", "startDate": "2017", "endDate": "2021"}],
  "links": {"github": "https://...", "linkedin": "https://..."}
}

Rules:
- Extract only what's explicitly stated. Don't invent data.
- If the resume has no summary, write a short one from the experience.
- Dates stay in whatever precision the resume gives (year or year-month).
- If a field isn't present, use an empty string, empty array, or empty object.`

// ParseResume sends extracted resume text to Groq for structured extraction
func (c *GroqClient) ParseResume(ctx context.Context, resumeText string) (*model.ResumeData, error) {
	text, err := c.complete(ctx, parseResumeSystemPrompt, []groqMessage{
		{Role: "user", Content: "Parse this resume and return the JSON:\n\n" + resumeText},
	}, 2000)
	if err != nil {
		return nil, err
	}

	text = stripCodeFences(text)

	var raw map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("parsing extracted resume data: %w (raw: %s)", err, text)
	}
	if err := model.ValidateResumeMap(raw); err != nil {
		return nil, fmt.Errorf("extracted resume data invalid: %w", err)
	}

	var data model.ResumeData
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil, fmt.Errorf("parsing extracted resume data: %w", err)
	}
	return &data, nil
}

// ── Summary suggestion ────────────────────────────────

const suggestSummarySystemPrompt = `You are a resume writer. Given structured resume data, write a professional summary.

Respond with ONLY the summary text: 2-3 sentences, first person implied (no "I"), no markdown, no quotes, no preamble.

Rules:
- Draw only on the provided data. Don't invent employers, titles, or skills.
- Lead with the professional identity (title and strongest skills), then the most distinctive experience or project.
- Keep it under 60 words.`

// SuggestSummary writes a professional summary for resume data that lacks
// one
func (c *GroqClient) SuggestSummary(ctx context.Context, data model.ResumeData) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshaling resume data: %w", err)
	}

	text, err := c.complete(ctx, suggestSummarySystemPrompt, []groqMessage{
		{Role: "user", Content: "Write the summary for this resume data:\n\n" + string(payload)},
	}, 300)
	if err != nil {
		return "", err
	}

	text = strings.Trim(stripCodeFences(text), `" `)
	if text == "" {
		return "", fmt.Errorf("empty summary from Groq")
	}
	return text, nil
}

// ── Portfolio refinement ──────────────────────────────

// RefineResult is the structured response from a refinement request
type RefineResult struct {
	Files   map[string]string `json:"files"`
	Thought string            `json:"thought"`
	Summary string            `json:"summary"`
}

const refineSystemPrompt = `You are a portfolio site code assistant. You receive the complete source files of a generated portfolio site and an instruction, and you return the updated files.

Always respond with ONLY a JSON object (no markdown, no backticks, no explanation):
{
  "thought": "One sentence on what you're changing and why",
  "files": {"path/to/file": "full new file content", ...},
  "summary": "One sentence describing the change, addressed to the user"
}

Rules:
- Return EVERY file of the project in "files", not just the changed ones.
- Keep the existing file paths. Never rename or move files.
- Only import components that exist in the file map. An import like "@/components/X" requires a components/X file.
- Keep the site self-contained: no new npm packages, no external fetches.
- Keep the user's content intact unless the instruction asks to change it.`

// requiredCoreFiles lists the files a refined project must still contain,
// per stack. A response missing any of them is rejected and retried.
var requiredCoreFiles = map[string][]string{
	"react":  {"src/App.jsx", "src/index.css"},
	"nextjs": {"app/page.tsx", "app/globals.css"},
	"vue":    {"src/App.vue", "src/style.css"},
	"svelte": {"src/App.svelte", "src/app.css"},
}

var componentImportRe = regexp.MustCompile(`import\s+\w+\s+from\s+['"]@/components/(\w+)['"]`)

// RefinePortfolio asks Groq to apply an instruction to the project files.
// Responses that drop core files or import components that don't exist get
// one retry with the validation errors fed back.
func (c *GroqClient) RefinePortfolio(ctx context.Context, stack string, files map[string]string, instruction string) (*RefineResult, error) {
	filesJSON, err := json.Marshal(files)
	if err != nil {
		return nil, fmt.Errorf("marshaling project files: %w", err)
	}

	messages := []groqMessage{
		{Role: "user", Content: fmt.Sprintf("Stack: %s\n\nProject files:\n%s\n\nInstruction: %s", stack, filesJSON, instruction)},
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		text, err := c.complete(ctx, refineSystemPrompt, messages, 8000)
		if err != nil {
			return nil, err
		}

		text = stripCodeFences(text)

		var result RefineResult
		if err := json.Unmarshal([]byte(text), &result); err != nil {
			lastErr = fmt.Errorf("parsing refinement result: %w", err)
		} else if err := validateRefinedFiles(stack, result.Files); err != nil {
			lastErr = err
		} else {
			return &result, nil
		}

		// Feed the failure back and try once more
		messages = append(messages,
			groqMessage{Role: "assistant", Content: text},
			groqMessage{Role: "user", Content: "That response was rejected: " + lastErr.Error() + ". Return the corrected JSON."},
		)
	}

	return nil, fmt.Errorf("refinement failed after retry: %w", lastErr)
}

// validateRefinedFiles checks that the model kept the core files and only
// imports components that exist in the file map
func validateRefinedFiles(stack string, files map[string]string) error {
	if len(files) == 0 {
		return fmt.Errorf("response contains no files")
	}

	for _, required := range requiredCoreFiles[stack] {
		if _, ok := files[required]; !ok {
			return fmt.Errorf("missing core file %s", required)
		}
	}

	for path, src := range files {
		for _, m := range componentImportRe.FindAllStringSubmatch(src, -1) {
			name := m[1]
			if !componentExists(files, name) {
				return fmt.Errorf("%s imports @/components/%s but no such component file exists", path, name)
			}
		}
	}
	return nil
}

func componentExists(files map[string]string, name string) bool {
	for path := range files {
		if strings.Contains(path, "components/"+name+".") {
			return true
		}
	}
	return false
}

// stripCodeFences removes markdown ```json ... ``` wrappers
func stripCodeFences(text string) string {
	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx != -1 {
			text = text[idx+1:]
		}
		if idx := strings.LastIndex(text, "```"); idx != -1 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	return text
}
