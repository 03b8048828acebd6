package prompt

import "fmt"

// GetSystemPrompt provides strict directions and schema for JSON output.
func GetSystemPrompt() string {
	return `You are a document analyst. You must produce one valid JSON object only (no markdown, no commentary) that follows the schema below. Do not include code fences.

Requirements:
- Output must be a single JSON object.
- summary is at most three sentences, faithful to the document, no speculation.
- key_topics is an array of at most five lowercase single words, ordered by first mention in the document, no duplicates.
- If the document is empty or trivially short, return it verbatim as the summary.

Schema (example with empty values):
{
  "summary": "<string>",
  "key_topics": ["<string>"]
}`
}

// GetUserPrompt builds the user message around the document text,
// truncated so the request stays inside the model's context window.
func GetUserPrompt(text string, maxChars int) string {
	if maxChars > 0 && len(text) > maxChars {
		text = text[:maxChars]
	}
	return fmt.Sprintf("Summarize the following document and respond with the JSON per schema.\n\n%s", text)
}
