// Package llm - util.go turns raw model text into something json.Unmarshal accepts.
package llm

import "strings"

const codeFence = "```"

// CleanJSONBlock strips one surrounding markdown code fence, with or without
// a language tag ("```json", "```js", ...), and trims whitespace. Unfenced
// text is returned trimmed.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, codeFence) {
		return text
	}

	body := strings.TrimPrefix(text, codeFence)
	body = strings.TrimPrefix(body, "json")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 && isFenceTag(body[:nl]) {
		body = body[nl+1:]
	}
	if end := strings.LastIndex(body, codeFence); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// isFenceTag reports whether the first fenced line is a language tag rather
// than content.
func isFenceTag(line string) bool {
	line = strings.TrimSpace(line)
	return len(line) < 20 && !strings.ContainsAny(line, " {[\"")
}

// ExtractBraced returns the text between the first '{' and the last '}',
// inclusive. Unbalanced braces inside surrounding prose can still defeat it.
func ExtractBraced(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}
