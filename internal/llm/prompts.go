package llm

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// BuildGapPrompt renders the strict-JSON reasoning prompt for the gap
// explainer. The schema is arrays rather than free-form maps so the response
// preserves the missing-skill order.
func BuildGapPrompt(input ExplainInput) string {
	var b strings.Builder

	b.WriteString("You are an AI HR analyst reviewing a candidate against a job description.\n\n")

	b.WriteString("KNOWN SKILLS:\n")
	writeList(&b, input.MatchedSkills)
	b.WriteString("\nMISSING SKILLS:\n")
	writeList(&b, input.MissingSkills)

	if jd := strings.TrimSpace(input.JobDescription); jd != "" {
		b.WriteString("\nJOB DESCRIPTION:\n")
		b.WriteString(truncate(jd, 4000))
		b.WriteString("\n")
	}
	if resume := strings.TrimSpace(input.ResumeText); resume != "" {
		b.WriteString("\nRESUME TEXT:\n")
		b.WriteString(truncate(resume, 8000))
		b.WriteString("\n")
	}

	b.WriteString(`
TASK:
For EACH missing skill, in the order given:
1. Say whether it is a subskill, specialization, tool, or concept related to any known skill; use "not related" otherwise.
2. If related, describe HOW it relates.
3. Suggest 2 beginner-friendly online courses (Coursera/Udemy/Google) - course title and provider only.

Return STRICT JSON following this schema:

{
  "gaps": [
    {
      "skill": "missing skill name",
      "related_to": "skill from known skills OR 'not related'",
      "explanation": "why it is missing and how it relates",
      "courses": [
        {"title": "string", "provider": "string"},
        {"title": "string", "provider": "string"}
      ]
    }
  ]
}

IMPORTANT RULES:
- Return JSON ONLY. No extra words.
- Do not include markdown.
- Keep responses concise and accurate.
`)

	return b.String()
}

// BuildFixJSONPrompt asks the model to repair a malformed response.
func BuildFixJSONPrompt(raw string) string {
	return fmt.Sprintf(`The following was supposed to be a JSON object with a top-level "gaps" array but is malformed. Return the corrected JSON only, with no commentary and no markdown.

%s`, truncate(raw, 8000))
}

func writeList(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString("- (none)\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
