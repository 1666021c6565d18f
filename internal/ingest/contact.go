package ingest

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

// Contact holds the lightweight fields pulled from a resume header.
// All fields are best-effort and may be empty.
type Contact struct {
	Name  string
	Email string
	Phone string
}

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)
	// Candidate phone substrings; each is validated through libphonenumber.
	phonePattern = regexp.MustCompile(`\+?[\d][\d\s().\-]{7,18}\d`)
	// Last-resort 10-digit match with optional country prefix.
	phoneFallback = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?(\d{10})`)
)

const headerLines = 15

// ExtractContact scans the first portion of the document text for contact fields.
func ExtractContact(text, defaultRegion string) Contact {
	return Contact{
		Name:  extractName(text),
		Email: extractEmail(text),
		Phone: extractPhone(text, defaultRegion),
	}
}

func extractEmail(text string) string {
	return emailPattern.FindString(text)
}

// extractPhone returns the first valid phone number in E.164 form, falling back
// to a bare digit match when libphonenumber rejects every candidate.
func extractPhone(text, defaultRegion string) string {
	if text == "" {
		return ""
	}
	for _, candidate := range phonePattern.FindAllString(text, 10) {
		num, err := phonenumbers.Parse(candidate, defaultRegion)
		if err != nil {
			continue
		}
		if phonenumbers.IsValidNumber(num) {
			return phonenumbers.Format(num, phonenumbers.E164)
		}
	}
	return strings.TrimSpace(phoneFallback.FindString(text))
}

// extractName looks for a short capitalized line near the top of the document
// that is not a contact or heading line.
func extractName(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) > headerLines {
		lines = lines[:headerLines]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.ContainsAny(line, "@/:") {
			continue
		}
		if looksLikeName(line) {
			return line
		}
	}
	return ""
}

func looksLikeName(line string) bool {
	if len(line) > 40 {
		return false
	}
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		runes := []rune(w)
		if !unicode.IsUpper(runes[0]) {
			return false
		}
		for _, r := range runes {
			if !unicode.IsLetter(r) && r != '-' && r != '\'' && r != '.' {
				return false
			}
		}
	}
	return true
}
