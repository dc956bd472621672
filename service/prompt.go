package service

import (
	"fmt"
	"strings"
)

// TranscriptEntry is one message as seen by the summary prompt.
type TranscriptEntry struct {
	Role           string
	Text           string
	TranslatedText string
}

var summarySections = []string{
	"Symptoms",
	"History",
	"Findings/Diagnoses",
	"Medications",
	"Tests/Results",
	"Plan & Follow-up",
}

func TranslationPrompt(text, sourceLanguage, targetLanguage string) string {
	var b strings.Builder
	b.WriteString("You are a medical translation assistant helping a doctor and a patient communicate.\n")
	fmt.Fprintf(&b, "Translate the following text from %s to %s.\n", strings.TrimSpace(sourceLanguage), strings.TrimSpace(targetLanguage))
	b.WriteString("Keep medical terminology accurate. Return only the translated text, without quotes, notes or explanations.\n\n")
	fmt.Fprintf(&b, "\"\"\"%s\"\"\"", text)
	return b.String()
}

// SummaryPrompt renders entries in the given order; callers pass them sorted
// oldest first.
func SummaryPrompt(entries []TranscriptEntry) string {
	var b strings.Builder
	b.WriteString("You are a clinical assistant. Summarize the doctor–patient conversation below for the medical record.\n")
	b.WriteString("Use exactly these sections:\n")
	for i, section := range summarySections {
		fmt.Fprintf(&b, "%d. %s\n", i+1, section)
	}
	b.WriteString("Under each section write concise bullet points. Write \"None mentioned\" when a section has no information.\n\n")
	b.WriteString("Transcript:\n")
	for _, entry := range entries {
		role := strings.ToUpper(strings.TrimSpace(entry.Role))
		fmt.Fprintf(&b, "%s original: %s\n", role, strings.TrimSpace(entry.Text))
		fmt.Fprintf(&b, "%s translated: %s\n", role, strings.TrimSpace(entry.TranslatedText))
	}
	return b.String()
}
