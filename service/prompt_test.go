package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslationPrompt(t *testing.T) {
	prompt := TranslationPrompt(`I said "stop" twice`, "English", "Spanish")

	assert.Contains(t, prompt, "medical translation assistant")
	assert.Contains(t, prompt, "from English to Spanish")
	assert.Contains(t, prompt, "Return only the translated text")
	assert.True(t, strings.HasSuffix(prompt, `"""I said "stop" twice"""`))
}

func TestSummaryPromptListsSectionsAndTranscript(t *testing.T) {
	prompt := SummaryPrompt([]TranscriptEntry{
		{Role: "doctor", Text: "Where does it hurt?", TranslatedText: "¿Dónde le duele?"},
		{Role: "patient", Text: "Me duele la cabeza", TranslatedText: "My head hurts"},
	})

	assert.Contains(t, prompt, "clinical assistant")
	for _, section := range []string{"Symptoms", "History", "Findings/Diagnoses", "Medications", "Tests/Results", "Plan & Follow-up"} {
		assert.Contains(t, prompt, section)
	}

	doctor := strings.Index(prompt, "DOCTOR original: Where does it hurt?\nDOCTOR translated: ¿Dónde le duele?\n")
	patient := strings.Index(prompt, "PATIENT original: Me duele la cabeza\nPATIENT translated: My head hurts\n")
	assert.Greater(t, doctor, 0)
	assert.Greater(t, patient, doctor)
}
