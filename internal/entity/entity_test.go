package entity

import "testing"

func TestHeuristicRecognizer(t *testing.T) {
	h := NewHeuristic()

	positives := []string{
		"Acme Trading GmbH",
		"Pacific Forwarding Ltd.",
		"Port of Rotterdam",
		"Shanghai CN 200120",
		"Tel (555) 123-4567",
		"Date 12/05/2026",
		"2026-05-12",
	}
	for _, text := range positives {
		if !h.HasLocationOrOrgEntity(text) {
			t.Errorf("expected entity in %q", text)
		}
	}

	negatives := []string{
		"",
		"COMMERCIAL INVOICE",
		"Invoice Number 770312",
		"Total Amount 1500 USD",
	}
	for _, text := range negatives {
		if h.HasLocationOrOrgEntity(text) {
			t.Errorf("unexpected entity in %q", text)
		}
	}
}

func TestRecognizerFunc(t *testing.T) {
	var got string
	r := RecognizerFunc(func(text string) bool {
		got = text
		return true
	})
	if !r.HasLocationOrOrgEntity("Hamburg") || got != "Hamburg" {
		t.Error("adapter must delegate to the wrapped function")
	}
}
