package classify

import "strings"

// Trigger modifier suffixes carried by dictionary entries. The literal
// suffix convention is part of the configuration format.
const (
	focusSuffix = "^^^"
	forceSuffix = "!!!"
)

// TriggerModifier adjusts how a trigger phrase matches and scores.
type TriggerModifier int

const (
	// ModifierNone is an ordinary trigger.
	ModifierNone TriggerModifier = iota
	// ModifierFocus boosts the trigger's weight and tightens its match.
	ModifierFocus
	// ModifierForce makes the trigger a near-absolute override.
	ModifierForce
)

// Trigger is one category trigger phrase with its parsed modifier.
type Trigger struct {
	Text     string
	Modifier TriggerModifier
}

// ParseTrigger splits a raw dictionary entry into phrase and modifier.
func ParseTrigger(raw string) Trigger {
	switch {
	case strings.HasSuffix(raw, forceSuffix):
		return Trigger{Text: strings.TrimSpace(strings.TrimSuffix(raw, forceSuffix)), Modifier: ModifierForce}
	case strings.HasSuffix(raw, focusSuffix):
		return Trigger{Text: strings.TrimSpace(strings.TrimSuffix(raw, focusSuffix)), Modifier: ModifierFocus}
	default:
		return Trigger{Text: strings.TrimSpace(raw)}
	}
}

// WordCount returns the number of words in the trigger phrase.
func (t Trigger) WordCount() int {
	return len(strings.Fields(t.Text))
}

// CategorySet maps a category label to its ordered trigger list.
type CategorySet map[string][]Trigger

// ParseCategories converts a raw label -> phrase-list dictionary into a
// CategorySet, parsing modifier suffixes.
func ParseCategories(raw map[string][]string) CategorySet {
	set := make(CategorySet, len(raw))
	for label, phrases := range raw {
		triggers := make([]Trigger, 0, len(phrases))
		for _, p := range phrases {
			t := ParseTrigger(p)
			if t.Text != "" {
				triggers = append(triggers, t)
			}
		}
		set[label] = triggers
	}
	return set
}

// Merge combines a master set with a custom (site or user) set. Custom
// entries are additive: they extend the master's trigger lists and add new
// labels, but never remove master triggers. Exact duplicates under the same
// label collapse to one entry.
func Merge(master, custom CategorySet) CategorySet {
	merged := make(CategorySet, len(master)+len(custom))
	for label, triggers := range master {
		merged[label] = append([]Trigger(nil), triggers...)
	}
	for label, triggers := range custom {
		for _, t := range triggers {
			if !containsTrigger(merged[label], t.Text) {
				merged[label] = append(merged[label], t)
			}
		}
	}
	return merged
}

// FindDuplicate reports whether an identical trigger phrase already exists
// under a label other than the given one. Teaching the same phrase to two
// categories would make classification ambiguous, so callers reject the
// newer entry.
func (cs CategorySet) FindDuplicate(text, label string) (string, bool) {
	for other, triggers := range cs {
		if other == label {
			continue
		}
		if containsTrigger(triggers, text) {
			return other, true
		}
	}
	return "", false
}

// Add appends a trigger phrase to a label's list, skipping exact duplicates
// under the same label.
func (cs CategorySet) Add(label, phrase string) {
	t := ParseTrigger(phrase)
	if t.Text == "" || containsTrigger(cs[label], t.Text) {
		return
	}
	cs[label] = append(cs[label], t)
}

// Remove deletes an exact trigger phrase from a label's list.
func (cs CategorySet) Remove(label, text string) {
	triggers := cs[label]
	for i, t := range triggers {
		if strings.EqualFold(t.Text, text) {
			cs[label] = append(triggers[:i], triggers[i+1:]...)
			return
		}
	}
}

func containsTrigger(triggers []Trigger, text string) bool {
	for _, t := range triggers {
		if strings.EqualFold(t.Text, text) {
			return true
		}
	}
	return false
}
