// Package vocab holds vocabulary items, the datasets that group them and
// the per-dataset test configuration.
package vocab

// Item is one vocabulary entry. Infinitive is its unique key.
type Item struct {
	Infinitive     string `json:"infinitive"`
	Translation    string `json:"translation"`
	PastSimple     string `json:"pastSimple,omitempty"`
	PastParticiple string `json:"pastParticiple,omitempty"`
	Example        string `json:"example,omitempty"`
}

// Key returns the mastery key of the item.
func (it Item) Key() string { return it.Infinitive }

// HasForms reports whether the item carries past tense forms.
func (it Item) HasForms() bool {
	return it.PastSimple != "" || it.PastParticiple != ""
}

// Keys returns the mastery keys of items in order.
func Keys(items []Item) []string {
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Key()
	}
	return keys
}
