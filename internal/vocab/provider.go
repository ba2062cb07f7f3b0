package vocab

import (
	"github.com/abhisek/verbiz/internal/mastery"
)

// Provider serves category-filtered word lists from a registry.
type Provider struct {
	reg    *Registry
	status mastery.StatusSource
}

// NewProvider returns a provider filtering by the statuses reported by src.
func NewProvider(reg *Registry, src mastery.StatusSource) *Provider {
	return &Provider{reg: reg, status: src}
}

// VerbList returns the items of dataset that belong to category, in dataset
// order. Unknown datasets yield an empty list.
func (p *Provider) VerbList(dataset string, category mastery.Category) []Item {
	ds, err := p.reg.Get(dataset)
	if err != nil {
		return nil
	}
	return mastery.Filter(ds.Items, Item.Key, category, p.status)
}

// AllItems returns every item of dataset regardless of mastery.
func (p *Provider) AllItems(dataset string) []Item {
	ds, err := p.reg.Get(dataset)
	if err != nil {
		return nil
	}
	return ds.Items
}

// HasForms reports whether dataset carries past tense forms.
func (p *Provider) HasForms(dataset string) bool {
	ds, err := p.reg.Get(dataset)
	if err != nil {
		return false
	}
	return ds.HasForms()
}
