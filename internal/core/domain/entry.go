package domain

import "strings"

// Entry is a brand/product record owned by a single user.
type Entry struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	AboutBrand   string `json:"about_brand,omitempty"`
	BrandImage   string `json:"brand_image"`
	AboutProduct string `json:"about_product,omitempty"`
	ProductImage string `json:"product_image"`
	ProductName  string `json:"product_name"`
}

// EntryFields holds the caller-editable part of an Entry.
type EntryFields struct {
	Name         string
	AboutBrand   string
	AboutProduct string
	BrandImage   string
	ProductImage string
	ProductName  string
}

// Apply overwrites the mutable fields of e.
func (e *Entry) Apply(f EntryFields) {
	e.Name = strings.TrimSpace(f.Name)
	e.AboutBrand = f.AboutBrand
	e.AboutProduct = f.AboutProduct
	e.BrandImage = f.BrandImage
	e.ProductImage = f.ProductImage
	e.ProductName = f.ProductName
}

// Entries is the ordered collection a user owns. All operations return a new
// slice and leave the receiver untouched.
type Entries []Entry

// Contains reports whether any entry carries id.
func (es Entries) Contains(id string) bool {
	for _, e := range es {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Append returns the collection with a new entry built from f.
func (es Entries) Append(id string, f EntryFields) Entries {
	e := Entry{ID: id}
	e.Apply(f)
	out := make(Entries, 0, len(es)+1)
	out = append(out, es...)
	return append(out, e)
}

// Update overwrites the entry whose id matches. The second result is false
// when no entry matched, in which case the collection is returned unchanged.
func (es Entries) Update(id string, f EntryFields) (Entries, bool) {
	out := make(Entries, len(es))
	copy(out, es)
	for i := range out {
		if out[i].ID == id {
			out[i].Apply(f)
			return out, true
		}
	}
	return out, false
}

// Remove drops every entry whose id matches and reports how many were dropped.
func (es Entries) Remove(id string) (Entries, int) {
	out := make(Entries, 0, len(es))
	for _, e := range es {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out, len(es) - len(out)
}

// List returns the collection verbatim, as an empty slice rather than nil.
func (es Entries) List() Entries {
	if es == nil {
		return Entries{}
	}
	return es
}
