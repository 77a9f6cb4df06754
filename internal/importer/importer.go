// Package importer parses native-format annotation directories into the
// three canonical entity collections: images, categories, annotations.
//
// Importers own their ID state: counters and the category index live in the
// import call, never in package globals, so conversion runs cannot interfere
// with one another.
package importer

import "github.com/mesh-intelligence/labelpivot/pkg/types"

// categoryIndex is a bijective name-to-id map with first-seen insertion
// order preserved. First-seen order determines the id: two objects with the
// same name anywhere in one run resolve to the same category id.
type categoryIndex struct {
	ids     map[string]int
	ordered []types.Category
}

func newCategoryIndex() *categoryIndex {
	return &categoryIndex{ids: map[string]int{}}
}

// resolve returns the id for name, assigning the next id (starting at 0) on
// first sight.
func (ci *categoryIndex) resolve(name string) int {
	if id, ok := ci.ids[name]; ok {
		return id
	}
	id := len(ci.ordered)
	ci.ids[name] = id
	ci.ordered = append(ci.ordered, types.Category{ID: id, Name: name})
	return id
}

// categories returns the categories in id order.
func (ci *categoryIndex) categories() []types.Category {
	return ci.ordered
}
