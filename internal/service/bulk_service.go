package service

import (
	"github.com/greenleaf/leaf_api/internal/models"
	"github.com/greenleaf/leaf_api/internal/utils"
)

// Selection is the set of products chosen for a bulk operation. It keeps
// insertion order so batch calls see a stable identifier list. Independent
// of any single-product edit state.
type Selection struct {
	order []string
	set   map[string]bool
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{set: make(map[string]bool)}
}

// Toggle flips one identifier in or out of the set.
func (s *Selection) Toggle(id string) {
	if s.set[id] {
		delete(s.set, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return
	}
	s.set[id] = true
	s.order = append(s.order, id)
}

// ToggleAll is the select-all/deselect-all flip: when everything visible is
// already selected the set empties, otherwise it becomes exactly the
// visible list.
func (s *Selection) ToggleAll(visible []string) {
	if len(s.order) == len(visible) {
		s.Clear()
		return
	}
	s.Clear()
	for _, id := range visible {
		if !s.set[id] {
			s.set[id] = true
			s.order = append(s.order, id)
		}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.order = nil
	s.set = make(map[string]bool)
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id string) bool {
	return s.set[id]
}

// Len returns the selection size.
func (s *Selection) Len() int {
	return len(s.order)
}

// IDs returns the selected identifiers in selection order.
func (s *Selection) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// BulkWriter is the batch mutation surface of the product store.
type BulkWriter interface {
	DeleteMany(ids []string) error
	SetFlagMany(ids []string, flag models.ProductFlag, value bool) error
}

// BulkService issues batch operations over a caller-chosen identifier set.
// Each operation is a single backend call; no partial-success accounting is
// attempted. Callers clear their selection on success and keep it on
// failure so the user can retry.
type BulkService struct {
	products BulkWriter
}

// NewBulkService constructs a BulkService.
func NewBulkService(products BulkWriter) *BulkService {
	return &BulkService{products: products}
}

// DeleteSelected removes every product in the set with one batch call.
func (s *BulkService) DeleteSelected(ids []string) error {
	if len(ids) == 0 {
		return utils.ErrEmptySelection
	}
	return s.products.DeleteMany(ids)
}

// SetFlag sets is_new or is_popular across the set with one batch call.
// Featured curation is a per-product toggle, not a bulk flag.
func (s *BulkService) SetFlag(ids []string, flag models.ProductFlag, value bool) error {
	if len(ids) == 0 {
		return utils.ErrEmptySelection
	}
	if flag != models.FlagNew && flag != models.FlagPopular {
		return validationErrorf("flag %q cannot be set in bulk", flag)
	}
	return s.products.SetFlagMany(ids, flag, value)
}
