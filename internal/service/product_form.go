package service

import (
	"strconv"
	"strings"

	"github.com/greenleaf/leaf_api/internal/models"
)

// ProductForm models the authoring form's two states. Create is the
// default; Edit is entered by loading an existing product, and exited by
// an explicit cancel or a successful submit, both of which reset every
// field back to the Create defaults.
type ProductForm struct {
	editingID string
	Input     ProductInput
}

// NewProductForm returns a form in the Create state.
func NewProductForm() *ProductForm {
	f := &ProductForm{}
	f.Reset()
	return f
}

// Editing reports whether the form is in the Edit state.
func (f *ProductForm) Editing() bool {
	return f.editingID != ""
}

// EditingID returns the identifier of the product being edited, or ""
// in the Create state.
func (f *ProductForm) EditingID() string {
	return f.editingID
}

// LoadProduct enters the Edit state, populating every field from the
// record. List fields round-trip back to the comma-separated text the
// form edits.
func (f *ProductForm) LoadProduct(p *models.Product) {
	f.editingID = p.ID
	f.Input = ProductInput{
		Name:        p.Name,
		Category:    string(p.Category),
		Description: p.Description,
		THC:         p.THC,
		CBD:         p.CBD,
		Effects:     joinList(effectStrings(p.Effects)),
		Aroma:       joinList(p.Aroma),
		Flavor:      joinList(p.Flavor),
		IsNew:       models.Flag(p.IsNew),
		IsPopular:   models.Flag(p.IsPopular),
	}
}

// Reset returns the form to the Create state with empty fields.
func (f *ProductForm) Reset() {
	f.editingID = ""
	f.Input = ProductInput{Category: string(models.CategoryIndica)}
}

// THCText and CBDText render the numeric fields the way the form shows
// them: empty in the Create state, the stored value while editing.
func (f *ProductForm) THCText() string { return numText(f.Input.THC, f.Editing()) }
func (f *ProductForm) CBDText() string { return numText(f.Input.CBD, f.Editing()) }

func numText(v float64, editing bool) string {
	if !editing && v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func effectStrings(effects models.EffectList) []string {
	out := make([]string, len(effects))
	for i, e := range effects {
		out[i] = string(e)
	}
	return out
}

func joinList(items []string) string {
	return strings.Join(items, ", ")
}
