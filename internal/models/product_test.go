package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCategory("indica")
	assert.Error(t, err, "matching is case-sensitive")
	_, err = ParseCategory("Edibles")
	assert.Error(t, err)
	_, err = ParseCategory("")
	assert.Error(t, err)
}

func TestCategoryScanRejectsUnknown(t *testing.T) {
	var c Category
	require.NoError(t, c.Scan("Sativa"))
	assert.Equal(t, CategorySativa, c)

	require.NoError(t, c.Scan([]byte("Hybrid")))
	assert.Equal(t, CategoryHybrid, c)

	assert.Error(t, c.Scan("Vape"), "stored values outside the set are data errors")
	assert.Error(t, c.Scan(42))
}

func TestCategoryValueRejectsUnknown(t *testing.T) {
	v, err := CategoryIndica.Value()
	require.NoError(t, err)
	assert.Equal(t, "Indica", v)

	_, err = Category("Vape").Value()
	assert.Error(t, err)
}

func TestCategoryFallbackAsset(t *testing.T) {
	assert.Equal(t, "indica", CategoryIndica.FallbackAsset())
	assert.Equal(t, "accessories", CategoryAccessories.FallbackAsset())
}

func TestParseEffect(t *testing.T) {
	for _, e := range Effects {
		got, err := ParseEffect(string(e))
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}

	_, err := ParseEffect("relaxing")
	assert.Error(t, err)
	_, err = ParseEffect("Euphoric")
	assert.Error(t, err)
}

func TestEffectListScan(t *testing.T) {
	var list EffectList
	require.NoError(t, list.Scan([]byte(`{Relaxing,Sleepy}`)))
	assert.Equal(t, EffectList{EffectRelaxing, EffectSleepy}, list)

	var bad EffectList
	assert.Error(t, bad.Scan([]byte(`{Relaxing,Euphoric}`)))
}

func TestEffectListValue(t *testing.T) {
	_, err := EffectList{EffectCreative}.Value()
	require.NoError(t, err)

	_, err = EffectList{Effect("Euphoric")}.Value()
	assert.Error(t, err)
}

func TestProductFlagValid(t *testing.T) {
	assert.True(t, FlagNew.Valid())
	assert.True(t, FlagPopular.Valid())
	assert.True(t, FlagFeatured.Valid())
	assert.False(t, ProductFlag("name").Valid())
	assert.False(t, ProductFlag("is_new; DROP TABLE products").Valid())
}

func TestDisplayImage(t *testing.T) {
	url := "https://cdn.example.com/a.jpg"

	p := Product{Category: CategoryIndica, Image: "sativa", ImageURL: &url}
	assert.Equal(t, url, p.DisplayImage(), "hosted URL wins")

	p.ImageURL = nil
	assert.Equal(t, "sativa", p.DisplayImage(), "asset key comes next")

	empty := ""
	p.ImageURL = &empty
	assert.Equal(t, "sativa", p.DisplayImage(), "empty URL is treated as absent")

	p.Image = ""
	assert.Equal(t, "indica", p.DisplayImage(), "category fallback is last")
}

func TestFlag(t *testing.T) {
	assert.False(t, Flag(nil))
	f := false
	assert.False(t, Flag(&f))
	tr := true
	assert.True(t, Flag(&tr))
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleUser, ParseRole("user"))
	assert.Equal(t, RoleUser, ParseRole(""))
	assert.Equal(t, RoleUser, ParseRole("Admin"), "unknown values never grant admin")
	assert.Equal(t, RoleUser, ParseRole("superuser"))
}
