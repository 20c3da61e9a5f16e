package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tee(opts map[string]string) Item {
	return Item{
		ProductID:  "prod-1",
		Title:      "Tour Tee",
		Slug:       "tour-tee",
		PriceCents: 2500,
		Currency:   "USD",
		Quantity:   1,
		Options:    opts,
	}
}

func TestAddItem_MergesSameProductAndOptions(t *testing.T) {
	var items []Item

	for i := 0; i < 4; i++ {
		it := tee(map[string]string{"Size": "M"})
		it.Quantity = i + 1
		items = AddItem(items, it)
	}

	require.Len(t, items, 1)
	assert.Equal(t, 1+2+3+4, items[0].Quantity)
}

func TestAddItem_DifferentOptionsStaySeparate(t *testing.T) {
	items := AddItem(nil, tee(map[string]string{"Size": "M"}))
	items = AddItem(items, tee(map[string]string{"Size": "L"}))
	items = AddItem(items, tee(nil))

	assert.Len(t, items, 3)
}

func TestAddItem_OptionOrderIrrelevant(t *testing.T) {
	items := AddItem(nil, tee(map[string]string{"Size": "M", "Color": "Black"}))
	items = AddItem(items, tee(map[string]string{"Color": "Black", "Size": "M"}))

	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddItem_DoesNotMutateInput(t *testing.T) {
	original := []Item{tee(map[string]string{"Size": "M"})}

	_ = AddItem(original, tee(map[string]string{"Size": "M"}))

	assert.Equal(t, 1, original[0].Quantity)
}

func TestRemoveItem_AbsentIsNoop(t *testing.T) {
	items := []Item{tee(map[string]string{"Size": "M"})}

	out := RemoveItem(items, "prod-404", nil)

	assert.Equal(t, items, out)
}

func TestRemoveItem_MatchesOptions(t *testing.T) {
	items := AddItem(nil, tee(map[string]string{"Size": "M"}))
	items = AddItem(items, tee(map[string]string{"Size": "L"}))

	out := RemoveItem(items, "prod-1", map[string]string{"Size": "M"})

	require.Len(t, out, 1)
	assert.Equal(t, "L", out[0].Options["Size"])
}

func TestSetQuantity_ZeroEqualsRemove(t *testing.T) {
	items := AddItem(nil, tee(map[string]string{"Size": "M"}))
	items = AddItem(items, tee(map[string]string{"Size": "L"}))

	viaSet := SetQuantity(items, "prod-1", map[string]string{"Size": "M"}, 0)
	viaRemove := RemoveItem(items, "prod-1", map[string]string{"Size": "M"})

	assert.Equal(t, viaRemove, viaSet)
}

func TestSetQuantity_SetsExactly(t *testing.T) {
	items := AddItem(nil, tee(map[string]string{"Size": "M"}))

	out := SetQuantity(items, "prod-1", map[string]string{"Size": "M"}, 7)

	require.Len(t, out, 1)
	assert.Equal(t, 7, out[0].Quantity)
}

func TestTotalCents(t *testing.T) {
	a := tee(map[string]string{"Size": "M"})
	a.Quantity = 2 // 5000
	b := Item{ProductID: "prod-2", Slug: "poster", PriceCents: 1500, Quantity: 3} // 4500

	assert.Equal(t, int64(9500), TotalCents([]Item{a, b}))
}

func TestTotalCents_OrderIndependent(t *testing.T) {
	a := tee(map[string]string{"Size": "M"})
	b := Item{ProductID: "prod-2", PriceCents: 1299, Quantity: 5}
	c := Item{ProductID: "prod-3", PriceCents: 999, Quantity: 1}

	assert.Equal(t, TotalCents([]Item{a, b, c}), TotalCents([]Item{c, a, b}))
}

func TestTotalCents_Empty(t *testing.T) {
	assert.Equal(t, int64(0), TotalCents(nil))
}
