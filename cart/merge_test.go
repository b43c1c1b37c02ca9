package cart

import (
	"testing"

	"shoply/models"

	"github.com/stretchr/testify/assert"
)

func TestMergeLineItemAccumulatesQuantity(t *testing.T) {
	items := []models.CartLineItem{}
	items = MergeLineItem(items, models.CartLineItem{ProductID: "p1", Quantity: 2, Amount: 100})
	items = MergeLineItem(items, models.CartLineItem{ProductID: "p1", Quantity: 3, Amount: 100})

	assert.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestMergeLineItemCarriesLatestAmount(t *testing.T) {
	items := []models.CartLineItem{{ProductID: "p1", Quantity: 1, Amount: 100}}
	items = MergeLineItem(items, models.CartLineItem{ProductID: "p1", Quantity: 1, Amount: 80})

	// amount is carried from the most recent write, not recomputed
	assert.Equal(t, 80.0, items[0].Amount)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestMergeLineItemAppendsNewProduct(t *testing.T) {
	items := []models.CartLineItem{{ProductID: "p1", Quantity: 1, Amount: 100}}
	items = MergeLineItem(items, models.CartLineItem{ProductID: "p2", Quantity: 4, Amount: 50})

	assert.Len(t, items, 2)
	assert.Equal(t, "p2", items[1].ProductID)
	assert.Equal(t, 4, items[1].Quantity)
}

func TestRemoveLineItem(t *testing.T) {
	items := []models.CartLineItem{
		{ProductID: "p1", Quantity: 1, Amount: 100},
		{ProductID: "p2", Quantity: 2, Amount: 50},
	}

	items = RemoveLineItem(items, "p1")
	assert.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)

	// removing an absent product is a no-op
	items = RemoveLineItem(items, "p9")
	assert.Len(t, items, 1)
}

func TestTotal(t *testing.T) {
	items := []models.CartLineItem{
		{ProductID: "p1", Quantity: 2, Amount: 100},
		{ProductID: "p2", Quantity: 1, Amount: 50},
	}
	assert.Equal(t, 250.0, Total(items))

	assert.Equal(t, 0.0, Total(nil))
}
