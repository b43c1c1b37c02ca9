package cart

import "shoply/models"

// MergeLineItem folds item into items keyed by productId. An existing entry
// accumulates quantity and takes the incoming amount; otherwise the item is
// appended. The result has at most one entry per productId.
func MergeLineItem(items []models.CartLineItem, item models.CartLineItem) []models.CartLineItem {
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			items[i].Amount = item.Amount
			return items
		}
	}
	return append(items, item)
}

// RemoveLineItem filters out the entry for productID, keeping order.
func RemoveLineItem(items []models.CartLineItem, productID string) []models.CartLineItem {
	out := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}

// Total is the authoritative payable amount: Σ amount × quantity over all
// current line items.
func Total(items []models.CartLineItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Amount * float64(it.Quantity)
	}
	return total
}
