package cart

// Two cart lines are the same purchasable unit only when both the product id
// and the full set of selected variant options match. Option order is
// irrelevant, a map comparison handles that.
func sameLine(it Item, productID string, options map[string]string) bool {
	if it.ProductID != productID {
		return false
	}
	if len(it.Options) != len(options) {
		return false
	}
	for k, v := range options {
		if it.Options[k] != v {
			return false
		}
	}
	return true
}

// AddItem merges the new item into the list. If a line with the same
// (product id, options) already exists its quantity is incremented,
// otherwise the item is appended. The input slice is not modified.
func AddItem(items []Item, it Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	for i := range out {
		if sameLine(out[i], it.ProductID, it.Options) {
			out[i].Quantity += it.Quantity
			return out
		}
	}
	return append(out, it)
}

// RemoveItem removes the matching line. Removing an absent line is a no-op,
// not an error.
func RemoveItem(items []Item, productID string, options map[string]string) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if sameLine(it, productID, options) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// SetQuantity sets the quantity of the matching line exactly. A quantity of
// zero or less removes the line.
func SetQuantity(items []Item, productID string, options map[string]string, quantity int) []Item {
	if quantity <= 0 {
		return RemoveItem(items, productID, options)
	}
	out := make([]Item, len(items))
	copy(out, items)
	for i := range out {
		if sameLine(out[i], productID, options) {
			out[i].Quantity = quantity
			break
		}
	}
	return out
}

// TotalCents sums price times quantity over all lines.
func TotalCents(items []Item) int64 {
	var total int64
	for _, it := range items {
		total += it.PriceCents * int64(it.Quantity)
	}
	return total
}
