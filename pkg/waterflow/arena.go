package waterflow

// arena owns materialized items, one slot per item index.
type arena struct {
	slots []Item
	live  int
}

func (a *arena) get(index int) Item {
	if index < 0 || index >= len(a.slots) {
		return nil
	}
	return a.slots[index]
}

func (a *arena) put(index int, item Item) {
	for len(a.slots) <= index {
		a.slots = append(a.slots, nil)
	}
	if a.slots[index] == nil {
		a.live++
	}
	a.slots[index] = item
}

// take empties the slot and reports whether it held an item.
func (a *arena) take(index int) bool {
	if a.get(index) == nil {
		return false
	}
	a.slots[index] = nil
	a.live--
	return true
}

// indices returns the occupied slots in ascending order.
func (a *arena) indices() []int {
	out := make([]int, 0, a.live)
	for i, it := range a.slots {
		if it != nil {
			out = append(out, i)
		}
	}
	return out
}

// from returns occupied slots >= index.
func (a *arena) from(index int) []int {
	var out []int
	for i := max(index, 0); i < len(a.slots); i++ {
		if a.slots[i] != nil {
			out = append(out, i)
		}
	}
	return out
}
