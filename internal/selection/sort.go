package selection

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Order is the direction of the active sort.
type Order int

const (
	OrderNone Order = iota
	OrderDesc
	OrderAsc
)

func (o Order) String() string {
	switch o {
	case OrderDesc:
		return "desc"
	case OrderAsc:
		return "asc"
	default:
		return "none"
	}
}

// ParseOrder accepts "asc", "desc", "none" or "".
func ParseOrder(s string) (Order, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return OrderNone, true
	case "desc":
		return OrderDesc, true
	case "asc":
		return OrderAsc, true
	default:
		return OrderNone, false
	}
}

// SortState is the single active sort field. Field is empty when Order is OrderNone.
type SortState struct {
	Field string
	Order Order
}

// Toggle cycles none -> desc -> asc -> none for the same field. A different field always starts at desc.
func (s SortState) Toggle(field string) SortState {
	if field != s.Field || s.Order == OrderNone {
		return SortState{Field: field, Order: OrderDesc}
	}
	switch s.Order {
	case OrderDesc:
		return SortState{Field: field, Order: OrderAsc}
	default:
		return SortState{}
	}
}

// Active reports whether a sort is applied.
func (s SortState) Active() bool { return s.Field != "" && s.Order != OrderNone }

// Filter keeps items whose search text contains term, ignoring case. Catalog order is preserved.
func Filter[T any](items []T, searchText func(T) string, term string) []T {
	term = strings.ToLower(term)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(searchText(it)), term) {
			out = append(out, it)
		}
	}
	return out
}

// Sort returns a stably sorted copy of items. Field is a dot-separated path into each item's JSON form,
// e.g. "stats.health".
func Sort[T any](items []T, field string, order Order) []T {
	out := append([]T(nil), items...)
	if field == "" || order == OrderNone {
		return out
	}
	docs := encodeDocs(out)
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sortIndices(idx, docs, field, order)
	sorted := make([]T, len(out))
	for i, j := range idx {
		sorted[i] = out[j]
	}
	return sorted
}

func encodeDocs[T any](items []T) [][]byte {
	docs := make([][]byte, len(items))
	for i, it := range items {
		// Items that fail to encode sort as if every field were missing.
		b, err := json.Marshal(it)
		if err == nil {
			docs[i] = b
		}
	}
	return docs
}

func sortIndices(idx []int, docs [][]byte, field string, order Order) {
	keys := make(map[int]sortKey, len(idx))
	for _, i := range idx {
		keys[i] = keyOf(docs[i], field)
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if order == OrderDesc {
			return compareKeys(kb, ka) < 0
		}
		return compareKeys(ka, kb) < 0
	})
}

type sortKey struct {
	num   float64
	str   string
	isStr bool
	// blank strings sort after every other string, so blank fields (backer traits etc.) end up last.
	blank bool
}

func keyOf(doc []byte, field string) sortKey {
	if doc == nil {
		return sortKey{num: -1}
	}
	r := gjson.GetBytes(doc, field)
	switch {
	case !r.Exists() || r.Type == gjson.Null:
		return sortKey{num: -1}
	case r.Type == gjson.String:
		if r.Str == "" {
			return sortKey{isStr: true, blank: true}
		}
		return sortKey{str: r.Str, isStr: true}
	case r.Type == gjson.Number:
		return sortKey{num: r.Num}
	default:
		return sortKey{str: r.Raw, isStr: true}
	}
}

// compareKeys orders numbers numerically and strings by byte value, blank strings last. Mixed kinds
// compare equal, leaving them in catalog order.
func compareKeys(a, b sortKey) int {
	switch {
	case a.isStr && b.isStr:
		switch {
		case a.blank && b.blank:
			return 0
		case a.blank:
			return 1
		case b.blank:
			return -1
		}
		return strings.Compare(a.str, b.str)
	case !a.isStr && !b.isStr:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		}
	}
	return 0
}
