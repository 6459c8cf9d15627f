package cli

import (
	"fmt"
	"strconv"
	"strings"

	"siralim-planner/internal/model"
	"siralim-planner/internal/selection"
)

type flagError struct {
	flag  string
	value string
	want  string
}

func (e flagError) Error() string {
	return fmt.Sprintf("invalid --%s %q: want %s", e.flag, e.value, e.want)
}

// parseMember reads a 1-based party member number.
func parseMember(flag string, n int) (int, error) {
	if n < 1 || n > model.PartySize {
		return 0, flagError{flag: flag, value: strconv.Itoa(n), want: fmt.Sprintf("1..%d", model.PartySize)}
	}
	return n - 1, nil
}

// parseSlot accepts primary|fused|artifact or a 1-based number.
func parseSlot(flag, s string) (model.TraitSlotIndex, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for i := model.SlotPrimary; i <= model.SlotArtifact; i++ {
		if v == i.String() {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= model.TraitSlots {
		return model.TraitSlotIndex(n - 1), nil
	}
	return 0, flagError{flag: flag, value: s, want: "primary|fused|artifact or 1..3"}
}

// parseAddress reads "member:slot", e.g. "2:fused" or "2:2".
func parseAddress(flag, s string) (model.SlotAddress, error) {
	bad := flagError{flag: flag, value: s, want: "member:slot (e.g. 2:fused)"}
	m, sl, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return model.SlotAddress{}, bad
	}
	n, err := strconv.Atoi(strings.TrimSpace(m))
	if err != nil {
		return model.SlotAddress{}, bad
	}
	member, err := parseMember(flag, n)
	if err != nil {
		return model.SlotAddress{}, err
	}
	slot, err := parseSlot(flag, sl)
	if err != nil {
		return model.SlotAddress{}, bad
	}
	return model.SlotAddress{PartyMemberID: member, TraitSlotID: int(slot)}, nil
}

// parseSort reads "field" or "field:asc|desc|none". A bare field sorts descending, as the first toggle does.
func parseSort(flag, s string, cols []selection.Column) (selection.SortState, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return selection.SortState{}, nil
	}
	field, order, hasOrder := strings.Cut(s, ":")
	if _, ok := selection.ColumnByField(cols, field); !ok {
		fields := make([]string, 0, len(cols))
		for _, c := range cols {
			fields = append(fields, c.Field)
		}
		return selection.SortState{}, flagError{flag: flag, value: s, want: "one of " + strings.Join(fields, ", ")}
	}
	if !hasOrder {
		return selection.SortState{}.Toggle(field), nil
	}
	o, ok := selection.ParseOrder(order)
	if !ok {
		return selection.SortState{}, flagError{flag: flag, value: s, want: "field:asc|desc|none"}
	}
	if o == selection.OrderNone {
		return selection.SortState{}, nil
	}
	return selection.SortState{Field: field, Order: o}, nil
}

// parseTab accepts a tab name (case-insensitive) or index.
func parseTab(flag, s string, tabs []string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	for i, t := range tabs {
		if strings.EqualFold(t, s) {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < len(tabs) {
		return n, nil
	}
	return 0, flagError{flag: flag, value: s, want: strings.Join(tabs, "|")}
}
