package dragswap

import "siralim-planner/internal/model"

// Picker is the keyboard form of a drag: the first Pick selects the source, the second swaps it with
// the target.
type Picker struct {
	proto    *Protocol
	transfer *MemoryTransfer
	src      *model.SlotAddress
}

func NewPicker(p *Protocol) *Picker { return &Picker{proto: p} }

// Source returns the picked source, if any.
func (k *Picker) Source() (model.SlotAddress, bool) {
	if k.src == nil {
		return model.SlotAddress{}, false
	}
	return *k.src, true
}

// Pick selects a source or, with one already selected, drops it on a. It reports whether a swap happened.
func (k *Picker) Pick(a model.SlotAddress) (bool, error) {
	if k.src == nil {
		t := NewMemoryTransfer()
		if err := k.proto.Begin(a, t); err != nil {
			return false, err
		}
		src := a
		k.src = &src
		k.transfer = t
		return false, nil
	}
	k.proto.Over(a)
	_, ok := k.proto.Drop(a, k.transfer)
	k.src, k.transfer = nil, nil
	return ok, nil
}

// Cancel discards the picked source.
func (k *Picker) Cancel() {
	k.src, k.transfer = nil, nil
	k.proto.dragging = false
}
