// Package dragswap implements the two-phase drag gesture that swaps trait slots.
//
// Begin writes the source address into a Transfer, Over accepts the hover target and Drop reads the
// source back and swaps it with the drop target. Picker drives the same protocol from a keyboard.
package dragswap

import (
	"log/slog"
	"sync"

	"siralim-planner/internal/model"
)

// Key is the transfer key that carries the source address.
const Key = "dragContent"

// Transfer is the key/value channel available for the duration of one drag gesture.
type Transfer interface {
	SetData(key string, data []byte)
	GetData(key string) ([]byte, bool)
}

// MemoryTransfer is an in-process Transfer.
type MemoryTransfer struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryTransfer() *MemoryTransfer {
	return &MemoryTransfer{data: map[string][]byte{}}
}

func (t *MemoryTransfer) SetData(key string, data []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data[key] = append([]byte(nil), data...)
}

func (t *MemoryTransfer) GetData(key string) ([]byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.data[key]
	return b, ok
}

// Swapper exchanges two trait slots in one commit. *party.Planner implements it.
type Swapper interface {
	Swap(a, b model.SlotAddress)
}

type Protocol struct {
	swapper  Swapper
	log      *slog.Logger
	dragging bool
}

func New(s Swapper, log *slog.Logger) *Protocol {
	if log == nil {
		log = slog.Default()
	}
	return &Protocol{swapper: s, log: log}
}

// Dragging reports whether a drag started and has not yet passed over a slot or dropped.
func (p *Protocol) Dragging() bool { return p.dragging }

// Begin starts a drag at src.
func (p *Protocol) Begin(src model.SlotAddress, t Transfer) error {
	b, err := EncodeAddress(src)
	if err != nil {
		return err
	}
	t.SetData(Key, b)
	p.dragging = true
	return nil
}

// Over is called for every slot the drag passes. It always allows the drop.
func (p *Protocol) Over(model.SlotAddress) bool {
	p.dragging = false
	return true
}

// Drop completes the gesture at dst and returns the source it swapped with.
// A missing or malformed payload is ignored and reported as false.
func (p *Protocol) Drop(dst model.SlotAddress, t Transfer) (model.SlotAddress, bool) {
	p.dragging = false
	b, ok := t.GetData(Key)
	if !ok {
		return model.SlotAddress{}, false
	}
	src, err := DecodeAddress(b)
	if err != nil {
		p.log.Debug("ignoring drop", "target", dst, "err", err)
		return model.SlotAddress{}, false
	}
	p.swapper.Swap(src, dst)
	return src, true
}
