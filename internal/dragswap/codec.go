package dragswap

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"siralim-planner/internal/model"
)

// ErrMalformed is returned when a drag payload cannot be decoded into a slot address.
var ErrMalformed = errors.New("dragswap: malformed payload")

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("dragswap: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic("dragswap: CBOR decoder initialization failed: " + err.Error())
	}
}

// payload is the wire form of a source address. Both keys are required.
type payload struct {
	Member *int `cbor:"1,keyasint"`
	Slot   *int `cbor:"2,keyasint"`
}

// EncodeAddress serializes a slot address for the drag-data channel.
func EncodeAddress(a model.SlotAddress) ([]byte, error) {
	m, s := a.PartyMemberID, a.TraitSlotID
	return encMode.Marshal(payload{Member: &m, Slot: &s})
}

// DecodeAddress parses a payload written by EncodeAddress. Missing keys and addresses outside
// the party are rejected.
func DecodeAddress(data []byte) (model.SlotAddress, error) {
	if len(data) == 0 {
		return model.SlotAddress{}, ErrMalformed
	}
	var p payload
	if err := decMode.Unmarshal(data, &p); err != nil {
		return model.SlotAddress{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if p.Member == nil || p.Slot == nil {
		return model.SlotAddress{}, ErrMalformed
	}
	a := model.SlotAddress{PartyMemberID: *p.Member, TraitSlotID: *p.Slot}
	if !a.Valid() {
		return model.SlotAddress{}, fmt.Errorf("%w: address %d:%d out of range", ErrMalformed, a.PartyMemberID, a.TraitSlotID)
	}
	return a, nil
}
