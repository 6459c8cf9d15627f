package store

import (
	"fmt"

	"siralim-planner/internal/model"
)

// wireParty is the stored form of a party: catalog uids instead of records.
// An empty uid is an empty slot or a cleared spell.
type wireParty struct {
	Version int                                        `json:"version"`
	Members [model.PartySize][model.TraitSlots]string `json:"members"`
	Relics  [model.PartySize]string                   `json:"relics"`
	Spells  [model.PartySize][]string                 `json:"spells"`
	Notes   [model.PartySize]string                   `json:"notes"`
}

func toWire(p model.Party) wireParty {
	w := wireParty{Version: schemaVersion, Notes: p.Notes}
	for i, pm := range p.Members {
		for j, slot := range pm {
			if slot.Monster != nil {
				w.Members[i][j] = slot.Monster.UID
			}
		}
	}
	for i, r := range p.Relics {
		if r != nil {
			w.Relics[i] = r.UID
		}
	}
	for i, list := range p.Spells {
		w.Spells[i] = make([]string, len(list))
		for j, s := range list {
			if s != nil {
				w.Spells[i][j] = s.UID
			}
		}
	}
	return w
}

func fromWire(w wireParty, res Resolver) (model.Party, []string) {
	p := model.NewParty()
	p.Notes = w.Notes
	var warnings []string
	for i := range w.Members {
		for j, uid := range w.Members[i] {
			if uid == "" {
				continue
			}
			m, err := res.Monster(uid)
			if err != nil {
				p.Members[i][j] = model.TraitSlot{Error: MonsterMissing}
				continue
			}
			p.Members[i][j] = model.TraitSlot{Monster: m}
		}
	}
	for i, uid := range w.Relics {
		if uid == "" {
			continue
		}
		r, err := res.Relic(uid)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("member %d: relic %s no longer exists", i+1, uid))
			continue
		}
		p.Relics[i] = r
	}
	for i, uids := range w.Spells {
		list := make([]*model.Spell, len(uids))
		for j, uid := range uids {
			if uid == "" {
				continue
			}
			s, err := res.Spell(uid)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("member %d: spell %s no longer exists", i+1, uid))
				continue
			}
			list[j] = s
		}
		for len(list) > 0 && list[len(list)-1] == nil {
			list = list[:len(list)-1]
		}
		p.Spells[i] = list
	}
	return p, warnings
}

func (w wireParty) memberCount() int {
	n := 0
	for _, pm := range w.Members {
		for _, uid := range pm {
			if uid != "" {
				n++
				break
			}
		}
	}
	return n
}
