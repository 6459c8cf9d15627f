package party

import "siralim-planner/internal/model"

// NoRelicLabel is shown when a member has no relic.
const NoRelicLabel = "No relic selected"

// Profile is the summary shown beside a party member's trait rows.
type Profile struct {
	Class    string
	Sprite   string
	Stats    model.Stats
	HasStats bool
	Relic    string
}

// Profile summarises member: displayed class, primary sprite, averaged stats and relic name.
func (p *Planner) Profile(member int) Profile {
	checkMember(member)
	pm := p.party.Members[member]
	out := Profile{Class: model.DisplayClass(pm), Relic: NoRelicLabel}
	if m := pm[model.SlotPrimary].Monster; m != nil {
		out.Sprite = m.SpriteFilename
	}
	out.Stats, out.HasStats = model.ProfileStats(pm)
	if r := p.party.Relics[member]; r != nil {
		out.Relic = r.Name
	}
	return out
}
