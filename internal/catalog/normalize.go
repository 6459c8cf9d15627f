package catalog

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"siralim-planner/internal/model"
)

const uidLength = 6

// MonsterUID derives the uid used when a trait record has none: a short hash of family, creature and trait.
func MonsterUID(family, creature, traitName string) string {
	key := strings.ToLower(family) + "_" + strings.ToLower(creature) + "_" + strings.ToLower(traitName)
	return shortHash(key)
}

// SpellUID derives a spell uid from the lowercase letters of its name and class.
func SpellUID(name, class string) string {
	return shortHash(lowerLetters(strings.ToLower(name) + class))
}

// RelicUID derives a two-letter relic uid from the letters of its name.
func RelicUID(name string) string {
	raw := lowerLetters(strings.ToLower(name))
	if len(raw) > 12 {
		return string([]byte{raw[5], raw[12]})
	}
	return shortHash(raw)[:2]
}

// RelicAbbreviation is the name up to the first comma with spaces and ampersands removed.
func RelicAbbreviation(name string) string {
	head, _, _ := strings.Cut(name, ",")
	head = strings.ReplaceAll(head, " & ", "")
	return strings.ReplaceAll(head, " ", "")
}

func shortHash(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])[:uidLength]
}

func lowerLetters(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func searchText(fields ...string) string {
	return strings.ToLower(strings.Join(fields, " "))
}

func normalizeMonsters(doc []byte) ([]*model.Monster, error) {
	var list []*model.Monster
	if err := json.Unmarshal(doc, &list); err != nil {
		return nil, fmt.Errorf("%s: %w", MonstersFile, err)
	}
	seen := make(map[string]int, len(list))
	for i, m := range list {
		m.Class = strings.TrimSpace(m.Class)
		m.Family = strings.TrimSpace(m.Family)
		m.Creature = strings.TrimSpace(m.Creature)
		m.TraitName = strings.TrimSpace(m.TraitName)
		m.TraitDescription = strings.TrimSpace(m.TraitDescription)
		m.MaterialName = strings.TrimSpace(m.MaterialName)
		m.SpriteFilename = strings.TrimSpace(m.SpriteFilename)
		for j := range m.Sources {
			m.Sources[j] = strings.TrimSpace(m.Sources[j])
		}
		if m.UID = strings.TrimSpace(m.UID); m.UID == "" {
			m.UID = MonsterUID(m.Family, m.Creature, m.TraitName)
		}
		if strings.TrimSpace(m.SearchText) == "" {
			m.SearchText = searchText(m.Class, m.Creature, m.Family, m.TraitName, m.TraitDescription, m.MaterialName)
		} else {
			m.SearchText = strings.ToLower(m.SearchText)
		}
		if prev, dup := seen[m.UID]; dup {
			return nil, fmt.Errorf("%s: duplicate uid %q (entries %d and %d)", MonstersFile, m.UID, prev, i)
		}
		seen[m.UID] = i
	}
	return list, nil
}

type rawSpell struct {
	UID         string          `json:"uid"`
	Class       string          `json:"class"`
	Charges     json.RawMessage `json:"charges"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	SearchText  string          `json:"search_text"`
}

// parseCharges accepts a JSON number or a numeric string.
func parseCharges(raw json.RawMessage) (int, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("charges: %s", raw)
	}
	return strconv.Atoi(strings.TrimSpace(s))
}

// normalizeSpells keeps the first spell of each name and sorts by name.
func normalizeSpells(doc []byte) ([]*model.Spell, error) {
	var raw []rawSpell
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", SpellsFile, err)
	}
	byName := make(map[string]bool, len(raw))
	uids := make(map[string]string, len(raw))
	out := make([]*model.Spell, 0, len(raw))
	for i, r := range raw {
		charges, err := parseCharges(r.Charges)
		if err != nil {
			return nil, fmt.Errorf("%s: entry %d: %w", SpellsFile, i, err)
		}
		s := &model.Spell{
			UID:         strings.TrimSpace(r.UID),
			Class:       strings.TrimSpace(r.Class),
			Charges:     charges,
			Name:        strings.TrimSpace(r.Name),
			Description: strings.TrimSpace(r.Description),
			SearchText:  strings.ToLower(strings.TrimSpace(r.SearchText)),
		}
		if byName[s.Name] {
			continue
		}
		byName[s.Name] = true
		if s.UID == "" {
			s.UID = SpellUID(s.Name, s.Class)
		}
		if s.SearchText == "" {
			s.SearchText = searchText(s.Class, s.Name, strconv.Itoa(s.Charges), s.Description)
		}
		if prev, dup := uids[s.UID]; dup {
			return nil, fmt.Errorf("%s: duplicate uid %q (%s and %s)", SpellsFile, s.UID, prev, s.Name)
		}
		uids[s.UID] = s.Name
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// normalizeRelics keeps the first relic of each name and sorts by name.
func normalizeRelics(doc []byte) ([]*model.Relic, error) {
	var list []*model.Relic
	if err := json.Unmarshal(doc, &list); err != nil {
		return nil, fmt.Errorf("%s: %w", RelicsFile, err)
	}
	byName := make(map[string]bool, len(list))
	uids := make(map[string]string, len(list))
	out := make([]*model.Relic, 0, len(list))
	for _, r := range list {
		r.Name = strings.TrimSpace(r.Name)
		if byName[r.Name] {
			continue
		}
		byName[r.Name] = true
		r.StatBonus = strings.TrimSpace(r.StatBonus)
		if r.Abbreviation = strings.TrimSpace(r.Abbreviation); r.Abbreviation == "" {
			r.Abbreviation = RelicAbbreviation(r.Name)
		}
		if r.UID = strings.TrimSpace(r.UID); r.UID == "" {
			r.UID = RelicUID(r.Name)
		}
		if r.Perks == nil {
			r.Perks = []model.Perk{}
		}
		if prev, dup := uids[r.UID]; dup {
			return nil, fmt.Errorf("%s: duplicate uid %q (%s and %s)", RelicsFile, r.UID, prev, r.Name)
		}
		uids[r.UID] = r.Name
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
