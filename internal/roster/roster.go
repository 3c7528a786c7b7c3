// Package roster loads party member definitions from YAML and builds the
// character model from them.
package roster

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/ebtoolkit/internal/game/character"
	"github.com/cory-johannsen/ebtoolkit/internal/game/inventory"
	"github.com/cory-johannsen/ebtoolkit/internal/game/stat"
)

// MaxMembers is the size of the party.
const MaxMembers = 4

// Pool is the YAML form of a RollingStat.
type Pool struct {
	Current int `yaml:"current"`
	Max     int `yaml:"max"`
}

// Status is the YAML form of the three status enums.
type Status struct {
	Permanent  string `yaml:"permanent"`
	Possession string `yaml:"possession"`
	Battle     string `yaml:"battle"`
}

// Stats is the YAML form of the equipment-changeable stats.
type Stats struct {
	Offense  int `yaml:"offense"`
	Defense  int `yaml:"defense"`
	Speed    int `yaml:"speed"`
	Guts     int `yaml:"guts"`
	Luck     int `yaml:"luck"`
	Vitality int `yaml:"vitality"`
	IQ       int `yaml:"iq"`
}

// LevelStats records the natural Vitality and IQ a member had when it reached
// its current level. The next level-up compares against them.
type LevelStats struct {
	Vitality int `yaml:"vitality"`
	IQ       int `yaml:"iq"`
}

// Entry describes one party member.
type Entry struct {
	Name                 string   `yaml:"name"`
	Level                int      `yaml:"level"`
	Experience           int64    `yaml:"experience"`
	HP                   Pool     `yaml:"hp"`
	PP                   Pool     `yaml:"pp"`
	Status               Status   `yaml:"status"`
	FeelingStrange       bool     `yaml:"feeling_strange"`
	CantConcentrateTurns int      `yaml:"cant_concentrate_turns"`
	Homesick             bool     `yaml:"homesick"`
	Stats                Stats    `yaml:"stats"`
	Items                []string `yaml:"items"`

	// LevelStats defaults to Stats when omitted, meaning the stats have not
	// changed since the current level was reached.
	LevelStats *LevelStats `yaml:"level_stats,omitempty"`
}

// Roster is a YAML party file.
type Roster struct {
	Members []Entry `yaml:"members"`
}

// Load reads and validates the roster file at path.
//
// Precondition: path must name a readable YAML file.
// Postcondition: Returns a validated Roster or a non-nil error.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("roster %s: %w", path, err)
	}
	return r, nil
}

// Parse decodes and validates a roster document.
func Parse(data []byte) (*Roster, error) {
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing roster: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks every entry.
//
// Postcondition: Returns nil if the roster is valid, or an error describing all violations.
func (r *Roster) Validate() error {
	if len(r.Members) == 0 {
		return errors.New("roster has no members")
	}
	if len(r.Members) > MaxMembers {
		return fmt.Errorf("roster has %d members, at most %d allowed", len(r.Members), MaxMembers)
	}
	var errs []string
	for i, e := range r.Members {
		if err := e.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("member %d (%q): %v", i, e.Name, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("roster validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Validate checks the domain invariants of a single entry. Wire widths are
// checked later by the encoder.
func (e *Entry) Validate() error {
	var errs []string
	if e.Name == "" {
		errs = append(errs, "name must not be empty")
	}
	if e.Level < 1 {
		errs = append(errs, fmt.Sprintf("level must be >= 1, got %d", e.Level))
	}
	if e.Experience < 0 {
		errs = append(errs, "experience must not be negative")
	}
	for _, p := range []struct {
		label string
		pool  Pool
	}{{"hp", e.HP}, {"pp", e.PP}} {
		if p.pool.Current < 0 || p.pool.Current > p.pool.Max {
			errs = append(errs, fmt.Sprintf("%s must satisfy 0 <= current <= max, got %d/%d", p.label, p.pool.Current, p.pool.Max))
		}
	}
	if e.CantConcentrateTurns < 0 {
		errs = append(errs, "cant_concentrate_turns must not be negative")
	}
	s := e.Stats
	for _, st := range []struct {
		label string
		value int
	}{
		{"offense", s.Offense}, {"defense", s.Defense}, {"speed", s.Speed}, {"guts", s.Guts},
		{"luck", s.Luck}, {"vitality", s.Vitality}, {"iq", s.IQ},
	} {
		if st.value < 0 {
			errs = append(errs, fmt.Sprintf("%s must not be negative", st.label))
		}
	}
	if ls := e.LevelStats; ls != nil && (ls.Vitality < 0 || ls.IQ < 0) {
		errs = append(errs, "level_stats must not be negative")
	}
	if len(e.Items) > inventory.Slots {
		errs = append(errs, fmt.Sprintf("at most %d items allowed, got %d", inventory.Slots, len(e.Items)))
	}
	if _, err := character.ParsePermanentStatusEffect(e.Status.Permanent); err != nil {
		errs = append(errs, err.Error())
	}
	if _, err := character.ParsePossessionStatus(e.Status.Possession); err != nil {
		errs = append(errs, err.Error())
	}
	if _, err := character.ParseBattleStatusEffect(e.Status.Battle); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Build converts the entry into a PartyMember. Items are either numeric IDs
// or names resolved through reg; reg may be nil when only IDs are used.
//
// Precondition: e has passed Validate.
func (e *Entry) Build(reg *inventory.Registry) (*character.PartyMember, error) {
	perm, err := character.ParsePermanentStatusEffect(e.Status.Permanent)
	if err != nil {
		return nil, err
	}
	poss, err := character.ParsePossessionStatus(e.Status.Possession)
	if err != nil {
		return nil, err
	}
	battle, err := character.ParseBattleStatusEffect(e.Status.Battle)
	if err != nil {
		return nil, err
	}

	pm := &character.PartyMember{
		Character: character.Character{
			Name:                  e.Name,
			Level:                 e.Level,
			Experience:            e.Experience,
			HP:                    stat.RollingStat{Current: e.HP.Current, Max: e.HP.Max},
			PP:                    stat.RollingStat{Current: e.PP.Current, Max: e.PP.Max},
			PermanentStatusEffect: perm,
			PossessionStatus:      poss,
			BattleStatusEffect:    battle,
			FeelingStrange:        e.FeelingStrange,
			CantConcentrateTurns:  e.CantConcentrateTurns,
			Homesick:              e.Homesick,
			Offense:               stat.New(e.Stats.Offense),
			Defense:               stat.New(e.Stats.Defense),
			Speed:                 stat.New(e.Stats.Speed),
			Guts:                  stat.New(e.Stats.Guts),
			Luck:                  stat.New(e.Stats.Luck),
		},
		Vitality: stat.New(e.Stats.Vitality),
		IQ:       stat.New(e.Stats.IQ),
	}
	for _, item := range e.Items {
		id, err := resolveItem(item, reg)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", e.Name, err)
		}
		if _, err := pm.Inventory.Add(id); err != nil {
			return nil, fmt.Errorf("member %q: %w", e.Name, err)
		}
	}
	return pm, nil
}

// Build converts every entry in order.
func (r *Roster) Build(reg *inventory.Registry) ([]*character.PartyMember, error) {
	out := make([]*character.PartyMember, 0, len(r.Members))
	for i := range r.Members {
		pm, err := r.Members[i].Build(reg)
		if err != nil {
			return nil, err
		}
		out = append(out, pm)
	}
	return out, nil
}

// Drivers returns the growth drivers recorded for the entry's current level.
//
// Postcondition: without LevelStats the entry's own Vitality and IQ are returned.
func (e *Entry) Drivers() character.GrowthDrivers {
	if e.LevelStats == nil {
		return character.GrowthDrivers{Vitality: e.Stats.Vitality, IQ: e.Stats.IQ}
	}
	return character.GrowthDrivers{Vitality: e.LevelStats.Vitality, IQ: e.LevelStats.IQ}
}

// Drivers returns the growth drivers of every entry, in member order.
func (r *Roster) Drivers() []character.GrowthDrivers {
	out := make([]character.GrowthDrivers, 0, len(r.Members))
	for i := range r.Members {
		out = append(out, r.Members[i].Drivers())
	}
	return out
}

// FromMemberAtLevel is FromMember with the level's growth drivers recorded.
func FromMemberAtLevel(pm *character.PartyMember, d character.GrowthDrivers) Entry {
	e := FromMember(pm)
	e.LevelStats = &LevelStats{Vitality: d.Vitality, IQ: d.IQ}
	return e
}

// FromMember converts a PartyMember back to its YAML form. Items are written as IDs.
func FromMember(pm *character.PartyMember) Entry {
	items := make([]string, 0, inventory.Slots)
	for _, id := range pm.Inventory.Items() {
		items = append(items, strconv.Itoa(id))
	}
	return Entry{
		Name:       pm.Name,
		Level:      pm.Level,
		Experience: pm.Experience,
		HP:         Pool{Current: pm.HP.Current, Max: pm.HP.Max},
		PP:         Pool{Current: pm.PP.Current, Max: pm.PP.Max},
		Status: Status{
			Permanent:  pm.PermanentStatusEffect.String(),
			Possession: pm.PossessionStatus.String(),
			Battle:     pm.BattleStatusEffect.String(),
		},
		FeelingStrange:       pm.FeelingStrange,
		CantConcentrateTurns: pm.CantConcentrateTurns,
		Homesick:             pm.Homesick,
		Stats: Stats{
			Offense: pm.Offense.Value(), Defense: pm.Defense.Value(), Speed: pm.Speed.Value(),
			Guts: pm.Guts.Value(), Luck: pm.Luck.Value(),
			Vitality: pm.Vitality.Value(), IQ: pm.IQ.Value(),
		},
		Items: items,
	}
}

func resolveItem(item string, reg *inventory.Registry) (int, error) {
	if id, err := strconv.Atoi(item); err == nil {
		return id, nil
	}
	if reg == nil {
		return 0, fmt.Errorf("item %q is not numeric and no item catalog is loaded", item)
	}
	def, ok := reg.ItemByName(item)
	if !ok {
		return 0, fmt.Errorf("unknown item %q", item)
	}
	return def.ID, nil
}
