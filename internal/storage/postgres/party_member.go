package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/ebtoolkit/internal/game/character"
	"github.com/cory-johannsen/ebtoolkit/internal/game/stat"
)

// ErrPartyMemberNotFound is returned when a roster slot holds no member.
var ErrPartyMemberNotFound = errors.New("party member not found")

// StoredMember is a party member persisted in a roster slot. Drivers are the
// stats recorded when Member reached its current level.
type StoredMember struct {
	RosterID  uuid.UUID
	Slot      int
	Member    *character.PartyMember
	Drivers   character.GrowthDrivers
	UpdatedAt time.Time
}

// NewRosterID returns a fresh roster identifier.
func NewRosterID() uuid.UUID {
	return uuid.New()
}

// PartyMemberRepository stores party members by roster and slot.
type PartyMemberRepository struct {
	db *pgxpool.Pool
}

// NewPartyMemberRepository creates a PartyMemberRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewPartyMemberRepository(db *pgxpool.Pool) *PartyMemberRepository {
	return &PartyMemberRepository{db: db}
}

const memberColumns = `roster_id, slot, name, level, experience,
	hp_current, hp_max, pp_current, pp_max,
	permanent_status, possession_status, battle_status,
	feeling_strange, cant_concentrate_turns, homesick,
	offense, defense, speed, guts, luck, vitality, iq,
	items, level_vitality, level_iq, updated_at`

// Save inserts or replaces the member stored in slot of rosterID, together
// with the growth drivers of its current level.
//
// Precondition: slot >= 0.
// Postcondition: ListByRoster returns pm and drivers at slot.
func (r *PartyMemberRepository) Save(ctx context.Context, rosterID uuid.UUID, slot int, pm *character.PartyMember, drivers character.GrowthDrivers) error {
	items := make([]int32, 0)
	for _, id := range pm.Inventory.Items() {
		items = append(items, int32(id))
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO party_members (`+memberColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,NOW())
		ON CONFLICT (roster_id, slot) DO UPDATE SET
			name = EXCLUDED.name, level = EXCLUDED.level, experience = EXCLUDED.experience,
			hp_current = EXCLUDED.hp_current, hp_max = EXCLUDED.hp_max,
			pp_current = EXCLUDED.pp_current, pp_max = EXCLUDED.pp_max,
			permanent_status = EXCLUDED.permanent_status,
			possession_status = EXCLUDED.possession_status,
			battle_status = EXCLUDED.battle_status,
			feeling_strange = EXCLUDED.feeling_strange,
			cant_concentrate_turns = EXCLUDED.cant_concentrate_turns,
			homesick = EXCLUDED.homesick,
			offense = EXCLUDED.offense, defense = EXCLUDED.defense, speed = EXCLUDED.speed,
			guts = EXCLUDED.guts, luck = EXCLUDED.luck,
			vitality = EXCLUDED.vitality, iq = EXCLUDED.iq,
			items = EXCLUDED.items,
			level_vitality = EXCLUDED.level_vitality, level_iq = EXCLUDED.level_iq,
			updated_at = NOW()`,
		rosterID, slot, pm.Name, pm.Level, pm.Experience,
		pm.HP.Current, pm.HP.Max, pm.PP.Current, pm.PP.Max,
		int16(pm.PermanentStatusEffect), int16(pm.PossessionStatus), int16(pm.BattleStatusEffect),
		pm.FeelingStrange, pm.CantConcentrateTurns, pm.Homesick,
		pm.Offense.Value(), pm.Defense.Value(), pm.Speed.Value(), pm.Guts.Value(), pm.Luck.Value(),
		pm.Vitality.Value(), pm.IQ.Value(),
		items, drivers.Vitality, drivers.IQ,
	)
	if err != nil {
		return fmt.Errorf("saving party member: %w", err)
	}
	return nil
}

// ListByRoster returns every member of rosterID ordered by slot.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *PartyMemberRepository) ListByRoster(ctx context.Context, rosterID uuid.UUID) ([]StoredMember, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+memberColumns+`
		FROM party_members WHERE roster_id = $1 ORDER BY slot ASC`,
		rosterID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing party members: %w", err)
	}
	defer rows.Close()

	out := make([]StoredMember, 0)
	for rows.Next() {
		sm, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

// Get returns the member stored in slot of rosterID.
//
// Postcondition: Returns the member or ErrPartyMemberNotFound.
func (r *PartyMemberRepository) Get(ctx context.Context, rosterID uuid.UUID, slot int) (StoredMember, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+memberColumns+`
		FROM party_members WHERE roster_id = $1 AND slot = $2`,
		rosterID, slot,
	)
	sm, err := scanMember(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return StoredMember{}, ErrPartyMemberNotFound
	}
	return sm, err
}

// Delete removes the member stored in slot of rosterID.
//
// Postcondition: Returns ErrPartyMemberNotFound if no row was deleted.
func (r *PartyMemberRepository) Delete(ctx context.Context, rosterID uuid.UUID, slot int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM party_members WHERE roster_id = $1 AND slot = $2`, rosterID, slot)
	if err != nil {
		return fmt.Errorf("deleting party member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPartyMemberNotFound
	}
	return nil
}

func scanMember(row pgx.Row) (StoredMember, error) {
	var (
		sm                        StoredMember
		pm                        character.PartyMember
		perm, poss, battle        int16
		off, def, spd, guts, luck int
		vit, iq                   int
		items                     []int32
		levelVit, levelIQ         *int
	)
	err := row.Scan(
		&sm.RosterID, &sm.Slot, &pm.Name, &pm.Level, &pm.Experience,
		&pm.HP.Current, &pm.HP.Max, &pm.PP.Current, &pm.PP.Max,
		&perm, &poss, &battle,
		&pm.FeelingStrange, &pm.CantConcentrateTurns, &pm.Homesick,
		&off, &def, &spd, &guts, &luck, &vit, &iq,
		&items, &levelVit, &levelIQ, &sm.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StoredMember{}, err
		}
		return StoredMember{}, fmt.Errorf("scanning party member row: %w", err)
	}
	pm.PermanentStatusEffect = character.PermanentStatusEffect(perm)
	pm.PossessionStatus = character.PossessionStatus(poss)
	pm.BattleStatusEffect = character.BattleStatusEffect(battle)
	pm.Offense, pm.Defense, pm.Speed = stat.New(off), stat.New(def), stat.New(spd)
	pm.Guts, pm.Luck = stat.New(guts), stat.New(luck)
	pm.Vitality, pm.IQ = stat.New(vit), stat.New(iq)
	for _, id := range items {
		if _, err := pm.Inventory.Add(int(id)); err != nil {
			return StoredMember{}, fmt.Errorf("restoring inventory of %q: %w", pm.Name, err)
		}
	}
	// Rows written before level stats were stored count as unchanged.
	sm.Drivers = pm.Drivers()
	if levelVit != nil {
		sm.Drivers.Vitality = *levelVit
	}
	if levelIQ != nil {
		sm.Drivers.IQ = *levelIQ
	}
	sm.Member = &pm
	return sm, nil
}
