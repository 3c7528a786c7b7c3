// Package main provides a CLI that builds party members from a roster and
// encodes them into a save file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/ebtoolkit/internal/config"
	"github.com/cory-johannsen/ebtoolkit/internal/game/character"
	"github.com/cory-johannsen/ebtoolkit/internal/game/dice"
	"github.com/cory-johannsen/ebtoolkit/internal/game/inventory"
	"github.com/cory-johannsen/ebtoolkit/internal/game/text"
	"github.com/cory-johannsen/ebtoolkit/internal/observability"
	"github.com/cory-johannsen/ebtoolkit/internal/roster"
	"github.com/cory-johannsen/ebtoolkit/internal/savefile"
	"github.com/cory-johannsen/ebtoolkit/internal/storage/postgres"
)

// exitUnsupported is returned when every member was built but the save
// layout cannot be completed yet.
const exitUnsupported = 2

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (empty uses defaults and EBT_ environment)")
	rosterPath := flag.String("roster", "", "path to roster YAML file")
	loadID := flag.String("load", "", "roster ID to load from the database instead of -roster")
	outName := flag.String("out", "party.sav", "save file name, relative to save.output_dir")
	store := flag.Bool("store", false, "persist the roster to the database")
	levelUp := flag.Bool("level-up", false, "advance every member one level before saving; stats equal to the recorded level_stats grow by 1-3")
	ppState := flag.String("pp-state", "normal", "PP growth for -level-up: none, normal, ness_post_magicant")
	dump := flag.Bool("dump", false, "print the resulting roster as YAML")
	flag.Parse()

	if (*rosterPath == "") == (*loadID == "") {
		fmt.Fprintln(os.Stderr, "usage: ebsave (-roster <file> | -load <id>) [-config <file>] [-out <name>] [-store] [-level-up] [-dump]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var repo *postgres.PartyMemberRepository
	if *store || *loadID != "" {
		pool, err := postgres.NewPool(ctx, cfg.Database, logger.Named(observability.ComponentStore))
		if errors.Is(err, postgres.ErrDisabled) {
			logger.Fatal("set database.enabled to use -store or -load")
		}
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		defer pool.Close()
		repo = postgres.NewPartyMemberRepository(pool.DB())
	}

	rosterID := postgres.NewRosterID()
	var (
		members []*character.PartyMember
		drivers []character.GrowthDrivers
	)
	if *loadID != "" {
		rosterID, err = uuid.Parse(*loadID)
		if err != nil {
			logger.Fatal("parsing roster id", zap.String("id", *loadID), zap.Error(err))
		}
		members, drivers, err = loadStored(ctx, repo, rosterID)
	} else {
		members, drivers, err = loadRoster(*rosterPath, cfg.Save.ItemCatalogDir)
	}
	if err != nil {
		logger.Fatal("loading party", zap.Error(err))
	}
	logger.Info("party loaded", zap.Int("members", len(members)))

	if *levelUp {
		state, err := character.ParsePsychicPointsState(*ppState)
		if err != nil {
			logger.Fatal("parsing pp state", zap.Error(err))
		}
		leveler := character.NewLeveler(dice.NewCryptoSource(), logger.Named(observability.ComponentLeveler))
		for i, pm := range members {
			leveler.LevelUp(pm, drivers[i], state)
			drivers[i] = pm.Drivers()
		}
	}

	if *store {
		for slot, pm := range members {
			if err := repo.Save(ctx, rosterID, slot, pm, drivers[slot]); err != nil {
				logger.Fatal("storing party member", zap.Int("slot", slot), zap.Error(err))
			}
		}
		fmt.Fprintf(os.Stdout, "stored roster %s\n", rosterID)
	}

	if *dump {
		if err := dumpRoster(members, drivers); err != nil {
			logger.Fatal("dumping roster", zap.Error(err))
		}
	}

	svc := savefile.NewService(
		character.NewRecordEncoder(text.PlainText, logger.Named(observability.ComponentEncoder)),
		logger.Named(observability.ComponentSave),
	)
	out := filepath.Join(cfg.Save.OutputDir, *outName)
	err = svc.WriteFile(ctx, out, members)
	if errors.Is(err, savefile.ErrSaveNotSupported) {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(exitUnsupported)
	}
	if err != nil {
		logger.Fatal("writing save file", zap.Error(err))
	}
	fmt.Fprintf(os.Stdout, "wrote %s [%s]\n", out, time.Since(start))
}

func loadRoster(path, catalogDir string) ([]*character.PartyMember, []character.GrowthDrivers, error) {
	reg := inventory.NewRegistry()
	if catalogDir != "" {
		defs, err := inventory.LoadItems(catalogDir)
		if err != nil {
			return nil, nil, err
		}
		if reg, err = inventory.NewRegistryFrom(defs); err != nil {
			return nil, nil, err
		}
	}
	r, err := roster.Load(path)
	if err != nil {
		return nil, nil, err
	}
	members, err := r.Build(reg)
	if err != nil {
		return nil, nil, err
	}
	return members, r.Drivers(), nil
}

func loadStored(ctx context.Context, repo *postgres.PartyMemberRepository, id uuid.UUID) ([]*character.PartyMember, []character.GrowthDrivers, error) {
	stored, err := repo.ListByRoster(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if len(stored) == 0 {
		return nil, nil, fmt.Errorf("roster %s: %w", id, postgres.ErrPartyMemberNotFound)
	}
	members := make([]*character.PartyMember, 0, len(stored))
	drivers := make([]character.GrowthDrivers, 0, len(stored))
	for _, sm := range stored {
		members = append(members, sm.Member)
		drivers = append(drivers, sm.Drivers)
	}
	return members, drivers, nil
}

func dumpRoster(members []*character.PartyMember, drivers []character.GrowthDrivers) error {
	r := roster.Roster{}
	for i, pm := range members {
		r.Members = append(r.Members, roster.FromMemberAtLevel(pm, drivers[i]))
	}
	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	enc.SetIndent(2)
	return enc.Encode(r)
}
