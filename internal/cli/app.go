package cli

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	dbsqlite "casespine/internal/adapters/db/sqlite"
	csvexport "casespine/internal/adapters/exporter/csv"
	"casespine/internal/adapters/exporter/jsonbundle"
	exreg "casespine/internal/adapters/exporter/registry"
	"casespine/internal/adapters/neutralize/llm"
	rulesneutral "casespine/internal/adapters/neutralize/rules"
	csvparser "casespine/internal/adapters/parser/csv"
	"casespine/internal/config"
	"casespine/internal/usecase/annotations"
	exportuc "casespine/internal/usecase/exporter"
	"casespine/internal/usecase/importer"
	"casespine/internal/usecase/neutralizer"
	timelineuc "casespine/internal/usecase/timeline"
)

// app bundles the wired services behind one database handle.
type app struct {
	cfg *config.Config
	db  *sql.DB

	importSvc  *importer.Service
	timeline   *timelineuc.Service
	notes      *annotations.Service
	neutralize *neutralizer.Service
	export     *exportuc.Service
	spine      *dbsqlite.SpineRepo
}

func openApp(opts *RootOptions) (*app, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	dbPath := cfg.DBPath
	if opts.Database != "" {
		dbPath = opts.Database
	}
	db, err := dbsqlite.Init(dbPath)
	if err != nil {
		return nil, err
	}

	files := dbsqlite.NewSourceFileRepo(db)
	spine := dbsqlite.NewSpineRepo(db)
	events := dbsqlite.NewTimelineRepo(db)
	notes := dbsqlite.NewNoteRepo(db)
	mappings := dbsqlite.NewMappingRepo(db)
	cache := dbsqlite.NewNeutralCacheRepo(db)
	seq := dbsqlite.NewSequenceRepo(db)

	reg := exreg.New()
	reg.Register(jsonbundle.New())
	reg.Register(csvexport.New())

	neutral := neutralizer.New(spine, cache, rulesneutral.New())
	if cfg.Neutralizer.BaseURL != "" {
		neutral.AI = llm.New(cfg.Neutralizer.BaseURL, cfg.Neutralizer.APIKey, cfg.Neutralizer.Model,
			time.Duration(cfg.Neutralizer.TimeoutSeconds)*time.Second)
		neutral.AIModel = cfg.Neutralizer.Model
	}

	return &app{
		cfg:        cfg,
		db:         db,
		importSvc:  importer.New(files, spine, seq, csvparser.New(cfg.PlatformDefault, cfg.SelfPatterns)),
		timeline:   timelineuc.New(events, spine, mappings, seq),
		notes:      annotations.New(notes),
		neutralize: neutral,
		export:     exportuc.New(files, spine, events, notes, reg),
		spine:      spine,
	}, nil
}

func (a *app) Close() { _ = a.db.Close() }

// withApp opens the database, runs fn, and always closes.
func withApp(opts *RootOptions, fn func(*app) error) error {
	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}
