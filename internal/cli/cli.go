package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"l10n-checker/internal/checker"
	"l10n-checker/internal/config"
	"l10n-checker/internal/diag"
	"l10n-checker/internal/dictpath"
	"l10n-checker/internal/gamedata"
	"l10n-checker/internal/glossary"
	"l10n-checker/internal/pack"
	"l10n-checker/internal/render"
	"l10n-checker/internal/textutil"
	"l10n-checker/internal/variable"
)

// ErrCheckFailed is returned by the check commands when errors were reported.
var ErrCheckFailed = errors.New("check failed")

// options are the flags shared by all commands.
type options struct {
	cfg         *config.Config
	stringCache bool
	glossary    bool
	verbose     bool
}

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := newRootCmd(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	opts := &options{cfg: cfg}

	rootCmd := &cobra.Command{
		Use:   "l10n-checker",
		Short: "Check game translations for markup and layout problems",
		Long: `Checks translated game strings: escape commands, variable references,
colours and speeds, and whether the text fits the box it is displayed in.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.GameDir, "game-dir", cfg.GameDir, "Game installation or assets directory")
	flags.StringVar(&cfg.FromLocale, "from-locale", cfg.FromLocale, "Locale of the original texts")
	flags.StringVar(&cfg.SettingsPath, "settings", cfg.SettingsPath, "Check settings: font metrics, replacements, badnesses")
	flags.IntVar(&cfg.WorkerCount, "workers", cfg.WorkerCount, "Number of strings checked in parallel")
	flags.StringVar(&cfg.Color, "color", cfg.Color, "Colour output: auto, always or never")
	flags.BoolVar(&opts.stringCache, "string-cache", false, "Read game strings from the PostgreSQL string cache")
	flags.BoolVar(&opts.glossary, "glossary", false, "Check glossary terms stored in Neo4j")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(checkCmd(opts))
	rootCmd.AddCommand(checkAssetsCmd(opts))
	rootCmd.AddCommand(checkTextCmd(opts))
	rootCmd.AddCommand(cacheCmd(opts))
	rootCmd.AddCommand(glossaryCmd(opts))

	return rootCmd
}

func checkCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <pack>",
		Short: "Check a translation pack against the game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0])
		},
	}
}

func checkAssetsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check-assets [game-dir]",
		Short: "Check the original game strings themselves",
		Long: `Checks every original string as if it were a translation. Few problems are
expected; this mostly validates font metrics and check settings.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.cfg.GameDir = args[0]
			}
			return runCheckAssets(opts)
		},
	}
}

func checkTextCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-text <text>",
		Short: "Check a single text and show how it is laid out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orig, _ := cmd.Flags().GetString("orig")
			tagList, _ := cmd.Flags().GetStringSlice("tags")
			ref, _ := cmd.Flags().GetString("ref")
			return runCheckText(opts, args[0], orig, tagList, ref)
		},
	}

	cmd.Flags().String("orig", "", "Original text the text translates")
	cmd.Flags().StringSlice("tags", nil, "Tags selecting the text box, e.g. side,conv")
	cmd.Flags().String("ref", "", "Game reference to take the original text and tags from")

	return cmd
}

func cacheCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the PostgreSQL string cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "import [game-dir]",
		Short: "Read every game string and store it in the string cache",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.cfg.GameDir = args[0]
			}
			return runCacheImport(opts)
		},
	})
	return cmd
}

func glossaryCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glossary",
		Short: "Manage the Neo4j glossary",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "import <tsv>",
		Short: "Import source<TAB>target[<TAB>category] terms into the glossary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGlossaryImport(opts, args[0])
		},
	})
	return cmd
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

func connectPostgres(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pgPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}

	if err := pgPool.Ping(ctx); err != nil {
		pgPool.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}
	log.Info().Msg("Connected to PostgreSQL")
	return pgPool, nil
}

func connectNeo4j(ctx context.Context, cfg *config.Config) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
	if err != nil {
		return nil, fmt.Errorf("connect Neo4j: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("verify Neo4j connectivity: %w", err)
	}
	log.Info().Msg("Connected to Neo4j")
	return driver, nil
}

// session holds what the check commands share. close releases the
// connections it opened.
type session struct {
	checker *checker.Checker
	printer *diag.Printer
	game    gamedata.Walker
	closers []func()
}

func (s *session) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openSession loads settings and connects the optional backends. With
// needGame false a missing game is tolerated and game is nil.
func openSession(ctx context.Context, opts *options, needGame bool) (*session, error) {
	cfg := opts.cfg
	s := &session{}

	settings, err := checker.LoadSettings(cfg.SettingsPath)
	if err != nil {
		return nil, err
	}
	if len(settings.Metrics) == 0 {
		log.Warn().Msg("No font metrics configured, layout will not be checked")
	}

	palette := diag.NewPalette(diag.ColorEnabled(cfg.Color, os.Stdout))
	s.printer = diag.NewPrinter(os.Stdout, palette)

	var extras []checker.TextCheck
	if opts.glossary {
		driver, err := connectNeo4j(ctx, cfg)
		if err != nil {
			s.close()
			return nil, err
		}
		s.closers = append(s.closers, func() { driver.Close(context.Background()) })

		terms, err := glossary.NewStore(driver).Load(ctx)
		if err != nil {
			s.close()
			return nil, err
		}
		extras = append(extras, glossary.New(terms))
	}

	renderer := render.New(palette, variable.NewResolver(variable.DefaultTemplates()))
	s.checker = checker.New(settings, renderer, extras...)

	if opts.stringCache {
		pgPool, err := connectPostgres(ctx, cfg)
		if err != nil {
			s.close()
			return nil, err
		}
		s.closers = append(s.closers, pgPool.Close)

		cache := gamedata.NewStringCache(pgPool, cfg.FromLocale)
		if err := cache.Preload(ctx); err != nil {
			s.close()
			return nil, err
		}
		s.game = cache
		return s, nil
	}

	reader, err := gamedata.NewAssetReader(cfg.GameDir, cfg.FromLocale)
	switch {
	case err == nil:
		s.game = reader
		log.Debug().Str("assets", reader.AssetsDir()).Msg("Reading game assets")
	case needGame:
		s.close()
		return nil, err
	default:
		log.Warn().Err(err).Msg("Game not found, variable references will not resolve")
	}
	return s, nil
}

// finish logs the totals and turns errors into ErrCheckFailed.
func (s *session) finish(what string) error {
	errs := s.printer.Errors()
	log.Info().
		Int("errors", errs).
		Int("warnings", s.printer.Count(diag.Warn)).
		Int("notices", s.printer.Count(diag.Notice)).
		Msg(what + " complete")
	if errs > 0 {
		return fmt.Errorf("%w: %d errors", ErrCheckFailed, errs)
	}
	return nil
}

// runCheck handles the `check` command.
func runCheck(opts *options, packPath string) error {
	ctx, cancel := setupContext()
	defer cancel()

	p, err := pack.Load(packPath)
	if err != nil {
		return err
	}
	stats := p.Stats()
	event := log.Info().Str("pack", packPath).Int("entries", stats.Total).Int("translated", stats.Translated)
	for _, q := range stats.QualityNames() {
		event = event.Int(q, stats.Quality[q])
	}
	event.Msg("Loaded pack")

	s, err := openSession(ctx, opts, true)
	if err != nil {
		return err
	}
	defer s.close()

	pc := checker.NewPackChecker(s.checker, s.game, opts.cfg.FromLocale, opts.cfg.WorkerCount)
	s.printer.PrintAll(pc.CheckPack(ctx, p))
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.finish("Pack check")
}

// runCheckAssets handles the `check-assets` command.
func runCheckAssets(opts *options) error {
	ctx, cancel := setupContext()
	defer cancel()

	s, err := openSession(ctx, opts, true)
	if err != nil {
		return err
	}
	defer s.close()

	pc := checker.NewPackChecker(s.checker, s.game, opts.cfg.FromLocale, opts.cfg.WorkerCount)
	ds, err := pc.CheckAssets(ctx, s.game)
	s.printer.PrintAll(ds)
	if err != nil {
		return err
	}
	return s.finish("Asset check")
}

// runCheckText handles the `check-text` command.
func runCheckText(opts *options, text, orig string, tagList []string, ref string) error {
	ctx, cancel := setupContext()
	defer cancel()

	s, err := openSession(ctx, opts, ref != "")
	if err != nil {
		return err
	}
	defer s.close()

	var src gamedata.Reader = noGame{}
	if s.game != nil {
		src = s.game
	}

	location := "<command line>"
	if ref != "" {
		r, err := dictpath.Parse(ref)
		if err != nil {
			return err
		}
		entry, ok := src.Complete(r)
		if !ok {
			return fmt.Errorf("reference %s not found in game", ref)
		}
		location = ref
		if orig == "" {
			orig = entry.LangLabel[opts.cfg.FromLocale]
		}
		if len(tagList) == 0 {
			tagList = entry.Tags
		}
	}

	log.Debug().Str("text", textutil.Truncate(text, 40)).Strs("tags", tagList).Msg("Checking text")
	res := s.checker.CheckText(text, orig, tagList, s.printer.Reporter(location, text), checker.GameSource(src))
	printLayout(res)
	return s.finish("Text check")
}

func printLayout(res checker.Result) {
	if !res.HasBox {
		fmt.Println("no box or font metrics for these tags, layout not checked")
		return
	}
	box := res.Box
	fmt.Printf("%s %dpx, font %s, %d lines max\n", box.Orientation, box.Width, box.Font, box.MaxLines)
	for _, l := range res.Lines {
		fmt.Printf("%5dpx |%s\n", l.Size, strings.TrimRight(l.Styled, "\n"))
	}
}

// noGame is used when no game is available: nothing is ever found.
type noGame struct{}

func (noGame) Get(dictpath.Ref) (any, bool)                 { return nil, false }
func (noGame) Complete(dictpath.Ref) (gamedata.Entry, bool) { return gamedata.Entry{}, false }

// runCacheImport handles the `cache import` command.
func runCacheImport(opts *options) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := opts.cfg
	reader, err := gamedata.NewAssetReader(cfg.GameDir, cfg.FromLocale)
	if err != nil {
		return err
	}

	var entries []gamedata.Entry
	if err := reader.Walk(func(e gamedata.Entry) error {
		entries = append(entries, e)
		return ctx.Err()
	}); err != nil {
		return fmt.Errorf("walk game assets: %w", err)
	}
	log.Info().Int("strings", len(entries)).Str("assets", reader.AssetsDir()).Msg("Collected game strings")

	pgPool, err := connectPostgres(ctx, cfg)
	if err != nil {
		return err
	}
	defer pgPool.Close()

	cache := gamedata.NewStringCache(pgPool, cfg.FromLocale)
	if err := cache.EnsureSchema(ctx); err != nil {
		return err
	}
	return cache.Import(ctx, entries)
}

// runGlossaryImport handles the `glossary import` command.
func runGlossaryImport(opts *options, path string) error {
	ctx, cancel := setupContext()
	defer cancel()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open glossary: %w", err)
	}
	defer f.Close()

	terms, err := glossary.ParseTSV(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	driver, err := connectNeo4j(ctx, opts.cfg)
	if err != nil {
		return err
	}
	defer driver.Close(ctx)

	store := glossary.NewStore(driver)
	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure glossary schema: %w", err)
	}
	return store.Import(ctx, terms)
}
