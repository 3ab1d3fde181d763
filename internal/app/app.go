package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pick/internal/config"
	"github.com/five82/pick/internal/prefs"
	"github.com/five82/pick/internal/source"
	"github.com/five82/pick/internal/state"
	"github.com/five82/pick/internal/ui"
	"github.com/five82/pick/internal/window"
)

// Options configure a pick session.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/pick/prefs.toml

	// Ad-hoc sources. When any is set, configured lists are not shown.
	Stdin io.Reader // piped items; nil when stdin is a terminal
	File  string
	URL   string

	List      string        // list opened first
	Multi     bool          // force multi-select
	Fuzzy     bool          // force fuzzy matching
	PollEvery time.Duration // overrides per-list poll intervals when > 0
	Theme     string        // overrides the saved theme

	Logger         *slog.Logger
	ProgramOptions []tea.ProgramOption
}

// listSource is one list and where its items come from.
type listSource struct {
	name   string
	loader source.Loader
	poll   time.Duration // zero disables background refresh
}

// Run loads configuration, starts the loaders and blocks in the picker until
// the user accepts, cancels, or ctx is done.
func Run(ctx context.Context, opts Options) (ui.Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return ui.Result{}, fmt.Errorf("load config: %w", err)
	}
	if opts.Multi {
		cfg.Window.MultiSelect = true
	}
	if opts.Fuzzy {
		cfg.Window.Match = window.MatchFuzzy
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)
	theme := userPrefs.Theme
	if opts.Theme != "" {
		theme = opts.Theme
	}

	sources, err := buildSources(opts, cfg)
	if err != nil {
		return ui.Result{}, err
	}
	names := make([]string, len(sources))
	for i, src := range sources {
		names[i] = src.name
	}
	if opts.List != "" && !slices.Contains(names, opts.List) {
		return ui.Result{}, fmt.Errorf("unknown list %q", opts.List)
	}

	pollCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	store := &state.Store{}

	// Do initial refresh to populate store before UI starts
	for _, src := range sources {
		_ = refresh(pollCtx, store, src.name, src.loader, logger)
	}
	logInitialLoad(store, logger)
	for _, src := range sources {
		if src.poll > 0 {
			StartPoller(pollCtx, store, src.name, src.loader, src.poll, logger)
		}
	}

	logger.Info("starting picker",
		slog.Int("lists", len(sources)),
		slog.Bool("multi_select", cfg.Window.MultiSelect),
		slog.String("match", cfg.Window.Match.String()),
	)

	res, err := ui.Run(ui.Options{
		Context:        ctx,
		Store:          store,
		Lists:          names,
		Active:         chooseActive(opts.List, userPrefs.LastList, names),
		Window:         cfg.Window,
		ThemeName:      theme,
		Logger:         logger,
		ProgramOptions: opts.ProgramOptions,
	})
	if err != nil {
		return ui.Result{}, err
	}

	savePrefs(opts.PrefsPath, userPrefs, res, opts, logger)
	return res, nil
}

// logInitialLoad reports how every list fared on its first load.
func logInitialLoad(store *state.Store, logger *slog.Logger) {
	for _, name := range store.Names() {
		st := store.Status(name)
		if st.LastError != nil {
			logger.Warn("initial load failed",
				slog.String("list", name),
				slog.String("error", st.LastError.Error()),
			)
			continue
		}
		logger.Info("initial load",
			slog.String("list", name),
			slog.Uint64("version", st.Version),
		)
	}
}

// buildSources turns flags and configuration into the ordered list set.
func buildSources(opts Options, cfg config.Config) ([]listSource, error) {
	var sources []listSource

	if opts.Stdin != nil {
		items, err := source.ReadLines(opts.Stdin, config.DefaultMaxItems, false)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		sources = append(sources, listSource{name: "stdin", loader: source.Static(items)})
	}

	if opts.File != "" {
		path, err := config.ExpandPath(opts.File)
		if err != nil {
			return nil, fmt.Errorf("resolve file: %w", err)
		}
		sources = append(sources, listSource{
			name:   filepath.Base(path),
			loader: source.File{Path: path, Max: config.DefaultMaxItems},
			poll:   opts.PollEvery,
		})
	}

	if opts.URL != "" {
		client, err := source.NewClient(opts.URL, config.DefaultMaxItems)
		if err != nil {
			return nil, fmt.Errorf("init client: %w", err)
		}
		sources = append(sources, listSource{
			name:   "remote",
			loader: client,
			poll:   pollInterval(opts.PollEvery, 0, true),
		})
	}

	if len(sources) > 0 {
		return sources, nil
	}

	for _, l := range cfg.Lists {
		src := listSource{name: l.Name, poll: pollInterval(opts.PollEvery, l.PollEvery, l.Remote())}
		if l.Remote() {
			client, err := source.NewClient(l.URL, l.MaxItems)
			if err != nil {
				return nil, fmt.Errorf("list %q: %w", l.Name, err)
			}
			src.loader = client
		} else {
			src.loader = source.File{Path: l.Path, Max: l.MaxItems, Tail: l.Tail}
		}
		sources = append(sources, src)
	}

	if len(sources) == 0 {
		return nil, errors.New("nothing to pick from: pipe items on stdin, pass --file or --url, or configure lists")
	}
	return sources, nil
}

// pollInterval picks the refresh cadence. Remote lists always refresh; files
// only when asked to.
func pollInterval(override, configured time.Duration, remote bool) time.Duration {
	switch {
	case override > 0:
		return override
	case configured > 0:
		return configured
	case remote:
		return defaultPollInterval
	default:
		return 0
	}
}

// chooseActive returns the first list to open: the requested one, then the
// last one used, then the first.
func chooseActive(requested, last string, names []string) string {
	for _, name := range []string{requested, last} {
		if name != "" && slices.Contains(names, name) {
			return name
		}
	}
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// savePrefs remembers the theme and, for configured lists, the list in use.
// Failures are logged; they never fail the session.
func savePrefs(path string, current prefs.Prefs, res ui.Result, opts Options, logger *slog.Logger) {
	next := current
	if res.Theme != "" {
		next.Theme = res.Theme
	}
	if opts.Stdin == nil && opts.File == "" && opts.URL == "" && res.List != "" {
		next.LastList = res.List
	}
	if next == current {
		return
	}
	if err := prefs.Save(path, next); err != nil {
		logger.Warn("save preferences failed", slog.String("error", err.Error()))
	}
}
