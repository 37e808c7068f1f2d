package main

import (
	"context"
	"net/url"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Mercearia/internal/catalog"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/config"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/logging"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/notify"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/sale"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/shortcut"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/store"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/tui"
)

// executeRun loads the register, restores the journal and runs the POS
// screen until the operator quits or a signal arrives.
func executeRun(cfgPath string, saleID int) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, closeLog, err := logging.Open(logging.Config{
		Level: cfg.Log.Level,
		File:  cfg.Resolve(cfg.Log.File),
	})
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signalContext()
	defer cancel()
	ctx = logging.WithContext(ctx, log)

	reg, err := openRegister(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("open register")
		return err
	}
	defer reg.journal.Close()
	registerQuitHandler(func() { _ = reg.journal.Close() })

	model := tui.New(tui.Options{
		Service:     reg.svc,
		Products:    reg.catalog,
		Session:     reg.journal,
		Operator:    cfg.SaleOperator(),
		StoreName:   cfg.Store.Name,
		AccentColor: cfg.TUI.AccentColor,
		Location:    startLocation(saleID),
		Context:     ctx,
		Log:         logging.WithComponent(log, "tui"),
	})
	reg.program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	var watch watchFunc
	if cfg.Catalog.Watch {
		path := cfg.Resolve(cfg.Catalog.Path)
		clog := logging.WithComponent(log, "catalog")
		watch = func(ctx context.Context, onReload func(n int, err error)) error {
			return reg.catalog.Watch(ctx, path, clog, onReload)
		}
	}

	log.Info().
		Str("store", cfg.Store.Name).
		Str("operator", cfg.Operator.Name).
		Int("products", reg.catalog.Len()).
		Int("restored", reg.restored).
		Str("journal", reg.journal.Path()).
		Msg("register started")

	err = runProgram(ctx, reg.program, watch)
	log.Info().Err(err).Msg("register stopped")
	return err
}

// register is the wired set of services behind one POS screen.
type register struct {
	catalog  *catalog.Catalog
	journal  *store.JSONL
	svc      *sale.Service
	restored int

	// program receives sale events; nil until the screen is created.
	program *tea.Program
}

// openRegister loads the catalog, replays and rotates the journal, and
// builds the sale service with its hooks.
func openRegister(ctx context.Context, cfg *config.Config) (*register, error) {
	log := *logging.FromContext(ctx)

	products, err := catalog.Load(cfg.Resolve(cfg.Catalog.Path))
	if err != nil {
		return nil, err
	}

	dir := cfg.Resolve(cfg.Journal.Dir)
	sales, err := store.Replay(dir, logging.WithComponent(log, "replay"))
	if err != nil {
		return nil, err
	}
	journal, err := store.NewJSONL(dir, logging.WithComponent(log, "journal"))
	if err != nil {
		return nil, err
	}
	if err := store.EnforceRetention(dir, cfg.Journal.Retention); err != nil {
		log.Warn().Err(err).Msg("journal retention")
	}

	reg := &register{
		catalog:  catalog.New(products),
		journal:  journal,
		restored: len(sales),
	}
	notifier := notify.New(cfg.Notifications.URL, cfg.Store.Name,
		cfg.Notifications.OnPaid, cfg.Notifications.OnCancel, logging.WithComponent(log, "notify"))

	reg.svc = sale.NewService(reg.catalog, journal,
		sale.WithPromos(cfg.SalePromos()),
		sale.WithLogger(logging.WithComponent(log, "sale")),
		sale.WithHook(notifier.Hook),
		sale.WithHook(reg.forward),
	)
	reg.svc.Restore(sales)
	return reg, nil
}

// forward hands a committed event to the screen. Hooks run under the
// service lock while the screen may be waiting on the service, so the send
// happens on its own goroutine.
func (r *register) forward(ev sale.Event) {
	p := r.program
	if p == nil {
		return
	}
	go p.Send(tui.SaleEventMsg(ev))
}

// startLocation returns the screen location for --sale; 0 means no sale.
func startLocation(saleID int) *url.URL {
	loc := &url.URL{Path: "/pos"}
	if saleID > 0 {
		q := url.Values{}
		q.Set(shortcut.SaleParam, strconv.Itoa(saleID))
		loc.RawQuery = q.Encode()
	}
	return loc
}
