// Package mailmesh provides a high-level façade over the mail routing
// core (router, exchanges, branches) enabling rapid construction of
// multi-branch coordination layers. Most applications interact with
// this package by:
//  1. Creating a MailMesh via New() (optionally overriding config and logger)
//  2. Creating branches (NewBranch) or registering custom sources
//  3. Staging mail from branches and either calling Flush() for a
//     synchronous delivery round or Start()/Stop() for the continuous
//     delivery loop
//
// The façade delegates routing to router.MailManager while keeping
// setup and usage ergonomics concise. The mesh is scoped to one
// orchestration session and holds no persistent state.
package mailmesh

import (
	"context"
	"errors"
	"sync"

	"github.com/sourcegraph/conc"

	"github.com/hupe1980/mailmesh/branch"
	"github.com/hupe1980/mailmesh/config"
	"github.com/hupe1980/mailmesh/logging"
	"github.com/hupe1980/mailmesh/router"
)

// ErrAlreadyRunning is returned by Start when the delivery loop is
// already active.
var ErrAlreadyRunning = errors.New("delivery loop already running")

// ErrNotRunning is returned by Stop when no delivery loop is active.
var ErrNotRunning = errors.New("delivery loop not running")

// Options configures the MailMesh instance.
type Options struct {
	// Config tunes the delivery loop and the default logger.
	Config config.Config

	// Logger overrides the logger built from Config.Logging. Defaults
	// to a structured logger per the configuration; set
	// logging.NoOpLogger{} for silence.
	Logger logging.Logger
}

// MailMesh is the high-level façade aggregating the router and the
// branches registered with it.
type MailMesh struct {
	opts    Options
	manager *router.MailManager
	logger  logging.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      *conc.WaitGroup
	loopErr error
}

// New creates a MailMesh instance with optional overrides.
func New(optFns ...func(o *Options)) *MailMesh {
	opts := Options{Config: config.Default()}
	for _, fn := range optFns {
		fn(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogger(&logging.LoggerConfig{
			Level:     logging.ParseLevel(opts.Config.Logging.Level),
			Format:    opts.Config.Logging.Format,
			Component: "mailmesh",
		})
	}

	manager := router.NewMailManager(func(o *router.Options) {
		o.Logger = logger
	})

	return &MailMesh{opts: opts, manager: manager, logger: logger}
}

// Manager returns the underlying router for advanced use.
func (m *MailMesh) Manager() *router.MailManager { return m.manager }

// NewBranch creates a branch and registers it as a mail source.
func (m *MailMesh) NewBranch(name string) (*branch.Branch, error) {
	b := branch.New(name, func(o *branch.Options) {
		o.Logger = m.logger
	})

	if err := m.manager.AddSources(b); err != nil {
		return nil, err
	}

	return b, nil
}

// Register adds externally constructed sources to the router.
func (m *MailMesh) Register(sources ...router.Source) error {
	return m.manager.AddSources(sources...)
}

// Deregister removes a source; mail still buffered for it is dropped.
func (m *MailMesh) Deregister(sourceID string) error {
	return m.manager.DeleteSource(sourceID)
}

// Flush runs one synchronous collect-all/send-all round.
func (m *MailMesh) Flush() error {
	if err := m.manager.CollectAll(); err != nil {
		return err
	}

	return m.manager.SendAll()
}

// Start launches the continuous delivery loop on a background
// goroutine. The loop runs until Stop is called or the given context
// is cancelled.
func (m *MailMesh) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		return ErrAlreadyRunning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.wg = conc.NewWaitGroup()
	m.loopErr = nil

	m.wg.Go(func() {
		err := m.manager.Execute(loopCtx, m.opts.Config.Router.RefreshTime.Std())

		m.mu.Lock()
		m.loopErr = err
		m.mu.Unlock()
	})

	return nil
}

// Stop cancels the delivery loop, waits for it to terminate and
// returns its terminal error, if any. Stopping takes effect at the
// loop's next cancellation check, worst case one refresh interval.
func (m *MailMesh) Stop() error {
	m.mu.Lock()
	cancel, wg := m.cancel, m.wg
	m.cancel, m.wg = nil, nil
	m.mu.Unlock()

	if cancel == nil {
		return ErrNotRunning
	}

	cancel()
	wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.loopErr
}
