package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/auth"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/services"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/session"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/shared"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	catalog    services.CatalogService
	users      services.UserService
	identity   services.IdentityService
	api        *services.APIService
	store      *session.Store
	sessions   session.Repository
	gateway    *auth.Gateway
	engine     *tasks.CatalogueEngine
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Catalog    services.CatalogService
	Users      services.UserService
	Identity   services.IdentityService
	API        *services.APIService
	Sessions   session.Repository
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	store := session.NewStore()
	gateway := auth.NewGateway(opts.Identity, store, opts.Sessions, opts.Logger)
	engine := tasks.NewCatalogueEngine(opts.Catalog)

	return &Runner{
		config:     opts.Config,
		catalog:    opts.Catalog,
		users:      opts.Users,
		identity:   opts.Identity,
		api:        opts.API,
		store:      store,
		sessions:   opts.Sessions,
		gateway:    gateway,
		engine:     engine,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger swaps the runner's logger, rebuilding the gateway so both log to
// the same place.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	r.gateway = auth.NewGateway(r.identity, r.store, r.sessions, logger)
}

// requireUser restores the persisted session and returns the signed-in user.
func (r *Runner) requireUser() (session.User, error) {
	if err := r.store.Restore(r.sessions); err != nil {
		return session.User{}, fmt.Errorf("failed to restore session: %w", err)
	}
	user, ok := r.store.Current()
	if !ok {
		return session.User{}, fmt.Errorf("%w: run 'bookcat auth login' first", shared.ErrNotAuthenticated)
	}
	return user, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, booksCommand, profileCommand, exportCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
