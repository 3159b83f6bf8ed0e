// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/atlasctl/internal/config"
	"github.com/imamik/atlasctl/internal/logging"
	"github.com/imamik/atlasctl/internal/metrics"
	"github.com/imamik/atlasctl/internal/platform/atlas"
	"github.com/imamik/atlasctl/internal/reconcile"
)

// GlobalOptions holds the flags shared by every command. Empty credential
// fields fall back to the environment.
type GlobalOptions struct {
	PublicKey   string
	PrivateKey  string
	GroupID     string
	LogLevel    string
	LogFormat   string
	Output      string
	MetricsFile string

	// Out receives rendered results. Nil means stdout.
	Out io.Writer
}

func (o *GlobalOptions) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newAtlasClient creates the API client for a run.
	newAtlasClient = func(s *config.Settings, observe atlas.RequestObserver) atlas.Manager {
		return atlas.NewClient(s.PublicKey, s.PrivateKey,
			atlas.WithBaseURL(s.BaseURL),
			atlas.WithTimeout(s.RequestTimeout),
			atlas.WithRetry(s.RetryMaxAttempts, s.RetryInitialDelay),
			atlas.WithRequestObserver(observe),
		)
	}

	// newLogger builds the run logger.
	newLogger = logging.New

	// loadSettings reads settings from the environment.
	loadSettings = config.LoadSettings

	// loadDocument loads a desired-state file.
	loadDocument = config.Load

	// findConfigFile locates atlas.yaml when no path is given.
	findConfigFile = config.FindConfigFile

	// lookupEnv reads a single environment variable.
	lookupEnv = os.LookupEnv
)

// session carries everything one command invocation needs.
type session struct {
	opts       *GlobalOptions
	settings   *config.Settings
	log        logr.Logger
	metrics    *metrics.Recorder
	reconciler *reconcile.Reconciler
}

func newSession(opts *GlobalOptions) (*session, error) {
	if err := validateOutput(opts.Output); err != nil {
		return nil, err
	}

	log, err := newLogger(opts.LogLevel, opts.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	if opts.PublicKey != "" {
		settings.PublicKey = opts.PublicKey
	}
	if opts.PrivateKey != "" {
		settings.PrivateKey = opts.PrivateKey
	}
	if opts.GroupID != "" {
		settings.GroupID = opts.GroupID
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	rec := metrics.NewRecorder()
	client := newAtlasClient(settings, rec.ObserveRequest)
	log.V(1).Info("using Atlas API", "baseURL", settings.BaseURL, "group", settings.GroupID)

	return &session{
		opts:       opts,
		settings:   settings,
		log:        log,
		metrics:    rec,
		reconciler: reconcile.NewReconciler(client),
	}, nil
}

// timed runs a single pass and records it.
func (s *session) timed(kind reconcile.Kind, pass func() (*reconcile.Outcome, error)) (*reconcile.Outcome, error) {
	start := time.Now()
	out, err := pass()

	var action reconcile.Action
	if out != nil {
		action = out.Action
	}
	s.metrics.ObserveReconcile(kind, action, err, time.Since(start))
	return out, err
}

// finish writes the metrics textfile if one was requested.
func (s *session) finish() {
	if s.opts.MetricsFile == "" {
		return
	}
	if err := s.metrics.WriteTextfile(s.opts.MetricsFile); err != nil {
		s.log.Error(err, "failed to write metrics", "path", s.opts.MetricsFile)
		return
	}
	s.log.V(1).Info("wrote metrics", "path", s.opts.MetricsFile)
}

func runPass(ctx context.Context, opts *GlobalOptions, kind reconcile.Kind, key string,
	pass func(ctx context.Context, s *session) (*reconcile.Outcome, error)) error {
	s, err := newSession(opts)
	if err != nil {
		return err
	}
	defer s.finish()

	log := s.log.WithValues("kind", kind, "key", key)
	out, err := s.timed(kind, func() (*reconcile.Outcome, error) {
		return pass(ctx, s)
	})
	if err != nil {
		log.Error(err, "reconcile failed")
		return err
	}
	log.Info("reconciled", "action", out.Action, "changed", out.Changed)

	return renderOutcome(opts.out(), opts.Output, out)
}
