package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/atlasctl/internal/config"
	"github.com/imamik/atlasctl/internal/orchestration"
)

// Apply converges every resource declared in the file at configPath. An empty
// path searches for atlas.yaml in the working directory and its parents.
//
// All resources are attempted; the summary is rendered even when some fail.
func Apply(ctx context.Context, opts *GlobalOptions, configPath string) error {
	doc, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	s, err := newSession(opts)
	if err != nil {
		return err
	}
	defer s.finish()

	runner := orchestration.NewRunner(s.reconciler, s.settings.GroupID,
		orchestration.WithConcurrency(s.settings.Concurrency),
		orchestration.WithLogger(s.log),
		orchestration.WithObserver(s.metrics),
	)

	report, applyErr := runner.Apply(ctx, doc)
	if err := renderReport(opts.out(), opts.Output, report); err != nil {
		return err
	}
	if applyErr != nil {
		return fmt.Errorf("%d of %d resources failed:\n%w", report.Failed(), len(report.Results), applyErr)
	}
	return nil
}

func loadConfig(configPath string) (*config.Document, error) {
	if configPath == "" {
		found, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file found (pass -f or create %s): %w", config.DefaultConfigFilename, err)
		}
		configPath = found
	}

	doc, err := loadDocument(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", configPath, err)
	}
	return doc, nil
}
