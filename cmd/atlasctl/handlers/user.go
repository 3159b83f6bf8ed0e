package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/atlasctl/internal/config"
	"github.com/imamik/atlasctl/internal/reconcile"
)

// User converges a single database user towards spec. When passwordEnv is
// set, the password is read from that environment variable.
func User(ctx context.Context, opts *GlobalOptions, spec config.UserSpec, passwordEnv string) error {
	if passwordEnv != "" {
		if spec.Password != nil {
			return fmt.Errorf("%w: --password and --password-env are mutually exclusive", config.ErrInvalidConfig)
		}
		pw, ok := lookupEnv(passwordEnv)
		if !ok {
			return fmt.Errorf("%w: environment variable %s is not set", config.ErrInvalidConfig, passwordEnv)
		}
		spec.Password = &pw
	}

	if err := spec.Validate(); err != nil {
		return err
	}
	return runPass(ctx, opts, reconcile.KindUser, spec.Username,
		func(ctx context.Context, s *session) (*reconcile.Outcome, error) {
			return s.reconciler.ReconcileUser(ctx, s.settings.GroupID, spec)
		})
}
