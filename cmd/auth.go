package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"
)

// AuthStatus reports the current token state.
//
// Constructing the service authenticates it, so a successful run always reports a live token.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("checking auth status")

	svc, err := r.ensureService(ctx)
	if err != nil {
		r.writePlain("✗ Not authenticated\n")
		return err
	}

	r.writePlain("✓ Authenticated with %s\n", svc.Name())

	expiry := svc.TokenExpiry()
	if svc.TokenExpired() {
		r.writePlain("Token: expired at %s\n", expiry.Format(time.RFC3339))
		r.writePlain("A fresh token will be requested on the next API call.\n")
		return nil
	}

	r.writePlain("Token: valid until %s (%s remaining)\n", expiry.Format(time.RFC3339), time.Until(expiry).Round(time.Second))
	return nil
}
