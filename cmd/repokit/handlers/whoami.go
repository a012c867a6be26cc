package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/repokit/internal/platform/awsenv"
)

// Whoami prints the account, caller and region the current credentials
// resolve to.
func Whoami(ctx context.Context, region, profile string) error {
	resolver, err := newResolver(ctx, awsenv.Options{Region: region, Profile: profile})
	if err != nil {
		return err
	}

	id, err := resolver.Identity(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Account: %s\n", id.Account)
	fmt.Fprintf(stdout, "ARN:     %s\n", id.ARN)
	fmt.Fprintf(stdout, "UserID:  %s\n", id.UserID)
	if id.Region != "" {
		fmt.Fprintf(stdout, "Region:  %s\n", id.Region)
	} else {
		fmt.Fprintln(stdout, "Region:  (not configured)")
	}
	return nil
}
