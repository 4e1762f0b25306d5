package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/kubeconsole/console/pkg/auth"
	"github.com/spf13/cobra"
)

func tokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Handle session tokens",
	}
	cmd.AddCommand(tokenIssueCommand())
	return cmd
}

func tokenIssueCommand() *cobra.Command {
	var (
		secret string
		claims auth.AccessClaims
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Sign a session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return errors.New("--secret or $CONSOLE_SESSION_SECRET is required")
			}
			if _, err := uuid.Parse(claims.UserUid); err != nil {
				return fmt.Errorf("--user should be uuid: %w", err)
			}
			token, err := auth.Issue([]byte(secret), claims, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", os.Getenv("CONSOLE_SESSION_SECRET"), "secret to sign the token")
	cmd.Flags().StringVar(&claims.UserUid, "user", "", "uid of the user")
	cmd.Flags().StringVar(&claims.UserId, "user-id", "", "id of the user")
	cmd.Flags().StringVar(&claims.UserCrName, "user-cr", "", "name of the User custom resource")
	cmd.Flags().StringVar(&claims.RegionUid, "region", "", "uid of the region")
	cmd.Flags().StringVar(&claims.WorkspaceId, "workspace", "", "namespace of the workspace")
	cmd.Flags().StringVar(&claims.WorkspaceUid, "workspace-uid", "", "uid of the workspace")
	cmd.Flags().DurationVar(&ttl, "ttl", 7*24*time.Hour, "lifetime of the token")
	cmd.MarkFlagRequired("user")
	return cmd
}
