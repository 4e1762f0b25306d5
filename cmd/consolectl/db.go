package main

import (
	"errors"
	"fmt"
	"os"

	kpool "github.com/kubeconsole/console/pkg/conn/db/postgres/pool"
	"github.com/kubeconsole/console/pkg/domain/schema"
	"github.com/spf13/cobra"
)

func dbCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Maintain the global database",
	}

	var url string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create tables which do not exist yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				return errors.New("--database or $CONSOLE_DATABASE is required")
			}
			pool, err := kpool.Connect(cmd.Context(), url, kpool.WithApplicationName("consolectl"), kpool.WithMaxConns(1))
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer pool.Close()

			if err := schema.Apply(cmd.Context(), pool); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is applied")
			return nil
		},
	}
	initCmd.Flags().StringVar(&url, "database", os.Getenv("CONSOLE_DATABASE"), "connection string of the global database")
	cmd.AddCommand(initCmd)
	return cmd
}
