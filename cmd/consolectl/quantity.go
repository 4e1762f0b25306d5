package main

import (
	"fmt"
	"strconv"

	"github.com/kubeconsole/console/pkg/quantity"
	"github.com/spf13/cobra"
)

func quantityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quantity",
		Short: "Convert resource quantities",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "cpu QUANTITY",
		Short: "Print the quantity in millicores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := quantity.ParseCPU(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(m, 'f', -1, 64))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "memory QUANTITY",
		Short: "Print the quantity in Mi",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mi, err := quantity.ParseMemory(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(mi, 'f', -1, 64))
			return nil
		},
	})
	return cmd
}
