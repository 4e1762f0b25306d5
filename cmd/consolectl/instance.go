package main

import (
	"fmt"
	"os"

	"github.com/kubeconsole/console/cmd/consoled/handlers"
	"github.com/kubeconsole/console/pkg/instance"
	"github.com/kubeconsole/console/pkg/kubeutil"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

const defaultInstanceLabel = "cloud.console.io/instance"

type kubeFlags struct {
	kubeconfig string
	namespace  string
	label      string
}

func (f *kubeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.kubeconfig, "kubeconfig", os.Getenv("KUBECONFIG"), "path to kubeconfig")
	cmd.Flags().StringVarP(&f.namespace, "namespace", "n", "", "namespace of the instance")
	cmd.Flags().StringVar(&f.label, "label", defaultInstanceLabel, "label key marking resources of instances")
	cmd.MarkFlagRequired("namespace")
}

func (f *kubeFlags) instances() (*instance.Instances, error) {
	clients, err := kubeutil.ConnectToK8s(f.kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to kubernetes: %w", err)
	}
	return instance.New(clients.Dynamic, f.label), nil
}

func instanceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instance",
		Short: "Inspect or delete instances",
	}
	cmd.AddCommand(instanceGetCommand())
	cmd.AddCommand(instanceDeleteCommand())
	return cmd
}

func instanceGetCommand() *cobra.Command {
	flags := &kubeFlags{}
	cmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Print the instance and its resources as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			insts, err := flags.instances()
			if err != nil {
				return err
			}
			inst, err := insts.Get(cmd.Context(), flags.namespace, args[0])
			if err != nil {
				return err
			}
			detail, err := handlers.ComposeInstance(inst)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(detail)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

func instanceDeleteCommand() *cobra.Command {
	flags := &kubeFlags{}
	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete resources of the instance, then the instance itself",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			insts, err := flags.instances()
			if err != nil {
				return err
			}
			if err := insts.Delete(cmd.Context(), flags.namespace, args[0]); err != nil {
				if dke, ok := instance.AsDeleteKindError(err); ok {
					return fmt.Errorf("%s: %w", dke.Message, err)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "instance %s/%s is deleted\n", flags.namespace, args[0])
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
