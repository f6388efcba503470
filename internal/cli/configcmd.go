package cli

import (
	"fmt"

	"github.com/rustyeddy/paperbot/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or validate configuration files",
	}

	var output string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if err := cfg.SaveToFile(output); err != nil {
				return err
			}
			fmt.Println("wrote", output)
			return nil
		},
	}
	initCmd.Flags().StringVar(&output, "output", "./paperbot.yaml", "Output path (.yaml/.yml or .json)")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rc.ConfigPath == "" {
				return fmt.Errorf("config validate requires --config PATH")
			}
			if _, err := config.LoadFromFile(rc.ConfigPath); err != nil {
				return err
			}
			fmt.Println(rc.ConfigPath, "is valid")
			return nil
		},
	}

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}
