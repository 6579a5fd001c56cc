package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/edstats-labs/uisdata-cli/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage uisdata configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set and persist a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := ensureConfigStore(); err != nil {
			return err
		}
		cmd.Println(configStore.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if err := ensureConfigStore(); err != nil {
		return err
	}

	key := args[0]
	if key == file.KeyTolerance {
		cmd.Println(strconv.FormatFloat(configStore.GetFloat(key), 'f', -1, 64))
		return nil
	}
	cmd.Println(configStore.GetString(key))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := ensureConfigStore(); err != nil {
		return err
	}

	key, raw := args[0], args[1]
	var value any = raw
	if key == file.KeyTolerance {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%s must be a number: %w", key, err)
		}
		value = f
	}

	configStore.Set(key, value)
	if err := configStore.Save(); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}
	cmd.Printf("Set %s\n", key)
	return nil
}
