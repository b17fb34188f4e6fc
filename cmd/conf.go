package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// confCmd is the parent command for the configuration blob accessors.
var confCmd = &cobra.Command{
	Use:   "conf",
	Short: "Read or write the application's configuration blob",
}

var confGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the stored configuration blob",
	RunE:  runConfGet,
}

var confSetCmd = &cobra.Command{
	Use:   "set [text]",
	Short: "Replace the stored configuration blob (reads stdin without args)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfSet,
}

func init() {
	confCmd.AddCommand(confGetCmd)
	confCmd.AddCommand(confSetCmd)
	RootCmd.AddCommand(confCmd)
}

func runConfGet(cmd *cobra.Command, args []string) error {
	_, l, engine, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	body, err := engine.LoadConf(context.Background())
	if err != nil {
		return err
	}

	fmt.Println(body)
	return nil
}

func runConfSet(cmd *cobra.Command, args []string) error {
	_, l, engine, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	var body string
	if len(args) == 1 {
		body = args[0]
	} else {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read configuration from stdin: %w", err)
		}
		body = strings.TrimRight(string(raw), "\n")
	}

	return engine.SaveConf(context.Background(), body)
}
