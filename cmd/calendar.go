package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// calendarCmd prints the year -> months index of all stored entries.
var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "List the months that contain diary entries",
	Long: `Scan all stored entries and print, per year, the distinct months that
hold at least one entry. This is always a full scan of the store.`,
	RunE: runCalendar,
}

func init() {
	RootCmd.AddCommand(calendarCmd)
}

func runCalendar(cmd *cobra.Command, args []string) error {
	_, l, engine, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	calendar, err := engine.Calendar(context.Background())
	if err != nil {
		return err
	}

	years := make([]string, 0, len(calendar))
	for year := range calendar {
		years = append(years, year)
	}
	sort.Strings(years)

	for _, year := range years {
		fmt.Printf("%s: %s\n", year, strings.Join(calendar[year], " "))
	}
	return nil
}
