package cmd

import (
	"context"
	"fmt"

	"diary-store/feature/diary"
	"diary-store/feature/diary/models"

	"github.com/spf13/cobra"
)

var showAll bool

// showCmd runs a read-only transaction for a date and prints the result.
var showCmd = &cobra.Command{
	Use:   "show <date>",
	Short: "Show the entries loaded for a date",
	Long: `Run a read-only transaction for the given date (YYYYMMDD) and print the
decoded entries of its month context. Any other key shape is looked up as
an exact entry identifier.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showAll, "all", false, "Include hidden entries and comments")
	RootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	_, l, engine, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	date := args[0]
	err = engine.Transaction(context.Background(), date, func(entries map[string]*models.Entry) diary.Dirty {
		for _, id := range models.SortedIDs(entries) {
			entry := entries[id]
			if !entry.Visible && !showAll {
				continue
			}

			fmt.Printf("%s  %s [%s]\n", entry.ID, entry.Title, entry.Style)
			for i, com := range entry.Comments {
				if !com.Visible && !showAll {
					continue
				}
				fmt.Printf("  #%d %s <%s> %s\n", i+1, com.Name, com.Mail, com.Date.Format("2006-01-02 15:04"))
			}
		}
		return diary.DirtyNone
	})
	return err
}
