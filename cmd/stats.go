package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindupgrade/internal/apperr"
	"github.com/abhisek/mindupgrade/internal/progress"
	"github.com/abhisek/mindupgrade/internal/task"
)

// now is the clock used for today's date.
var now = time.Now

var statsCmd = &cobra.Command{
	Use:   "stats <email>",
	Short: "Show a user's daily scores and streak",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().Int("days", 14, "Number of most recent days to list (0 for all)")
}

func runStats(cmd *cobra.Command, args []string) error {
	email := strings.TrimSpace(args[0])
	limit, _ := cmd.Flags().GetInt("days")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	api, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.API.Timeout)
	defer cancel()
	rec, err := api.Fetch(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("no record for %s", email)
	}
	if err != nil {
		return err
	}

	today := now()
	streak := progress.Streak(rec.History, today)
	todayRec := rec.History[progress.DateKey(today)]

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, rec.Email)
	fmt.Fprintf(out, "Today:        %d/%d\n", todayRec.Score, progress.MaxScore)
	fmt.Fprintf(out, "Streak:       %d (next milestone %d)\n", streak, progress.NextMilestone(streak))
	fmt.Fprintf(out, "Perfect days: %d of %d\n", rec.History.PerfectDays(), len(rec.History))

	days := rec.History.Days()
	if len(days) == 0 {
		fmt.Fprintln(out, "\nNo days played yet.")
		return nil
	}
	if limit > 0 && len(days) > limit {
		days = days[:limit]
	}

	fmt.Fprintf(out, "\n%-10s  %-5s  %s\n", "Date", "Score", "Completed")
	fmt.Fprintln(out, strings.Repeat("─", 72))
	for _, d := range days {
		fmt.Fprintf(out, "%-10s  %5d  %s\n", d.Key, d.Record.Score, completedList(d.Record))
	}
	return nil
}

// completedList names the done categories in display order.
func completedList(rec progress.DayRecord) string {
	if rec.Perfect() {
		return "all six ★"
	}
	var names []string
	for _, id := range task.All() {
		if rec.Completed[id] {
			names = append(names, id.DisplayName())
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
