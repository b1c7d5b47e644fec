package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/j-veylop/hydration-tui/internal/app"
	"github.com/j-veylop/hydration-tui/internal/models"
	"github.com/j-veylop/hydration-tui/internal/services"
	"github.com/j-veylop/hydration-tui/internal/services/ledger"
	"github.com/j-veylop/hydration-tui/internal/ui/components"
)

// errUsage is returned for malformed subcommand arguments.
var errUsage = errors.New("usage: hydrate add <ml> | export | stats [day|week|month] | reset-profile | db [vacuum]")

// runCommand executes a one-shot subcommand and writes its output to w.
func runCommand(ctx context.Context, mgr *services.Manager, args []string, w io.Writer) error {
	switch args[0] {
	case "add":
		if len(args) != 2 {
			return errUsage
		}
		return addDrink(ctx, mgr, args[1], w)

	case "export":
		data, err := mgr.Ledger().Export()
		if err != nil {
			return fmt.Errorf("failed to export history: %w", err)
		}
		fmt.Fprintln(w, data)
		return nil

	case "stats":
		window := models.WindowWeek
		if len(args) > 1 {
			var err error
			if window, err = models.ParseReportingWindow(args[1]); err != nil {
				return err
			}
		}
		printStats(mgr, window, w)
		return nil

	case "reset-profile":
		if err := mgr.ResetProfile(ctx); err != nil {
			return fmt.Errorf("failed to reset profile: %w", err)
		}
		fmt.Fprintln(w, "Profile cleared. It will be requested on the next start.")
		return nil

	case "db":
		if len(args) > 1 {
			if args[1] != "vacuum" {
				return errUsage
			}
			if err := mgr.Database().Vacuum(ctx); err != nil {
				return fmt.Errorf("failed to vacuum database: %w", err)
			}
			fmt.Fprintln(w, "Database compacted.")
		}
		return printDatabase(ctx, mgr, w)

	default:
		return fmt.Errorf("unknown command %q\n%w", args[0], errUsage)
	}
}

func addDrink(ctx context.Context, mgr *services.Manager, raw string, w io.Writer) error {
	amount, err := components.ParseAmount(raw)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", raw, err)
	}

	drink, err := mgr.AddDrink(ctx, amount)
	if errors.Is(err, ledger.ErrDailyLimitExceeded) {
		return errors.New(app.LimitMessage(mgr.Ledger().MaxDailyMl()))
	}
	if err != nil {
		return err
	}

	ov := mgr.Overview()
	fmt.Fprintf(w, "Recorded %d ml at %s. Today: %s", drink.AmountMl,
		drink.Timestamp.Format("15:04"), components.FormatLiters(ov.TodaysTotalMl))
	if goal := ov.Profile.HydrationGoalMl; goal > 0 {
		fmt.Fprintf(w, " of %s (%.0f%%)", components.FormatLiters(goal),
			components.GoalPercent(ov.CurrentMl, goal))
	}
	fmt.Fprintln(w)
	return nil
}

func printStats(mgr *services.Manager, window models.ReportingWindow, w io.Writer) {
	buckets, st := mgr.Report(window)

	fmt.Fprintf(w, "Window:          %s\n", window)
	fmt.Fprintf(w, "Total:           %s\n", components.FormatLiters(st.TotalMl))
	fmt.Fprintf(w, "Drinks:          %d\n", st.EventCount)
	fmt.Fprintf(w, "Daily average:   %.2f L\n", st.AverageMl/1000)
	fmt.Fprintf(w, "Drinks per day:  %.1f\n", st.FrequencyPerDay)
	fmt.Fprintf(w, "Goal achieved:   %.0f%%\n", st.GoalAchievementPct)
	fmt.Fprintf(w, "Days tracked:    %d\n", st.DistinctDays)

	if idx, peak := models.PeakBucket(buckets); idx >= 0 {
		fmt.Fprintf(w, "Peak:            %s (%s)\n", peak.Label, components.FormatLiters(peak.TotalMl))
		fmt.Fprintln(w)
		fmt.Fprintln(w, components.RenderBucketChart(buckets, 60, 8, "Liters"))
	}
}

func printDatabase(ctx context.Context, mgr *services.Manager, w io.Writer) error {
	database := mgr.Database()

	schema, err := database.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	keys, err := database.Keys(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Path:            %s\n", database.Path())
	fmt.Fprintf(w, "Schema version:  %d\n", schema)
	fmt.Fprintf(w, "Keys:            %s\n", strings.Join(keys, ", "))
	return nil
}
