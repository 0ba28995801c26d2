package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/farag11/daheeh/internal/client/models"
	"github.com/farag11/daheeh/internal/client/progression"
)

// Status prints the session and progression summary.
func (a *App) Status(_ context.Context) error {
	s := a.sessions.Current()
	state := a.engine.State()

	fmt.Fprintln(a.out, sessionLine(s))
	fmt.Fprintln(a.out, progressLines(state, a.engine.Rank()))
	return nil
}

// Award grants xp: "award <reason>" uses the reward table, "award <reason>
// <amount>" overrides it.
func (a *App) Award(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: award <reason> [amount]", errUsage)
	}
	reason := models.Reason(args[0])

	var (
		res progression.AwardResult
		err error
	)
	if len(args) == 2 {
		amount, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			return fmt.Errorf("%w: amount must be a whole number", errUsage)
		}
		res, err = a.engine.AwardXPAmount(ctx, reason, amount)
	} else {
		res, err = a.engine.AwardXP(ctx, reason)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, toastLine(res.Toast))
	if res.PersistErr != nil {
		fmt.Fprintln(a.out, warn("progress was not saved: "+res.PersistErr.Error()))
	}
	return nil
}

// Toasts prints the toasts a UI would currently show.
func (a *App) Toasts(_ context.Context) error {
	visible := a.engine.VisibleToasts()
	if len(visible) == 0 {
		fmt.Fprintln(a.out, "No notifications")
		return nil
	}
	for _, t := range visible {
		fmt.Fprintf(a.out, "%s  %s\n", t.ID, toastLine(t))
	}
	return nil
}

// Dismiss removes a toast before it expires.
func (a *App) Dismiss(_ context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: dismiss <id>", errUsage)
	}
	a.engine.DismissToast(args[0])
	return nil
}

// Reset asks for confirmation, then wipes all progress.
func (a *App) Reset(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Type 'yes' to erase all progress", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	err = a.engine.ResetProgress(ctx)
	fmt.Fprintln(a.out, "Progress reset")
	return err
}
