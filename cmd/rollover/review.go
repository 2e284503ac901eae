package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rollover/internal/cli"
	"github.com/Veraticus/rollover/internal/common"
	"github.com/Veraticus/rollover/internal/config"
	"github.com/Veraticus/rollover/internal/model"
	"github.com/Veraticus/rollover/internal/reconcile"
	"github.com/Veraticus/rollover/internal/service"
	"github.com/Veraticus/rollover/internal/tui"
)

func reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Pick a withdrawal request and review it",
		Long: `Pick an open withdrawal request interactively, reconcile that player's
history and print the review block with the requested amount checked
against the withdrawal cap. Bank transfer requests also get a payout slip.`,
		RunE: runReview,
	}

	cmd.Flags().Bool("all", false, "Offer requests in every status")
	cmd.Flags().Int("history-days", 30, "Days of player history to reconcile")
	addDateRangeFlags(cmd, 1)

	return cmd
}

func runReview(cmd *cobra.Command, _ []string) error {
	all, _ := cmd.Flags().GetBool("all")
	historyDays, _ := cmd.Flags().GetInt("history-days")
	if historyDays < 1 {
		return common.NewUserError(fmt.Sprintf("--history-days must be positive, got %d", historyDays), nil)
	}

	policy, err := config.LoadPolicy()
	if err != nil {
		return err
	}
	now, err := parseNow("", policy.Location)
	if err != nil {
		return err
	}

	start, end, err := parseDateRange(cmd, now)
	if err != nil {
		return err
	}

	source, err := initBackoffice()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	requests, err := source.GetWithdrawalRequests(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to list withdrawal requests: %w", err)
	}
	if !all {
		requests = openRequests(requests)
	}
	if len(requests) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No withdrawal requests to review"))
		return err
	}

	req, err := tui.RunPicker(ctx, requests)
	if err != nil {
		if errors.Is(err, tui.ErrNothingSelected) {
			return nil
		}
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	batch, err := fetchBatch(ctx, source, store, service.TransactionQuery{
		Start:    now.AddDate(0, 0, -historyDays),
		End:      now,
		ClientID: req.ClientID,
	})
	if err != nil {
		return err
	}

	result, err := reconcile.Reconcile(batch.Records, now, policy)
	if err != nil {
		return err
	}
	return writeReview(cmd.OutOrStdout(), req, result)
}

// writeReview prints the review block and, for bank transfers, the payout slip.
func writeReview(w io.Writer, req *model.WithdrawalRequest, result *reconcile.Result) error {
	out := cli.ReviewText(req, result)
	if req != nil {
		if slip := cli.PayoutSlip(*req); slip != "" {
			out += "\n\n" + slip
		}
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
