package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rollover/internal/cli"
	"github.com/Veraticus/rollover/internal/model"
	"github.com/Veraticus/rollover/internal/reconcile"
)

func withdrawalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdrawals",
		Short: "List withdrawal requests",
		Long: `List withdrawal requests from the back-office with their normalized status.

By default only requests still waiting for a decision (new, pending,
processing) are shown; use --all for every status.`,
		RunE: runWithdrawals,
	}

	cmd.Flags().Bool("all", false, "Include paid, rejected and cancelled requests")
	cmd.Flags().Bool("json", false, "Output as JSON")
	addDateRangeFlags(cmd, 1)

	return cmd
}

func runWithdrawals(cmd *cobra.Command, _ []string) error {
	all, _ := cmd.Flags().GetBool("all")
	asJSON, _ := cmd.Flags().GetBool("json")

	start, end, err := parseDateRange(cmd, time.Now())
	if err != nil {
		return err
	}

	source, err := initBackoffice()
	if err != nil {
		return err
	}

	requests, err := source.GetWithdrawalRequests(cmd.Context(), start, end)
	if err != nil {
		return fmt.Errorf("failed to list withdrawal requests: %w", err)
	}
	if !all {
		requests = openRequests(requests)
	}
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].RequestedAt.After(requests[j].RequestedAt)
	})

	if asJSON {
		return cli.WriteJSON(cmd.OutOrStdout(), requests)
	}
	return writeWithdrawalList(cmd.OutOrStdout(), requests)
}

// openRequests keeps the requests an operator still has to decide on.
func openRequests(requests []model.WithdrawalRequest) []model.WithdrawalRequest {
	open := make([]model.WithdrawalRequest, 0, len(requests))
	for _, req := range requests {
		switch req.Status {
		case model.WithdrawalNew, model.WithdrawalPending, model.WithdrawalProcessing:
			open = append(open, req)
		}
	}
	return open
}

func writeWithdrawalList(w io.Writer, requests []model.WithdrawalRequest) error {
	if len(requests) == 0 {
		_, err := fmt.Fprintln(w, cli.FormatInfo("No withdrawal requests in range"))
		return err
	}

	var b strings.Builder
	b.WriteString(cli.FormatTitle(fmt.Sprintf("Withdrawal requests (%d)", len(requests))))
	b.WriteString("\n")
	b.WriteString(cli.SubtitleStyle.Render(fmt.Sprintf("   %-12s %-12s %-18s %14s  %-20s %s",
		"ID", "Client", "Login", "Amount", "Channel", "Requested")))
	for _, req := range requests {
		fmt.Fprintf(&b, "\n%s %-12s %-12s %-18s %14s  %-20s %s",
			req.Status.Icon(),
			req.ID,
			req.ClientID,
			req.ClientLogin,
			reconcile.FormatAmount(req.Amount),
			req.PaymentChannel,
			req.RequestedAt.Format("2006-01-02 15:04"))
	}

	_, err := fmt.Fprintln(w, b.String())
	return err
}
