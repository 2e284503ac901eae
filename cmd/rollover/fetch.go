package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rollover/internal/cli"
	"github.com/Veraticus/rollover/internal/common"
	"github.com/Veraticus/rollover/internal/model"
	"github.com/Veraticus/rollover/internal/service"
)

func fetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a player's transactions into the local cache",
		Long: `Fetch a player's raw transaction batch from the back-office and store it in
the local cache. Cached batches can be reconciled later with
'rollover reconcile --cached'.`,
		RunE: runFetch,
	}

	cmd.Flags().String("client", "", "Back-office client ID (required)")
	cmd.Flags().String("currency", "", "Account currency (looked up when empty)")
	cmd.Flags().Bool("list", false, "List cached batches instead of fetching")
	addDateRangeFlags(cmd, 30)

	return cmd
}

func runFetch(cmd *cobra.Command, _ []string) error {
	clientID, _ := cmd.Flags().GetString("client")
	currency, _ := cmd.Flags().GetString("currency")
	list, _ := cmd.Flags().GetBool("list")

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if list {
		summaries, err := store.ListBatches(ctx, clientID)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), formatBatchList(summaries))
		return err
	}

	if clientID == "" {
		return common.NewUserError("--client is required", nil)
	}

	source, err := initBackoffice()
	if err != nil {
		return err
	}

	start, end, err := parseDateRange(cmd, time.Now())
	if err != nil {
		return err
	}

	batch, err := fetchBatch(ctx, source, store, service.TransactionQuery{
		Start:      start,
		End:        end,
		ClientID:   clientID,
		CurrencyID: currency,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
		"Cached %d record(s) for player %s (%s to %s)",
		len(batch.Records), clientID, start.Format(dateLayout), end.Format(dateLayout))))
	return err
}

// fetchBatch pulls one player's transactions and stores them as a batch.
func fetchBatch(ctx context.Context, source service.BatchSource, cache service.BatchCache, query service.TransactionQuery) (*model.Batch, error) {
	slog.Info("Fetching transactions",
		"client_id", query.ClientID,
		"start", query.Start.Format(dateLayout),
		"end", query.End.Format(dateLayout))

	records, err := source.GetTransactions(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for player %s: %w", query.ClientID, err)
	}

	batch := &model.Batch{
		FetchedAt: time.Now(),
		Start:     query.Start,
		End:       query.End,
		ClientID:  query.ClientID,
		Records:   records,
	}
	if err := cache.SaveBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to cache batch: %w", err)
	}
	return batch, nil
}

func formatBatchList(summaries []model.BatchSummary) string {
	if len(summaries) == 0 {
		return cli.FormatInfo("No cached batches")
	}

	out := cli.SubtitleStyle.Render(fmt.Sprintf("%-12s %-16s %-23s %8s  %s", "Client", "Fetched", "Range", "Records", "ID"))
	for _, s := range summaries {
		out += fmt.Sprintf("\n%-12s %-16s %-23s %8d  %s",
			s.ClientID,
			s.FetchedAt.Local().Format("2006-01-02 15:04"),
			s.Start.Format(dateLayout)+" → "+s.End.Format(dateLayout),
			s.RecordCount,
			s.ID)
	}
	return out
}
