package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/rollover/internal/cli"
	"github.com/Veraticus/rollover/internal/common"
	"github.com/Veraticus/rollover/internal/config"
	"github.com/Veraticus/rollover/internal/model"
	"github.com/Veraticus/rollover/internal/reconcile"
	"github.com/Veraticus/rollover/internal/service"
)

func reconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile players against the wagering policy",
		Long: `Reconcile one or more players' transaction history against the wagering policy.

Read a batch from a JSON file (or - for stdin), or fetch each --client from the
back-office. Fetched batches are cached so an interrupted run can be repeated
with --cached without calling the back-office again.`,
		Example: `  rollover reconcile --file batch.json --withdrawal 3500
  rollover reconcile --client 1001 --client 1002 --days 30
  rollover reconcile --client 1001 --cached --format json`,
		RunE: runReconcile,
	}

	cmd.Flags().StringP("file", "f", "", "JSON transaction batch to reconcile (- for stdin)")
	cmd.Flags().StringSlice("client", nil, "Back-office client ID (repeatable)")
	cmd.Flags().String("withdrawal", "", "Proposed withdrawal total to check against the cap")
	cmd.Flags().String("now", "", "Reference time for activity checks (RFC3339)")
	cmd.Flags().String("format", cli.FormatSummaryName, "Output format (summary, text, json)")
	cmd.Flags().Int("concurrency", 4, "Players reconciled in parallel")
	cmd.Flags().Bool("cached", false, "Use the latest cached batch instead of fetching")
	addDateRangeFlags(cmd, 30)

	return cmd
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	file, _ := cmd.Flags().GetString("file")
	clients, _ := cmd.Flags().GetStringSlice("client")
	withdrawalStr, _ := cmd.Flags().GetString("withdrawal")
	nowStr, _ := cmd.Flags().GetString("now")
	format, _ := cmd.Flags().GetString("format")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	cached, _ := cmd.Flags().GetBool("cached")

	switch {
	case file == "" && len(clients) == 0:
		return common.NewUserError("provide --file or at least one --client", nil)
	case file != "" && len(clients) > 0:
		return common.NewUserError("--file and --client cannot be combined", nil)
	}
	if err := validateFormat(format); err != nil {
		return err
	}
	if concurrency < 1 {
		return common.NewUserError(fmt.Sprintf("--concurrency must be at least 1, got %d", concurrency), nil)
	}

	policy, err := config.LoadPolicy()
	if err != nil {
		return err
	}
	now, err := parseNow(nowStr, policy.Location)
	if err != nil {
		return err
	}
	withdrawal, err := parseAmount(withdrawalStr)
	if err != nil {
		return err
	}

	if file != "" {
		report, err := reconcileFile(cmd.InOrStdin(), file, now, policy, withdrawal)
		if err != nil {
			return err
		}
		return renderReports(cmd.OutOrStdout(), format, []cli.Report{report})
	}

	start, end, err := parseDateRange(cmd, now)
	if err != nil {
		return err
	}

	store, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	rec := &playerReconciler{
		cache:      store,
		policy:     policy,
		now:        now,
		start:      start,
		end:        end,
		withdrawal: withdrawal,
	}
	if !cached {
		client, err := initBackoffice()
		if err != nil {
			return err
		}
		rec.source = client
	}

	var remaining atomic.Int64
	remaining.Store(int64(len(clients)))
	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context(), func() int { return int(remaining.Load()) })

	var bar *progressbar.ProgressBar
	if len(clients) > 1 && format != cli.FormatJSONName {
		bar = newProgressBar(cmd.ErrOrStderr(), len(clients))
	}

	reports, err := rec.reconcileAll(ctx, clients, concurrency, func() {
		remaining.Add(-1)
		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	})
	if renderErr := renderReports(cmd.OutOrStdout(), format, reports); renderErr != nil {
		return renderErr
	}
	if err != nil {
		if handler.WasInterrupted() {
			return common.NewUserError("reconciliation interrupted", err)
		}
		return err
	}

	if failed := countFailed(reports); failed > 0 {
		return fmt.Errorf("%d of %d player(s) could not be reconciled", failed, len(reports))
	}
	return nil
}

func validateFormat(format string) error {
	switch format {
	case cli.FormatSummaryName, cli.FormatTextName, cli.FormatJSONName:
		return nil
	default:
		return common.NewUserError(fmt.Sprintf("unknown --format %q (summary, text, json)", format), nil)
	}
}

// reconcileFile reconciles a batch read from path, or from stdin for "-".
func reconcileFile(stdin io.Reader, path string, now time.Time, policy reconcile.Policy, withdrawal *decimal.Decimal) (cli.Report, error) {
	var (
		data []byte
		err  error
		name string
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
		name = "stdin"
	} else {
		data, err = os.ReadFile(config.ExpandPath(path))
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err != nil {
		return cli.Report{}, fmt.Errorf("failed to read batch: %w", err)
	}

	result, err := reconcile.ReconcileJSON(data, now, policy)
	if err != nil {
		return cli.Report{}, err
	}

	report := cli.Report{ClientID: name, Result: result}
	attachWithdrawal(&report, withdrawal)
	return report, nil
}

// playerReconciler fetches or loads each player's batch and reconciles it.
type playerReconciler struct {
	now        time.Time
	start      time.Time
	end        time.Time
	source     service.BatchSource
	cache      service.BatchCache
	withdrawal *decimal.Decimal
	policy     reconcile.Policy
}

// reconcileAll reconciles players with at most concurrency in flight.
// Player failures land in their report; only cancellation fails the run.
// Reports keep the order of clientIDs.
func (r *playerReconciler) reconcileAll(ctx context.Context, clientIDs []string, concurrency int, done func()) ([]cli.Report, error) {
	reports := make([]cli.Report, len(clientIDs))
	for i, id := range clientIDs {
		reports[i] = cli.Report{ClientID: id, Error: "not reconciled"}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, id := range clientIDs {
		if gctx.Err() != nil {
			break
		}
		i, id := i, id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = r.reconcileOne(gctx, id)
			if done != nil {
				done()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, ctx.Err()
}

func (r *playerReconciler) reconcileOne(ctx context.Context, clientID string) cli.Report {
	report := cli.Report{ClientID: clientID}

	records, err := r.loadRecords(ctx, clientID)
	if err != nil {
		common.LogError(err, "Failed to load transactions", common.Fields{"client_id": clientID})
		report.Error = common.Explain(err).Error()
		return report
	}

	result, err := reconcile.Reconcile(records, r.now, r.policy)
	if err != nil {
		common.LogDebug("Reconciliation failed", common.Fields{"client_id": clientID, "error": err})
		report.Error = common.Explain(err).Error()
		return report
	}

	report.Result = result
	attachWithdrawal(&report, r.withdrawal)
	return report
}

func (r *playerReconciler) loadRecords(ctx context.Context, clientID string) ([]model.RawRecord, error) {
	if r.source == nil {
		batch, err := r.cache.LatestBatch(ctx, clientID)
		if err != nil {
			return nil, fmt.Errorf("no cached batch for player %s: %w", clientID, err)
		}
		return batch.Records, nil
	}

	records, err := r.source.GetTransactions(ctx, service.TransactionQuery{
		Start:    r.start,
		End:      r.end,
		ClientID: clientID,
	})
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		batch := &model.Batch{
			FetchedAt: time.Now(),
			Start:     r.start,
			End:       r.end,
			ClientID:  clientID,
			Records:   records,
		}
		if err := r.cache.SaveBatch(ctx, batch); err != nil {
			slog.Warn("Failed to cache batch", "client_id", clientID, "error", err)
		}
	}
	return records, nil
}

func attachWithdrawal(report *cli.Report, withdrawal *decimal.Decimal) {
	if withdrawal == nil || report.Result == nil {
		return
	}
	check := report.Result.CheckWithdrawal(*withdrawal)
	report.Withdrawal = &check
	report.Request = &model.WithdrawalRequest{ClientID: report.ClientID, Amount: *withdrawal}
}

func renderReports(w io.Writer, format string, reports []cli.Report) error {
	switch format {
	case cli.FormatJSONName:
		if len(reports) == 1 {
			return cli.WriteJSON(w, reports[0])
		}
		return cli.WriteJSON(w, reports)

	case cli.FormatTextName:
		blocks := make([]string, 0, len(reports))
		for _, report := range reports {
			var b strings.Builder
			if len(reports) > 1 {
				fmt.Fprintf(&b, "== Player %s ==\n", report.ClientID)
			}
			if report.Result == nil {
				fmt.Fprintf(&b, "Error: %s", report.Error)
			} else {
				b.WriteString(cli.ReviewText(report.Request, report.Result))
			}
			blocks = append(blocks, b.String())
		}
		_, err := fmt.Fprintln(w, strings.Join(blocks, "\n\n"))
		return err

	default:
		formatter := cli.NewResultFormatter()
		blocks := make([]string, 0, len(reports))
		for _, report := range reports {
			blocks = append(blocks, formatter.FormatSummary(report))
		}
		_, err := fmt.Fprintln(w, strings.Join(blocks, "\n\n"))
		return err
	}
}

func countFailed(reports []cli.Report) int {
	n := 0
	for _, r := range reports {
		if r.Result == nil {
			n++
		}
	}
	return n
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Reconciling players...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
