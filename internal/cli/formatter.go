package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/rollover/internal/model"
	"github.com/Veraticus/rollover/internal/reconcile"
)

// Output formats accepted by the reconcile command.
const (
	FormatSummaryName = "summary"
	FormatTextName    = "text"
	FormatJSONName    = "json"
)

// Report is one player's reconciliation as rendered to the operator.
type Report struct {
	Result     *reconcile.Result          `json:"result,omitempty"`
	Withdrawal *reconcile.WithdrawalCheck `json:"withdrawal,omitempty"`
	Request    *model.WithdrawalRequest   `json:"request,omitempty"`
	Error      string                     `json:"error,omitempty"`
	ClientID   string                     `json:"client_id"`
}

// ResultFormatter renders reconciliation results for the terminal.
type ResultFormatter struct {
	maxGames int
}

// NewResultFormatter creates a formatter showing at most ten games.
func NewResultFormatter() *ResultFormatter {
	return &ResultFormatter{maxGames: 10}
}

// FormatSummary renders the styled overview of a report.
func (f *ResultFormatter) FormatSummary(report Report) string {
	if report.Result == nil {
		msg := "No result available"
		if report.Error != "" {
			msg = report.Error
		}
		return FormatError(fmt.Sprintf("Player %s: %s", report.ClientID, msg))
	}
	r := report.Result

	sections := []string{
		f.formatHeader(report.ClientID, r),
		f.formatAnchor(r.Anchor),
		f.formatTurnover(r),
	}

	if r.WithdrawalCap != nil || report.Withdrawal != nil {
		sections = append(sections, f.formatCap(r, report.Withdrawal))
	}

	if r.Narrative != "" {
		sections = append(sections, InfoStyle.Render(MoneyIcon+" "+r.Narrative))
	}

	if len(r.PerGame) > 0 {
		sections = append(sections, f.FormatGames(r.PerGame, r.DominantGames))
	}

	sections = append(sections, f.formatActivity(r.Activity))

	if r.DroppedRecords > 0 {
		sections = append(sections, FormatWarning(fmt.Sprintf("%d record(s) skipped for an unreadable timestamp", r.DroppedRecords)))
	}

	return strings.Join(sections, "\n\n")
}

func (f *ResultFormatter) formatHeader(clientID string, r *reconcile.Result) string {
	title := FormatTitle("Wagering reconciliation: player " + clientID)
	generated := SubtleStyle.Render(fmt.Sprintf("Generated: %s · %d entries, %d in window",
		r.GeneratedAt.Format(time.RFC3339), r.EntryCount, r.WindowSize))
	return title + "\n" + generated
}

func (f *ResultFormatter) formatAnchor(anchor reconcile.Anchor) string {
	lines := []string{
		RenderField("Source", anchor.Type.Label()),
		RenderField("Amount", reconcile.FormatAmount(anchor.Amount)),
		RenderField("At", anchor.Timestamp().Format("2006-01-02 15:04:05")),
	}
	if anchor.Entry.PaymentChannel != "" {
		lines = append(lines, RenderField("Channel", anchor.Entry.PaymentChannel))
	}
	return RenderBox("Anchor", strings.Join(lines, "\n"))
}

func (f *ResultFormatter) formatTurnover(r *reconcile.Result) string {
	ratio := SubtleStyle.Render("undefined")
	if r.RatioDefined {
		ratio = r.TurnoverRatio.StringFixed(2) + "x"
	}

	status := SuccessStyle.Render(SuccessIcon + " satisfied")
	if !r.TurnoverSatisfied {
		status = WarningStyle.Render(fmt.Sprintf("%s %s still to wager", WarningIcon, reconcile.FormatAmount(r.RemainingTurnover)))
	}

	net := reconcile.FormatAmount(r.NetProfit)
	if r.NetProfit.IsPositive() {
		net = SuccessStyle.Render(net)
	} else if r.NetProfit.IsNegative() {
		net = ErrorStyle.Render(net)
	}

	return strings.Join([]string{
		SubtitleStyle.Render("Turnover since anchor:"),
		RenderField("Wagered", reconcile.FormatAmount(r.TotalWagered)),
		RenderField("Paid out", reconcile.FormatAmount(r.TotalPayout)),
		RenderField("Net profit", net),
		RenderField("Turnover ratio", ratio),
		RenderField("Target", status),
	}, "\n")
}

func (f *ResultFormatter) formatCap(r *reconcile.Result, check *reconcile.WithdrawalCheck) string {
	lines := []string{SubtitleStyle.Render("Withdrawal cap:")}
	if r.WithdrawalCap == nil {
		lines = append(lines, RenderField("Cap", SubtleStyle.Render("none (deposit anchor)")))
	} else {
		lines = append(lines, RenderField("Cap", reconcile.FormatAmount(*r.WithdrawalCap)))
	}

	if check != nil {
		lines = append(lines, RenderField("Requested", reconcile.FormatAmount(check.Proposed)))
		switch {
		case check.CapExceeded:
			lines = append(lines, RenderField("Verdict", FormatError("exceeds cap by "+reconcile.FormatAmount(check.Excess))))
		case check.CapApplies:
			lines = append(lines, RenderField("Verdict", FormatSuccess("within cap")))
		default:
			lines = append(lines, RenderField("Verdict", FormatSuccess("no cap applies")))
		}
	}
	return strings.Join(lines, "\n")
}

// FormatGames renders the per-game table, marking dominant games.
func (f *ResultFormatter) FormatGames(perGame, dominant []reconcile.GameProfit) string {
	title := SubtitleStyle.Render(ChartIcon + " Games since anchor:")

	isDominant := make(map[string]bool, len(dominant))
	for _, g := range dominant {
		isDominant[g.Game] = true
	}

	nameWidth := 28
	amountWidth := 14
	header := fmt.Sprintf("%-*s %*s %*s %*s",
		nameWidth, "Game",
		amountWidth, "Wagered",
		amountWidth, "Paid out",
		amountWidth, "Net")
	rows := []string{
		SubtleStyle.Bold(true).Render(header),
		SubtleStyle.Render(strings.Repeat("─", lipgloss.Width(header))),
	}

	limit := len(perGame)
	if f.maxGames > 0 && limit > f.maxGames {
		limit = f.maxGames
	}

	for _, g := range perGame[:limit] {
		name := g.Game
		if len([]rune(name)) > nameWidth-2 {
			name = string([]rune(name)[:nameWidth-5]) + "..."
		}
		if isDominant[g.Game] {
			name = "★ " + name
		}

		net := fmt.Sprintf("%*s", amountWidth, reconcile.FormatAmount(g.NetProfit))
		switch {
		case g.NetProfit.IsPositive():
			net = SuccessStyle.Render(net)
		case g.NetProfit.IsNegative():
			net = ErrorStyle.Render(net)
		}

		rows = append(rows, fmt.Sprintf("%-*s %*s %*s %s",
			nameWidth, name,
			amountWidth, reconcile.FormatAmount(g.Wagered),
			amountWidth, reconcile.FormatAmount(g.Payout),
			net))
	}

	table := strings.Join(rows, "\n")
	if len(perGame) > limit {
		table += "\n" + SubtleStyle.Render(fmt.Sprintf("... and %d more games", len(perGame)-limit))
	}
	return title + "\n" + table
}

func (f *ResultFormatter) formatActivity(a reconcile.ActivitySummary) string {
	playing := "no"
	if a.StillPlaying {
		playing = WarningStyle.Render("yes")
	}
	lastWager := "-"
	if a.LastWagerAt != nil {
		lastWager = a.LastWagerAt.Format("2006-01-02 15:04")
	}

	return strings.Join([]string{
		SubtitleStyle.Render("Activity in batch:"),
		RenderField("Deposits", fmt.Sprintf("%d (%s)", a.DepositCount, reconcile.FormatAmount(a.TotalDeposited))),
		RenderField("Withdrawal requests", fmt.Sprintf("%d (%s), %d since deposit",
			a.WithdrawalRequestCount, reconcile.FormatAmount(a.TotalWithdrawalRequested), a.WithdrawalsSinceDeposit)),
		RenderField("Last wager", lastWager),
		RenderField("Still playing", playing),
	}, "\n")
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
