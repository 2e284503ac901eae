package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rollover/internal/cli"
	"github.com/Veraticus/rollover/internal/common"
	"github.com/Veraticus/rollover/internal/config"
	"github.com/Veraticus/rollover/internal/model"
	"github.com/Veraticus/rollover/internal/reconcile"
)

func bonusesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bonuses",
		Short: "Show a player's last bonus and whether it was paid",
		RunE:  runBonuses,
	}

	cmd.Flags().String("client", "", "Back-office client ID (required)")
	cmd.Flags().Bool("all", false, "Show every bonus, newest first")

	return cmd
}

func runBonuses(cmd *cobra.Command, _ []string) error {
	clientID, _ := cmd.Flags().GetString("client")
	all, _ := cmd.Flags().GetBool("all")
	if clientID == "" {
		return common.NewUserError("--client is required", nil)
	}

	policy, err := config.LoadPolicy()
	if err != nil {
		return err
	}
	source, err := initBackoffice()
	if err != nil {
		return err
	}

	bonuses, err := source.GetClientBonuses(cmd.Context(), clientID)
	if err != nil {
		return fmt.Errorf("failed to load bonuses for player %s: %w", clientID, err)
	}
	if !all && len(bonuses) > 1 {
		bonuses = bonuses[:1]
	}
	return writeBonuses(cmd.OutOrStdout(), clientID, bonuses, policy)
}

func writeBonuses(w io.Writer, clientID string, bonuses []model.ClientBonus, policy reconcile.Policy) error {
	if len(bonuses) == 0 {
		_, err := fmt.Fprintln(w, cli.FormatInfo("Player "+clientID+" has no bonuses"))
		return err
	}

	blocks := make([]string, 0, len(bonuses))
	for _, b := range bonuses {
		blocks = append(blocks, formatBonus(b, policy))
	}
	_, err := fmt.Fprintln(w, strings.Join(blocks, "\n\n"))
	return err
}

func formatBonus(b model.ClientBonus, policy reconcile.Policy) string {
	var status string
	switch reconcile.BonusPaidStatus(b, policy) {
	case model.BonusPaid:
		status = cli.FormatSuccess("paid")
	case model.BonusUnpaid:
		status = cli.FormatWarning("not paid")
	default:
		status = cli.SubtleStyle.Render("unknown")
	}

	name := b.Name
	if name == "" {
		name = "(unnamed bonus)"
	}

	lines := []string{
		cli.RenderField("Amount", reconcile.FormatAmount(b.Amount)),
		cli.RenderField("Granted", formatTime(b)),
		cli.RenderField("Paid", status),
	}
	if b.PaidAmount != nil {
		lines = append(lines, cli.RenderField("Paid amount", reconcile.FormatAmount(*b.PaidAmount)))
	}
	if b.ToWagerAmount.IsPositive() {
		lines = append(lines, cli.RenderField("Wagered", fmt.Sprintf("%s of %s",
			reconcile.FormatAmount(b.WageredAmount), reconcile.FormatAmount(b.ToWagerAmount))))
	}
	if b.CreatedBy != "" {
		lines = append(lines, cli.RenderField("Granted by", b.CreatedBy))
	}
	if b.Description != "" {
		lines = append(lines, cli.RenderField("Description", b.Description))
	}
	return cli.RenderBox(name, strings.Join(lines, "\n"))
}

func formatTime(b model.ClientBonus) string {
	if b.CreatedAt.IsZero() {
		return "-"
	}
	return b.CreatedAt.Format("2006-01-02 15:04")
}
