package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/DaanHessen/budgethero/internal/catalog"
	"github.com/DaanHessen/budgethero/internal/engine"
	"github.com/DaanHessen/budgethero/internal/game"
)

func newLeaderboardCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top savers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			progress, closeStore, err := openProgress(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer closeStore()
			entries, err := progress.Top(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if progress.Offline() {
				fmt.Fprintln(out, "(offline: showing players on this device)")
			}
			fmt.Fprintln(out, leaderboardTable(entries))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", game.LeaderboardSize, "number of players to show")
	return cmd
}

func leaderboardTable(entries []game.LeaderboardEntry) string {
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		id := e.UserID
		if len(id) > 8 {
			id = id[:8]
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), id, engine.KSh(e.MoneySaved), string(game.LevelFor(e.MoneySaved)), strconv.Itoa(e.Badges)})
	}
	return renderTable([]string{"#", "Player", "Saved", "Level", "Badges"}, rows)
}

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the scenario catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.Load()
			if err != nil {
				return err
			}
			var rows [][]string
			for _, sc := range cat.All() {
				ids := make([]string, len(sc.Choices))
				for i, c := range sc.Choices {
					ids[i] = catalog.Label(i) + ":" + c.ID
				}
				rows = append(rows, []string{sc.ID, sc.Title, string(sc.Category), string(sc.Difficulty), strings.Join(ids, " ")})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Catalog v%d\n", cat.Version())
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Title", "Category", "Difficulty", "Choices"}, rows))
			return nil
		},
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderHeader(true).
		BorderRow(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Render()
}
