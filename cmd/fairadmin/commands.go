package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"careerfair.ai/internal/persistence/indexdb"
)

func newStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show current tick and floor metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			body, err := httpGet(addr + "/admin/v1/state")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return nil
		},
	}
}

func newSnapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Dump a full state snapshot as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			body, err := httpGet(addr + "/admin/v1/snapshot")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return nil
		},
	}
}

func newLeaderboardCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Rank students by offers received",
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := openIndex(cmd)
			if err != nil {
				return err
			}
			defer idx.Close()
			rows, err := idx.Leaderboard(limit)
			if err != nil {
				return err
			}
			for i, r := range rows {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. student %d  offers=%d  interactions=%d  best=%.1f  avg=%.1f\n",
					i+1, r.StudentID, r.Offers, r.Interactions, r.BestScore, r.AvgScore)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "rows to show")
	return cmd
}

func newOffersCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "offers",
		Short: "List recent job offers",
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := openIndex(cmd)
			if err != nil {
				return err
			}
			defer idx.Close()
			rows, err := idx.Offers(limit)
			if err != nil {
				return err
			}
			for _, r := range rows {
				fmt.Fprintf(cmd.OutOrStdout(), "%s tick=%d student=%d recruiter=%d score=%.1f messages=%d\n",
					r.ConversationID, r.Tick, r.StudentID, r.RecruiterID, r.Score, r.Messages)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "rows to show")
	return cmd
}

func openIndex(cmd *cobra.Command) (*indexdb.SQLiteIndex, error) {
	dataDir, _ := cmd.Flags().GetString("data")
	fairID, _ := cmd.Flags().GetString("fair")
	path := filepath.Join(dataDir, "fairs", fairID, "index.db")
	idx, err := indexdb.OpenReadOnly(path)
	if err != nil {
		return nil, fmt.Errorf("open index db %s: %w", path, err)
	}
	return idx, nil
}

func httpGet(url string) ([]byte, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %s", resp.Status, string(body))
	}
	// Pretty-print when the payload is JSON.
	var buf json.RawMessage
	if json.Unmarshal(body, &buf) == nil {
		if pretty, err := json.MarshalIndent(buf, "", "  "); err == nil {
			return pretty, nil
		}
	}
	return body, nil
}
