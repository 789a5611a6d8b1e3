package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jobpilot/jobreview/internal/domain/model"
)

type loader func(cmd *cobra.Command) (*app, error)

func newCountCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of unprocessed job ads and the resulting page count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			summary, err := a.Counter.Count(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
			fmt.Fprintf(tw, "unprocessed\t%d\n", summary.Count)
			fmt.Fprintf(tw, "page size\t%d\n", summary.PageSize)
			fmt.Fprintf(tw, "pages\t%d\n", summary.LastPage)
			return tw.Flush()
		},
	}
}

func newListCmd(load loader) *cobra.Command {
	var (
		pageSize int
		cursor   string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of unprocessed job ads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			size := pageSize
			if size <= 0 {
				size = a.PageSize
			}
			page, err := a.Pager.FetchPage(cmd.Context(), model.PageRequest{Size: size, Cursor: cursor})
			if err != nil {
				return err
			}
			return writePage(cmd.OutOrStdout(), page)
		},
	}
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Items per page (defaults to JOBS_PAGE_SIZE)")
	cmd.Flags().StringVar(&cursor, "cursor", "", "Continuation token printed by a previous list")
	return cmd
}

func writePage(w io.Writer, page *model.JobAdPage) error {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE ADDED\tADDED\tCOMPANY\tTITLE")
	for _, job := range page.Items {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			job.ID, job.DateAdded, job.AddedAt().Format("2006-01-02"), job.Company, job.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if page.Next != "" {
		_, err := fmt.Fprintf(w, "\nnext: %s\n", page.Next)
		return err
	}
	return nil
}

func newDecideCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "decide <id> <date-added> applied|declined",
		Short: "Record a decision for one job ad",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateAdded, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("date-added must be a unix timestamp: %w", err)
			}
			decision, err := model.ParseDecision(args[2])
			if err != nil {
				return err
			}
			a, err := load(cmd)
			if err != nil {
				return err
			}
			job, err := a.Recorder.Record(cmd.Context(), args[0], dateAdded, decision)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s marked %s at %s\n",
				job.ID, decision, job.ProcessedAt().Format("2006-01-02T15:04:05Z07:00"))
			return err
		},
	}
}
