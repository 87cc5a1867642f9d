package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"crm/internal/board"
	"crm/internal/filter"
	"crm/internal/models"
)

func pipelineCmd(flags *globalFlags) *cobra.Command {
	var query, stages string

	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Print the sales pipeline with per-stage totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := filter.DealSpec{Query: query}
			var err error
			if spec.Stages, err = filter.ParseStages(stages); err != nil {
				return err
			}

			ws, _, _, closeStore, err := openWorkspace(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer closeStore()

			return writePipeline(cmd.OutOrStdout(), ws.Pipeline(spec))
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Search title, company and contact")
	cmd.Flags().StringVar(&stages, "stage", "", "Comma separated stages to show")
	return cmd
}

func customersCmd(flags *globalFlags) *cobra.Command {
	var query, statuses, subscriptions string

	cmd := &cobra.Command{
		Use:   "customers",
		Short: "List customers matching the search and filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := filter.CustomerSpec{Query: query}
			var err error
			if spec.Statuses, err = filter.ParseStatuses(statuses); err != nil {
				return err
			}
			if spec.Subscriptions, err = filter.ParseSubscriptions(subscriptions); err != nil {
				return err
			}

			ws, _, _, closeStore, err := openWorkspace(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer closeStore()

			return writeCustomers(cmd.OutOrStdout(), ws.Customers(spec))
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Search name, company and email")
	cmd.Flags().StringVar(&statuses, "status", "", "Comma separated statuses")
	cmd.Flags().StringVar(&subscriptions, "subscription", "", "Comma separated subscription tiers")
	return cmd
}

func tasksCmd(flags *globalFlags) *cobra.Command {
	var tabName string

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List tasks on a tab (all, today, upcoming, overdue, completed)",
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, err := filter.ParseTab(tabName)
			if err != nil {
				return err
			}

			ws, _, _, closeStore, err := openWorkspace(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer closeStore()

			return writeTasks(cmd.OutOrStdout(), ws.Tasks(tab))
		},
	}
	cmd.Flags().StringVar(&tabName, "tab", "all", "Task tab")
	return cmd
}

func writePipeline(w io.Writer, cols []board.Column) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	var total int64
	for _, col := range cols {
		total += col.Total
		fmt.Fprintf(tw, "%s\t%d deals\t%s\tweighted %s\n", strings.ToUpper(string(col.Stage)), col.Count, formatUSD(col.Total), formatUSD(col.Weighted))
		for _, d := range col.Deals {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%d%%\n", d.Title, d.Company, formatUSD(d.Value), d.Probability)
		}
	}
	fmt.Fprintf(tw, "TOTAL\t\t%s\t\n", formatUSD(total))
	return tw.Flush()
}

func writeCustomers(w io.Writer, customers []models.Customer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCOMPANY\tEMAIL\tSTATUS\tSUBSCRIPTION")
	for _, c := range customers {
		sub := string(c.Subscription)
		if sub == "" {
			sub = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.Name, c.Company, c.Email, c.Status, sub)
	}
	return tw.Flush()
}

func writeTasks(w io.Writer, tasks []models.Task) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tDUE\tPRIORITY\tSTATUS\tASSIGNEE")
	for _, t := range tasks {
		due := t.DueDate
		if due == "" {
			due = "No date"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.Title, due, t.Priority, t.Status, t.Assignee)
	}
	return tw.Flush()
}

// formatUSD renders whole dollars with thousands separators.
func formatUSD(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	digits := fmt.Sprintf("%d", v)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String()
}
