package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/pathfinder/internal/explore"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the pathways for a career, or one pathway's section",
	Long: `Fetch and print without starting the TUI. With --pathway the given
section of that pathway is printed as well.`,
	Example: `  pathfinder list --filter budget=200000 --filter pathway_type=degree
  pathfinder list --pathway btech-cse --tab institutions --filter location=Pune
  pathfinder list --pathway btech-cse --institution iit-bombay --tab admission`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pathway, _ := cmd.Flags().GetString("pathway")
		institution, _ := cmd.Flags().GetString("institution")
		tabName, _ := cmd.Flags().GetString("tab")
		filters, _ := cmd.Flags().GetStringArray("filter")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		asJSON, _ := cmd.Flags().GetBool("json")

		tab, err := explore.ParseTab(tabName)
		if err != nil {
			return err
		}
		if institution != "" && pathway == "" {
			return explore.ErrNoPathwaySelected
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctrl, err := d.newController(explore.WithAutoSelectFirst(false))
		if err != nil {
			return fmt.Errorf("build data provider: %w", err)
		}

		for _, f := range filters {
			field, value, ok := strings.Cut(f, "=")
			if !ok {
				return fmt.Errorf("invalid --filter %q: want field=value", f)
			}
			if err := ctrl.SetFilterField(strings.TrimSpace(field), value); err != nil {
				return err
			}
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		steps := []func() (tea.Cmd, error){
			func() (tea.Cmd, error) { return ctrl.ApplyFilters(), nil },
			func() (tea.Cmd, error) { return ctrl.Start(), nil },
		}
		if pathway != "" {
			steps = append(steps,
				func() (tea.Cmd, error) { return ctrl.SelectPathway(pathway), nil },
				func() (tea.Cmd, error) { return ctrl.SetTab(tab), nil },
			)
		}
		if institution != "" {
			steps = append(steps, func() (tea.Cmd, error) { return ctrl.SelectInstitution(institution) })
		}
		for _, step := range steps {
			c, err := step()
			if err != nil {
				return err
			}
			if err := explore.Drain(ctx, ctrl, c); err != nil {
				return fmt.Errorf("fetch: %w", err)
			}
		}

		v := ctrl.View()
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		}
		printView(cmd.OutOrStdout(), v)
		return nil
	},
}

func init() {
	listCmd.Flags().String("pathway", "", "Pathway ID to show")
	listCmd.Flags().String("institution", "", "Institution ID to show the admission process for (needs --pathway)")
	listCmd.Flags().String("tab", explore.TabOverview.String(), "Section to show: overview, courses, institutions, admission or exams")
	listCmd.Flags().StringArray("filter", nil, "Filter as field=value; fields: "+strings.Join(explore.FilterFields(), ", "))
	listCmd.Flags().Duration("timeout", 30*time.Second, "Give up if fetching takes longer")
	listCmd.Flags().Bool("json", false, "Print the view as JSON")
}

func printView(w io.Writer, v explore.View) {
	sep := strings.Repeat("─", 90)

	fmt.Fprintf(w, "Pathways for %s", v.State.CareerID)
	if !v.State.Filters.IsZero() {
		fmt.Fprintf(w, " %s", v.State.Filters)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, sep)
	printRegion(w, v.Pathways, func() {
		fmt.Fprintf(w, "%-20s  %-36s  %-12s  %-10s  %s\n", "ID", "Name", "Type", "Duration", "Cost")
		for _, p := range v.Pathways.Items {
			fmt.Fprintf(w, "%-20s  %-36s  %-12s  %-10s  %s\n",
				p.ID, clip(p.Name, 36), p.Type, clip(p.Duration, 10), costText(p.Cost.Min, p.Cost.Max))
		}
	})

	if v.State.PathwayID == "" {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s: %s\n", v.State.PathwayID, v.State.Tab.Label())
	fmt.Fprintln(w, sep)

	switch v.State.Tab {
	case explore.TabOverview:
		if p := v.Pathway; p != nil {
			fmt.Fprintf(w, "Name:          %s\n", p.Name)
			fmt.Fprintf(w, "Placement:     %.0f%%\n", p.Placement.Rate*100)
			if len(p.ExamIDs) > 0 {
				fmt.Fprintf(w, "Exams:         %s\n", strings.Join(p.ExamIDs, ", "))
			}
		}
		fmt.Fprintf(w, "Courses:       %s\n", countText(v.Courses.State, len(v.Courses.Items), v.Courses.Message))
		fmt.Fprintf(w, "Institutions:  %s\n", countText(v.Institutions.State, len(v.Institutions.Items), v.Institutions.Message))

	case explore.TabCourses:
		printRegion(w, v.Courses, func() {
			for _, c := range v.Courses.Items {
				fmt.Fprintf(w, "%-20s  %-40s  %s\n", c.ID, clip(c.Name, 40), c.Duration)
			}
		})

	case explore.TabInstitutions:
		printRegion(w, v.Institutions, func() {
			fmt.Fprintf(w, "%-20s  %-36s  %-16s  %7s  %s\n", "ID", "Name", "Location", "Ranking", "Fees")
			for _, b := range v.Institutions.Items {
				fmt.Fprintf(w, "%-20s  %-36s  %-16s  %7d  %.0f\n",
					b.Institution.ID, clip(b.Institution.Name, 36), clip(b.Institution.Location, 16),
					b.Institution.Ranking, b.Fees)
			}
		})

	case explore.TabAdmission:
		printRegion(w, v.Admissions, func() {
			for _, a := range v.Admissions.Items {
				fmt.Fprintf(w, "Applications:  %s to %s\n", a.Dates.ApplicationOpen, a.Dates.ApplicationClose)
				if len(a.Eligibility) > 0 {
					fmt.Fprintf(w, "Eligibility:   %s\n", a.Eligibility)
				}
				for _, tip := range a.Tips {
					fmt.Fprintf(w, "  - %s\n", tip)
				}
			}
		})

	case explore.TabExams:
		printRegion(w, v.Exams, func() {
			for _, e := range v.Exams.Items {
				fmt.Fprintf(w, "%-12s  %-36s  %s\n", e.ID, clip(e.Name, 36), e.ConductingBody)
			}
		})
	}
}

// printRegion prints the non-loaded states of a region, or calls body.
func printRegion[T any](w io.Writer, r explore.Region[T], body func()) {
	switch r.State {
	case explore.RegionLoaded:
		body()
	case explore.RegionError:
		fmt.Fprintf(w, "✗ %s\n", r.Message)
	case explore.RegionEmpty:
		fmt.Fprintln(w, "(none)")
	case explore.RegionNeedsInstitution:
		fmt.Fprintln(w, "Pick an institution with --institution.")
	default:
		fmt.Fprintf(w, "(%s)\n", r.State)
	}
}

func countText(state explore.RegionState, n int, msg string) string {
	switch state {
	case explore.RegionLoaded:
		return fmt.Sprint(n)
	case explore.RegionEmpty:
		return "0"
	case explore.RegionError:
		return "✗ " + msg
	}
	return state.String()
}

func costText(lo, hi float64) string {
	if hi <= lo {
		return fmt.Sprintf("%.0f", lo)
	}
	return fmt.Sprintf("%.0f-%.0f", lo, hi)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
