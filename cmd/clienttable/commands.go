package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/sujal12344/client-list-table-ui/internal/clients"
	"github.com/sujal12344/client-list-table-ui/internal/criteria"
	"github.com/sujal12344/client-list-table-ui/internal/database/repository"
	"github.com/sujal12344/client-list-table-ui/internal/service"
	"github.com/sujal12344/client-list-table-ui/internal/testdata"
	"github.com/sujal12344/client-list-table-ui/internal/view"
)

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Print one page of the client table",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tab", Usage: "all, individual or company", Value: "all"},
			&cli.StringFlag{Name: "search", Usage: "case-insensitive search over name, email, status and id"},
			&cli.StringSliceFlag{Name: "status", Usage: "status facet to select (active, inactive)"},
			&cli.StringSliceFlag{Name: "type", Usage: "type facet to select (individual, company)"},
			&cli.StringSliceFlag{Name: "sort", Usage: "sort criterion field[:asc|desc], most significant first"},
			&cli.IntFlag{Name: "page", Usage: "1-based page number", Value: 1},
			&cli.BoolFlag{Name: "persist", Usage: "save the given sort and filter selections"},
		},
		Action: runList,
	}
}

func runList(ctx context.Context, cmd *cli.Command) error {
	tab, err := clients.ParseTab(cmd.String("tab"))
	if err != nil {
		return err
	}
	sortSpecs, err := parseSortSpecs(cmd.StringSlice("sort"))
	if err != nil {
		return err
	}

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.Close()

	storage, err := e.storage()
	if err != nil {
		return err
	}
	if !cmd.Bool("persist") {
		storage = snapshot(ctx, storage)
	}
	s, err := e.session(ctx, storage)
	if err != nil {
		return err
	}
	defer s.Close()

	s.SetTab(tab)
	if len(sortSpecs) > 0 {
		s.ClearSort()
		for _, spec := range sortSpecs {
			s.AddSort(spec.Field, spec.Direction)
		}
	}
	if err := applyFacets(s, cmd.StringSlice("status"), cmd.StringSlice("type")); err != nil {
		return err
	}
	if cmd.IsSet("search") {
		s.SetSearch(cmd.String("search"))
	}
	if page := int(cmd.Int("page")); page > 1 {
		s.GoToPage(page - 1)
	}

	writePage(cmd.Root().Writer, s.View(), e.tz, e.cfg.UI.DateFormat)
	return nil
}

func parseSortSpecs(raw []string) ([]clients.SortCriterion, error) {
	var out []clients.SortCriterion
	for _, spec := range raw {
		field, dir, _ := strings.Cut(spec, ":")
		if _, ok := clients.LookupField(field); !ok {
			if hint, ok := clients.SuggestField(field); ok {
				return nil, fmt.Errorf("unknown sort field %q (did you mean %q?)", field, hint)
			}
			return nil, fmt.Errorf("unknown sort field %q", field)
		}
		d, err := clients.ParseDirection(dir)
		if err != nil {
			return nil, err
		}
		out = append(out, clients.SortCriterion{Field: field, Direction: d})
	}
	return out, nil
}

func applyFacets(s *view.Session, statuses, types []string) error {
	if len(statuses) == 0 && len(types) == 0 {
		return nil
	}
	s.ClearFilters()
	for _, raw := range statuses {
		facet := clients.StatusFacet(strings.ToLower(raw))
		if facet != clients.FacetActive && facet != clients.FacetInactive {
			return fmt.Errorf("unknown status facet %q", raw)
		}
		if !statusOn(s.Filters().State(), facet) {
			s.ToggleStatus(facet)
		}
	}
	for _, raw := range types {
		facet := clients.TypeFacet(strings.ToLower(raw))
		if facet != clients.FacetIndividual && facet != clients.FacetCompany {
			return fmt.Errorf("unknown type facet %q", raw)
		}
		if !typeOn(s.Filters().State(), facet) {
			s.ToggleType(facet)
		}
	}
	return nil
}

func statusOn(st clients.FilterState, f clients.StatusFacet) bool {
	if f == clients.FacetActive {
		return st.Status.Active
	}
	return st.Status.Inactive
}

func typeOn(st clients.FilterState, f clients.TypeFacet) bool {
	if f == clients.FacetIndividual {
		return st.Type.Individual
	}
	return st.Type.Company
}

// snapshot copies the persisted criteria into memory so one-off flags do
// not overwrite them.
func snapshot(ctx context.Context, from criteria.Storage) criteria.Storage {
	mem := criteria.NewMemoryStorage()
	for _, k := range []string{criteria.SortStorageKey, criteria.FilterStorageKey} {
		if v, ok, err := from.Get(ctx, k); err == nil && ok {
			_ = mem.Set(ctx, k, v)
		}
	}
	return mem
}

var headerStyle = lipgloss.NewStyle().Bold(true)

func writePage(w io.Writer, p clients.Page, tz *time.Location, layout string) {
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-10s  %-26s  %-10s  %-30s  %-8s  %-10s  %-10s  %s",
		"ID", "NAME", "TYPE", "EMAIL", "STATUS", "CREATED", "UPDATED", "UPDATED BY")))
	if len(p.Records) == 0 {
		fmt.Fprintln(w, "No clients found.")
	}
	for _, c := range p.Records {
		fmt.Fprintf(w, "%-10s  %-26s  %-10s  %-30s  %-8s  %-10s  %-10s  %s\n",
			c.ID, c.Name, c.Type, c.Email, c.Status,
			c.CreatedAt.In(tz).Format(layout), c.UpdatedAt.In(tz).Format(layout), c.UpdatedBy)
	}
	fmt.Fprintf(w, "\nPage %d of %d (%d clients)\n", p.PageIndex+1, p.PageCount, p.Total)
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Upsert clients from a YAML file",
		ArgsUsage: "<file.yaml>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("import: missing file argument")
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			svc := &service.ImportService{Clients: repository.NewClientRepo(e.db), Logger: e.logger}
			res, err := svc.ImportYAML(ctx, f)
			if err != nil {
				return err
			}
			w := cmd.Root().Writer
			fmt.Fprintf(w, "imported %d, skipped %d\n", res.Imported, res.Skipped)
			for _, err := range res.Errors {
				fmt.Fprintf(w, "  %v\n", err)
			}
			return nil
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Write sample clients",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "count", Usage: "number of clients", Value: 25},
			&cli.IntFlag{Name: "seed", Usage: "random seed", Value: 1},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			n := int(cmd.Int("count"))
			if err := testdata.Seed(ctx, repository.NewClientRepo(e.db), n, time.Now(), uint64(cmd.Int("seed"))); err != nil {
				return err
			}
			fmt.Fprintf(cmd.Root().Writer, "seeded %d clients\n", n)
			return nil
		},
	}
}

func resetCommand() *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Delete all clients and saved sort/filter selections",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			if err := (&service.MaintenanceService{DB: e.db}).Reset(ctx); err != nil {
				return err
			}
			if storage, err := e.storage(); err == nil {
				for _, k := range []string{criteria.SortStorageKey, criteria.FilterStorageKey} {
					_ = storage.Delete(ctx, k)
				}
			}
			fmt.Fprintln(cmd.Root().Writer, "reset complete")
			return nil
		},
	}
}
