package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/inbox/pkg/query"
)

// ViewOptions captures the selector, filter, search, and sort flags shared
// by the get and print commands.
type ViewOptions struct {
	Selector     string
	FilterFrom   string
	FilterTxt    string
	FilterDetail string
	FilterSvc    string
	FilterDate   string
	Search       string
	SearchFields []string
	SortColumn   string
	SortDir      string
}

func AddViewArgs(cmd *cobra.Command, o *ViewOptions) {
	cmd.Flags().StringVarP(&o.Selector, "select", "s", "main",
		`View selector: main, instance, classed, optionally "-<folderID>", example: instance-URGENT.`)
	cmd.Flags().StringVar(&o.FilterFrom, "from", "", "Filter on sender; * matches any substring.")
	cmd.Flags().StringVar(&o.FilterTxt, "txt", "", "Filter on reference code; * matches any substring.")
	cmd.Flags().StringVar(&o.FilterDetail, "details", "", "Filter on details; * matches any substring.")
	cmd.Flags().StringVar(&o.FilterSvc, "service", "", "Filter on service tag; * matches any substring.")
	cmd.Flags().StringVar(&o.FilterDate, "date", "", `Filter on calendar day, example: --date="2024-06-25".`)
	cmd.Flags().StringVarP(&o.Search, "search", "q", "", "Global free-text search.")
	cmd.Flags().StringSliceVar(&o.SearchFields, "search-fields", nil,
		"Fields the global search inspects (from, service, date, details, comments). Default: all.")
	cmd.Flags().StringVar(&o.SortColumn, "sort", "", "Sort column (from, txt, date, service, details, comments, done).")
	cmd.Flags().StringVar(&o.SortDir, "dir", "asc", "Sort direction: asc or desc.")
}

// Resolve converts the raw flag values into query engine inputs.
func (o *ViewOptions) Resolve() (query.Selector, query.Filters, string, []query.Field, query.Sort, error) {
	sel, err := query.ParseSelector(o.Selector)
	if err != nil {
		return query.Selector{}, query.Filters{}, "", nil, query.Sort{}, err
	}

	filters := query.Filters{
		From:    o.FilterFrom,
		Txt:     o.FilterTxt,
		Details: o.FilterDetail,
		Service: o.FilterSvc,
	}
	if o.FilterDate != "" {
		day, err := time.Parse(layoutISO, o.FilterDate)
		if err != nil {
			return query.Selector{}, query.Filters{}, "", nil, query.Sort{}, fmt.Errorf("bad --date: %w", err)
		}
		filters.Date = &day
	}

	fields := query.AllSearchFields
	if len(o.SearchFields) > 0 {
		fields = make([]query.Field, 0, len(o.SearchFields))
		for _, f := range o.SearchFields {
			field := query.Field(strings.ToLower(strings.TrimSpace(f)))
			if !knownSearchField(field) {
				return query.Selector{}, query.Filters{}, "", nil, query.Sort{},
					fmt.Errorf("bad --search-fields %q: want one of %s", f, legalSearchFields())
			}
			fields = append(fields, field)
		}
	}

	var srt query.Sort
	if o.SortColumn != "" {
		srt = query.Sort{Column: o.SortColumn, Direction: o.SortDir}
	}
	return sel, filters, o.Search, fields, srt, nil
}

func knownSearchField(f query.Field) bool {
	for _, k := range query.AllSearchFields {
		if f == k {
			return true
		}
	}
	return false
}

func legalSearchFields() string {
	names := make([]string, len(query.AllSearchFields))
	for i, k := range query.AllSearchFields {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
