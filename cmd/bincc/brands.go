package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bincc/bincc/internal/rules"
)

type brandView struct {
	Scheme    string   `json:"scheme"`
	Brand     string   `json:"brand"`
	Type      string   `json:"type"`
	Lengths   []int    `json:"lengths"`
	CVVLength int      `json:"cvvLength"`
	Luhn      bool     `json:"luhn"`
	Countries []string `json:"countries,omitempty"`
	Bin       string   `json:"bin"`
	Full      string   `json:"full"`
	CVV       string   `json:"cvv"`
}

func viewOf(b rules.Brand) brandView {
	return brandView{
		Scheme:    b.ID,
		Brand:     b.DisplayName,
		Type:      string(b.Type),
		Lengths:   b.NumberLengths,
		CVVLength: b.CVVLength,
		Luhn:      b.Luhn,
		Countries: b.Countries,
		Bin:       b.BinPattern,
		Full:      b.FullPattern,
		CVV:       b.CVVPattern,
	}
}

func newBrandsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "brands",
		Short: "List brands in matching order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.ErrOrStderr(), func() error {
				ids := a.engine.ListBrands()
				views := make([]brandView, 0, len(ids))
				for _, id := range ids {
					b, _ := a.engine.BrandInfo(id)
					views = append(views, viewOf(b))
				}

				if asJSON {
					encoder := json.NewEncoder(cmd.OutOrStdout())
					encoder.SetIndent("", "  ")
					return encoder.Encode(views)
				}

				// Escape codes would skew tabwriter column widths, so the table stays plain.
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "SCHEME\tBRAND\tTYPE\tLENGTHS\tCVV\tLUHN")
				for _, v := range views {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%v\n",
						v.Scheme, v.Brand, v.Type, joinInts(v.Lengths), v.CVVLength, v.Luhn)
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print brands as JSON")

	return cmd
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",")
}
