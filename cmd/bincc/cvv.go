package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bincc/bincc/internal/logging"
)

func newCVVCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cvv <cvv> <brand>",
		Short: "Check a CVV against a brand's format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cvv, brand := args[0], args[1]
			return a.run(cmd.ErrOrStderr(), func() error {
				start := time.Now()
				valid := a.engine.ValidateCVV(cvv, brand)
				_, known := a.engine.BrandInfo(brand)
				a.record(logging.Lookup{
					Operation: logging.OpCVV,
					Brand:     brand,
					Supported: known,
					CVVValid:  boolPtr(valid),
				}, start)

				s := newStyles(a.colorEnabled(cmd.OutOrStdout()))
				switch {
				case !known:
					_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: unknown brand %q\n", s.fail.Sprint("invalid"), brand)
					return err
				case valid:
					_, err := fmt.Fprintln(cmd.OutOrStdout(), s.ok.Sprint("valid"))
					return err
				default:
					_, err := fmt.Fprintln(cmd.OutOrStdout(), s.fail.Sprint("invalid"))
					return err
				}
			})
		},
	}
}
