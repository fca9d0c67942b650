package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bincc/bincc/internal/logging"
	"github.com/bincc/bincc/internal/normalize"
	"github.com/bincc/bincc/internal/policy"
	"github.com/bincc/bincc/internal/rules"
)

type batchResult struct {
	Line   int           `json:"line"`
	Number string        `json:"number"`
	Brand  string        `json:"brand,omitempty"`
	Luhn   bool          `json:"luhn"`
	Action policy.Action `json:"action"`
}

func newBatchCmd(a *app) *cobra.Command {
	var inputPath string
	var workers int
	var asJSON bool
	var failOnReject bool

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Check a list of card numbers concurrently",
		Long:  "Check card numbers read one per line from --in or stdin. Results keep input order.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if inputPath != "" && inputPath != "-" {
				file, err := os.Open(inputPath)
				if err != nil {
					return err
				}
				defer file.Close()
				in = file
			}
			lines, err := readLines(in)
			if err != nil {
				return err
			}

			return a.run(cmd.ErrOrStderr(), func() error {
				n := workers
				if n <= 0 {
					n = a.cfg.Batch.Workers
				}
				results, err := a.batch(cmd, lines, n)
				if err != nil {
					return err
				}

				if asJSON {
					encoder := json.NewEncoder(cmd.OutOrStdout())
					encoder.SetIndent("", "  ")
					if err := encoder.Encode(results); err != nil {
						return err
					}
				} else if err := writeBatchText(a, cmd.OutOrStdout(), results); err != nil {
					return err
				}

				if failOnReject {
					for _, r := range results {
						if r.Action != policy.ActionAccept {
							return errors.New("batch contains rejected or unsupported numbers")
						}
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&inputPath, "in", "", "Input file, one number per line (default stdin)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent workers (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.Flags().BoolVar(&failOnReject, "fail-on-reject", false, "Exit non-zero if any number is not accepted")

	return cmd
}

// batch evaluates lines on up to workers goroutines. Each worker writes only
// its own slot, so results come back in input order.
func (a *app) batch(cmd *cobra.Command, lines []string, workers int) ([]batchResult, error) {
	results := make([]batchResult, len(lines))
	requireLuhn := a.cfg.Batch.RequireLuhn

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)
	for i, line := range lines {
		if ctx.Err() != nil {
			break
		}
		i, line := i, line
		g.Go(func() error {
			start := time.Now()
			number := normalize.Number(line)
			v := policy.Evaluate(a.engine, number, requireLuhn)
			results[i] = batchResult{
				Line:   i + 1,
				Number: mask(number),
				Brand:  v.Brand,
				Luhn:   v.Luhn,
				Action: v.Action,
			}
			a.record(logging.Lookup{
				Operation: logging.OpIdentify,
				BIN:       rules.BINOf(number),
				Length:    len(number),
				Brand:     v.Brand,
				Supported: v.Brand != "",
				Luhn:      boolPtr(v.Luhn),
				Verdict:   string(v.Action),
			}, start)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	a.logger.Debug("batch finished", "numbers", len(lines), "workers", workers)
	return results, nil
}

func writeBatchText(a *app, w io.Writer, results []batchResult) error {
	s := newStyles(a.colorEnabled(w))
	counts := map[policy.Action]int{}
	for _, r := range results {
		counts[r.Action]++
		action := s.ok.Sprint(r.Action)
		if r.Action != policy.ActionAccept {
			action = s.fail.Sprint(r.Action)
		}
		brand := r.Brand
		if brand == "" {
			brand = "-"
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.Line, r.Number, s.brand.Sprint(brand), action); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, s.muted.Sprintf("accepted=%d rejected=%d unsupported=%d",
		counts[policy.ActionAccept], counts[policy.ActionReject], counts[policy.ActionUnsupported]))
	return err
}
