package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/bincc/bincc/internal/logging"
)

const topN = 5

type Summary struct {
	Total        int            `json:"total"`
	Identified   int            `json:"identified"`
	Unsupported  int            `json:"unsupported"`
	LuhnFailures int            `json:"luhn_failures"`
	CVVChecks    int            `json:"cvv_checks"`
	CVVFailures  int            `json:"cvv_failures"`
	Start        time.Time      `json:"start"`
	End          time.Time      `json:"end"`
	Brands       []CountItem    `json:"brands"`
	TopBINs      []CountItem    `json:"top_bins"`
	Verdicts     []CountItem    `json:"verdicts"`
	Latency      LatencySummary `json:"latency"`
}

type CountItem struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// LatencySummary holds lookup duration percentiles in microseconds.
type LatencySummary struct {
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

type Reader struct {
	Since time.Time
}

func (r *Reader) Read(path string) ([]logging.Lookup, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return r.Decode(file)
}

// Decode parses JSONL lookup records from rd, skipping blank lines and
// records older than r.Since.
func (r *Reader) Decode(rd io.Reader) ([]logging.Lookup, error) {
	var lookups []logging.Lookup
	scanner := bufio.NewScanner(rd)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var l logging.Lookup
		if err := json.Unmarshal([]byte(text), &l); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if !r.Since.IsZero() && l.Timestamp.Before(r.Since) {
			continue
		}
		lookups = append(lookups, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lookups, nil
}

func Summarize(lookups []logging.Lookup) Summary {
	var summary Summary
	if len(lookups) == 0 {
		return summary
	}

	summary.Start = lookups[0].Timestamp
	summary.End = lookups[0].Timestamp

	brandCounts := map[string]int{}
	binCounts := map[string]int{}
	verdictCounts := map[string]int{}
	latencies := make([]int64, 0, len(lookups))

	for _, l := range lookups {
		summary.Total++
		if l.Timestamp.Before(summary.Start) {
			summary.Start = l.Timestamp
		}
		if l.Timestamp.After(summary.End) {
			summary.End = l.Timestamp
		}

		if l.Operation == logging.OpCVV {
			summary.CVVChecks++
			if l.CVVValid != nil && !*l.CVVValid {
				summary.CVVFailures++
			}
		} else if l.Supported {
			summary.Identified++
			brandCounts[l.Brand]++
		} else {
			summary.Unsupported++
		}

		if l.Luhn != nil && !*l.Luhn {
			summary.LuhnFailures++
		}
		if l.BIN != "" {
			binCounts[l.BIN]++
		}
		if l.Verdict != "" {
			verdictCounts[l.Verdict]++
		}

		latencies = append(latencies, l.DurationUS)
	}

	summary.Brands = topCounts(brandCounts, len(brandCounts))
	summary.TopBINs = topCounts(binCounts, topN)
	summary.Verdicts = topCounts(verdictCounts, len(verdictCounts))
	summary.Latency = latencySummary(latencies)

	return summary
}

func topCounts(counts map[string]int, n int) []CountItem {
	items := make([]CountItem, 0, len(counts))
	for key, count := range counts {
		items = append(items, CountItem{Key: key, Count: count})
	}
	if len(items) == 0 {
		return nil
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Key < items[j].Key
		}
		return items[i].Count > items[j].Count
	})

	if len(items) > n {
		items = items[:n]
	}
	return items
}

func latencySummary(values []int64) LatencySummary {
	if len(values) == 0 {
		return LatencySummary{}
	}
	sorted := make([]int64, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return LatencySummary{
		P50: percentile(sorted, 0.50),
		P95: percentile(sorted, 0.95),
		P99: percentile(sorted, 0.99),
	}
}

func percentile(values []int64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	idx := int(float64(len(values)-1) * p)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(values) {
		idx = len(values) - 1
	}
	return float64(values[idx])
}

func RenderText(summary Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total: %d\n", summary.Total)
	fmt.Fprintf(&b, "Identified: %d\n", summary.Identified)
	fmt.Fprintf(&b, "Unsupported: %d\n", summary.Unsupported)
	fmt.Fprintf(&b, "Luhn failures: %d\n", summary.LuhnFailures)
	fmt.Fprintf(&b, "CVV checks/failures: %d/%d\n", summary.CVVChecks, summary.CVVFailures)
	fmt.Fprintf(&b, "Latency p50/p95/p99 (us): %.0f/%.0f/%.0f\n", summary.Latency.P50, summary.Latency.P95, summary.Latency.P99)

	writeCounts(&b, "Brands", summary.Brands)
	writeCounts(&b, "Top BINs", summary.TopBINs)
	writeCounts(&b, "Verdicts", summary.Verdicts)

	return b.String()
}

func RenderMarkdown(summary Summary) string {
	var b strings.Builder
	b.WriteString("# bincc Lookup Report\n\n")
	b.WriteString("## Totals\n\n")
	fmt.Fprintf(&b, "- Total: %d\n", summary.Total)
	fmt.Fprintf(&b, "- Identified: %d\n", summary.Identified)
	fmt.Fprintf(&b, "- Unsupported: %d\n", summary.Unsupported)
	fmt.Fprintf(&b, "- Luhn failures: %d\n", summary.LuhnFailures)
	fmt.Fprintf(&b, "- CVV checks/failures: %d/%d\n", summary.CVVChecks, summary.CVVFailures)
	fmt.Fprintf(&b, "- Latency p50/p95/p99 (us): %.0f/%.0f/%.0f\n\n", summary.Latency.P50, summary.Latency.P95, summary.Latency.P99)

	writeCountsMarkdown(&b, "Brands", summary.Brands)
	writeCountsMarkdown(&b, "Top BINs", summary.TopBINs)
	writeCountsMarkdown(&b, "Verdicts", summary.Verdicts)

	return b.String()
}

func RenderJSON(summary Summary) ([]byte, error) {
	return json.MarshalIndent(summary, "", "  ")
}

func writeCounts(b *strings.Builder, title string, items []CountItem) {
	if len(items) == 0 {
		fmt.Fprintf(b, "%s: none\n", title)
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s: %d\n", item.Key, item.Count)
	}
}

func writeCountsMarkdown(b *strings.Builder, title string, items []CountItem) {
	b.WriteString("## ")
	b.WriteString(title)
	b.WriteString("\n\n")
	if len(items) == 0 {
		b.WriteString("- none\n\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s: %d\n", item.Key, item.Count)
	}
	b.WriteString("\n")
}

// WriteOutput writes content to path, or to w when path is empty.
func WriteOutput(w io.Writer, path string, content []byte) error {
	if path == "" {
		_, err := w.Write(content)
		return err
	}
	return os.WriteFile(path, content, 0o600)
}
