package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"github.com/teranos/synbench/errors"
)

// Result is the measurement of one strategy
type Result struct {
	Strategy   string
	Elapsed    time.Duration // summed over timed passes only
	Iterations int           // timed passes completed
	Elements   int           // structs per pass
	Failures   int           // failed Generate calls over all timed passes
}

// Ops returns the number of timed Generate calls
func (r Result) Ops() int {
	return r.Iterations * r.Elements
}

// PerOp returns the mean time of one Generate call
func (r Result) PerOp() time.Duration {
	if r.Ops() == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Ops())
}

// OpsPerSecond returns the generation throughput
func (r Result) OpsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Ops()) / r.Elapsed.Seconds()
}

type resultJSON struct {
	Strategy     string  `json:"strategy"`
	ElapsedNS    int64   `json:"elapsed_ns"`
	Iterations   int     `json:"iterations"`
	Elements     int     `json:"elements"`
	Failures     int     `json:"failures"`
	PerOpNS      int64   `json:"per_op_ns"`
	OpsPerSecond float64 `json:"ops_per_second"`
}

// MarshalJSON includes the derived figures
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		Strategy:     r.Strategy,
		ElapsedNS:    r.Elapsed.Nanoseconds(),
		Iterations:   r.Iterations,
		Elements:     r.Elements,
		Failures:     r.Failures,
		PerOpNS:      r.PerOp().Nanoseconds(),
		OpsPerSecond: r.OpsPerSecond(),
	})
}

// UnmarshalJSON reads the stored figures back; derived ones are recomputed
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Result{
		Strategy:   raw.Strategy,
		Elapsed:    time.Duration(raw.ElapsedNS),
		Iterations: raw.Iterations,
		Elements:   raw.Elements,
		Failures:   raw.Failures,
	}
	return nil
}

// Report is the outcome of one benchmark run
type Report struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	Host       Host      `json:"host"`
	Workload   int       `json:"workload"`
	Iterations int       `json:"iterations"`
	Warmup     int       `json:"warmup"`
	Results    []Result  `json:"results"`
}

// Result returns the result of one strategy
func (r *Report) Result(strategy string) (Result, bool) {
	for _, res := range r.Results {
		if res.Strategy == strategy {
			return res, true
		}
	}
	return Result{}, false
}

// Fastest returns the strategy with the highest throughput
func (r *Report) Fastest() (Result, bool) {
	var best Result
	found := false
	for _, res := range r.Results {
		if !found || res.OpsPerSecond() > best.OpsPerSecond() {
			best, found = res, true
		}
	}
	return best, found
}

// TableData returns the rows of the results table, header first. The
// relative column compares each strategy's per-op time to the fastest.
func (r *Report) TableData() [][]string {
	data := [][]string{{"Strategy", "Elapsed", "Iterations", "Elements", "Per op", "Ops/s", "Failures", "Relative"}}

	fastest, _ := r.Fastest()
	for _, res := range r.Results {
		relative := "-"
		if fastest.PerOp() > 0 {
			relative = fmt.Sprintf("%.2fx", float64(res.PerOp())/float64(fastest.PerOp()))
		}
		data = append(data, []string{
			res.Strategy,
			res.Elapsed.Round(time.Microsecond).String(),
			strconv.Itoa(res.Iterations),
			strconv.Itoa(res.Elements),
			res.PerOp().String(),
			strconv.FormatFloat(res.OpsPerSecond(), 'f', 0, 64),
			strconv.Itoa(res.Failures),
			relative,
		})
	}
	return data
}

// RenderTable writes the results as a pterm table preceded by a one-line
// run summary.
func (r *Report) RenderTable(w io.Writer) error {
	table, err := pterm.DefaultTable.WithHasHeader().WithData(r.TableData()).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render results table")
	}

	cpus := "?"
	if r.Host.LogicalCPUs > 0 {
		cpus = strconv.Itoa(r.Host.LogicalCPUs)
	}
	if _, err := fmt.Fprintf(w, "%s  %d structs, %d iterations, %d warmup  %s/%s %s cpus\n\n",
		pterm.Gray(r.RunID), r.Workload, r.Iterations, r.Warmup, r.Host.OS, r.Host.Arch, cpus); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, table)
	return err
}

// WriteJSON writes the report as indented JSON
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
