package program

import (
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// All aggregators below are total functions over possibly-empty tables:
// an empty input yields zero KPIs or empty slices, never an error.

// KPIs computes the headline metrics. The average is taken over rows with a
// non-null amount and defined as 0 when there are none.
func KPIs(table Table) KPI {
	kpi := KPI{Projects: len(table)}
	amounts := 0
	for _, rec := range table {
		if rec.IncentiveAmount != nil {
			kpi.TotalIncentive += *rec.IncentiveAmount
			amounts++
		}
	}
	if amounts > 0 {
		kpi.AverageIncentive = kpi.TotalIncentive / float64(amounts)
	}
	return kpi
}

// ByYear groups by the calendar year of the completion date and sums
// incentive amounts, ascending by year. Rows without a date are skipped.
func ByYear(table Table) []YearTotal {
	totals := make(map[int]float64)
	for _, rec := range table {
		if rec.ProjectCompleted == nil {
			continue
		}
		totals[rec.ProjectCompleted.Year()] += amountOrZero(rec)
	}

	out := make([]YearTotal, 0, len(totals))
	for year, total := range totals {
		out = append(out, YearTotal{Year: year, TotalIncentive: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// ByEquipmentType groups and sums incentive amounts per equipment type,
// descending by total with ties broken by label ascending so the chart
// order is deterministic. Rows without a type are skipped.
func ByEquipmentType(table Table) []TypeTotal {
	totals := make(map[string]float64)
	for _, rec := range table {
		if rec.EquipmentType == "" {
			continue
		}
		totals[rec.EquipmentType] += amountOrZero(rec)
	}

	out := make([]TypeTotal, 0, len(totals))
	for typ, total := range totals {
		out = append(out, TypeTotal{EquipmentType: typ, TotalIncentive: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalIncentive != out[j].TotalIncentive {
			return out[i].TotalIncentive > out[j].TotalIncentive
		}
		return out[i].EquipmentType < out[j].EquipmentType
	})
	return out
}

// TopNewEquipmentMakes counts rows per new-equipment make and returns the
// top n, descending by count with ties broken by label ascending. Rows
// without a make are skipped.
func TopNewEquipmentMakes(table Table, n int) []MakeCount {
	if n <= 0 {
		return []MakeCount{}
	}

	counts := make(map[string]int)
	for _, rec := range table {
		if rec.NewEquipmentMake == "" {
			continue
		}
		counts[rec.NewEquipmentMake]++
	}

	out := make([]MakeCount, 0, len(counts))
	for mk, count := range counts {
		out = append(out, MakeCount{Make: mk, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Make < out[j].Make
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// IncentiveDistributionByProgram groups all non-null incentive amounts per
// program, label ascending, keeping every value for distribution rendering.
func IncentiveDistributionByProgram(table Table) []ProgramDistribution {
	groups := make(map[string][]float64)
	for _, rec := range table {
		if rec.IncentiveProgram == "" || rec.IncentiveAmount == nil {
			continue
		}
		groups[rec.IncentiveProgram] = append(groups[rec.IncentiveProgram], *rec.IncentiveAmount)
	}

	out := make([]ProgramDistribution, 0, len(groups))
	for prog, amounts := range groups {
		out = append(out, ProgramDistribution{
			Program: prog,
			Amounts: amounts,
			Stats:   boxStats(amounts),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Program < out[j].Program })
	return out
}

// boxStats computes the five-number summary plus mean/stddev for one group.
func boxStats(amounts []float64) BoxStats {
	if len(amounts) == 0 {
		return BoxStats{}
	}

	bs := BoxStats{Mean: stat.Mean(amounts, nil)}
	if len(amounts) > 1 {
		bs.StdDev = stat.StdDev(amounts, nil)
	}

	// montanaflynn errors only on empty input, which is excluded above.
	bs.Min, _ = stats.Min(amounts)
	bs.Max, _ = stats.Max(amounts)
	bs.Median, _ = stats.Median(amounts)
	bs.Q1, _ = stats.Percentile(amounts, 25)
	bs.Q3, _ = stats.Percentile(amounts, 75)
	return bs
}

// Facets derives the sidebar inventory for a table: sorted distinct values
// per categorical column plus the observed date and amount ranges. The
// amount range is floored/ceiled to whole units for the range slider.
func Facets(table Table) FacetOptions {
	opts := FacetOptions{
		Programs:       distinctSorted(table, func(r Record) string { return r.IncentiveProgram }),
		EquipmentTypes: distinctSorted(table, func(r Record) string { return r.EquipmentType }),
		OldMakes:       distinctSorted(table, func(r Record) string { return r.OldEquipmentMake }),
		NewMakes:       distinctSorted(table, func(r Record) string { return r.NewEquipmentMake }),
	}

	for _, rec := range table {
		if d := rec.ProjectCompleted; d != nil {
			if opts.DateMin == nil || d.Before(*opts.DateMin) {
				opts.DateMin = copyTime(*d)
			}
			if opts.DateMax == nil || d.After(*opts.DateMax) {
				opts.DateMax = copyTime(*d)
			}
		}
		if a := rec.IncentiveAmount; a != nil {
			if opts.AmountMin == nil || *a < *opts.AmountMin {
				opts.AmountMin = copyFloat(*a)
			}
			if opts.AmountMax == nil || *a > *opts.AmountMax {
				opts.AmountMax = copyFloat(*a)
			}
		}
	}

	if opts.AmountMin != nil {
		opts.AmountMin = copyFloat(math.Floor(*opts.AmountMin))
	}
	if opts.AmountMax != nil {
		opts.AmountMax = copyFloat(math.Ceil(*opts.AmountMax))
	}
	return opts
}

func distinctSorted(table Table, get func(Record) string) []string {
	seen := make(map[string]bool)
	for _, rec := range table {
		if v := get(rec); v != "" {
			seen[v] = true
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func amountOrZero(rec Record) float64 {
	if rec.IncentiveAmount == nil {
		return 0
	}
	return *rec.IncentiveAmount
}

func copyTime(t time.Time) *time.Time { return &t }

func copyFloat(f float64) *float64 { return &f }
