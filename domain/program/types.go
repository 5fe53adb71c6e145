package program

import (
	"time"
)

// Source column names. These are an external contract with the workbook:
// loading fails if any of them is missing from the header row.
const (
	ColProjectCompleted = "Project Completed"
	ColIncentiveProgram = "Incentive Program"
	ColEquipmentType    = "Equipment Type"
	ColOldEquipmentMake = "Old Equipment Make"
	ColNewEquipmentMake = "New Equipment Make"
	ColIncentiveAmount  = "Incentive Amount"
)

// Columns is the fixed column order used by the table view and both exports.
var Columns = []string{
	ColProjectCompleted,
	ColIncentiveProgram,
	ColEquipmentType,
	ColOldEquipmentMake,
	ColNewEquipmentMake,
	ColIncentiveAmount,
}

// Record is one equipment-incentive transaction row. Categorical fields use
// "" for null; date and amount use nil. Values are coerced once at load time
// and never re-parsed downstream.
type Record struct {
	ProjectCompleted *time.Time `json:"project_completed"`
	IncentiveProgram string     `json:"incentive_program"`
	EquipmentType    string     `json:"equipment_type"`
	OldEquipmentMake string     `json:"old_equipment_make"`
	NewEquipmentMake string     `json:"new_equipment_make"`
	IncentiveAmount  *float64   `json:"incentive_amount"`
}

// Table is an ordered sequence of records sharing the fixed schema. It is
// immutable after load; the filter engine and aggregators only read it.
type Table []Record

// FilterState holds one session's current filter selections.
//
// Convention: an empty categorical selection means "match all" (the sidebar
// with nothing ticked applies no restriction). A nil interval bound leaves
// that side unrestricted, so the zero FilterState is the identity filter.
type FilterState struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`

	Programs       []string `json:"programs,omitempty"`
	EquipmentTypes []string `json:"equipment_types,omitempty"`
	OldMakes       []string `json:"old_makes,omitempty"`
	NewMakes       []string `json:"new_makes,omitempty"`

	MinAmount *float64 `json:"min_amount,omitempty"`
	MaxAmount *float64 `json:"max_amount,omitempty"`
}

// KPI holds the three headline metrics for the current filtered subset.
type KPI struct {
	Projects         int     `json:"projects"`
	TotalIncentive   float64 `json:"total_incentive"`
	AverageIncentive float64 `json:"average_incentive"`
}

// YearTotal is one bar of the total-incentive-by-year chart.
type YearTotal struct {
	Year           int     `json:"year"`
	TotalIncentive float64 `json:"total_incentive"`
}

// TypeTotal is one bar of the total-incentive-by-equipment-type chart.
type TypeTotal struct {
	EquipmentType  string  `json:"equipment_type"`
	TotalIncentive float64 `json:"total_incentive"`
}

// MakeCount is one bar of the top-new-equipment-makes chart.
type MakeCount struct {
	Make  string `json:"make"`
	Count int    `json:"count"`
}

// BoxStats summarizes one program's incentive distribution for box-plot
// rendering.
type BoxStats struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// ProgramDistribution carries all incentive amounts observed for one program,
// plus their box stats. Amounts are kept un-reduced so the chart layer can
// render whiskers and outliers however it likes.
type ProgramDistribution struct {
	Program string    `json:"program"`
	Amounts []float64 `json:"amounts"`
	Stats   BoxStats  `json:"stats"`
}

// FacetOptions holds everything the sidebar needs to build its widgets:
// distinct values per categorical column and the full data ranges.
type FacetOptions struct {
	Programs       []string   `json:"programs"`
	EquipmentTypes []string   `json:"equipment_types"`
	OldMakes       []string   `json:"old_makes"`
	NewMakes       []string   `json:"new_makes"`
	DateMin        *time.Time `json:"date_min,omitempty"`
	DateMax        *time.Time `json:"date_max,omitempty"`
	AmountMin      *float64   `json:"amount_min,omitempty"`
	AmountMax      *float64   `json:"amount_max,omitempty"`
}
