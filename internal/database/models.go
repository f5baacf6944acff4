package database

import "time"

// CapacityTransaction mirrors the ERP's cargo capacity transaction table.
// One row per flight departure with the weight and volume figures reported
// after close-out.
type CapacityTransaction struct {
	FltNo          string    `gorm:"column:flt_no"`
	FltDate        time.Time `gorm:"column:flt_date"`
	Origin         string    `gorm:"column:origin"`
	Destination    string    `gorm:"column:destination"`
	ReportWeight   float64   `gorm:"column:report_weight"`
	ReportVolume   float64   `gorm:"column:report_volume"`
	DepartedWeight *float64  `gorm:"column:departed_weight"`
	Underload      *float64  `gorm:"column:underload"`
}

// TableName implements the gorm table name interface
func (CapacityTransaction) TableName() string {
	return "capacity_transactions"
}

// ForecastRow is the joined projection of a route schedule forecast and
// its passenger forecast counterpart. Weight/volume figures here are still
// raw; the fetcher derives the reportable cargo numbers.
type ForecastRow struct {
	FltNo          string    `gorm:"column:flt_no"`
	DepartureDate  time.Time `gorm:"column:departure_date"`
	Origin         string    `gorm:"column:origin"`
	Destination    string    `gorm:"column:destination"`
	DepartedWeight *float64  `gorm:"column:departed_weight"`
	Underload      *float64  `gorm:"column:underload"`
	HoldVolume     float64   `gorm:"column:hold_volume"`
	ExpectedPax    float64   `gorm:"column:expected_pax"`
}
