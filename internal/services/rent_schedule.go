package services

import (
	"renteasy/internal/core"
	"renteasy/internal/report"
)

// ChargeSchedule decides when recurring charges fall due within a period.
type ChargeSchedule interface {
	Dates(p report.Period) []core.Date
}

// MonthlySchedule charges once a month on Day, clamped to the month's last
// day.
type MonthlySchedule struct {
	Day int
}

func (m MonthlySchedule) Dates(p report.Period) []core.Date {
	var out []core.Date
	month := report.MonthOf(p.Start)
	for !month.Start.After(p.End) {
		day := m.Day
		if last := month.End.Day(); day > last {
			day = last
		}
		if day < 1 {
			day = 1
		}
		d := core.NewDate(month.Start.Year(), month.Start.Month(), day)
		if p.Contains(d) {
			out = append(out, d)
		}
		month = report.MonthOf(core.DateOf(month.End.AddDate(0, 0, 1)))
	}
	return out
}

// RentDescription labels a rent charge, e.g. "Rent - January".
func RentDescription(d core.Date) string {
	return "Rent - " + d.Format("January")
}
