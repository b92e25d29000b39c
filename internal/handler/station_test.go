package handler

import (
	"testing"
	"time"

	"gomvg/internal/mvg"
)

func strp(s string) *string   { return &s }
func intp(n int) *int         { return &n }
func i64p(n int64) *int64     { return &n }
func boolp(b bool) *bool      { return &b }
func f64p(f float64) *float64 { return &f }

func TestDepartureView_RealtimeWins(t *testing.T) {
	now := time.UnixMilli(1708433280000).UTC() // 14:08
	d := mvg.Departure{
		TransportType:         "SBAHN",
		Label:                 strp("S6"),
		Destination:           strp("Ebersberg"),
		PlannedDepartureTime:  i64p(1708433340000), // 14:09
		RealtimeDepartureTime: i64p(1708433460000), // 14:11
		DelayInMinutes:        intp(2),
		Platform:              intp(1),
	}

	v := departureView(d, now)
	if v.Time != "14:11" {
		t.Errorf("Time = %q, want 14:11 (realtime estimate)", v.Time)
	}
	if v.Minutes != "in 3 min" {
		t.Errorf("Minutes = %q, want \"in 3 min\"", v.Minutes)
	}
	if v.Delay != "+2" {
		t.Errorf("Delay = %q, want +2", v.Delay)
	}
	if v.Platform != "1" {
		t.Errorf("Platform = %q, want 1", v.Platform)
	}
	if v.TransportType != "S-Bahn" {
		t.Errorf("TransportType = %q, want S-Bahn", v.TransportType)
	}
	if v.Cancelled {
		t.Error("Cancelled should be false")
	}
}

func TestDepartureView_ScheduleOnly(t *testing.T) {
	now := time.UnixMilli(1708433280000).UTC()
	d := mvg.Departure{
		TransportType:        "BUS",
		Label:                strp("975"),
		Destination:          strp("Percha"),
		PlannedDepartureTime: i64p(1708433340000), // 14:09, one minute out
	}

	v := departureView(d, now)
	if v.Time != "14:09" {
		t.Errorf("Time = %q, want the planned time when no realtime estimate exists", v.Time)
	}
	if v.Delay != "" {
		t.Errorf("Delay = %q, want empty without realtime data", v.Delay)
	}
	if v.Platform != "" {
		t.Errorf("Platform = %q, want empty when absent", v.Platform)
	}
}

func TestDepartureView_DepartingNow(t *testing.T) {
	now := time.UnixMilli(1708433340000).UTC()
	d := mvg.Departure{
		TransportType:        "UBAHN",
		PlannedDepartureTime: i64p(1708433340000),
	}

	if v := departureView(d, now); v.Minutes != "now" {
		t.Errorf("Minutes = %q, want \"now\" at departure time", v.Minutes)
	}
}

func TestDepartureView_Cancelled(t *testing.T) {
	d := mvg.Departure{
		TransportType:        "TRAM",
		Cancelled:            boolp(true),
		PlannedDepartureTime: i64p(1708433340000),
	}

	if v := departureView(d, time.Now()); !v.Cancelled {
		t.Error("Cancelled should carry through to the view")
	}
}

func TestDepartureView_NoTimesAtAll(t *testing.T) {
	v := departureView(mvg.Departure{TransportType: "BUS"}, time.Now())
	if v.Time != "" || v.Minutes != "" {
		t.Errorf("Time = %q, Minutes = %q, want both empty without any departure time", v.Time, v.Minutes)
	}
}

func TestTransportName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"UBAHN", "U-Bahn"},
		{"SBAHN", "S-Bahn"},
		{"TRAM", "Tram"},
		{"BUS", "Bus"},
		{"REGIONAL_BUS", "Bus"},
		{"SEV", "SEV"}, // unknown types pass through
	}
	for _, tt := range tests {
		if got := transportName(tt.in); got != tt.want {
			t.Errorf("transportName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
