package mvg

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"
)

// These tests hit the live MVG API and are skipped in short mode:
//
//	go test -short ./...

func integrationClient() *Client {
	return NewClient(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestIntegration_Locations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live API test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	locations, err := integrationClient().Locations(ctx, "Marienplatz")
	if err != nil {
		t.Fatalf("Locations() error: %v", err)
	}
	if len(locations) == 0 {
		t.Fatal("expected at least one location for Marienplatz")
	}

	foundStation := false
	for _, l := range locations {
		if l.Type == "STATION" && l.GlobalID != nil {
			foundStation = true
			break
		}
	}
	if !foundStation {
		t.Errorf("no station with a global id among %d results", len(locations))
	}
}

func TestIntegration_LocationsThenDepartures(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live API test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := integrationClient()
	locations, err := client.Locations(ctx, "Hauptbahnhof München")
	if err != nil {
		t.Fatalf("Locations() error: %v", err)
	}

	var globalID string
	for _, l := range locations {
		if l.Type == "STATION" && l.GlobalID != nil {
			globalID = *l.GlobalID
			break
		}
	}
	if globalID == "" {
		t.Fatal("no station found for Hauptbahnhof München")
	}

	departures, err := client.Departures(ctx, globalID)
	if err != nil {
		t.Fatalf("Departures(%s) error: %v", globalID, err)
	}
	// The central station has departures around the clock; a missing
	// label would point at a schema change upstream.
	for _, d := range departures {
		if d.Label == nil {
			t.Errorf("departure missing label: %+v", d)
		}
	}
}

func TestIntegration_StationDirectory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live API test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := integrationClient()
	ids, err := client.StationGlobalIDs(ctx)
	if err != nil {
		t.Fatalf("StationGlobalIDs() error: %v", err)
	}
	if len(ids) < 100 {
		t.Errorf("directory suspiciously small: %d ids", len(ids))
	}

	lines, err := client.Lines(ctx)
	if err != nil {
		t.Fatalf("Lines() error: %v", err)
	}
	if len(lines) == 0 {
		t.Fatal("expected at least one line")
	}
}
