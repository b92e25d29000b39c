package mvg

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(baseURL string) *Client {
	c := NewClient(slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.fibBase = baseURL
	c.zdmBase = baseURL
	return c
}

const starnbergFixture = `[
	{"type":"STATION","latitude":47.99867,"longitude":11.34015,"place":"Starnberg","name":"Starnberg Nord","globalId":"de:09188:2890","divaId":2890,"hasZoomData":true,"transportTypes":["SBAHN","BUS"],"aliases":"Bahnhof Bf. STA","tariffZones":"1|2"},
	{"type":"POI","latitude":47.999397,"longitude":11.341094,"name":"P+R Starnberg Nord"},
	{"type":"POI","latitude":47.998935,"longitude":11.340253,"name":"B+R Starnberg-Nord 02 (Hans-Zellner-Weg)"}
]`

func TestLocations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/location" {
			t.Errorf("path = %q, want /location", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "Starnberg Nord" {
			t.Errorf("query param = %q, want 'Starnberg Nord'", got)
		}
		w.Write([]byte(starnbergFixture))
	}))
	defer server.Close()

	locations, err := newTestClient(server.URL).Locations(context.Background(), "Starnberg Nord")
	if err != nil {
		t.Fatalf("Locations() error: %v", err)
	}
	if len(locations) != 3 {
		t.Fatalf("got %d locations, want 3", len(locations))
	}

	// Names come back exactly as the API sent them, in the same order
	wantNames := []string{"Starnberg Nord", "P+R Starnberg Nord", "B+R Starnberg-Nord 02 (Hans-Zellner-Weg)"}
	for i, want := range wantNames {
		if locations[i].Name == nil || *locations[i].Name != want {
			t.Errorf("locations[%d].Name = %v, want %q", i, locations[i].Name, want)
		}
	}

	// The station entry carries its full field set
	station := locations[0]
	if station.Type != "STATION" {
		t.Errorf("Type = %q, want STATION", station.Type)
	}
	if station.GlobalID == nil || *station.GlobalID != "de:09188:2890" {
		t.Errorf("GlobalID = %v, want de:09188:2890", station.GlobalID)
	}
	if station.Latitude == nil || *station.Latitude != 47.99867 {
		t.Errorf("Latitude = %v, want 47.99867", station.Latitude)
	}
	if len(station.TransportTypes) != 2 || station.TransportTypes[0] != "SBAHN" {
		t.Errorf("TransportTypes = %v, want [SBAHN BUS]", station.TransportTypes)
	}
}

func TestLocations_OptionalFieldsAbsent(t *testing.T) {
	// POIs and addresses omit most station fields; decoding must still
	// succeed and leave the missing fields nil.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"type":"ADDRESS","name":"Hans-Zellner-Weg 2"}]`))
	}))
	defer server.Close()

	locations, err := newTestClient(server.URL).Locations(context.Background(), "Hans-Zellner-Weg")
	if err != nil {
		t.Fatalf("Locations() error: %v", err)
	}
	if len(locations) != 1 {
		t.Fatalf("got %d locations, want 1", len(locations))
	}
	l := locations[0]
	if l.GlobalID != nil {
		t.Errorf("GlobalID = %v, want nil for an address", *l.GlobalID)
	}
	if l.Latitude != nil || l.Longitude != nil {
		t.Errorf("coordinates should be nil when absent, got %v/%v", l.Latitude, l.Longitude)
	}
	if l.DistanceInMeters != nil {
		t.Errorf("DistanceInMeters should be nil outside nearby search")
	}
	if l.TransportTypes != nil {
		t.Errorf("TransportTypes = %v, want nil", l.TransportTypes)
	}
}

func TestNearbyLocations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/station/nearby" {
			t.Errorf("path = %q, want /station/nearby", r.URL.Path)
		}
		if got := r.URL.Query().Get("latitude"); got != "48.138611" {
			t.Errorf("latitude param = %q, want 48.138611", got)
		}
		if got := r.URL.Query().Get("longitude"); got != "11.573889" {
			t.Errorf("longitude param = %q, want 11.573889", got)
		}
		w.Write([]byte(`[
			{"type":"STATION","name":"Marienplatz (Theatinerstraße)","globalId":"de:09162:628","distanceInMeters":142,"transportTypes":["BUS"],"latitude":48.139804,"longitude":11.574755},
			{"type":"STATION","name":"Marienplatz","globalId":"de:09162:2","distanceInMeters":187,"transportTypes":["UBAHN","SBAHN","BUS"]}
		]`))
	}))
	defer server.Close()

	locations, err := newTestClient(server.URL).NearbyLocations(context.Background(), 48.138611, 11.573889)
	if err != nil {
		t.Fatalf("NearbyLocations() error: %v", err)
	}
	if len(locations) != 2 {
		t.Fatalf("got %d locations, want 2", len(locations))
	}
	first := locations[0]
	if first.Name == nil || *first.Name != "Marienplatz (Theatinerstraße)" {
		t.Errorf("Name = %v, want Marienplatz (Theatinerstraße)", first.Name)
	}
	if first.DistanceInMeters == nil || *first.DistanceInMeters != 142 {
		t.Errorf("DistanceInMeters = %v, want 142", first.DistanceInMeters)
	}
}

const departuresFixture = `[
	{"plannedDepartureTime":1708433340000,"realtime":true,"delayInMinutes":2,"realtimeDepartureTime":1708433460000,"transportType":"SBAHN","label":"S6","divaId":"92M06","network":"ddb","trainType":"","destination":"Ebersberg","cancelled":false,"sev":false,"platform":1,"platformChanged":false,"messages":[],"bannerHash":"","occupancy":"UNKNOWN","stopPointGlobalId":""},
	{"plannedDepartureTime":1708433700000,"realtime":false,"transportType":"BUS","label":"975","destination":"Percha","cancelled":false,"sev":false}
]`

func TestDepartures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/departure" {
			t.Errorf("path = %q, want /departure", r.URL.Path)
		}
		if got := r.URL.Query().Get("globalId"); got != "de:09188:2890" {
			t.Errorf("globalId param = %q, want de:09188:2890", got)
		}
		w.Write([]byte(departuresFixture))
	}))
	defer server.Close()

	departures, err := newTestClient(server.URL).Departures(context.Background(), "de:09188:2890")
	if err != nil {
		t.Fatalf("Departures() error: %v", err)
	}
	if len(departures) != 2 {
		t.Fatalf("got %d departures, want 2", len(departures))
	}

	d := departures[0]
	if d.TransportType != "SBAHN" {
		t.Errorf("TransportType = %q, want SBAHN", d.TransportType)
	}
	if d.Label == nil || *d.Label != "S6" {
		t.Errorf("Label = %v, want S6", d.Label)
	}
	if d.Destination == nil || *d.Destination != "Ebersberg" {
		t.Errorf("Destination = %v, want Ebersberg", d.Destination)
	}
	// Epoch milliseconds pass through untransformed
	if d.PlannedDepartureTime == nil || *d.PlannedDepartureTime != 1708433340000 {
		t.Errorf("PlannedDepartureTime = %v, want 1708433340000", d.PlannedDepartureTime)
	}
	if d.RealtimeDepartureTime == nil || *d.RealtimeDepartureTime != 1708433460000 {
		t.Errorf("RealtimeDepartureTime = %v, want 1708433460000", d.RealtimeDepartureTime)
	}
	if d.DelayInMinutes == nil || *d.DelayInMinutes != 2 {
		t.Errorf("DelayInMinutes = %v, want 2", d.DelayInMinutes)
	}
	if d.Platform == nil || *d.Platform != 1 {
		t.Errorf("Platform = %v, want 1", d.Platform)
	}

	// Second entry is schedule-only: no realtime time, no delay
	d = departures[1]
	if d.RealtimeDepartureTime != nil {
		t.Errorf("RealtimeDepartureTime = %v, want nil for schedule-only departure", *d.RealtimeDepartureTime)
	}
	if d.DelayInMinutes != nil {
		t.Errorf("DelayInMinutes = %v, want nil", *d.DelayInMinutes)
	}
}

func TestDepartures_EmptyGlobalID(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Departures(context.Background(), "")
	if err == nil {
		t.Fatal("Departures(\"\") should fail")
	}
	if calls != 0 {
		t.Errorf("empty global id must be rejected before any request, got %d calls", calls)
	}
}

func TestLocationsThenDepartures_GlobalIDJoin(t *testing.T) {
	// The global id returned by a location search is the only valid
	// input to the departures lookup.
	mux := http.NewServeMux()
	mux.HandleFunc("/location", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(starnbergFixture))
	})
	mux.HandleFunc("/departure", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("globalId"); got != "de:09188:2890" {
			t.Errorf("globalId param = %q, want de:09188:2890", got)
		}
		w.Write([]byte(departuresFixture))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL)
	locations, err := client.Locations(context.Background(), "Starnberg Nord")
	if err != nil {
		t.Fatalf("Locations() error: %v", err)
	}
	if locations[0].GlobalID == nil {
		t.Fatal("station result should carry a global id")
	}

	departures, err := client.Departures(context.Background(), *locations[0].GlobalID)
	if err != nil {
		t.Fatalf("Departures() error: %v", err)
	}
	if departures[0].Label == nil || *departures[0].Label != "S6" {
		t.Errorf("Label = %v, want S6", departures[0].Label)
	}
	if departures[0].TransportType != "SBAHN" {
		t.Errorf("TransportType = %q, want SBAHN", departures[0].TransportType)
	}
}

func TestStations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stations" {
			t.Errorf("path = %q, want /stations", r.URL.Path)
		}
		w.Write([]byte(`[{"abbreviation":"KA","divaId":1,"id":"de:09162:1","latitude":48.13951,"longitude":11.56613,"name":"Karlsplatz (Stachus)","place":"München","products":["UBAHN","BUS","TRAM","SBAHN"],"tariffZones":"m"}]`))
	}))
	defer server.Close()

	stations, err := newTestClient(server.URL).Stations(context.Background())
	if err != nil {
		t.Fatalf("Stations() error: %v", err)
	}
	if len(stations) != 1 {
		t.Fatalf("got %d stations, want 1", len(stations))
	}
	s := stations[0]
	if s.ID == nil || *s.ID != "de:09162:1" {
		t.Errorf("ID = %v, want de:09162:1", s.ID)
	}
	if s.Name == nil || *s.Name != "Karlsplatz (Stachus)" {
		t.Errorf("Name = %v, want Karlsplatz (Stachus)", s.Name)
	}
	if s.DivaID == nil || *s.DivaID != 1 {
		t.Errorf("DivaID = %v, want 1", s.DivaID)
	}
	if len(s.Products) != 4 {
		t.Errorf("Products = %v, want 4 entries", s.Products)
	}
}

func TestStationGlobalIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mvgStationGlobalIds" {
			t.Errorf("path = %q, want /mvgStationGlobalIds", r.URL.Path)
		}
		w.Write([]byte(`["de:09162:1","de:09162:2","de:09188:2890"]`))
	}))
	defer server.Close()

	ids, err := newTestClient(server.URL).StationGlobalIDs(context.Background())
	if err != nil {
		t.Fatalf("StationGlobalIDs() error: %v", err)
	}
	if len(ids) != 3 || ids[2] != "de:09188:2890" {
		t.Errorf("ids = %v", ids)
	}
}

func TestLines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lines" {
			t.Errorf("path = %q, want /lines", r.URL.Path)
		}
		w.Write([]byte(`[{"lineNumber":-1,"name":"N19","product":"TRAM"},{"lineNumber":2012,"name":"12","product":"TRAM"}]`))
	}))
	defer server.Close()

	lines, err := newTestClient(server.URL).Lines(context.Background())
	if err != nil {
		t.Fatalf("Lines() error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Name == nil || *lines[0].Name != "N19" {
		t.Errorf("Name = %v, want N19", lines[0].Name)
	}
	if lines[0].Product == nil || *lines[0].Product != "TRAM" {
		t.Errorf("Product = %v, want TRAM", lines[0].Product)
	}
	if lines[1].LineNumber == nil || *lines[1].LineNumber != 2012 {
		t.Errorf("LineNumber = %v, want 2012", lines[1].LineNumber)
	}
}

func TestMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/message" {
			t.Errorf("path = %q, want /message", r.URL.Path)
		}
		w.Write([]byte(`[{"title":"Stammstrecke: Verspätungen","description":"Reparatur an der Strecke","type":"INCIDENT","validFrom":1708387200000,"lines":[{"label":"S6","transportType":"SBAHN"}]}]`))
	}))
	defer server.Close()

	messages, err := newTestClient(server.URL).Messages(context.Background())
	if err != nil {
		t.Fatalf("Messages() error: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(messages))
	}
	m := messages[0]
	if m.Title == nil || *m.Title != "Stammstrecke: Verspätungen" {
		t.Errorf("Title = %v", m.Title)
	}
	if len(m.Lines) != 1 || m.Lines[0].Label == nil || *m.Lines[0].Label != "S6" {
		t.Errorf("Lines = %v, want one entry labeled S6", m.Lines)
	}
}

func TestTransportError_Status(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Locations(context.Background(), "Marienplatz")
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("error = %T (%v), want *TransportError", err, err)
	}
	if te.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", te.Status)
	}
	if te.Op != "locations" {
		t.Errorf("Op = %q, want locations", te.Op)
	}
	// A failed call is a single failure, never retried
	if calls != 1 {
		t.Errorf("upstream saw %d calls, want exactly 1", calls)
	}
}

func TestTransportError_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close() // nothing listens here anymore

	_, err := newTestClient(base).Stations(context.Background())
	if err == nil {
		t.Fatal("expected error for refused connection")
	}

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("error = %T (%v), want *TransportError", err, err)
	}
	if te.Status != 0 {
		t.Errorf("Status = %d, want 0 when no response arrived", te.Status)
	}
	if te.Unwrap() == nil {
		t.Error("transport error should preserve the underlying cause")
	}
}

func TestDecodeError_WrongShape(t *testing.T) {
	// The outer list is the only structurally required element. An
	// object body must fail with a decode error naming the mismatch.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"temporarily unavailable"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Locations(context.Background(), "Marienplatz")
	if err == nil {
		t.Fatal("expected decode error for non-array body")
	}

	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error = %T (%v), want *DecodeError", err, err)
	}
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("decode error should wrap the json type error, got %v", de.Unwrap())
	}
}

func TestDecodeError_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name":"Marienpl`)) // truncated mid-response
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Locations(context.Background(), "Marienplatz")
	if err == nil {
		t.Fatal("expected decode error for truncated body")
	}

	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error = %T (%v), want *DecodeError", err, err)
	}
	var synErr *json.SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("decode error should wrap the json syntax error, got %v", de.Unwrap())
	}
}

func TestRequestHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "gomvg/1.0" {
			t.Errorf("User-Agent = %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).Lines(context.Background()); err != nil {
		t.Fatalf("Lines() error: %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server.URL).Locations(ctx, "Marienplatz")
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("error = %T, want *TransportError", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("cause = %v, want context.Canceled", te.Unwrap())
	}
}
