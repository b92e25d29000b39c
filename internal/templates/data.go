package templates

// View data passed from the handlers into the templ views. Everything
// is preformatted: the views only place strings.

// StationView is a pinned station on the home page.
type StationView struct {
	Name     string
	GlobalID string
	URL      string
	Products []string
	Distance string // formatted, empty when unknown
}

// HomeData drives the home page.
type HomeData struct {
	Title     string
	Favorites []StationView
}

// LocationView is one search or nearby result.
type LocationView struct {
	Name     string
	Type     string // "Station", "Address", "POI"
	Place    string
	Distance string
	URL      string // station link; empty for addresses and POIs
	Products []string
}

// SearchData drives the search page.
type SearchData struct {
	Title    string
	Query    string
	Searched bool // false when the form is shown without a query
	Error    string
	Results  []LocationView
}

// NearbyData drives the nearby-stations page.
type NearbyData struct {
	Title   string
	Lat     string
	Lon     string
	Error   string
	Results []LocationView
}

// DepartureView is one row on the departures board.
type DepartureView struct {
	Label         string
	TransportType string
	Destination   string
	Time          string // wall clock, e.g. "14:31"
	Minutes       string // e.g. "in 3 min"
	Delay         string // e.g. "+2", empty when on time
	Platform      string
	Cancelled     bool
}

// DisruptionView is a service message shown above the board.
type DisruptionView struct {
	Title       string
	Description string
}

// StationData drives the per-station departures page.
type StationData struct {
	Title       string
	Name        string
	GlobalID    string
	Lat         string
	Lon         string
	Favorite    bool
	Error       string
	Departures  []DepartureView
	Disruptions []DisruptionView
}

// LineView is one row of the line directory.
type LineView struct {
	Name    string
	Product string
}

// LinesData drives the lines page.
type LinesData struct {
	Title string
	Error string
	Lines []LineView
}
