package mvg

// The MVG API is unofficial and undocumented. Which fields an endpoint
// actually populates varies by endpoint and by entity kind, so every
// field is modeled as optional: pointers for scalars, nil-able slices
// for lists. A missing field decodes to nil, never to an error.

// Location is a single result from the location search or the nearby
// search. It can represent a station, an address, a POI or a line —
// the populated fields and the Type tag tell them apart.
type Location struct {
	Type                string   `json:"type,omitempty"` // "STATION", "ADDRESS", "POI"
	Name                *string  `json:"name,omitempty"`
	GlobalID            *string  `json:"globalId,omitempty"` // only stations carry one
	DivaID              *int     `json:"divaId,omitempty"`
	Latitude            *float64 `json:"latitude,omitempty"`
	Longitude           *float64 `json:"longitude,omitempty"`
	Place               *string  `json:"place,omitempty"`
	Aliases             *string  `json:"aliases,omitempty"`
	TariffZones         *string  `json:"tariffZones,omitempty"`
	DistanceInMeters    *int     `json:"distanceInMeters,omitempty"` // nearby search only
	TransportTypes      []string `json:"transportTypes,omitempty"`
	SurroundingPlanLink *string  `json:"surroundingPlanLink,omitempty"`
	HasZoomData         *bool    `json:"hasZoomData,omitempty"`
}

// Departure is one upcoming departure at a station. Departure times are
// epoch milliseconds; RealtimeDepartureTime falls back to the scheduled
// value when the upstream has no live data, so treat both as
// independently optional.
type Departure struct {
	TransportType         string   `json:"transportType,omitempty"` // "SBAHN", "UBAHN", "TRAM", "BUS", ...
	Label                 *string  `json:"label,omitempty"`         // line name, e.g. "S6", "U3", "54"
	Destination           *string  `json:"destination,omitempty"`
	PlannedDepartureTime  *int64   `json:"plannedDepartureTime,omitempty"`
	RealtimeDepartureTime *int64   `json:"realtimeDepartureTime,omitempty"`
	Realtime              *bool    `json:"realtime,omitempty"`
	DelayInMinutes        *int     `json:"delayInMinutes,omitempty"` // can be negative
	Cancelled             *bool    `json:"cancelled,omitempty"`
	Platform              *int     `json:"platform,omitempty"`
	PlatformChanged       *bool    `json:"platformChanged,omitempty"`
	Sev                   *bool    `json:"sev,omitempty"` // rail replacement service
	StopPointGlobalID     *string  `json:"stopPointGlobalId,omitempty"`
	StopPositionNumber    *int     `json:"stopPositionNumber,omitempty"`
	DivaID                *string  `json:"divaId,omitempty"`
	Network               *string  `json:"network,omitempty"`
	TrainType             *string  `json:"trainType,omitempty"`
	Occupancy             *string  `json:"occupancy,omitempty"`
	BannerHash            *string  `json:"bannerHash,omitempty"`
	Messages              []string `json:"messages,omitempty"`
}

// Station is an entry of the full station directory.
type Station struct {
	ID           *string  `json:"id,omitempty"` // global id, e.g. "de:09162:1"
	Name         *string  `json:"name,omitempty"`
	Place        *string  `json:"place,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	DivaID       *int     `json:"divaId,omitempty"`
	Abbreviation *string  `json:"abbreviation,omitempty"`
	TariffZones  *string  `json:"tariffZones,omitempty"`
	Products     []string `json:"products,omitempty"`
}

// Line is an entry of the line directory.
type Line struct {
	Name       *string  `json:"name,omitempty"`    // e.g. "U3", "N19"
	Product    *string  `json:"product,omitempty"` // e.g. "UBAHN", "TRAM"
	LineNumber *int     `json:"lineNumber,omitempty"`
	Stations   []string `json:"stations,omitempty"` // served station global ids, when present
}

// Message is a service disruption or ticker message.
type Message struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Type        *string       `json:"type,omitempty"` // "INCIDENT", "SCHEDULE_CHANGE", ...
	Publication *int64        `json:"publication,omitempty"`
	ValidFrom   *int64        `json:"validFrom,omitempty"`
	ValidTo     *int64        `json:"validTo,omitempty"`
	Provider    *string       `json:"provider,omitempty"`
	Lines       []MessageLine `json:"lines,omitempty"`
}

// MessageLine identifies a line affected by a Message.
type MessageLine struct {
	Label         *string `json:"label,omitempty"`
	TransportType *string `json:"transportType,omitempty"`
	Network       *string `json:"network,omitempty"`
	DivaID        *string `json:"divaId,omitempty"`
	Sev           *bool   `json:"sev,omitempty"`
}
