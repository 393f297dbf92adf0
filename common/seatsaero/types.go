package seatsaero

import "time"

type Route struct {
	ID                 string `json:"ID"`
	OriginAirport      string `json:"OriginAirport"`
	OriginRegion       string `json:"OriginRegion"`
	DestinationAirport string `json:"DestinationAirport"`
	DestinationRegion  string `json:"DestinationRegion"`
	NumDaysOut         int    `json:"NumDaysOut"`
	Distance           int    `json:"Distance"`
	Source             string `json:"Source"`
}

// Availability is one cached availability snapshot as returned by the partner
// API. Fields the API omits or sends as null keep their zero value.
type Availability struct {
	ID         string    `json:"ID"`
	RouteID    string    `json:"RouteID"`
	Date       string    `json:"Date"`
	ParsedDate time.Time `json:"ParsedDate"`

	YAvailable bool `json:"YAvailable"`
	WAvailable bool `json:"WAvailable"`
	JAvailable bool `json:"JAvailable"`
	FAvailable bool `json:"FAvailable"`

	YMileageCost string `json:"YMileageCost"`
	WMileageCost string `json:"WMileageCost"`
	JMileageCost string `json:"JMileageCost"`
	FMileageCost string `json:"FMileageCost"`

	YRemainingSeats uint32 `json:"YRemainingSeats"`
	WRemainingSeats uint32 `json:"WRemainingSeats"`
	JRemainingSeats uint32 `json:"JRemainingSeats"`
	FRemainingSeats uint32 `json:"FRemainingSeats"`

	YAirlines string `json:"YAirlines"`
	WAirlines string `json:"WAirlines"`
	JAirlines string `json:"JAirlines"`
	FAirlines string `json:"FAirlines"`

	YDirect bool `json:"YDirect"`
	WDirect bool `json:"WDirect"`
	JDirect bool `json:"JDirect"`
	FDirect bool `json:"FDirect"`

	Source           string `json:"Source"`
	ComputedLastSeen string `json:"ComputedLastSeen"`
}
