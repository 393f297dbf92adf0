package award

import (
	"errors"
	"fmt"
	"github.com/explore-flights/awards/common/seatsaero"
	"time"
)

var ErrUnresolvedRoute = errors.New("unresolved route reference")

type Route struct {
	Id                 string
	OriginAirport      string
	OriginRegion       string
	DestinationAirport string
	DestinationRegion  string
	NumDaysOut         int
	Distance           int
	Source             string
}

func (r *Route) Leg() Leg {
	return Leg{Origin: r.OriginAirport, Destination: r.DestinationAirport}
}

type Availability struct {
	Id               string
	RouteId          string
	Route            *Route
	Date             string
	ParsedDate       time.Time
	Fares            map[FareClass]Fare
	Source           string
	ComputedLastSeen string
}

// Fare returns the values of the given fare class; absent classes read as zero.
func (a Availability) Fare(fc FareClass) Fare {
	return a.Fares[fc]
}

type Leg struct {
	Origin      string
	Destination string
}

func (l Leg) String() string {
	return l.Origin + " -> " + l.Destination
}

type Row struct {
	Date      time.Time
	Route     string
	Airlines  string
	Fare      FareClass
	Freshness string
	Direct    bool
}

func RoutesFromUpstream(raw []seatsaero.Route) map[string]*Route {
	routes := make(map[string]*Route, len(raw))
	for _, r := range raw {
		routes[r.ID] = &Route{
			Id:                 r.ID,
			OriginAirport:      r.OriginAirport,
			OriginRegion:       r.OriginRegion,
			DestinationAirport: r.DestinationAirport,
			DestinationRegion:  r.DestinationRegion,
			NumDaysOut:         r.NumDaysOut,
			Distance:           r.Distance,
			Source:             r.Source,
		}
	}

	return routes
}

// NewAvailabilities resolves every record against routes. A single unknown
// route id fails the whole batch.
func NewAvailabilities(routes map[string]*Route, raw []seatsaero.Availability) ([]Availability, error) {
	result := make([]Availability, 0, len(raw))
	for _, a := range raw {
		route, ok := routes[a.RouteID]
		if !ok {
			return nil, fmt.Errorf("%w: availability %q references route %q", ErrUnresolvedRoute, a.ID, a.RouteID)
		}

		result = append(result, Availability{
			Id:         a.ID,
			RouteId:    a.RouteID,
			Route:      route,
			Date:       a.Date,
			ParsedDate: a.ParsedDate,
			Fares: map[FareClass]Fare{
				FareEconomy: {
					Available:      a.YAvailable,
					MileageCost:    a.YMileageCost,
					RemainingSeats: a.YRemainingSeats,
					Airlines:       a.YAirlines,
					Direct:         a.YDirect,
				},
				FarePremiumEconomy: {
					Available:      a.WAvailable,
					MileageCost:    a.WMileageCost,
					RemainingSeats: a.WRemainingSeats,
					Airlines:       a.WAirlines,
					Direct:         a.WDirect,
				},
				FareBusiness: {
					Available:      a.JAvailable,
					MileageCost:    a.JMileageCost,
					RemainingSeats: a.JRemainingSeats,
					Airlines:       a.JAirlines,
					Direct:         a.JDirect,
				},
				FareFirst: {
					Available:      a.FAvailable,
					MileageCost:    a.FMileageCost,
					RemainingSeats: a.FRemainingSeats,
					Airlines:       a.FAirlines,
					Direct:         a.FDirect,
				},
			},
			Source:           a.Source,
			ComputedLastSeen: a.ComputedLastSeen,
		})
	}

	return result, nil
}
