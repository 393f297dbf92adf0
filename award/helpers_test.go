package award

import (
	"github.com/explore-flights/awards/common/seatsaero"
	"time"
)

func testRoutes() []seatsaero.Route {
	return []seatsaero.Route{
		{ID: "r-jfk-hnd", OriginAirport: "JFK", DestinationAirport: "HND", Source: "aeroplan"},
		{ID: "r-hnd-bkk", OriginAirport: "HND", DestinationAirport: "BKK", Source: "aeroplan"},
		{ID: "r-lax-lhr", OriginAirport: "LAX", DestinationAirport: "LHR", Source: "aeroplan"},
	}
}

func testDate(day int) time.Time {
	return time.Date(2023, time.May, day, 0, 0, 0, 0, time.UTC)
}

func testAvailabilities() []seatsaero.Availability {
	return []seatsaero.Availability{
		{
			ID: "a1", RouteID: "r-jfk-hnd", Date: "2023-05-24", ParsedDate: testDate(24),
			JAvailable: true, JAirlines: "NH, UA", JDirect: true,
			ComputedLastSeen: "2023-05-20T10:00:00Z",
		},
		{
			ID: "a2", RouteID: "r-hnd-bkk", Date: "2023-05-25", ParsedDate: testDate(25),
			YAvailable: true, YAirlines: "TG", YDirect: true,
			WAvailable: true, WAirlines: "NH",
			FAvailable: true, FAirlines: "TG",
			JAvailable: true, JAirlines: "TG, NH", JDirect: true,
			ComputedLastSeen: "2023-05-21T10:00:00Z",
		},
		{
			ID: "a3", RouteID: "r-jfk-hnd", Date: "2023-05-26", ParsedDate: testDate(26),
			YAvailable: true, YAirlines: "JL",
			ComputedLastSeen: "2023-05-22T10:00:00Z",
		},
		{
			ID: "a4", RouteID: "r-lax-lhr", Date: "2023-05-27", ParsedDate: testDate(27),
			ComputedLastSeen: "2023-05-22T11:00:00Z",
		},
	}
}

func mustSnapshot() *Snapshot {
	s, err := NewSnapshot("aeroplan", testRoutes(), testAvailabilities(), testDate(20))
	if err != nil {
		panic(err)
	}

	return s
}
