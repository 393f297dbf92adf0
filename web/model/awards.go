package model

import (
	"github.com/explore-flights/awards/award"
	"github.com/explore-flights/awards/common/xtime"
	"time"
)

type Partner struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type PartnersResponse struct {
	Partners []Partner `json:"partners"`
	Default  string    `json:"default"`
}

func PartnersFromAward(partners []award.Partner) []Partner {
	result := make([]Partner, 0, len(partners))
	for _, p := range partners {
		result = append(result, Partner{Id: p.Id, Name: p.Name})
	}

	return result
}

type AwardRow struct {
	Date      xtime.LocalDate `json:"date"`
	Route     string          `json:"route"`
	Airlines  string          `json:"airlines"`
	Fare      string          `json:"fare"`
	FareName  string          `json:"fareName"`
	Freshness string          `json:"freshness"`
	Direct    bool            `json:"direct"`
}

func AwardRowFromAward(r award.Row) AwardRow {
	return AwardRow{
		Date:      xtime.NewLocalDate(r.Date),
		Route:     r.Route,
		Airlines:  r.Airlines,
		Fare:      string(r.Fare),
		FareName:  r.Fare.Name(),
		Freshness: r.Freshness,
		Direct:    r.Direct,
	}
}

type AwardsResponse struct {
	Partner string     `json:"partner"`
	Query   AwardQuery `json:"query"`
	Rows    []AwardRow `json:"rows"`
	// SortOrder lists the leg labels in canonical order.
	SortOrder        []string  `json:"sortOrder"`
	MissingLegs      []string  `json:"missingLegs"`
	MissingLegsTotal int       `json:"missingLegsTotal"`
	CanonicalLegs    int       `json:"canonicalLegs"`
	Records          int       `json:"records"`
	FetchedAt        time.Time `json:"fetchedAt"`
	CacheAgeSeconds  int       `json:"cacheAgeSeconds"`
	NotFound         bool      `json:"notFound"`
}

func AwardsResponseFromResult(partner string, q AwardQuery, s *award.Snapshot, res award.Result, now time.Time) AwardsResponse {
	rows := make([]AwardRow, 0, len(res.Rows))
	for _, r := range res.Rows {
		rows = append(rows, AwardRowFromAward(r))
	}

	return AwardsResponse{
		Partner:          partner,
		Query:            q,
		Rows:             rows,
		SortOrder:        legLabels(res.Legs),
		MissingLegs:      legLabels(res.MissingLegs),
		MissingLegsTotal: res.MissingLegsTotal,
		CanonicalLegs:    res.CanonicalLegs,
		Records:          len(s.Availabilities),
		FetchedAt:        s.FetchedAt,
		CacheAgeSeconds:  int(now.Sub(s.FetchedAt).Seconds()),
		NotFound:         len(rows) == 0,
	}
}

func legLabels(legs []award.Leg) []string {
	labels := make([]string, 0, len(legs))
	for _, leg := range legs {
		labels = append(labels, leg.String())
	}

	return labels
}

type Airline struct {
	IataCode string `json:"iataCode"`
	Name     string `json:"name,omitempty"`
}

type AirlinesResponse struct {
	Partner  string    `json:"partner"`
	Airlines []Airline `json:"airlines"`
}
