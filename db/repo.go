package db

import (
	"context"
	"database/sql"
	"github.com/explore-flights/awards/award"
	"github.com/explore-flights/awards/common/xsync"
	"github.com/gofrs/uuid/v5"
	"slices"
)

type baseDataDatabase interface {
	Conn(ctx context.Context) (*sql.Conn, error)
}

// BaseDataRepo reads airports and airlines from the base data database.
// Both are loaded once, eagerly.
type BaseDataRepo struct {
	db       baseDataDatabase
	airlines *xsync.Preload[map[uuid.UUID]Airline]
	airports *xsync.Preload[map[uuid.UUID]Airport]
}

func NewBaseDataRepo(db baseDataDatabase) *BaseDataRepo {
	r := BaseDataRepo{db: db}
	r.airlines = xsync.NewPreload(r.airlinesInternal)
	r.airports = xsync.NewPreload(r.airportsInternal)

	return &r
}

func (r *BaseDataRepo) Airlines(ctx context.Context) (map[uuid.UUID]Airline, error) {
	return r.airlines.Value(ctx)
}

// AirlineNames maps IATA airline codes to their names.
func (r *BaseDataRepo) AirlineNames(ctx context.Context) (map[string]string, error) {
	airlines, err := r.Airlines(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(airlines))
	for _, airline := range airlines {
		if airline.IataCode != "" && airline.Name.Valid {
			names[airline.IataCode] = airline.Name.String
		}
	}

	return names, nil
}

func (r *BaseDataRepo) Airports(ctx context.Context) (map[uuid.UUID]Airport, error) {
	return r.airports.Value(ctx)
}

// ExpansionTables groups the IATA codes of all airports by country and city.
func (r *BaseDataRepo) ExpansionTables(ctx context.Context) (award.Tables, error) {
	airports, err := r.Airports(ctx)
	if err != nil {
		return award.Tables{}, err
	}

	return expansionTables(airports), nil
}

func expansionTables(airports map[uuid.UUID]Airport) award.Tables {
	t := award.Tables{
		Countries: make(map[string][]string),
		Cities:    make(map[string][]string),
	}

	for _, airport := range airports {
		if airport.IataCode == "" {
			continue
		}

		if airport.CountryCode.Valid && airport.CountryCode.String != "" {
			t.Countries[airport.CountryCode.String] = append(t.Countries[airport.CountryCode.String], airport.IataCode)
		}

		if airport.CityCode.Valid && airport.CityCode.String != "" {
			t.Cities[airport.CityCode.String] = append(t.Cities[airport.CityCode.String], airport.IataCode)
		}
	}

	// map iteration order is random
	for _, codes := range t.Countries {
		slices.Sort(codes)
	}

	for _, codes := range t.Cities {
		slices.Sort(codes)
	}

	return t
}

func (r *BaseDataRepo) airlinesInternal() (map[uuid.UUID]Airline, error) {
	ctx := context.Background()
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(
		ctx,
		`
SELECT
    id,
    name,
    ( SELECT identifier FROM airline_identifiers WHERE issuer = 'iata' AND airline_id = id )
FROM airlines
`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airlines := make(map[uuid.UUID]Airline)
	for rows.Next() {
		var airline Airline
		var iataCode sql.NullString
		if err = rows.Scan(&airline.Id, &airline.Name, &iataCode); err != nil {
			return nil, err
		}

		airline.IataCode = iataCode.String
		airlines[airline.Id] = airline
	}

	return airlines, rows.Err()
}

func (r *BaseDataRepo) airportsInternal() (map[uuid.UUID]Airport, error) {
	ctx := context.Background()
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(
		ctx,
		`
SELECT
    id,
    country_code,
    city_code,
    ( SELECT identifier FROM airport_identifiers WHERE issuer = 'iata' AND airport_id = id )
FROM airports
`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make(map[uuid.UUID]Airport)
	for rows.Next() {
		var airport Airport
		var iataCode sql.NullString
		if err = rows.Scan(&airport.Id, &airport.CountryCode, &airport.CityCode, &iataCode); err != nil {
			return nil, err
		}

		airport.IataCode = iataCode.String
		airports[airport.Id] = airport
	}

	return airports, rows.Err()
}
