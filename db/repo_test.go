package db

import (
	"context"
	"database/sql"
	"errors"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

type failingDatabase struct {
	err error
}

func (db failingDatabase) Conn(ctx context.Context) (*sql.Conn, error) {
	return nil, db.err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func TestExpansionTables(t *testing.T) {
	airports := make(map[uuid.UUID]Airport)
	add := func(iata, country, city string) {
		id := uuid.Must(uuid.NewV4())
		airports[id] = Airport{
			Id:          id,
			IataCode:    iata,
			CountryCode: nullString(country),
			CityCode:    nullString(city),
		}
	}

	add("JFK", "US", "NYC")
	add("EWR", "US", "NYC")
	add("LGA", "US", "NYC")
	add("SFO", "US", "SFO")
	add("HND", "JP", "TYO")
	add("NRT", "JP", "TYO")
	add("", "JP", "TYO")
	add("XXX", "", "")

	tables := expansionTables(airports)

	assert.Equal(t, []string{"EWR", "JFK", "LGA", "SFO"}, tables.Countries["US"])
	assert.Equal(t, []string{"HND", "NRT"}, tables.Countries["JP"])
	assert.Equal(t, []string{"EWR", "JFK", "LGA"}, tables.Cities["NYC"])
	assert.Equal(t, []string{"HND", "NRT"}, tables.Cities["TYO"])
	assert.Len(t, tables.Countries, 2)
	assert.Len(t, tables.Cities, 3)
}

func TestBaseDataRepoPropagatesConnErr(t *testing.T) {
	connErr := errors.New("no connection")
	repo := NewBaseDataRepo(failingDatabase{err: connErr})

	_, err := repo.ExpansionTables(context.Background())
	require.ErrorIs(t, err, connErr)

	_, err = repo.AirlineNames(context.Background())
	require.ErrorIs(t, err, connErr)
}
