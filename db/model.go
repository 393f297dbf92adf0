package db

import (
	"database/sql"
	"github.com/gofrs/uuid/v5"
)

type Airline struct {
	Id       uuid.UUID
	IataCode string
	Name     sql.NullString
}

type Airport struct {
	Id          uuid.UUID
	IataCode    string
	CountryCode sql.NullString
	CityCode    sql.NullString
}
