package errors

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	Driver        string `json:"driver,omitempty"`
	DriverCode    string `json:"driver_code,omitempty"`
	DriverMessage string `json:"driver_message,omitempty"`
	DriverTable   string `json:"driver_table,omitempty"`
	DriverDetail  string `json:"driver_detail,omitempty"`
}

// Dump flattens an error chain for structured logs and extracts SQL driver
// details when the failure came from the SQL persistence backend.
func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		d.Driver = "sqlite"
		d.DriverCode = strconv.Itoa(int(liteErr.ExtendedCode))
		d.DriverMessage = liteErr.Error()
		return d
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		d.Driver = "postgres"
		d.DriverCode = pgErr.Code
		d.DriverMessage = pgErr.Message
		d.DriverTable = pgErr.TableName
		d.DriverDetail = pgErr.Detail
		return d
	}

	return d
}
