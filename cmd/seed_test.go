/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/car-service/apiserver/types"
)

func TestSeedDataPopulatesSampleRows(t *testing.T) {
	dbConn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer dbConn.Close()

	idRow := func(id int) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id"}).AddRow(id)
	}

	mock.ExpectQuery(`INSERT INTO users`).WillReturnRows(idRow(1))
	mock.ExpectQuery(`INSERT INTO users`).WillReturnRows(idRow(2))
	mock.ExpectQuery(`INSERT INTO cars`).WillReturnRows(idRow(1))
	mock.ExpectQuery(`INSERT INTO services`).WillReturnRows(idRow(1))
	mock.ExpectQuery(`INSERT INTO services`).WillReturnRows(idRow(2))
	// Every mechanic column is populated, position included.
	mock.ExpectQuery(`INSERT INTO mechanics`).
		WithArgs(
			"Mike Wrench",
			time.Date(1985, time.June, 15, 0, 0, 0, 0, time.UTC),
			"mike",
			types.RoleMechanic,
			"senior technician",
			sqlmock.AnyArg(),
		).
		WillReturnRows(idRow(1))
	mock.ExpectQuery(`INSERT INTO appointments`).WillReturnRows(idRow(1))

	if err := seedData(context.Background(), dbConn); err != nil {
		t.Fatalf("seed data: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
