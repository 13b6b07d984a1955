package db

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
)

var dialect = goqu.Dialect("postgres")

// Statement builders emit $n placeholders plus args, ready for pgx.

func From(table any) *goqu.SelectDataset {
	return dialect.From(table).Prepared(true)
}

func Insert(table any) *goqu.InsertDataset {
	return dialect.Insert(table).Prepared(true)
}

func Update(table any) *goqu.UpdateDataset {
	return dialect.Update(table).Prepared(true)
}

func Delete(table any) *goqu.DeleteDataset {
	return dialect.Delete(table).Prepared(true)
}
