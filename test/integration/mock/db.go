package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbOnce sync.Once
var db *Db

type Db struct {
	DbConn *gorm.DB
	models []any
}

// NewDb opens a shared in-memory SQLite database and migrates the given
// models. The connection is reused across scenarios; call ClearDB between
// them.
func NewDb(models []any) *Db {
	if db == nil {
		dbOnce.Do(
			func() {
				db = open(models)
			},
		)
	}

	return db
}

func open(models []any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	if err := dbConn.AutoMigrate(models...); err != nil {
		panic(fmt.Sprintf("failed to migrate test database. err: %s", err.Error()))
	}

	for _, model := range models {
		if !dbConn.Migrator().HasTable(model) {
			panic(fmt.Sprintf("table for model %T was not created", model))
		}
	}

	return &Db{
		DbConn: dbConn,
		models: models,
	}
}

// ClearDB wipes every table so scenarios start from an empty ledger.
func (d *Db) ClearDB() error {
	for _, model := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return err
		}
	}
	return nil
}
