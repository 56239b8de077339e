package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

// Db is a shared in-memory SQLite database migrated with the given models.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	tables []string
}

// NewDb opens the shared database on first use. Later calls return the same
// instance and ignore their arguments.
func NewDb(models ...any) *Db {
	once.Do(func() {
		db = open(models)
	})
	return db
}

func open(models []any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	// Every request must see the same in-memory database.
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	if err := dbConn.AutoMigrate(models...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	newDbMock := &Db{
		DbConn: dbConn,
		models: make(map[string]any, len(models)),
	}
	for _, model := range models {
		stmt := &gorm.Statement{DB: dbConn}
		if err := stmt.Parse(model); err != nil {
			panic(err)
		}
		newDbMock.models[stmt.Schema.Table] = model
		newDbMock.tables = append(newDbMock.tables, stmt.Schema.Table)
	}

	return newDbMock
}

// ClearDB deletes every row of every migrated table.
func (d *Db) ClearDB() error {
	for _, table := range d.tables {
		if err := d.DbConn.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// GetModel returns the model migrated into table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
