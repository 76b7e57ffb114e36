package database

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/DavidHuie/gomigrate"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/glowbooth/media-export/common/config"
	"github.com/glowbooth/media-export/common/logging"
)

type Database struct {
	conn  *sql.DB
	Leads *leadsTableStatements
}

var instance *Database
var singleton = &sync.Once{}

func GetInstance() *Database {
	if instance == nil {
		singleton.Do(func() {
			pool := config.Get().Database.PoolOrDefault()
			if err := openDatabase(
				config.Get().Database.Postgres,
				pool.MaxConnections,
				pool.MaxIdle,
			); err != nil {
				logrus.Fatal("Failed to set up database: ", err)
			}
		})
	}
	return instance
}

func openDatabase(connectionString string, maxConns int, maxIdleConns int) error {
	d := &Database{}
	var err error

	if d.conn, err = sql.Open("postgres", connectionString); err != nil {
		return errors.New("error connecting to db: " + err.Error())
	}
	d.conn.SetMaxOpenConns(maxConns)
	d.conn.SetMaxIdleConns(maxIdleConns)

	// Run migrations
	var migrator *gomigrate.Migrator
	if migrator, err = gomigrate.NewMigratorWithLogger(d.conn, gomigrate.Postgres{}, config.Runtime.MigrationsPath, &logging.SendToDebugLogger{}); err != nil {
		return errors.New("error setting up migrator: " + err.Error())
	}
	if err = migrator.Migrate(); err != nil {
		return errors.New("error running migrations: " + err.Error())
	}

	// Prepare the table accessors
	if d.Leads, err = prepareLeadsTables(d.conn); err != nil {
		return errors.New("failed to create leads table accessor: " + err.Error())
	}

	instance = d
	return nil
}
