// Package db opens the MySQL-backed GORM session shared by the API server
// and the seeder.
package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL connects to the ideahub database. The DSN must carry
// parseTime=True so room created_at columns scan into time.Time; the
// default in config.Load does.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}
