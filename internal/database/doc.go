// Package database provides a database wrapper built on GORM with
// connection retry, pooling, transactions, and error translation.
//
// The binaries open PostgreSQL through gorm.io/driver/postgres using the
// URL from DATABASE_URL; tests open in-memory SQLite through
// gorm.io/driver/sqlite. Exec and CountTable are the raw helpers the
// reset tool's teardown and verification steps run through.
package database
