// Package models defines the GORM models for the advisor platform tables
// this toolkit provisions and verifies: users, instruments, accounts,
// positions, and jobs.
//
// The PostgreSQL schema itself is owned by the SQL migrations in
// internal/migrations; these models exist for the provisioning and
// verification paths and carry validator/v10 tags mirroring the schema
// constraints. Money and quantity fields use shopspring/decimal.
package models
