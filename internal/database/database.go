package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Table Structure:
//
// CREATE TABLE IF NOT EXISTS company (
// 	handle VARCHAR(50) NOT NULL UNIQUE,
// 	name TEXT NOT NULL,
// 	description TEXT NOT NULL DEFAULT '',
// 	num_employees INTEGER,
// 	logo_url TEXT,
// 	PRIMARY KEY(handle)
// );
//
// CREATE TABLE IF NOT EXISTS job (
// 	id SERIAL NOT NULL UNIQUE,
// 	title TEXT NOT NULL,
// 	salary INTEGER CHECK (salary >= 0),
// 	equity NUMERIC CHECK (equity >= 0 AND equity <= 1.0),
// 	description TEXT NOT NULL DEFAULT '',
// 	slug VARCHAR(256) NOT NULL,
// 	company_handle VARCHAR(50) NOT NULL REFERENCES company ON DELETE CASCADE,
// 	created_at TIMESTAMP NOT NULL DEFAULT NOW(),
// 	PRIMARY KEY(id)
// );
// CREATE INDEX job_company_handle_idx ON job (company_handle);
//
// CREATE TABLE IF NOT EXISTS users (
// 	username VARCHAR(25) NOT NULL UNIQUE,
// 	email TEXT NOT NULL,
// 	password_hash TEXT NOT NULL,
// 	is_admin BOOLEAN NOT NULL DEFAULT FALSE,
// 	created_at TIMESTAMP NOT NULL DEFAULT NOW(),
// 	PRIMARY KEY(username)
// );
//
// CREATE TABLE IF NOT EXISTS application (
// 	username VARCHAR(25) NOT NULL REFERENCES users ON DELETE CASCADE,
// 	job_id INTEGER NOT NULL REFERENCES job ON DELETE CASCADE,
// 	created_at TIMESTAMP NOT NULL DEFAULT NOW(),
// 	PRIMARY KEY(username, job_id)
// );

func GetDbConn(databaseUser string, databasePassword string, databaseHost string, databasePort string, databaseName string, sslMode string) (*sql.DB, error) {
	databaseURL := fmt.Sprintf("postgres://%v:%v@%v:%v/%v?sslmode=%s",
		databaseUser,
		databasePassword,
		databaseHost,
		databasePort,
		databaseName,
		sslMode,
	)
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(20)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// CloseDbConn closes db conn
func CloseDbConn(conn *sql.DB) {
	conn.Close()
}
