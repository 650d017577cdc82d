package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

// Connect returns a MariaDB connection using env vars.
func Connect() (*sql.DB, error) {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASS")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	name := os.Getenv("DB_NAME")
	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "3306"
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4,utf8", user, pass, host, port, name)
	return sql.Open("mysql", dsn)
}

// EnsureSchema creates the transit network tables if not exist.
// Stops, routes, route_stops and transfers are long-lived reference data
// written only by the seeding tooling; the planner reads them concurrently.
func EnsureSchema(db *sql.DB) error {
	if skip := strings.TrimSpace(os.Getenv("DB_SKIP_SCHEMA")); strings.EqualFold(skip, "true") || skip == "1" {
		log.Printf("EnsureSchema: skipped (DB_SKIP_SCHEMA=%q)", skip)
		return nil
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS stops (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			line VARCHAR(100) NULL,
			latitude DOUBLE NOT NULL,
			longitude DOUBLE NOT NULL,
			type VARCHAR(20) NOT NULL DEFAULT 'BUS_STOP',
			is_station TINYINT(1) NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`); err != nil {
		return err
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS routes (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			line VARCHAR(100) NULL,
			transport_type VARCHAR(20) NOT NULL DEFAULT 'BUS',
			color VARCHAR(9) NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`); err != nil {
		return err
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS route_stops (
			route_id VARCHAR(36) NOT NULL,
			stop_id VARCHAR(36) NOT NULL,
			stop_order INT NOT NULL,
			PRIMARY KEY (route_id, stop_id),
			UNIQUE KEY uq_route_order (route_id, stop_order),
			FOREIGN KEY (route_id) REFERENCES routes(id) ON DELETE CASCADE,
			FOREIGN KEY (stop_id) REFERENCES stops(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`); err != nil {
		return err
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS transfers (
			id VARCHAR(36) PRIMARY KEY,
			from_stop_id VARCHAR(36) NOT NULL,
			to_stop_id VARCHAR(36) NOT NULL,
			walking_distance_m DOUBLE NOT NULL,
			estimated_time_min INT NOT NULL,
			FOREIGN KEY (from_stop_id) REFERENCES stops(id) ON DELETE CASCADE,
			FOREIGN KEY (to_stop_id) REFERENCES stops(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`); err != nil {
		return err
	}

	if _, err := db.Exec(`
		CREATE INDEX idx_stops_latlon ON stops(latitude, longitude);
	`); err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") {
			// index already exists, nothing to do
		} else if strings.Contains(errMsg, "permission denied") {
			log.Printf("EnsureSchema: unable to create stops index (permission denied): %v", err)
		} else {
			return err
		}
	}

	return nil
}
