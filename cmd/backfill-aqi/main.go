package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/aeris-iot/aeris-backend/internal/aqi"
	"github.com/aeris-iot/aeris-backend/internal/readings"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// Recomputes AQI and severity for stored readings whose aqi column is NULL.
// Useful after a new sensor alias or breakpoint table is added: historical
// rows for that sensor type gain an index without re-ingesting. Rows that
// already carry an AQI are never touched — readings are otherwise frozen at
// write time.

var (
	dsn     = flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (default: env DATABASE_URL)")
	dryRun  = flag.Bool("dry-run", false, "Report what would change; no DB writes")
	confirm = flag.Bool("confirm", false, "Required to write changes")
	limit   = flag.Int("limit", 10000, "Maximum rows to examine")
)

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()
	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}
	if !*dryRun && !*confirm {
		fatalf("Refusing to run without --confirm. Add --dry-run to preview.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		fatalf("ping: %v", err)
	}

	thresholds, err := loadThresholds(ctx, db)
	if err != nil {
		fatalf("load thresholds: %v", err)
	}
	fmt.Printf("Loaded %d thresholds\n", len(thresholds))

	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		fatalf("begin tx: %v", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op if already committed
	}()

	rows, err := tx.QueryContext(ctx, `
		SELECT id, sensor_type, value
		FROM telemetry.readings
		WHERE aqi IS NULL
		ORDER BY id
		LIMIT $1`, *limit)
	if err != nil {
		fatalf("select: %v", err)
	}

	type update struct {
		id       int64
		aqi      int
		severity string
	}
	var updates []update
	examined := 0

	for rows.Next() {
		var id int64
		var sensorType string
		var value float64
		if err := rows.Scan(&id, &sensorType, &value); err != nil {
			fatalf("scan: %v", err)
		}
		examined++

		aqiVal, _ := aqi.Compute(sensorType, value)
		if aqiVal == nil {
			continue // still unsupported or out of range
		}

		severity := readings.EvaluateSeverity(aqiVal, value, thresholds[thresholdKey(sensorType)])
		updates = append(updates, update{id: id, aqi: *aqiVal, severity: severity.String()})
	}
	if err := rows.Err(); err != nil {
		fatalf("iterate: %v", err)
	}

	fmt.Printf("Examined %d rows without AQI; %d now computable\n", examined, len(updates))

	if *dryRun {
		for _, u := range updates {
			fmt.Printf("  would set id=%d aqi=%d severity=%s\n", u.id, u.aqi, u.severity)
		}
		fmt.Println("Dry run complete. No changes made.")
		return
	}

	for _, u := range updates {
		if _, err := tx.ExecContext(ctx,
			`UPDATE telemetry.readings SET aqi = $1, severity = $2 WHERE id = $3 AND aqi IS NULL`,
			u.aqi, u.severity, u.id); err != nil {
			fatalf("update id=%d: %v", u.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		fatalf("commit: %v", err)
	}
	fmt.Printf("Updated %d rows\n", len(updates))
}

func loadThresholds(ctx context.Context, db *sql.DB) (map[string]*readings.PollutantThreshold, error) {
	rows, err := db.QueryContext(ctx, `SELECT sensor_type, warn, danger FROM telemetry.pollutant_thresholds`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]*readings.PollutantThreshold{}
	for rows.Next() {
		var th readings.PollutantThreshold
		if err := rows.Scan(&th.SensorType, &th.Warn, &th.Danger); err != nil {
			return nil, err
		}
		out[th.SensorType] = &th
	}
	return out, rows.Err()
}

func thresholdKey(sensorType string) string {
	if p, ok := aqi.Canonical(sensorType); ok {
		return p.String()
	}
	return sensorType
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
