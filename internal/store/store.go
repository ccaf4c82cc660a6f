// Package store is the optional, off-the-hot-path persistence layer
// spec.md §1 places outside the CORE ("Any I/O, persistence... out of
// scope"). It exists only so a captured order stream can be replayed from
// Postgres and executed fills can be persisted for later analysis — nothing
// in package book imports this, and nothing here is ever called from the
// matching loop.
//
// Grounded directly on the teacher's db.go (ResetSchema, FillTestData,
// FetchOrders, PersistDeals), generalized from the teacher's fixed
// symbol/trader schema to this domain's OrderID/Side/Price/Qty/OrdType
// attributes and AddResult-shaped fill records.
package store

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/samridh10exe/nano-orderbook/book"
)

// ReplayRecord is one row of a captured order stream, matching spec.md
// §6's workload-source contract.
type ReplayRecord struct {
	Seq     int64
	ID      book.OrderID
	Side    book.Side
	Price   book.Price
	Qty     book.Qty
	OrdType book.OrdType
}

// Fill is one executed trade observed while replaying a stream, recorded
// for later analysis rather than for any decision the engine itself makes.
type Fill struct {
	AggressorID book.OrderID
	PassiveID   book.OrderID
	Price       book.Price
	Qty         book.Qty
}

// ResetSchema (re)creates the orders/fills tables used by replay and fill
// capture, mirroring the teacher's ResetSchema.
func ResetSchema(db *sql.DB) error {
	const ddl = `
		DROP TABLE IF EXISTS orders;
		CREATE TABLE orders (
			seq     bigint PRIMARY KEY,
			id      bigint NOT NULL,
			side    smallint NOT NULL,
			price   bigint NOT NULL,
			qty     bigint NOT NULL,
			ord_type smallint NOT NULL
		);

		DROP TABLE IF EXISTS fills;
		CREATE TABLE fills (
			id            bigserial PRIMARY KEY,
			aggressor_id  bigint NOT NULL,
			passive_id    bigint NOT NULL,
			price         bigint NOT NULL,
			qty           bigint NOT NULL
		);
	`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("reset schema: %w", err)
	}
	return nil
}

// LoadRecords bulk-inserts a captured stream via COPY, mirroring the
// teacher's FillTestData/pq.CopyIn usage.
func LoadRecords(db *sql.DB, records []ReplayRecord) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	stmt, err := tx.Prepare(pq.CopyIn("orders", "seq", "id", "side", "price", "qty", "ord_type"))
	if err != nil {
		return fmt.Errorf("prepare copy: %w", err)
	}

	for _, r := range records {
		if _, err := stmt.Exec(r.Seq, int64(r.ID), int16(r.Side), int64(r.Price), int64(r.Qty), int16(r.OrdType)); err != nil {
			return fmt.Errorf("copy row: %w", err)
		}
	}

	if _, err := stmt.Exec(); err != nil {
		return fmt.Errorf("flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("close stmt: %w", err)
	}
	return tx.Commit()
}

// FetchRecords reads back a replay stream in sequence order, mirroring the
// teacher's FetchOrders.
func FetchRecords(db *sql.DB) ([]ReplayRecord, error) {
	rows, err := db.Query(`SELECT seq, id, side, price, qty, ord_type FROM orders ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var out []ReplayRecord
	for rows.Next() {
		var (
			r        ReplayRecord
			side     int16
			ordType  int16
		)
		if err := rows.Scan(&r.Seq, &r.ID, &side, &r.Price, &r.Qty, &ordType); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		r.Side = book.Side(side)
		r.OrdType = book.OrdType(ordType)
		out = append(out, r)
	}
	return out, rows.Err()
}

// PersistFills bulk-inserts executed fills via COPY, mirroring the
// teacher's PersistDeals.
func PersistFills(db *sql.DB, fills []Fill) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	stmt, err := tx.Prepare(pq.CopyIn("fills", "aggressor_id", "passive_id", "price", "qty"))
	if err != nil {
		return fmt.Errorf("prepare copy: %w", err)
	}

	for _, f := range fills {
		if _, err := stmt.Exec(int64(f.AggressorID), int64(f.PassiveID), int64(f.Price), int64(f.Qty)); err != nil {
			return fmt.Errorf("copy fill: %w", err)
		}
	}

	if _, err := stmt.Exec(); err != nil {
		return fmt.Errorf("flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("close stmt: %w", err)
	}
	return tx.Commit()
}
