// Package ch provides a clickhouse client over the native protocol
package ch

import (
	"context"
	"errors"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures clickhouse client
type Config struct {
	URL string

	// Role and App tag the connection in clickhouse client info
	Role string
	App  string
}

// Rows is the minimal result set iteration for ch
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
	Columns() []string
}

// CH is a clickhouse connection handle
type CH struct {
	conn driver.Conn
}

// Open dials clickhouse using a DSN URL
func Open(ctx context.Context, cfg Config) (*CH, error) {
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, err
	}
	opts.ClientInfo = BuildClientInfo(cfg.App, cfg.Role)

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, err
	}
	return &CH{conn: conn}, nil
}

// Insert writes rows into table via a prepared batch
// table may carry an explicit column list, e.g. "detections (ts, kind, value)"
func (c *CH) Insert(ctx context.Context, table string, rows [][]any) error {
	if c == nil || c.conn == nil {
		return errors.New("ch: nil connection")
	}
	if len(rows) == 0 {
		return nil
	}
	batch, err := c.conn.PrepareBatch(ctx, "INSERT INTO "+table)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err := batch.Append(r...); err != nil {
			_ = batch.Abort()
			return err
		}
	}
	return batch.Send()
}

// Query runs a query and returns ch.Rows
func (c *CH) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if c == nil || c.conn == nil {
		return nil, errors.New("ch: nil connection")
	}
	rs, err := c.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return driverRows{r: rs}, nil
}

// Ping verifies connectivity
func (c *CH) Ping(ctx context.Context) error {
	if c == nil || c.conn == nil {
		return errors.New("ch: nil connection")
	}
	return c.conn.Ping(ctx)
}

// Close closes resources
func (c *CH) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// driverRows adapts driver.Rows to the ch.Rows seam
type driverRows struct{ r driver.Rows }

func (d driverRows) Next() bool             { return d.r.Next() }
func (d driverRows) Scan(dest ...any) error { return d.r.Scan(dest...) }
func (d driverRows) Err() error             { return d.r.Err() }
func (d driverRows) Close() error           { return d.r.Close() }
func (d driverRows) Columns() []string      { return d.r.Columns() }
