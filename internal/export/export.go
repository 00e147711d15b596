// Package export writes the records of a row range as JSON lines.
package export

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/litetable/litetable-bulkread/internal/cursor"
	"github.com/litetable/litetable-bulkread/internal/flatten"
	"github.com/litetable/litetable-bulkread/internal/metrics"
	"github.com/litetable/litetable-bulkread/internal/request"
	"github.com/litetable/litetable-bulkread/internal/store"
	"github.com/rs/zerolog/log"
	"io"
	"time"
)

type Config struct {
	Store   store.RowStore
	Range   store.RowRange
	Request *request.Request
	Out     io.Writer
	Metrics *metrics.Metrics
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Store == nil {
		errGrp = append(errGrp, errors.New("store is required"))
	}
	if c.Out == nil {
		errGrp = append(errGrp, errors.New("output is required"))
	}
	return errors.Join(errGrp...)
}

// Result counts what an export wrote.
type Result struct {
	Rows    int
	Records int
}

// Run writes one JSON object per record: {"key": ..., "cols": {family: {qualifier: [...]}}}.
func Run(ctx context.Context, cfg *Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	c, err := cursor.Open(ctx, &cursor.Config{
		Store:   cfg.Store,
		Range:   cfg.Range,
		Request: cfg.Request,
		Metrics: cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	defer c.Close()

	w := bufio.NewWriter(cfg.Out)
	enc := json.NewEncoder(w)

	var rec flatten.Record
	for {
		ok, err := c.Next(ctx, &rec)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if err := enc.Encode(rec.Row()); err != nil {
			return nil, fmt.Errorf("failed to write record for row %q: %w", rec.Key, err)
		}
	}

	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush output: %w", err)
	}

	res := &Result{Rows: c.Rows(), Records: c.Records()}
	log.Info().
		Int("rows", res.Rows).
		Int("records", res.Records).
		Dur("elapsed", time.Since(now)).
		Msg("export finished")
	return res, nil
}
