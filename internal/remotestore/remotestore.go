// Package remotestore reads rows from a LiteTable server over its gRPC Read API.
//
// A scan reads every requested family once with a match-all regex to learn which rows exist
// and which columns they hold; pages are then cut from exact reads of one row and family.
// Rows holding none of the requested families cannot be seen through the Read API and are
// not part of a scan.
package remotestore

import (
	"context"
	"errors"
	"fmt"
	"github.com/litetable/litetable-bulkread/internal/litetable"
	"github.com/litetable/litetable-bulkread/internal/request"
	"github.com/litetable/litetable-bulkread/internal/store"
	"github.com/litetable/litetable-db/pkg/proto"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/status"
	"sort"
	"time"
)

const matchAll = ".*"

// Store is a store.RowStore backed by a LiteTable server.
type Store struct {
	address string
	conn    *grpc.ClientConn
	client  proto.LitetableServiceClient
}

type Config struct {
	// Address is the host:port of the server.
	Address string
	// Client replaces the dialed connection when set.
	Client proto.LitetableServiceClient
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Address == "" && c.Client == nil {
		errGrp = append(errGrp, fmt.Errorf("address or client required"))
	}
	return errors.Join(errGrp...)
}

// New creates the client. The connection is established lazily on the first call.
func New(cfg *Config) (*Store, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	s := &Store{
		address: cfg.Address,
		client:  cfg.Client,
	}
	if s.client != nil {
		return s, nil
	}

	conn, err := grpc.NewClient(cfg.Address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                15 * time.Second,
			Timeout:             5 * time.Second,
			PermitWithoutStream: true,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client for %s: %w", cfg.Address, err)
	}

	s.conn = conn
	s.client = proto.NewLitetableServiceClient(conn)
	return s, nil
}

// Close closes the connection, if this store dialed one.
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}
	log.Debug().Msgf("closing connection to %s", s.address)
	return s.conn.Close()
}

// rowHandle records the live columns a scan saw for one row.
type rowHandle struct {
	key     string
	columns map[string]map[string]struct{}
}

func (h *rowHandle) Key() []byte {
	return []byte(h.key)
}

func (h *rowHandle) HasColumn(sel request.Selector) bool {
	qualifiers := h.columns[sel.Family]
	if sel.IsFamily() {
		return len(qualifiers) > 0
	}
	_, ok := qualifiers[sel.Qualifier]
	return ok
}

type rowIterator struct {
	rows    []*rowHandle
	pos     int
	current *rowHandle
	err     error
	closed  bool
}

func (it *rowIterator) Next(ctx context.Context) bool {
	if it.closed || it.err != nil {
		return false
	}
	if err := ctx.Err(); err != nil {
		it.err = err
		return false
	}
	if it.pos >= len(it.rows) {
		it.current = nil
		return false
	}
	it.current = it.rows[it.pos]
	it.pos++
	return true
}

func (it *rowIterator) Row() store.RowHandle {
	if it.current == nil {
		return nil
	}
	return it.current
}

func (it *rowIterator) Err() error {
	return it.err
}

func (it *rowIterator) Close() error {
	it.closed = true
	it.rows = nil
	it.current = nil
	return nil
}

// OpenScan reads the latest version of every requested family and returns the rows in range
// that hold at least one of them, sorted by key.
func (s *Store) OpenScan(ctx context.Context, rng store.RowRange, columns []request.Selector) (store.RowIterator, error) {
	rows := make(map[string]*rowHandle)

	for _, family := range families(columns) {
		resp, err := s.client.Read(ctx, &proto.ReadRequest{
			Family:    family,
			RowKey:    matchAll,
			QueryType: proto.QueryType_REGEX,
			Latest:    1,
		})
		if status.Code(err) == codes.NotFound {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("scan family %s: %w", family, err)
		}

		for rowKey, row := range resp.GetRows() {
			if !rng.Contains([]byte(rowKey)) {
				continue
			}
			for qualifier, values := range row.GetCols()[family].GetQualifiers() {
				if len(values.GetValues()) == 0 {
					continue
				}
				h, ok := rows[rowKey]
				if !ok {
					h = &rowHandle{key: rowKey, columns: make(map[string]map[string]struct{})}
					rows[rowKey] = h
				}
				if h.columns[family] == nil {
					h.columns[family] = make(map[string]struct{})
				}
				h.columns[family][qualifier] = struct{}{}
			}
		}
	}

	it := &rowIterator{rows: make([]*rowHandle, 0, len(rows))}
	for _, h := range rows {
		it.rows = append(it.rows, h)
	}
	sort.Slice(it.rows, func(i, j int) bool {
		return it.rows[i].key < it.rows[j].key
	})

	log.Debug().Msgf("remote scan found %d rows in [%q, %q)", len(it.rows), rng.Start, rng.End)
	return it, nil
}

// FetchPage reads one family of one row, narrowed to the qualifier when the selector names
// one, and cuts the requested page from it.
func (s *Store) FetchPage(ctx context.Context, row store.RowHandle, req *store.PageRequest) (*store.Page, error) {
	h, ok := row.(*rowHandle)
	if !ok {
		return nil, fmt.Errorf("row handle was not produced by this store")
	}

	msg := &proto.ReadRequest{
		Family:    req.Column.Family,
		RowKey:    h.key,
		QueryType: proto.QueryType_EXACT,
	}
	if !req.Column.IsFamily() {
		msg.Qualifiers = []string{req.Column.Qualifier}
	}

	resp, err := s.client.Read(ctx, msg)
	if err != nil && status.Code(err) != codes.NotFound {
		return nil, fmt.Errorf("read row %s family %s: %w", h.key, req.Column.Family, err)
	}

	qualifiers := toVersionedQualifier(resp.GetRows()[h.key].GetCols()[req.Column.Family])
	return store.PageColumn(req.Column.Family, qualifiers, req)
}

func toVersionedQualifier(vq *proto.VersionedQualifier) litetable.VersionedQualifier {
	out := make(litetable.VersionedQualifier, len(vq.GetQualifiers()))
	for qualifier, values := range vq.GetQualifiers() {
		for _, v := range values.GetValues() {
			out[qualifier] = append(out[qualifier], litetable.TimestampedValue{
				Value:     v.GetValue(),
				Timestamp: int64(v.GetTimestampUnix()),
			})
		}
	}
	return out
}

func families(columns []request.Selector) []string {
	seen := make(map[string]struct{}, len(columns))
	var out []string
	for _, sel := range columns {
		if _, ok := seen[sel.Family]; ok {
			continue
		}
		seen[sel.Family] = struct{}{}
		out = append(out, sel.Family)
	}
	sort.Strings(out)
	return out
}
