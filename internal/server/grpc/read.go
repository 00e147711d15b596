package grpc

import (
	"context"
	"github.com/litetable/litetable-bulkread/internal/litetable"
	"github.com/litetable/litetable-bulkread/internal/store"
	"github.com/litetable/litetable-db/pkg/proto"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"time"
)

// Read serves one family of the rows matched by key, prefix or regex. Tombstoned versions are
// never returned and latest > 0 keeps only the newest versions of every qualifier.
func (l *lt) Read(ctx context.Context, msg *proto.ReadRequest) (*proto.LitetableData, error) {
	now := time.Now()
	log.Debug().Msgf("Read request: %v", msg)
	if err := l.validateRead(msg); err != nil {
		return nil, err
	}

	q := &readQuery{
		family:     msg.GetFamily(),
		qualifiers: msg.GetQualifiers(),
		latest:     int(msg.GetLatest()),
	}

	var data litetable.Data
	switch msg.GetQueryType() {
	case proto.QueryType_EXACT:
		if family, ok := l.rows.GetRowByFamily(msg.GetRowKey(), q.family); ok {
			data = litetable.Data{
				msg.GetRowKey(): {q.family: family},
			}
		}
	case proto.QueryType_PREFIX:
		data, _ = l.rows.FilterRowsByPrefix(msg.GetRowKey())
	case proto.QueryType_REGEX:
		data, _ = l.rows.FilterRowsByRegex(msg.GetRowKey())
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unsupported query type %v", msg.GetQueryType())
	}

	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	result := q.filter(data)
	if len(result) == 0 {
		return nil, status.Errorf(codes.NotFound, "no rows found for %s in family %s",
			msg.GetRowKey(), q.family)
	}

	log.Debug().Msgf("Read latency: %v", time.Since(now))
	return toProtoData(result), nil
}

// readQuery is the family, qualifier and version selection of one read.
type readQuery struct {
	family     string
	qualifiers []string
	latest     int
}

// filter keeps the requested family of every row. Rows left without a live qualifier are
// dropped.
func (q *readQuery) filter(data litetable.Data) map[string]*litetable.Row {
	results := make(map[string]*litetable.Row)

	for rowKey, rowData := range data {
		family, exists := rowData[q.family]
		if !exists {
			continue
		}

		selected := make(litetable.VersionedQualifier)
		if len(q.qualifiers) == 0 {
			for qualifier, values := range family {
				if live := store.LatestN(values, q.latest); len(live) > 0 {
					selected[qualifier] = live
				}
			}
		} else {
			for _, qualifier := range q.qualifiers {
				if live := store.LatestN(family[qualifier], q.latest); len(live) > 0 {
					selected[qualifier] = live
				}
			}
		}

		if len(selected) == 0 {
			continue
		}

		results[rowKey] = &litetable.Row{
			Key:     rowKey,
			Columns: map[string]litetable.VersionedQualifier{q.family: selected},
		}
	}

	return results
}
