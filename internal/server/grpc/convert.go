package grpc

import (
	"github.com/litetable/litetable-bulkread/internal/litetable"
	"github.com/litetable/litetable-db/pkg/proto"
)

// toProtoData converts read results to the wire layout. Version order is preserved.
func toProtoData(rows map[string]*litetable.Row) *proto.LitetableData {
	out := &proto.LitetableData{
		Rows: make(map[string]*proto.Row, len(rows)),
	}
	for rowKey, row := range rows {
		cols := make(map[string]*proto.VersionedQualifier, len(row.Columns))
		for family, qualifiers := range row.Columns {
			cols[family] = toProtoFamily(qualifiers)
		}
		out.Rows[rowKey] = &proto.Row{Key: row.Key, Cols: cols}
	}
	return out
}

func toProtoFamily(qualifiers litetable.VersionedQualifier) *proto.VersionedQualifier {
	family := &proto.VersionedQualifier{
		Qualifiers: make(map[string]*proto.QualifierValues, len(qualifiers)),
	}
	for qualifier, versions := range qualifiers {
		values := make([]*proto.TimestampedValue, len(versions))
		for i, v := range versions {
			values[i] = &proto.TimestampedValue{Value: v.Value, TimestampUnix: v.Timestamp}
		}
		family.Qualifiers[qualifier] = &proto.QualifierValues{Values: values}
	}
	return family
}
