package litetable

// TimestampedValue stores a value with its timestamp
type TimestampedValue struct {
	Value       []byte `json:"value"`
	Timestamp   int64  `json:"timestamp"`
	IsTombstone bool   `json:"tombstone,omitempty"` // hides this and every older version
}

// VersionedQualifier maps qualifiers to their timestamped values
type VersionedQualifier map[string][]TimestampedValue

// Data is the in-memory layout of a table: rowKey → family → qualifier → versions.
type Data map[string]map[string]VersionedQualifier

// Row defines a row of data in LiteTable:
//
// Example:
//
//	Row{
//	  Key: "row1",
//	  Columns: map[string]VersionedQualifier{
//	    "family1": {
//	      "qualifier1": {{Value: []byte("value1"), Timestamp: 2}, {Value: []byte("v0"), Timestamp: 1}},
//	      "qualifier2": {{Value: []byte("value2"), Timestamp: 1}},
//	    },
//	    "family2": {
//	      "qualifier1": {{Value: []byte("value3"), Timestamp: 1}},
//	    },
//	  },
//	}
//
// This represents a row with key "row1" containing two families: "family1" and "family2",
// each with their respective qualifiers and versions, newest first.
type Row struct {
	Key     string                        `json:"key"`
	Columns map[string]VersionedQualifier `json:"cols"` // family → qualifier → []TimestampedValue
}

// Cell is a single version of a single column of a row.
type Cell struct {
	Family    string `json:"family"`
	Qualifier string `json:"qualifier"`
	Timestamp int64  `json:"timestamp"`
	Value     []byte `json:"value"`
}
