package grpc

import (
	"errors"
	"github.com/litetable/litetable-bulkread/internal/litetable"
	"github.com/litetable/litetable-db/pkg/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

//go:generate mockgen -destination=litetable_mock.go -package=grpc -source=litetable.go

// rowReader is the read side of the in-memory row store.
type rowReader interface {
	GetRowByFamily(key, family string) (litetable.VersionedQualifier, bool)
	FilterRowsByPrefix(prefix string) (litetable.Data, bool)
	FilterRowsByRegex(regex string) (litetable.Data, bool)
}

type lt struct {
	proto.UnimplementedLitetableServiceServer
	rows rowReader
}

func (l *lt) validateRead(msg *proto.ReadRequest) error {
	var errGrp []error
	if msg.GetFamily() == "" {
		errGrp = append(errGrp, status.Errorf(codes.InvalidArgument, "family required"))
	}
	if msg.GetRowKey() == "" {
		errGrp = append(errGrp, status.Errorf(codes.InvalidArgument, "rowKey required"))
	}
	if msg.GetLatest() < 0 {
		errGrp = append(errGrp, status.Errorf(codes.InvalidArgument, "latest must not be negative"))
	}

	return errors.Join(errGrp...)
}
