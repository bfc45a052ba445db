package grpc

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/DRSN-tech/match-engine/pkg/e"
)

func GRPCErrorResponse(err error) error {
	switch {
	case errors.Is(err, e.ErrEmptyVectors):
		return status.Error(codes.InvalidArgument, e.ErrEmptyVectors.Error())
	case errors.Is(err, e.ErrInvalidTopK):
		return status.Error(codes.InvalidArgument, e.ErrInvalidTopK.Error())
	case errors.Is(err, e.ErrVectorDimensionWrong):
		return status.Error(codes.InvalidArgument, e.ErrVectorDimensionWrong.Error())
	case errors.Is(err, e.ErrIndexUnavailable):
		return status.Error(codes.Unavailable, e.ErrIndexUnavailable.Error())
	default:
		return status.Error(codes.Internal, e.ErrInternalServerError.Error())
	}
}
