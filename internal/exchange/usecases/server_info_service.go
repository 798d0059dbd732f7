package usecases

import (
	"context"
	"essensys-server/internal/exchange/domain"
	"slices"
)

// DefaultRequestedIndices are the exchange indices the server asks clients to report
// in their status updates.
var DefaultRequestedIndices = []domain.Index{613, 607, 615, 590, 349, 350, 351, 352, 363, 425, 426, 920}

func NewServerInfoService(requested []domain.Index) *SimpleServerInfoService {
	if len(requested) == 0 {
		requested = DefaultRequestedIndices
	}
	return &SimpleServerInfoService{requested: slices.Clone(requested)}
}

var _ ServerInfoService = (*SimpleServerInfoService)(nil)

type SimpleServerInfoService struct {
	requested []domain.Index
}

// Get always reports the client as connected: it is, since it is asking.
func (s *SimpleServerInfoService) Get(_ context.Context, _ string) (domain.ServerInfo, error) {
	return domain.NewServerInfo(slices.Clone(s.requested)), nil
}
