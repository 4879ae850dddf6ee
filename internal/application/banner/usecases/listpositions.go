package usecases

import (
	"context"

	"finderads/internal/application/banner/dto"
	"finderads/internal/domain/banner"
)

// ListPositionsUseCase returns the position catalog with per-day costs.
type ListPositionsUseCase struct{}

func NewListPositionsUseCase() *ListPositionsUseCase {
	return &ListPositionsUseCase{}
}

func (uc *ListPositionsUseCase) Execute(ctx context.Context) []*dto.PositionDTO {
	return dto.ToPositionDTOList(banner.AllPositions())
}
