package queries

import (
	"github.com/andrescamacho/cardarb-go/internal/application/mediator"
	"github.com/andrescamacho/cardarb-go/internal/application/pricing/services"
	"github.com/andrescamacho/cardarb-go/internal/domain/shared"
	"github.com/andrescamacho/cardarb-go/internal/domain/trading"
)

// RegisterHandlers registers every pricing query handler on m.
func RegisterHandlers(
	m mediator.Mediator,
	provider *services.EngineProvider,
	history trading.ScanRecordRepository,
	clock shared.Clock,
) error {
	if err := mediator.RegisterHandler[*ExtractPricePointsQuery](m, NewExtractPricePointsHandler(provider)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*ValidatePricePointQuery](m, NewValidatePricePointHandler(provider)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*FindArbitrageOpportunitiesQuery](m, NewFindArbitrageOpportunitiesHandler(provider, history, clock)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*ExplainOpportunitiesQuery](m, NewExplainOpportunitiesHandler(provider)); err != nil {
		return err
	}
	return mediator.RegisterHandler[*ListScanRecordsQuery](m, NewListScanRecordsHandler(history))
}
