package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/cardarb-go/internal/adapters/persistence"
	"github.com/andrescamacho/cardarb-go/internal/application/mediator"
	"github.com/andrescamacho/cardarb-go/internal/application/pricing/queries"
	"github.com/andrescamacho/cardarb-go/internal/application/pricing/services"
	"github.com/andrescamacho/cardarb-go/internal/application/pricing/types"
	"github.com/andrescamacho/cardarb-go/internal/domain/extraction"
	"github.com/andrescamacho/cardarb-go/internal/domain/shared"
	"github.com/andrescamacho/cardarb-go/test/helpers"
)

var scanPayloads = map[string]string{
	"Charizard": helpers.CharizardPayload,
	"Pikachu":   helpers.PikachuPayload,
}

type scanHistoryContext struct {
	provider *services.EngineProvider
	mediator mediator.Mediator
	lastScan *queries.FindArbitrageOpportunitiesResponse
	records  []*types.ScanRecordDTO
}

func (sc *scanHistoryContext) reset() {
	sc.provider = nil
	sc.mediator = nil
	sc.lastScan = nil
	sc.records = nil
}

// Given steps

func (sc *scanHistoryContext) aPricingEngineWithDefaultSettings() error {
	engine, err := services.NewEngine(services.DefaultEngineSettings(), nil)
	if err != nil {
		return err
	}
	sc.provider = services.NewEngineProvider(engine)
	return nil
}

func (sc *scanHistoryContext) aScanHistoryBackedByTheTestDatabase() error {
	if sc.provider == nil {
		return fmt.Errorf("no pricing engine configured")
	}
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}

	repo := persistence.NewGormScanRecordRepository(helpers.SharedTestDB)
	sc.mediator = mediator.NewMediator()
	return queries.RegisterHandlers(sc.mediator, sc.provider, repo, shared.NewRealClock())
}

// When steps

func (sc *scanHistoryContext) scan(name string, record bool) error {
	raw, ok := scanPayloads[name]
	if !ok {
		return fmt.Errorf("no payload fixture named %q", name)
	}
	card, err := extraction.ParseCardPayload([]byte(raw))
	if err != nil {
		return err
	}

	resp, err := sc.mediator.Send(context.Background(), &queries.FindArbitrageOpportunitiesQuery{
		Card:   card,
		Record: record,
	})
	if err != nil {
		return err
	}
	sc.lastScan = resp.(*queries.FindArbitrageOpportunitiesResponse)
	return nil
}

func (sc *scanHistoryContext) iScanThePayloadWithRecordingEnabled(name string) error {
	return sc.scan(name, true)
}

func (sc *scanHistoryContext) iScanThePayload(name string) error {
	return sc.scan(name, false)
}

func (sc *scanHistoryContext) list(cardName string) error {
	resp, err := sc.mediator.Send(context.Background(), &queries.ListScanRecordsQuery{CardName: cardName})
	if err != nil {
		return err
	}
	sc.records = resp.(*queries.ListScanRecordsResponse).Records
	return nil
}

// Then steps

func (sc *scanHistoryContext) theScanShouldReportArbitrage() error {
	if sc.lastScan == nil || !sc.lastScan.HasArbitrage {
		return fmt.Errorf("expected the scan to report arbitrage")
	}
	return nil
}

func (sc *scanHistoryContext) theScanShouldBeRecorded() error {
	if sc.lastScan == nil || !sc.lastScan.Recorded {
		return fmt.Errorf("expected the scan to be recorded")
	}
	return nil
}

func (sc *scanHistoryContext) theScanShouldNotBeRecorded() error {
	if sc.lastScan == nil {
		return fmt.Errorf("no scan has run")
	}
	if sc.lastScan.Recorded {
		return fmt.Errorf("expected the scan not to be recorded")
	}
	return nil
}

func (sc *scanHistoryContext) theHistoryShouldContainRecords(expected int) error {
	if err := sc.list(""); err != nil {
		return err
	}
	if len(sc.records) != expected {
		return fmt.Errorf("expected %d records, got %d", expected, len(sc.records))
	}
	return nil
}

func (sc *scanHistoryContext) theHistoryForShouldContainRecords(cardName string, expected int) error {
	if err := sc.list(cardName); err != nil {
		return err
	}
	if len(sc.records) != expected {
		return fmt.Errorf("expected %d records for %s, got %d", expected, cardName, len(sc.records))
	}
	return nil
}

func (sc *scanHistoryContext) theLatestRecordShouldBeFor(cardName, arbitrage string) error {
	if len(sc.records) == 0 {
		return fmt.Errorf("no records listed")
	}
	latest := sc.records[0]
	if latest.CardName != cardName {
		return fmt.Errorf("expected latest record for %s, got %s", cardName, latest.CardName)
	}
	hasArbitrage := latest.OpportunityCount > 0
	if want := arbitrage == "with"; hasArbitrage != want {
		return fmt.Errorf("expected %s arbitrage, record has %d opportunities", arbitrage, latest.OpportunityCount)
	}
	if hasArbitrage && (latest.BestBuy == "" || latest.BestSell == "") {
		return fmt.Errorf("expected best pair to be recorded")
	}
	return nil
}

func InitializeScanHistoryScenario(ctx *godog.ScenarioContext) {
	sc := &scanHistoryContext{}

	ctx.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		sc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a pricing engine with default settings$`, sc.aPricingEngineWithDefaultSettings)
	ctx.Step(`^a scan history backed by the test database$`, sc.aScanHistoryBackedByTheTestDatabase)

	// When steps
	ctx.Step(`^I scan the "([^"]*)" payload with recording enabled$`, sc.iScanThePayloadWithRecordingEnabled)
	ctx.Step(`^I scan the "([^"]*)" payload$`, sc.iScanThePayload)

	// Then steps
	ctx.Step(`^the scan should report arbitrage$`, sc.theScanShouldReportArbitrage)
	ctx.Step(`^the scan should be recorded$`, sc.theScanShouldBeRecorded)
	ctx.Step(`^the scan should not be recorded$`, sc.theScanShouldNotBeRecorded)
	ctx.Step(`^the history should contain (\d+) records?$`, sc.theHistoryShouldContainRecords)
	ctx.Step(`^the history for "([^"]*)" should contain (\d+) records?$`, sc.theHistoryForShouldContainRecords)
	ctx.Step(`^the latest record should be for "([^"]*)" (with|without) arbitrage$`, sc.theLatestRecordShouldBeFor)
}
