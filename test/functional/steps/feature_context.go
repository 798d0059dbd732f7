package steps

import (
	"context"
	"essensys-server/internal/conformance"
	"essensys-server/internal/exchange/httpapi"
	"essensys-server/internal/exchange/persistence"
	"essensys-server/internal/exchange/usecases"
	"essensys-server/internal/infra/async"
	"essensys-server/internal/infra/httpserver"
	"net/http/httptest"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/require"
)

type FeatureContext struct {
	baseURL string
	server  *httptest.Server
	broker  async.InternalBroker

	t       godog.TestingT
	require *require.Assertions

	driver   *conformance.APIDriver
	response *conformance.Response
	guid     string
	report   conformance.Report
}

// NewFeatureContext targets baseURL, or an in-process server when it is empty.
func NewFeatureContext(baseURL string) *FeatureContext {
	return &FeatureContext{baseURL: baseURL}
}

func (fc *FeatureContext) InitializeSuite(suite *godog.TestSuiteContext) {
	suite.BeforeSuite(func() {
		if fc.baseURL != "" {
			return
		}
		fc.broker = async.NewLocalBroker()
		actions := usecases.NewActionService(persistence.NewMemoryActionQueue(), fc.broker)
		status := usecases.NewStatusService(persistence.NewMemoryExchangeTable(), persistence.NewMemoryClientRegistry())
		infos := usecases.NewServerInfoService(nil)

		server := httpserver.NewServer(httpserver.Options{},
			httpapi.NewLegacyController(infos, status, actions),
			httpapi.NewAdminController(actions, status),
		)
		fc.server = httptest.NewServer(server.Handler())
		fc.baseURL = fc.server.URL
	})

	suite.AfterSuite(func() {
		if fc.server != nil {
			fc.server.Close()
			fc.broker.Stop()
		}
	})
}

func (fc *FeatureContext) RegisterSteps(ctx *godog.ScenarioContext) {
	// Exchange steps
	ctx.When(`^I request the server infos$`, fc.iRequestTheServerInfos)
	ctx.When(`^I submit the status document '([^']*)'$`, fc.iSubmitTheStatusDocument)
	ctx.Step(`^I inject index (\d+) with value "([^"]*)"$`, fc.iInjectIndexWithValue)
	ctx.Given(`^the action queue is empty$`, fc.theActionQueueIsEmpty)
	ctx.When(`^I acknowledge the first pending action$`, fc.iAcknowledgeTheFirstPendingAction)
	ctx.When(`^I acknowledge the same action again$`, fc.iAcknowledgeTheSameActionAgain)

	ctx.Then(`^the response status code should be (\d+)$`, fc.theResponseStatusCodeShouldBe)
	ctx.Then(`^the response content type should be the legacy one$`, fc.theResponseContentTypeShouldBeTheLegacyOne)
	ctx.Then(`^the server infos should report a connected server$`, fc.theServerInfosShouldReportAConnectedServer)
	ctx.Then(`^there should be (\d+) pending actions?$`, fc.thereShouldBePendingActions)
	ctx.Then(`^the first pending action should contain index (\d+) with value "([^"]*)"$`, fc.theFirstPendingActionShouldContain)
	ctx.Then(`^the actions document should start with the "([^"]*)" key$`, fc.theActionsDocumentShouldStartWithKey)
	ctx.Then(`^the action queue should be empty$`, fc.theActionQueueShouldBeEmpty)

	// Conformance steps
	ctx.When(`^I run the conformance checker$`, fc.iRunTheConformanceChecker)
	ctx.Then(`^every conformance step should pass$`, fc.everyConformanceStepShouldPass)

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		fc.t = godog.T(ctx)
		fc.require = require.New(fc.t)

		fc.reset()
		return ctx, nil
	})
}

func (fc *FeatureContext) reset() {
	fc.driver = conformance.NewAPIDriver(fc.baseURL, nil)
	fc.response = nil
	fc.guid = ""
	fc.report = conformance.Report{}
}
