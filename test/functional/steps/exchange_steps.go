package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"essensys-server/internal/infra/httpserver"
)

type exchangeKV struct {
	K int    `json:"k"`
	V string `json:"v"`
}

type pendingAction struct {
	GUID   string       `json:"guid"`
	Params []exchangeKV `json:"params"`
}

type actionsDocument struct {
	Actions []pendingAction `json:"actions"`
}

func (fc *FeatureContext) iRequestTheServerInfos(ctx context.Context) error {
	response, err := fc.driver.ServerInfos(ctx)
	if err != nil {
		return err
	}
	fc.response = response
	return nil
}

func (fc *FeatureContext) iSubmitTheStatusDocument(ctx context.Context, document string) error {
	response, err := fc.driver.PostStatus(ctx, []byte(document))
	if err != nil {
		return err
	}
	fc.response = response
	return nil
}

func (fc *FeatureContext) iInjectIndexWithValue(ctx context.Context, index int, value string) error {
	response, err := fc.driver.Inject(ctx, exchangeKV{K: index, V: value})
	if err != nil {
		return err
	}
	fc.response = response
	return nil
}

func (fc *FeatureContext) theActionQueueIsEmpty(ctx context.Context) error {
	document, err := fc.pendingActions(ctx)
	if err != nil {
		return err
	}
	for _, action := range document.Actions {
		if _, err := fc.driver.Done(ctx, action.GUID); err != nil {
			return err
		}
	}
	return fc.theActionQueueShouldBeEmpty(ctx)
}

func (fc *FeatureContext) iAcknowledgeTheFirstPendingAction(ctx context.Context) error {
	document, err := fc.pendingActions(ctx)
	if err != nil {
		return err
	}
	fc.require.NotEmpty(document.Actions, "Expected a pending action")

	fc.guid = document.Actions[0].GUID
	response, err := fc.driver.Done(ctx, fc.guid)
	if err != nil {
		return err
	}
	fc.response = response
	return nil
}

func (fc *FeatureContext) iAcknowledgeTheSameActionAgain(ctx context.Context) error {
	fc.require.NotEmpty(fc.guid, "No action was acknowledged before")

	response, err := fc.driver.Done(ctx, fc.guid)
	if err != nil {
		return err
	}
	fc.response = response
	return nil
}

func (fc *FeatureContext) theResponseStatusCodeShouldBe(code int) error {
	fc.require.NotNil(fc.response, "No response recorded")
	fc.require.Equal(code, fc.response.StatusCode, "Unexpected status code: %s", fc.response.Body)
	return nil
}

func (fc *FeatureContext) theResponseContentTypeShouldBeTheLegacyOne() error {
	fc.require.Equal(httpserver.LegacyContentType, fc.response.Header.Get("Content-Type"))
	return nil
}

func (fc *FeatureContext) theServerInfosShouldReportAConnectedServer() error {
	var data map[string]any
	fc.require.NoError(json.Unmarshal(fc.response.Body, &data))
	fc.require.Contains(data, "isconnected")
	fc.require.Equal(true, data["isconnected"])
	fc.require.NotEmpty(data["infos"])
	return nil
}

func (fc *FeatureContext) thereShouldBePendingActions(ctx context.Context, count int) error {
	document, err := fc.pendingActions(ctx)
	if err != nil {
		return err
	}
	fc.require.Len(document.Actions, count)
	return nil
}

func (fc *FeatureContext) theFirstPendingActionShouldContain(ctx context.Context, index int, value string) error {
	document, err := fc.pendingActions(ctx)
	if err != nil {
		return err
	}
	fc.require.NotEmpty(document.Actions, "Expected a pending action")

	for _, kv := range document.Actions[0].Params {
		if kv.K == index {
			fc.require.Equal(value, kv.V, "Unexpected value for index %d", index)
			return nil
		}
	}
	fc.require.Failf("missing index", "index %d not found in %v", index, document.Actions[0].Params)
	return nil
}

func (fc *FeatureContext) theActionsDocumentShouldStartWithKey(ctx context.Context, key string) error {
	response, err := fc.driver.MyActions(ctx)
	if err != nil {
		return err
	}
	fc.require.Equal(200, response.StatusCode)

	decoder := json.NewDecoder(bytes.NewReader(response.Body))
	_, err = decoder.Token()
	fc.require.NoError(err)
	first, err := decoder.Token()
	fc.require.NoError(err)
	fc.require.Equal(key, first)
	return nil
}

func (fc *FeatureContext) theActionQueueShouldBeEmpty(ctx context.Context) error {
	document, err := fc.pendingActions(ctx)
	if err != nil {
		return err
	}
	fc.require.Empty(document.Actions)
	return nil
}

func (fc *FeatureContext) pendingActions(ctx context.Context) (actionsDocument, error) {
	var document actionsDocument
	response, err := fc.driver.MyActions(ctx)
	if err != nil {
		return document, err
	}
	fc.require.Equal(200, response.StatusCode, "Unexpected status code listing actions")
	fc.require.NoError(json.Unmarshal(response.Body, &document))
	return document, nil
}
