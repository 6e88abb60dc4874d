package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wutims/draftengine/internal/testutil"
)

type stateViewResponse struct {
	BluePicks  []string `json:"bluePicks"`
	RedPicks   []string `json:"redPicks"`
	BlueBans   []string `json:"blueBans"`
	RedBans    []string `json:"redBans"`
	Phase      string   `json:"phase"`
	NextTeam   string   `json:"nextTeam,omitempty"`
	NextAction string   `json:"nextAction,omitempty"`
}

type simulatorResponse struct {
	ID    string            `json:"id"`
	State stateViewResponse `json:"state"`
}

func authedPost(t *testing.T, ts *testutil.TestServer, token, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, ts.APIURL(path), bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestRecommendHandler_CreateSimulatorAndSubmitAction(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().WithDisplayName("coach").BuildAndAuthenticate(t, ts)

	resp := authedPost(t, ts, token, "/recommend/simulate", map[string]any{
		"blueTeamId":   "blue-team",
		"redTeamId":    "red-team",
		"coachingSide": "blue",
		"seriesLength": 1,
	})
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var created simulatorResponse
	testutil.AssertJSONResponse(t, resp, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "blue", created.State.NextTeam)
	assert.Equal(t, "ban", created.State.NextAction)

	submitResp := authedPost(t, ts, token, "/recommend/simulate/"+created.ID+"/action", map[string]any{
		"champion": "Renekton",
	})
	defer submitResp.Body.Close()
	testutil.AssertStatusCode(t, submitResp, http.StatusOK)

	var state stateViewResponse
	testutil.AssertJSONResponse(t, submitResp, &state)
	assert.Equal(t, []string{"Renekton"}, state.BlueBans)
}

func TestRecommendHandler_SubmitAction_UnknownSessionReturns404(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().WithDisplayName("coach2").BuildAndAuthenticate(t, ts)

	resp := authedPost(t, ts, token, "/recommend/simulate/does-not-exist/action", map[string]any{"champion": "Renekton"})
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
}

func TestRecommendHandler_SubmitAction_WrongTurnReturns409(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().WithDisplayName("coach3").BuildAndAuthenticate(t, ts)

	resp := authedPost(t, ts, token, "/recommend/simulate", map[string]any{
		"blueTeamId":   "blue-team",
		"redTeamId":    "red-team",
		"coachingSide": "red",
		"seriesLength": 1,
	})
	defer resp.Body.Close()
	var created simulatorResponse
	testutil.AssertJSONResponse(t, resp, &created)

	submitResp := authedPost(t, ts, token, "/recommend/simulate/"+created.ID+"/action", map[string]any{"champion": "Renekton"})
	defer submitResp.Body.Close()
	testutil.AssertStatusCode(t, submitResp, http.StatusConflict)
}

func TestRecommendHandler_AnalyzeQuality(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().WithDisplayName("coach4").BuildAndAuthenticate(t, ts)

	resp := authedPost(t, ts, token, "/recommend/quality", map[string]any{
		"picks": []string{"Azir", "LeeSin"},
	})
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var report map[string]any
	testutil.AssertJSONResponse(t, resp, &report)
	assert.Contains(t, report, "OverallScore")
}
