package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecoscan-backend/middleware"
	"ecoscan-backend/models"
	"ecoscan-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedOracle always classifies as Organic/Compost worth 12 points.
type fixedOracle struct{}

func (fixedOracle) Classify(_ []byte) models.ClassificationResult {
	return models.ClassificationResult{Type: "Organic", Action: models.ActionCompost, Disposal: "green compost bin", Points: 12}
}

func newTestApp() (*fiber.App, *services.MemStore) {
	store := services.NewMemStore()

	scoreService := services.NewScoreService(store)
	leaderboardService := services.NewLeaderboardService(store)
	achievementService := services.NewAchievementService(store, services.DefaultAchievementRules())
	achievementService.Notify = nil
	challengeService := services.NewChallengeService(store, store)
	feedbackService := services.NewFeedbackService(store)
	classifyService := services.NewClassifyService(store, fixedOracle{}, achievementService)

	app := fiber.New()
	app.Use(middleware.RequireUsername())
	SetupClassifyRoutes(app, classifyService)
	SetupChallengeRoutes(app, challengeService)
	SetupBoardRoutes(app, scoreService, leaderboardService, achievementService, feedbackService, store)
	return app, store
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func classifyRequest(t *testing.T, username string, withImage bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if username != "" {
		require.NoError(t, writer.WriteField("username", username))
	}
	if withImage {
		part, err := writer.CreateFormFile("image", "waste.jpg")
		require.NoError(t, err)
		_, err = io.WriteString(part, "not-a-real-jpeg")
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	req := httptest.NewRequest("POST", "/classify", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestClassifyRequiresUsername(t *testing.T) {
	app, _ := newTestApp()

	resp, err := app.Test(classifyRequest(t, "", true))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Username is required.", decodeBody(t, resp)["error"])
}

func TestClassifyRequiresImage(t *testing.T) {
	app, _ := newTestApp()

	resp, err := app.Test(classifyRequest(t, "ana", false))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No image uploaded.", decodeBody(t, resp)["error"])
}

func TestClassifyRecordsAndAwards(t *testing.T) {
	app, store := newTestApp()

	resp, err := app.Test(classifyRequest(t, "ana", true))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Organic", body["type"])
	assert.Equal(t, "Compost", body["action"])
	assert.Equal(t, "green compost bin", body["disposal"])
	assert.EqualValues(t, 12, body["points"])

	points, err := store.GetPoints("ana")
	require.NoError(t, err)
	assert.Equal(t, 12, points)
}

func TestClassifyThirdSubmissionCarriesDailyBonus(t *testing.T) {
	app, store := newTestApp()

	var body map[string]interface{}
	for i := 0; i < 3; i++ {
		resp, err := app.Test(classifyRequest(t, "ana", true))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body = decodeBody(t, resp)
	}

	assert.EqualValues(t, services.DailyBonusPoints, body["daily_bonus"])
	// Third compost event also crosses the Compost King threshold.
	assert.Contains(t, body["achievements"], "Compost King")

	points, err := store.GetPoints("ana")
	require.NoError(t, err)
	assert.Equal(t, 3*12+services.DailyBonusPoints, points)
}

func TestHistoryEndpoint(t *testing.T) {
	app, _ := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/history", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	_, err = app.Test(classifyRequest(t, "ana", true))
	require.NoError(t, err)

	resp, err = app.Test(httptest.NewRequest("GET", "/history?username=ana", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var events []models.Classification
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&events))
	require.Len(t, events, 1)
	assert.Equal(t, "Organic", events[0].Type)
}

func TestUserUpsertAndLeaderboard(t *testing.T) {
	app, _ := newTestApp()

	resp := postJSON(t, app, "/user", map[string]interface{}{"username": "ana"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "points are required")

	resp = postJSON(t, app, "/user", map[string]interface{}{"username": "ana", "points": 120})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "User updated.", decodeBody(t, resp)["message"])

	resp = postJSON(t, app, "/leaderboard", map[string]interface{}{"username": "bob", "points": 80})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err := app.Test(httptest.NewRequest("GET", "/leaderboard", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var entries []models.LeaderboardEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "ana", entries[0].Username)
	assert.Equal(t, 120, entries[0].Points)
}

func TestUserPostRejectsNegativePoints(t *testing.T) {
	app, store := newTestApp()

	resp := postJSON(t, app, "/user", map[string]interface{}{"username": "ana", "points": -5})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Points must be non-negative.", decodeBody(t, resp)["error"])

	resp = postJSON(t, app, "/leaderboard", map[string]interface{}{"username": "ana", "points": -1})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	total, err := store.GetPoints("ana")
	require.NoError(t, err)
	assert.Zero(t, total, "a rejected sync stores nothing")

	// Zero is a legal total.
	resp = postJSON(t, app, "/user", map[string]interface{}{"username": "ana", "points": 0})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUserPostMissingUsername(t *testing.T) {
	app, _ := newTestApp()

	resp := postJSON(t, app, "/user", map[string]interface{}{"points": 10})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Username is required.", decodeBody(t, resp)["error"])
}

func TestGuideEndpoint(t *testing.T) {
	app, _ := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/guide", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var all []models.GuideEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	assert.Len(t, all, 5)

	resp, err = app.Test(httptest.NewRequest("GET", "/guide?search=metal", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var filtered []models.GuideEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&filtered))
	require.Len(t, filtered, 1)
	assert.Equal(t, "Metal", filtered[0].Type)
}

func TestChallengeFlow(t *testing.T) {
	app, store := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/challenges?username=ana", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var views []models.ChallengeView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
	require.Len(t, views, 3)
	assert.False(t, views[0].Completed)

	resp = postJSON(t, app, "/challenges", map[string]interface{}{"challengeId": views[0].ID, "username": "ana"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, views[0].Points, decodeBody(t, resp)["points"])

	points, err := store.GetPoints("ana")
	require.NoError(t, err)
	assert.Equal(t, views[0].Points, points)

	// Bob sees the row as open but loses the claim.
	resp, err = app.Test(httptest.NewRequest("GET", "/challenges?username=bob", nil))
	require.NoError(t, err)
	var bobViews []models.ChallengeView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&bobViews))
	assert.False(t, bobViews[0].Completed)

	resp = postJSON(t, app, "/challenges", map[string]interface{}{"challengeId": views[0].ID, "username": "bob"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Challenge not found or already completed.", decodeBody(t, resp)["error"])
}

func TestChallengePostValidation(t *testing.T) {
	app, _ := newTestApp()

	resp := postJSON(t, app, "/challenges", map[string]interface{}{"username": "ana"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Challenge ID and username required.", decodeBody(t, resp)["error"])

	resp = postJSON(t, app, "/challenges", map[string]interface{}{"challengeId": "some-id"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Username is required.", decodeBody(t, resp)["error"])
}

func TestFeedbackEndpoint(t *testing.T) {
	app, _ := newTestApp()

	resp := postJSON(t, app, "/feedback", map[string]interface{}{"username": "ana"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Feedback is required.", decodeBody(t, resp)["error"])

	resp = postJSON(t, app, "/feedback", map[string]interface{}{"feedback": "love it"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Feedback saved.", decodeBody(t, resp)["message"])
}

func TestProfileEndpoint(t *testing.T) {
	app, _ := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/profile", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, app, "/user", map[string]interface{}{"username": "ana", "points": 150})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/profile?username=ana", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.EqualValues(t, 150, body["points"])
	assert.Equal(t, "Eco Hero", body["level"])
	assert.EqualValues(t, 1, body["rank"])
	assert.Equal(t, []interface{}{}, body["achievements"])

	// Unknown users read as fresh: zero points, base level, unranked.
	resp, err = app.Test(httptest.NewRequest("GET", "/profile?username=ghost", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.EqualValues(t, 0, body["points"])
	assert.Equal(t, "Eco Novice", body["level"])
	assert.Nil(t, body["rank"])
}
