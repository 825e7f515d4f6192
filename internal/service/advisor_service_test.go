package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/advisor"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
)

func geminiStub(t *testing.T, reply string, capture *map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			*capture = body
		}
		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"parts": []map[string]string{{"text": reply}}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func advisorFixture() models.Document {
	doc := emptyDocument("pw")
	doc.Students = []models.Student{
		{ID: "s1", Name: "Ana", ProfessorID: "st1"},
		{ID: "s2", Name: "Bia", ProfessorID: "st2"},
	}
	return doc
}

func TestAdvisorAskUsesScopedData(t *testing.T) {
	var captured map[string]interface{}
	server := geminiStub(t, "OSS! Ana está indo muito bem no tatame.", &captured)
	defer server.Close()

	client := advisor.NewClient(server.URL, "gemini-test", "key", time.Second, nil)
	svc := NewAdvisorService(newMemStore(advisorFixture()), client, nil, nil)

	answer, err := svc.Ask(context.Background(), staffTestSession("st1", "Rafael"), "Como está a Ana?")
	require.NoError(t, err)
	assert.Contains(t, answer, "Ana")

	// the prompt carries only the staff member's own students
	raw, err := json.Marshal(captured)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Ana")
	assert.NotContains(t, string(raw), "Bia")
}

func TestAdvisorAskEmptyQuestion(t *testing.T) {
	client := advisor.NewClient("http://unused", "gemini-test", "key", time.Second, nil)
	svc := NewAdvisorService(newMemStore(advisorFixture()), client, nil, nil)

	_, err := svc.Ask(context.Background(), adminTestSession(), "")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}

func TestAdvisorAskFallsBackOnTransportFailure(t *testing.T) {
	client := advisor.NewClient("http://127.0.0.1:1", "gemini-test", "key", 200*time.Millisecond, nil)
	svc := NewAdvisorService(newMemStore(advisorFixture()), client, nil, nil)

	answer, err := svc.Ask(context.Background(), adminTestSession(), "Alguém treinou hoje?")
	require.NoError(t, err)
	assert.Equal(t, fallbackAnswer, answer)
}

func TestAdvisorAskCancelledContextSuppressesFallback(t *testing.T) {
	server := geminiStub(t, "OSS! Resposta que nunca deve aparecer.", nil)
	defer server.Close()

	client := advisor.NewClient(server.URL, "gemini-test", "key", time.Second, nil)
	svc := NewAdvisorService(newMemStore(advisorFixture()), client, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// a closed chat must surface the cancellation, never the fallback answer
	answer, err := svc.Ask(ctx, adminTestSession(), "Alguém treinou hoje?")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrAdvisorUnavailable))
	assert.Empty(t, answer)
}

func TestAdvisorInsightsParsesReport(t *testing.T) {
	report := `{"summary":"Academia saudável.","promotionSuggestions":[{"studentName":"Ana","reason":"30 aulas desde o último grau"}],"financialWarnings":[],"retentionRisk":["Bia"]}`
	server := geminiStub(t, report, nil)
	defer server.Close()

	client := advisor.NewClient(server.URL, "gemini-test", "key", time.Second, nil)
	svc := NewAdvisorService(newMemStore(advisorFixture()), client, nil, nil)

	insights, err := svc.GenerateInsights(context.Background(), adminTestSession())
	require.NoError(t, err)
	assert.Equal(t, "Academia saudável.", insights.Summary)
	require.Len(t, insights.PromotionSuggestions, 1)
	assert.Equal(t, "Ana", insights.PromotionSuggestions[0].StudentName)
	assert.Equal(t, []string{"Bia"}, insights.RetentionRisk)
	assert.Empty(t, insights.FinancialWarnings)
}

func TestAdvisorInsightsUnconfigured(t *testing.T) {
	client := advisor.NewClient("http://unused", "gemini-test", "", time.Second, nil)
	svc := NewAdvisorService(newMemStore(advisorFixture()), client, nil, nil)

	_, err := svc.GenerateInsights(context.Background(), adminTestSession())
	assert.True(t, appErrors.HasCode(err, appErrors.ErrAdvisorUnavailable))
}
