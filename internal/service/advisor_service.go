package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/advisor"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/document"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
)

// fallbackAnswer is returned when the chat advisor cannot be reached, so
// the screen always has something to show.
const fallbackAnswer = "Desculpe, mestre. Tive um problema técnico agora. Podemos tentar novamente em um minuto? OSS!"

// PromotionSuggestion names a student the advisor considers ready for a
// stripe or belt.
type PromotionSuggestion struct {
	StudentName string `json:"studentName"`
	Reason      string `json:"reason"`
}

// FinancialWarning flags an overdue student.
type FinancialWarning struct {
	StudentName string  `json:"studentName"`
	AmountDue   float64 `json:"amountDue"`
}

// Insights is the structured management report produced by the advisor.
type Insights struct {
	Summary              string                `json:"summary"`
	PromotionSuggestions []PromotionSuggestion `json:"promotionSuggestions"`
	FinancialWarnings    []FinancialWarning    `json:"financialWarnings"`
	RetentionRisk        []string              `json:"retentionRisk"`
}

// advisorObserver counts advisor calls, typically the metrics service.
type advisorObserver interface {
	ObserveAdvisorRequest(operation string, err error)
}

// AdvisorService feeds the session's visible slice of the academy to the
// Gemini advisor. Staff sessions only ever expose their own students to
// the model.
type AdvisorService struct {
	store    documentStore
	client   *advisor.Client
	observer advisorObserver
	logger   *zap.Logger
}

// NewAdvisorService constructs the service. observer may be nil.
func NewAdvisorService(store documentStore, client *advisor.Client, observer advisorObserver, logger *zap.Logger) *AdvisorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdvisorService{store: store, client: client, observer: observer, logger: logger}
}

// Ask forwards a free-form question to the advisor with the scoped academy
// data as context. Transport failures degrade to a friendly fallback
// answer instead of an error, so the chat never breaks.
func (s *AdvisorService) Ask(ctx context.Context, session models.Session, question string) (string, error) {
	if question == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "question must not be empty")
	}
	students, attendance, payments, err := s.scopedJSON(session)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Você é o "Sensei IA", um consultor especializado em gestão de academias de Jiu-Jitsu.
Você tem acesso aos seguintes dados em tempo real da academia:

ATLETAS: %s
PRESENÇAS: %s
FINANCEIRO: %s

Responda à pergunta do usuário de forma profissional, motivadora e baseada estritamente nos dados fornecidos.
Se o usuário perguntar sobre alguém que não existe ou dados que você não tem, informe educadamente.
Use terminologias do Jiu-Jitsu (OSS, Tatame, Raspagem, etc) quando apropriado.
Toda a resposta deve ser em Português do Brasil e formatada em Markdown simples.

PERGUNTA DO USUÁRIO: %q`, students, attendance, payments, question)

	answer, err := s.client.GenerateText(ctx, prompt)
	s.observe("ask", err)
	if err != nil {
		if ctx.Err() != nil {
			return "", appErrors.Wrap(ctx.Err(), appErrors.ErrAdvisorUnavailable.Code, appErrors.ErrAdvisorUnavailable.Status, "advisor request cancelled")
		}
		s.logger.Warn("advisor chat failed, serving fallback", zap.Error(err))
		return fallbackAnswer, nil
	}
	return answer, nil
}

// GenerateInsights asks the advisor for the structured management report.
func (s *AdvisorService) GenerateInsights(ctx context.Context, session models.Session) (*Insights, error) {
	students, attendance, payments, err := s.scopedJSON(session)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Analise os dados desta academia de Jiu-Jitsu e forneça insights de gestão em Português do Brasil.

Atletas: %s
Presenças: %s
Pagamentos: %s

Foque em:
1. Quem está elegível para graus ou nova faixa baseado na frequência (considere 30 aulas para um grau).
2. Saúde financeira (quem está com mensalidade atrasada).
3. Tendências de presença.
4. Um resumo profissional curto do estado atual da academia.

IMPORTANTE: Responda APENAS com o JSON.`, students, attendance, payments)

	raw, err := s.client.GenerateJSON(ctx, prompt, insightsSchema())
	s.observe("insights", err)
	if err != nil {
		return nil, err
	}

	var insights Insights
	if uerr := json.Unmarshal([]byte(raw), &insights); uerr != nil {
		s.observe("insights_parse", uerr)
		return nil, appErrors.Wrap(uerr, appErrors.ErrAdvisorUnavailable.Code, appErrors.ErrAdvisorUnavailable.Status, "advisor returned an unparseable report")
	}
	if insights.PromotionSuggestions == nil {
		insights.PromotionSuggestions = []PromotionSuggestion{}
	}
	if insights.FinancialWarnings == nil {
		insights.FinancialWarnings = []FinancialWarning{}
	}
	if insights.RetentionRisk == nil {
		insights.RetentionRisk = []string{}
	}
	return &insights, nil
}

// scopedJSON serializes the session's visible students, attendance and
// payments for prompt embedding.
func (s *AdvisorService) scopedJSON(session models.Session) (string, string, string, error) {
	doc := s.store.Snapshot()
	students, err := json.Marshal(document.ScopedStudents(doc, session))
	if err != nil {
		return "", "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to serialize students")
	}
	attendance, err := json.Marshal(document.ScopedAttendance(doc, session))
	if err != nil {
		return "", "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to serialize attendance")
	}
	payments, err := json.Marshal(document.ScopedPayments(doc, session))
	if err != nil {
		return "", "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to serialize payments")
	}
	return string(students), string(attendance), string(payments), nil
}

func (s *AdvisorService) observe(operation string, err error) {
	if s.observer != nil {
		s.observer.ObserveAdvisorRequest(operation, err)
	}
}

func insightsSchema() advisor.Schema {
	return advisor.Schema{
		Type: "OBJECT",
		Properties: map[string]advisor.Schema{
			"summary": {Type: "STRING"},
			"promotionSuggestions": {
				Type: "ARRAY",
				Items: &advisor.Schema{
					Type: "OBJECT",
					Properties: map[string]advisor.Schema{
						"studentName": {Type: "STRING"},
						"reason":      {Type: "STRING"},
					},
					Required: []string{"studentName", "reason"},
				},
			},
			"financialWarnings": {
				Type: "ARRAY",
				Items: &advisor.Schema{
					Type: "OBJECT",
					Properties: map[string]advisor.Schema{
						"studentName": {Type: "STRING"},
						"amountDue":   {Type: "NUMBER"},
					},
				},
			},
			"retentionRisk": {
				Type:  "ARRAY",
				Items: &advisor.Schema{Type: "STRING"},
			},
		},
		Required: []string{"summary", "promotionSuggestions", "financialWarnings", "retentionRisk"},
	}
}
