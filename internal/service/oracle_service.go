package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pedagogia_backend/internal/config"
	"pedagogia_backend/internal/model"
	"pedagogia_backend/internal/util"
	"pedagogia_backend/pkg/logger"
	"pedagogia_backend/pkg/monitoring"

	"go.uber.org/zap"
)

const (
	oracleMaxAttempts = 3
	oracleBaseBackoff = time.Second
)

// OracleService fala com a API Gemini para classificar evidências
// (desenhos e escritas) e gerar relatórios narrativos. Toda chamada passa
// pelo mesmo laço de tentativas: até três, com backoff exponencial, e
// somente quando a API responde 429.
type OracleService struct {
	config config.OracleConfig
	client *http.Client
}

func NewOracleService(cfg config.OracleConfig) *OracleService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	return &OracleService{
		config: cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	Tools            []map[string]any       `json:"tools,omitempty"`
	GenerationConfig map[string]interface{} `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		GroundingMetadata *struct {
			GroundingChunks []struct {
				Web *struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// generate executa uma chamada generateContent com o laço de tentativas.
func (s *OracleService) generate(ctx context.Context, operation string, req geminiRequest) (*geminiResponse, error) {
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(s.config.BaseURL, "/"), s.config.Model, s.config.APIKey)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var lastStatus int
	for attempt := 1; attempt <= oracleMaxAttempts; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(httpReq)
		if err != nil {
			monitoring.OracleRequestCounter.WithLabelValues(operation, "error").Inc()
			return nil, err
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			monitoring.OracleRequestCounter.WithLabelValues(operation, "error").Inc()
			return nil, err
		}

		lastStatus = resp.StatusCode
		if resp.StatusCode == http.StatusTooManyRequests {
			if attempt == oracleMaxAttempts {
				break
			}
			backoff := oracleBaseBackoff * time.Duration(1<<(attempt-1))
			logger.Log.Warn("Oracle rate limited, backing off",
				zap.String("operation", operation),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			monitoring.OracleRequestCounter.WithLabelValues(operation, "error").Inc()
			return nil, fmt.Errorf("oracle returned status %d: %s", resp.StatusCode, truncate(string(body), 300))
		}

		var parsed geminiResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			monitoring.OracleRequestCounter.WithLabelValues(operation, "error").Inc()
			return nil, err
		}
		if parsed.Error != nil {
			monitoring.OracleRequestCounter.WithLabelValues(operation, "error").Inc()
			return nil, fmt.Errorf("oracle error %d: %s", parsed.Error.Code, parsed.Error.Message)
		}
		monitoring.OracleRequestCounter.WithLabelValues(operation, "ok").Inc()
		return &parsed, nil
	}

	monitoring.OracleRequestCounter.WithLabelValues(operation, "retry_exhausted").Inc()
	logger.Log.Error("Oracle retries exhausted",
		zap.String("operation", operation),
		zap.Int("status", lastStatus),
	)
	return nil, util.ErrOracleExhausted
}

func (s *OracleService) generateText(ctx context.Context, operation string, req geminiRequest) (string, *geminiResponse, error) {
	resp, err := s.generate(ctx, operation, req)
	if err != nil {
		return "", nil, err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", nil, util.ErrOracleEmptyResponse
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), resp, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// stripJSONFence remove cercas de markdown que o modelo às vezes coloca em
// volta do JSON mesmo com responseMimeType definido.
func stripJSONFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// DrawingAnalysis é o laudo estruturado de um desenho.
type DrawingAnalysis struct {
	Phase                 string         `json:"phase"`
	Confidence            float64        `json:"confidence"`
	Summary               string         `json:"summary"`
	Reasoning             string         `json:"reasoning"`
	Markers               []model.Marker `json:"markers"`
	RecommendedActivities string         `json:"recommendedActivities"`
}

// AnalyzeDrawing submete a imagem de um desenho e devolve a fase de
// Lowenfeld com justificativa e marcadores diagnósticos.
func (s *OracleService) AnalyzeDrawing(ctx context.Context, imageData []byte, mimeType string, ageYears int) (*DrawingAnalysis, error) {
	prompt := fmt.Sprintf(`Você é um especialista em desenvolvimento infantil e na teoria de Viktor Lowenfeld.
Analise o desenho da criança (idade aproximada: %d anos) e classifique-o em exatamente uma destas fases:
%s

Responda SOMENTE com JSON neste formato:
{"phase": "<fase>", "confidence": <0..1>, "summary": "<resumo curto>", "reasoning": "<justificativa detalhada>", "markers": [{"label": "<critério>", "description": "<o que foi observado>", "match": true}], "recommendedActivities": "<atividades sugeridas para avançar à próxima fase>"}`,
		ageYears, strings.Join(model.DrawingPhases, "\n"))

	req := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{Text: prompt},
				{InlineData: &geminiInlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(imageData),
				}},
			},
		}},
		GenerationConfig: map[string]interface{}{
			"responseMimeType": "application/json",
			"temperature":      0.2,
		},
	}

	text, _, err := s.generateText(ctx, "analyze_drawing", req)
	if err != nil {
		return nil, err
	}
	var analysis DrawingAnalysis
	if err := json.Unmarshal([]byte(stripJSONFence(text)), &analysis); err != nil {
		return nil, fmt.Errorf("unexpected oracle payload: %w", err)
	}
	analysis.Phase = model.CanonicalPhase(analysis.Phase, model.DomainDrawing)
	return &analysis, nil
}

// WritingSample é um par ditado/produzido submetido à análise de escrita.
type WritingSample struct {
	Target   string `json:"target"`
	Produced string `json:"produced"`
}

// WritingAnalysis é o laudo estruturado de uma sondagem de escrita.
type WritingAnalysis struct {
	Phase         string                     `json:"phase"`
	Confidence    float64                    `json:"confidence"`
	Summary       string                     `json:"summary"`
	Reasoning     string                     `json:"reasoning"`
	WordBreakdown []model.WordClassification `json:"wordBreakdown"`
}

// AnalyzeWriting classifica um conjunto de palavras escritas pela criança
// nas fases de Ehri, com detalhamento palavra a palavra.
func (s *OracleService) AnalyzeWriting(ctx context.Context, samples []WritingSample) (*WritingAnalysis, error) {
	samplesJSON, err := json.Marshal(samples)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Você é um especialista em alfabetização e na teoria das fases de leitura e escrita de Linnea Ehri.
A criança escreveu as palavras abaixo (campo "target" é a palavra ditada, "produced" é o que ela escreveu):
%s

Classifique a escrita da criança em exatamente uma destas fases:
%s

Responda SOMENTE com JSON neste formato:
{"phase": "<fase>", "confidence": <0..1>, "summary": "<resumo curto>", "reasoning": "<justificativa detalhada>", "wordBreakdown": [{"target": "...", "produced": "...", "phase": "<fase desta palavra>", "explanation": "..."}]}`,
		string(samplesJSON), strings.Join(model.WritingPhases, "\n"))

	req := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: map[string]interface{}{
			"responseMimeType": "application/json",
			"temperature":      0.2,
		},
	}

	text, _, err := s.generateText(ctx, "analyze_writing", req)
	if err != nil {
		return nil, err
	}
	var analysis WritingAnalysis
	if err := json.Unmarshal([]byte(stripJSONFence(text)), &analysis); err != nil {
		return nil, fmt.Errorf("unexpected oracle payload: %w", err)
	}

	// A fase final é eleita pela maioria das fases palavra a palavra, não
	// pela resposta de topo do modelo. Sem detalhamento, vale a resposta
	// de topo canonicalizada.
	for i := range analysis.WordBreakdown {
		analysis.WordBreakdown[i].Phase = model.CanonicalPhase(analysis.WordBreakdown[i].Phase, model.DomainWriting)
	}
	if len(analysis.WordBreakdown) > 0 {
		labels := make([]string, len(analysis.WordBreakdown))
		for i, w := range analysis.WordBreakdown {
			labels[i] = w.Phase
		}
		analysis.Phase = model.PredominantPhase(labels, model.DomainWriting)
	} else {
		analysis.Phase = model.CanonicalPhase(analysis.Phase, model.DomainWriting)
	}
	return &analysis, nil
}

// ExtractHandwrittenText transcreve a escrita de uma foto, preservando a
// grafia da criança (erros inclusive), uma palavra por linha.
func (s *OracleService) ExtractHandwrittenText(ctx context.Context, imageData []byte, mimeType string) ([]string, error) {
	prompt := `Transcreva EXATAMENTE o que está escrito à mão na imagem, preservando os erros de grafia da criança.
Não corrija nada. Responda SOMENTE com JSON: {"words": ["palavra1", "palavra2"]}`

	req := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{Text: prompt},
				{InlineData: &geminiInlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(imageData),
				}},
			},
		}},
		GenerationConfig: map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	text, _, err := s.generateText(ctx, "extract_text", req)
	if err != nil {
		return nil, err
	}
	var out struct {
		Words []string `json:"words"`
	}
	if err := json.Unmarshal([]byte(stripJSONFence(text)), &out); err != nil {
		return nil, fmt.Errorf("unexpected oracle payload: %w", err)
	}
	return out.Words, nil
}

// ReportSource é uma referência externa citada em um relatório narrativo.
type ReportSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// NarrativeReport é o texto pedagógico gerado com busca na web.
type NarrativeReport struct {
	Text    string         `json:"text"`
	Sources []ReportSource `json:"sources"`
}

// GenerateNarrativeReport produz um parecer pedagógico em prosa sobre a
// coorte descrita no contexto, ancorado em busca na web para fundamentar
// as recomendações.
func (s *OracleService) GenerateNarrativeReport(ctx context.Context, contextText string) (*NarrativeReport, error) {
	prompt := fmt.Sprintf(`Você é um coordenador pedagógico experiente. Com base nos dados de sondagem abaixo,
escreva um parecer pedagógico em português, com diagnóstico da coorte, pontos de atenção e
recomendações de intervenção fundamentadas em literatura sobre alfabetização e desenvolvimento do desenho infantil.

Dados:
%s`, contextText)

	req := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		Tools:    []map[string]any{{"google_search": map[string]any{}}},
	}

	text, resp, err := s.generateText(ctx, "narrative_report", req)
	if err != nil {
		return nil, err
	}

	report := &NarrativeReport{Text: text}
	if gm := resp.Candidates[0].GroundingMetadata; gm != nil {
		for _, chunk := range gm.GroundingChunks {
			if chunk.Web != nil && chunk.Web.URI != "" {
				report.Sources = append(report.Sources, ReportSource{
					URI:   chunk.Web.URI,
					Title: chunk.Web.Title,
				})
			}
		}
	}
	return report, nil
}
