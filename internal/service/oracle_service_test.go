package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"pedagogia_backend/internal/config"
	"pedagogia_backend/internal/model"
	"pedagogia_backend/internal/util"
	"pedagogia_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("debug")
}

func oracleFixture(t *testing.T, handler http.HandlerFunc) *OracleService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewOracleService(config.OracleConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "gemini-2.5-flash",
	})
}

func candidateJSON(text string) []byte {
	payload := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
	out, _ := json.Marshal(payload)
	return out
}

func TestAnalyzeWriting(t *testing.T) {
	t.Run("laudo estruturado com fase canonizada", func(t *testing.T) {
		oracle := oracleFixture(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			w.Write(candidateJSON(`{"phase": "ALFABETICA PARCIAL", "confidence": 0.9, "summary": "ok", "reasoning": "...", "wordBreakdown": [{"target": "casa", "produced": "caza", "phase": "Alfabética Parcial", "explanation": "troca s/z"}]}`))
		})

		analysis, err := oracle.AnalyzeWriting(context.Background(), []WritingSample{{Target: "casa", Produced: "caza"}})
		require.NoError(t, err)
		assert.Equal(t, model.PhaseAlfabeticaParcial, analysis.Phase)
		assert.InDelta(t, 0.9, analysis.Confidence, 0.001)
		require.Len(t, analysis.WordBreakdown, 1)
	})

	t.Run("fase final vem da maioria do detalhamento, não da resposta de topo", func(t *testing.T) {
		oracle := oracleFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write(candidateJSON(`{"phase": "Alfabética Consolidada", "confidence": 0.9, "wordBreakdown": [
				{"target": "casa", "produced": "caza", "phase": "Alfabética Parcial"},
				{"target": "bola", "produced": "boa", "phase": "Alfabética Parcial"},
				{"target": "sol", "produced": "sol", "phase": "Alfabética Consolidada"}]}`))
		})

		analysis, err := oracle.AnalyzeWriting(context.Background(), []WritingSample{
			{Target: "casa", Produced: "caza"},
			{Target: "bola", Produced: "boa"},
			{Target: "sol", Produced: "sol"},
		})
		require.NoError(t, err)
		assert.Equal(t, model.PhaseAlfabeticaParcial, analysis.Phase)
	})

	t.Run("remove cerca de markdown em volta do JSON", func(t *testing.T) {
		oracle := oracleFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write(candidateJSON("```json\n{\"phase\": \"Pré-Alfabética\", \"confidence\": 0.7}\n```"))
		})

		analysis, err := oracle.AnalyzeWriting(context.Background(), []WritingSample{{Target: "bola", Produced: "bl"}})
		require.NoError(t, err)
		assert.Equal(t, model.PhasePreAlfabetica, analysis.Phase)
	})
}

func TestOracleRetry(t *testing.T) {
	t.Run("429 tenta de novo e sucede", func(t *testing.T) {
		var calls int32
		oracle := oracleFixture(t, func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Write(candidateJSON(`{"phase": "Esquematismo", "confidence": 0.8}`))
		})

		analysis, err := oracle.AnalyzeWriting(context.Background(), []WritingSample{{Target: "sol", Produced: "sol"}})
		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
		assert.NotNil(t, analysis)
	})

	t.Run("esgota as tentativas em 429 persistente", func(t *testing.T) {
		var calls int32
		oracle := oracleFixture(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := oracle.AnalyzeWriting(context.Background(), []WritingSample{{Target: "sol", Produced: "sol"}})
		assert.ErrorIs(t, err, util.ErrOracleExhausted)
		assert.Equal(t, int32(oracleMaxAttempts), atomic.LoadInt32(&calls))
	})

	t.Run("erro definitivo não tenta de novo", func(t *testing.T) {
		var calls int32
		oracle := oracleFixture(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": {"code": 400, "message": "bad"}}`))
		})

		_, err := oracle.AnalyzeWriting(context.Background(), []WritingSample{{Target: "sol", Produced: "sol"}})
		assert.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}

func TestGenerateNarrativeReport(t *testing.T) {
	oracle := oracleFixture(t, func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{"parts": []map[string]any{{"text": "Parecer pedagógico."}}},
				"groundingMetadata": map[string]any{
					"groundingChunks": []map[string]any{
						{"web": map[string]any{"uri": "https://example.org/ehri", "title": "Fases de Ehri"}},
						{"web": map[string]any{"uri": "", "title": "vazio"}},
					},
				},
			}},
		}
		out, _ := json.Marshal(payload)
		w.Write(out)
	})

	report, err := oracle.GenerateNarrativeReport(context.Background(), "dados da coorte")
	require.NoError(t, err)
	assert.Equal(t, "Parecer pedagógico.", report.Text)
	require.Len(t, report.Sources, 1)
	assert.Equal(t, "https://example.org/ehri", report.Sources[0].URI)
}
