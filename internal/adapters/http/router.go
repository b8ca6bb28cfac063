package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/conciergelab/shop-concierge/internal/core/domain"
	"github.com/conciergelab/shop-concierge/internal/core/ports"
	"github.com/conciergelab/shop-concierge/internal/observability/metrics"
)

type Router struct {
	ranker       ports.QuestionRanker
	answerer     ports.QuestionAnswerer
	resources    ports.ResourceCache
	metrics      *metrics.HTTPServerMetrics
	releaseEvery int
}

func NewRouter(
	ranker ports.QuestionRanker,
	answerer ports.QuestionAnswerer,
	resources ports.ResourceCache,
	m *metrics.HTTPServerMetrics,
	releaseEvery int,
) *Router {
	return &Router{
		ranker:       ranker,
		answerer:     answerer,
		resources:    resources,
		metrics:      m,
		releaseEvery: releaseEvery,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/status", rt.status)
	mux.HandleFunc("/v1/search", rt.search)
	mux.HandleFunc("/v1/answer", rt.answer)
	mux.HandleFunc("/v1/ask", rt.ask)
	mux.HandleFunc("/v1/maintenance/release", rt.release)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = releasePolicyMiddleware(rt.resources, rt.releaseEvery, handler)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// status reports which cached resources are loaded. It never triggers
// loads; an idle process reports not ready until the first question.
func (rt *Router) status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	resources := rt.resources.Status()
	ready := true
	for _, loaded := range resources {
		if !loaded {
			ready = false
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ready":     ready,
		"resources": resources,
	})
}

func (rt *Router) search(w http.ResponseWriter, r *http.Request) {
	question, ok := rt.readQuestion(w, r)
	if !ok {
		return
	}

	start := time.Now()
	products := rt.ranker.RankProducts(r.Context(), question)
	faqs := rt.ranker.RankFaqs(r.Context(), question)
	if rt.metrics != nil {
		rt.metrics.RecordQAObservation("search", len(products)+len(faqs), time.Since(start))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"products": nonNilProducts(products),
		"faqs":     nonNilFaqs(faqs),
	})
}

func (rt *Router) answer(w http.ResponseWriter, r *http.Request) {
	question, ok := rt.readQuestion(w, r)
	if !ok {
		return
	}

	start := time.Now()
	answer := rt.answerer.Answer(r.Context(), question)
	if rt.metrics != nil {
		rt.metrics.RecordQAObservation("answer", len(answer.Products)+len(answer.Faqs), time.Since(start))
	}

	writeJSON(w, http.StatusOK, map[string]string{"answer": answer.Text})
}

func (rt *Router) ask(w http.ResponseWriter, r *http.Request) {
	question, ok := rt.readQuestion(w, r)
	if !ok {
		return
	}

	start := time.Now()
	answer := rt.answerer.Answer(r.Context(), question)
	if rt.metrics != nil {
		rt.metrics.RecordQAObservation("ask", len(answer.Products)+len(answer.Faqs), time.Since(start))
	}

	answer.Products = nonNilProducts(answer.Products)
	answer.Faqs = nonNilFaqs(answer.Faqs)
	writeJSON(w, http.StatusOK, answer)
}

func (rt *Router) release(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	rt.resources.ReleaseAll()
	writeJSON(w, http.StatusOK, map[string]string{"status": "released"})
}

func (rt *Router) readQuestion(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return "", false
	}

	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return "", false
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
		return "", false
	}
	return req.Question, true
}

func nonNilProducts(products []domain.ScoredProduct) []domain.ScoredProduct {
	if products == nil {
		return []domain.ScoredProduct{}
	}
	return products
}

func nonNilFaqs(faqs []domain.ScoredFaq) []domain.ScoredFaq {
	if faqs == nil {
		return []domain.ScoredFaq{}
	}
	return faqs
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
