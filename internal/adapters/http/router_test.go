package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/conciergelab/shop-concierge/internal/core/domain"
	"github.com/conciergelab/shop-concierge/internal/core/ports"
)

type rankerFake struct {
	products []domain.ScoredProduct
	faqs     []domain.ScoredFaq
	question string
}

func (f *rankerFake) RankProducts(_ context.Context, question string) []domain.ScoredProduct {
	f.question = question
	return f.products
}

func (f *rankerFake) RankFaqs(context.Context, string) []domain.ScoredFaq {
	return f.faqs
}

type answererFake struct {
	answer domain.Answer
}

func (f *answererFake) Answer(context.Context, string) domain.Answer {
	return f.answer
}

type resourcesFake struct {
	mu       sync.Mutex
	loaded   bool
	releases int
}

func (f *resourcesFake) Products(context.Context) ([]domain.ProductEntry, bool) { return nil, true }
func (f *resourcesFake) Faqs(context.Context) ([]domain.FaqEntry, bool)         { return nil, true }
func (f *resourcesFake) Tokenizer(context.Context) (ports.Tokenizer, bool)      { return nil, false }
func (f *resourcesFake) Generator(context.Context) (ports.AnswerGenerator, bool) {
	return nil, false
}

func (f *resourcesFake) ReleaseAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releases++
	f.loaded = false
}

func (f *resourcesFake) Status() map[string]bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return map[string]bool{
		"products":  f.loaded,
		"faqs":      f.loaded,
		"tokenizer": f.loaded,
		"generator": f.loaded,
	}
}

func (f *resourcesFake) releaseCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.releases
}

func newTestHandler(ranker *rankerFake, answerer *answererFake, resources *resourcesFake, releaseEvery int) http.Handler {
	return NewRouter(ranker, answerer, resources, nil, releaseEvery).Handler()
}

func postQuestion(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	handler := newTestHandler(&rankerFake{}, &answererFake{}, &resourcesFake{}, 0)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Errorf("expected request id header on every response")
	}
}

func TestSearchReturnsRankedMatches(t *testing.T) {
	ranker := &rankerFake{
		products: []domain.ScoredProduct{{Name: "ウィジェット", Score: 7}},
		faqs:     []domain.ScoredFaq{{Question: "返品は", Answer: "可能です", Score: 8}},
	}
	handler := newTestHandler(ranker, &answererFake{}, &resourcesFake{}, 0)

	rec := postQuestion(t, handler, "/v1/search", `{"question": "ウィジェットの返品"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ranker.question != "ウィジェットの返品" {
		t.Errorf("ranker received %q", ranker.question)
	}

	var body struct {
		Products []domain.ScoredProduct `json:"products"`
		Faqs     []domain.ScoredFaq     `json:"faqs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Products) != 1 || body.Products[0].Score != 7 {
		t.Errorf("products = %+v", body.Products)
	}
	if len(body.Faqs) != 1 || body.Faqs[0].Score != 8 {
		t.Errorf("faqs = %+v", body.Faqs)
	}
}

func TestSearchEmptyResultsAreArrays(t *testing.T) {
	handler := newTestHandler(&rankerFake{}, &answererFake{}, &resourcesFake{}, 0)

	rec := postQuestion(t, handler, "/v1/search", `{"question": "未知の話題"}`)
	payload := rec.Body.String()
	if !strings.Contains(payload, `"products":[]`) || !strings.Contains(payload, `"faqs":[]`) {
		t.Fatalf("expected empty arrays, got %s", payload)
	}
}

func TestReadQuestionValidation(t *testing.T) {
	handler := newTestHandler(&rankerFake{}, &answererFake{}, &resourcesFake{}, 0)

	rec := postQuestion(t, handler, "/v1/search", `{"question": "   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank question status = %d", rec.Code)
	}

	rec = postQuestion(t, handler, "/v1/search", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed json status = %d", rec.Code)
	}

	getRec := httptest.NewRecorder()
	handler.ServeHTTP(getRec, httptest.NewRequest(http.MethodGet, "/v1/search", nil))
	if getRec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d", getRec.Code)
	}
}

func TestAnswerReturnsTextOnly(t *testing.T) {
	answerer := &answererFake{answer: domain.Answer{
		Text:     "在庫はございます。",
		Products: []domain.ScoredProduct{{Name: "ウィジェット", Score: 5}},
	}}
	handler := newTestHandler(&rankerFake{}, answerer, &resourcesFake{}, 0)

	rec := postQuestion(t, handler, "/v1/answer", `{"question": "在庫はありますか"}`)
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["answer"] != "在庫はございます。" {
		t.Errorf("answer = %q", body["answer"])
	}
	if _, ok := body["products"]; ok {
		t.Errorf("answer endpoint must not include matches: %v", body)
	}
}

func TestAskReturnsAnswerWithMatches(t *testing.T) {
	answerer := &answererFake{answer: domain.Answer{
		Text: "在庫はございます。",
		Faqs: []domain.ScoredFaq{{Question: "在庫は", Answer: "あります", Score: 8}},
	}}
	handler := newTestHandler(&rankerFake{}, answerer, &resourcesFake{}, 0)

	rec := postQuestion(t, handler, "/v1/ask", `{"question": "在庫はありますか"}`)
	var body domain.Answer
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Text != "在庫はございます。" {
		t.Errorf("text = %q", body.Text)
	}
	if len(body.Faqs) != 1 || body.Products == nil {
		t.Errorf("expected faqs and non-nil products array, got %+v", body)
	}
}

func TestStatusReflectsResourceReadiness(t *testing.T) {
	resources := &resourcesFake{}
	handler := newTestHandler(&rankerFake{}, &answererFake{}, resources, 0)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/status", nil))

	var body struct {
		Ready     bool            `json:"ready"`
		Resources map[string]bool `json:"resources"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Ready {
		t.Errorf("expected not ready before first load")
	}
	if len(body.Resources) != 4 {
		t.Errorf("resources = %v", body.Resources)
	}

	resources.mu.Lock()
	resources.loaded = true
	resources.mu.Unlock()

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/status", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Ready {
		t.Errorf("expected ready once everything is loaded")
	}
}

func TestMaintenanceRelease(t *testing.T) {
	resources := &resourcesFake{loaded: true}
	handler := newTestHandler(&rankerFake{}, &answererFake{}, resources, 0)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/maintenance/release", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resources.releaseCount() != 1 {
		t.Fatalf("releases = %d", resources.releaseCount())
	}

	getRec := httptest.NewRecorder()
	handler.ServeHTTP(getRec, httptest.NewRequest(http.MethodGet, "/v1/maintenance/release", nil))
	if getRec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET status = %d", getRec.Code)
	}
}

func TestReleasePolicyEveryN(t *testing.T) {
	resources := &resourcesFake{}
	handler := newTestHandler(&rankerFake{}, &answererFake{}, resources, 2)

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	}
	if resources.releaseCount() != 2 {
		t.Fatalf("expected release after requests 2 and 4, got %d", resources.releaseCount())
	}
}

func TestReleasePolicyOnServerError(t *testing.T) {
	resources := &resourcesFake{}
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	handler := releasePolicyMiddleware(resources, 0, inner)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ask", nil))
	if resources.releaseCount() != 1 {
		t.Fatalf("expected release after 5xx, got %d", resources.releaseCount())
	}
}

func TestRequestIDPreserved(t *testing.T) {
	handler := newTestHandler(&rankerFake{}, &answererFake{}, &resourcesFake{}, 0)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "caller-supplied")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != "caller-supplied" {
		t.Fatalf("request id = %q", got)
	}
}
