package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/levelup-labs/jobscout/internal/chat"
	"github.com/levelup-labs/jobscout/internal/jobs"
	"github.com/levelup-labs/jobscout/internal/report"
	"github.com/levelup-labs/jobscout/internal/search"
	"github.com/levelup-labs/jobscout/internal/session"
)

type fakeSearcher struct {
	results []search.Result
	err     error
}

func (f *fakeSearcher) Search(context.Context, string, int, string) ([]search.Result, error) {
	return f.results, f.err
}

type fakeGenerator struct {
	response string
	err      error
}

func (f *fakeGenerator) GenerateContent(context.Context, string) (string, error) {
	return f.response, f.err
}

func newTestServer(searcher search.Searcher, generator *fakeGenerator) *echo.Echo {
	logger := zap.NewNop()
	handler := &Handler{
		Pipeline: &jobs.Pipeline{
			Searcher: searcher,
			Enricher: jobs.TemplateEnricher{},
			Logger:   logger,
		},
		Sessions: session.NewInMemory(0),
		Chat:     chat.NewOrchestrator(chat.NewStore(), generator, logger),
		Renderer: report.NewRenderer(nil),
		Cookies:  NewCookieManager("test-secret"),
		Logger:   logger,
	}
	return New(handler, logger)
}

func postForm(e *echo.Echo, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func get(e *echo.Echo, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func validForm() url.Values {
	return url.Values{
		"job_title":  {"Cook"},
		"location":   {"Austin"},
		"education":  {"High School"},
		"experience": {"2"},
	}
}

func TestSearchRendersListings(t *testing.T) {
	searcher := &fakeSearcher{results: []search.Result{
		{Title: "Line Cook", URL: "https://jobs.example.com/1"},
		{Title: "Prep Cook", URL: "https://jobs.example.com/2"},
	}}
	e := newTestServer(searcher, &fakeGenerator{response: "ok"})

	rec := postForm(e, "/", validForm(), nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Line Cook") || !strings.Contains(body, "Prep Cook") {
		t.Fatalf("listings missing from response: %s", body)
	}
	if !strings.Contains(body, "Opportunity: Line Cook") {
		t.Fatalf("summaries missing from response")
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Fatalf("expected a session cookie to be issued")
	}
}

func TestSearchValidationErrorRerendersForm(t *testing.T) {
	e := newTestServer(&fakeSearcher{}, &fakeGenerator{response: "ok"})

	form := validForm()
	form.Del("location")
	rec := postForm(e, "/", form, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "location") {
		t.Fatalf("validation error does not name the missing field: %s", rec.Body.String())
	}
}

func TestSearchDegradesWhenProviderUnavailable(t *testing.T) {
	searcher := &fakeSearcher{err: search.Unavailable(errors.New("connection refused"))}
	e := newTestServer(searcher, &fakeGenerator{response: "ok"})

	rec := postForm(e, "/", validForm(), nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected a degraded page, got status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "temporarily unavailable") {
		t.Fatalf("degrade notice missing: %s", rec.Body.String())
	}
}

func TestDownloadWithoutResultsRedirects(t *testing.T) {
	e := newTestServer(&fakeSearcher{}, &fakeGenerator{response: "ok"})

	rec := get(e, "/download", nil)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("unexpected redirect target: %s", loc)
	}
}

func TestDownloadAfterSearchStreamsPDF(t *testing.T) {
	searcher := &fakeSearcher{results: []search.Result{
		{Title: "Line Cook", URL: "https://jobs.example.com/1"},
	}}
	e := newTestServer(searcher, &fakeGenerator{response: "ok"})

	first := postForm(e, "/", validForm(), nil)
	cookies := first.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected a session cookie from the search")
	}

	rec := get(e, "/download", cookies)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "application/pdf" {
		t.Fatalf("unexpected content type: %s", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "job_details.pdf") {
		t.Fatalf("unexpected content disposition: %s", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("response is not a PDF")
	}
}

func TestChatRoundTrip(t *testing.T) {
	e := newTestServer(&fakeSearcher{}, &fakeGenerator{response: "It involves cooking."})

	first := get(e, "/", nil)
	cookies := first.Result().Cookies()

	rec := postForm(e, "/chat", url.Values{"chat_message": {"What does this job involve?"}}, cookies)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after chat, got %d", rec.Code)
	}

	page := get(e, "/", cookies)
	body := page.Body.String()
	if !strings.Contains(body, "What does this job involve?") {
		t.Fatalf("user message missing from chat log: %s", body)
	}
	if !strings.Contains(body, "It involves cooking.") {
		t.Fatalf("bot reply missing from chat log: %s", body)
	}
}

func TestChatFallbackOnGenerationFailure(t *testing.T) {
	e := newTestServer(&fakeSearcher{}, &fakeGenerator{err: errors.New("quota exceeded")})

	first := get(e, "/", nil)
	cookies := first.Result().Cookies()

	postForm(e, "/chat", url.Values{"chat_message": {"hello"}}, cookies)

	page := get(e, "/", cookies)
	if !strings.Contains(page.Body.String(), chat.FallbackReply) {
		t.Fatalf("fallback reply missing from chat log: %s", page.Body.String())
	}
}

func TestTamperedCookieGetsFreshSession(t *testing.T) {
	searcher := &fakeSearcher{results: []search.Result{{Title: "Line Cook", URL: "u"}}}
	e := newTestServer(searcher, &fakeGenerator{response: "ok"})

	first := postForm(e, "/", validForm(), nil)
	cookies := first.Result().Cookies()
	for _, cookie := range cookies {
		cookie.Value = "forged-id.deadbeef"
	}

	rec := get(e, "/download", cookies)
	if rec.Code != http.StatusFound {
		t.Fatalf("tampered cookie must not reach stored results, got %d", rec.Code)
	}
}
