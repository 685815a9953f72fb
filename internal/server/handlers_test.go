package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abhisek/skillpath/internal/llm"
	"github.com/abhisek/skillpath/internal/logger"
	"github.com/abhisek/skillpath/internal/progress"
	"github.com/abhisek/skillpath/internal/roadmap"
	"github.com/abhisek/skillpath/internal/store"
	"github.com/abhisek/skillpath/internal/suggest"
)

const testSecret = "test-secret"

// twoMilestoneDoc has one-question quizzes with answer key [0] each.
const twoMilestoneDoc = `{
  "courseName": "Go Fundamentals",
  "duration": "2 weeks",
  "milestones": [
    {"title": "Basics", "order": 1, "quiz": [{"question": "Q1?", "options": ["a", "b"], "correct": 0}]},
    {"title": "Concurrency", "order": 2, "quiz": [{"question": "Q2?", "options": ["a", "b"], "correct": 0}]}
  ]
}`

type testEnv struct {
	router *gin.Engine
	store  *store.Store
	mock   *llm.MockProvider
	userID uuid.UUID
	token  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	st, err := store.Open("sqlite", filepath.Join(t.TempDir(), "test.db"), log)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	mock := llm.NewMockProvider()
	roadmapSvc := roadmap.NewService(st, roadmap.NewGenerator(mock, log), log)
	progressSvc := progress.NewService(st, log)
	suggestGen := suggest.NewGenerator(mock, log)

	h := NewHandler(st, roadmapSvc, progressSvc, suggestGen, log)
	router := NewRouter(h, Options{
		JWTSecret:      testSecret,
		AllowedOrigins: []string{"http://localhost:5173"},
		RateLimiter:    NewRateLimiter(nil, log),
	})

	userID := uuid.New()
	token, err := SignToken(testSecret, userID, "Ada", time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	return &testEnv{router: router, store: st, mock: mock, userID: userID, token: token}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decode(t, w, &envelope)
	return envelope.Error.Code
}

// createCourse drives the roadmap endpoint with a canned generation and
// returns the course ID and milestone IDs in order.
func (e *testEnv) createCourse(t *testing.T) (uuid.UUID, []uuid.UUID) {
	t.Helper()
	e.mock.AddResponse(llm.MockResponse{Content: json.RawMessage(twoMilestoneDoc)})

	w := e.do(t, http.MethodPost, "/api/v1/roadmaps", roadmap.Input{
		Topic:    "Go",
		Duration: "2 weeks",
	}, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create roadmap: status %d body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Course struct {
			ID uuid.UUID `json:"id"`
		} `json:"course"`
		Milestones []struct {
			ID uuid.UUID `json:"id"`
		} `json:"milestones"`
	}
	decode(t, w, &resp)

	ids := make([]uuid.UUID, len(resp.Milestones))
	for i, m := range resp.Milestones {
		ids[i] = m.ID
	}
	return resp.Course.ID, ids
}

func TestAuth_MissingToken(t *testing.T) {
	e := newTestEnv(t)
	w := e.do(t, http.MethodGet, "/api/v1/courses", nil, false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if code := errorCode(t, w); code != CodeAuthRequired {
		t.Fatalf("code = %q, want %q", code, CodeAuthRequired)
	}
}

func TestAuth_BadToken(t *testing.T) {
	e := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/courses", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestHealthz_Open(t *testing.T) {
	e := newTestEnv(t)
	w := e.do(t, http.MethodGet, "/healthz", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestCreateRoadmap_AndList(t *testing.T) {
	e := newTestEnv(t)
	courseID, milestoneIDs := e.createCourse(t)
	if len(milestoneIDs) != 2 {
		t.Fatalf("expected 2 milestones, got %d", len(milestoneIDs))
	}

	w := e.do(t, http.MethodGet, "/api/v1/courses", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list struct {
		Courses []struct {
			Course struct {
				ID     uuid.UUID `json:"id"`
				Status string    `json:"status"`
			} `json:"course"`
			Percent int `json:"percent"`
		} `json:"courses"`
	}
	decode(t, w, &list)
	if len(list.Courses) != 1 {
		t.Fatalf("expected 1 course, got %d", len(list.Courses))
	}
	if list.Courses[0].Course.ID != courseID {
		t.Fatal("course id mismatch")
	}
	if list.Courses[0].Percent != 0 {
		t.Fatalf("fresh course percent = %d, want 0", list.Courses[0].Percent)
	}
}

func TestCreateRoadmap_MissingFields(t *testing.T) {
	e := newTestEnv(t)
	w := e.do(t, http.MethodPost, "/api/v1/roadmaps", gin.H{"topic": "Go"}, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetCourse_Overview(t *testing.T) {
	e := newTestEnv(t)
	courseID, _ := e.createCourse(t)

	w := e.do(t, http.MethodGet, "/api/v1/courses/"+courseID.String(), nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", w.Code, w.Body.String())
	}
	var ov struct {
		Milestones []struct {
			Status string `json:"status"`
		} `json:"milestones"`
		Percent int `json:"percent"`
	}
	decode(t, w, &ov)
	if len(ov.Milestones) != 2 {
		t.Fatalf("expected 2 milestones, got %d", len(ov.Milestones))
	}
	if ov.Milestones[0].Status != store.ProgressActive || ov.Milestones[1].Status != store.ProgressLocked {
		t.Fatalf("unexpected statuses: %+v", ov.Milestones)
	}
}

func TestGetCourse_UnknownID(t *testing.T) {
	e := newTestEnv(t)
	w := e.do(t, http.MethodGet, "/api/v1/courses/"+uuid.NewString(), nil, true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if code := errorCode(t, w); code != CodeNotFound {
		t.Fatalf("code = %q, want %q", code, CodeNotFound)
	}
}

func TestGetCourse_MalformedID(t *testing.T) {
	e := newTestEnv(t)
	w := e.do(t, http.MethodGet, "/api/v1/courses/not-a-uuid", nil, true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetMilestone_LockedRejected(t *testing.T) {
	e := newTestEnv(t)
	courseID, milestoneIDs := e.createCourse(t)

	w := e.do(t, http.MethodGet,
		"/api/v1/courses/"+courseID.String()+"/milestones/"+milestoneIDs[1].String(), nil, true)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if code := errorCode(t, w); code != CodeLockedMilestone {
		t.Fatalf("code = %q, want %q", code, CodeLockedMilestone)
	}
}

func TestSubmitQuiz_FailThenPass(t *testing.T) {
	e := newTestEnv(t)
	courseID, milestoneIDs := e.createCourse(t)
	quizPath := "/api/v1/courses/" + courseID.String() + "/milestones/" + milestoneIDs[0].String() + "/quiz"

	// Wrong answer fails without unlocking anything.
	w := e.do(t, http.MethodPost, quizPath, gin.H{"answers": []int{1}}, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", w.Code, w.Body.String())
	}
	var result struct {
		Passed          bool `json:"passed"`
		Score           int  `json:"score"`
		CourseCompleted bool `json:"courseCompleted"`
	}
	decode(t, w, &result)
	if result.Passed || result.Score != 0 {
		t.Fatalf("unexpected fail result: %+v", result)
	}

	// Correct answer passes and unlocks the next milestone.
	w = e.do(t, http.MethodPost, quizPath, gin.H{"answers": []int{0}}, true)
	decode(t, w, &result)
	if !result.Passed || result.Score != 100 || result.CourseCompleted {
		t.Fatalf("unexpected pass result: %+v", result)
	}

	w = e.do(t, http.MethodGet,
		"/api/v1/courses/"+courseID.String()+"/milestones/"+milestoneIDs[1].String(), nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("second milestone should be open, status = %d", w.Code)
	}
}

func TestSubmitQuiz_Incomplete(t *testing.T) {
	e := newTestEnv(t)
	courseID, milestoneIDs := e.createCourse(t)

	w := e.do(t, http.MethodPost,
		"/api/v1/courses/"+courseID.String()+"/milestones/"+milestoneIDs[0].String()+"/quiz",
		gin.H{"answers": []int{-1}}, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if code := errorCode(t, w); code != CodeIncompleteSubmission {
		t.Fatalf("code = %q, want %q", code, CodeIncompleteSubmission)
	}
}

func TestCertificateFlow(t *testing.T) {
	e := newTestEnv(t)
	courseID, milestoneIDs := e.createCourse(t)
	base := "/api/v1/courses/" + courseID.String()

	// No certificate before completion.
	w := e.do(t, http.MethodGet, base+"/certificate", nil, true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 before completion", w.Code)
	}

	for _, mid := range milestoneIDs {
		w = e.do(t, http.MethodPost, base+"/milestones/"+mid.String()+"/quiz", gin.H{"answers": []int{0}}, true)
		if w.Code != http.StatusOK {
			t.Fatalf("submit status = %d body %s", w.Code, w.Body.String())
		}
	}

	w = e.do(t, http.MethodGet, base+"/certificate", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("certificate status = %d body %s", w.Code, w.Body.String())
	}

	w = e.do(t, http.MethodGet, base+"/certificate/download", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("download status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "Go_Fundamentals_Certificate.html") {
		t.Fatalf("content disposition = %q", cd)
	}
	if !strings.Contains(w.Body.String(), "Ada") {
		t.Fatal("certificate should carry the recipient name from the token")
	}
}

func TestQuizAnswerKeyNeverServed(t *testing.T) {
	e := newTestEnv(t)
	e.mock.AddResponse(llm.MockResponse{Content: json.RawMessage(twoMilestoneDoc)})

	w := e.do(t, http.MethodPost, "/api/v1/roadmaps", roadmap.Input{
		Topic:    "Go",
		Duration: "2 weeks",
	}, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d body %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), `"correct"`) {
		t.Fatalf("create response carries the answer key: %s", w.Body.String())
	}

	var resp struct {
		Course struct {
			ID uuid.UUID `json:"id"`
		} `json:"course"`
		Milestones []struct {
			ID uuid.UUID `json:"id"`
		} `json:"milestones"`
	}
	decode(t, w, &resp)

	paths := []string{
		"/api/v1/courses",
		"/api/v1/courses/" + resp.Course.ID.String(),
		"/api/v1/courses/" + resp.Course.ID.String() + "/milestones/" + resp.Milestones[0].ID.String(),
	}
	for _, path := range paths {
		w := e.do(t, http.MethodGet, path, nil, true)
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d body %s", path, w.Code, w.Body.String())
		}
		if strings.Contains(w.Body.String(), `"correct"`) {
			t.Fatalf("GET %s carries the answer key: %s", path, w.Body.String())
		}
	}

	// Grading still works against the stored quiz.
	w = e.do(t, http.MethodPost,
		"/api/v1/courses/"+resp.Course.ID.String()+"/milestones/"+resp.Milestones[0].ID.String()+"/quiz",
		gin.H{"answers": []int{0}}, true)
	if w.Code != http.StatusOK {
		t.Fatalf("submit status = %d body %s", w.Code, w.Body.String())
	}
	var result struct {
		Passed bool `json:"passed"`
	}
	decode(t, w, &result)
	if !result.Passed {
		t.Fatal("correct submission should pass after redaction")
	}
}

func TestSuggest_FallbackOnGarbage(t *testing.T) {
	e := newTestEnv(t)
	e.mock.AddResponse(llm.MockResponse{Content: json.RawMessage("no suggestions today")})

	w := e.do(t, http.MethodPost, "/api/v1/suggestions", gin.H{
		"completedCourse": "Go Fundamentals",
	}, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Go Fundamentals") {
		t.Fatal("fallback suggestions must reference the course")
	}
}

func TestSuggest_MissingCourse(t *testing.T) {
	e := newTestEnv(t)
	w := e.do(t, http.MethodPost, "/api/v1/suggestions", gin.H{}, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateRoadmap_ProviderDown(t *testing.T) {
	e := newTestEnv(t)
	// Empty mock queue: Generate returns ErrProviderUnavailable.
	w := e.do(t, http.MethodPost, "/api/v1/roadmaps", roadmap.Input{
		Topic:    "Go",
		Duration: "1 week",
	}, true)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	if code := errorCode(t, w); code != CodeGenerationFailure {
		t.Fatalf("code = %q, want %q", code, CodeGenerationFailure)
	}
}
