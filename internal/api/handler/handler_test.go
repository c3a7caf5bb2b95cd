package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/eeuunnjjiinn/planner/config"
	"github.com/eeuunnjjiinn/planner/internal/dto"
	"github.com/eeuunnjjiinn/planner/internal/planner"
	"github.com/eeuunnjjiinn/planner/internal/service"
	"github.com/eeuunnjjiinn/planner/pkg/jwt"
	"github.com/eeuunnjjiinn/planner/pkg/response"
	"github.com/eeuunnjjiinn/planner/pkg/watch"
)

func init() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = dto.RegisterValidations(v)
	}
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	signUpResult  *dto.UserResponse
	signUpErr     error
	signInResult  *dto.TokenResponse
	signInErr     error
	signOutErr    error
	currentResult *dto.UserResponse
	currentErr    error
}

func (m *mockAuthService) SignUp(_ context.Context, _ *dto.SignUpRequest) (*dto.UserResponse, error) {
	return m.signUpResult, m.signUpErr
}
func (m *mockAuthService) SignIn(_ context.Context, _ *dto.SignInRequest) (*dto.TokenResponse, error) {
	return m.signInResult, m.signInErr
}
func (m *mockAuthService) SignOut(_ context.Context, _ *jwt.Claims) error {
	return m.signOutErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.currentResult, m.currentErr
}

// ── Mock EventService ──

type mockEventService struct {
	weekResult   *dto.WeekEventsResponse
	weekErr      error
	createResult *dto.EventResponse
	createErr    error
	deleteErr    error
}

func (m *mockEventService) GetWeek(_ context.Context, _, _ string) (*dto.WeekEventsResponse, error) {
	return m.weekResult, m.weekErr
}
func (m *mockEventService) Create(_ context.Context, _ *dto.CreateEventRequest, _ string) (*dto.EventResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockEventService) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}
func (m *mockEventService) Watch(_ string) *watch.Subscription { return nil }

// ── Mock TodoService ──

type mockTodoService struct {
	dayResult    *dto.DayTodosResponse
	dayErr       error
	createResult *dto.TodoResponse
	createErr    error
	toggleErr    error
	deleteErr    error
}

func (m *mockTodoService) GetDay(_ context.Context, _, _ string) (*dto.DayTodosResponse, error) {
	return m.dayResult, m.dayErr
}
func (m *mockTodoService) Create(_ context.Context, _ *dto.CreateTodoRequest, _ string) (*dto.TodoResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockTodoService) Toggle(_ context.Context, _, _ string, _ bool) error {
	return m.toggleErr
}
func (m *mockTodoService) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}
func (m *mockTodoService) Watch(_ string) *watch.Subscription { return nil }

// ── Mock AssessmentService ──

type mockAssessmentService struct {
	upcomingResult *dto.UpcomingAssessmentsResponse
	upcomingErr    error
	saveResult     *dto.AssessmentResponse
	saveErr        error
	deleteErr      error
}

func (m *mockAssessmentService) GetUpcoming(_ context.Context, _, _ string, _ planner.Filter) (*dto.UpcomingAssessmentsResponse, error) {
	return m.upcomingResult, m.upcomingErr
}
func (m *mockAssessmentService) Create(_ context.Context, _ *dto.SaveAssessmentRequest, _ string) (*dto.AssessmentResponse, error) {
	return m.saveResult, m.saveErr
}
func (m *mockAssessmentService) Update(_ context.Context, _ string, _ *dto.SaveAssessmentRequest, _ string) (*dto.AssessmentResponse, error) {
	return m.saveResult, m.saveErr
}
func (m *mockAssessmentService) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}
func (m *mockAssessmentService) Watch(_ string) *watch.Subscription { return nil }

// ── Mock SubjectService ──

type mockSubjectService struct {
	listResult      []dto.SubjectResponse
	listErr         error
	timetableResult *dto.TimetableResponse
	timetableErr    error
	saveResult      *dto.SubjectResponse
	saveErr         error
	deleteErr       error
}

func (m *mockSubjectService) List(_ context.Context, _ string) ([]dto.SubjectResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockSubjectService) GetTimetable(_ context.Context, _ string) (*dto.TimetableResponse, error) {
	return m.timetableResult, m.timetableErr
}
func (m *mockSubjectService) Create(_ context.Context, _ *dto.SaveSubjectRequest, _ string) (*dto.SubjectResponse, error) {
	return m.saveResult, m.saveErr
}
func (m *mockSubjectService) Update(_ context.Context, _ string, _ *dto.SaveSubjectRequest, _ string) (*dto.SubjectResponse, error) {
	return m.saveResult, m.saveErr
}
func (m *mockSubjectService) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}
func (m *mockSubjectService) Watch(_ string) *watch.Subscription { return nil }

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportWeek(_ context.Context, _, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportCalendar(_ context.Context, _, _, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:  30 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			Cookie: config.CookieConfig{
				Name:     "planner_token",
				SameSite: "lax",
			},
		},
	}
}

// injectAuth 模拟 JWT 中间件注入的上下文
func injectAuth(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("email", userID+"@test.com")
		c.Next()
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	mock := &mockAuthService{
		signInResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    1800,
			User:         dto.UserResponse{ID: "user-1", Email: "a@test.com"},
		},
	}
	h := NewAuthHandler(testConfig(), mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.SignInRequest{
		Email:    "a@test.com",
		Password: "secret123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
	// 验证会话 Cookie
	found := false
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "planner_token" {
			found = true
			if ck.Value != "test-access-token" {
				t.Errorf("expected cookie value test-access-token, got %s", ck.Value)
			}
			if !ck.HttpOnly {
				t.Error("session cookie should be HttpOnly")
			}
		}
	}
	if !found {
		t.Error("expected planner_token cookie to be set")
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(testConfig(), &mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(testConfig(), &mockAuthService{signInErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.SignInRequest{
		Email:    "a@test.com",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	h := NewAuthHandler(testConfig(), &mockAuthService{signUpErr: service.ErrEmailTaken})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/register", jsonBody(dto.SignUpRequest{
		Email:    "taken@test.com",
		Password: "secret123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// EventHandler Tests
// ═══════════════════════════════════════════════════════════

func TestEventHandler_GetWeek_BadRef(t *testing.T) {
	h := NewEventHandler(&mockEventService{weekErr: service.ErrBadDateKey})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events/week?ref=bad", nil)

	r := gin.New()
	r.GET("/events/week", injectAuth("user-1"), h.GetWeek)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestEventHandler_Create_Success(t *testing.T) {
	h := NewEventHandler(&mockEventService{
		createResult: &dto.EventResponse{ID: "event-1", Title: "算法课", DateKey: "2026-08-24", StartHour: 9, Duration: 1},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/events", jsonBody(dto.CreateEventRequest{
		Title:   "算法课",
		DateKey: "2026-08-24",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/events", injectAuth("user-1"), h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestEventHandler_Create_BadDateKey(t *testing.T) {
	h := NewEventHandler(&mockEventService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/events", jsonBody(dto.CreateEventRequest{
		Title:   "坏日期",
		DateKey: "24/08/2026",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/events", injectAuth("user-1"), h.Create)
	r.ServeHTTP(w, req)

	// datekey 校验规则在 binding 层拦截
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestEventHandler_Delete_NotOwner(t *testing.T) {
	h := NewEventHandler(&mockEventService{deleteErr: service.ErrEventNotOwner})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/events/event-1", nil)

	r := gin.New()
	r.DELETE("/events/:id", injectAuth("user-2"), h.Delete)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestEventHandler_Unauthenticated(t *testing.T) {
	h := NewEventHandler(&mockEventService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events/week", nil)

	// 不挂 injectAuth：上下文缺 user_id 应返回 401
	r := gin.New()
	r.GET("/events/week", h.GetWeek)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// TodoHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTodoHandler_GetDay_MissingDate(t *testing.T) {
	h := NewTodoHandler(&mockTodoService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/todos", nil)

	r := gin.New()
	r.GET("/todos", injectAuth("user-1"), h.GetDay)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestTodoHandler_Toggle_NotFound(t *testing.T) {
	h := NewTodoHandler(&mockTodoService{toggleErr: service.ErrTodoNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/todos/x/done", jsonBody(dto.ToggleTodoRequest{Done: true}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PATCH("/todos/:id/done", injectAuth("user-1"), h.Toggle)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AssessmentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAssessmentHandler_ListUpcoming_BadFilter(t *testing.T) {
	h := NewAssessmentHandler(&mockAssessmentService{upcomingErr: service.ErrAssessmentBadFilter})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/assessments/upcoming?filter=quiz", nil)

	r := gin.New()
	r.GET("/assessments/upcoming", injectAuth("user-1"), h.ListUpcoming)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 14002 {
		t.Errorf("expected error code 14002, got %d", resp.Code)
	}
}

func TestAssessmentHandler_Create_RejectsBadType(t *testing.T) {
	h := NewAssessmentHandler(&mockAssessmentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assessments", jsonBody(dto.SaveAssessmentRequest{
		Type:    "quiz",
		Title:   "类型非法",
		DateKey: "2026-08-28",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assessments", injectAuth("user-1"), h.Create)
	r.ServeHTTP(w, req)

	// oneof=assignment exam 在 binding 层拦截
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// SubjectHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSubjectHandler_Create_BadPeriod(t *testing.T) {
	h := NewSubjectHandler(&mockSubjectService{saveErr: service.ErrSubjectBadPeriod})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/subjects", jsonBody(dto.SaveSubjectRequest{
		Name: "倒置区间", Day: 1, StartTime: "10:00", EndTime: "09:00",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/subjects", injectAuth("user-1"), h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 15003 {
		t.Errorf("expected error code 15003, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportWeek_Headers(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		buf:      bytes.NewBufferString("PK\x03\x04fake"),
		filename: "周历_2026-08-23.xlsx",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/week", nil)

	r := gin.New()
	r.GET("/export/week", injectAuth("user-1"), h.ExportWeek)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != contentTypeXLSX {
		t.Errorf("content type 错误: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("应设置 Content-Disposition 下载头")
	}
}

func TestExportHandler_ExportCalendar_NoEvents(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportNoEvents})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/calendar", nil)

	r := gin.New()
	r.GET("/export/calendar", injectAuth("user-1"), h.ExportCalendar)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// PagesHandler Tests
// ═══════════════════════════════════════════════════════════

func setupPages() (*PagesHandler, *jwt.Manager, *config.Config) {
	cfg := testConfig()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	return NewPagesHandler(cfg, jwtMgr), jwtMgr, cfg
}

func TestPagesHandler_Protected_RedirectsToLogin(t *testing.T) {
	h, _, _ := setupPages()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/home", nil)

	r := gin.New()
	r.GET("/home", h.Protected)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("未登录应跳 /login，实际: %s", loc)
	}
}

func TestPagesHandler_Login_RedirectsAuthedToHome(t *testing.T) {
	h, jwtMgr, cfg := setupPages()

	token, err := jwtMgr.GenerateAccessToken("user-1", "a@test.com")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/login", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Auth.Cookie.Name, Value: token})

	r := gin.New()
	r.GET("/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/home" {
		t.Errorf("已登录访问 /login 应跳 /home，实际: %s", loc)
	}
}

func TestPagesHandler_NoRoute_APIPathReturnsJSON(t *testing.T) {
	h, _, _ := setupPages()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/nonexistent", nil)

	r := gin.New()
	r.NoRoute(h.NoRoute)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("API 未知路径应返回 404，实际: %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// WatchHandler Tests
// ═══════════════════════════════════════════════════════════

func TestWatchHandler_UnknownCollection(t *testing.T) {
	h := NewWatchHandler(&service.Service{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/watch/unknown", nil)

	r := gin.New()
	r.GET("/watch/:collection", injectAuth("user-1"), h.Stream)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
