package handlers

import (
	"context"
	"net/http"
	"time"

	"heatplan/internal/models"
	"heatplan/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockRooms struct {
	rooms []models.Room
	err   error
}

func (m *mockRooms) List(ctx context.Context) ([]models.Room, error) {
	return m.rooms, m.err
}

type mockSchedule struct {
	plan    models.DayPlan
	planErr error
	sum     service.SaveSummary
	saveErr error

	lastDate  string
	lastPlans []service.RoomDayPlanInput
	saveCalls int
}

func (m *mockSchedule) DailyPlan(ctx context.Context, date string) (models.DayPlan, error) {
	m.lastDate = date
	return m.plan, m.planErr
}
func (m *mockSchedule) SavePlans(ctx context.Context, plans []service.RoomDayPlanInput) (service.SaveSummary, error) {
	m.saveCalls++
	m.lastPlans = plans
	return m.sum, m.saveErr
}

type mockCalendar struct {
	resp      models.HeatingCalendar
	err       error
	lastYear  int
	lastMonth int
}

func (m *mockCalendar) Month(ctx context.Context, year, month int) (models.HeatingCalendar, error) {
	m.lastYear = year
	m.lastMonth = month
	return m.resp, m.err
}

type mockDuplication struct {
	written    int
	err        error
	lastParams service.DuplicationParams
}

func (m *mockDuplication) Duplicate(ctx context.Context, p service.DuplicationParams) (int, error) {
	m.lastParams = p
	return m.written, m.err
}

type mockEditor struct {
	plan models.DayPlan
	sum  service.SaveSummary

	openErr    error
	applyErr   error
	undoErr    error
	saveErr    error
	discardErr error

	lastEdit service.SlotEdit
	lastDate string
}

func (m *mockEditor) Open(ctx context.Context, date string) (models.DayPlan, error) {
	m.lastDate = date
	return m.plan, m.openErr
}
func (m *mockEditor) ApplySlot(ctx context.Context, edit service.SlotEdit) (models.DayPlan, error) {
	m.lastEdit = edit
	return m.plan, m.applyErr
}
func (m *mockEditor) Undo(ctx context.Context, date string) (models.DayPlan, error) {
	m.lastDate = date
	return m.plan, m.undoErr
}
func (m *mockEditor) Save(ctx context.Context, date string) (service.SaveSummary, error) {
	m.lastDate = date
	return m.sum, m.saveErr
}
func (m *mockEditor) Discard(ctx context.Context, date string) error {
	m.lastDate = date
	return m.discardErr
}

type mockEventLog struct {
	resp     []models.PlanEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.PlanEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
