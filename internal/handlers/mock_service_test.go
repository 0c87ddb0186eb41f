package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"secure_finance_manager/internal/logger"
	"secure_finance_manager/internal/models"
	"secure_finance_manager/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseUsername string
	parseErr      error
	authID        int
	authErr       error
	resolveID     int
	resolveErr    error

	lastSignUp      service.SignUpInput
	lastGenUsername string
	lastGenPassword string
	lastParseToken  string
	lastAuthUser    string
	lastAuthPass    string
	lastResolve     string
}

func (m *mockAuth) SignUp(_ context.Context, in service.SignUpInput) (int, error) {
	m.lastSignUp = in
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseUsername, m.parseErr
}
func (m *mockAuth) Authenticate(_ context.Context, username, password string) (int, error) {
	m.lastAuthUser = username
	m.lastAuthPass = password
	return m.authID, m.authErr
}
func (m *mockAuth) Resolve(username string) (int, error) {
	m.lastResolve = username
	return m.resolveID, m.resolveErr
}

type mockUsers struct {
	user      models.User
	err       error
	lastID    int
	lastPatch models.UserPatch
	deleted   int
}

func (m *mockUsers) Me(_ context.Context, userID int) (models.User, error) {
	m.lastID = userID
	return m.user, m.err
}
func (m *mockUsers) UpdateMe(_ context.Context, userID int, p models.UserPatch) (models.User, error) {
	m.lastID = userID
	m.lastPatch = p
	return m.user, m.err
}
func (m *mockUsers) DeleteMe(_ context.Context, userID int) error {
	m.lastID = userID
	m.deleted++
	return m.err
}

type mockColours struct {
	list      []models.Colour
	colour    models.Colour
	err       error
	lastID    int
	lastInput models.Colour
	lastPatch models.ColourPatch
}

func (m *mockColours) List(context.Context) ([]models.Colour, error) { return m.list, m.err }
func (m *mockColours) Get(_ context.Context, id int) (models.Colour, error) {
	m.lastID = id
	return m.colour, m.err
}
func (m *mockColours) Create(_ context.Context, _ int, c models.Colour) (models.Colour, error) {
	m.lastInput = c
	return m.colour, m.err
}
func (m *mockColours) Update(_ context.Context, _ int, id int, p models.ColourPatch) (models.Colour, error) {
	m.lastID = id
	m.lastPatch = p
	return m.colour, m.err
}
func (m *mockColours) Delete(_ context.Context, _ int, id int) error {
	m.lastID = id
	return m.err
}

// mockCategories records the caller and ids so tests can assert scoping.
type mockCategories struct {
	list      []models.Category
	category  models.Category
	err       error
	lastUser  int
	lastID    int
	lastInput models.Category
	lastPatch models.GroupPatch
}

func (m *mockCategories) List(_ context.Context, userID int) ([]models.Category, error) {
	m.lastUser = userID
	return m.list, m.err
}
func (m *mockCategories) Get(_ context.Context, userID, id int) (models.Category, error) {
	m.lastUser, m.lastID = userID, id
	return m.category, m.err
}
func (m *mockCategories) Create(_ context.Context, userID int, c models.Category) (models.Category, error) {
	m.lastUser, m.lastInput = userID, c
	return m.category, m.err
}
func (m *mockCategories) Update(_ context.Context, userID, id int, p models.GroupPatch) (models.Category, error) {
	m.lastUser, m.lastID, m.lastPatch = userID, id, p
	return m.category, m.err
}
func (m *mockCategories) Delete(_ context.Context, userID, id int) error {
	m.lastUser, m.lastID = userID, id
	return m.err
}

type mockSubcategories struct {
	list         []models.Subcategory
	sub          models.Subcategory
	err          error
	lastUser     int
	lastCategory int
	lastID       int
	lastPatch    models.GroupPatch
}

func (m *mockSubcategories) List(_ context.Context, userID, categoryID int) ([]models.Subcategory, error) {
	m.lastUser, m.lastCategory = userID, categoryID
	return m.list, m.err
}
func (m *mockSubcategories) Get(_ context.Context, userID, categoryID, id int) (models.Subcategory, error) {
	m.lastUser, m.lastCategory, m.lastID = userID, categoryID, id
	return m.sub, m.err
}
func (m *mockSubcategories) Create(_ context.Context, userID, categoryID int, _ models.Subcategory) (models.Subcategory, error) {
	m.lastUser, m.lastCategory = userID, categoryID
	return m.sub, m.err
}
func (m *mockSubcategories) Update(_ context.Context, userID, categoryID, id int, p models.GroupPatch) (models.Subcategory, error) {
	m.lastUser, m.lastCategory, m.lastID, m.lastPatch = userID, categoryID, id, p
	return m.sub, m.err
}
func (m *mockSubcategories) Delete(_ context.Context, userID, categoryID, id int) error {
	m.lastUser, m.lastCategory, m.lastID = userID, categoryID, id
	return m.err
}

type mockLabels struct {
	list     []models.Label
	label    models.Label
	err      error
	lastUser int
	lastID   int
}

func (m *mockLabels) List(_ context.Context, userID int) ([]models.Label, error) {
	m.lastUser = userID
	return m.list, m.err
}
func (m *mockLabels) Get(_ context.Context, userID, id int) (models.Label, error) {
	m.lastUser, m.lastID = userID, id
	return m.label, m.err
}
func (m *mockLabels) Create(_ context.Context, userID int, _ models.Label) (models.Label, error) {
	m.lastUser = userID
	return m.label, m.err
}
func (m *mockLabels) Update(_ context.Context, userID, id int, _ models.GroupPatch) (models.Label, error) {
	m.lastUser, m.lastID = userID, id
	return m.label, m.err
}
func (m *mockLabels) Delete(_ context.Context, userID, id int) error {
	m.lastUser, m.lastID = userID, id
	return m.err
}

type mockEntries struct {
	list       []models.Entry
	entry      models.Entry
	labels     []models.Label
	err        error
	lastUser   int
	lastPath   service.EntryPath
	lastID     int
	lastInput  models.Entry
	lastLabels []int
	lastPatch  models.EntryPatch
	lastLabel  int
}

func (m *mockEntries) List(_ context.Context, userID int, path service.EntryPath) ([]models.Entry, error) {
	m.lastUser, m.lastPath = userID, path
	return m.list, m.err
}
func (m *mockEntries) Get(_ context.Context, userID int, path service.EntryPath, id int) (models.Entry, error) {
	m.lastUser, m.lastPath, m.lastID = userID, path, id
	return m.entry, m.err
}
func (m *mockEntries) Create(_ context.Context, userID int, path service.EntryPath, e models.Entry, labelIDs []int) (models.Entry, error) {
	m.lastUser, m.lastPath, m.lastInput, m.lastLabels = userID, path, e, labelIDs
	return m.entry, m.err
}
func (m *mockEntries) Update(_ context.Context, userID int, path service.EntryPath, id int, p models.EntryPatch) (models.Entry, error) {
	m.lastUser, m.lastPath, m.lastID, m.lastPatch = userID, path, id, p
	return m.entry, m.err
}
func (m *mockEntries) Delete(_ context.Context, userID int, path service.EntryPath, id int) error {
	m.lastUser, m.lastPath, m.lastID = userID, path, id
	return m.err
}
func (m *mockEntries) Labels(_ context.Context, userID, entryID int) ([]models.Label, error) {
	m.lastUser, m.lastID = userID, entryID
	return m.labels, m.err
}
func (m *mockEntries) AttachLabel(_ context.Context, userID, entryID, labelID int) error {
	m.lastUser, m.lastID, m.lastLabel = userID, entryID, labelID
	return m.err
}
func (m *mockEntries) DetachLabel(_ context.Context, userID, entryID, labelID int) error {
	m.lastUser, m.lastID, m.lastLabel = userID, entryID, labelID
	return m.err
}

type mockReports struct {
	summary  models.Summary
	err      error
	calls    int
	lastUser int
	lastFrom time.Time
	lastTo   time.Time
}

func (m *mockReports) Summary(_ context.Context, userID int, from, to time.Time) (models.Summary, error) {
	m.calls++
	m.lastUser, m.lastFrom, m.lastTo = userID, from, to
	return m.summary, m.err
}

type mockEventLog struct {
	resp       []models.Event
	err        error
	lastUser   int
	lastFrom   time.Time
	lastTo     time.Time
	lastType   string
	lastEntity string
}

func (m *mockEventLog) List(_ context.Context, userID int, f service.LogFilter) ([]models.Event, error) {
	m.lastUser = userID
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	m.lastEntity = f.Entity
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

const testBase = DefaultBasePath

// tokenAuth accepts any bearer token as user 99.
func tokenAuth() *mockAuth {
	return &mockAuth{parseUsername: "tester", resolveID: 99}
}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, logger.Nop(), "")
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// do sends one request through the router with a bearer token.
func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
