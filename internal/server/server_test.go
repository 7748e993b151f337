package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/noreyni/webhook-api/internal/config"
	invitationdomain "github.com/noreyni/webhook-api/internal/invitation/domain"
	"github.com/noreyni/webhook-api/internal/principal"
	projectdomain "github.com/noreyni/webhook-api/internal/project/domain"
	"github.com/noreyni/webhook-api/internal/ratelimit"
	userdomain "github.com/noreyni/webhook-api/internal/user/domain"
	"github.com/noreyni/webhook-api/pkg/paging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProjectService struct {
	searchViews []projectdomain.ListView
	searchMeta  paging.Meta
	searchErr   error
	detail      projectdomain.DetailView
	err         error
	nameTaken   bool
	lastSearch  projectdomain.SearchRequest
	recentLimit int
}

func (s *stubProjectService) Search(ctx context.Context, req projectdomain.SearchRequest) ([]projectdomain.ListView, paging.Meta, error) {
	s.lastSearch = req
	return s.searchViews, s.searchMeta, s.searchErr
}
func (s *stubProjectService) FindByID(ctx context.Context, id string) (projectdomain.DetailView, error) {
	return s.detail, s.err
}
func (s *stubProjectService) Create(ctx context.Context, req projectdomain.CreateRequest, actorID string) (projectdomain.DetailView, error) {
	return s.detail, s.err
}
func (s *stubProjectService) Update(ctx context.Context, id string, req projectdomain.UpdateRequest, actorID string) (projectdomain.DetailView, error) {
	return s.detail, s.err
}
func (s *stubProjectService) ChangeStatus(ctx context.Context, id string, status string, actorID string) (projectdomain.DetailView, error) {
	return s.detail, s.err
}
func (s *stubProjectService) Delete(ctx context.Context, id string, actorID string) error {
	return s.err
}
func (s *stubProjectService) FindByOwner(ctx context.Context, ownerID string) ([]projectdomain.ListView, error) {
	return s.searchViews, s.err
}
func (s *stubProjectService) FindAccessible(ctx context.Context, userID string) ([]projectdomain.ListView, error) {
	return s.searchViews, s.err
}
func (s *stubProjectService) FindRecentByOwner(ctx context.Context, ownerID string, limit int) ([]projectdomain.ListView, error) {
	s.recentLimit = limit
	return s.searchViews, s.err
}
func (s *stubProjectService) Stats(ctx context.Context, ownerID string) (projectdomain.Stats, error) {
	return projectdomain.Stats{TotalProjects: 5, ActiveProjects: 2, DraftProjects: 1, CompletedProjects: 1}, s.err
}
func (s *stubProjectService) ExistsByName(ctx context.Context, name string) (bool, error) {
	return s.nameTaken, s.err
}

type stubUserService struct {
	views []userdomain.ListView
	meta  paging.Meta
	err   error
}

func (s *stubUserService) List(ctx context.Context, page paging.Request) ([]userdomain.ListView, paging.Meta, error) {
	return s.views, s.meta, s.err
}
func (s *stubUserService) FindByID(ctx context.Context, id string) (userdomain.DetailView, error) {
	return userdomain.DetailView{}, s.err
}
func (s *stubUserService) Create(ctx context.Context, req userdomain.CreateRequest, actorID string) (userdomain.DetailView, error) {
	return userdomain.DetailView{}, s.err
}
func (s *stubUserService) Update(ctx context.Context, id string, req userdomain.UpdateRequest, actorID string) (userdomain.DetailView, error) {
	return userdomain.DetailView{}, s.err
}
func (s *stubUserService) Delete(ctx context.Context, id string, actorID string) error {
	return s.err
}
func (s *stubUserService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, s.err
}
func (s *stubUserService) Stats(ctx context.Context) (userdomain.Stats, error) {
	return userdomain.Stats{ActiveUsersCount: 7}, s.err
}

type stubInvitationService struct {
	views []invitationdomain.View
	view  invitationdomain.View
	err   error
}

func (s *stubInvitationService) Invite(ctx context.Context, req invitationdomain.InviteRequest, actorID string) ([]invitationdomain.View, error) {
	return s.views, s.err
}
func (s *stubInvitationService) ListByProject(ctx context.Context, projectID string, actorID string) ([]invitationdomain.View, error) {
	return s.views, s.err
}
func (s *stubInvitationService) ListMine(ctx context.Context, actorID string) ([]invitationdomain.View, error) {
	return s.views, s.err
}
func (s *stubInvitationService) Accept(ctx context.Context, id string, actorID string) (invitationdomain.View, error) {
	return s.view, s.err
}
func (s *stubInvitationService) Reject(ctx context.Context, id string, actorID string) (invitationdomain.View, error) {
	return s.view, s.err
}
func (s *stubInvitationService) Stats(ctx context.Context, projectID string, actorID string) (invitationdomain.Stats, error) {
	return invitationdomain.Stats{}, s.err
}
func (s *stubInvitationService) SweepExpired(ctx context.Context) (int64, error) {
	return 3, s.err
}
func (s *stubInvitationService) PurgeExpired(ctx context.Context) (int64, error) {
	return 1, s.err
}

func newTestEngine(t *testing.T, projects projectdomain.Service, users userdomain.Service, invitations invitationdomain.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ErrorHandlingMiddleware())

	cfg := config.Config{PrincipalID: "actor-1"}
	NewServer(Params{
		Log:         zap.NewNop(),
		Config:      cfg,
		Engine:      r,
		Resolver:    principal.NewStaticResolver(cfg),
		Limiter:     ratelimit.NewRequestLimiter(cfg, nil),
		Users:       users,
		Projects:    projects,
		Invitations: invitations,
	})
	return r
}

func doRequest(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestSearchProjectsEnvelopeWithMeta(t *testing.T) {
	projects := &stubProjectService{
		searchViews: []projectdomain.ListView{{ID: "a"}, {ID: "b"}},
		searchMeta:  paging.NewMeta(1, 10, 25),
	}
	r := newTestEngine(t, projects, &stubUserService{}, &stubInvitationService{})

	w := doRequest(r, http.MethodGet, "/api/projects?page=1&size=10&name=Web&sortBy=createdAt&sortDirection=desc", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeEnvelope(t, w)
	assert.Equal(t, true, body["success"])
	meta, ok := body["meta"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), meta["totalPages"])
	assert.Equal(t, true, meta["hasNext"])
	assert.Equal(t, false, meta["hasPrevious"])

	assert.Equal(t, "Web", projects.lastSearch.Name)
	assert.Equal(t, "createdAt", projects.lastSearch.SortBy)
	assert.Equal(t, "desc", projects.lastSearch.SortDirection)
}

func TestSearchProjectsOversizedPageRejectedBeforeService(t *testing.T) {
	projects := &stubProjectService{searchErr: fmt.Errorf("service should not be called")}
	r := newTestEngine(t, projects, &stubUserService{}, &stubInvitationService{})

	w := doRequest(r, http.MethodGet, "/api/projects?page=1&size=101", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeEnvelope(t, w)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "100")
	assert.Empty(t, projects.lastSearch.Name)
}

func TestChangeStatusRequiresStatusParam(t *testing.T) {
	r := newTestEngine(t, &stubProjectService{}, &stubUserService{}, &stubInvitationService{})

	w := doRequest(r, http.MethodPut, "/api/projects/abc/status", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, false, body["success"])
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid id", fmt.Errorf("%w: x", projectdomain.ErrInvalidID), http.StatusBadRequest},
		{"not found", fmt.Errorf("%w: x", projectdomain.ErrNotFound), http.StatusNotFound},
		{"not owner", fmt.Errorf("%w: x", projectdomain.ErrNotOwner), http.StatusForbidden},
		{"name taken", fmt.Errorf("%w: x", projectdomain.ErrNameTaken), http.StatusConflict},
		{"storage failure", fmt.Errorf("socket closed"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestEngine(t, &stubProjectService{err: tc.err}, &stubUserService{}, &stubInvitationService{})

			w := doRequest(r, http.MethodGet, "/api/projects/some-id", "")
			assert.Equal(t, tc.want, w.Code)
			body := decodeEnvelope(t, w)
			assert.Equal(t, false, body["success"])
			if tc.want == http.StatusInternalServerError {
				assert.Equal(t, "internal server error", body["message"])
			}
		})
	}
}

func TestCreateProjectReturns201(t *testing.T) {
	projects := &stubProjectService{detail: projectdomain.DetailView{ID: "new-id", Name: "p"}}
	r := newTestEngine(t, projects, &stubUserService{}, &stubInvitationService{})

	w := doRequest(r, http.MethodPost, "/api/projects", `{"name":"p","type":"SOFTWARE"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeEnvelope(t, w)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "new-id", data["id"])
}

func TestListRecentProjectsByOwner(t *testing.T) {
	projects := &stubProjectService{searchViews: []projectdomain.ListView{{ID: "p1"}}}
	r := newTestEngine(t, projects, &stubUserService{}, &stubInvitationService{})

	w := doRequest(r, http.MethodGet, "/api/projects/owner/u-1/recent?limit=3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, projects.recentLimit)

	body := decodeEnvelope(t, w)
	data, ok := body["data"].([]any)
	require.True(t, ok)
	assert.Len(t, data, 1)
}

func TestCreateProjectMalformedBody(t *testing.T) {
	r := newTestEngine(t, &stubProjectService{}, &stubUserService{}, &stubInvitationService{})

	w := doRequest(r, http.MethodPost, "/api/projects", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckProjectName(t *testing.T) {
	r := newTestEngine(t, &stubProjectService{nameTaken: true}, &stubUserService{}, &stubInvitationService{})

	w := doRequest(r, http.MethodGet, "/api/projects/check-name?name=taken", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, false, data["available"])

	w = doRequest(r, http.MethodGet, "/api/projects/check-name", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRespondInvitationActions(t *testing.T) {
	r := newTestEngine(t, &stubProjectService{}, &stubUserService{}, &stubInvitationService{
		view: invitationdomain.View{ID: "inv-1", Status: invitationdomain.StatusAccepted},
	})

	w := doRequest(r, http.MethodPut, "/api/invitations/inv-1/respond?action=accept", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPut, "/api/invitations/inv-1/respond?action=shrug", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRespondInvitationForbiddenForNonInvitee(t *testing.T) {
	r := newTestEngine(t, &stubProjectService{}, &stubUserService{}, &stubInvitationService{
		err: fmt.Errorf("%w: id inv-1", invitationdomain.ErrNotInvitee),
	})

	w := doRequest(r, http.MethodPut, "/api/invitations/inv-1/respond?action=reject", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestInviteRequiresInvitees(t *testing.T) {
	r := newTestEngine(t, &stubProjectService{}, &stubUserService{}, &stubInvitationService{})

	w := doRequest(r, http.MethodPost, "/api/invitations", `{"projectId":"p1","inviteeIds":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSweepExpiredInvitations(t *testing.T) {
	r := newTestEngine(t, &stubProjectService{}, &stubUserService{}, &stubInvitationService{})

	w := doRequest(r, http.MethodPost, "/api/invitations/sweep-expired", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(3), data["expired"])
}

func TestUserStats(t *testing.T) {
	r := newTestEngine(t, &stubProjectService{}, &stubUserService{}, &stubInvitationService{})

	w := doRequest(r, http.MethodGet, "/api/users/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(7), data["activeUsersCount"])
}

func TestUserEmailConflictMapsTo409(t *testing.T) {
	r := newTestEngine(t, &stubProjectService{}, &stubUserService{
		err: fmt.Errorf("%w: a@x.com", userdomain.ErrEmailTaken),
	}, &stubInvitationService{})

	w := doRequest(r, http.MethodPost, "/api/users", `{"firstName":"A","lastName":"B","email":"a@x.com","password":"longenough","role":"MEMBER"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}
