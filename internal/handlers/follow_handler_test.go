package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/orbithammer/parasocial-sub002/internal/models"
	"github.com/orbithammer/parasocial-sub002/internal/services"
	"gorm.io/gorm"
)

// fakeFollowRepo backs the handler tests with an in-memory relationship store
type fakeFollowRepo struct {
	follows []models.Follow
}

func (f *fakeFollowRepo) matches(fl *models.Follow, key string) bool {
	return fl.FollowerID == key || (fl.ActorID != nil && *fl.ActorID == key)
}

func (f *fakeFollowRepo) CreateFollow(follow *models.Follow) (*models.Follow, error) {
	for i := range f.follows {
		if f.follows[i].FollowerID == follow.FollowerID && f.follows[i].FollowedID == follow.FollowedID {
			return nil, gorm.ErrDuplicatedKey
		}
	}
	follow.ID = uuid.NewString()
	follow.IsAccepted = true
	follow.CreatedAt = time.Now()
	f.follows = append(f.follows, *follow)
	return follow, nil
}

func (f *fakeFollowRepo) FindByFollowerAndFollowed(key, followedID string) (*models.Follow, error) {
	for i := range f.follows {
		if f.matches(&f.follows[i], key) && f.follows[i].FollowedID == followedID {
			fl := f.follows[i]
			return &fl, nil
		}
	}
	return nil, nil
}

func (f *fakeFollowRepo) DeleteByFollowerAndFollowed(key, followedID string) (*models.Follow, error) {
	for i := range f.follows {
		if f.matches(&f.follows[i], key) && f.follows[i].FollowedID == followedID {
			deleted := f.follows[i]
			f.follows = append(f.follows[:i], f.follows[i+1:]...)
			return &deleted, nil
		}
	}
	return nil, nil
}

func (f *fakeFollowRepo) FindFollowersByUserID(userID string, offset, limit int) (*models.FollowPage, error) {
	var all []models.Follow
	for i := range f.follows {
		if f.follows[i].FollowedID == userID && f.follows[i].IsAccepted {
			all = append(all, f.follows[i])
		}
	}
	total := int64(len(all))
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return &models.FollowPage{
		Follows:    all[offset:end],
		TotalCount: total,
		Offset:     offset,
		Limit:      limit,
		HasMore:    int64(offset+limit) < total,
	}, nil
}

func (f *fakeFollowRepo) FindFollowingByUserID(userID string, offset, limit int) (*models.FollowPage, error) {
	var all []models.Follow
	for i := range f.follows {
		if f.matches(&f.follows[i], userID) && f.follows[i].IsAccepted {
			all = append(all, f.follows[i])
		}
	}
	return &models.FollowPage{Follows: all, TotalCount: int64(len(all)), Offset: offset, Limit: limit}, nil
}

func (f *fakeFollowRepo) GetFollowStats(userID string) (*models.FollowStats, error) {
	stats := &models.FollowStats{}
	for i := range f.follows {
		if f.follows[i].FollowedID == userID {
			stats.FollowerCount++
		}
		if f.matches(&f.follows[i], userID) {
			stats.FollowingCount++
		}
	}
	return stats, nil
}

func (f *fakeFollowRepo) IsFollowing(key, followedID string) (bool, error) {
	existing, _ := f.FindByFollowerAndFollowed(key, followedID)
	return existing != nil, nil
}

func (f *fakeFollowRepo) BulkCheckFollowing(key string, userIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		existing, _ := f.FindByFollowerAndFollowed(key, id)
		result[id] = existing != nil
	}
	return result, nil
}

func (f *fakeFollowRepo) FindRecentFollowers(userID string, limit int) ([]models.Follow, error) {
	page, _ := f.FindFollowersByUserID(userID, 0, limit)
	return page.Follows, nil
}

func (f *fakeFollowRepo) DeleteAllForUser(userID string) error {
	var kept []models.Follow
	for i := range f.follows {
		if f.follows[i].FollowerID != userID && f.follows[i].FollowedID != userID {
			kept = append(kept, f.follows[i])
		}
	}
	f.follows = kept
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) CreateUser(user *models.User) error { f.users[user.ID] = user; return nil }

func (f *fakeUserRepo) FindByID(id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByUsername(username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdateUser(user *models.User) error { f.users[user.ID] = user; return nil }

func (f *fakeUserRepo) DeleteUser(id string) error { delete(f.users, id); return nil }

func (f *fakeUserRepo) SearchUsers(query string) ([]models.User, error) { return nil, nil }

func newTestFollowHandler(users ...*models.User) (*FollowHandler, *fakeFollowRepo) {
	followRepo := &fakeFollowRepo{}
	userRepo := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		userRepo.users[u.ID] = u
	}
	svc := services.NewFollowService(followRepo, userRepo)
	return NewFollowHandler(svc, userRepo, nil), followRepo
}

func newFollowRequest(method, path, userID, body string, paramName, paramValue string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if paramName != "" {
		c.SetParamNames(paramName)
		c.SetParamValues(paramValue)
	}
	if userID != "" {
		c.Set("user", &models.JwtCustomClaims{UserID: userID})
	}
	return c, rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return envelope
}

func TestFollowUserHandlerSuccess(t *testing.T) {
	h, _ := newTestFollowHandler(
		&models.User{ID: "alice", Username: "alice", IsActive: true},
		&models.User{ID: "bob", Username: "bob", IsActive: true},
	)
	c, rec := newFollowRequest(http.MethodPost, "/users/bob/follow", "alice", "", "id", "bob")

	if err := h.FollowUser(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope["success"] != true {
		t.Errorf("expected success envelope, got %v", envelope)
	}
	data, ok := envelope["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object, got %T", envelope["data"])
	}
	if data["follower_id"] != "alice" || data["followed_id"] != "bob" {
		t.Errorf("unexpected relationship payload: %v", data)
	}
}

func TestFollowUserHandlerUnauthenticated(t *testing.T) {
	h, _ := newTestFollowHandler()
	c, _ := newFollowRequest(http.MethodPost, "/users/bob/follow", "", "", "id", "bob")

	err := h.FollowUser(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestFollowUserHandlerErrorCodes(t *testing.T) {
	tests := []struct {
		name       string
		follower   string
		target     string
		wantStatus int
		wantCode   string
	}{
		{"self follow", "alice", "alice", http.StatusBadRequest, "SELF_FOLLOW_ERROR"},
		{"unknown target", "alice", "ghost", http.StatusNotFound, "USER_NOT_FOUND"},
		{"inactive target", "alice", "carol", http.StatusForbidden, "USER_INACTIVE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestFollowHandler(
				&models.User{ID: "alice", Username: "alice", IsActive: true},
				&models.User{ID: "carol", Username: "carol", IsActive: false},
			)
			c, rec := newFollowRequest(http.MethodPost, "/users/"+tt.target+"/follow", tt.follower, "", "id", tt.target)

			if err := h.FollowUser(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			envelope := decodeEnvelope(t, rec)
			if envelope["success"] != false || envelope["code"] != tt.wantCode {
				t.Errorf("expected failure envelope with code %s, got %v", tt.wantCode, envelope)
			}
			if _, ok := envelope["error"].(string); !ok {
				t.Errorf("expected string error message, got %v", envelope["error"])
			}
		})
	}
}

func TestFollowUserHandlerDuplicateConflict(t *testing.T) {
	h, repo := newTestFollowHandler(
		&models.User{ID: "alice", Username: "alice", IsActive: true},
		&models.User{ID: "bob", Username: "bob", IsActive: true},
	)
	repo.follows = append(repo.follows, models.Follow{
		ID: uuid.NewString(), FollowerID: "alice", FollowedID: "bob", IsAccepted: true,
	})
	c, rec := newFollowRequest(http.MethodPost, "/users/bob/follow", "alice", "", "id", "bob")

	if err := h.FollowUser(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
	if envelope := decodeEnvelope(t, rec); envelope["code"] != "ALREADY_FOLLOWING" {
		t.Errorf("expected ALREADY_FOLLOWING, got %v", envelope["code"])
	}
}

func TestUnfollowUserHandlerNotFollowing(t *testing.T) {
	h, _ := newTestFollowHandler(
		&models.User{ID: "alice", Username: "alice", IsActive: true},
		&models.User{ID: "bob", Username: "bob", IsActive: true},
	)
	c, rec := newFollowRequest(http.MethodDelete, "/users/bob/follow", "alice", "", "id", "bob")

	if err := h.UnfollowUser(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
	if envelope := decodeEnvelope(t, rec); envelope["code"] != "NOT_FOLLOWING" {
		t.Errorf("expected NOT_FOLLOWING, got %v", envelope["code"])
	}
}

func TestGetFollowersHandlerPagination(t *testing.T) {
	h, repo := newTestFollowHandler(&models.User{ID: "bob", Username: "bob", IsActive: true})
	for i := 0; i < 6; i++ {
		repo.follows = append(repo.follows, models.Follow{
			ID: uuid.NewString(), FollowerID: uuid.NewString(), FollowedID: "bob", IsAccepted: true,
		})
	}
	c, rec := newFollowRequest(http.MethodGet, "/users/bob/followers?offset=0&limit=3", "", "", "id", "bob")

	if err := h.GetFollowers(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]interface{})
	if data["total_count"] != float64(6) || data["has_more"] != true {
		t.Errorf("unexpected pagination meta: %v", data)
	}
	if follows := data["follows"].([]interface{}); len(follows) != 3 {
		t.Errorf("expected 3 follows in page, got %d", len(follows))
	}
}

func TestGetFollowersHandlerInvalidPagination(t *testing.T) {
	h, _ := newTestFollowHandler(&models.User{ID: "bob", Username: "bob", IsActive: true})

	// Non-numeric parameters are rejected before reaching the service.
	c, _ := newFollowRequest(http.MethodGet, "/users/bob/followers?limit=abc", "", "", "id", "bob")
	err := h.GetFollowers(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError for non-numeric limit, got %v", err)
	}

	// Out-of-range parameters come back as a coded envelope.
	c, rec := newFollowRequest(http.MethodGet, "/users/bob/followers?limit=101", "", "", "id", "bob")
	if err := h.GetFollowers(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if envelope := decodeEnvelope(t, rec); envelope["code"] != "INVALID_PARAMETERS" {
		t.Errorf("expected INVALID_PARAMETERS, got %v", envelope["code"])
	}
}

func TestCheckFollowStatusHandler(t *testing.T) {
	h, repo := newTestFollowHandler(
		&models.User{ID: "alice", Username: "alice", IsActive: true},
		&models.User{ID: "bob", Username: "bob", IsActive: true},
	)
	repo.follows = append(repo.follows, models.Follow{
		ID: uuid.NewString(), FollowerID: "alice", FollowedID: "bob", IsAccepted: true,
	})
	c, rec := newFollowRequest(http.MethodGet, "/users/bob/follow-status", "alice", "", "id", "bob")

	if err := h.CheckFollowStatus(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]interface{})
	if data["following"] != true {
		t.Errorf("expected following true, got %v", data)
	}
}

func TestBulkCheckFollowingHandler(t *testing.T) {
	h, repo := newTestFollowHandler(&models.User{ID: "f", Username: "f", IsActive: true})
	repo.follows = append(repo.follows, models.Follow{
		ID: uuid.NewString(), FollowerID: "f", FollowedID: "a", IsAccepted: true,
	})
	c, rec := newFollowRequest(http.MethodPost, "/follows/bulk-check", "f", `{"user_ids":["a","b"]}`, "", "")

	if err := h.BulkCheckFollowing(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]interface{})
	if data["a"] != true || data["b"] != false {
		t.Errorf("unexpected bulk result: %v", data)
	}
}

func TestBulkCheckFollowingHandlerTooMany(t *testing.T) {
	h, _ := newTestFollowHandler(&models.User{ID: "f", Username: "f", IsActive: true})
	ids := make([]string, 101)
	for i := range ids {
		ids[i] = "u"
	}
	body, _ := json.Marshal(map[string][]string{"user_ids": ids})
	c, rec := newFollowRequest(http.MethodPost, "/follows/bulk-check", "f", string(body), "", "")

	if err := h.BulkCheckFollowing(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if envelope := decodeEnvelope(t, rec); envelope["code"] != "TOO_MANY_USERS" {
		t.Errorf("expected TOO_MANY_USERS, got %v", envelope["code"])
	}
}

func TestGetFollowStatsHandler(t *testing.T) {
	h, repo := newTestFollowHandler(&models.User{ID: "bob", Username: "bob", IsActive: true})
	repo.follows = append(repo.follows,
		models.Follow{ID: uuid.NewString(), FollowerID: "x", FollowedID: "bob", IsAccepted: true},
		models.Follow{ID: uuid.NewString(), FollowerID: "y", FollowedID: "bob", IsAccepted: true},
	)
	c, rec := newFollowRequest(http.MethodGet, "/users/bob/follow-stats", "", "", "id", "bob")

	if err := h.GetFollowStats(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]interface{})
	if data["follower_count"] != float64(2) || data["following_count"] != float64(0) {
		t.Errorf("unexpected stats: %v", data)
	}
}
