package leave_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"unicube-hr/internal/leave"
	leaveerrors "unicube-hr/internal/leave/errors"
	"unicube-hr/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	submitFn        func(ctx context.Context, requester user.User, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error)
	getAllFn        func(ctx context.Context) ([]leave.LeaveResponse, error)
	getAllForUserFn func(ctx context.Context, userID string) ([]leave.LeaveResponse, error)
	getByIDFn       func(ctx context.Context, id string) (leave.LeaveResponse, error)
	decideFn        func(ctx context.Context, id, status string) (leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Submit(ctx context.Context, requester user.User, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
	return f.submitFn(ctx, requester, req)
}
func (f *fakeLeaveService) GetAll(ctx context.Context) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx)
}
func (f *fakeLeaveService) GetAllForUser(ctx context.Context, userID string) ([]leave.LeaveResponse, error) {
	return f.getAllForUserFn(ctx, userID)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeLeaveService) Decide(ctx context.Context, id, status string) (leave.LeaveResponse, error) {
	return f.decideFn(ctx, id, status)
}
func (f *fakeLeaveService) Approve(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.decideFn(ctx, id, leave.StatusApproved)
}
func (f *fakeLeaveService) Reject(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.decideFn(ctx, id, leave.StatusRejected)
}

func TestLeaveHandler_Submit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		userID := uuid.New().String()

		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, requester user.User, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, userID, requester.ID)
				assert.Equal(t, "Naitik Beri", requester.Name)
				return leave.LeaveResponse{
					ID:        uuid.New().String(),
					UserID:    requester.ID,
					UserName:  requester.Name,
					StartDate: req.StartDate,
					EndDate:   req.EndDate,
					TotalDays: 2,
					Reason:    req.Reason,
					Status:    leave.StatusPending,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"startDate":"2026-05-04","endDate":"2026-05-05","reason":"Attending a family function"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", userID)
		c.Set("user_name", "Naitik Beri")
		c.Set("user_role", user.RoleEmployee)

		h.Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, userID, got.UserID)
		assert.Equal(t, leave.StatusPending, got.Status)
		assert.Equal(t, 2, got.TotalDays)
	})

	t.Run("negative missing reason", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{"startDate":"2026-05-04","endDate":"2026-05-05"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("negative service validation error", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, requester user.User, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInvalidDateRange
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"startDate":"2026-05-06","endDate":"2026-05-05","reason":"Attending a family function"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("negative unexpected error collapses to 500", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, requester user.User, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, errors.New("open /data/leave-requests.json: permission denied")
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"startDate":"2026-05-04","endDate":"2026-05-05","reason":"Attending a family function"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Submit(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
		// internals must not leak to the client
		assert.NotContains(t, env.Error.Message, "permission denied")
	})
}

func TestLeaveHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("admin sees every request", func(t *testing.T) {
		svc := &fakeLeaveService{
			getAllFn: func(ctx context.Context) ([]leave.LeaveResponse, error) {
				return []leave.LeaveResponse{{ID: "a"}, {ID: "b"}}, nil
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leave-requests", nil)
		c.Set("user_role", user.RoleAdmin)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got []leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 2)
	})

	t.Run("employee sees own requests only", func(t *testing.T) {
		userID := uuid.New().String()
		svc := &fakeLeaveService{
			getAllForUserFn: func(ctx context.Context, uid string) ([]leave.LeaveResponse, error) {
				assert.Equal(t, userID, uid)
				return []leave.LeaveResponse{{ID: "mine", UserID: uid}}, nil
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leave-requests", nil)
		c.Set("user_id", userID)
		c.Set("user_role", user.RoleEmployee)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got []leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 1)
		assert.Equal(t, userID, got[0].UserID)
	})

	t.Run("paginates results", func(t *testing.T) {
		resp := make([]leave.LeaveResponse, 25)
		for i := range resp {
			resp[i].ID = uuid.New().String()
		}
		svc := &fakeLeaveService{
			getAllFn: func(ctx context.Context) ([]leave.LeaveResponse, error) { return resp, nil },
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leave-requests?page=2&page_size=20", nil)
		c.Set("user_role", user.RoleAdmin)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got []leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 5)
	})
}

func TestLeaveHandler_Decide(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		leaveID := uuid.New().String()
		svc := &fakeLeaveService{
			decideFn: func(ctx context.Context, id, status string) (leave.LeaveResponse, error) {
				assert.Equal(t, leaveID, id)
				assert.Equal(t, leave.StatusApproved, status)
				return leave.LeaveResponse{ID: id, Status: status}, nil
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/leave-requests/"+leaveID+"/status", strings.NewReader(`{"status":"approved"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: leaveID}}

		h.Decide(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative status outside enum", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/leave-requests/x/status", strings.NewReader(`{"status":"pending"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "x"}}

		h.Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative repeated decision maps to 400", func(t *testing.T) {
		svc := &fakeLeaveService{
			decideFn: func(ctx context.Context, id, status string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/leave-requests/x/status", strings.NewReader(`{"status":"approved"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "x"}}

		h.Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})

	t.Run("negative unknown id", func(t *testing.T) {
		svc := &fakeLeaveService{
			decideFn: func(ctx context.Context, id, status string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/leave-requests/x/status", strings.NewReader(`{"status":"rejected"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "x"}}

		h.Decide(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
