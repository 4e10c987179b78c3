package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"dayflow/models"
	"dayflow/pkg/paseto"
)

type fakeLeaveDesk struct {
	request      *models.LeaveRequest
	updateCalled bool
	updateStatus string
}

func (f *fakeLeaveDesk) Create(context.Context, *models.User, *models.LeaveRequestCreatePayload) (*models.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveDesk) FindByID(context.Context, primitive.ObjectID) (*models.LeaveRequest, error) {
	return f.request, nil
}

func (f *fakeLeaveDesk) FindByEmployee(context.Context, string) ([]models.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveDesk) FindPendingWithBalances(context.Context) ([]models.LeaveRequestWithBalance, error) {
	return nil, nil
}

func (f *fakeLeaveDesk) Balance(context.Context, string, string) (*models.LeaveBalance, error) {
	return &models.LeaveBalance{}, nil
}

func (f *fakeLeaveDesk) UpdateStatus(_ context.Context, _ primitive.ObjectID, status, note string, _ *models.User) (*models.LeaveRequest, error) {
	f.updateCalled = true
	f.updateStatus = status
	decided := *f.request
	decided.Status = status
	decided.Note = note
	return &decided, nil
}

func (f *fakeLeaveDesk) Decisions(context.Context) ([]models.LeaveRequest, error) {
	return nil, nil
}

func newLeaveTestApp(desk *fakeLeaveDesk, dir *fakeDirectory) *fiber.App {
	handler := NewLeaveRequestHandler(desk, dir)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", &paseto.Claims{UserID: primitive.NewObjectID(), Role: "admin"})
		return c.Next()
	})
	app.Put("/leave-requests/:id/status", handler.Decide)
	return app
}

func decide(t *testing.T, app *fiber.App, id primitive.ObjectID, payload models.LeaveRequestDecisionPayload) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/leave-requests/"+id.Hex()+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func pendingRequest() *models.LeaveRequest {
	return &models.LeaveRequest{
		ID:         primitive.NewObjectID(),
		EmployeeID: primitive.NewObjectID().Hex(),
		Type:       models.LeaveTypeAnnual,
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-04",
		Days:       3,
		Status:     "pending",
	}
}

func TestDecideApprovalRequiresExistingEmployee(t *testing.T) {
	desk := &fakeLeaveDesk{request: pendingRequest()}
	// The requester was deleted after filing; the directory lookup finds
	// nobody to write the Leave attendance days for.
	app := newLeaveTestApp(desk, &fakeDirectory{user: nil})

	resp := decide(t, app, desk.request.ID, models.LeaveRequestDecisionPayload{Status: "approved"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, desk.updateCalled, "an approval with no requester must never reach the store")
}

func TestDecideRejectionAllowedForDeletedEmployee(t *testing.T) {
	desk := &fakeLeaveDesk{request: pendingRequest()}
	app := newLeaveTestApp(desk, &fakeDirectory{user: nil})

	resp := decide(t, app, desk.request.ID, models.LeaveRequestDecisionPayload{Status: "rejected", Note: "account closed"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, desk.updateCalled)
	assert.Equal(t, "rejected", desk.updateStatus)
}

func TestDecideApproval(t *testing.T) {
	desk := &fakeLeaveDesk{request: pendingRequest()}
	requesterID, err := primitive.ObjectIDFromHex(desk.request.EmployeeID)
	require.NoError(t, err)
	app := newLeaveTestApp(desk, &fakeDirectory{user: &models.User{ID: requesterID, Name: "John Smith"}})

	resp := decide(t, app, desk.request.ID, models.LeaveRequestDecisionPayload{Status: "approved"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, desk.updateCalled)
	assert.Equal(t, "approved", desk.updateStatus)
}
