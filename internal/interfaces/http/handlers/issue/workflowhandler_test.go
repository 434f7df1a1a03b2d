package issue

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	issuedto "orbit/internal/application/issue/dto"
	"orbit/internal/application/issue/usecases"
	"orbit/internal/interfaces/http/handlers/testutil"
	"orbit/internal/shared/authorization"
	"orbit/internal/shared/errors"
)

type mockListStepsUC struct {
	result []*issuedto.WorkflowStepDTO
	err    error
}

func (m *mockListStepsUC) Execute(_ context.Context, _ uint) ([]*issuedto.WorkflowStepDTO, error) {
	return m.result, m.err
}

type mockCreateStepUC struct {
	result *issuedto.WorkflowStepDTO
	err    error
	gotCmd usecases.CreateStepCommand
}

func (m *mockCreateStepUC) Execute(_ context.Context, cmd usecases.CreateStepCommand) (*issuedto.WorkflowStepDTO, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

type mockApproveStepUC struct {
	result *usecases.ResolveStepResult
	err    error
	gotCmd usecases.ApproveStepCommand
}

func (m *mockApproveStepUC) Execute(_ context.Context, cmd usecases.ApproveStepCommand) (*usecases.ResolveStepResult, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

type mockRejectStepUC struct {
	result *usecases.ResolveStepResult
	err    error
	gotCmd usecases.RejectStepCommand
}

func (m *mockRejectStepUC) Execute(_ context.Context, cmd usecases.RejectStepCommand) (*usecases.ResolveStepResult, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

type workflowHandlerDeps struct {
	listStepsUC   usecases.ListStepsExecutor
	createStepUC  usecases.CreateStepExecutor
	approveStepUC usecases.ApproveStepExecutor
	rejectStepUC  usecases.RejectStepExecutor
}

func newTestWorkflowHandler(deps workflowHandlerDeps) *WorkflowHandler {
	return NewWorkflowHandler(
		deps.listStepsUC,
		deps.createStepUC,
		deps.approveStepUC,
		deps.rejectStepUC,
	)
}

func sampleStepDTO(stepType, status string) *issuedto.WorkflowStepDTO {
	approver := uint(3)
	return &issuedto.WorkflowStepDTO{
		ID:         7,
		IssueID:    1,
		StepType:   stepType,
		Status:     status,
		ApproverID: &approver,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestWorkflowHandler_ListSteps_Success(t *testing.T) {
	mockUC := &mockListStepsUC{
		result: []*issuedto.WorkflowStepDTO{
			sampleStepDTO("dev_review", "approved"),
			sampleStepDTO("qa_review", "pending"),
		},
	}
	handler := newTestWorkflowHandler(workflowHandlerDeps{listStepsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/issues/1/steps", nil)
	testutil.SetAuthContext(c, 2, authorization.RoleReporter)
	testutil.SetURLParam(c, "id", "1")

	handler.ListSteps(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
}

func TestWorkflowHandler_ListSteps_BadID(t *testing.T) {
	handler := newTestWorkflowHandler(workflowHandlerDeps{})

	c, w := testutil.NewTestContext(http.MethodGet, "/issues/abc/steps", nil)
	testutil.SetURLParam(c, "id", "abc")

	handler.ListSteps(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorkflowHandler_ListSteps_IssueNotFound(t *testing.T) {
	mockUC := &mockListStepsUC{err: errors.NewNotFoundError("issue not found")}
	handler := newTestWorkflowHandler(workflowHandlerDeps{listStepsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/issues/99/steps", nil)
	testutil.SetURLParam(c, "id", "99")

	handler.ListSteps(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWorkflowHandler_CreateStep_Success(t *testing.T) {
	mockUC := &mockCreateStepUC{result: sampleStepDTO("dev_review", "pending")}
	handler := newTestWorkflowHandler(workflowHandlerDeps{createStepUC: mockUC})

	approverID := uint(3)
	reqBody := CreateStepRequest{StepType: "dev_review", ApproverID: &approverID}
	c, w := testutil.NewTestContext(http.MethodPost, "/issues/1/steps", reqBody)
	testutil.SetAuthContext(c, 2, authorization.RoleAdmin)
	testutil.SetURLParam(c, "id", "1")

	handler.CreateStep(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(1), mockUC.gotCmd.IssueID)
	assert.Equal(t, "dev_review", mockUC.gotCmd.StepType)
	require.NotNil(t, mockUC.gotCmd.ApproverID)
	assert.Equal(t, uint(3), *mockUC.gotCmd.ApproverID)
}

func TestWorkflowHandler_CreateStep_BindError(t *testing.T) {
	handler := newTestWorkflowHandler(workflowHandlerDeps{})

	c, w := testutil.NewTestContext(http.MethodPost, "/issues/1/steps", map[string]string{})
	testutil.SetAuthContext(c, 2, authorization.RoleAdmin)
	testutil.SetURLParam(c, "id", "1")

	handler.CreateStep(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorkflowHandler_CreateStep_PendingConflict(t *testing.T) {
	mockUC := &mockCreateStepUC{err: errors.NewConflictError("issue already has a pending workflow step")}
	handler := newTestWorkflowHandler(workflowHandlerDeps{createStepUC: mockUC})

	reqBody := CreateStepRequest{StepType: "dev_review"}
	c, w := testutil.NewTestContext(http.MethodPost, "/issues/1/steps", reqBody)
	testutil.SetAuthContext(c, 2, authorization.RoleAdmin)
	testutil.SetURLParam(c, "id", "1")

	handler.CreateStep(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "conflict", resp.Error.Type)
}

func TestWorkflowHandler_ApproveStep_Success(t *testing.T) {
	mockUC := &mockApproveStepUC{
		result: &usecases.ResolveStepResult{
			Step:  sampleStepDTO("dev_review", "approved"),
			Issue: sampleIssueDTO("qa_review"),
		},
	}
	handler := newTestWorkflowHandler(workflowHandlerDeps{approveStepUC: mockUC})

	reqBody := ResolveStepRequest{Comments: "looks good"}
	c, w := testutil.NewTestContext(http.MethodPost, "/steps/7/approve", reqBody)
	testutil.SetAuthContext(c, 3, authorization.RoleDeveloper)
	testutil.SetURLParam(c, "id", "7")

	handler.ApproveStep(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), mockUC.gotCmd.StepID)
	assert.Equal(t, uint(3), mockUC.gotCmd.ApproverID, "approver comes from the auth context")
	assert.Equal(t, authorization.RoleDeveloper, mockUC.gotCmd.ApproverRole)
	assert.Equal(t, "looks good", mockUC.gotCmd.Comments)
}

func TestWorkflowHandler_ApproveStep_NoBody(t *testing.T) {
	mockUC := &mockApproveStepUC{
		result: &usecases.ResolveStepResult{
			Step:  sampleStepDTO("dev_review", "approved"),
			Issue: sampleIssueDTO("qa_review"),
		},
	}
	handler := newTestWorkflowHandler(workflowHandlerDeps{approveStepUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/steps/7/approve", nil)
	testutil.SetAuthContext(c, 3, authorization.RoleDeveloper)
	testutil.SetURLParam(c, "id", "7")

	handler.ApproveStep(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), mockUC.gotCmd.StepID)
	assert.Empty(t, mockUC.gotCmd.Comments)
}

func TestWorkflowHandler_ApproveStep_Forbidden(t *testing.T) {
	mockUC := &mockApproveStepUC{err: errors.NewAuthorizationError("this step is designated to another approver")}
	handler := newTestWorkflowHandler(workflowHandlerDeps{approveStepUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/steps/7/approve", ResolveStepRequest{})
	testutil.SetAuthContext(c, 9, authorization.RoleDeveloper)
	testutil.SetURLParam(c, "id", "7")

	handler.ApproveStep(c)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "forbidden", resp.Error.Type)
}

func TestWorkflowHandler_ApproveStep_AlreadyResolved(t *testing.T) {
	mockUC := &mockApproveStepUC{err: errors.NewConflictError("workflow step already approved")}
	handler := newTestWorkflowHandler(workflowHandlerDeps{approveStepUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/steps/7/approve", ResolveStepRequest{})
	testutil.SetAuthContext(c, 3, authorization.RoleDeveloper)
	testutil.SetURLParam(c, "id", "7")

	handler.ApproveStep(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWorkflowHandler_RejectStep_Success(t *testing.T) {
	mockUC := &mockRejectStepUC{
		result: &usecases.ResolveStepResult{
			Step:  sampleStepDTO("qa_review", "rejected"),
			Issue: sampleIssueDTO("in_progress"),
		},
	}
	handler := newTestWorkflowHandler(workflowHandlerDeps{rejectStepUC: mockUC})

	reqBody := ResolveStepRequest{Comments: "regression in the login flow"}
	c, w := testutil.NewTestContext(http.MethodPost, "/steps/7/reject", reqBody)
	testutil.SetAuthContext(c, 4, authorization.RoleQA)
	testutil.SetURLParam(c, "id", "7")

	handler.RejectStep(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), mockUC.gotCmd.StepID)
	assert.Equal(t, uint(4), mockUC.gotCmd.ApproverID)
	assert.Equal(t, authorization.RoleQA, mockUC.gotCmd.ApproverRole)
	assert.Equal(t, "regression in the login flow", mockUC.gotCmd.Comments)
}

func TestWorkflowHandler_RejectStep_MissingComment(t *testing.T) {
	mockUC := &mockRejectStepUC{err: errors.NewValidationError("rejection comments are required")}
	handler := newTestWorkflowHandler(workflowHandlerDeps{rejectStepUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/steps/7/reject", ResolveStepRequest{})
	testutil.SetAuthContext(c, 4, authorization.RoleQA)
	testutil.SetURLParam(c, "id", "7")

	handler.RejectStep(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "validation_error", resp.Error.Type)
}
