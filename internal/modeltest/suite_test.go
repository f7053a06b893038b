package modeltest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/platform/bedrock"
)

type stubInvoker struct {
	replies map[string]string
	err     error
	calls   []string
}

func (s *stubInvoker) Invoke(_ context.Context, modelID, prompt string) (*bedrock.InvokeResult, error) {
	s.calls = append(s.calls, prompt)
	if s.err != nil {
		return nil, s.err
	}
	for needle, reply := range s.replies {
		if needle == "" || strings.Contains(strings.ToLower(prompt), strings.ToLower(needle)) {
			return &bedrock.InvokeResult{Text: reply, StopReason: "end_turn"}, nil
		}
	}
	return &bedrock.InvokeResult{Text: "unable to classify", StopReason: "end_turn"}, nil
}

func noPause(context.Context, time.Duration) error { return nil }

func discardLogf(string, ...interface{}) {}

func TestSuiteMatchesSubstringsCaseInsensitively(t *testing.T) {
	invoker := &stubInvoker{replies: map[string]string{
		"upload": "This is a TECHNICAL BUG of high severity, route to Engineering Team.",
	}}
	suite := NewSuite(DirectHandle(invoker, "arn:model"), discardLogf)
	suite.Pause = noPause

	results := suite.Run(context.Background(), []TestTicket{{
		Title:            "Cannot upload files larger than 5MB",
		Description:      "Upload fails.",
		ExpectedCategory: "Technical Bug",
		ExpectedSeverity: "High",
	}})

	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.True(t, results[0].CategoryMatch)
	assert.True(t, results[0].SeverityMatch)
}

func TestSuiteInvocationErrorFailsTicketNotRun(t *testing.T) {
	invoker := &stubInvoker{err: errors.New("throttled")}
	suite := NewSuite(DirectHandle(invoker, "arn:model"), discardLogf)
	suite.Pause = noPause

	results := suite.Run(context.Background(), DefaultSuite())

	require.Len(t, results, len(DefaultSuite()), "one failed ticket does not stop the run")
	for _, r := range results {
		assert.False(t, r.Success)
		assert.Contains(t, r.Error, "throttled")
	}
}

func TestSuitePromptContainsTicketText(t *testing.T) {
	invoker := &stubInvoker{replies: map[string]string{"": "ok"}}
	suite := NewSuite(DirectHandle(invoker, "arn:model"), discardLogf)
	suite.Pause = noPause

	suite.Run(context.Background(), []TestTicket{{
		Title:       "Dashboard loading very slowly",
		Description: "Takes 45 seconds.",
	}})

	require.Len(t, invoker.calls, 1)
	assert.Contains(t, invoker.calls[0], "Classify this support ticket")
	assert.Contains(t, invoker.calls[0], "Dashboard loading very slowly")
	assert.Contains(t, invoker.calls[0], "Takes 45 seconds.")
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{Success: true, CategoryMatch: true, SeverityMatch: true},
		{Success: true, CategoryMatch: true, SeverityMatch: false},
		{Success: false, Error: "boom"},
	}

	s := Summarize(results)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Successful)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 2, s.CategoryMatches)
	assert.Equal(t, 1, s.SeverityMatches)
	assert.InDelta(t, 100.0, s.CategoryRate(), 0.01)
	assert.InDelta(t, 50.0, s.SeverityRate(), 0.01)
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)
	results := []Result{{Test: 1, Title: "t", Success: true, CategoryMatch: true}}

	path, err := WriteReport(dir, "arn:model", results, now)
	require.NoError(t, err)
	assert.Contains(t, path, "model_test_results_20250601_123045.json")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		ModelIdentifier string  `json:"model_identifier"`
		Summary         Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "arn:model", doc.ModelIdentifier)
	assert.Equal(t, 1, doc.Summary.Successful)
}

type stubDeployments struct {
	statuses    []bedrock.DeploymentStatus
	getCalls    int
	queryErrs   int
	createCalls int
	deleted     []string
	failureMsg  string
}

func (s *stubDeployments) CreateDeployment(_ context.Context, name, modelARN string) (string, error) {
	s.createCalls++
	return "arn:aws:bedrock:us-east-1:123456789012:custom-model-deployment/" + name, nil
}

func (s *stubDeployments) GetDeployment(_ context.Context, identifier string) (*bedrock.DeploymentSnapshot, error) {
	if s.queryErrs > 0 {
		s.queryErrs--
		return nil, fmt.Errorf("deployment not found")
	}
	status := s.statuses[len(s.statuses)-1]
	if s.getCalls < len(s.statuses) {
		status = s.statuses[s.getCalls]
	}
	s.getCalls++
	return &bedrock.DeploymentSnapshot{
		DeploymentARN:  identifier,
		Status:         status,
		FailureMessage: s.failureMsg,
	}, nil
}

func (s *stubDeployments) ListDeployments(context.Context) ([]bedrock.DeploymentSnapshot, error) {
	return nil, nil
}

func (s *stubDeployments) DeleteDeployment(_ context.Context, identifier string) error {
	s.deleted = append(s.deleted, identifier)
	return nil
}

func provisionOpts() ProvisionOptions {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	return ProvisionOptions{
		Wait: 10 * time.Minute,
		Poll: 10 * time.Second,
		Sleep: func(context.Context, time.Duration) error {
			clock = clock.Add(10 * time.Second)
			return nil
		},
		Now: func() time.Time { return clock },
	}
}

func TestProvisionDeploymentWaitsForActive(t *testing.T) {
	deployments := &stubDeployments{statuses: []bedrock.DeploymentStatus{
		bedrock.DeploymentStatusCreating,
		bedrock.DeploymentStatusCreating,
		bedrock.DeploymentStatusActive,
	}}
	invoker := &stubInvoker{replies: map[string]string{"": "ok"}}

	handle, deploymentARN, err := ProvisionDeployment(
		context.Background(), deployments, invoker, "arn:model", provisionOpts())
	require.NoError(t, err)

	assert.Equal(t, 1, deployments.createCalls)
	assert.Equal(t, deploymentARN, handle.Identifier())
	assert.Contains(t, deploymentARN, "custom-model-deployment/support-deployment-")
}

func TestProvisionDeploymentToleratesEarlyQueryErrors(t *testing.T) {
	deployments := &stubDeployments{
		statuses:  []bedrock.DeploymentStatus{bedrock.DeploymentStatusActive},
		queryErrs: 3,
	}

	_, _, err := ProvisionDeployment(
		context.Background(), deployments, &stubInvoker{}, "arn:model", provisionOpts())

	assert.NoError(t, err, "a deployment is not queryable immediately after creation")
}

func TestProvisionDeploymentReportsFailure(t *testing.T) {
	deployments := &stubDeployments{
		statuses:   []bedrock.DeploymentStatus{bedrock.DeploymentStatusFailed},
		failureMsg: "no capacity",
	}

	_, deploymentARN, err := ProvisionDeployment(
		context.Background(), deployments, &stubInvoker{}, "arn:model", provisionOpts())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no capacity")
	assert.NotEmpty(t, deploymentARN, "the handle to the failed deployment is still returned for cleanup")
}

func TestProvisionDeploymentTimesOut(t *testing.T) {
	deployments := &stubDeployments{statuses: []bedrock.DeploymentStatus{
		bedrock.DeploymentStatusCreating,
	}}
	opts := provisionOpts()
	opts.Wait = 30 * time.Second

	_, _, err := ProvisionDeployment(
		context.Background(), deployments, &stubInvoker{}, "arn:model", opts)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not active")
}
