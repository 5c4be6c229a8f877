package assess

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heliowatt/feasibility-cli/internal/config"
	"github.com/heliowatt/feasibility-cli/internal/model"
	"github.com/heliowatt/feasibility-cli/internal/scorer"
	"github.com/heliowatt/feasibility-cli/internal/store"
	"github.com/heliowatt/feasibility-cli/pkg/anthropic"
)

type fakeSearcher struct {
	articles []model.Article
	err      error
	location string
}

func (f *fakeSearcher) Search(_ context.Context, location string) ([]model.Article, error) {
	f.location = location
	return f.articles, f.err
}

type fakeStore struct {
	created   []model.Site
	statuses  []model.AssessmentStatus
	completed *model.FeasibilityResult
	failedMsg string
}

func (f *fakeStore) CreateAssessment(_ context.Context, site model.Site) (*model.Assessment, error) {
	f.created = append(f.created, site)
	return &model.Assessment{ID: "rec-1", Site: site, Status: model.AssessmentStatusQueued}, nil
}

func (f *fakeStore) UpdateAssessmentStatus(_ context.Context, _ string, status model.AssessmentStatus) error {
	f.statuses = append(f.statuses, status)
	return nil
}

func (f *fakeStore) CompleteAssessment(_ context.Context, _ string, result *model.FeasibilityResult) error {
	f.completed = result
	return nil
}

func (f *fakeStore) FailAssessment(_ context.Context, _ string, cause string) error {
	f.failedMsg = cause
	return nil
}

func (f *fakeStore) GetAssessment(context.Context, string) (*model.Assessment, error) {
	return nil, eris.New("not implemented")
}

func (f *fakeStore) ListAssessments(context.Context, store.AssessmentFilter) ([]model.Assessment, error) {
	return nil, nil
}

func (f *fakeStore) Migrate(context.Context) error { return nil }
func (f *fakeStore) Close() error                  { return nil }

type fakeAnthropic struct {
	text string
	err  error
}

func (f *fakeAnthropic) CreateMessage(context.Context, anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: f.text}},
	}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Scoring: scorer.DefaultConfig(),
	}
}

func TestRunLosAngelesSite(t *testing.T) {
	searcher := &fakeSearcher{}
	a := New(testConfig(), nil, searcher, scorer.New(scorer.DefaultConfig()), nil)

	site := model.Site{Address: "123 Main St, Los Angeles, CA 90001"}
	result, err := a.Run(context.Background(), site)
	require.NoError(t, err)

	assert.Equal(t, model.JurisdictionLosAngeles, result.Jurisdiction)
	assert.Equal(t, "Los Angeles California", searcher.location)
	assert.InDelta(t, 30.0, result.PermitScore, 0.001)
	assert.InDelta(t, 70.0, result.ResearchScore, 0.001)
	assert.InDelta(t, 46.0, result.OverallScore, 0.001)
	assert.Equal(t, model.DecisionNoGo, result.Decision)
	assert.Equal(t, model.RiskHigh, result.Risk)
	require.NotNil(t, result.Form)
	assert.Equal(t, "4-6 weeks", result.Form.ProcessingTime)
	assert.Empty(t, result.Narrative)
}

func TestRunPersistsResult(t *testing.T) {
	st := &fakeStore{}
	a := New(testConfig(), st, &fakeSearcher{}, scorer.New(scorer.DefaultConfig()), nil)

	_, err := a.Run(context.Background(), model.Site{Address: "9 Oak Ave, Fresno, CA"})
	require.NoError(t, err)

	require.Len(t, st.created, 1)
	assert.Equal(t, []model.AssessmentStatus{
		model.AssessmentStatusPermitting,
		model.AssessmentStatusResearching,
		model.AssessmentStatusScoring,
	}, st.statuses)
	require.NotNil(t, st.completed)
	assert.Equal(t, model.JurisdictionGenericCalifornia, st.completed.Jurisdiction)
}

func TestRunSearchFailureMarksFailed(t *testing.T) {
	st := &fakeStore{}
	searcher := &fakeSearcher{err: eris.New("news api unreachable")}
	a := New(testConfig(), st, searcher, scorer.New(scorer.DefaultConfig()), nil)

	_, err := a.Run(context.Background(), model.Site{Address: "1 Pine St, San Francisco, CA"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "news research")
	assert.Contains(t, st.failedMsg, "news api unreachable")
	assert.Nil(t, st.completed)
}

func TestRunNarrative(t *testing.T) {
	ai := &fakeAnthropic{text: "The local regulatory climate is broadly favorable."}
	a := New(testConfig(), nil, &fakeSearcher{}, scorer.New(scorer.DefaultConfig()), ai)

	result, err := a.Run(context.Background(), model.Site{Address: "1 Pine St, San Francisco, CA"})
	require.NoError(t, err)
	assert.Equal(t, "The local regulatory climate is broadly favorable.", result.Narrative)
}

func TestRunNarrativeFailureIsNonFatal(t *testing.T) {
	ai := &fakeAnthropic{err: eris.New("overloaded")}
	a := New(testConfig(), nil, &fakeSearcher{}, scorer.New(scorer.DefaultConfig()), ai)

	result, err := a.Run(context.Background(), model.Site{Address: "1 Pine St, San Francisco, CA"})
	require.NoError(t, err)
	assert.Empty(t, result.Narrative)
	assert.Equal(t, model.DecisionNoGo, result.Decision)
}
