package calculation

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfiguration() *domain.Configuration {
	base := regressionParams()

	lean := base
	lean.MonthlyContribution = 500
	lean.InitialPrincipal = 10000

	rich := base
	rich.TargetMonthlyIncome = 20000

	return &domain.Configuration{
		Scenarios: []domain.Scenario{
			{Name: "Lean", Params: lean},
			{Name: "Base", Params: base, Extras: []domain.ExtraordinaryContribution{
				{ID: "13th", AnchorMonth: 12, Amount: 5000, Recurrence: domain.RecurrenceAnnual, Evolution: domain.GrowByPercent(3)},
			}},
			{Name: "Modest target", Params: rich},
		},
	}
}

func TestCalculate_PipelineMatchesComponents(t *testing.T) {
	engine := NewProjectionEngine()
	params := regressionParams()

	res := engine.Calculate(params, nil)
	expected := DeriveMetrics(Project(params, nil), params)
	expected.Outcome = Classify(expected.RealMonthlyIncome, params.TargetMonthlyIncome)

	assert.Equal(t, expected, res)
	assert.Equal(t, domain.OutcomeClose, res.Outcome, "26100 real income against a 30000 target")
}

func TestCalculate_Idempotent(t *testing.T) {
	engine := NewProjectionEngine()
	cfg := testConfiguration()
	sc := cfg.Scenarios[1]

	first := engine.Calculate(sc.Params, sc.Extras)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, engine.Calculate(sc.Params, sc.Extras))
	}
}

func TestRunScenario_NilAndCancelled(t *testing.T) {
	engine := NewProjectionEngine()

	_, err := engine.RunScenario(context.Background(), nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.RunScenario(ctx, &domain.Scenario{Name: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunScenario_Timeline(t *testing.T) {
	engine := NewProjectionEngine()
	engine.IncludeTimeline = true

	sc := testConfiguration().Scenarios[1]
	summary, err := engine.RunScenario(context.Background(), &sc)
	require.NoError(t, err)

	require.Len(t, summary.Timeline, 30)
	last := summary.Timeline[len(summary.Timeline)-1]
	assert.Equal(t, summary.Result.NominalEndingPrincipal, last.NominalPrincipal)
	assert.Equal(t, summary.Result.RealEndingPrincipal, last.RealPrincipal)
	assert.Equal(t, 1, summary.ExtrasCount)
}

func TestRunScenarios_Comparison(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	SetNowFunc(func() time.Time { return fixed })
	defer SetNowFunc(time.Now)

	engine := NewProjectionEngine()
	results, err := engine.RunScenarios(context.Background(), testConfiguration())
	require.NoError(t, err)

	require.Len(t, results.Scenarios, 3)
	assert.Equal(t, "Lean", results.Scenarios[0].Name)
	assert.Equal(t, "Base", results.Scenarios[1].Name)
	assert.Equal(t, "Modest target", results.Scenarios[2].Name)
	assert.Equal(t, fixed, results.GeneratedAt)

	assert.Equal(t, "Base", results.BestScenario)
	assert.Equal(t, []string{"Modest target"}, results.OnTarget)
	assert.NotEmpty(t, results.Assumptions)

	joined := strings.Join(results.Observations, "\n")
	assert.Contains(t, joined, "Lean: real income covers")
	assert.Contains(t, joined, "Base: close to target")
}

func TestRunScenarios_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProjectionEngine().RunScenarios(ctx, testConfiguration())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunScenarios_NilConfiguration(t *testing.T) {
	_, err := NewProjectionEngine().RunScenarios(context.Background(), nil)
	assert.Error(t, err)
}

func TestRunScenario_ClampedHorizonWarns(t *testing.T) {
	var logged []string
	engine := NewProjectionEngine()
	engine.SetLogger(recordingLogger{out: &logged})

	_, err := engine.RunScenario(context.Background(), &domain.Scenario{
		Name:   "late",
		Params: domain.PlanParameters{CurrentAgeYears: 70, RetirementAgeYears: 65, InitialPrincipal: 1000},
	})
	require.NoError(t, err)
	require.Len(t, logged, 1)
	assert.Contains(t, logged[0], "horizon clamped")
}

func TestSetLoggerNil(t *testing.T) {
	engine := NewProjectionEngine()
	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	engine := NewProjectionEngine()
	engine.Debug = true
	engine.SetLogger(NewSlogLogger(l))
	engine.Calculate(regressionParams(), nil)
	assert.Empty(t, buf.String(), "debug output filtered at info level")

	engine.Logger.Warnf("value %d", 7)
	assert.Contains(t, buf.String(), "value 7")
	assert.Contains(t, buf.String(), "component=calculation")
}

type recordingLogger struct {
	out *[]string
}

func (r recordingLogger) record(format string, args ...any) {
	*r.out = append(*r.out, fmt.Sprintf(format, args...))
}

func (r recordingLogger) Debugf(format string, args ...any) {}
func (r recordingLogger) Infof(format string, args ...any)  {}
func (r recordingLogger) Warnf(format string, args ...any)  { r.record(format, args...) }
func (r recordingLogger) Errorf(format string, args ...any) { r.record(format, args...) }

func TestRunScenario_RetirementDate(t *testing.T) {
	birth := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	sc := &domain.Scenario{Name: "dated", BirthDate: &birth, Params: regressionParams()}

	summary, err := NewProjectionEngine().RunScenario(context.Background(), sc)
	require.NoError(t, err)
	require.NotNil(t, summary.RetirementDate)
	assert.Equal(t, time.Date(2055, 6, 15, 0, 0, 0, 0, time.UTC), *summary.RetirementDate)

	sc.BirthDate = nil
	summary, err = NewProjectionEngine().RunScenario(context.Background(), sc)
	require.NoError(t, err)
	assert.Nil(t, summary.RetirementDate)
}
