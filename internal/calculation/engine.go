package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/rpgo/savings-projector/pkg/dateutil"
	"golang.org/x/sync/errgroup"
)

// maxParallelScenarios bounds the fan-out of RunScenarios.
const maxParallelScenarios = 8

// ProjectionEngine orchestrates the projection pipeline:
// expand extras, run both compounding passes, derive metrics, classify.
type ProjectionEngine struct {
	Debug           bool // log per-scenario figures at debug level
	IncludeTimeline bool // attach yearly snapshots to scenario summaries
	Logger          Logger
}

// NewProjectionEngine creates an engine with a no-op logger.
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// Calculate is the pure projection of a plan. It never fails for finite inputs.
func (pe *ProjectionEngine) Calculate(params domain.PlanParameters, extras []domain.ExtraordinaryContribution) domain.ProjectionResult {
	projection := Project(params, extras)
	result := DeriveMetrics(projection, params)
	result.Outcome = Classify(result.RealMonthlyIncome, params.TargetMonthlyIncome)

	if pe.Debug {
		pe.Logger.Debugf("horizon=%d months nominal=%.2f real=%.2f contributed=%.2f extras=%.2f",
			projection.HorizonMonths, projection.NominalEndingPrincipal, projection.RealEndingPrincipal,
			projection.TotalContributed, projection.TotalExtrasApplied)
		pe.Logger.Debugf("real income=%.2f target=%.2f outcome=%s",
			result.RealMonthlyIncome, params.TargetMonthlyIncome, result.Outcome)
	}
	return result
}

// RunScenario projects a single saved scenario.
func (pe *ProjectionEngine) RunScenario(ctx context.Context, scenario *domain.Scenario) (*domain.ScenarioSummary, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}

	summary := &domain.ScenarioSummary{
		ScenarioID:  scenario.ID,
		Name:        scenario.Name,
		Params:      scenario.Params,
		ExtrasCount: len(scenario.Extras),
		Result:      pe.Calculate(scenario.Params, scenario.Extras),
	}
	if scenario.BirthDate != nil {
		retire := dateutil.DateAtAge(*scenario.BirthDate, scenario.Params.RetirementAgeYears)
		summary.RetirementDate = &retire
	}
	if pe.IncludeTimeline {
		summary.Timeline = Timeline(scenario.Params, scenario.Extras)
	}

	if summary.Result.HorizonMonths == 1 && scenario.Params.YearsToRetirement() <= 0 {
		pe.Logger.Warnf("scenario %q: retirement age %d not after current age %d, horizon clamped to one month",
			scenario.Name, scenario.Params.RetirementAgeYears, scenario.Params.CurrentAgeYears)
	}
	return summary, nil
}

// RunScenarios projects every scenario of a configuration and compares them.
// Scenarios run concurrently; summaries keep the configuration order.
func (pe *ProjectionEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ScenarioComparison, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration is nil")
	}

	summaries := make([]domain.ScenarioSummary, len(config.Scenarios))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelScenarios)

	for i := range config.Scenarios {
		i := i
		scenario := &config.Scenarios[i]
		g.Go(func() error {
			summary, err := pe.RunScenario(gctx, scenario)
			if err != nil {
				return fmt.Errorf("RunScenario failed: %w", err)
			}
			summaries[i] = *summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	comparison := &domain.ScenarioComparison{
		GeneratedAt: nowFunc(),
		Scenarios:   summaries,
		Assumptions: GenerateAssumptions(),
	}
	pe.analyzeComparison(comparison)

	pe.Logger.Infof("projected %d scenarios, best=%q, on target=%d",
		len(summaries), comparison.BestScenario, len(comparison.OnTarget))
	return comparison, nil
}
