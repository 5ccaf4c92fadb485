package storage

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/rpgo/savings-projector/internal/domain"

	_ "modernc.org/sqlite"
)

const timeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, errors.Wrap(err, "create db directory")
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite database")
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping database")
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "run migrations")
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const upsertScenario = `
INSERT INTO scenarios (
    id, name, risk_profile, birth_date,
    current_age_years, retirement_age_years, monthly_contribution,
    nominal_annual_return_pct, annual_inflation_pct, initial_principal, target_monthly_income,
    extras, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    risk_profile = excluded.risk_profile,
    birth_date = excluded.birth_date,
    current_age_years = excluded.current_age_years,
    retirement_age_years = excluded.retirement_age_years,
    monthly_contribution = excluded.monthly_contribution,
    nominal_annual_return_pct = excluded.nominal_annual_return_pct,
    annual_inflation_pct = excluded.annual_inflation_pct,
    initial_principal = excluded.initial_principal,
    target_monthly_income = excluded.target_monthly_income,
    extras = excluded.extras,
    updated_at = excluded.updated_at`

// Save inserts or replaces a scenario. Extras are kept as a JSON array column.
func (r *SQLiteRepository) Save(ctx context.Context, scenario *domain.Scenario) (string, error) {
	if scenario == nil {
		return "", errors.New("scenario is nil")
	}
	prepareForSave(scenario)

	extras, err := domain.EncodeContributions(scenario.Extras)
	if err != nil {
		return "", errors.Wrap(err, "encode extras")
	}

	var birth sql.NullString
	if scenario.BirthDate != nil {
		birth = sql.NullString{String: scenario.BirthDate.Format("2006-01-02"), Valid: true}
	}

	p := scenario.Params
	stamp := scenario.UpdatedAt.Format(timeLayout)
	_, err = r.db.ExecContext(ctx, upsertScenario,
		scenario.ID, scenario.Name, scenario.RiskProfile, birth,
		p.CurrentAgeYears, p.RetirementAgeYears, p.MonthlyContribution,
		p.NominalAnnualReturnPct, p.AnnualInflationPct, p.InitialPrincipal, p.TargetMonthlyIncome,
		string(extras), stamp, stamp,
	)
	if err != nil {
		return "", errors.Wrap(err, "save scenario")
	}

	slog.InfoContext(ctx, "Scenario saved to SQLite",
		"id", scenario.ID,
		"name", scenario.Name,
		"extras", len(scenario.Extras))

	return scenario.ID, nil
}

const selectScenario = `
SELECT id, name, risk_profile, birth_date,
       current_age_years, retirement_age_years, monthly_contribution,
       nominal_annual_return_pct, annual_inflation_pct, initial_principal, target_monthly_income,
       extras, updated_at
FROM scenarios WHERE id = ?`

func (r *SQLiteRepository) Load(ctx context.Context, id string) (*domain.Scenario, error) {
	var (
		sc      domain.Scenario
		birth   sql.NullString
		extras  string
		updated string
		p       = &sc.Params
	)
	err := r.db.QueryRowContext(ctx, selectScenario, id).Scan(
		&sc.ID, &sc.Name, &sc.RiskProfile, &birth,
		&p.CurrentAgeYears, &p.RetirementAgeYears, &p.MonthlyContribution,
		&p.NominalAnnualReturnPct, &p.AnnualInflationPct, &p.InitialPrincipal, &p.TargetMonthlyIncome,
		&extras, &updated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrScenarioNotFound, "id %s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load scenario %s", id)
	}

	if sc.Extras, err = domain.DecodeContributions([]byte(extras)); err != nil {
		return nil, errors.Wrapf(err, "scenario %s", id)
	}
	if birth.Valid {
		b, err := time.Parse("2006-01-02", birth.String)
		if err != nil {
			return nil, errors.Wrapf(err, "scenario %s birth date", id)
		}
		sc.BirthDate = &b
	}
	if sc.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return nil, errors.Wrapf(err, "scenario %s updated_at", id)
	}
	return &sc, nil
}

// List returns scenarios most recently updated first.
func (r *SQLiteRepository) List(ctx context.Context) ([]domain.ScenarioRef, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, updated_at FROM scenarios`)
	if err != nil {
		return nil, errors.Wrap(err, "list scenarios")
	}
	defer rows.Close()

	refs := []domain.ScenarioRef{}
	for rows.Next() {
		var (
			ref     domain.ScenarioRef
			updated string
		)
		if err := rows.Scan(&ref.ID, &ref.Name, &updated); err != nil {
			return nil, errors.Wrap(err, "scan scenario")
		}
		if ref.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
			return nil, errors.Wrapf(err, "scenario %s updated_at", ref.ID)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate scenarios")
	}
	// sorted in Go: RFC3339Nano strings trim trailing zeros and do not order lexically
	sortRefs(refs)
	return refs, nil
}
