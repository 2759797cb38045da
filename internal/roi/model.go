// Package roi computes engagement return-on-investment projections across
// the three named scenarios. Everything here is a pure function of its
// inputs: identical requests always produce identical results.
package roi

// Scenario names a percentage profile from the scenario table.
type Scenario string

const (
	ScenarioConservative Scenario = "conservative"
	ScenarioExpected     Scenario = "expected"
	ScenarioUpside       Scenario = "upside"
)

// Scenarios returns the three scenarios in canonical order.
func Scenarios() []Scenario {
	return []Scenario{ScenarioConservative, ScenarioExpected, ScenarioUpside}
}

// profile holds the default percentages for a scenario, as fractions.
type profile struct {
	CloudSavings         float64
	IncidentReduction    float64
	RevenueMitigated     float64
	ProductivityRecovery float64
	Realization          float64
}

var scenarioDefaults = map[Scenario]profile{
	ScenarioConservative: {
		CloudSavings:         0.06,
		IncidentReduction:    0.15,
		RevenueMitigated:     0.05,
		ProductivityRecovery: 0.02,
		Realization:          0.60,
	},
	ScenarioExpected: {
		CloudSavings:         0.12,
		IncidentReduction:    0.30,
		RevenueMitigated:     0.10,
		ProductivityRecovery: 0.05,
		Realization:          0.75,
	},
	ScenarioUpside: {
		CloudSavings:         0.18,
		IncidentReduction:    0.45,
		RevenueMitigated:     0.20,
		ProductivityRecovery: 0.08,
		Realization:          0.90,
	},
}

// Hard caps on effective percentages after maturity adjustment.
const (
	maxCloudSavings         = 0.30
	maxIncidentReduction    = 0.60
	maxRevenueMitigation    = 0.30
	maxProductivityRecovery = 0.15
)

// Inputs are the financial levers of the ROI model.
type Inputs struct {
	AnnualCloudSpendUSD       float64 `json:"annual_cloud_spend_usd" validate:"gte=0"`
	CriticalIncidentsPerMonth float64 `json:"critical_incidents_per_month" validate:"gte=0"`
	AvgCostPerIncidentUSD     float64 `json:"avg_cost_per_incident_usd" validate:"gte=0"`
	MonthlyEngineeringCostUSD float64 `json:"monthly_engineering_cost_usd" validate:"gte=0"`
	MonthlyRevenueAtRiskUSD   float64 `json:"monthly_revenue_at_risk_usd" validate:"gte=0"`
	EngagementCostUSD         float64 `json:"engagement_cost_usd" validate:"gt=0"`
	EngagementDurationMonths  float64 `json:"engagement_duration_months" validate:"gte=0"`
}

// Request is the full ROI computation request.
type Request struct {
	Version           string   `json:"version"`
	Region            string   `json:"region" validate:"required"`
	TimeHorizonMonths int      `json:"time_horizon_months" validate:"gt=0"`
	Inputs            Inputs   `json:"inputs"`
	MaturityScore     *float64 `json:"ppi_f_maturity_score,omitempty" validate:"omitempty,gte=0,lte=5"`
}

// Result carries every computed field for one scenario. Payback fields are
// nil when monthly impact is not positive; the math never emits Inf or NaN.
type Result struct {
	Scenario                    Scenario `json:"scenario"`
	CloudImpact                 float64  `json:"cloud_impact"`
	IncidentImpact              float64  `json:"incident_impact"`
	RevenueImpact               float64  `json:"revenue_impact"`
	ProductivityImpact          float64  `json:"productivity_impact"`
	TotalImpact                 float64  `json:"total_impact"`
	ROIMultiple                 float64  `json:"roi_multiple"`
	MonthlyImpact               float64  `json:"monthly_impact"`
	PaybackMonthsFromStart      *float64 `json:"payback_months_from_start"`
	PaybackMonthsFromCompletion *float64 `json:"payback_months_from_completion"`
	RealizationFactor           float64  `json:"realization_factor"`
	CloudSavingsPct             float64  `json:"cloud_savings_pct"`
	IncidentReductionPct        float64  `json:"incident_reduction_pct"`
	RevenueMitigatedPct         float64  `json:"revenue_mitigated_pct"`
	ProductivityRecoveryPct     float64  `json:"productivity_recovery_pct"`
}

// ScenarioSet is the response body for one computation.
type ScenarioSet struct {
	Conservative Result `json:"conservative"`
	Expected     Result `json:"expected"`
	Upside       Result `json:"upside"`
}

// adjustSavings discounts a savings percentage for current maturity: a more
// mature organization has already banked part of the win. Monotonic in the
// score, up to a 30% reduction at maturity 5.
func adjustSavings(maturity *float64, base float64) float64 {
	if maturity == nil {
		return base
	}
	normalized := *maturity / 5.0
	return base * (1.0 - normalized*0.3)
}

// adjustRealization shifts the realization factor by maturity band: low
// maturity organizations execute less of the theoretical win.
func adjustRealization(maturity *float64, base float64) float64 {
	if maturity == nil {
		return base
	}
	normalized := *maturity / 5.0
	switch {
	case normalized < 0.4:
		base -= 0.15
	case normalized < 0.7:
		// unchanged
	default:
		base += 0.10
	}
	return clamp01(base)
}

// Compute evaluates one scenario. Inputs must already be validated.
func Compute(scenario Scenario, req Request) Result {
	defaults := scenarioDefaults[scenario]
	in := req.Inputs

	cloudPct := min(adjustSavings(req.MaturityScore, defaults.CloudSavings), maxCloudSavings)
	incidentPct := min(adjustSavings(req.MaturityScore, defaults.IncidentReduction), maxIncidentReduction)
	revenuePct := min(adjustSavings(req.MaturityScore, defaults.RevenueMitigated), maxRevenueMitigation)
	productivityPct := min(adjustSavings(req.MaturityScore, defaults.ProductivityRecovery), maxProductivityRecovery)
	realization := adjustRealization(req.MaturityScore, defaults.Realization)

	cloudImpact := in.AnnualCloudSpendUSD * cloudPct * realization
	incidentImpact := in.CriticalIncidentsPerMonth * in.AvgCostPerIncidentUSD * 12 * incidentPct * realization
	revenueImpact := in.MonthlyRevenueAtRiskUSD * 12 * revenuePct * realization
	productivityImpact := in.MonthlyEngineeringCostUSD * 12 * productivityPct * realization
	totalImpact := cloudImpact + incidentImpact + revenueImpact + productivityImpact

	roiMultiple := totalImpact / in.EngagementCostUSD
	monthlyImpact := totalImpact / float64(req.TimeHorizonMonths)

	var paybackFromCompletion, paybackFromStart *float64
	if monthlyImpact > 0 {
		fromCompletion := in.EngagementCostUSD / monthlyImpact
		fromStart := in.EngagementDurationMonths + fromCompletion
		paybackFromCompletion = &fromCompletion
		paybackFromStart = &fromStart
	}

	return Result{
		Scenario:                    scenario,
		CloudImpact:                 cloudImpact,
		IncidentImpact:              incidentImpact,
		RevenueImpact:               revenueImpact,
		ProductivityImpact:          productivityImpact,
		TotalImpact:                 totalImpact,
		ROIMultiple:                 roiMultiple,
		MonthlyImpact:               monthlyImpact,
		PaybackMonthsFromStart:      paybackFromStart,
		PaybackMonthsFromCompletion: paybackFromCompletion,
		RealizationFactor:           realization,
		CloudSavingsPct:             cloudPct * 100,
		IncidentReductionPct:        incidentPct * 100,
		RevenueMitigatedPct:         revenuePct * 100,
		ProductivityRecoveryPct:     productivityPct * 100,
	}
}

// ComputeAll validates the request and evaluates all three scenarios.
func ComputeAll(req Request) (ScenarioSet, error) {
	if err := Validate(req); err != nil {
		return ScenarioSet{}, err
	}
	return ScenarioSet{
		Conservative: Compute(ScenarioConservative, req),
		Expected:     Compute(ScenarioExpected, req),
		Upside:       Compute(ScenarioUpside, req),
	}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
