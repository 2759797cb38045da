package roi_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"ppif-diagnostic/internal/roi"
)

func validRequest() roi.Request {
	return roi.Request{
		Version:           "1.0.0",
		Region:            "North America",
		TimeHorizonMonths: 24,
		Inputs: roi.Inputs{
			AnnualCloudSpendUSD:       350000,
			CriticalIncidentsPerMonth: 3,
			AvgCostPerIncidentUSD:     15000,
			MonthlyEngineeringCostUSD: 200000,
			MonthlyRevenueAtRiskUSD:   50000,
			EngagementCostUSD:         120000,
			EngagementDurationMonths:  3,
		},
	}
}

func TestExpectedCloudImpact(t *testing.T) {
	result := roi.Compute(roi.ScenarioExpected, validRequest())
	// 350000 * 12% * 75% = 31500
	if diff := math.Abs(result.CloudImpact - 31500); diff > 1e-6 {
		t.Fatalf("expected cloud impact 31500, got %.4f", result.CloudImpact)
	}
}

func TestTotalImpactIsSumOfComponents(t *testing.T) {
	for _, scenario := range roi.Scenarios() {
		result := roi.Compute(scenario, validRequest())
		sum := result.CloudImpact + result.IncidentImpact + result.RevenueImpact + result.ProductivityImpact
		if diff := math.Abs(result.TotalImpact - sum); diff > 1e-6 {
			t.Fatalf("%s: total %.6f != component sum %.6f", scenario, result.TotalImpact, sum)
		}
	}
}

func TestPaybackNilWhenNoImpact(t *testing.T) {
	req := validRequest()
	req.Inputs = roi.Inputs{
		EngagementCostUSD:        120000,
		EngagementDurationMonths: 3,
	}
	result := roi.Compute(roi.ScenarioExpected, req)
	if result.TotalImpact != 0 {
		t.Fatalf("expected zero total impact, got %.2f", result.TotalImpact)
	}
	if result.PaybackMonthsFromCompletion != nil || result.PaybackMonthsFromStart != nil {
		t.Fatalf("expected nil payback for zero impact, got %v / %v",
			result.PaybackMonthsFromCompletion, result.PaybackMonthsFromStart)
	}
	if math.IsNaN(result.ROIMultiple) || math.IsInf(result.ROIMultiple, 0) {
		t.Fatalf("roi multiple must stay finite, got %v", result.ROIMultiple)
	}
}

func TestPaybackFromStartAddsEngagementDuration(t *testing.T) {
	result := roi.Compute(roi.ScenarioExpected, validRequest())
	if result.PaybackMonthsFromCompletion == nil || result.PaybackMonthsFromStart == nil {
		t.Fatalf("expected payback to be defined")
	}
	want := *result.PaybackMonthsFromCompletion + 3
	if diff := math.Abs(*result.PaybackMonthsFromStart - want); diff > 1e-9 {
		t.Fatalf("expected payback from start %.4f, got %.4f", want, *result.PaybackMonthsFromStart)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	first, err := roi.ComputeAll(validRequest())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	second, err := roi.ComputeAll(validRequest())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different outputs")
	}
}

func TestMaturityAdjustmentIsMonotonic(t *testing.T) {
	low, high := 1.0, 4.5
	reqLow := validRequest()
	reqLow.MaturityScore = &low
	reqHigh := validRequest()
	reqHigh.MaturityScore = &high

	resultLow := roi.Compute(roi.ScenarioExpected, reqLow)
	resultHigh := roi.Compute(roi.ScenarioExpected, reqHigh)

	if resultHigh.CloudSavingsPct >= resultLow.CloudSavingsPct {
		t.Fatalf("higher maturity must reduce marginal savings: %.2f >= %.2f",
			resultHigh.CloudSavingsPct, resultLow.CloudSavingsPct)
	}
	if resultHigh.RealizationFactor <= resultLow.RealizationFactor {
		t.Fatalf("higher maturity must not reduce realization: %.2f <= %.2f",
			resultHigh.RealizationFactor, resultLow.RealizationFactor)
	}
}

func TestValidationRejectsDurationAtHorizon(t *testing.T) {
	req := validRequest()
	req.TimeHorizonMonths = 12
	req.Inputs.EngagementDurationMonths = 12

	_, err := roi.ComputeAll(req)
	var verr *roi.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	found := false
	for _, f := range verr.Fields {
		if f.Field == "inputs.engagement_duration_months" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected engagement_duration_months field error, got %+v", verr.Fields)
	}
}

func TestValidationCollectsFieldErrors(t *testing.T) {
	req := validRequest()
	req.Region = "Atlantis"
	req.Inputs.AnnualCloudSpendUSD = -1
	req.Inputs.EngagementCostUSD = 0

	_, err := roi.ComputeAll(req)
	var verr *roi.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	fields := map[string]bool{}
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	for _, want := range []string{"region", "inputs.annual_cloud_spend_usd", "inputs.engagement_cost_usd"} {
		if !fields[want] {
			t.Fatalf("expected field error for %s, got %+v", want, verr.Fields)
		}
	}
}

func TestMaturityScoreOutOfRangeRejected(t *testing.T) {
	req := validRequest()
	bad := 6.0
	req.MaturityScore = &bad
	if _, err := roi.ComputeAll(req); err == nil {
		t.Fatalf("expected maturity score > 5 to be rejected")
	}
}
