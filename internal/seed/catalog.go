// Package seed carries the built-in PPI-F question catalog. The catalog is
// immutable at runtime; the seed CLI command loads it into Postgres and the
// static loader serves it directly when no database is configured.
package seed

import "ppif-diagnostic/internal/domain"

// Catalog returns the full built-in question set.
func Catalog() domain.Catalog {
	return domain.Catalog{Questions: questions()}
}

func questions() []domain.Question {
	qs := make([]domain.Question, 0, 28)
	qs = append(qs, performance()...)
	qs = append(qs, productionReadiness()...)
	qs = append(qs, infrastructureEfficiency()...)
	qs = append(qs, failureResilience()...)
	return qs
}

func performance() []domain.Question {
	d := domain.DimensionPerformance
	return []domain.Question{
		{
			ID: "perf-01", Dimension: d, Type: domain.QuestionNumeric,
			Text:   "What is your average API response time (P95 latency) in milliseconds?",
			Weight: 1.5, Order: 1,
			Numeric: &domain.NumericScale{
				LowerIsBetter: true,
				Bands: []domain.NumericBand{
					{Bound: 100, Score: 5},
					{Bound: 250, Score: 4},
					{Bound: 500, Score: 3},
					{Bound: 1000, Score: 2},
					{Bound: 2000, Score: 1},
					{Bound: 1e12, Score: 0},
				},
			},
		},
		{
			ID: "perf-02", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:    "How do you monitor application performance?",
			Weight:  1.0, Order: 2,
			Options: []string{"No monitoring", "Basic logging", "APM tools (e.g., New Relic, Datadog)", "Comprehensive observability platform"},
			MaturityMapping: map[string]float64{
				"No monitoring": 0, "Basic logging": 1,
				"APM tools (e.g., New Relic, Datadog)": 3,
				"Comprehensive observability platform": 5,
			},
		},
		{
			ID: "perf-03", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:    "How do you identify performance bottlenecks?",
			Weight:  1.0, Order: 3,
			Options: []string{"Manual investigation", "Basic profiling tools", "Automated profiling and tracing", "Continuous performance analysis with AI/ML"},
			MaturityMapping: map[string]float64{
				"Manual investigation": 1, "Basic profiling tools": 2,
				"Automated profiling and tracing":            4,
				"Continuous performance analysis with AI/ML": 5,
			},
		},
		{
			ID: "perf-04", Dimension: d, Type: domain.QuestionNumeric,
			Text:   "What is your system throughput (requests per second)?",
			Weight: 1.0, Order: 4,
			Numeric: &domain.NumericScale{
				Bands: []domain.NumericBand{
					{Bound: 0, Score: 1},
					{Bound: 100, Score: 2},
					{Bound: 1000, Score: 3},
					{Bound: 5000, Score: 4},
					{Bound: 20000, Score: 5},
				},
			},
		},
		{
			ID: "perf-05", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:     "Do you have performance budgets or SLAs defined?",
			Weight:   1.5, Order: 5, Critical: true,
			Options:  []string{"No", "Informal/verbal agreements", "Documented but not enforced", "Enforced with automated alerts", "Enforced with automated remediation"},
			MaturityMapping: map[string]float64{
				"No": 0, "Informal/verbal agreements": 1, "Documented but not enforced": 2,
				"Enforced with automated alerts": 4, "Enforced with automated remediation": 5,
			},
		},
		{
			ID: "perf-06", Dimension: d, Type: domain.QuestionMultiSelect,
			Text:    "Which performance optimization techniques do you use?",
			Weight:  1.0, Order: 6,
			Options: []string{"Caching", "CDN", "Database query optimization", "Load balancing", "Async processing", "Connection pooling"},
		},
		{
			ID: "perf-07", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:    "How often do you conduct performance testing?",
			Weight:  1.0, Order: 7,
			Options: []string{"Never", "Ad-hoc when issues arise", "Before major releases", "As part of CI/CD pipeline", "Continuous performance testing"},
			MaturityMapping: map[string]float64{
				"Never": 0, "Ad-hoc when issues arise": 1, "Before major releases": 2,
				"As part of CI/CD pipeline": 4, "Continuous performance testing": 5,
			},
		},
	}
}

func productionReadiness() []domain.Question {
	d := domain.DimensionProductionReadiness
	return []domain.Question{
		{
			ID: "prod-01", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:     "Do you have Service Level Objectives (SLOs) defined?",
			Weight:   1.5, Order: 1, Critical: true,
			Options:  []string{"No", "Some services have SLOs", "Most services have SLOs", "All services have SLOs", "All services have SLOs with error budgets"},
			MaturityMapping: map[string]float64{
				"No": 0, "Some services have SLOs": 1, "Most services have SLOs": 2,
				"All services have SLOs": 4, "All services have SLOs with error budgets": 5,
			},
		},
		{
			ID: "prod-02", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:    "What is your deployment strategy?",
			Weight:  1.5, Order: 2,
			Options: []string{"Big bang deployments", "Blue-green deployments", "Canary deployments", "Feature flags with gradual rollout", "Automated progressive delivery"},
			MaturityMapping: map[string]float64{
				"Big bang deployments": 1, "Blue-green deployments": 2, "Canary deployments": 3,
				"Feature flags with gradual rollout": 4, "Automated progressive delivery": 5,
			},
		},
		{
			ID: "prod-03", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:     "Do you have automated rollback capabilities?",
			Weight:   1.5, Order: 3, Critical: true,
			Options:  []string{"No", "Manual rollback process", "Semi-automated rollback", "Automated rollback on failure", "Automated rollback with health checks"},
			MaturityMapping: map[string]float64{
				"No": 0, "Manual rollback process": 1, "Semi-automated rollback": 2,
				"Automated rollback on failure": 4, "Automated rollback with health checks": 5,
			},
		},
		{
			ID: "prod-04", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:    "How comprehensive are your runbooks?",
			Weight:  1.0, Order: 4,
			Options: []string{"No runbooks", "Basic documentation", "Some runbooks exist", "Comprehensive runbooks for common tasks", "Automated runbook execution"},
			MaturityMapping: map[string]float64{
				"No runbooks": 0, "Basic documentation": 1, "Some runbooks exist": 2,
				"Comprehensive runbooks for common tasks": 4, "Automated runbook execution": 5,
			},
		},
		{
			ID: "prod-05", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:    "What is your change management process?",
			Weight:  1.0, Order: 5,
			Options: []string{"No formal process", "Ad-hoc approvals", "Manual change requests", "Automated change approval workflow", "GitOps with automated governance"},
			MaturityMapping: map[string]float64{
				"No formal process": 0, "Ad-hoc approvals": 1, "Manual change requests": 2,
				"Automated change approval workflow": 3, "GitOps with automated governance": 5,
			},
		},
		{
			ID: "prod-06", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:    "How do you handle configuration management?",
			Weight:  1.0, Order: 6,
			Options: []string{"Hardcoded in code", "Environment variables", "Configuration files", "Centralized config service", "GitOps-based configuration"},
			MaturityMapping: map[string]float64{
				"Hardcoded in code": 0, "Environment variables": 1, "Configuration files": 2,
				"Centralized config service": 4, "GitOps-based configuration": 5,
			},
		},
		{
			ID: "prod-07", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:     "What is your testing coverage before production?",
			Weight:   1.5, Order: 7, Critical: true,
			Options:  []string{"No testing", "Manual testing only", "Unit tests", "Unit + integration tests", "Full test suite (unit, integration, e2e, performance)"},
			MaturityMapping: map[string]float64{
				"No testing": 0, "Manual testing only": 1, "Unit tests": 2,
				"Unit + integration tests": 3, "Full test suite (unit, integration, e2e, performance)": 5,
			},
		},
	}
}

func infrastructureEfficiency() []domain.Question {
	d := domain.DimensionInfrastructureEfficiency
	return []domain.Question{
		{
			ID: "infra-01", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:    "How do you manage infrastructure capacity?",
			Weight:  1.5, Order: 1,
			Options: []string{"Manual provisioning", "Scheduled scaling", "Reactive auto-scaling", "Predictive auto-scaling", "AI-driven capacity optimization"},
			MaturityMapping: map[string]float64{
				"Manual provisioning": 0, "Scheduled scaling": 1, "Reactive auto-scaling": 3,
				"Predictive auto-scaling": 4, "AI-driven capacity optimization": 5,
			},
		},
		{
			ID: "infra-02", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:    "Do you have cost monitoring and controls?",
			Weight:  1.5, Order: 2,
			Options: []string{"No cost tracking", "Monthly billing review", "Cost dashboards", "Cost alerts and budgets", "Automated cost optimization"},
			MaturityMapping: map[string]float64{
				"No cost tracking": 0, "Monthly billing review": 1, "Cost dashboards": 2,
				"Cost alerts and budgets": 4, "Automated cost optimization": 5,
			},
		},
		{
			ID: "infra-03", Dimension: d, Type: domain.QuestionNumeric,
			Text:   "What is your average infrastructure utilization percentage?",
			Weight: 1.0, Order: 3,
			Numeric: &domain.NumericScale{
				Bands: []domain.NumericBand{
					{Bound: 0, Score: 0},
					{Bound: 20, Score: 1},
					{Bound: 40, Score: 2},
					{Bound: 55, Score: 3},
					{Bound: 70, Score: 4},
					{Bound: 85, Score: 5},
				},
			},
		},
		{
			ID: "infra-04", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:    "How do you handle resource allocation?",
			Weight:  1.0, Order: 4,
			Options: []string{"Fixed allocation", "Manual adjustment", "Basic resource limits", "Dynamic resource allocation", "Optimized resource allocation with ML"},
			MaturityMapping: map[string]float64{
				"Fixed allocation": 1, "Manual adjustment": 2, "Basic resource limits": 2,
				"Dynamic resource allocation": 4, "Optimized resource allocation with ML": 5,
			},
		},
		{
			ID: "infra-05", Dimension: d, Type: domain.QuestionMultiSelect,
			Text:    "Which cost optimization strategies do you employ?",
			Weight:  1.0, Order: 5,
			Options: []string{"Reserved instances", "Spot instances", "Right-sizing", "Container optimization", "Serverless where applicable", "Multi-cloud optimization"},
		},
		{
			ID: "infra-06", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:    "How do you track infrastructure costs per service/team?",
			Weight:  1.0, Order: 6,
			Options: []string{"No tracking", "Manual allocation", "Basic tagging", "Automated cost allocation", "Chargeback/showback with detailed reporting"},
			MaturityMapping: map[string]float64{
				"No tracking": 0, "Manual allocation": 1, "Basic tagging": 2,
				"Automated cost allocation": 4, "Chargeback/showback with detailed reporting": 5,
			},
		},
	}
}

func failureResilience() []domain.Question {
	d := domain.DimensionFailureResilience
	return []domain.Question{
		{
			ID: "resil-01", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:     "What is your high availability strategy?",
			Weight:   1.5, Order: 1, Critical: true,
			Options:  []string{"Single region, single AZ", "Single region, multiple AZs", "Multi-region active-passive", "Multi-region active-active", "Global distribution with intelligent routing"},
			MaturityMapping: map[string]float64{
				"Single region, single AZ": 0, "Single region, multiple AZs": 2,
				"Multi-region active-passive": 3, "Multi-region active-active": 4,
				"Global distribution with intelligent routing": 5,
			},
		},
		{
			ID: "resil-02", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:     "Do you have a disaster recovery plan?",
			Weight:   1.5, Order: 2, Critical: true,
			Options:  []string{"No DR plan", "Informal plan", "Documented plan, not tested", "Regularly tested DR plan", "Automated DR with defined RTO/RPO"},
			MaturityMapping: map[string]float64{
				"No DR plan": 0, "Informal plan": 1, "Documented plan, not tested": 2,
				"Regularly tested DR plan": 4, "Automated DR with defined RTO/RPO": 5,
			},
		},
		{
			ID: "resil-03", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:    "What is your Recovery Time Objective (RTO)?",
			Weight:  1.0, Order: 3,
			Options: []string{"No RTO defined", "> 24 hours", "4-24 hours", "1-4 hours", "< 1 hour"},
			MaturityMapping: map[string]float64{
				"No RTO defined": 0, "> 24 hours": 1, "4-24 hours": 2, "1-4 hours": 4, "< 1 hour": 5,
			},
		},
		{
			ID: "resil-04", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:    "What is your Recovery Point Objective (RPO)?",
			Weight:  1.0, Order: 4,
			Options: []string{"No RPO defined", "> 24 hours", "4-24 hours", "1-4 hours", "< 1 hour"},
			MaturityMapping: map[string]float64{
				"No RPO defined": 0, "> 24 hours": 1, "4-24 hours": 2, "1-4 hours": 4, "< 1 hour": 5,
			},
		},
		{
			ID: "resil-05", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:     "How do you prevent cascading failures?",
			Weight:   1.5, Order: 5, Critical: true,
			Options:  []string{"No protection", "Basic timeouts", "Circuit breakers", "Circuit breakers + bulkheads", "Comprehensive fault isolation with graceful degradation"},
			MaturityMapping: map[string]float64{
				"No protection": 0, "Basic timeouts": 1, "Circuit breakers": 3,
				"Circuit breakers + bulkheads": 4, "Comprehensive fault isolation with graceful degradation": 5,
			},
		},
		{
			ID: "resil-06", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:     "How do you handle data backup and recovery?",
			Weight:   1.5, Order: 6, Critical: true,
			Options:  []string{"No backups", "Manual backups", "Automated backups, untested", "Regular automated backups with testing", "Continuous backup with point-in-time recovery"},
			MaturityMapping: map[string]float64{
				"No backups": 0, "Manual backups": 1, "Automated backups, untested": 2,
				"Regular automated backups with testing": 4, "Continuous backup with point-in-time recovery": 5,
			},
		},
		{
			ID: "resil-07", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:    "How do you test for failure scenarios?",
			Weight:  1.0, Order: 7,
			Options: []string{"No testing", "Ad-hoc testing", "Regular chaos engineering", "Automated chaos testing", "Continuous resilience testing"},
			MaturityMapping: map[string]float64{
				"No testing": 0, "Ad-hoc testing": 1, "Regular chaos engineering": 3,
				"Automated chaos testing": 4, "Continuous resilience testing": 5,
			},
		},
		{
			ID: "resil-08", Dimension: d, Type: domain.QuestionSingleSelect,
			Text:    "What is your incident response process?",
			Weight:  1.0, Order: 8,
			Options: []string{"No formal process", "Ad-hoc response", "Documented process", "Automated alerting and escalation", "Full incident management with post-mortems"},
			MaturityMapping: map[string]float64{
				"No formal process": 0, "Ad-hoc response": 1, "Documented process": 2,
				"Automated alerting and escalation": 4, "Full incident management with post-mortems": 5,
			},
		},
	}
}
