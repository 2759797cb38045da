package recommend

import "ppif-diagnostic/internal/domain"

// template is a static recommendation blueprint attached to a dimension and
// maturity band.
type template struct {
	Title       string
	Description string
	Effort      domain.Level
	Impact      domain.Level
	KPI         string
	Timeline    string
}

// band buckets a dimension maturity score for template selection.
type band string

const (
	bandLow    band = "low"
	bandMedium band = "medium"
	bandHigh   band = "high"
)

func bandFor(maturity float64) band {
	switch {
	case maturity < 2.5:
		return bandLow
	case maturity < 3.5:
		return bandMedium
	default:
		return bandHigh
	}
}

// rules holds the recommendation playbook per dimension and band. Low-band
// templates also apply to higher bands: foundational work stays on the
// backlog until the score reflects it.
var rules = map[domain.Dimension]map[band][]template{
	domain.DimensionPerformance: {
		bandLow: {
			{
				Title:       "Implement Performance Monitoring",
				Description: "Set up comprehensive performance monitoring with latency and throughput metrics. Establish baseline measurements and alerting thresholds.",
				Effort:      domain.LevelMedium,
				Impact:      domain.LevelHigh,
				KPI:         "P95 latency reduction, throughput increase",
				Timeline:    "30",
			},
			{
				Title:       "Identify and Resolve Bottlenecks",
				Description: "Conduct performance profiling to identify bottlenecks. Focus on database queries, API calls, and resource-intensive operations.",
				Effort:      domain.LevelHigh,
				Impact:      domain.LevelHigh,
				KPI:         "Response time improvement, resource utilization",
				Timeline:    "60",
			},
		},
		bandMedium: {
			{
				Title:       "Optimize Critical Paths",
				Description: "Review and optimize critical user-facing paths. Implement caching strategies and optimize database queries.",
				Effort:      domain.LevelMedium,
				Impact:      domain.LevelMedium,
				KPI:         "User-perceived latency, conversion rates",
				Timeline:    "60",
			},
		},
	},
	domain.DimensionProductionReadiness: {
		bandLow: {
			{
				Title:       "Define and Implement SLOs",
				Description: "Establish Service Level Objectives (SLOs) for key services. Define error budgets and implement monitoring.",
				Effort:      domain.LevelMedium,
				Impact:      domain.LevelHigh,
				KPI:         "SLO compliance rate, error budget consumption",
				Timeline:    "30",
			},
			{
				Title:       "Create Deployment Safety Mechanisms",
				Description: "Implement canary deployments, feature flags, and automated rollback capabilities. Establish deployment runbooks.",
				Effort:      domain.LevelHigh,
				Impact:      domain.LevelHigh,
				KPI:         "Deployment success rate, rollback frequency",
				Timeline:    "90",
			},
			{
				Title:       "Document Runbooks and Procedures",
				Description: "Create comprehensive runbooks for common operational tasks, incident response, and troubleshooting procedures.",
				Effort:      domain.LevelLow,
				Impact:      domain.LevelMedium,
				KPI:         "MTTR reduction, incident resolution time",
				Timeline:    "30",
			},
		},
	},
	domain.DimensionInfrastructureEfficiency: {
		bandLow: {
			{
				Title:       "Implement Auto-scaling",
				Description: "Set up horizontal and vertical auto-scaling based on demand. Optimize resource allocation and capacity planning.",
				Effort:      domain.LevelMedium,
				Impact:      domain.LevelHigh,
				KPI:         "Cost per transaction, resource utilization",
				Timeline:    "60",
			},
			{
				Title:       "Establish Cost Monitoring and Controls",
				Description: "Implement cost tracking, budgeting, and alerting. Set up cost allocation and chargeback mechanisms.",
				Effort:      domain.LevelLow,
				Impact:      domain.LevelMedium,
				KPI:         "Infrastructure cost, cost per unit of work",
				Timeline:    "30",
			},
		},
	},
	domain.DimensionFailureResilience: {
		bandLow: {
			{
				Title:       "Implement High Availability Architecture",
				Description: "Design and implement multi-region, multi-AZ deployments. Set up load balancing and failover mechanisms.",
				Effort:      domain.LevelHigh,
				Impact:      domain.LevelHigh,
				KPI:         "Uptime, availability percentage",
				Timeline:    "90",
			},
			{
				Title:       "Establish Disaster Recovery Plan",
				Description: "Create and test disaster recovery procedures. Implement backup and restore mechanisms with defined RTO/RPO.",
				Effort:      domain.LevelHigh,
				Impact:      domain.LevelHigh,
				KPI:         "RTO, RPO, recovery test success rate",
				Timeline:    "90",
			},
			{
				Title:       "Implement Fault Isolation",
				Description: "Use circuit breakers, bulkheads, and timeouts to prevent cascading failures. Implement graceful degradation.",
				Effort:      domain.LevelMedium,
				Impact:      domain.LevelHigh,
				KPI:         "Failure containment rate, cascade prevention",
				Timeline:    "60",
			},
		},
	},
}
