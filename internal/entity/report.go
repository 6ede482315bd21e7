package entity

import "time"

// Classification is the benchmark band a metric value falls into.
type Classification string

const (
	ClassElite  Classification = "elite"
	ClassHigh   Classification = "high"
	ClassMedium Classification = "medium"
	ClassLow    Classification = "low"
)

// Trend compares the current period against the immediately preceding
// period of equal length.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDegrading Trend = "degrading"
	TrendStable    Trend = "stable"
)

type DeploymentFrequency struct {
	Value          float64        `json:"value"`
	Unit           string         `json:"unit"` // per-day | per-week | per-month
	PerDay         float64        `json:"per_day"`
	Deployments    int            `json:"deployments"`
	Classification Classification `json:"classification"`
	Trend          Trend          `json:"trend"`
}

type LeadTime struct {
	Value          float64        `json:"value"`
	Unit           string         `json:"unit"` // hours | days | weeks
	MedianHours    float64        `json:"median_hours"`
	P90Hours       float64        `json:"p90_hours"`
	Samples        int            `json:"samples"`
	Classification Classification `json:"classification"`
	Trend          Trend          `json:"trend"`
}

type TimeToRecovery struct {
	Value          float64        `json:"value"`
	Unit           string         `json:"unit"` // minutes | hours | days
	MedianHours    float64        `json:"median_hours"`
	Incidents      int            `json:"incidents"`
	Classification Classification `json:"classification"`
	Trend          Trend          `json:"trend"`
}

type ChangeFailureRate struct {
	Value          float64        `json:"value"` // percentage 0-100
	Unit           string         `json:"unit"`  // percent
	Failed         int            `json:"failed"`
	Total          int            `json:"total"`
	Classification Classification `json:"classification"`
	Trend          Trend          `json:"trend"`
}

// Report is the computed DORA report for one period. It is recomputed on
// every query and never persisted.
type Report struct {
	PeriodStart         time.Time           `json:"period_start"`
	PeriodEnd           time.Time           `json:"period_end"`
	PeriodDays          float64             `json:"period_days"`
	DeploymentFrequency DeploymentFrequency `json:"deployment_frequency"`
	LeadTime            LeadTime            `json:"lead_time"`
	TimeToRecovery      TimeToRecovery      `json:"time_to_recovery"`
	ChangeFailureRate   ChangeFailureRate   `json:"change_failure_rate"`
}
