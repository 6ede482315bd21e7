// Package metrics computes the four DORA indicators from an event
// snapshot and a time window. All functions are pure: no I/O, no clock,
// deterministic for a given input.
package metrics

import (
	"sort"
	"time"

	"github.com/dorapulse/dorapulse/internal/entity"
	"github.com/samber/lo"
)

// correlationTolerance is how far apart a deployment and a commit's
// deployment time may be and still be joined when no hash matches.
const correlationTolerance = 60 * time.Second

// Input is the read-only snapshot the calculator works from.
type Input struct {
	Deployments []entity.Deployment
	Incidents   []entity.Incident
	Commits     []entity.Commit
}

// Calculate produces the report for [start, end] (inclusive). Trends
// compare against the immediately preceding window of equal length.
// Missing data yields zero-valued metrics, never an error.
func Calculate(in Input, start, end time.Time) entity.Report {
	days := end.Sub(start).Hours() / hoursPerDay
	if days <= 0 {
		days = 1.0 / hoursPerDay // degenerate window, treat as one hour
	}
	prevStart := start.Add(start.Sub(end))

	report := entity.Report{
		PeriodStart: start,
		PeriodEnd:   end,
		PeriodDays:  days,
	}
	report.DeploymentFrequency = deploymentFrequency(in, start, end, prevStart, days)
	report.LeadTime = leadTime(in, start, end, prevStart)
	report.TimeToRecovery = timeToRecovery(in, start, end, prevStart)
	report.ChangeFailureRate = changeFailureRate(in, start, end, prevStart)
	return report
}

func deploymentFrequency(in Input, start, end, prevStart time.Time, days float64) entity.DeploymentFrequency {
	cur := productionWindow(in.Deployments, start, end)
	prev := productionWindow(in.Deployments, prevStart, start)

	perDay := float64(len(cur)) / days
	value, unit, class := classifyFrequency(perDay)

	trend := entity.TrendStable
	if len(prev) > 0 {
		prevPerDay := float64(len(prev)) / days
		trend = compare(perDay, prevPerDay, higherIsBetter)
	}
	return entity.DeploymentFrequency{
		Value:          value,
		Unit:           unit,
		PerDay:         perDay,
		Deployments:    len(cur),
		Classification: class,
		Trend:          trend,
	}
}

func leadTime(in Input, start, end, prevStart time.Time) entity.LeadTime {
	samples := leadTimeSamples(in, start, end)
	if len(samples) == 0 {
		// Absence of data must not be rewarded.
		return entity.LeadTime{Unit: "hours", Classification: entity.ClassLow, Trend: entity.TrendStable}
	}
	medianHours := median(samples).Hours()
	p90Hours := percentile(samples, 0.9).Hours()
	value, unit, class := classifyLeadTime(medianHours)

	trend := entity.TrendStable
	if prevSamples := leadTimeSamples(in, prevStart, start); len(prevSamples) > 0 {
		trend = compare(medianHours, median(prevSamples).Hours(), lowerIsBetter)
	}
	return entity.LeadTime{
		Value:          value,
		Unit:           unit,
		MedianHours:    medianHours,
		P90Hours:       p90Hours,
		Samples:        len(samples),
		Classification: class,
		Trend:          trend,
	}
}

func timeToRecovery(in Input, start, end, prevStart time.Time) entity.TimeToRecovery {
	samples := recoverySamples(in.Incidents, start, end)
	if len(samples) == 0 {
		// No incidents is a positive signal, unlike no deployments.
		return entity.TimeToRecovery{Unit: "minutes", Classification: entity.ClassElite, Trend: entity.TrendStable}
	}
	medianHours := median(samples).Hours()
	value, unit, class := classifyRecovery(medianHours)

	trend := entity.TrendStable
	if prevSamples := recoverySamples(in.Incidents, prevStart, start); len(prevSamples) > 0 {
		trend = compare(medianHours, median(prevSamples).Hours(), lowerIsBetter)
	}
	return entity.TimeToRecovery{
		Value:          value,
		Unit:           unit,
		MedianHours:    medianHours,
		Incidents:      len(samples),
		Classification: class,
		Trend:          trend,
	}
}

func changeFailureRate(in Input, start, end, prevStart time.Time) entity.ChangeFailureRate {
	cur := productionWindow(in.Deployments, start, end)
	failed := lo.CountBy(cur, entity.Deployment.Failed)
	rate := 0.0
	if len(cur) > 0 {
		rate = float64(failed) / float64(len(cur)) * 100
	}
	class := entity.ClassElite
	if len(cur) > 0 {
		class = classifyFailureRate(rate)
	}

	trend := entity.TrendStable
	if prev := productionWindow(in.Deployments, prevStart, start); len(prev) > 0 {
		prevFailed := lo.CountBy(prev, entity.Deployment.Failed)
		prevRate := float64(prevFailed) / float64(len(prev)) * 100
		trend = compare(rate, prevRate, lowerIsBetter)
	}
	return entity.ChangeFailureRate{
		Value:          rate,
		Unit:           "percent",
		Failed:         failed,
		Total:          len(cur),
		Classification: class,
		Trend:          trend,
	}
}

// leadTimeSamples joins production deployments in the window to commits,
// by exact hash first and then by timestamp proximity against the
// commit's deployment time. Negative samples indicate a correlation
// error and are discarded.
func leadTimeSamples(in Input, start, end time.Time) []time.Duration {
	byHash := lo.KeyBy(in.Commits, func(c entity.Commit) string { return c.Hash })

	var samples []time.Duration
	for _, d := range productionWindow(in.Deployments, start, end) {
		commit, ok := byHash[d.CommitHash]
		if !ok || d.CommitHash == "" {
			commit, ok = nearestDeployedCommit(in.Commits, d.Timestamp)
		}
		if !ok {
			continue
		}
		if lead := d.Timestamp.Sub(commit.Timestamp); lead >= 0 {
			samples = append(samples, lead)
		}
	}
	return samples
}

func nearestDeployedCommit(commits []entity.Commit, at time.Time) (entity.Commit, bool) {
	best := entity.Commit{}
	bestDelta := time.Duration(-1)
	for _, c := range commits {
		if c.DeployedAt == nil {
			continue
		}
		delta := at.Sub(*c.DeployedAt)
		if delta < 0 {
			delta = -delta
		}
		if delta <= correlationTolerance && (bestDelta < 0 || delta < bestDelta) {
			best, bestDelta = c, delta
		}
	}
	return best, bestDelta >= 0
}

// recoverySamples collects MTTR durations from incidents detected in the
// window. Resolution may land after the window end: MTTR measures the
// recovery latency of incidents that started in-window.
func recoverySamples(incidents []entity.Incident, start, end time.Time) []time.Duration {
	var samples []time.Duration
	for _, in := range incidents {
		if in.Resolved && in.MTTR != nil && inWindow(in.Timestamp, start, end) {
			samples = append(samples, *in.MTTR)
		}
	}
	return samples
}

func productionWindow(deployments []entity.Deployment, start, end time.Time) []entity.Deployment {
	return lo.Filter(deployments, func(d entity.Deployment, _ int) bool {
		return d.Environment == entity.EnvProduction && inWindow(d.Timestamp, start, end)
	})
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// median returns sorted[floor(n/2)] so ties are reproducible.
func median(samples []time.Duration) time.Duration {
	return percentile(samples, 0.5)
}

// percentile returns sorted[floor(n*q)].
func percentile(samples []time.Duration, q float64) time.Duration {
	sorted := append([]time.Duration(nil), samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(float64(len(sorted)) * q)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

type direction bool

const (
	higherIsBetter direction = true
	lowerIsBetter  direction = false
)

func compare(cur, prev float64, dir direction) entity.Trend {
	switch {
	case cur == prev:
		return entity.TrendStable
	case (cur > prev) == bool(dir):
		return entity.TrendImproving
	default:
		return entity.TrendDegrading
	}
}
