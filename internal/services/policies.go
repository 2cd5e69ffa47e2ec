package services

import (
	"crew-route-service/internal/domain"
)

// SplitPolicy divides flexible jobs between the morning and afternoon pools.
type SplitPolicy func(flexible []domain.Job) (morning, afternoon []domain.Job)

// DistributePolicy hands farthest-first sorted jobs out to morning crews.
// The result has one bucket per crew, each in visiting order.
type DistributePolicy func(sorted []domain.Job, crews int) [][]domain.Job

// SeedPolicy picks the sorted index a crew's afternoon route starts from,
// or -1 when nothing is left.
type SeedPolicy func(crew int, sorted []domain.Job, claimed []bool) int

// Policies groups the overridable routing heuristics. Zero fields fall back
// to the defaults.
type Policies struct {
	SplitFlexible     SplitPolicy
	DistributeMorning DistributePolicy
	SeedAfternoon     SeedPolicy
}

func DefaultPolicies() Policies {
	return Policies{
		SplitFlexible:     SplitHalf,
		DistributeMorning: RoundRobin,
		SeedAfternoon:     SeedByIndex,
	}
}

func (p Policies) withDefaults() Policies {
	d := DefaultPolicies()
	if p.SplitFlexible == nil {
		p.SplitFlexible = d.SplitFlexible
	}
	if p.DistributeMorning == nil {
		p.DistributeMorning = d.DistributeMorning
	}
	if p.SeedAfternoon == nil {
		p.SeedAfternoon = d.SeedAfternoon
	}
	return p
}

// SplitHalf sends the first ceil(n/2) flexible jobs, in input order, to the
// morning and the rest to the afternoon.
func SplitHalf(flexible []domain.Job) (morning, afternoon []domain.Job) {
	cut := (len(flexible) + 1) / 2
	return flexible[:cut:cut], flexible[cut:]
}

// RoundRobin gives crew i the sorted jobs i, i+n, i+2n, ...
func RoundRobin(sorted []domain.Job, crews int) [][]domain.Job {
	if crews <= 0 {
		return nil
	}
	buckets := make([][]domain.Job, crews)
	for i, j := range sorted {
		buckets[i%crews] = append(buckets[i%crews], j)
	}
	return buckets
}

// SeedByIndex starts crew i at sorted index i. If that job is taken or the
// index is out of range, the crew starts at the unclaimed job nearest base.
func SeedByIndex(crew int, sorted []domain.Job, claimed []bool) int {
	if crew < len(sorted) && !claimed[crew] {
		return crew
	}
	for i := range sorted {
		if !claimed[i] {
			return i
		}
	}
	return -1
}
