package services

import (
	"crew-route-service/internal/domain"
)

// Jobs grouped by the shift they will be routed in.
type JobPools struct {
	Morning   []domain.Job
	Afternoon []domain.Job
}

// ClassifyJobs splits jobs by declared time window. Explicit morning and
// afternoon jobs keep input order; flexible jobs are divided by split and
// appended after them.
func ClassifyJobs(jobs []domain.Job, split SplitPolicy) JobPools {
	if split == nil {
		split = SplitHalf
	}

	var pools JobPools
	flexible := make([]domain.Job, 0)
	for _, j := range jobs {
		switch j.TimeWindow {
		case domain.TimeWindowMorning:
			pools.Morning = append(pools.Morning, j)
		case domain.TimeWindowAfternoon:
			pools.Afternoon = append(pools.Afternoon, j)
		default:
			flexible = append(flexible, j)
		}
	}

	am, pm := split(flexible)
	pools.Morning = append(pools.Morning, am...)
	pools.Afternoon = append(pools.Afternoon, pm...)
	return pools
}
