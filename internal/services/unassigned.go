package services

import (
	"crew-route-service/internal/domain"
)

// DetectUnassigned lists input jobs missing from every route, in input order.
// A job whose shift had no crews is reported as ReasonNoCrew; any other
// leftover ran out of shift time.
func DetectUnassigned(jobs []domain.Job, pools JobPools, crews CrewPools, routes []domain.Route) []domain.UnassignedJob {
	routed := make(map[string]struct{})
	for _, r := range routes {
		for _, j := range r.Jobs {
			routed[j.ID] = struct{}{}
		}
	}

	shiftOf := make(map[string]domain.Shift, len(jobs))
	for _, j := range pools.Morning {
		shiftOf[j.ID] = domain.ShiftMorning
	}
	for _, j := range pools.Afternoon {
		shiftOf[j.ID] = domain.ShiftAfternoon
	}

	out := make([]domain.UnassignedJob, 0)
	for _, j := range jobs {
		if _, ok := routed[j.ID]; ok {
			continue
		}
		shift := shiftOf[j.ID]
		reason := domain.ReasonShiftBudget
		if crews.Len(shift) == 0 {
			reason = domain.ReasonNoCrew
		}
		out = append(out, domain.UnassignedJob{Job: j, Shift: shift, Reason: reason})
	}
	return out
}
