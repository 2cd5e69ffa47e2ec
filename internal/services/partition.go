package services

import (
	"crew-route-service/internal/domain"
)

// Crews grouped by the shift they work.
type CrewPools struct {
	Morning   []domain.Crew
	Afternoon []domain.Crew
}

// Len returns the number of crews working shift s.
func (p CrewPools) Len(s domain.Shift) int {
	if s == domain.ShiftAfternoon {
		return len(p.Afternoon)
	}
	return len(p.Morning)
}

// PartitionCrews assigns crews to shifts.
//
// Labeled crews keep their label. When no crew is labeled, the first
// ceil(n/2) crews work the morning. Unlabeled crews in a mixed list join
// whichever shift currently has fewer crews, morning on ties.
func PartitionCrews(crews []domain.Crew) CrewPools {
	var pools CrewPools

	labeled := false
	for _, c := range crews {
		if c.Shift.Valid() {
			labeled = true
			break
		}
	}

	if !labeled {
		cut := (len(crews) + 1) / 2
		pools.Morning = append(pools.Morning, crews[:cut]...)
		pools.Afternoon = append(pools.Afternoon, crews[cut:]...)
		return pools
	}

	for _, c := range crews {
		if c.Shift == domain.ShiftAfternoon {
			pools.Afternoon = append(pools.Afternoon, c)
		} else if c.Shift == domain.ShiftMorning {
			pools.Morning = append(pools.Morning, c)
		}
	}

	for _, c := range crews {
		if c.Shift.Valid() {
			continue
		}
		if len(pools.Afternoon) < len(pools.Morning) {
			c.Shift = domain.ShiftAfternoon
			pools.Afternoon = append(pools.Afternoon, c)
		} else {
			c.Shift = domain.ShiftMorning
			pools.Morning = append(pools.Morning, c)
		}
	}
	return pools
}
