package barn

import "time"

// Metrics tracks what happened over a Run, in the same spirit as the
// teacher's SimulationMetrics: counters the host can inspect or export,
// not a replacement for event logging.
type Metrics struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Ticks     int       `json:"ticks"`

	CowsRequested int `json:"cowsRequested"`
	CowsSpawned   int `json:"cowsSpawned"`

	ActivitiesStarted  int `json:"activitiesStarted"`
	PathsPlanned       int `json:"pathsPlanned"`
	PathNotFoundCount  int `json:"pathNotFoundCount"`
	NoEligibleCount    int `json:"noEligibleActivityCount"`
	EvasionsTriggered  int `json:"evasionsTriggered"`
	ReawakenedFromIdle int `json:"reawakenedFromIdle"`
}
