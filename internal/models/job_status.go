package models

// JobStatus is the pipeline stage of a job (persisted as a string).
type JobStatus string

const (
	StatusNewLead    JobStatus = "NEW_LEAD"    // captured, nobody working it yet
	StatusScheduled  JobStatus = "SCHEDULED"   // install date agreed, or released back
	StatusInProgress JobStatus = "IN_PROGRESS" // claimed by an installer
	StatusPendingQC  JobStatus = "PENDING_QC"  // hardware fitted, awaiting tech verification
	StatusConfigured JobStatus = "CONFIGURED"  // device live on the tracking platform
	StatusActive     JobStatus = "ACTIVE"      // onboarded, service running
	StatusLeadLost   JobStatus = "LEAD_LOST"   // dropped out of the pipeline
)

// PaymentStatus tracks money owed against a job.
type PaymentStatus string

const (
	PaymentNotSet PaymentStatus = "NOT_SET"
	PaymentDue    PaymentStatus = "DUE"
	PaymentPaid   PaymentStatus = "PAID"
)

// jobTransitions is the allowed status graph. LEAD_LOST is reachable from
// every pre-ACTIVE stage; ACTIVE and LEAD_LOST are terminal.
var jobTransitions = map[JobStatus][]JobStatus{
	StatusNewLead:    {StatusScheduled, StatusInProgress, StatusLeadLost},
	StatusScheduled:  {StatusInProgress, StatusLeadLost},
	StatusInProgress: {StatusScheduled, StatusPendingQC, StatusLeadLost},
	StatusPendingQC:  {StatusConfigured, StatusLeadLost},
	StatusConfigured: {StatusActive, StatusLeadLost},
	StatusActive:     {},
	StatusLeadLost:   {},
}

// CanTransition reports whether from -> to is an allowed move. A no-op
// transition (from == to) is allowed for non-terminal states so that
// re-scheduling and idempotent re-claims don't need special casing.
func CanTransition(from, to JobStatus) bool {
	allowed, ok := jobTransitions[from]
	if !ok {
		return false
	}
	if from == to {
		return len(allowed) > 0
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are permitted.
func Terminal(s JobStatus) bool {
	return len(jobTransitions[s]) == 0
}
