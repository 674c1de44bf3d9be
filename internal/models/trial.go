package models

// TrialOutcome is the result of one bounded sequence of Bernoulli draws.
type TrialOutcome struct {
	AttemptsUsed int  `json:"attempts"`
	Succeeded    bool `json:"success"`
	CapReached   bool `json:"maxAttemptsReached"`
}

// TrialResult is a TrialOutcome as reported to callers, with the success rate echoed.
type TrialResult struct {
	Attempts           int     `json:"attempts"`
	Success            bool    `json:"success"`
	MaxAttemptsReached bool    `json:"maxAttemptsReached"`
	SuccessRate        float64 `json:"successRate"`
}
