package filtering

// Funnel summarises how a search narrowed the population.
type Funnel struct {
	Total            int `json:"total_attorneys"`
	Filtered         int `json:"filtered_count"`
	Matched          int `json:"total_matched"`
	ExcludedSameFirm int `json:"excluded_hiring_firm"`
}

// NewFunnel derives the funnel from the step reports of a run over total candidates.
// Without reports, the whole population counts as filtered.
func NewFunnel(total int, reports []StepReport, matched int) Funnel {
	f := Funnel{Total: total, Filtered: total, Matched: matched}
	for _, report := range reports {
		f.Filtered = report.Left
		if report.Name == SameFirmStep {
			f.ExcludedSameFirm = report.Dropped
		}
	}
	return f
}
