package persistence

import "github.com/helixml/csvsplit/domain/split"

// RunMapper maps between split.Run and RunModel.
type RunMapper struct{}

// ToDomain converts a RunModel to a domain Run.
func (RunMapper) ToDomain(e RunModel) split.Run {
	return split.ReconstructRun(
		e.ID,
		e.Source,
		e.NumLines,
		e.HeaderLines,
		e.Files,
		e.DataLines,
		split.RunState(e.State),
		e.Error,
		e.StartedAt,
		e.FinishedAt,
	)
}

// ToModel converts a domain Run to a RunModel.
func (RunMapper) ToModel(r split.Run) RunModel {
	return RunModel{
		ID:          r.ID(),
		Source:      r.Source(),
		NumLines:    r.NumLines(),
		HeaderLines: r.HeaderLines(),
		Files:       r.Files(),
		DataLines:   r.DataLines(),
		State:       string(r.State()),
		Error:       r.Error(),
		StartedAt:   r.StartedAt(),
		FinishedAt:  r.FinishedAt(),
	}
}
