package metrics

// IncrementLeadCreated counts a lead intake
func (m *Metrics) IncrementLeadCreated() {
	m.safeExecute("IncrementLeadCreated", func() {
		m.LeadCreatedTotal.Inc()
	})
}

// RecordLeadStateTransition counts a state change of a lead
func (m *Metrics) RecordLeadStateTransition(from, to string) {
	m.safeExecute("RecordLeadStateTransition", func() {
		m.LeadStateTransitions.WithLabelValues(from, to).Inc()
	})
}

// IncrementActivityCreated counts an activity of the given kind
func (m *Metrics) IncrementActivityCreated(kind string) {
	m.safeExecute("IncrementActivityCreated", func() {
		m.ActivityCreatedTotal.WithLabelValues(kind).Inc()
	})
}

// IncrementAssessmentScored counts a score recalculation
func (m *Metrics) IncrementAssessmentScored() {
	m.safeExecute("IncrementAssessmentScored", func() {
		m.AssessmentScoredTotal.Inc()
	})
}

// IncrementExport counts a grid export. destination is "s3" or "inline".
func (m *Metrics) IncrementExport(grid, destination string) {
	m.safeExecute("IncrementExport", func() {
		m.ExportsTotal.WithLabelValues(grid, destination).Inc()
	})
}

// IncrementReminderSent counts a delivered activity reminder
func (m *Metrics) IncrementReminderSent() {
	m.safeExecute("IncrementReminderSent", func() {
		m.RemindersSentTotal.Inc()
	})
}

// SetLeadsTotal sets the lead gauges
func (m *Metrics) SetLeadsTotal(total, open int64) {
	m.safeExecute("SetLeadsTotal", func() {
		m.LeadsTotal.Set(float64(total))
		m.LeadsOpen.Set(float64(open))
	})
}
