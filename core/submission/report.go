package submission

// ReportByStatus counts subs per status. Every status is listed, zero counts included,
// so the counts always add up to len(subs).
func ReportByStatus(subs []Submission) []StatusCount {
	counts := make(map[Status]int, len(Statuses))
	for _, s := range subs {
		counts[s.Status]++
	}
	return statusCounts(counts)
}

// ReportByTeacher counts each teacher's submissions per status.
// Teachers are listed in order of first appearance.
func ReportByTeacher(subs []Submission) []TeacherReport {
	var teachers []string
	counts := make(map[string]map[Status]int)
	for _, s := range subs {
		tc, ok := counts[s.Teacher]
		if !ok {
			tc = make(map[Status]int, len(Statuses))
			counts[s.Teacher] = tc
			teachers = append(teachers, s.Teacher)
		}
		tc[s.Status]++
	}

	reports := make([]TeacherReport, 0, len(teachers))
	for _, t := range teachers {
		reports = append(reports, TeacherReport{TeacherName: t, Data: statusCounts(counts[t])})
	}
	return reports
}

func statusCounts(counts map[Status]int) []StatusCount {
	data := make([]StatusCount, 0, len(Statuses))
	for _, status := range Statuses {
		data = append(data, StatusCount{Status: status, Count: counts[status]})
	}
	return data
}

// ComputeStats derives the dashboard cards. The current week is the highest week found;
// a teacher with no submission for it counts as a missing submission.
func ComputeStats(subs []Submission) Stats {
	stats := Stats{TotalSubmissions: len(subs)}

	for _, s := range subs {
		if s.Week > stats.CurrentWeek {
			stats.CurrentWeek = s.Week
		}
	}

	teachers := make(map[string]bool) // teacher: submitted this week
	for _, s := range subs {
		switch s.Status {
		case StatusPending:
			stats.PendingReview++
		case StatusNeedsCorrection:
			stats.CorrectionsRequested++
		case StatusApproved:
			if s.Week == stats.CurrentWeek {
				stats.ApprovedThisWeek++
			}
		}
		teachers[s.Teacher] = teachers[s.Teacher] || s.Week == stats.CurrentWeek
	}

	stats.TotalTeachers = len(teachers)
	for _, submitted := range teachers {
		if !submitted {
			stats.MissingSubmissions++
		}
	}
	return stats
}
