package submission

// MockSubmissions returns the bundled dataset, used whenever nothing valid is stored yet.
func MockSubmissions() []Submission {
	return []Submission{
		{ID: 1, Teacher: "Mr. John Doe", Subject: "Mathematics", Class: "JHS 1", Week: 6, Term: 1, Status: StatusPending, UploadedOn: "2025-06-15"},
		{ID: 2, Teacher: "Mrs. Jane Smith", Subject: "English Language", Class: "JHS 2", Week: 6, Term: 1, Status: StatusApproved, UploadedOn: "2025-06-14"},
		{ID: 3, Teacher: "Mr. Alex Johnson", Subject: "Integrated Science", Class: "JHS 1", Week: 5, Term: 1, Status: StatusRejected, UploadedOn: "2025-06-10"},
		{ID: 4, Teacher: "Ms. Emily Davis", Subject: "Social Studies", Class: "JHS 3", Week: 6, Term: 1, Status: StatusNeedsCorrection, UploadedOn: "2025-06-15"},
		{ID: 5, Teacher: "Mr. Peter Brown", Subject: "R.M.E", Class: "JHS 2", Week: 6, Term: 1, Status: StatusApproved, UploadedOn: "2025-06-13"},
	}
}
