package catalog

import "encoding/json"

// SampleCareerID is the career served by the bundled sample catalog.
const SampleCareerID = "software-engineer"

// SampleProvider returns a MockProvider loaded with a small, realistic
// catalog for offline use.
func SampleProvider() *MockProvider {
	m := NewMockProvider()

	m.AddPathways(SampleCareerID,
		Pathway{
			ID: "btech-cse", Name: "B.Tech in Computer Science", Type: PathwayDegree,
			Difficulty: "high", Duration: "4 years",
			Cost:      CostRange{Min: 400000, Max: 1600000},
			Placement: Placement{Rate: 0.82, AverageSalary: 900000, TopRecruiters: []string{"Infosys", "Google", "TCS"}},
			ExamIDs:   []string{"jee-main", "jee-adv", "bitsat"},
		},
		Pathway{
			ID: "bca", Name: "Bachelor of Computer Applications", Type: PathwayDegree,
			Difficulty: "medium", Duration: "3 years",
			Cost:      CostRange{Min: 150000, Max: 600000},
			Placement: Placement{Rate: 0.64, AverageSalary: 450000, TopRecruiters: []string{"Wipro", "HCL"}},
			ExamIDs:   []string{"cuet"},
		},
		Pathway{
			ID: "fullstack-bootcamp", Name: "Full-Stack Web Bootcamp", Type: PathwayBootcamp,
			Difficulty: "medium", Duration: "6 months",
			Cost:      CostRange{Min: 60000, Max: 250000},
			Placement: Placement{Rate: 0.55, AverageSalary: 500000},
		},
		Pathway{
			ID: "cloud-cert", Name: "Cloud Practitioner Certification", Type: PathwayCertification,
			Difficulty: "low", Duration: "3 months",
			Cost:      CostRange{Min: 10000, Max: 40000},
			Placement: Placement{Rate: 0.4, AverageSalary: 380000},
		},
		Pathway{
			ID: "diploma-cs", Name: "Diploma in Computer Engineering", Type: PathwayDiploma,
			Difficulty: "medium", Duration: "3 years",
			Cost:      CostRange{Min: 90000, Max: 300000},
			Placement: Placement{Rate: 0.58, AverageSalary: 320000},
			ExamIDs:   []string{"polycet"},
		},
	)

	m.AddCourses(
		Course{ID: "cse-ds", PathwayID: "btech-cse", Name: "Data Structures", Duration: "1 semester",
			Topics: []string{"arrays", "trees", "graphs"}, Skills: []string{"problem solving"}},
		Course{ID: "cse-os", PathwayID: "btech-cse", Name: "Operating Systems", Duration: "1 semester",
			Topics: []string{"scheduling", "memory", "file systems"}, Skills: []string{"systems thinking"}},
		Course{ID: "cse-db", PathwayID: "btech-cse", Name: "Database Systems", Duration: "1 semester",
			Topics: []string{"relational model", "sql", "transactions"}, Skills: []string{"data modelling"}},
		Course{ID: "bca-prog", PathwayID: "bca", Name: "Programming in C", Duration: "1 semester",
			Topics: []string{"pointers", "memory"}, Skills: []string{"programming"}},
		Course{ID: "bca-web", PathwayID: "bca", Name: "Web Technologies", Duration: "1 semester",
			Topics: []string{"html", "css", "javascript"}, Skills: []string{"frontend"}},
		Course{ID: "fs-react", PathwayID: "fullstack-bootcamp", Name: "React Fundamentals", Duration: "6 weeks",
			Topics: []string{"components", "hooks"}, Skills: []string{"frontend"}},
		Course{ID: "fs-node", PathwayID: "fullstack-bootcamp", Name: "APIs with Node", Duration: "6 weeks",
			Topics: []string{"rest", "auth"}, Skills: []string{"backend"}},
	)

	iitb := Institution{ID: "iit-bombay", Name: "IIT Bombay", Location: "Mumbai, Maharashtra", Ranking: 3,
		Facilities: []string{"hostel", "research labs", "incubator"}}
	bits := Institution{ID: "bits-pilani", Name: "BITS Pilani", Location: "Pilani, Rajasthan", Ranking: 20,
		Facilities: []string{"hostel", "library"}}
	christ := Institution{ID: "christ-univ", Name: "Christ University", Location: "Bengaluru, Karnataka", Ranking: 60,
		Facilities: []string{"library", "sports"}}
	gpt := Institution{ID: "gpt-pune", Name: "Government Polytechnic Pune", Location: "Pune, Maharashtra", Ranking: 120,
		Facilities: []string{"workshops"}}

	m.AddInstitutions(
		InstitutionBinding{ID: "iitb-cse", PathwayID: "btech-cse", Institution: iitb, Fees: 900000, Seats: 120,
			AcceptedExams: []string{"jee-adv"}},
		InstitutionBinding{ID: "bits-cse", PathwayID: "btech-cse", Institution: bits, Fees: 1600000, Seats: 300,
			AcceptedExams: []string{"bitsat"}},
		InstitutionBinding{ID: "christ-bca", PathwayID: "bca", Institution: christ, Fees: 450000, Seats: 180,
			AcceptedExams: []string{"cuet"}},
		InstitutionBinding{ID: "gpt-diploma", PathwayID: "diploma-cs", Institution: gpt, Fees: 60000, Seats: 60,
			AcceptedExams: []string{"polycet"}},
	)

	m.AddAdmissions(
		AdmissionProcess{
			ID: "iitb-cse-2026", InstitutionID: "iit-bombay", PathwayID: "btech-cse",
			Dates: AdmissionDates{ApplicationOpen: "2026-04-20", ApplicationClose: "2026-05-05",
				Exam: "2026-05-24", Counselling: "2026-06-10"},
			Eligibility:          json.RawMessage(`{"min_percentage":75,"subjects":["physics","chemistry","mathematics"]}`),
			PreparationResources: json.RawMessage(`[{"title":"NCERT Physics","kind":"book"},{"title":"Past papers","kind":"practice"}]`),
			Tips:                 []string{"Prioritise mock tests in the final two months."},
		},
		AdmissionProcess{
			ID: "bits-cse-2026", InstitutionID: "bits-pilani", PathwayID: "btech-cse",
			Dates:       AdmissionDates{ApplicationOpen: "2026-01-15", ApplicationClose: "2026-04-10", Exam: "2026-05-20"},
			Eligibility: json.RawMessage(`{"min_percentage":75,"board_topper_direct_admission":true}`),
			Tips:        []string{"BITSAT rewards speed; practice timed sections."},
		},
		AdmissionProcess{
			ID: "christ-bca-2026", InstitutionID: "christ-univ", PathwayID: "bca",
			Dates:       AdmissionDates{ApplicationOpen: "2026-02-01", ApplicationClose: "2026-03-31"},
			Eligibility: json.RawMessage(`{"min_percentage":50}`),
		},
	)

	m.AddExams(
		ExamInfo{ID: "jee-main", Name: "JEE Main", ConductingBody: "NTA", Frequency: "twice a year",
			Pattern:  json.RawMessage(`{"sections":["physics","chemistry","mathematics"],"duration_minutes":180}`),
			Syllabus: []string{"mechanics", "organic chemistry", "calculus"}},
		ExamInfo{ID: "jee-adv", Name: "JEE Advanced", ConductingBody: "IITs", Frequency: "yearly",
			Syllabus: []string{"physics", "chemistry", "mathematics"}},
		ExamInfo{ID: "bitsat", Name: "BITSAT", ConductingBody: "BITS Pilani", Frequency: "yearly",
			Syllabus: []string{"physics", "chemistry", "mathematics", "english", "logical reasoning"}},
		ExamInfo{ID: "cuet", Name: "CUET UG", ConductingBody: "NTA", Frequency: "yearly"},
		ExamInfo{ID: "polycet", Name: "Polytechnic CET", ConductingBody: "State boards", Frequency: "yearly"},
	)

	return m
}
