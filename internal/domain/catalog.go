package domain

// Reference data for the landing page: near-static lookup catalogs,
// seeded once and served through the read-through cache.

type ProctoredExam struct {
	ID       int64  `json:"id"`
	Name     string `json:"name" gorm:"uniqueIndex"`
	Provider string `json:"provider,omitempty"`
	Type     string `json:"type,omitempty"`
	Website  string `json:"website,omitempty"`
}

type OnlineExam struct {
	ID       int64  `json:"id"`
	Name     string `json:"name" gorm:"uniqueIndex"`
	ExamType string `json:"exam_type,omitempty"`
	Online   bool   `json:"online"`
	Website  string `json:"website,omitempty"`
}

type AtiModule struct {
	ID       int64  `json:"id"`
	Name     string `json:"name" gorm:"uniqueIndex"`
	Category string `json:"category,omitempty"`
}

type OnlineClass struct {
	ID       int64  `json:"id"`
	Name     string `json:"name" gorm:"uniqueIndex"`
	Type     string `json:"type,omitempty"`
	Provider string `json:"provider,omitempty"`
	Website  string `json:"website,omitempty"`
}

// LandingServices is the whole-payload unit the cache stores under one key.
type LandingServices struct {
	ProctoredExams []ProctoredExam `json:"proctored_exams"`
	OnlineExams    []OnlineExam    `json:"online_exams"`
	AtiModules     []AtiModule     `json:"ati_modules"`
	OnlineClasses  []OnlineClass   `json:"online_classes"`
}
