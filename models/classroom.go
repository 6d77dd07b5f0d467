package models

import "time"

// Classroom groups students and the subjects (video lessons) they can access.
type Classroom struct {
	ID         string    `bson:"id" json:"id"`
	ClassName  string    `bson:"className" json:"className"`
	JoinCode   int       `bson:"joinCode" json:"joinCode"` // 6-digit
	StudentIDs []string  `bson:"students" json:"students"`
	SubjectIDs []string  `bson:"subjects" json:"subjects"`
	EndDate    string    `bson:"endDate,omitempty" json:"endDate,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ClassroomSummary is the list view shown on the admin dashboard.
type ClassroomSummary struct {
	ID            string    `json:"id"`
	ClassName     string    `json:"className"`
	JoinCode      int       `json:"joinCode"`
	EndDate       string    `json:"endDate,omitempty"`
	TotalStudents int       `json:"totalStudents"`
	SubjectCount  int       `json:"subjectCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ClassroomDetail is a classroom with its roster and subjects populated.
type ClassroomDetail struct {
	Classroom
	Students []User    `json:"studentDetails"`
	Subjects []Subject `json:"subjectDetails"`
}
