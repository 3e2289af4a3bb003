package models

// Flat record shapes returned by the remote catalog. They mirror the remote
// field names; conversion to local rows happens in the sync engine.

type CatalogUser struct {
	BNNumber string  `json:"bn_number"`
	NIM      string  `json:"nim"`
	Name     string  `json:"name"`
	Major    string  `json:"major"`
	Role     string  `json:"role"`
	Initial  *string `json:"initial"`
}

type CatalogRoom struct {
	RoomNumber   string `json:"room_number"`
	RoomCapacity int    `json:"room_capacity"`
	Campus       string `json:"campus"`
}

type CatalogSubject struct {
	SubjectCode string `json:"subject_code"`
	SubjectName string `json:"subject_name"`
}

type CatalogEnrollment struct {
	ClassCode   string `json:"class_code"`
	NIM         string `json:"nim"`
	SubjectCode string `json:"subject_code"`
}
