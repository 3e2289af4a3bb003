package models

// Room is insert-only: once a room number exists locally, later remote
// changes to capacity or campus are ignored.
type Room struct {
	RoomNumber   string `json:"room_number" gorm:"column:room_number;primaryKey;size:255"`
	RoomCapacity int    `json:"room_capacity" gorm:"column:room_capacity;not null"`
	Campus       string `json:"campus" gorm:"column:campus;not null;size:255"`
}

func (Room) TableName() string {
	return "room"
}

// Subject is insert-only, same first-write-wins policy as Room.
type Subject struct {
	SubjectCode string `json:"subject_code" gorm:"column:subject_code;primaryKey;size:255"`
	SubjectName string `json:"subject_name" gorm:"column:subject_name;not null;size:255"`
}

func (Subject) TableName() string {
	return "subject"
}

// Shift is seeded at bootstrap and read-only afterwards.
type Shift struct {
	ShiftID   string `json:"shift_id" gorm:"column:shift_id;primaryKey;size:1"`
	StartTime string `json:"start_time" gorm:"column:start_time;not null;size:8"`
	EndTime   string `json:"end_time" gorm:"column:end_time;not null;size:8"`
}

func (Shift) TableName() string {
	return "shift"
}

// Enrollment links a student to a subject through a class. Both references
// must resolve to already-synced catalog rows; the store enforces them.
type Enrollment struct {
	ClassCode   string `json:"class_code" gorm:"column:class_code;primaryKey;size:255"`
	NIM         string `json:"nim" gorm:"column:nim;index;size:255"`
	SubjectCode string `json:"subject_code" gorm:"column:subject_code;index;size:255"`

	Student *User    `json:"student,omitempty" gorm:"foreignKey:NIM;references:NIM"`
	Subject *Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectCode;references:SubjectCode"`
}

func (Enrollment) TableName() string {
	return "enrollment"
}
