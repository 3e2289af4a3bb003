package models

// Roles as delivered by the remote catalog.
const (
	RoleAssistant          = "Assistant"
	RoleExamCoordinator    = "Exam Coordinator"
	RoleSubjectDevelopment = "Subject Development"
	RoleStudent            = "Student"
)

// User is a catalog identity cached locally. The catalog owns every field
// except Password, which is managed by the session guard and never touched
// by sync. NIM is NULL for roles without a student number; uniqueness only
// applies among present values (NULLs are distinct under the index).
type User struct {
	BNNumber string  `json:"bn_number" gorm:"column:bn_number;primaryKey;size:255"`
	NIM      *string `json:"nim" gorm:"column:nim;uniqueIndex;size:255"`
	Name     string  `json:"name" gorm:"column:name;not null;size:255"`
	Major    string  `json:"major" gorm:"column:major;size:255"`
	Role     string  `json:"role" gorm:"column:role;size:255"`
	Initial  *string `json:"initial" gorm:"column:initial;size:255"`
	Password string  `json:"-" gorm:"column:password;size:255"`
}

func (User) TableName() string {
	return "users"
}
