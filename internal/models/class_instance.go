package models

// ClassInstance is one dated occurrence of a course. TeacherID may differ from
// the course teacher when a substitute takes the class.
type ClassInstance struct {
	ID          int64  `db:"id" json:"id"`
	CourseID    int64  `db:"course_id" json:"course_id"`
	TeacherID   int64  `db:"teacher_id" json:"teacher_id"`
	TeacherName string `db:"teacher_name" json:"teacher_name"`
	Date        string `db:"date" json:"date"`

	// Presentation fields filled by the service relative to the current day.
	DisplayDate string `db:"-" json:"display_date,omitempty"`
	When        string `db:"-" json:"when,omitempty"`
	Past        bool   `db:"-" json:"past"`
}
