package models

// Canonical weekday names stored in courses.day_of_week.
var DaysOfWeek = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Difficulty levels offered on the course form.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelAll          = "All Levels"
)

// Course categories offered on the course form.
const (
	CourseTypeFlow   = "Flow Yoga"
	CourseTypeAerial = "Aerial Yoga"
	CourseTypeFamily = "Family Yoga"
)

var (
	DifficultyLevels = []string{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelAll}
	CourseTypes      = []string{CourseTypeFlow, CourseTypeAerial, CourseTypeFamily}
)

// Course is a recurring weekly class held on a fixed weekday.
type Course struct {
	ID              int64   `db:"id" json:"id"`
	Name            string  `db:"name" json:"name"`
	Description     *string `db:"description" json:"description,omitempty"`
	TeacherID       int64   `db:"teacher_id" json:"teacher_id"`
	TeacherName     string  `db:"teacher_name" json:"teacher_name"`
	DayOfWeek       string  `db:"day_of_week" json:"day_of_week"`
	Time            string  `db:"time" json:"time"`
	DurationMinutes int     `db:"duration" json:"duration_minutes"`
	MaxCapacity     int     `db:"max_capacity" json:"max_capacity"`
	Price           float64 `db:"price" json:"price"`
	Difficulty      *string `db:"difficulty" json:"difficulty,omitempty"`
	Type            *string `db:"type" json:"type,omitempty"`
}

// CourseSearch holds the optional course search filters. Empty fields are
// ignored.
type CourseSearch struct {
	TeacherName string
	DayOfWeek   string
	Date        string
}

// IsEmpty reports whether no filter is set.
func (f CourseSearch) IsEmpty() bool {
	return f.TeacherName == "" && f.DayOfWeek == "" && f.Date == ""
}
