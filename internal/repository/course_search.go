package repository

import (
	"strings"

	"github.com/noah-isme/yoga-studio-admin/internal/models"
)

const courseColumns = `c.id, c.name, c.description, c.teacher_id, t.name AS teacher_name, c.day_of_week, c.time, c.duration, c.max_capacity, c.price, c.difficulty, c.type`

const courseFrom = ` FROM courses c JOIN teachers t ON c.teacher_id = t.id`

const instanceJoin = ` LEFT JOIN class_instances i ON c.id = i.course_id`

// BuildCourseSearch assembles the course search over
// courses ⨝ teachers ⟕ class_instances. Only filters that are set become
// predicates and every value is bound as a parameter. Rows are grouped per
// course so a course with many matching instances appears once.
func BuildCourseSearch(filter models.CourseSearch) (string, []interface{}) {
	var query strings.Builder
	query.WriteString("SELECT ")
	query.WriteString(courseColumns)
	query.WriteString(courseFrom)
	query.WriteString(instanceJoin)

	var conditions []string
	var args []interface{}

	if filter.TeacherName != "" {
		conditions = append(conditions, "t.name LIKE ?")
		args = append(args, "%"+filter.TeacherName+"%")
	}
	if filter.DayOfWeek != "" {
		conditions = append(conditions, "c.day_of_week = ?")
		args = append(args, filter.DayOfWeek)
	}
	if filter.Date != "" {
		conditions = append(conditions, "i.date = ?")
		args = append(args, filter.Date)
	}

	if len(conditions) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(conditions, " AND "))
	}
	query.WriteString(" GROUP BY c.id ORDER BY c.name ASC, c.id ASC")

	return query.String(), args
}

func buildCourseByID() string {
	return "SELECT " + courseColumns + courseFrom + " WHERE c.id = ?"
}
