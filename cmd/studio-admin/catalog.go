package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/noah-isme/yoga-studio-admin/internal/app"
	"github.com/noah-isme/yoga-studio-admin/internal/models"
	"github.com/noah-isme/yoga-studio-admin/internal/service"
)

var (
	teacherEmail string
	teacherPhone string
	courseSearch service.CourseSearchRequest
)

var teachersCmd = &cobra.Command{
	Use:   "teachers",
	Short: "Manage teachers",
}

var teachersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List teachers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			teachers, err := a.Teachers.List(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE")
			for _, t := range teachers {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, t.Name, optional(t.Email), optional(t.Phone))
			}
			return w.Flush()
		})
	},
}

var teachersAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Register a teacher",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := service.CreateTeacherRequest{Name: args[0]}
		if teacherEmail != "" {
			req.Email = &teacherEmail
		}
		if teacherPhone != "" {
			req.Phone = &teacherPhone
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			teacher, err := a.Teachers.Create(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "teacher %d created\n", teacher.ID)
			return nil
		})
	},
}

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Browse courses",
}

var coursesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every course",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			courses, err := a.Courses.List(ctx)
			if err != nil {
				return err
			}
			return printCourses(cmd.OutOrStdout(), courses)
		})
	},
}

var coursesSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search courses by teacher, weekday or instance date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			courses, err := a.Courses.Search(ctx, courseSearch)
			if err != nil {
				return err
			}
			return printCourses(cmd.OutOrStdout(), courses)
		})
	},
}

func printCourses(out io.Writer, courses []models.Course) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTEACHER\tDAY\tTIME\tMINUTES\tCAPACITY\tPRICE")
	for _, c := range courses {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%d\t%.2f\n", c.ID, c.Name, c.TeacherName, c.DayOfWeek, c.Time, c.DurationMinutes, c.MaxCapacity, c.Price)
	}
	return w.Flush()
}

func init() {
	teachersAddCmd.Flags().StringVar(&teacherEmail, "email", "", "contact email")
	teachersAddCmd.Flags().StringVar(&teacherPhone, "phone", "", "contact phone")
	teachersCmd.AddCommand(teachersListCmd, teachersAddCmd)

	for _, cmd := range []*cobra.Command{coursesSearchCmd, exportCmd} {
		cmd.Flags().StringVar(&courseSearch.TeacherName, "teacher", "", "teacher name fragment")
		cmd.Flags().StringVar(&courseSearch.DayOfWeek, "day", "", "weekday name")
		cmd.Flags().StringVar(&courseSearch.Date, "date", "", "instance date, yyyy-MM-dd or dd/MM/yyyy")
	}
	coursesCmd.AddCommand(coursesListCmd, coursesSearchCmd)

	rootCmd.AddCommand(teachersCmd, coursesCmd)
}

func optional(value *string) string {
	if value == nil {
		return "-"
	}
	return *value
}
