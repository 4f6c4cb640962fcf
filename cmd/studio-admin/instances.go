package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/yoga-studio-admin/internal/app"
	"github.com/noah-isme/yoga-studio-admin/internal/calendar"
	"github.com/noah-isme/yoga-studio-admin/internal/models"
	"github.com/noah-isme/yoga-studio-admin/internal/service"
)

var (
	instanceTeacher int64
	upcomingDays    int
)

var instancesCmd = &cobra.Command{
	Use:   "instances",
	Short: "Schedule and browse class instances",
}

var instancesListCmd = &cobra.Command{
	Use:   "list COURSE_ID",
	Short: "List the instances of a course, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		courseID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("course id %q is not a number", args[0])
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			instances, err := a.Instances.ListByCourse(ctx, courseID)
			if err != nil {
				return err
			}
			return printInstances(cmd.OutOrStdout(), instances)
		})
	},
}

var instancesAddCmd = &cobra.Command{
	Use:   "add COURSE_ID DATE",
	Short: "Schedule a class instance; DATE must fall on the course weekday",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		courseID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("course id %q is not a number", args[0])
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			teacherID := instanceTeacher
			if teacherID == 0 {
				course, err := a.Courses.Get(ctx, courseID)
				if err != nil {
					return err
				}
				teacherID = course.TeacherID
			}
			instance, err := a.Instances.Create(ctx, courseID, service.InstanceRequest{Date: args[1], TeacherID: teacherID})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "instance %d scheduled on %s\n", instance.ID, instance.DisplayDate)
			return nil
		})
	},
}

var instancesUpcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "List the instances held from today onwards",
	RunE: func(cmd *cobra.Command, args []string) error {
		if upcomingDays < 1 {
			return fmt.Errorf("--days must be at least 1")
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			var all []models.ClassInstance
			day := calendar.FormatStorage(time.Now())
			for i := 0; i < upcomingDays; i++ {
				instances, err := a.Instances.ListByDate(ctx, day)
				if err != nil {
					return err
				}
				all = append(all, instances...)
				if day, err = calendar.AddDays(day, 1); err != nil {
					return err
				}
			}
			return printInstances(cmd.OutOrStdout(), all)
		})
	},
}

func printInstances(out io.Writer, instances []models.ClassInstance) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCOURSE\tDATE\tWHEN\tTEACHER")
	for _, i := range instances {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", i.ID, i.CourseID, i.DisplayDate, i.When, i.TeacherName)
	}
	return w.Flush()
}

func init() {
	instancesAddCmd.Flags().Int64Var(&instanceTeacher, "teacher", 0, "teacher id, defaults to the course teacher")
	instancesUpcomingCmd.Flags().IntVar(&upcomingDays, "days", 7, "number of days to include")
	instancesCmd.AddCommand(instancesListCmd, instancesAddCmd, instancesUpcomingCmd)
	rootCmd.AddCommand(instancesCmd)
}
