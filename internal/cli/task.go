package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tracker/internal/task"
)

var (
	taskType     string
	taskPriority string
	taskAssignee string
	taskEstimate float64
	taskProject  string
	taskBy       string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Create or manage tasks",
	Long:  "Create a new task or move existing ones through their lifecycle.",
}

var taskCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskCreate,
}

var taskListCmd = &cobra.Command{
	Use:   "list [state]",
	Short: "List tasks, optionally filtered by state",
	RunE:  runTaskList,
}

var taskShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskShow,
}

var taskStartCmd = &cobra.Command{
	Use:   "start [id]",
	Short: "Start working on a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskStart,
}

var taskCompleteCmd = &cobra.Command{
	Use:   "complete [id] [hours]",
	Short: "Complete a task, recording hours spent",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskComplete,
}

var taskBlockCmd = &cobra.Command{
	Use:   "block [id] [reason]",
	Short: "Mark a task as blocked",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTaskBlock,
}

var taskAnswerCmd = &cobra.Command{
	Use:   "answer [id] [note]",
	Short: "Resolve a blocker and return the task to todo",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskAnswer,
}

var taskAssignCmd = &cobra.Command{
	Use:   "assign [id] [person]",
	Short: "Assign a task to someone",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskAssign,
}

var taskEstimateCmd = &cobra.Command{
	Use:   "estimate [id] [hours]",
	Short: "Set the estimated hours for a task",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskEstimate,
}

var taskPriorityCmd = &cobra.Command{
	Use:   "priority [id] [level]",
	Short: "Change a task's priority",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskPriority,
}

func init() {
	taskCreateCmd.Flags().StringVarP(&taskType, "type", "t", "feature", "Type: bug, feature, improvement, documentation")
	taskCreateCmd.Flags().StringVarP(&taskPriority, "priority", "p", "", "Priority: low, medium, high, critical")
	taskCreateCmd.Flags().StringVarP(&taskAssignee, "assignee", "a", "", "Who the task is assigned to")
	taskCreateCmd.Flags().Float64VarP(&taskEstimate, "estimate", "e", 0, "Estimated hours")

	taskStartCmd.Flags().StringVar(&taskBy, "by", "", "Developer starting the task (default from config)")
	taskCompleteCmd.Flags().StringVar(&taskBy, "by", "", "Developer completing the task (default from config)")

	for _, c := range []*cobra.Command{taskCreateCmd, taskListCmd} {
		c.Flags().StringVar(&taskProject, "project", "", "Project name (default from config)")
	}

	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskStartCmd)
	taskCmd.AddCommand(taskCompleteCmd)
	taskCmd.AddCommand(taskBlockCmd)
	taskCmd.AddCommand(taskAnswerCmd)
	taskCmd.AddCommand(taskAssignCmd)
	taskCmd.AddCommand(taskEstimateCmd)
	taskCmd.AddCommand(taskPriorityCmd)
}

func runTaskCreate(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.GetProject(resolveProject(taskProject))
	if err != nil {
		return err
	}

	tt, err := task.ParseType(taskType)
	if err != nil {
		return err
	}
	pri := loadConfig().DefaultPriority()
	if taskPriority != "" {
		if pri, err = task.ParsePriority(taskPriority); err != nil {
			return err
		}
	}

	title := strings.Join(args, " ")
	t := task.New(0, title, tt).WithPriority(pri)
	if taskAssignee != "" {
		t = t.AssignedTo(taskAssignee)
	}
	if cmd.Flags().Changed("estimate") {
		t = t.WithEstimate(taskEstimate)
	}

	created, err := s.CreateTask(p.ID, t)
	if err != nil {
		return err
	}

	fmt.Printf("Created task #%d in %s: %s [%s]\n", created.ID, p.Name, created.Title, created.Priority)
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.GetProject(resolveProject(taskProject))
	if err != nil {
		return err
	}

	var state task.State
	if len(args) > 0 {
		state = task.State(args[0])
	}

	tasks, err := s.ListTasks(p.ID, state)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	for _, t := range tasks {
		assignee := ""
		if t.Assignee != "" {
			assignee = fmt.Sprintf(" [%s]", t.Assignee)
		}
		blocked := ""
		if t.Status.State == task.StateBlocked {
			blocked = fmt.Sprintf(" BLOCKED: %q", t.Status.Reason)
		}
		fmt.Printf("#%-4d %-12s %-8s %s%s%s\n", t.ID, t.Status.State, t.Priority, t.Title, assignee, blocked)
	}
	return nil
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	t, _, err := s.GetTask(id)
	if err != nil {
		return err
	}

	fmt.Printf("Task #%d\n", t.ID)
	fmt.Printf("  Title:    %s\n", t.Title)
	fmt.Printf("  Type:     %s\n", t.Type)
	fmt.Printf("  Priority: %s\n", t.Priority)
	fmt.Printf("  Status:   %s\n", t.Status.State.Label())
	switch t.Status.State {
	case task.StateInProgress:
		fmt.Printf("  Started:  by %s\n", t.Status.StartedBy)
	case task.StateBlocked:
		fmt.Printf("  Blocked:  %s\n", t.Status.Reason)
	case task.StateCompleted:
		fmt.Printf("  Done:     by %s in %gh\n", t.Status.CompletedBy, t.Status.HoursSpent)
	}
	if t.Assignee != "" {
		fmt.Printf("  Assignee: %s\n", t.Assignee)
	}
	if t.EstimatedHours != nil {
		fmt.Printf("  Estimate: %gh\n", *t.EstimatedHours)
	}

	// Show events.
	events, err := s.GetEvents(id)
	if err != nil {
		return err
	}
	if len(events) > 0 {
		fmt.Println("\n  Events:")
		for _, e := range events {
			actor := ""
			if e.Actor != "" {
				actor = fmt.Sprintf("[%s] ", e.Actor)
			}
			fmt.Printf("    %s %s%s: %s\n", e.Timestamp.Format("15:04"), actor, e.Type, e.Content)
		}
	}

	return nil
}

func runTaskStart(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	developer := resolveDeveloper(taskBy)
	if developer == "" {
		return fmt.Errorf("no developer given: pass --by or set defaults.developer in .tracker/config.yaml")
	}

	t, _, err := s.GetTask(id)
	if err != nil {
		return err
	}
	if err := t.Start(developer); err != nil {
		return err
	}
	if err := s.SaveTask(t); err != nil {
		return err
	}
	s.AddEvent(id, developer, "started", fmt.Sprintf("Started by %s", developer))

	fmt.Printf("Task #%d started by %s\n", id, developer)
	return nil
}

func runTaskComplete(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	hours, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid hours: %s", args[1])
	}
	developer := resolveDeveloper(taskBy)
	if developer == "" {
		return fmt.Errorf("no developer given: pass --by or set defaults.developer in .tracker/config.yaml")
	}

	t, _, err := s.GetTask(id)
	if err != nil {
		return err
	}
	if err := t.Complete(developer, hours); err != nil {
		return err
	}
	if err := s.SaveTask(t); err != nil {
		return err
	}
	s.AddEvent(id, developer, "completed", fmt.Sprintf("Completed by %s in %gh", developer, hours))

	fmt.Printf("Task #%d completed by %s (%gh)\n", id, developer, hours)
	return nil
}

func runTaskBlock(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	reason := strings.Join(args[1:], " ")

	t, _, err := s.GetTask(id)
	if err != nil {
		return err
	}
	if err := t.Block(reason); err != nil {
		return err
	}
	if err := s.SaveTask(t); err != nil {
		return err
	}
	s.AddEvent(id, "", "blocked", reason)

	fmt.Printf("Task #%d blocked: %s\n", id, reason)
	return nil
}

func runTaskAnswer(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	t, _, err := s.GetTask(id)
	if err != nil {
		return err
	}
	reason := t.Status.Reason
	if err := t.Unblock(); err != nil {
		return err
	}
	if err := s.SaveTask(t); err != nil {
		return err
	}

	note := strings.Join(args[1:], " ")
	if note == "" {
		note = "Blocker resolved"
	}
	s.AddEvent(id, "", "unblocked", note)

	fmt.Printf("Unblocked task #%d\n", id)
	if reason != "" {
		fmt.Printf("  Blocker was: %s\n", reason)
	}
	return nil
}

func runTaskAssign(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	person := args[1]

	t, _, err := s.GetTask(id)
	if err != nil {
		return err
	}
	t.Assignee = person
	if err := s.SaveTask(t); err != nil {
		return err
	}
	s.AddEvent(id, person, "assigned", fmt.Sprintf("Assigned to %s", person))

	fmt.Printf("Assigned task #%d to %s\n", id, person)
	return nil
}

func runTaskEstimate(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	hours, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid hours: %s", args[1])
	}

	t, _, err := s.GetTask(id)
	if err != nil {
		return err
	}
	t = t.WithEstimate(hours)
	if err := s.SaveTask(t); err != nil {
		return err
	}
	s.AddEvent(id, "", "estimated", fmt.Sprintf("Estimated at %gh", hours))

	fmt.Printf("Task #%d estimated at %gh\n", id, hours)
	return nil
}

func runTaskPriority(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	pri, err := task.ParsePriority(args[1])
	if err != nil {
		return err
	}

	t, _, err := s.GetTask(id)
	if err != nil {
		return err
	}
	t = t.WithPriority(pri)
	if err := s.SaveTask(t); err != nil {
		return err
	}
	s.AddEvent(id, "", "priority_changed", fmt.Sprintf("Priority changed to %s", pri))

	fmt.Printf("Task #%d priority set to %s\n", id, pri)
	return nil
}
