// Package report renders a markdown status report for a project from its
// tasks and event history.
package report

import (
	"fmt"
	"sort"
	"strings"

	"tracker/internal/project"
	"tracker/internal/store"
	"tracker/internal/task"
)

// Builder assembles the report sections from store data. Think of the
// output as the hand-out a lead would bring to a standup.
type Builder struct {
	store *store.Store
}

// New creates a report builder.
func New(s *store.Store) *Builder {
	return &Builder{store: s}
}

// Build creates the full markdown report for a project:
// 1. Header with the project summary line
// 2. Task list with one-line summaries
// 3. Estimate totals
// 4. Analytics (workload, priorities, statuses, unassigned)
// 5. Recent event history
func (b *Builder) Build(projectName string) (string, error) {
	row, err := b.store.GetProject(projectName)
	if err != nil {
		return "", err
	}
	agg, err := b.store.LoadProject(projectName)
	if err != nil {
		return "", err
	}

	var parts []string
	parts = append(parts, b.headerSection(agg))
	parts = append(parts, b.taskSection(agg))
	parts = append(parts, b.estimateSection(agg))
	parts = append(parts, b.analyticsSection(agg))

	if events, err := b.store.RecentProjectEvents(row.ID, 10); err == nil && len(events) > 0 {
		parts = append(parts, b.activitySection(events))
	}

	return strings.Join(parts, "\n\n") + "\n", nil
}

func (b *Builder) headerSection(p *project.Project) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Project: %s\n\n", p.Name))
	sb.WriteString(p.Summary())
	return sb.String()
}

func (b *Builder) taskSection(p *project.Project) string {
	var sb strings.Builder
	sb.WriteString("## Tasks\n")
	if len(p.Tasks) == 0 {
		sb.WriteString("\nNo tasks yet.")
		return sb.String()
	}
	for _, t := range p.Tasks {
		sb.WriteString(fmt.Sprintf("- %s\n", task.OneLine(t)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (b *Builder) estimateSection(p *project.Project) string {
	var sb strings.Builder
	sb.WriteString("## Estimates\n\n")

	total := p.TotalEstimate()
	if total == nil {
		sb.WriteString("No estimates recorded.")
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("Total estimated: %.1f hours\n", *total))
	if avg := p.AverageEstimate(); avg != nil {
		sb.WriteString(fmt.Sprintf("Average per task: %.1f hours", *avg))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (b *Builder) analyticsSection(p *project.Project) string {
	var sb strings.Builder

	// Workload per assignee, sorted for stable output.
	workload := project.WorkloadByAssignee(p.Tasks)
	if len(workload) > 0 {
		sb.WriteString("## Workload\n")
		for _, dev := range sortedKeys(workload) {
			sb.WriteString(fmt.Sprintf("- %s: %.1fh\n", dev, workload[dev]))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## By priority\n")
	grouped := project.ByPriority(p.Tasks)
	for _, pri := range []task.Priority{task.PriorityCritical, task.PriorityHigh, task.PriorityMedium, task.PriorityLow} {
		if group := grouped[pri]; len(group) > 0 {
			sb.WriteString(fmt.Sprintf("- %s: %d\n", pri, len(group)))
		}
	}
	sb.WriteString("\n")

	sb.WriteString("## By status\n")
	counts := project.CountByStatus(p.Tasks)
	for _, state := range task.States() {
		if n := counts[state.Label()]; n > 0 {
			sb.WriteString(fmt.Sprintf("- %s: %d\n", state.Label(), n))
		}
	}

	if unassigned := project.Unassigned(p.Tasks); len(unassigned) > 0 {
		sb.WriteString(fmt.Sprintf("\nUnassigned tasks: %d", len(unassigned)))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (b *Builder) activitySection(events []store.Event) string {
	var sb strings.Builder
	sb.WriteString("## Recent activity\n")
	for _, e := range events {
		actor := ""
		if e.Actor != "" {
			actor = fmt.Sprintf("[%s] ", e.Actor)
		}
		sb.WriteString(fmt.Sprintf("- %s #%d %s%s: %s\n",
			e.Timestamp.Format("2006-01-02 15:04"), e.TaskID, actor, e.Type, e.Content))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
