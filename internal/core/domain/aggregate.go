package domain

import "sort"

const (
	NoProjectLabel = "(no project)"
	UntitledLabel  = "(untitled)"
)

type TaskTotal struct {
	Task    string `json:"task"`
	Minutes int    `json:"minutes"`
}

type ProjectGroup struct {
	Project      string      `json:"project"`
	Tasks        []TaskTotal `json:"tasks"`
	TotalMinutes int         `json:"total_minutes"`
}

// Aggregate groups entries by project and by task within project.
// Projects come out in byte-wise ascending order; tasks by minutes
// descending, ties keeping the order they were first seen in.
// The input slice is only read.
func Aggregate(entries []LogEntry) []ProjectGroup {
	type bucket struct {
		tasks []TaskTotal
		index map[string]int
	}

	buckets := make(map[string]*bucket)
	projects := make([]string, 0)

	for _, e := range entries {
		project := e.ProjectKey()
		task := e.TaskKey()
		minutes := e.Minutes.Int()

		b, ok := buckets[project]
		if !ok {
			b = &bucket{index: make(map[string]int)}
			buckets[project] = b
			projects = append(projects, project)
		}

		if i, ok := b.index[task]; ok {
			b.tasks[i].Minutes += minutes
			continue
		}
		b.index[task] = len(b.tasks)
		b.tasks = append(b.tasks, TaskTotal{Task: task, Minutes: minutes})
	}

	sort.Strings(projects)

	groups := make([]ProjectGroup, 0, len(projects))
	for _, project := range projects {
		tasks := buckets[project].tasks
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Minutes > tasks[j].Minutes
		})

		total := 0
		for _, t := range tasks {
			total += t.Minutes
		}

		groups = append(groups, ProjectGroup{
			Project:      project,
			Tasks:        tasks,
			TotalMinutes: total,
		})
	}

	return groups
}

func TotalMinutes(groups []ProjectGroup) int {
	total := 0
	for _, g := range groups {
		total += g.TotalMinutes
	}
	return total
}
