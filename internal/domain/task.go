package domain

import "sort"

// TaskSetup describes how many built-in tasks of each category to draw.
type TaskSetup struct {
	PlainTasks     int
	OrderedTasks   int
	SequencedTasks int
	LastTask       bool
}

// GenerateTasks draws task cards from a shuffled colorless-of-black pool.
// Ordered and sequence tasks get 1-based sequence indexes; plain and
// must-be-last tasks carry index 0. The pool is consumed front to back.
func GenerateTasks(pool []Card, setup TaskSetup) []Task {
	var tasks []Task
	next := 0
	draw := func() (Card, bool) {
		if next >= len(pool) {
			return Card{}, false
		}
		c := pool[next]
		next++
		return c, true
	}

	for i := 0; i < setup.PlainTasks; i++ {
		card, ok := draw()
		if !ok {
			break
		}
		tasks = append(tasks, Task{Card: card, Category: TaskPlain})
	}

	for i := 1; i <= setup.OrderedTasks; i++ {
		card, ok := draw()
		if !ok {
			break
		}
		tasks = append(tasks, Task{Card: card, Category: TaskOrdered, SequenceIndex: i})
	}

	for i := 1; i <= setup.SequencedTasks; i++ {
		card, ok := draw()
		if !ok {
			break
		}
		tasks = append(tasks, Task{Card: card, Category: TaskSequence, SequenceIndex: i})
	}

	if setup.LastTask {
		if card, ok := draw(); ok {
			tasks = append(tasks, Task{Card: card, Category: TaskMustBeLast})
		}
	}

	return tasks
}

// EvaluateTrickForTasks updates built-in task verdicts after a completed
// trick. Verdicts are permanent: settled tasks are never revisited.
//
// Ordered tasks must complete in sequence-index order against the shared
// completion counter; sequence tasks track their own counter but also bump
// the shared one. A must-be-last task completes only on the final trick.
// After the pass, any live ordered task whose slot index has already been
// passed is failed retroactively.
func EvaluateTrickForTasks(g *Game, trick Trick) {
	trickIndex := len(g.CompletedTricks) - 1

	cardInTrick := func(task Task) bool {
		for _, card := range trick.PlayedCards {
			if card == task.Card {
				return true
			}
		}
		return false
	}

	var orderedLive []*Task
	for i := range g.Tasks {
		task := &g.Tasks[i]
		if !task.Completed && !task.Failed && task.Category == TaskOrdered {
			orderedLive = append(orderedLive, task)
		}
	}
	sortTasksBySequence(orderedLive)

	for _, task := range orderedLive {
		if !cardInTrick(*task) {
			continue
		}
		if trick.Winner != task.Owner {
			task.Failed = true
			continue
		}
		if task.SequenceIndex-1 == g.CompletedTaskCount {
			task.Completed = true
			task.CompletedAtTrick = trickIndex
			g.CompletedTaskCount++
		} else {
			task.Failed = true
		}
	}

	var sequenceLive []*Task
	for i := range g.Tasks {
		task := &g.Tasks[i]
		if !task.Completed && !task.Failed && task.Category == TaskSequence {
			sequenceLive = append(sequenceLive, task)
		}
	}
	sortTasksBySequence(sequenceLive)

	for _, task := range sequenceLive {
		if !cardInTrick(*task) {
			continue
		}
		if trick.Winner != task.Owner {
			task.Failed = true
			continue
		}
		if task.SequenceIndex-1 == g.CompletedSequenceTaskCount {
			task.Completed = true
			task.CompletedAtTrick = trickIndex
			g.CompletedSequenceTaskCount++
			g.CompletedTaskCount++
		} else {
			task.Failed = true
		}
	}

	for i := range g.Tasks {
		task := &g.Tasks[i]
		if task.Completed || task.Failed || task.Category != TaskPlain {
			continue
		}
		if !cardInTrick(*task) {
			continue
		}
		if trick.Winner == task.Owner {
			task.Completed = true
			task.CompletedAtTrick = trickIndex
			g.CompletedTaskCount++
		} else {
			task.Failed = true
		}
	}

	isLastTrick := len(g.CompletedTricks) == g.ExpectedTrickCount
	for i := range g.Tasks {
		task := &g.Tasks[i]
		if task.Completed || task.Failed || task.Category != TaskMustBeLast {
			continue
		}
		if !cardInTrick(*task) {
			continue
		}
		if trick.Winner != task.Owner {
			task.Failed = true
			continue
		}
		if isLastTrick {
			task.Completed = true
			task.CompletedAtTrick = trickIndex
			g.CompletedTaskCount++
		} else {
			task.Failed = true
		}
	}

	for _, task := range orderedLive {
		if !task.Completed && !task.Failed && task.SequenceIndex <= g.CompletedTaskCount {
			task.Failed = true
		}
	}
}

func sortTasksBySequence(tasks []*Task) {
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].SequenceIndex < tasks[j].SequenceIndex
	})
}
