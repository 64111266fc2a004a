package tasks

import (
	"time"

	"github.com/google/uuid"
)

type TaskType string

const (
	TaskTypeResolveCandidate TaskType = "resolve_candidate"
)

type Task struct {
	ID        string
	Type      TaskType
	Index     int
	StartedAt *time.Time
}

func (t *Task) Start() {
	now := time.Now()
	t.StartedAt = &now
}

func (t *Task) GetDuration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return time.Since(*t.StartedAt)
}

func NewTask(taskType TaskType, index int) Task {
	return Task{
		ID:    uuid.NewString(),
		Type:  taskType,
		Index: index,
	}
}
