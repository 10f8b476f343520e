package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskCardsRebuild = "cards.rebuild"

type CardsRebuildPayload struct {
	Reason      string    `json:"reason"`
	RequestedAt time.Time `json:"requestedAt"`
}

func NewCardsRebuildTask(payload CardsRebuildPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCardsRebuild, data), nil
}

func ParseCardsRebuildPayload(task *asynq.Task) (CardsRebuildPayload, error) {
	var payload CardsRebuildPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return CardsRebuildPayload{}, err
	}
	return payload, nil
}
