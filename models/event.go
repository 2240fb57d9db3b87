package models

import "time"

type PostEvent struct {
	Name       string    `json:"name"`
	Data       Post      `json:"data"`
	OccurredAt time.Time `json:"occurredAt"`
}
