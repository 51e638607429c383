package models

import "time"

type MediaType string

const (
	MediaTypeImage MediaType = "IMAGE"
	MediaTypeVideo MediaType = "VIDEO"
)

func (t MediaType) Valid() bool {
	return t == MediaTypeImage || t == MediaTypeVideo
}

type MarketingMedia struct {
	ID       string    `json:"id"`
	Type     MediaType `json:"type"`
	URL      string    `json:"url"`
	Title    string    `json:"title"`
	Duration int       `json:"duration"` // seconds
}

func (m MarketingMedia) DisplayDuration() time.Duration {
	return time.Duration(m.Duration) * time.Second
}
