package types

import (
	"time"
)

type Bootcamp struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Website     string   `json:"website,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Email       string   `json:"email,omitempty"`
	Address     string   `json:"address,omitempty"`
	Location    Location `json:"location"`

	Careers []string `json:"careers,omitempty"`

	Housing       bool `json:"housing"`
	JobAssistance bool `json:"jobAssistance"`
	JobGuarantee  bool `json:"jobGuarantee"`
	AcceptGI      bool `json:"acceptGi"`

	AverageRating float64 `json:"averageRating,omitempty"`
	AverageCost   float64 `json:"averageCost,omitempty"`

	Photo string `json:"photo,omitempty"`

	Owner string `json:"owner"`

	// Only set when course population was requested.
	Courses []Course `json:"courses,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	Weeks        int     `json:"weeks,omitempty"`
	Tuition      float64 `json:"tuition"`
	MinimumSkill string  `json:"minimumSkill,omitempty"`

	ScholarshipAvailable bool `json:"scholarshipAvailable"`

	BootcampID string `json:"bootcampId"`
	Owner      string `json:"owner"`

	CreatedAt time.Time `json:"createdAt"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Collection[T any] struct {
	Data       []T
	Count      uint64
	Offset     uint64
	Limit      uint64
	TotalCount uint64
}
