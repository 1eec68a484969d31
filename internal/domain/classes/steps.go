package classes

import (
	"fmt"
	"strings"
	"time"

	"studio-admin/internal/domain/apperr"
	"studio-admin/internal/domain/relations"
)

// Step indexes the class wizard in its fixed order.
type Step int

const (
	StepDetails Step = iota
	StepMedia
	StepSchedule
	StepPricing
	StepDone
)

var stepNames = map[Step]string{
	StepDetails:  "details",
	StepMedia:    "media",
	StepSchedule: "schedule",
	StepPricing:  "pricing",
	StepDone:     "done",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

func ParseStep(value string) (Step, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	for step, name := range stepNames {
		if name == value && step != StepDone {
			return step, true
		}
	}
	return 0, false
}

// StepInput is one wizard submission. The set of implementations is closed:
// DetailsInput, MediaInput, ScheduleInput and PricingInput.
type StepInput interface {
	Step() Step
	Validate() error
	columns() []string
	apply(class *Class)
}

type DetailsInput struct {
	Name         string
	Description  string
	InstructorID string
}

type MediaInput struct {
	ImageURL string
	VideoURL string
}

type ScheduleInput struct {
	Entries []ScheduleEntry
}

type PricingInput struct {
	Price         float64
	PromotionID   *string
	MembershipIDs []string
}

func (DetailsInput) Step() Step  { return StepDetails }
func (MediaInput) Step() Step    { return StepMedia }
func (ScheduleInput) Step() Step { return StepSchedule }
func (PricingInput) Step() Step  { return StepPricing }

func (in DetailsInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperr.Invalid("name", "name is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return apperr.Invalid("description", "description is required")
	}
	if strings.TrimSpace(in.InstructorID) == "" {
		return apperr.Invalid("instructor_id", "instructor is required")
	}
	return nil
}

func (in MediaInput) Validate() error {
	if strings.TrimSpace(in.ImageURL) == "" {
		return apperr.Invalid("image_url", "image is required")
	}
	if strings.TrimSpace(in.VideoURL) == "" {
		return apperr.Invalid("video_url", "video is required")
	}
	return nil
}

func (in ScheduleInput) Validate() error {
	if len(in.Entries) == 0 {
		return apperr.Invalid("schedule", "at least one schedule entry is required")
	}
	for i, entry := range in.Entries {
		field := fmt.Sprintf("schedule[%d]", i)
		if entry.Weekday < 0 || entry.Weekday > 6 {
			return apperr.Invalid(field+".weekday", "weekday must be between 0 and 6")
		}
		if _, err := time.Parse("15:04", strings.TrimSpace(entry.Start)); err != nil {
			return apperr.Invalid(field+".start", "start must be HH:MM")
		}
		if entry.DurationMinutes <= 0 {
			return apperr.Invalid(field+".duration_minutes", "duration must be positive")
		}
	}
	return nil
}

func (in PricingInput) Validate() error {
	if in.Price <= 0 {
		return apperr.Invalid("price", "price must be greater than zero")
	}
	if in.Price != relations.RoundCents(in.Price) {
		return apperr.Invalid("price", "price must have at most two decimals")
	}
	return nil
}

func (DetailsInput) columns() []string {
	return []string{"name", "description", "instructor_id", "instructor_name", "updated_at"}
}

func (MediaInput) columns() []string {
	return []string{"image_url", "video_url", "updated_at"}
}

func (ScheduleInput) columns() []string {
	return []string{"schedule", "updated_at"}
}

func (PricingInput) columns() []string {
	return []string{"price", "promotion_id", "updated_at"}
}

// apply copies only the step's own fields; instructor_name is resolved by
// the service.
func (in DetailsInput) apply(class *Class) {
	instructorID := strings.TrimSpace(in.InstructorID)
	class.Name = strings.TrimSpace(in.Name)
	class.Description = strings.TrimSpace(in.Description)
	class.InstructorID = &instructorID
}

func (in MediaInput) apply(class *Class) {
	class.ImageURL = strings.TrimSpace(in.ImageURL)
	class.VideoURL = strings.TrimSpace(in.VideoURL)
}

func (in ScheduleInput) apply(class *Class) {
	entries := make([]ScheduleEntry, 0, len(in.Entries))
	for _, entry := range in.Entries {
		entry.Start = strings.TrimSpace(entry.Start)
		entry.Room = strings.TrimSpace(entry.Room)
		entries = append(entries, entry)
	}
	class.Schedule = entries
}

func (in PricingInput) apply(class *Class) {
	class.Price = in.Price
	class.PromotionID = normalizeOptionalID(in.PromotionID)
}

func normalizeOptionalID(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ComputeResumeStep returns the first wizard step whose fields are not yet
// populated, or StepDone when every step is satisfied.
func ComputeResumeStep(class Class) Step {
	switch {
	case strings.TrimSpace(class.Name) == "" ||
		strings.TrimSpace(class.Description) == "" ||
		class.InstructorID == nil || strings.TrimSpace(*class.InstructorID) == "":
		return StepDetails
	case class.ImageURL == "" || class.VideoURL == "":
		return StepMedia
	case len(class.Schedule) == 0:
		return StepSchedule
	case class.Price <= 0:
		return StepPricing
	default:
		return StepDone
	}
}
