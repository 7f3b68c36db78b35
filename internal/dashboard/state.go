// Package dashboard holds the in-memory view model: the wizard draft, the
// monitoring data and the notification log, changed only through Reduce.
package dashboard

import (
	"time"

	"cryosure/internal/models"
)

type View string

const (
	ViewConfig     View = "config"
	ViewMonitoring View = "monitoring"
)

// Message is the dismissible banner shown after a submission.
type Message struct {
	Text string                  `json:"text"`
	Kind models.NotificationKind `json:"kind"`
}

// State is everything both screens render.
type State struct {
	Version uint64 `json:"version"`
	View    View   `json:"view"`

	// wizard
	Draft            models.ConfigDraft `json:"draft"`
	Step             Step               `json:"currentStep"`
	StepTitle        string             `json:"stepTitle"`
	Progress         int                `json:"progress"`
	ValidationErrors map[string]string  `json:"validationErrors"`
	Submitting       bool               `json:"submitting"`
	Message          *Message           `json:"message,omitempty"`
	Notifications    NotificationLog    `json:"notifications"`

	// monitoring
	Readings        []models.SensorReading   `json:"readings"`
	Snapshot        *models.RealTimeSnapshot `json:"snapshot,omitempty"`
	LastDataFetch   *time.Time               `json:"lastDataFetch,omitempty"`
	FetchError      string                   `json:"fetchError,omitempty"`
	LoadingLiveData bool                     `json:"loadingLiveData"`
}

// InitialState is an empty draft at step 1 on the configuration view.
func InitialState() State {
	s := State{
		View:             ViewConfig,
		Step:             FirstStep,
		ValidationErrors: map[string]string{},
		Notifications:    NotificationLog{},
		Readings:         []models.SensorReading{},
	}
	return s.withStepInfo()
}

func (s State) withStepInfo() State {
	s.StepTitle = s.Step.Title()
	s.Progress = s.Step.Progress()
	return s
}

// Clone copies the maps and slices so the result can be handed out safely.
func (s State) Clone() State {
	out := s
	out.ValidationErrors = make(map[string]string, len(s.ValidationErrors))
	for k, v := range s.ValidationErrors {
		out.ValidationErrors[k] = v
	}
	out.Notifications = append(NotificationLog{}, s.Notifications...)
	out.Readings = append([]models.SensorReading{}, s.Readings...)
	if s.Message != nil {
		m := *s.Message
		out.Message = &m
	}
	if s.Snapshot != nil {
		snap := *s.Snapshot
		out.Snapshot = &snap
	}
	if s.LastDataFetch != nil {
		t := *s.LastDataFetch
		out.LastDataFetch = &t
	}
	return out
}
