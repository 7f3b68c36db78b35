package dashboard

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"cryosure/internal/models"
	"cryosure/internal/status"
	"cryosure/internal/validator"
)

const (
	msgSubmitSuccess    = "Configuration saved successfully! System is now monitoring your parameters."
	notifySubmitSuccess = "Configuration saved successfully"
	notifySubmitFailure = "Failed to save configuration"
)

var (
	ErrUnknownField     = errors.New("unknown draft field")
	ErrUnknownPreset    = errors.New("unknown preset")
	ErrUnknownView      = errors.New("unknown view")
	ErrNotAtReview      = errors.New("submission is only available on the review step")
	ErrSubmitInProgress = errors.New("a submission is already in progress")
)

// Action is any change request accepted by Reduce.
type Action interface{ isAction() }

type (
	EditField struct {
		Field string
		Value string
	}
	SelectStorageType       struct{ Name string }
	SelectTemperaturePreset struct{ Name string }
	NextStep                struct{}
	PrevStep                struct{}
	SubmitStarted           struct{}
	SubmitSucceeded         struct{ At time.Time }
	SubmitFailed            struct {
		Message string
		At      time.Time
	}
	DismissMessage struct{}
	SwitchView     struct{ View View }
	FetchStarted   struct{}
	FetchSucceeded struct {
		Readings []models.SensorReading
		At       time.Time
	}
	FetchFailed struct {
		Message string
		At      time.Time
	}
)

func (EditField) isAction()               {}
func (SelectStorageType) isAction()       {}
func (SelectTemperaturePreset) isAction() {}
func (NextStep) isAction()                {}
func (PrevStep) isAction()                {}
func (SubmitStarted) isAction()           {}
func (SubmitSucceeded) isAction()         {}
func (SubmitFailed) isAction()            {}
func (DismissMessage) isAction()          {}
func (SwitchView) isAction()              {}
func (FetchStarted) isAction()            {}
func (FetchSucceeded) isAction()          {}
func (FetchFailed) isAction()             {}

// Reduce returns the state after applying a. The returned state is always
// the one to keep; a non-nil error explains why the action was refused or
// only partly applied.
func Reduce(s State, a Action) (State, error) {
	s = s.Clone()
	var err error

	switch act := a.(type) {
	case EditField:
		if !s.Draft.Set(act.Field, act.Value) {
			return s, fmt.Errorf("%w: %q", ErrUnknownField, act.Field)
		}
		revalidate(&s, act.Field)

	case SelectStorageType:
		p, ok := FindStorageType(act.Name)
		if !ok {
			return s, fmt.Errorf("%w: %q", ErrUnknownPreset, act.Name)
		}
		s.Draft.StorageType = p.Name
		s.Draft.MinTemp = formatNumber(p.MinTemp)
		s.Draft.MaxTemp = formatNumber(p.MaxTemp)
		s.Draft.MaxHumidity = formatNumber(p.Humidity)
		revalidate(&s, models.FieldMinTemp, models.FieldMaxTemp, models.FieldMaxHumidity)

	case SelectTemperaturePreset:
		p, ok := FindTemperaturePreset(act.Name)
		if !ok {
			return s, fmt.Errorf("%w: %q", ErrUnknownPreset, act.Name)
		}
		s.Draft.MinTemp = formatNumber(p.Min)
		s.Draft.MaxTemp = formatNumber(p.Max)
		revalidate(&s, models.FieldMinTemp, models.FieldMaxTemp)

	case NextStep:
		if s.Step < LastStep {
			if err = CanLeave(s.Step, s.Draft); err == nil {
				s.Step++
			}
		}

	case PrevStep:
		if s.Step > FirstStep {
			s.Step--
		}

	case SubmitStarted:
		switch {
		case s.Step != LastStep:
			err = ErrNotAtReview
		case s.Submitting:
			err = ErrSubmitInProgress
		default:
			if errs := validator.ValidateDraft(s.Draft); len(errs) > 0 {
				s.ValidationErrors = errs
				err = &validator.ValidationError{Fields: errs}
				break
			}
			s.Submitting = true
			s.Message = nil
		}

	case SubmitSucceeded:
		s.Submitting = false
		s.Draft = models.ConfigDraft{}
		s.Step = FirstStep
		s.ValidationErrors = map[string]string{}
		s.Message = &Message{Text: msgSubmitSuccess, Kind: models.NotificationSuccess}
		s.Notifications = s.Notifications.Push(notifySubmitSuccess, models.NotificationSuccess, act.At)
		s.View = ViewMonitoring

	case SubmitFailed:
		s.Submitting = false
		s.Message = &Message{Text: act.Message, Kind: models.NotificationError}
		s.Notifications = s.Notifications.Push(notifySubmitFailure, models.NotificationError, act.At)

	case DismissMessage:
		s.Message = nil

	case SwitchView:
		if act.View != ViewConfig && act.View != ViewMonitoring {
			return s, fmt.Errorf("%w: %q", ErrUnknownView, act.View)
		}
		s.View = act.View
		if act.View == ViewConfig {
			s.LoadingLiveData = false
		}

	case FetchStarted:
		s.LoadingLiveData = true

	case FetchSucceeded:
		s.LoadingLiveData = false
		s.FetchError = ""
		at := act.At.UTC()
		s.LastDataFetch = &at
		s.Readings = append([]models.SensorReading{}, act.Readings...)
		if len(act.Readings) > 0 {
			s.Snapshot = nextSnapshot(s.Snapshot, act.Readings[0], at)
		}

	case FetchFailed:
		s.LoadingLiveData = false
		s.FetchError = act.Message

	default:
		return s, fmt.Errorf("unsupported action %T", a)
	}

	return s.withStepInfo(), err
}

func revalidate(s *State, fields ...string) {
	for _, f := range fields {
		v, _ := s.Draft.Get(f)
		if err := validator.Validate(f, v); err != nil {
			s.ValidationErrors[f] = err.Error()
		} else {
			delete(s.ValidationErrors, f)
		}
	}
}

// nextSnapshot derives the headline values from the newest reading. A value
// missing from the reading keeps the previous snapshot's value; the status
// always follows the reading itself, as shown in its table row.
func nextSnapshot(prev *models.RealTimeSnapshot, r models.SensorReading, fetchedAt time.Time) *models.RealTimeSnapshot {
	snap := models.RealTimeSnapshot{LastUpdate: fetchedAt}
	if prev != nil {
		snap.CurrentTemp = prev.CurrentTemp
		snap.CurrentHumidity = prev.CurrentHumidity
	}
	if r.Temperature != nil {
		snap.CurrentTemp = *r.Temperature
	}
	if r.Humidity != nil {
		snap.CurrentHumidity = *r.Humidity
	}
	if r.Time != nil {
		snap.LastUpdate = r.Time.UTC()
	}
	snap.Status = status.ForReading(r)
	return &snap
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
