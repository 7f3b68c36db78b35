package dashboard

import (
	"errors"
	"strconv"

	"cryosure/internal/models"
	"cryosure/internal/validator"
)

type Step int

const (
	StepBasicInfo Step = iota + 1
	StepTemperature
	StepEnvironment
	StepReview
)

const (
	FirstStep = StepBasicInfo
	LastStep  = StepReview
)

var ErrStepIncomplete = errors.New("current step is incomplete")

var stepTitles = map[Step]string{
	StepBasicInfo:   "Basic Info",
	StepTemperature: "Temperature",
	StepEnvironment: "Environment",
	StepReview:      "Review",
}

func (s Step) Title() string {
	if t, ok := stepTitles[s]; ok {
		return t
	}
	return "Step " + strconv.Itoa(int(s))
}

// Progress is the share of the wizard completed at this step, in percent.
func (s Step) Progress() int {
	return int(s) * 100 / int(LastStep)
}

// CanLeave reports whether Next may move past s with the given draft.
func CanLeave(s Step, d models.ConfigDraft) error {
	switch s {
	case StepTemperature:
		if !validator.Present(models.FieldMinTemp, d.MinTemp) || !validator.Present(models.FieldMaxTemp, d.MaxTemp) {
			return ErrStepIncomplete
		}
	case StepEnvironment:
		if !validator.Present(models.FieldMaxHumidity, d.MaxHumidity) {
			return ErrStepIncomplete
		}
	}
	return nil
}
