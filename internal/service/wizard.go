package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cryosure/internal/client"
	"cryosure/internal/dashboard"
	"cryosure/internal/logger"
	"cryosure/internal/metrics"
	"cryosure/internal/models"
	"cryosure/internal/repository"
	"cryosure/internal/validator"
)

// activator is the part of the poller the wizard needs after a submission.
type activator interface {
	Activate()
}

type WizardService struct {
	store      *dashboard.Store
	submitter  Submitter
	configRepo repository.ConfigRepo
	activeRepo repository.ActiveRepo
	poller     activator
	log        *logger.Logger
	now        func() time.Time
}

func NewWizardService(
	store *dashboard.Store,
	submitter Submitter,
	configRepo repository.ConfigRepo,
	activeRepo repository.ActiveRepo,
	poller activator,
	log *logger.Logger,
) *WizardService {
	return &WizardService{
		store:      store,
		submitter:  submitter,
		configRepo: configRepo,
		activeRepo: activeRepo,
		poller:     poller,
		log:        log,
		now:        time.Now,
	}
}

// EditFields applies several field edits in form order. Nothing is applied
// if any name is unknown.
func (s *WizardService) EditFields(ctx context.Context, fields map[string]string) (dashboard.State, error) {
	for name := range fields {
		if !models.IsKnownField(name) {
			return s.store.State(), fmt.Errorf("%w: %q", dashboard.ErrUnknownField, name)
		}
	}
	st := s.store.State()
	for _, name := range models.DraftFields {
		v, ok := fields[name]
		if !ok {
			continue
		}
		var err error
		if st, err = s.store.Dispatch(dashboard.EditField{Field: name, Value: v}); err != nil {
			return st, err
		}
	}
	return st, nil
}

func (s *WizardService) SelectStorageType(ctx context.Context, name string) (dashboard.State, error) {
	return s.store.Dispatch(dashboard.SelectStorageType{Name: name})
}

func (s *WizardService) SelectTemperaturePreset(ctx context.Context, name string) (dashboard.State, error) {
	return s.store.Dispatch(dashboard.SelectTemperaturePreset{Name: name})
}

func (s *WizardService) Next(ctx context.Context) (dashboard.State, error) {
	return s.store.Dispatch(dashboard.NextStep{})
}

func (s *WizardService) Prev(ctx context.Context) (dashboard.State, error) {
	return s.store.Dispatch(dashboard.PrevStep{})
}

func (s *WizardService) DismissMessage(ctx context.Context) dashboard.State {
	st, _ := s.store.Dispatch(dashboard.DismissMessage{})
	return st
}

// Submit posts the current draft. On success the draft resets, the
// configuration is recorded locally and monitoring starts. On failure the
// draft is kept and an error message is shown.
func (s *WizardService) Submit(ctx context.Context) (dashboard.State, error) {
	st, err := s.store.Dispatch(dashboard.SubmitStarted{})
	if err != nil {
		var ve *validator.ValidationError
		if errors.As(err, &ve) {
			metrics.Submissions.WithLabelValues("rejected").Inc()
		}
		return st, err
	}
	draft := st.Draft

	if err := s.submitter.Submit(ctx, draft); err != nil {
		metrics.Submissions.WithLabelValues("error").Inc()
		s.log.Errorw("config_submit_failed", "err", err, "storage_type", draft.StorageType)
		st, _ = s.store.Dispatch(dashboard.SubmitFailed{Message: client.Describe(err), At: s.now()})
		return st, err
	}

	now := s.now()
	metrics.Submissions.WithLabelValues("ok").Inc()
	s.log.Infow("config_submitted", "storage_type", draft.StorageType, "min_temp", draft.MinTemp, "max_temp", draft.MaxTemp, "max_humidity", draft.MaxHumidity)
	s.record(ctx, draft, now)

	st, _ = s.store.Dispatch(dashboard.SubmitSucceeded{At: now})
	s.poller.Activate()
	return st, nil
}

// record keeps a local copy of an accepted configuration. Failures are
// logged only; the remote write already succeeded.
func (s *WizardService) record(ctx context.Context, d models.ConfigDraft, at time.Time) {
	if err := s.configRepo.Append(ctx, models.SavedConfig{
		Draft:     d,
		CreatedAt: at,
		Status:    models.SavedConfigActive,
	}); err != nil {
		s.log.Errorw("config_history_append_failed", "err", err)
	}

	if err := s.activeRepo.Save(ctx, models.ActiveThresholds{
		ID:          1,
		ProfileName: d.StorageType,
		MinTemp:     parseOptional(d.MinTemp),
		MaxTemp:     parseOptional(d.MaxTemp),
		MaxHumidity: parseOptional(d.MaxHumidity),
		UpdatedAt:   at,
	}); err != nil {
		s.log.Errorw("active_thresholds_save_failed", "err", err)
	}
}

func parseOptional(raw string) *float64 {
	v, ok := validator.ParseNumber(raw)
	if !ok {
		return nil
	}
	return &v
}
