package app

import (
	"context"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pinball-hwbind/internal/core"
	"pinball-hwbind/internal/types"
)

const DefaultWatchInterval = time.Second

// Watch resolves the configuration once, then polls the config and catalog
// files and re-resolves on every change. A new set is swapped in only when
// it is fully valid; otherwise the active set stays and every defect is
// logged. Watch returns when ctx is done.
func (s Service) Watch(ctx context.Context, req WatchRequest) (WatchResult, error) {
	if s.Watcher == nil {
		return WatchResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no file watcher configured")
	}
	interval := req.Interval
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	holder := &core.BindingHolder{}
	result := WatchResult{}
	outcome, err := s.resolvePass(ctx, req.DocumentPath, req.Catalogs, req.Platform)
	if err != nil {
		return result, err
	}
	if err := outcome.Err(); err != nil {
		logViolations(outcome.Violations)
		return result, err
	}
	if err := s.activate(ctx, holder, req, outcome.Bindings); err != nil {
		return result, err
	}
	result.ActiveID = outcome.Bindings.ID
	result.Swaps++

	if err := s.Watcher.Track(append([]string{req.DocumentPath}, req.Catalogs...)...); err != nil {
		return result, err
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return result, nil
		case <-ticker.C:
		}
		changed, err := s.Watcher.Check()
		if err != nil {
			log.Warn().Err(err).Msg("watch check failed")
			continue
		}
		if len(changed) == 0 {
			continue
		}
		log.Info().Strs("files", changed).Msg("configuration changed")
		result.Reloads++
		if s.reloadOnce(ctx, holder, req) {
			result.Swaps++
		}
		if active, ok := holder.Active(); ok {
			result.ActiveID = active.ID
		}
	}
}

// reloadOnce re-resolves off to the side and reports whether the result
// replaced the active set.
func (s Service) reloadOnce(ctx context.Context, holder *core.BindingHolder, req WatchRequest) bool {
	outcome, err := s.resolvePass(ctx, req.DocumentPath, req.Catalogs, req.Platform)
	if err != nil {
		log.Error().Err(err).Msg("reload failed, keeping active bindings")
		s.Telemetry.RecordReload(false)
		return false
	}
	if len(outcome.Violations) > 0 {
		logViolations(outcome.Violations)
		log.Error().Int("violations", len(outcome.Violations)).Msg("reload rejected, keeping active bindings")
		s.Telemetry.RecordReload(false)
		return false
	}
	if err := s.activate(ctx, holder, req, outcome.Bindings); err != nil {
		log.Error().Err(err).Msg("reload could not be activated")
		s.Telemetry.RecordReload(false)
		return false
	}
	s.Telemetry.RecordReload(true)
	return true
}

func (s Service) activate(ctx context.Context, holder *core.BindingHolder, req WatchRequest, set types.BindingSet) error {
	if req.Apply {
		if s.Sink == nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("no driver sink configured")
		}
		if err := s.Sink.Submit(ctx, set); err != nil {
			return err
		}
	}
	previous, err := holder.Swap(set)
	if err != nil {
		return err
	}
	log.Info().Str("id", set.ID).Str("previous", previous.ID).Int("devices", len(set.Devices)).Msg("binding set active")
	if req.OnSwap != nil {
		req.OnSwap(set)
	}
	return nil
}

func logViolations(violations []types.Violation) {
	for _, violation := range violations {
		log.Error().
			Str("kind", string(violation.Kind())).
			Str("device", violation.Device()).
			Msg(violation.Error())
	}
}
