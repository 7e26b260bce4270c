package bot

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ytget/tg-media-bot/internal/callback"
	"github.com/ytget/tg-media-bot/internal/gateway"
	"github.com/ytget/tg-media-bot/internal/model"
	"github.com/ytget/tg-media-bot/internal/selection"
	"github.com/ytget/tg-media-bot/internal/session"
)

// Default collaborator timeouts
const (
	DefaultProbeTimeout = 90 * time.Second
	DefaultFetchTimeout = 30 * time.Minute
)

// Working identifier limits
const (
	workSuffixLen  = 8
	maxWorkBaseLen = 48
)

// Options configures workflow timeouts.
type Options struct {
	ProbeTimeout time.Duration
	FetchTimeout time.Duration
}

// Service runs one workflow instance per inbound event. Instances for
// different media interleave freely; the only shared state is the session
// store and the in-flight fetch guard.
type Service struct {
	messenger gateway.Messenger
	extractor Extractor
	sessions  *session.Store
	logger    zerolog.Logger

	probeTimeout time.Duration
	fetchTimeout time.Duration

	inflightMu sync.Mutex
	inflight   map[string]struct{}

	wg sync.WaitGroup
}

// NewService creates the workflow service.
func NewService(messenger gateway.Messenger, extractor Extractor, sessions *session.Store, opts Options, logger zerolog.Logger) *Service {
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = DefaultProbeTimeout
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	return &Service{
		messenger:    messenger,
		extractor:    extractor,
		sessions:     sessions,
		logger:       logger,
		probeTimeout: opts.ProbeTimeout,
		fetchTimeout: opts.FetchTimeout,
		inflight:     make(map[string]struct{}),
	}
}

// Run consumes updates until the channel closes, then waits for in-flight
// workflow instances to finish.
func (s *Service) Run(ctx context.Context, updates <-chan gateway.Update) {
	for upd := range updates {
		s.Dispatch(ctx, upd)
	}
	s.wg.Wait()
}

// Dispatch handles one update on its own goroutine so a slow fetch never
// delays an unrelated probe.
func (s *Service) Dispatch(ctx context.Context, upd gateway.Update) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		switch {
		case upd.Message != nil:
			s.handleMessage(ctx, upd.Message)
		case upd.Callback != nil:
			s.handleCallback(ctx, upd.Callback)
		}
	}()
}

// handleMessage drives Idle → Probing → OffersPresented (or Errored).
func (s *Service) handleMessage(ctx context.Context, msg *gateway.TextMessage) {
	if msg.Command == "start" {
		if _, err := s.messenger.SendText(msg.ChatID, msgGreeting); err != nil {
			s.logger.Warn().Err(err).Int64("chat", msg.ChatID).Msg("greeting send failed")
		}
		return
	}
	if msg.Command != "" {
		return
	}
	if !isLink(msg.Text) {
		if _, err := s.messenger.SendText(msg.ChatID, msgSendLink); err != nil {
			s.logger.Warn().Err(err).Int64("chat", msg.ChatID).Msg("hint send failed")
		}
		return
	}

	req := s.newRequest(msg.ChatID, msg.Text)

	ack, err := s.messenger.SendText(msg.ChatID, msgChecking)
	if err != nil {
		req.logger.Error().Err(err).Msg("cannot send acknowledgment")
		return
	}
	req.transition(model.StatusProbing)

	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()

	result, err := s.extractor.Probe(probeCtx, msg.Text)
	if err != nil {
		req.logger.Error().Err(err).Msg("probe failed")
		s.edit(req, ack, msgProbeFailed)
		req.transition(model.StatusErrored)
		return
	}

	offers := selection.Offers(result.Candidates)
	if len(offers) == 0 {
		req.logger.Info().Str("media", result.MediaID).Err(ErrNoOffers).Msg("nothing to offer")
		s.edit(req, ack, msgNoFormats)
		req.transition(model.StatusErrored)
		return
	}

	buttons, err := offerButtons(offers, result.MediaID)
	if err != nil {
		req.logger.Error().Err(err).Str("media", result.MediaID).Msg("token encode failed")
		s.edit(req, ack, msgProbeFailed)
		req.transition(model.StatusErrored)
		return
	}

	// The offer list goes out as a fresh message because it may be a photo;
	// the plain-text acknowledgment cannot be edited into one.
	if err := s.messenger.DeleteMessage(ack); err != nil {
		req.logger.Warn().Err(err).Msg("acknowledgment delete failed")
	}
	if _, err := s.messenger.SendOffers(msg.ChatID, result.ThumbnailURL, offerCaption(result.Title), buttons); err != nil {
		req.logger.Error().Err(err).Str("media", result.MediaID).Msg("offer send failed")
		req.transition(model.StatusErrored)
		return
	}

	// The record exists only once its offers are actually on screen; a
	// failed render must not leave a selectable session behind.
	s.sessions.Put(result.MediaID, model.MediaRequest{
		MediaID:      result.MediaID,
		Title:        result.Title,
		SourceURL:    msg.Text,
		ThumbnailURL: result.ThumbnailURL,
	})

	req.transition(model.StatusOffersPresented)
	req.logger.Info().Str("media", result.MediaID).Int("offers", len(offers)).Msg("offers presented")
}

// handleCallback drives OffersPresented → Fulfilling → Done (or Errored).
func (s *Service) handleCallback(ctx context.Context, ev *gateway.CallbackEvent) {
	tok, err := callback.Decode(ev.Data)
	if err != nil {
		s.logger.Warn().Err(err).Int64("chat", ev.ChatID).Msg("undecodable callback")
		if ackErr := s.messenger.AnswerCallback(ev.CallbackID, ""); ackErr != nil {
			s.logger.Warn().Err(ackErr).Msg("callback ack failed")
		}
		return
	}

	req := s.newRequest(ev.ChatID, tok.MediaID)
	req.transition(model.StatusOffersPresented)

	if !s.acquire(tok.Key()) {
		req.logger.Debug().Err(ErrFetchInFlight).Str("key", tok.Key()).Msg("duplicate tap dropped")
		if ackErr := s.messenger.AnswerCallback(ev.CallbackID, msgDuplicate); ackErr != nil {
			req.logger.Warn().Err(ackErr).Msg("callback ack failed")
		}
		return
	}
	defer s.release(tok.Key())

	if err := s.messenger.AnswerCallback(ev.CallbackID, ""); err != nil {
		req.logger.Warn().Err(err).Msg("callback ack failed")
	}

	rec, ok := s.sessions.Get(tok.MediaID)
	if !ok {
		// Expected after restarts or long idle gaps, not an error.
		req.logger.Debug().Err(ErrSessionMiss).Msg("selection without session")
		s.edit(req, ev.Message, msgSessionMiss)
		req.transition(model.StatusErrored)
		return
	}

	req.transition(model.StatusFulfilling)
	s.edit(req, ev.Message, msgDownloading)

	spec := model.FetchSpec{
		Kind:        tok.Kind,
		ResolutionP: tok.ResolutionP,
		SourceURL:   rec.SourceURL,
		WorkID:      workingID(tok.MediaID),
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	path, err := s.extractor.Fetch(fetchCtx, spec)
	defer s.removeArtifact(req, path)
	if err != nil {
		req.logger.Error().Err(err).Str("work_id", spec.WorkID).Msg("fetch failed")
		s.edit(req, ev.Message, fetchFailedText(err.Error()))
		req.transition(model.StatusErrored)
		return
	}

	if err := s.deliver(ev.ChatID, rec, tok.Kind, path); err != nil {
		req.logger.Error().Err(err).Str("work_id", spec.WorkID).Msg("delivery failed")
		s.edit(req, ev.Message, fetchFailedText(err.Error()))
		req.transition(model.StatusErrored)
		return
	}

	s.edit(req, ev.Message, msgDone)
	req.transition(model.StatusDone)
	req.logger.Info().Str("work_id", spec.WorkID).Str("kind", string(tok.Kind)).Msg("delivered")
}

// deliver streams the artifact through the gateway with a title-derived
// filename.
func (s *Service) deliver(chatID int64, rec model.MediaRequest, kind model.MediaKind, path string) error {
	filename := model.Filename(rec.Title, kind)
	if kind == model.KindAudio {
		return s.messenger.SendAudio(chatID, path, rec.Title, filename)
	}
	return s.messenger.SendVideo(chatID, path, filename)
}

// removeArtifact deletes the transient local artifact. Missing files are
// fine: a failed fetch may have produced nothing.
func (s *Service) removeArtifact(req *request, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		req.logger.Warn().Err(err).Str("path", path).Msg("artifact cleanup failed")
	}
}

// acquire claims the in-flight slot for one (media, kind, resolution) key.
func (s *Service) acquire(key string) bool {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *Service) release(key string) {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()
	delete(s.inflight, key)
}

// edit updates the user-visible status message, logging failures.
func (s *Service) edit(req *request, ref gateway.MessageRef, text string) {
	if err := s.messenger.EditText(ref, text); err != nil {
		req.logger.Warn().Err(err).Msg("status edit failed")
	}
}

// request carries the per-instance state machine status and a scoped logger.
type request struct {
	status model.RequestStatus
	logger zerolog.Logger
}

func (s *Service) newRequest(chatID int64, subject string) *request {
	return &request{
		status: model.StatusIdle,
		logger: s.logger.With().Int64("chat", chatID).Str("subject", subject).Logger(),
	}
}

func (r *request) transition(to model.RequestStatus) {
	if r.status.IsTerminal() {
		return
	}
	r.logger.Debug().Str("from", r.status.String()).Str("to", to.String()).Msg("transition")
	r.status = to
}

// offerButtons encodes one selectable control per offer.
func offerButtons(offers []model.FormatOffer, mediaID string) ([]gateway.Button, error) {
	buttons := make([]gateway.Button, 0, len(offers))
	for _, offer := range offers {
		data, err := callback.Encode(callback.Token{
			Action:      callback.ActionDownload,
			Kind:        offer.Kind,
			ResolutionP: offer.ResolutionP,
			MediaID:     mediaID,
		})
		if err != nil {
			return nil, err
		}
		buttons = append(buttons, gateway.Button{Label: offerLabel(offer), Data: data})
	}
	return buttons, nil
}

// workingID builds a collision-free working identifier: the media id keeps
// artifacts attributable in logs, the uuid suffix keeps two concurrent
// fetches for the same selection on separate paths.
func workingID(mediaID string) string {
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, mediaID)
	if len(base) > maxWorkBaseLen {
		base = base[:maxWorkBaseLen]
	}
	if base == "" {
		base = "media"
	}
	return base + "-" + uuid.NewString()[:workSuffixLen]
}

// isLink reports whether text looks like a probeable URL.
func isLink(text string) bool {
	text = strings.TrimSpace(text)
	return strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://")
}
