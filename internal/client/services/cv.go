package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/atscv/internal/client/models"
	"github.com/dmitrijs2005/atscv/internal/common"
	"github.com/dmitrijs2005/atscv/internal/logging"
)

var (
	ErrProfileRequired = errors.New("profile not set up: add your name and summary in settings before generating a CV")
	ErrStaleResult     = errors.New("the session changed while the request was running; result discarded")
)

// Score bounds of RandomScore.
const (
	MinRandomScore = 75
	MaxRandomScore = 99
)

// Generator is the AI side of CV work. *generation.Protocol implements it.
type Generator interface {
	ExtractProfile(ctx context.Context, cvText string) (models.Profile, error)
	GenerateDocument(ctx context.Context, profile models.Profile, jobDescription string) (string, error)
	ReviseDocument(ctx context.Context, originalBody, changeRequest string, profile models.Profile, jobDescription string) (string, error)
}

// Scorer returns the ATS score attached to a new document.
type Scorer func() int

// RandomScore is a placeholder score uniform in [MinRandomScore, MaxRandomScore].
func RandomScore() int {
	return MinRandomScore + rand.IntN(MaxRandomScore-MinRandomScore+1)
}

// CVService composes the generator with the session: it validates
// preconditions, calls the model and persists the result for the identity
// that started the request.
type CVService interface {
	AnalyzeCV(ctx context.Context, cvText string) (models.Profile, error)
	GenerateCV(ctx context.Context, jobDescription string) (models.Document, error)
	ReviseCV(ctx context.Context, id, changeRequest string) (models.Document, error)
}

type cvService struct {
	gen     Generator
	session SessionService
	logger  logging.Logger

	score Scorer
	newID func() string
	now   func() time.Time
}

type CVOption func(*cvService)

func WithScorer(fn Scorer) CVOption {
	return func(s *cvService) { s.score = fn }
}

func WithIDGenerator(fn func() string) CVOption {
	return func(s *cvService) { s.newID = fn }
}

func WithNow(fn func() time.Time) CVOption {
	return func(s *cvService) { s.now = fn }
}

func WithCVLogger(l logging.Logger) CVOption {
	return func(s *cvService) { s.logger = l }
}

func NewCVService(gen Generator, session SessionService, opts ...CVOption) CVService {
	s := &cvService{
		gen:     gen,
		session: session,
		logger:  logging.Nop(),
		score:   RandomScore,
		newID:   uuid.NewString,
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// AnalyzeCV extracts a profile from pasted CV text and gives every list
// entry an id. Nothing is saved; the caller reviews and saves it.
func (s *cvService) AnalyzeCV(ctx context.Context, cvText string) (models.Profile, error) {
	p, err := s.gen.ExtractProfile(ctx, cvText)
	if err != nil {
		return models.Profile{}, err
	}
	p.AssignIDs(s.newID)
	return p, nil
}

func (s *cvService) GenerateCV(ctx context.Context, jobDescription string) (models.Document, error) {
	snap := s.session.Snapshot()
	if !snap.SignedIn() {
		return models.Document{}, common.ErrNotSignedIn
	}
	if snap.Profile == nil || !snap.Profile.IsConfigured() {
		return models.Document{}, ErrProfileRequired
	}

	body, err := s.gen.GenerateDocument(ctx, *snap.Profile, jobDescription)
	if err != nil {
		return models.Document{}, err
	}

	doc := models.Document{
		ID:             s.newID(),
		JobDescription: jobDescription,
		Body:           body,
		ATSScore:       clampScore(s.score()),
		GeneratedAt:    s.now().UTC(),
	}
	if err := s.session.AddDocument(ctx, snap.Epoch, doc); err != nil {
		if errors.Is(err, ErrStaleResult) {
			s.logger.Warn(ctx, "discarding generated CV", "id", doc.ID)
		}
		return models.Document{}, err
	}
	s.logger.Info(ctx, "cv generated", "id", doc.ID, "score", doc.ATSScore)
	return doc, nil
}

// ReviseCV rewrites document id per changeRequest. The id and job
// description stay; body and timestamp are replaced.
func (s *cvService) ReviseCV(ctx context.Context, id, changeRequest string) (models.Document, error) {
	snap := s.session.Snapshot()
	if !snap.SignedIn() {
		return models.Document{}, common.ErrNotSignedIn
	}
	doc, ok := snap.Document(id)
	if !ok {
		return models.Document{}, common.ErrorNotFound
	}
	profile := models.NewProfile()
	if snap.Profile != nil {
		profile = *snap.Profile
	}

	body, err := s.gen.ReviseDocument(ctx, doc.Body, changeRequest, profile, doc.JobDescription)
	if err != nil {
		return models.Document{}, err
	}

	revised := doc.Revised(body, s.now().UTC())
	if err := s.session.ReplaceDocument(ctx, snap.Epoch, revised); err != nil {
		if errors.Is(err, ErrStaleResult) {
			s.logger.Warn(ctx, "discarding revised CV", "id", doc.ID)
		}
		return models.Document{}, err
	}
	s.logger.Info(ctx, "cv revised", "id", doc.ID)
	return revised, nil
}

func clampScore(v int) int {
	return min(max(v, models.MinATSScore), models.MaxATSScore)
}
