package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/BozorlikBot/internal/ledger"
	"github.com/Kerhoff/BozorlikBot/internal/metrics"
	"github.com/Kerhoff/BozorlikBot/internal/models"
	"github.com/Kerhoff/BozorlikBot/internal/session"
	"github.com/Kerhoff/BozorlikBot/internal/shoplist"
)

var (
	// ErrNoList is returned by operations that need a non-empty shopping list.
	ErrNoList = errors.New("no shopping list")
	// ErrClassification wraps a failed list classification call.
	ErrClassification = errors.New("list classification failed")
	// ErrTranscription wraps a failed voice transcription call.
	ErrTranscription = errors.New("voice transcription failed")
	// ErrEmptyMessage is returned for a message without any text, e.g. a silent voice note.
	ErrEmptyMessage = errors.New("empty message")
)

// Oracle extracts structured data from free text.
type Oracle interface {
	Classify(ctx context.Context, text string) (string, error)
	ExtractPurchases(ctx context.Context, text string, candidates []string) ([]models.PurchaseMatch, error)
	ExtractEdits(ctx context.Context, text string) ([]models.Change, error)
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// Service is the conversation layer: it routes each user message to list
// creation, purchase marking or editing, and owns the session lifecycle.
type Service struct {
	sessions *session.Store
	oracle   Oracle
	ledger   *ledger.Ledger
	metrics  *metrics.Metrics
	logger   *logrus.Logger
	now      func() time.Time
}

// New creates a new Service with all required dependencies.
func New(sessions *session.Store, oracle Oracle, l *ledger.Ledger, m *metrics.Metrics, logger *logrus.Logger) *Service {
	return &Service{
		sessions: sessions,
		oracle:   oracle,
		ledger:   l,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// ProcessText handles a text message. Messages of one user are processed one
// at a time.
func (s *Service) ProcessText(ctx context.Context, userID int64, text string) (*Result, error) {
	unlock := s.sessions.Lock(userID)
	defer unlock()

	return s.process(ctx, userID, text)
}

// ProcessVoice transcribes a voice message and handles the transcript like a
// text message. Result.Text carries the transcript unless the action is ActionReply.
func (s *Service) ProcessVoice(ctx context.Context, userID int64, filename string, audio io.Reader) (*Result, error) {
	unlock := s.sessions.Lock(userID)
	defer unlock()

	text, err := s.oracle.Transcribe(ctx, filename, audio)
	if err != nil {
		s.metrics.OracleFailures.WithLabelValues("transcribe").Inc()
		return nil, fmt.Errorf("%w: %w", ErrTranscription, err)
	}
	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"length":  len(text),
	}).Debug("Voice message transcribed")

	res, err := s.process(ctx, userID, text)
	if err != nil {
		return nil, err
	}
	if res.Action != ActionReply {
		res.Text = text
	}
	return res, nil
}

func (s *Service) process(ctx context.Context, userID int64, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	sess, ok := s.sessions.Get(userID)

	var (
		res *Result
		err error
	)
	switch {
	case ok && sess.Editing:
		res = s.applyEdits(ctx, userID, sess, text)
	case ok && !sess.List.IsEmpty() && shoplist.IsPurchaseMessage(text):
		res = s.recordPurchases(ctx, userID, sess, text)
	default:
		res, err = s.createList(ctx, userID, text)
	}
	if err != nil {
		return nil, err
	}

	s.metrics.Messages.WithLabelValues(res.Action.String()).Inc()
	return res, nil
}

// ---------------------------------------------------------------------------
// Editing
// ---------------------------------------------------------------------------

func (s *Service) applyEdits(ctx context.Context, userID int64, sess session.Session, text string) *Result {
	log := s.logger.WithField("user_id", userID)

	changes, err := s.oracle.ExtractEdits(ctx, text)
	if err != nil {
		s.metrics.OracleFailures.WithLabelValues("edits").Inc()
		log.WithError(err).Error("Failed to extract list edits")
		changes = nil
	}
	if len(changes) == 0 {
		return &Result{Action: ActionEditNotUnderstood}
	}

	list := shoplist.ApplyEdits(sess.List, changes)
	s.sessions.Update(userID, func(cur *session.Session) {
		cur.List = list
		cur.Editing = false
	})
	log.WithField("changes", len(changes)).Info("Shopping list edited")

	return &Result{
		Action:            ActionListEdited,
		List:              list,
		Progress:          shoplist.CalculateProgress(list),
		PreviousMessageID: sess.ListMessageID,
	}
}

// ---------------------------------------------------------------------------
// Purchases
// ---------------------------------------------------------------------------

func (s *Service) recordPurchases(ctx context.Context, userID int64, sess session.Session, text string) *Result {
	log := s.logger.WithField("user_id", userID)

	matches, err := s.oracle.ExtractPurchases(ctx, text, sess.List.ProductNames())
	if err != nil {
		s.metrics.OracleFailures.WithLabelValues("purchases").Inc()
		log.WithError(err).Error("Failed to extract purchases")
		matches = nil
	}
	if len(matches) == 0 {
		return &Result{Action: ActionPurchasesNotRecognized}
	}

	list, added := shoplist.MarkPurchased(sess.List, matches)
	progress := shoplist.CalculateProgress(list)
	res := &Result{
		List:              list,
		Progress:          progress,
		AddedCost:         added,
		PreviousMessageID: sess.ListMessageID,
	}

	if !progress.Complete() {
		s.sessions.Update(userID, func(cur *session.Session) {
			cur.List = list
		})
		res.Action = ActionPurchasesRecorded
		log.WithFields(logrus.Fields{
			"percentage": progress.Percentage,
			"added_cost": added,
		}).Info("Purchases recorded")
		return res
	}

	record := ledger.NewRecord(list, progress.TotalCost, s.now())
	s.ledger.AppendRecord(ctx, userID, record)
	s.sessions.Delete(userID)
	s.trackSessions()
	s.metrics.ListsCompleted.Inc()
	log.WithField("total_cost", progress.TotalCost).Info("Shopping list completed")

	res.Action = ActionListCompleted
	res.Record = record
	return res
}

// ---------------------------------------------------------------------------
// New lists
// ---------------------------------------------------------------------------

func (s *Service) createList(ctx context.Context, userID int64, text string) (*Result, error) {
	answer, err := s.oracle.Classify(ctx, text)
	if err != nil {
		s.metrics.OracleFailures.WithLabelValues("classify").Inc()
		return nil, fmt.Errorf("%w: %w", ErrClassification, err)
	}

	if !shoplist.LooksLikeList(answer) {
		return &Result{Action: ActionReply, Text: answer}, nil
	}
	list := shoplist.Parse(shoplist.Repair(answer))
	if list.IsEmpty() {
		s.logger.WithField("user_id", userID).Warn("List-like answer contained no items")
		return &Result{Action: ActionReply, Text: answer}, nil
	}

	res := &Result{
		Action:   ActionListCreated,
		List:     list,
		Progress: shoplist.CalculateProgress(list),
	}
	if prev, ok := s.sessions.Get(userID); ok {
		res.PreviousMessageID = prev.ListMessageID
	}

	s.sessions.Put(userID, session.Session{List: list})
	s.trackSessions()
	s.metrics.ListsCreated.Inc()
	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"items":   list.Len(),
	}).Info("Shopping list created")

	return res, nil
}

// ---------------------------------------------------------------------------
// Session operations
// ---------------------------------------------------------------------------

// CurrentList returns the user's list with its progress, or ErrNoList.
func (s *Service) CurrentList(userID int64) (*Snapshot, error) {
	sess, ok := s.sessions.Get(userID)
	if !ok || sess.List.IsEmpty() {
		return nil, ErrNoList
	}
	return &Snapshot{
		List:          sess.List,
		Progress:      shoplist.CalculateProgress(sess.List),
		Editing:       sess.Editing,
		ListMessageID: sess.ListMessageID,
	}, nil
}

// StartEditing switches the user into edit mode: the next message is read as
// a list of changes.
func (s *Service) StartEditing(userID int64) (models.ShoppingList, error) {
	unlock := s.sessions.Lock(userID)
	defer unlock()

	var list models.ShoppingList
	ok := s.sessions.Update(userID, func(cur *session.Session) {
		if cur.List.IsEmpty() {
			return
		}
		cur.Editing = true
		list = cur.List.Clone()
	})
	if !ok || list.IsEmpty() {
		return models.ShoppingList{}, ErrNoList
	}
	return list, nil
}

// Clear destroys the user's session. It returns the last list message id, 0 if none.
func (s *Service) Clear(userID int64) int {
	unlock := s.sessions.Lock(userID)
	defer unlock()

	sess, ok := s.sessions.Delete(userID)
	if !ok {
		return 0
	}
	s.trackSessions()
	s.logger.WithField("user_id", userID).Info("Shopping list cleared")
	return sess.ListMessageID
}

// SetListMessage remembers the chat message that now renders the user's list.
func (s *Service) SetListMessage(userID int64, messageID int) {
	s.sessions.Update(userID, func(cur *session.Session) {
		cur.ListMessageID = messageID
	})
}

// ---------------------------------------------------------------------------
// Expenses
// ---------------------------------------------------------------------------

// Expenses returns the user's last limit archived lists, oldest first.
func (s *Service) Expenses(ctx context.Context, userID int64, limit int) []*models.PurchaseRecord {
	return s.ledger.History(ctx, userID, limit)
}

// TotalExpenses returns the user's lifetime spend.
func (s *Service) TotalExpenses(ctx context.Context, userID int64) int64 {
	return s.ledger.TotalForUser(ctx, userID)
}

func (s *Service) trackSessions() {
	s.metrics.ActiveSessions.Set(float64(s.sessions.Len()))
}
