package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AshwinChaudhary21/InterviewChatbot/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const statusInProgress = "in_progress"

// UpsertProfile creates or updates the candidate document for email. The
// profile write sets updated_at on every call and created_at only on first
// insert, and never touches the answers field.
func (s *Store) UpsertProfile(ctx context.Context, email string, profile Profile) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}

	techStack := profile.TechStack
	if techStack == nil {
		techStack = []string{}
	}

	meta := profile.Meta
	if len(meta) == 0 {
		meta = map[string]any{"status": statusInProgress}
	}

	update := bson.M{
		"$set": bson.M{
			"email":      email,
			"name":       strings.TrimSpace(profile.Name),
			"phone":      strings.TrimSpace(profile.Phone),
			"position":   strings.TrimSpace(profile.Position),
			"tech_stack": techStack,
			"meta":       meta,
			"updated_at": s.now().UTC(),
		},
		"$setOnInsert": bson.M{
			"created_at": s.now().UTC(),
		},
	}

	_, err := s.candidates.UpdateOne(ctx, bson.M{"email": email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert candidate %s: %w", email, err)
	}

	return nil
}

// AppendAnswer pushes one answer onto the candidate's answers array, creating
// the document when upsertIfMissing is set. The answer gets a timestamp if it
// does not carry one.
func (s *Store) AppendAnswer(ctx context.Context, email string, answer Answer, upsertIfMissing bool) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}

	if answer.Timestamp.IsZero() {
		answer.Timestamp = s.now().UTC()
	}

	update := bson.M{
		"$push": bson.M{"answers": answer},
		"$set":  bson.M{"updated_at": s.now().UTC()},
	}

	res, err := s.candidates.UpdateOne(ctx, bson.M{"email": email}, update, options.Update().SetUpsert(upsertIfMissing))
	if err != nil {
		return fmt.Errorf("append answer for %s: %w", email, err)
	}

	if !upsertIfMissing && res.MatchedCount == 0 {
		return fmt.Errorf("append answer for %s: %w", email, ErrCandidateNotFound)
	}

	return nil
}

// GetByEmail returns the candidate document or (nil, nil) when absent.
func (s *Store) GetByEmail(ctx context.Context, email string) (*Candidate, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	var candidate Candidate
	err := s.candidates.FindOne(ctx, bson.M{"email": email}).Decode(&candidate)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find candidate %s: %w", email, err)
	}

	return &candidate, nil
}

// InsertCandidate inserts a new document directly, bypassing the upsert path.
// A unique-index violation on email is reported as ErrDuplicateCandidate.
func (s *Store) InsertCandidate(ctx context.Context, candidate *Candidate) (primitive.ObjectID, error) {
	if candidate == nil || strings.TrimSpace(candidate.Email) == "" {
		return primitive.NilObjectID, ErrEmailRequired
	}

	doc := *candidate
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = s.now().UTC()
	}
	if doc.Answers == nil {
		doc.Answers = []Answer{}
	}
	for i := range doc.Answers {
		if doc.Answers[i].Timestamp.IsZero() {
			doc.Answers[i].Timestamp = s.now().UTC()
		}
	}

	res, err := s.candidates.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, fmt.Errorf("insert candidate %s: %w", doc.Email, ErrDuplicateCandidate)
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert candidate %s: %w", doc.Email, err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert candidate %s: unexpected id type %T", doc.Email, res.InsertedID)
	}

	return id, nil
}

// List returns up to limit candidates, most recently created first.
func (s *Store) List(ctx context.Context, limit int64) ([]*Candidate, error) {
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.candidates.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer cursor.Close(ctx)

	var candidates []*Candidate
	if err := cursor.All(ctx, &candidates); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}

	return candidates, nil
}

// GetWithLastAnswers returns the candidate's profile fields plus only the n
// most recent answers, or (nil, nil) when absent.
func (s *Store) GetWithLastAnswers(ctx context.Context, email string, n int) (*Candidate, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if n <= 0 {
		n = 5
	}

	projection := bson.M{
		"answers":    bson.M{"$slice": -n},
		"email":      1,
		"name":       1,
		"phone":      1,
		"position":   1,
		"tech_stack": 1,
		"meta":       1,
		"created_at": 1,
		"updated_at": 1,
	}

	var candidate Candidate
	err := s.candidates.FindOne(ctx, bson.M{"email": email}, options.FindOne().SetProjection(projection)).Decode(&candidate)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find candidate %s: %w", email, err)
	}

	return &candidate, nil
}

// SaveCandidateAndAnswers upserts the candidate profile built from the loose
// form mapping, appends each answer in input order, then re-reads the document
// and returns its id. The composite is not transactional: a failure partway
// leaves earlier appends in place and is reported to the caller wrapped.
func (s *Store) SaveCandidateAndAnswers(ctx context.Context, candidate map[string]any, answers []map[string]any) (string, error) {
	email := utils.FirstNonEmpty(
		stringValue(candidate["email"]),
		stringValue(candidate["Email"]),
		stringValue(candidate["email_address"]),
	)
	if email == "" {
		return "", ErrEmailRequired
	}

	profile := Profile{
		Name:      utils.FirstNonEmpty(stringValue(candidate["name"]), stringValue(candidate["full_name"])),
		Phone:     utils.FirstNonEmpty(stringValue(candidate["phone"]), stringValue(candidate["phone_number"])),
		Position:  utils.FirstNonEmpty(stringValue(candidate["position"]), stringValue(candidate["desired_position"])),
		TechStack: stringSlice(candidate["tech_stack"]),
		Meta:      mapValue(candidate["meta"]),
	}

	if err := s.UpsertProfile(ctx, email, profile); err != nil {
		return "", fmt.Errorf("save candidate: %w", err)
	}

	for i, raw := range answers {
		if err := s.AppendAnswer(ctx, email, normalizeAnswerInput(raw), true); err != nil {
			return "", fmt.Errorf("saved %d of %d answers: %w", i, len(answers), err)
		}
	}

	doc, err := s.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("read back candidate: %w", err)
	}
	if doc == nil {
		return "", fmt.Errorf("candidate %s vanished after save", email)
	}

	s.logger.Debug("saved candidate and answers",
		zap.String("email", email),
		zap.Int("answers", len(answers)),
	)

	return doc.ID.Hex(), nil
}

// normalizeAnswerInput shapes a loose answer mapping into an Answer record,
// accepting the alternate key spellings the form layer produces.
func normalizeAnswerInput(raw map[string]any) Answer {
	answer := Answer{
		Question: utils.FirstNonEmpty(stringValue(raw["question"]), stringValue(raw["q"])),
		Answer:   utils.FirstNonEmpty(stringValue(raw["answer"]), stringValue(raw["response"])),
		Tech:     utils.FirstNonEmpty(stringValue(raw["tech"]), "General"),
	}

	if id := utils.FirstNonEmpty(stringValue(raw["question_id"]), stringValue(raw["qid"])); id != "" {
		answer.QuestionID = &id
	}

	if score, ok := floatValue(raw["score"]); ok {
		answer.Score = &score
	}

	return answer
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func stringSlice(v any) []string {
	switch vs := v.(type) {
	case []string:
		return vs
	case []any:
		out := make([]string, 0, len(vs))
		for _, item := range vs {
			if s := strings.TrimSpace(stringValue(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func mapValue(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func floatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
