package session

import (
	"fmt"
	"sync"

	"github.com/AshwinChaudhary21/InterviewChatbot/internal/questions"

	"github.com/google/uuid"
)

// Step is one stage of the linear screening flow.
type Step string

const (
	StepCollectInfo   Step = "collect_info"
	StepTechStack     Step = "tech_stack"
	StepShowQuestions Step = "show_questions"
	StepFinished      Step = "finished"
)

// nextStep is the whole flow: each step has exactly one successor.
var nextStep = map[Step]Step{
	StepCollectInfo:   StepTechStack,
	StepTechStack:     StepShowQuestions,
	StepShowQuestions: StepFinished,
}

// Next returns the successor step, or false from the terminal step.
func (s Step) Next() (Step, bool) {
	next, ok := nextStep[s]
	return next, ok
}

func (s Step) Valid() bool {
	if s == StepFinished {
		return true
	}
	_, ok := nextStep[s]
	return ok
}

// Message is one line of the visible chat transcript.
type Message struct {
	Speaker string
	Text    string
}

// CandidateInfo holds the details collected by the first form.
type CandidateInfo struct {
	FullName         string
	Email            string
	Phone            string
	YearsExp         int
	DesiredPositions []string
	Location         string

	Languages  []string
	Frameworks []string
	Databases  []string
	Tools      []string
}

// Session tracks one candidate's progress through the flow. The tech stack is
// an explicit per-session field so concurrent sessions cannot leak into each
// other.
type Session struct {
	ID          string
	Step        Step
	Candidate   CandidateInfo
	TechStack   []string
	Questions   questions.Set
	Answers     map[string]string
	ChatHistory []Message
	Terminated  bool
	SavedID     string
}

// Advance moves the session to the given step, refusing to skip or rewind.
func (s *Session) Advance(to Step) error {
	next, ok := s.Step.Next()
	if !ok || next != to {
		return fmt.Errorf("cannot advance from %q to %q", s.Step, to)
	}
	s.Step = to
	return nil
}

// AddMessage appends a line to the chat transcript.
func (s *Session) AddMessage(speaker, text string) {
	s.ChatHistory = append(s.ChatHistory, Message{Speaker: speaker, Text: text})
}

// QuestionKey identifies a single question within the session's answer map.
func QuestionKey(tech string, idx int) string {
	return fmt.Sprintf("%s__q%d", tech, idx)
}

// Manager owns all live sessions, keyed by an opaque id carried in a cookie.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create starts a fresh session at the first step.
func (m *Manager) Create() *Session {
	s := &Session{
		ID:      uuid.NewString(),
		Step:    StepCollectInfo,
		Answers: make(map[string]string),
	}
	s.AddMessage("bot", "Hello! Please provide your details using the form.")

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s

	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Reset discards the session so the next request starts over.
func (m *Manager) Reset(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
