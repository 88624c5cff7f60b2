package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/AshwinChaudhary21/InterviewChatbot/internal/session"

	"go.uber.org/zap"
)

type questionView struct {
	Key      string
	Number   int
	Question string
	Focus    string
	Answer   string
}

type techQuestions struct {
	Tech  string
	Items []questionView
}

type pageData struct {
	Step        session.Step
	Candidate   session.CandidateInfo
	TechStack   []string
	Questions   []techQuestions
	ChatHistory []session.Message
	Errors      []string
	SavedID     string
	Terminated  bool
}

func (s *Server) render(w http.ResponseWriter, sess *session.Session, formErrors ...string) {
	data := pageData{
		Step:        sess.Step,
		Candidate:   sess.Candidate,
		TechStack:   sess.TechStack,
		Questions:   orderedQuestions(sess),
		ChatHistory: sess.ChatHistory,
		Errors:      formErrors,
		SavedID:     sess.SavedID,
		Terminated:  sess.Terminated,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.Error("render page", zap.Error(err))
	}
}

// orderedQuestions flattens the question set following the declared tech
// stack order, so rendering is stable across requests.
func orderedQuestions(sess *session.Session) []techQuestions {
	out := make([]techQuestions, 0, len(sess.Questions))
	for _, tech := range sess.TechStack {
		items, ok := sess.Questions[tech]
		if !ok {
			continue
		}

		view := techQuestions{Tech: tech}
		for idx, item := range items {
			key := session.QuestionKey(tech, idx+1)
			view.Items = append(view.Items, questionView{
				Key:      key,
				Number:   idx + 1,
				Question: item.Question,
				Focus:    item.IdealAnswerFocus,
				Answer:   sess.Answers[key],
			})
		}
		out = append(out, view)
	}
	return out
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)
	s.render(w, sess)
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)
	if sess.Step != session.StepCollectInfo {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	fullName := strings.TrimSpace(r.FormValue("full_name"))
	email := strings.TrimSpace(r.FormValue("email"))
	phone := strings.TrimSpace(r.FormValue("phone"))
	positions := session.ParseTechInput(r.FormValue("desired_positions"))
	location := strings.TrimSpace(r.FormValue("location"))

	yearsExp, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("years_exp")))

	var formErrors []string
	if fullName == "" {
		formErrors = append(formErrors, "Full name required.")
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		formErrors = append(formErrors, "Please enter a valid-looking email.")
	}
	if countDigits(phone) < 7 {
		formErrors = append(formErrors, "Please enter a valid phone number.")
	}
	if len(positions) == 0 {
		formErrors = append(formErrors, "List at least one desired position.")
	}
	if location == "" {
		formErrors = append(formErrors, "Provide your current location.")
	}

	if len(formErrors) > 0 {
		s.render(w, sess, formErrors...)
		return
	}

	sess.Candidate = session.CandidateInfo{
		FullName:         fullName,
		Email:            email,
		Phone:            phone,
		YearsExp:         yearsExp,
		DesiredPositions: positions,
		Location:         location,
	}

	firstName := strings.Fields(fullName)[0]
	sess.AddMessage("bot", fmt.Sprintf("Thanks, %s. Candidate details saved. Next, the tech stack.", firstName))

	if err := sess.Advance(session.StepTechStack); err != nil {
		s.logger.Warn("advance to tech_stack", zap.Error(err))
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleTechStack(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)
	if sess.Step != session.StepTechStack {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	languages := session.ParseTechInput(r.FormValue("languages"))
	frameworks := session.ParseTechInput(r.FormValue("frameworks"))
	databases := session.ParseTechInput(r.FormValue("databases"))
	tools := session.ParseTechInput(r.FormValue("tools"))

	techStack := make([]string, 0, len(languages)+len(frameworks)+len(databases)+len(tools))
	techStack = append(techStack, languages...)
	techStack = append(techStack, frameworks...)
	techStack = append(techStack, databases...)
	techStack = append(techStack, tools...)

	if len(techStack) == 0 {
		s.render(w, sess, "Please enter at least one technology.")
		return
	}

	sess.Candidate.Languages = languages
	sess.Candidate.Frameworks = frameworks
	sess.Candidate.Databases = databases
	sess.Candidate.Tools = tools
	sess.TechStack = techStack

	sess.AddMessage("bot", "Tech stack recorded: "+strings.Join(preview(techStack, 8), ", "))

	set, err := s.questions.Generate(r.Context(), techStack)
	if err != nil {
		s.logger.Error("generate questions",
			zap.Strings("techs", techStack),
			zap.Error(err),
		)
		s.render(w, sess, fmt.Sprintf("Failed to generate questions: %v", err))
		return
	}

	sess.Questions = set

	if err := sess.Advance(session.StepShowQuestions); err != nil {
		s.logger.Warn("advance to show_questions", zap.Error(err))
	}

	sess.AddMessage("bot", "Questions generated. Answer them below.")

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAnswers(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)
	if sess.Step != session.StepShowQuestions {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	candidate := map[string]any{
		"full_name":  sess.Candidate.FullName,
		"email":      sess.Candidate.Email,
		"phone":      sess.Candidate.Phone,
		"position":   strings.Join(sess.Candidate.DesiredPositions, ", "),
		"tech_stack": sess.TechStack,
	}

	var answers []map[string]any
	for _, tech := range sess.TechStack {
		items, ok := sess.Questions[tech]
		if !ok {
			continue
		}
		for idx, item := range items {
			key := session.QuestionKey(tech, idx+1)
			text := r.FormValue(key)
			sess.Answers[key] = text

			answers = append(answers, map[string]any{
				"question_id": key,
				"tech":        tech,
				"question":    item.Question,
				"answer":      text,
			})
		}
	}

	candidateID, err := s.store.SaveCandidateAndAnswers(r.Context(), candidate, answers)
	if err != nil {
		s.logger.Error("save candidate and answers",
			zap.String("email", sess.Candidate.Email),
			zap.Error(err),
		)
		s.render(w, sess, fmt.Sprintf("Failed to save answers: %v", err))
		return
	}

	sess.SavedID = candidateID
	sess.Terminated = true
	sess.AddMessage("bot", "Thank you. Your answers have been saved.")

	if err := sess.Advance(session.StepFinished); err != nil {
		s.logger.Warn("advance to finished", zap.Error(err))
	}

	s.logger.Info("candidate screening saved",
		zap.String("candidate_id", candidateID),
		zap.Int("answers", len(answers)),
	)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)

	cmd := strings.TrimSpace(r.FormValue("command"))
	if cmd == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sess.AddMessage("user", cmd)

	switch strings.ToLower(cmd) {
	case "exit", "quit", "bye":
		sess.AddMessage("bot", "Received exit command. Ending session. Good luck!")
		sess.Terminated = true
	default:
		sess.AddMessage("bot", "Quick commands supported: exit.")
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.sessions.Reset(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:   sessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func preview(items []string, limit int) []string {
	if len(items) <= limit {
		return items
	}
	return items[:limit]
}
