package practice

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drill/internal/exercise"
	prac "github.com/abhisek/drill/internal/practice"
	"github.com/abhisek/drill/internal/progress"
	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/screens/summary"
	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/ui/components"
	"github.com/abhisek/drill/internal/ui/layout"
)

type phase int

const (
	phaseAnswer phase = iota
	phaseSelfGrade
	phaseFeedback
	phaseQuitConfirm
	phaseEnding
)

// PracticeScreen runs one practice session over an exercise.
type PracticeScreen struct {
	env   screen.Env
	state session.SessionState

	phase     phase
	prevPhase phase // restored when the quit dialog is dismissed

	question     prac.Question
	input        components.TextInput
	choice       components.MultiChoice
	mcActive     bool
	gotIt        bool // self-grade selection
	result       progress.Result
	saveErr      string
	errMsg       string
	exerciseName string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New starts a session over ex. An exercise without items yields a screen
// that only shows the reason and returns on any key.
func New(env screen.Env, ex *exercise.Exercise) *PracticeScreen {
	s := &PracticeScreen{env: env, exerciseName: ex.Name}

	state, err := session.Start(ex, env.SessionSize, env.Clock(), env.Rand)
	if err != nil {
		if errors.Is(err, session.ErrEmptyPool) {
			s.errMsg = "This exercise has no items yet. Add some with `drill item add` or `drill import`."
		} else {
			s.errMsg = err.Error()
		}
		return s
	}
	s.state = state
	s.loadQuestion()
	return s
}

func (s *PracticeScreen) Init() tea.Cmd {
	if s.errMsg != "" {
		return nil
	}
	rec, st := s.env.Recorder, s.state
	return tea.Batch(
		s.input.Init(),
		func() tea.Msg {
			rec.Begin(context.Background(), st)
			return nil
		},
	)
}

func (s *PracticeScreen) Title() string {
	return "Practice: " + s.exerciseName
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.phase == phaseQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case s.phase == phaseSelfGrade:
		return []layout.KeyHint{
			{Key: "Y", Description: "Got it"},
			{Key: "N", Description: "Missed it"},
			{Key: "←→ Enter", Description: "Choose"},
		}
	case s.phase == phaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case s.mcActive:
		return []layout.KeyHint{
			{Key: "1-9", Description: "Choose"},
			{Key: "↑↓ Enter", Description: "Select"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.Err != nil {
			s.saveErr = msg.Err.Error()
		}
		return s, nil

	case sessionEndMsg:
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(msg.Summary)}
		}

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseAnswer && !s.mcActive {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PracticeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch s.phase {
	case phaseEnding:
		return s, nil

	case phaseQuitConfirm:
		switch key {
		case "y", "Y":
			return s.end()
		case "n", "N", "esc":
			s.phase = s.prevPhase
		}
		return s, nil

	case phaseFeedback:
		return s.next()

	case phaseSelfGrade:
		switch key {
		case "y", "Y":
			s.gotIt = true
			return s.submit()
		case "n", "N":
			s.gotIt = false
			return s.submit()
		case "left", "right", "tab":
			s.gotIt = !s.gotIt
		case "enter":
			return s.submit()
		case "esc":
			s.confirmQuit()
		}
		return s, nil
	}

	// phaseAnswer
	switch key {
	case "esc":
		s.confirmQuit()
		return s, nil
	case "enter":
		if s.mcActive {
			break
		}
		if s.question.SelfGraded() {
			s.phase = phaseSelfGrade
			s.gotIt = true
			return s, nil
		}
		return s.submit()
	}

	if s.mcActive {
		s.choice, _ = s.choice.Update(msg)
		if s.choice.Submitted {
			return s.submit()
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *PracticeScreen) confirmQuit() {
	s.prevPhase = s.phase
	s.phase = phaseQuitConfirm
}

// submit grades the current answer and saves in the background.
func (s *PracticeScreen) submit() (screen.Screen, tea.Cmd) {
	raw := s.input.Value()
	resp := s.question.Response(raw, s.gotIt)
	if s.mcActive {
		raw = s.choice.Value()
		resp = s.question.Selected(raw)
	}
	if raw == "" && !s.question.SelfGraded() {
		return s, nil
	}

	s.state, s.result = session.Submit(s.state, resp, s.env.Clock())
	if s.mcActive {
		s.choice.Reveal(s.result.CanonicalAnswer)
	} else if s.result.Graded {
		s.input.Submit(s.result.Correct)
	}
	s.phase = phaseFeedback

	cp, err := s.env.Recorder.Capture(s.state)
	if err != nil {
		s.saveErr = err.Error()
		return s, nil
	}
	rec := s.env.Recorder
	return s, func() tea.Msg {
		return savedMsg{Err: rec.Write(context.Background(), cp)}
	}
}

// next advances past the current item or ends the session.
func (s *PracticeScreen) next() (screen.Screen, tea.Cmd) {
	var more bool
	s.state, more = session.Advance(s.state, s.env.Clock())
	if !more {
		return s.end()
	}
	s.loadQuestion()
	return s, s.input.Init()
}

func (s *PracticeScreen) end() (screen.Screen, tea.Cmd) {
	s.phase = phaseEnding
	rec, st, now := s.env.Recorder, s.state, s.env.Clock()
	return s, func() tea.Msg {
		return sessionEndMsg{Summary: rec.Finish(context.Background(), st, now)}
	}
}

func (s *PracticeScreen) loadQuestion() {
	it := session.CurrentItem(s.state)
	if it == nil {
		return
	}
	s.question = prac.Present(it, s.env.Rand)
	s.phase = phaseAnswer
	s.result = progress.Result{}
	s.gotIt = false

	s.mcActive = it.Kind == exercise.KindMultipleChoice
	if s.mcActive {
		s.choice = components.NewMultiChoice(s.question.Choices)
	}
	placeholder := "Type your answer..."
	if s.question.Parts > 1 {
		placeholder = "first | second | ..."
	}
	s.input = components.NewTextInput(placeholder, 0, 60)
}
