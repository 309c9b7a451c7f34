package play

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindupgrade/internal/exercise"
	"github.com/abhisek/mindupgrade/internal/ui/components"
	"github.com/abhisek/mindupgrade/internal/ui/theme"
)

// prompter is implemented by the free-text variants.
type prompter interface{ Prompt() string }

// wordGoal is implemented by the variants gated on a word count.
type wordGoal interface {
	Words() int
	MinWords() int
}

func (s *PlayScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.variant == nil {
		msg := components.Notice("Couldn't open this task: "+s.openErr.Error(), true)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	var sections []string
	if s.Celebrating() {
		sections = append(sections, renderCelebration(cw))
	}

	tag := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(s.variant.Kind().Tag())
	sections = append(sections, s.id.Icon()+"  "+tag)

	if s.variant.Phase() == exercise.PhaseResult {
		sections = append(sections, s.renderResult(cw))
	} else {
		sections = append(sections, s.renderBody(cw))
	}

	if s.notice != "" {
		sections = append(sections, components.Notice(s.notice, true))
	}

	content := lipgloss.NewStyle().Width(cw).Render(strings.Join(sections, "\n\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *PlayScreen) renderBody(cw int) string {
	now := s.now()
	v := s.variant

	if st, ok := v.(exercise.Studier); ok && v.Phase() == exercise.PhaseStudy {
		return renderStudy(v, st.StudyRemaining(now), cw)
	}

	switch x := v.(type) {
	case *exercise.ReactionTap:
		return renderReaction(x)
	case *exercise.HoldBeat:
		return renderHold(x, now, cw)
	case *exercise.Delayed:
		return renderDelayed(x, now)
	}

	var parts []string
	if q := question(v); q != "" {
		parts = append(parts, q)
	}
	if c, ok := v.(exercise.Chooser); ok {
		parts = append(parts, s.renderChoices(c))
	}
	for _, in := range s.inputs {
		parts = append(parts, in.View())
	}
	if g, ok := v.(wordGoal); ok {
		parts = append(parts, renderWordGoal(g.Words(), g.MinWords(), cw))
	}
	if h, ok := v.(exercise.Hinter); ok && h.HintShown() && h.Hint() != "" {
		parts = append(parts, theme.Hint.Render("Hint: "+h.Hint()))
	}
	return strings.Join(parts, "\n\n")
}

// question returns the text the user answers, for variants that have one.
func question(v exercise.Variant) string {
	body := theme.Body
	switch x := v.(type) {
	case *exercise.WordRecall:
		return body.Render("Type the words back in the order you saw them.")
	case *exercise.NumberSequence:
		return body.Render("Type the sequence you memorised.")
	case *exercise.SymbolPattern:
		return body.Render("Select every symbol that appeared in the grid.")
	case *exercise.Typing:
		return renderPassage(x.Passage(), x.Typed())
	case *exercise.MentalMath:
		lines := x.Chain().Lines()
		return body.Render("Work it out in your head:") + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(strings.Join(lines, "\n"))
	case *exercise.OddOneOut:
		return body.Render("Which one doesn't belong?")
	case *exercise.Puzzle:
		return body.Render(x.Question())
	case prompter:
		return body.Render(x.Prompt())
	}
	return ""
}

func renderStudy(v exercise.Variant, left time.Duration, cw int) string {
	secs := int((left + time.Second - 1) / time.Second)
	timer := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).
		Render(fmt.Sprintf("Memorise!  %ds", secs))

	var shown string
	switch x := v.(type) {
	case *exercise.WordRecall:
		shown = renderWordGrid(x.Words(), cw)
	case *exercise.NumberSequence:
		digits := make([]string, 0, len(x.Digits()))
		for _, d := range x.Digits() {
			digits = append(digits, fmt.Sprint(d))
		}
		shown = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(strings.Join(digits, "  "))
	case *exercise.SymbolPattern:
		shown = renderSymbolGrid(x.Grid())
	}
	return timer + "\n\n" + components.Card(shown, cw)
}

func renderWordGrid(words []string, cw int) string {
	cell := lipgloss.NewStyle().Width((cw - 8) / 2).Foreground(theme.Text)
	var rows []string
	for i := 0; i < len(words); i += 2 {
		left := cell.Render(fmt.Sprintf("%2d. %s", i+1, words[i]))
		right := ""
		if i+1 < len(words) {
			right = cell.Render(fmt.Sprintf("%2d. %s", i+2, words[i+1]))
		}
		rows = append(rows, left+right)
	}
	return strings.Join(rows, "\n")
}

func renderSymbolGrid(grid []string) string {
	cell := lipgloss.NewStyle().Width(4).Align(lipgloss.Center).Foreground(theme.Secondary).Bold(true)
	var rows []string
	for i := 0; i < len(grid); i += chooserColumns {
		var row []string
		for j := i; j < i+chooserColumns && j < len(grid); j++ {
			row = append(row, cell.Render(grid[j]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}

// renderPassage colours each typed character against the passage.
func renderPassage(passage, typed string) string {
	want := []rune(passage)
	got := []rune(typed)
	var b strings.Builder
	for i, r := range want {
		ch := string(r)
		switch {
		case i >= len(got):
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(ch))
		case got[i] == r:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render(ch))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Underline(true).Render(ch))
		}
	}
	return b.String()
}

func (s *PlayScreen) renderChoices(c exercise.Chooser) string {
	opts := c.Options()
	width := 8
	for _, o := range opts {
		width = max(width, lipgloss.Width(o)+4)
	}

	var rows []string
	for i := 0; i < len(opts); i += chooserColumns {
		var row []string
		for j := i; j < i+chooserColumns && j < len(opts); j++ {
			style := lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.Border).
				Foreground(theme.Text)
			if c.IsSelected(j) {
				style = style.BorderForeground(theme.Success).Foreground(theme.Success).Bold(true)
			}
			if j == s.cursor {
				style = style.BorderForeground(theme.Gold)
			}
			row = append(row, style.Render(opts[j]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}

func renderWordGoal(words, goal, cw int) string {
	bar := components.NewProgressBar("Words", words, goal, true, cw/2)
	if words >= goal {
		bar.Fill = lipgloss.NewStyle().Background(theme.Success)
	}
	return bar.View()
}

func renderReaction(r *exercise.ReactionTap) string {
	round := theme.Hint.Render(fmt.Sprintf("Round %d of %d", min(r.Round()+1, r.Rounds()), r.Rounds()))
	var signal string
	switch r.Phase() {
	case exercise.PhaseGo:
		signal = lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Success).Bold(true).
			Padding(1, 4).Render("TAP NOW!")
	default:
		signal = lipgloss.NewStyle().Foreground(theme.Text).Background(theme.BgCard).
			Padding(1, 4).Render("Wait for green...")
	}
	parts := []string{round, signal}
	if r.TooEarly() {
		parts = append(parts, components.Notice("Too early! Wait for the signal.", true))
	}
	if times := r.Times(); len(times) > 0 {
		ms := make([]string, len(times))
		for i, t := range times {
			ms[i] = fmt.Sprintf("%dms", t.Milliseconds())
		}
		parts = append(parts, theme.Hint.Render("Times: "+strings.Join(ms, "  ")))
	}
	return strings.Join(parts, "\n\n")
}

func renderHold(h *exercise.HoldBeat, now time.Time, cw int) string {
	target := h.Target()
	intro := theme.Body.Render(fmt.Sprintf("Hold for exactly %d seconds. Press space to start, space again to let go.", int(target.Seconds())))
	if h.Phase() != exercise.PhaseHolding {
		return intro
	}
	// The count is hidden past the first second so the user has to feel it.
	elapsed := h.Elapsed(now)
	counter := "holding..."
	if elapsed < time.Second {
		counter = fmt.Sprintf("%.1fs", elapsed.Seconds())
	}
	pulse := lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Primary).Bold(true).
		Padding(1, 4).Render(counter)
	return intro + "\n\n" + lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(pulse)
}

func renderDelayed(d *exercise.Delayed, now time.Time) string {
	if d.Phase() == exercise.PhaseReady {
		return theme.Body.Render("A reward is waiting at the end of a short countdown.\nPress enter and wait it out, or give up at any time.")
	}
	left := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).
		Render(fmt.Sprintf("%d", d.SecondsLeft(now)))
	return theme.Body.Render("Wait for it...") + "\n\n" + left
}

func (s *PlayScreen) renderResult(cw int) string {
	v := s.variant
	var verdict string
	if v.Outcome() == exercise.Passed {
		verdict = theme.Correct.Render("✓ Task complete")
	} else {
		verdict = theme.Incorrect.Render("✗ Not this time")
	}
	parts := []string{verdict, theme.Body.Render(v.Summary())}

	if w, ok := v.(*exercise.WordRecall); ok {
		parts = append(parts, renderRecallMarks(w, cw))
	}

	if v.Outcome() == exercise.Passed {
		parts = append(parts, s.renderSaveState())
	}
	return strings.Join(parts, "\n\n")
}

func renderRecallMarks(w *exercise.WordRecall, cw int) string {
	words := w.Words()
	marked := make([]string, len(words))
	for i, word := range words {
		if w.Correct(i) {
			marked[i] = theme.Correct.Render("✓ " + word)
		} else {
			marked[i] = theme.Incorrect.Render("✗ " + word)
		}
	}
	return renderWordGrid(marked, cw)
}

func (s *PlayScreen) renderSaveState() string {
	switch {
	case s.recordErr != nil:
		return components.Notice("Couldn't record this task: "+s.recordErr.Error(), true)
	case s.saving:
		return theme.Hint.Render("Saving progress...")
	case s.saveErr != nil:
		return components.Notice("Progress not saved. It is kept on this device; press S to try again.", true)
	case s.completion != nil:
		score := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(fmt.Sprintf("Today's score: %d/100", s.completion.Score))
		if !s.completion.NewlyCompleted {
			return score + theme.Hint.Render("  (already done today)")
		}
		return score
	}
	return ""
}

func renderCelebration(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Gold).
		Foreground(theme.Gold).
		Bold(true).
		Render("★ PERFECT DAY ★\nAll six workouts done. Your streak grows!")
}
