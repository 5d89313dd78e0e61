// Package tui provides the Bubble Tea game interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/wordtick/internal/corpus"
	"github.com/verte-zerg/wordtick/internal/game"
	"github.com/verte-zerg/wordtick/internal/puzzle"
	"github.com/verte-zerg/wordtick/internal/share"
	statsPkg "github.com/verte-zerg/wordtick/internal/stats"
	"github.com/verte-zerg/wordtick/internal/store"
	"github.com/verte-zerg/wordtick/internal/telemetry"
)

const noticeDuration = 2 * time.Second

type noticeKind int

const (
	noticeNone noticeKind = iota
	noticeError
	noticeInfo
)

// noticeExpiredMsg clears a transient notice. The sequence number drops
// expiries of notices that were already superseded.
type noticeExpiredMsg struct {
	seq int
}

type tickMsg time.Time

// Model implements the Bubble Tea game UI.
type Model struct {
	corpus    *corpus.Corpus
	sched     *puzzle.Scheduler
	store     *store.Store
	telemetry *telemetry.Client
	deliverer share.Deliverer
	log       zerolog.Logger
	keys      keyMap

	game  *game.Game
	stats statsPkg.GameStats

	notice     string
	noticeKind noticeKind
	noticeSeq  int

	width  int
	height int
	now    time.Time
}

// NewModel constructs the game model, reconciling any persisted state
// against the currently active puzzle.
func NewModel(c *corpus.Corpus, sched *puzzle.Scheduler, st *store.Store, tel *telemetry.Client, deliverer share.Deliverer, log zerolog.Logger) *Model {
	ctx := context.Background()
	active := sched.Current()
	return &Model{
		corpus:    c,
		sched:     sched,
		store:     st,
		telemetry: tel,
		deliverer: deliverer,
		log:       log,
		keys:      defaultKeyMap(),
		game:      st.LoadGame(ctx, c, active),
		stats:     st.LoadStats(ctx),
		now:       time.Now(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m.now = time.Time(msg)
		m.reconcilePuzzle()
		return m, tick()
	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
			m.noticeKind = noticeNone
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m, m.handleSubmit()
	case key.Matches(msg, m.keys.Delete):
		m.game.DeleteChar()
		return m, nil
	case key.Matches(msg, m.keys.Share):
		return m, m.handleShare()
	default:
		if msg.Type == tea.KeyRunes {
			for _, r := range msg.Runes {
				m.game.AppendChar(r)
			}
		}
		return m, nil
	}
}

// reconcilePuzzle is the pull-based rollover check: when the scheduler has
// moved to a new period, the stale game is discarded for a fresh one.
func (m *Model) reconcilePuzzle() {
	active := m.sched.Current()
	if active.Index == m.game.Puzzle().Index {
		return
	}
	m.game = m.store.LoadGame(context.Background(), m.corpus, active)
}

func (m *Model) handleSubmit() tea.Cmd {
	outcome, err := m.game.Submit()
	switch {
	case errors.Is(err, game.ErrIncompleteGuess):
		return m.showNotice(noticeError, "Not enough letters")
	case errors.Is(err, game.ErrUnknownWord):
		return m.showNotice(noticeError, "Word not found")
	case err != nil:
		m.log.Error().Err(err).Msg("submit failed")
		return nil
	}

	ctx := context.Background()
	guesses := m.game.Guesses()
	if len(guesses) == 1 {
		m.telemetry.FirstGuess(guesses[0])
	}

	if outcome != nil {
		// Stats, history, and the reported flag land in one transaction
		// so a reload can never replay the outcome.
		m.stats = statsPkg.Record(m.stats, *outcome)
		record := statsPkg.GameRecord{
			PuzzleIndex: m.game.Puzzle().Index,
			Guesses:     outcome.Guesses,
			Won:         outcome.Won,
			CompletedAt: m.now,
		}
		if err := m.store.SaveOutcome(ctx, m.game, m.stats, record); err != nil {
			m.log.Error().Err(err).Msg("failed to save game outcome")
		}
	} else if err := m.store.SaveGame(ctx, m.game); err != nil {
		m.log.Error().Err(err).Msg("failed to save game state")
	}

	if outcome != nil && !outcome.Won {
		return m.showNotice(noticeInfo, fmt.Sprintf("The word was %s", m.game.Puzzle().Solution))
	}
	return nil
}

func (m *Model) handleShare() tea.Cmd {
	if m.game.Status() == game.StatusActive {
		return nil
	}
	p := m.game.Puzzle()
	text := share.FormatShareText(m.game.Guesses(), p.Solution, p.Index)
	method, err := m.deliverer.Deliver(text)
	if err != nil {
		m.log.Warn().Err(err).Msg("share delivery failed")
		return m.showNotice(noticeError, "Could not copy results")
	}
	if method == share.MethodNativeShare {
		return m.showNotice(noticeInfo, "Shared via system dialog")
	}
	return m.showNotice(noticeInfo, "Copied results to clipboard")
}

// showNotice replaces any visible notice and schedules its expiry. A newer
// notice bumps the sequence so the older expiry is dropped on arrival.
func (m *Model) showNotice(kind noticeKind, text string) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	m.noticeKind = kind
	seq := m.noticeSeq
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
