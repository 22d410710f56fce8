package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quietpawn/quietpawn/internal/board"
	"github.com/quietpawn/quietpawn/internal/engine"
	"github.com/quietpawn/quietpawn/internal/storage"
)

type mode int

const (
	modeNormal mode = iota
	modeInput
)

// engineMoveMsg delivers a finished background search to the model.
type engineMoveMsg struct {
	result engine.SearchResult
}

// Model is the Bubble Tea model for a game against the engine.
type Model struct {
	pos    *board.Position
	eng    *engine.Engine
	st     *storage.Storage // may be nil
	limits engine.SearchLimits

	startFEN     string
	moves        []string
	undoStack    []board.UndoInfo
	lastMove     board.Move
	lastByEngine bool
	startedAt    time.Time
	recorded     bool

	autoReply bool // engine answers every human move
	thinking  bool

	m        mode
	input    textinput.Model
	logLines []string

	width  int
	height int
}

// NewModel builds the model with a fresh game and an engine configured
// from the saved preferences.
func NewModel(st *storage.Storage) Model {
	ti := textinput.New()
	ti.Placeholder = "move or command..."
	ti.Prompt = "> "
	ti.CharLimit = 120
	ti.Width = 40

	prefs := storage.DefaultPreferences()
	if st != nil {
		if p, err := st.LoadPreferences(); err == nil {
			prefs = p
		}
	}

	eng := engine.NewEngine(prefs.TTSizeMB)
	eng.SetDifficulty(engine.Difficulty(prefs.Difficulty))

	return Model{
		pos: board.NewPosition(),
		eng: eng,
		st:  st,
		limits: engine.SearchLimits{
			Depth:    prefs.SearchDepth,
			MoveTime: prefs.MoveTime,
		},
		startFEN:  board.StartFEN,
		startedAt: time.Now(),
		autoReply: true,
		m:         modeNormal,
		input:     ti,
		logLines: []string{
			"new game (press i to type, q to quit)",
			"commands: new, fen <FEN>, go, depth <n>, time <ms>, undo, moves [sq], auto, save, games",
		},
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case engineMoveMsg:
		m.thinking = false
		res := msg.result
		if res.BestMove == board.NoMove {
			m.appendLog("engine: no legal moves")
			return m, nil
		}
		u, err := m.pos.Play(res.BestMove)
		if err != nil {
			m.appendLog(fmt.Sprintf("engine move rejected: %v", err))
			return m, nil
		}
		m.undoStack = append(m.undoStack, u)
		m.moves = append(m.moves, res.BestMove.UCI())
		m.lastMove = res.BestMove
		m.lastByEngine = true
		m.appendLog(fmt.Sprintf("engine: %s  (%s, depth %d, %d nodes, %dms)",
			res.BestMove, engine.ScoreString(res.Score), res.Depth,
			res.Nodes+res.QNodes, res.Elapsed.Milliseconds()))
		m.checkGameOver()
		return m, nil

	case tea.KeyMsg:
		switch m.m {
		case modeNormal:
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "i":
				m.m = modeInput
				m.input.SetValue("")
				m.input.Focus()
				return m, nil
			}
			return m, nil

		case modeInput:
			switch msg.String() {
			case "esc":
				m.m = modeNormal
				m.input.Blur()
				return m, nil
			case "enter":
				line := strings.TrimSpace(m.input.Value())
				m.input.SetValue("")
				m.m = modeNormal
				m.input.Blur()
				if line != "" {
					return m.execCommand(line)
				}
				return m, nil
			}

			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// searchCmd runs the engine on its own goroutine; the result comes
// back as an engineMoveMsg.
func (m *Model) searchCmd() tea.Cmd {
	eng, pos, limits := m.eng, m.pos.Copy(), m.limits
	return func() tea.Msg {
		return engineMoveMsg{result: eng.SearchWithLimits(pos, limits)}
	}
}

func (m Model) execCommand(line string) (tea.Model, tea.Cmd) {
	m.appendLog("> " + line)

	if m.thinking {
		m.appendLog("engine is thinking; wait")
		return m, nil
	}

	parts := strings.Fields(line)
	switch parts[0] {
	case "new":
		m.resetGame(board.StartFEN)
		m.appendLog("new game")

	case "fen":
		if len(parts) < 2 {
			m.appendLog("usage: fen <FEN>")
			return m, nil
		}
		fen := strings.Join(parts[1:], " ")
		if _, err := board.ParseFEN(fen); err != nil {
			m.appendLog(fmt.Sprintf("bad FEN: %v", err))
			return m, nil
		}
		m.resetGame(fen)
		m.appendLog("position set")

	case "go":
		m.thinking = true
		m.appendLog("thinking...")
		return m, m.searchCmd()

	case "depth":
		n, err := strconv.Atoi(argOr(parts, 1, ""))
		if err != nil || n < 1 {
			m.appendLog("usage: depth <n>")
			return m, nil
		}
		m.limits.Depth = n
		m.appendLog(fmt.Sprintf("search depth %d", n))

	case "time":
		ms, err := strconv.Atoi(argOr(parts, 1, ""))
		if err != nil || ms < 1 {
			m.appendLog("usage: time <ms>")
			return m, nil
		}
		m.limits.MoveTime = time.Duration(ms) * time.Millisecond
		m.appendLog(fmt.Sprintf("move time %dms", ms))

	case "undo":
		if len(m.undoStack) == 0 {
			m.appendLog("nothing to undo")
			return m, nil
		}
		m.pos.UnmakeMove(m.undoStack[len(m.undoStack)-1])
		m.undoStack = m.undoStack[:len(m.undoStack)-1]
		m.moves = m.moves[:len(m.moves)-1]
		m.lastMove = board.NoMove
		m.recorded = false
		m.appendLog("took back one ply")

	case "moves":
		m.showMoves(argOr(parts, 1, ""))

	case "auto":
		m.autoReply = !m.autoReply
		m.appendLog(fmt.Sprintf("auto-reply %v", m.autoReply))

	case "eval":
		m.appendLog(fmt.Sprintf("static eval: %s", engine.ScoreString(m.eng.Evaluate(m.pos))))

	case "save":
		m.saveGame()

	case "games":
		m.listGames()

	default:
		return m.execMove(parts[0])
	}
	return m, nil
}

// execMove applies a UCI move typed by the user and, if auto-reply is
// on and the game continues, kicks off the engine.
func (m Model) execMove(text string) (tea.Model, tea.Cmd) {
	mv, err := board.ParseMove(text, m.pos)
	if err != nil {
		m.appendLog(fmt.Sprintf("unknown command or move: %s", text))
		return m, nil
	}
	u, err := m.pos.Play(mv)
	if err != nil {
		m.appendLog(fmt.Sprintf("illegal move: %s", text))
		return m, nil
	}
	m.undoStack = append(m.undoStack, u)
	m.moves = append(m.moves, mv.UCI())
	m.lastMove = mv
	m.lastByEngine = false

	if m.checkGameOver() {
		return m, nil
	}
	if m.autoReply {
		m.thinking = true
		m.appendLog("thinking...")
		return m, m.searchCmd()
	}
	return m, nil
}

func (m *Model) resetGame(fen string) {
	pos, _ := board.ParseFEN(fen)
	m.pos = pos
	m.startFEN = fen
	m.moves = nil
	m.undoStack = nil
	m.lastMove = board.NoMove
	m.startedAt = time.Now()
	m.recorded = false
	m.eng.Clear()
}

func (m *Model) showMoves(from string) {
	var ml *board.MoveList
	if from != "" {
		sq, err := board.ParseSquare(from)
		if err != nil {
			m.appendLog(fmt.Sprintf("bad square: %s", from))
			return
		}
		ml = m.pos.GenerateLegalMovesFrom(sq)
	} else {
		ml = m.pos.GenerateLegalMoves()
	}

	if ml.Len() == 0 {
		m.appendLog("no legal moves")
		return
	}
	names := make([]string, ml.Len())
	for i := range names {
		names[i] = ml.Get(i).UCI()
	}
	m.appendLog(strings.Join(names, " "))
}

// checkGameOver logs and records a finished game; it reports whether
// the game is over.
func (m *Model) checkGameOver() bool {
	status := m.pos.GameStatus()
	if status == board.Ongoing {
		return false
	}
	m.appendLog("game over: " + status.String())
	if !m.recorded {
		m.recorded = true
		m.saveResult(status)
	}
	return true
}

func (m *Model) saveResult(status board.Status) {
	if m.st == nil {
		return
	}
	result := storage.ResultDraw
	if status == board.Checkmate {
		if m.lastByEngine {
			result = storage.ResultLoss
		} else {
			result = storage.ResultWin
		}
	}
	rec := &storage.GameRecord{
		StartFEN: m.startFEN,
		MovesUCI: append([]string(nil), m.moves...),
		Result:   result,
		Status:   status.String(),
		Duration: time.Since(m.startedAt),
	}
	if err := m.st.RecordGame(rec, difficultyName(m.eng.Difficulty())); err != nil {
		m.appendLog(fmt.Sprintf("record failed: %v", err))
		return
	}
	m.appendLog("game recorded")
}

func (m *Model) saveGame() {
	if m.st == nil {
		m.appendLog("storage disabled")
		return
	}
	rec := &storage.GameRecord{
		StartFEN: m.startFEN,
		MovesUCI: append([]string(nil), m.moves...),
		Result:   storage.ResultDraw,
		Status:   "unfinished",
		Duration: time.Since(m.startedAt),
	}
	if err := m.st.RecordGame(rec, difficultyName(m.eng.Difficulty())); err != nil {
		m.appendLog(fmt.Sprintf("save failed: %v", err))
		return
	}
	m.appendLog(fmt.Sprintf("saved after %d plies", len(m.moves)))
}

func (m *Model) listGames() {
	if m.st == nil {
		m.appendLog("storage disabled")
		return
	}
	recs, err := m.st.ListGames(5)
	if err != nil {
		m.appendLog(fmt.Sprintf("list failed: %v", err))
		return
	}
	if len(recs) == 0 {
		m.appendLog("no saved games")
		return
	}
	for _, r := range recs {
		m.appendLog(fmt.Sprintf("#%d %s %s, %d plies",
			r.Seq, r.Result, r.Status, len(r.MovesUCI)))
	}
}

func difficultyName(d engine.Difficulty) string {
	switch d {
	case engine.Easy:
		return "easy"
	case engine.Hard:
		return "hard"
	}
	return "medium"
}

func (m *Model) appendLog(s string) {
	m.logLines = append(m.logLines, s)
	if len(m.logLines) > 200 {
		m.logLines = m.logLines[len(m.logLines)-200:]
	}
}

func argOr(parts []string, i int, def string) string {
	if i < len(parts) {
		return parts[i]
	}
	return def
}

func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	state := fmt.Sprintf("%s to move", m.pos.SideToMove)
	if m.thinking {
		state = "engine thinking..."
	} else if st := m.pos.GameStatus(); st != board.Ongoing {
		state = st.String()
	}
	header := titleStyle.Render(fmt.Sprintf("quietpawn  depth:%d time:%dms  %s",
		m.limits.Depth, m.limits.MoveTime.Milliseconds(), state))

	boardBox := boxStyle.Render(RenderBoard(m.pos, m.lastMove))

	logHeight := maxInt(4, m.height-16)
	logStart := maxInt(0, len(m.logLines)-logHeight)
	logBox := boxStyle.Width(maxInt(30, m.width-34)).Height(logHeight).
		Render(strings.Join(m.logLines[logStart:], "\n"))

	var inputLine string
	if m.m == modeInput {
		inputLine = m.input.View()
	} else {
		inputLine = "press i to enter a move or command"
	}
	inputBox := boxStyle.Width(maxInt(30, m.width-4)).Render(inputLine)

	top := lipgloss.JoinHorizontal(lipgloss.Top, boardBox, logBox)
	return header + "\n" + top + "\n" + inputBox + "\n"
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
