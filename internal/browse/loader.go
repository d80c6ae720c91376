package browse

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jobdigest/internal/model"
)

// scrapeTimeout bounds the whole browse fetch; a stuck upstream must not
// hold the terminal forever.
const scrapeTimeout = 2 * time.Minute

type scrapeDoneMsg struct {
	jobs []model.Job
	err  error
}

type loaderModel struct {
	label   string
	spin    spinner.Model
	started time.Time
	fetchFn func(ctx context.Context) ([]model.Job, error)
	result  []model.Job
	err     error
	done    bool
}

func newLoaderModel(label string, fetchFn func(ctx context.Context) ([]model.Job, error)) loaderModel {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	return loaderModel{
		label:   label,
		spin:    sp,
		started: time.Now(),
		fetchFn: fetchFn,
	}
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.doFetch(), m.spin.Tick)
}

func (m loaderModel) doFetch() tea.Cmd {
	fetchFn := m.fetchFn
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), scrapeTimeout)
		defer cancel()
		jobs, err := fetchFn(ctx)
		return scrapeDoneMsg{jobs: jobs, err: err}
	}
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scrapeDoneMsg:
		m.result = msg.jobs
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = fmt.Errorf("cancelled")
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	elapsed := time.Since(m.started).Round(time.Second)
	return fmt.Sprintf("%s Scraping %s... (%s)\n", m.spin.View(), m.label, elapsed)
}

// RunLoader shows a spinner while the scrape cycle runs. It renders inline
// (no alt screen).
func RunLoader(label string, fetchFn func(ctx context.Context) ([]model.Job, error)) ([]model.Job, error) {
	p := tea.NewProgram(newLoaderModel(label, fetchFn))
	result, err := p.Run()
	if err != nil {
		return nil, err
	}
	final := result.(loaderModel)
	return final.result, final.err
}
