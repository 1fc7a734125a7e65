// Package tui provides the terminal form for RedWARP.
// It mirrors the desktop form: the same fields, the same sensitivity rules
// and the same single-run guard.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yllada/redwarp/common"
	"github.com/yllada/redwarp/config"
	"github.com/yllada/redwarp/warp"
)

// Generator runs one generation. *warp.Driver satisfies it.
type Generator interface {
	Generate(ctx context.Context, opts warp.Options) (*warp.Result, error)
}

// Field positions in focus order.
const (
	fieldEndpoint = iota
	fieldMTU
	fieldIPv6
	fieldObfuscation
	fieldRandomize
	fieldDNS4
	fieldDNS4Custom
	fieldDNS6
	fieldDNS6Custom
	fieldGenerate
	fieldCount
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindChoice
	kindButton
)

var yesNo = []string{"Yes", "No"}

type field struct {
	label    string
	kind     fieldKind
	input    textinput.Model
	choices  []string
	selected int
}

// resultMsg carries the outcome of a generation run.
type resultMsg struct {
	res *warp.Result
	err error
}

// Model is the Bubble Tea model of the terminal form.
type Model struct {
	ctx     context.Context
	gen     Generator
	cfg     *config.Config
	fields  []field
	focus   int
	busy    bool
	spinner spinner.Model

	result *warp.Result
	err    error
	status string
	// Quit is set when the user leaves the form.
	Quit bool
}

// New creates a form populated from cfg.
func New(ctx context.Context, cfg *config.Config, gen Generator) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	presetLabels := make([]string, 0, len(warp.DNSPresets()))
	for _, p := range warp.DNSPresets() {
		presetLabels = append(presetLabels, p.Label)
	}

	fields := make([]field, fieldCount)
	fields[fieldEndpoint] = textField("Endpoint", cfg.Endpoint, common.DefaultEndpoint)
	fields[fieldMTU] = textField("MTU", cfg.MTU, common.DefaultMTU)
	fields[fieldIPv6] = choiceField("IPv6", yesNo, boolIndex(cfg.IPv6))
	fields[fieldObfuscation] = choiceField("Obfuscation", yesNo, boolIndex(cfg.Obfuscation))
	fields[fieldRandomize] = choiceField("Randomize", yesNo, boolIndex(cfg.Randomize))
	fields[fieldDNS4] = choiceField("IPv4 DNS", presetLabels, warp.PresetIndex(cfg.DNS.IPv4Preset))
	fields[fieldDNS4Custom] = textField("Custom IPv4", cfg.DNS.IPv4Custom, "1.1.1.1, 1.0.0.1")
	fields[fieldDNS6] = choiceField("IPv6 DNS", presetLabels, warp.PresetIndex(cfg.DNS.IPv6Preset))
	fields[fieldDNS6Custom] = textField("Custom IPv6", cfg.DNS.IPv6Custom, "2606:4700:4700::1111")
	fields[fieldGenerate] = field{label: "Generate", kind: kindButton}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = accentStyle

	m := Model{ctx: ctx, gen: gen, cfg: cfg, fields: fields, spinner: s}
	m.fields[fieldEndpoint].input.Focus()
	return m
}

func textField(label, value, placeholder string) field {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 256
	in.SetValue(value)
	return field{label: label, kind: kindText, input: in}
}

func choiceField(label string, choices []string, selected int) field {
	return field{label: label, kind: kindChoice, choices: choices, selected: selected}
}

func boolIndex(v bool) int {
	if v {
		return 0
	}
	return 1
}

func (m Model) yes(i int) bool { return m.fields[i].selected == 0 }

func (m Model) presetID(i int) string {
	return warp.DNSPresets()[m.fields[i].selected].ID
}

// enabled applies the form sensitivity rules.
func (m Model) enabled(i int) bool {
	switch i {
	case fieldRandomize:
		return m.yes(fieldObfuscation)
	case fieldDNS4Custom:
		return m.presetID(fieldDNS4) == warp.PresetCustom
	case fieldDNS6:
		return m.yes(fieldIPv6)
	case fieldDNS6Custom:
		return m.yes(fieldIPv6) && m.presetID(fieldDNS6) == warp.PresetCustom
	default:
		return true
	}
}

// Options builds generation options from the current form values.
func (m Model) Options() (warp.Options, error) {
	v4, err := warp.ResolveDNS(warp.FamilyIPv4, m.presetID(fieldDNS4), m.fields[fieldDNS4Custom].input.Value())
	if err != nil {
		return warp.Options{}, err
	}
	v6, err := warp.ResolveDNS(warp.FamilyIPv6, m.presetID(fieldDNS6), m.fields[fieldDNS6Custom].input.Value())
	if err != nil {
		return warp.Options{}, err
	}

	opts := warp.Options{
		Endpoint:             strings.TrimSpace(m.fields[fieldEndpoint].input.Value()),
		MTU:                  strings.TrimSpace(m.fields[fieldMTU].input.Value()),
		IPv6:                 m.yes(fieldIPv6),
		Obfuscation:          m.yes(fieldObfuscation),
		RandomizeObfuscation: m.yes(fieldObfuscation) && m.yes(fieldRandomize),
		DNSv4:                v4,
		DNSv6:                v6,
	}
	return opts, opts.Validate()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.busy = false
		m.result, m.err = msg.res, msg.err
		m.status = ""
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.Quit = true
			return m, tea.Quit
		case "tab", "down":
			return m.moveFocus(1)
		case "shift+tab", "up":
			return m.moveFocus(-1)
		case "ctrl+s":
			m.saveDefaults()
			return m, nil
		case "enter":
			if m.focus == fieldGenerate {
				return m.startGenerate()
			}
			return m.moveFocus(1)
		case "left", "right", " ":
			if f := &m.fields[m.focus]; f.kind == kindChoice {
				step := 1
				if msg.String() == "left" {
					step = -1
				}
				f.selected = (f.selected + step + len(f.choices)) % len(f.choices)
				return m, nil
			}
		}
	}

	if f := &m.fields[m.focus]; f.kind == kindText {
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// moveFocus advances to the next enabled field in direction dir.
func (m Model) moveFocus(dir int) (tea.Model, tea.Cmd) {
	if f := &m.fields[m.focus]; f.kind == kindText {
		f.input.Blur()
	}

	next := m.focus
	for i := 0; i < fieldCount; i++ {
		next = (next + dir + fieldCount) % fieldCount
		if m.enabled(next) {
			break
		}
	}
	m.focus = next

	if f := &m.fields[m.focus]; f.kind == kindText {
		return m, f.input.Focus()
	}
	return m, nil
}

// startGenerate launches a run unless one is already in flight.
func (m Model) startGenerate() (tea.Model, tea.Cmd) {
	if m.busy || m.gen == nil {
		return m, nil
	}

	opts, err := m.Options()
	if err != nil {
		m.result, m.err = nil, err
		return m, nil
	}

	m.busy = true
	m.result, m.err = nil, nil
	return m, tea.Batch(m.runFor(opts), m.spinner.Tick)
}

// runFor returns the command that performs one run off the UI loop.
func (m Model) runFor(opts warp.Options) tea.Cmd {
	ctx, gen := m.ctx, m.gen
	return func() tea.Msg {
		res, err := gen.Generate(ctx, opts)
		return resultMsg{res: res, err: err}
	}
}

// saveDefaults writes the form values to the configuration file.
func (m *Model) saveDefaults() {
	if m.cfg == nil {
		return
	}
	if _, err := m.Options(); err != nil {
		m.status = fmt.Sprintf("Defaults not saved: %v", err)
		return
	}
	m.cfg.Endpoint = strings.TrimSpace(m.fields[fieldEndpoint].input.Value())
	m.cfg.MTU = strings.TrimSpace(m.fields[fieldMTU].input.Value())
	m.cfg.IPv6 = m.yes(fieldIPv6)
	m.cfg.Obfuscation = m.yes(fieldObfuscation)
	m.cfg.Randomize = m.yes(fieldRandomize)
	m.cfg.DNS.IPv4Preset = m.presetID(fieldDNS4)
	m.cfg.DNS.IPv6Preset = m.presetID(fieldDNS6)
	m.cfg.DNS.IPv4Custom = strings.TrimSpace(m.fields[fieldDNS4Custom].input.Value())
	m.cfg.DNS.IPv6Custom = strings.TrimSpace(m.fields[fieldDNS6Custom].input.Value())

	if err := m.cfg.Save(); err != nil {
		common.LogError("Failed to save defaults: %v", err)
		m.status = fmt.Sprintf("Could not save defaults: %v", err)
		return
	}
	m.status = "Defaults saved to " + m.cfg.Path()
}

// Busy reports whether a run is in flight.
func (m Model) Busy() bool { return m.busy }

// Result returns the outcome of the last run.
func (m Model) Result() (*warp.Result, error) { return m.result, m.err }
