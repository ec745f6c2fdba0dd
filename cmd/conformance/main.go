package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/rpavlik/OpenXR-CTS/config"
	"github.com/rpavlik/OpenXR-CTS/diag"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

func main() {
	var (
		scenarioName = flag.String("scenario", "", "Run a single scenario by name")
		list         = flag.Bool("list", false, "List available scenarios and exit")
		jsonOut      = flag.Bool("json", false, "Emit findings as JSON")
		interactive  = flag.Bool("i", false, "Interactive mode with TUI")
		strict       = flag.Bool("strict", false, "Promote warnings to errors")
		keepGoing    = flag.Bool("keep-going", true, "Continue validating after the first error")
	)
	flag.Parse()

	if *list {
		for _, s := range scenarios {
			fmt.Printf("  %-28s %s\n", s.name, s.desc)
		}
		return
	}

	opts := config.LoadOrDefault()
	opts.Strict = opts.Strict || *strict
	opts.ContinueOnError = opts.ContinueOnError && *keepGoing

	if *interactive {
		if err := runInteractive(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	selected := scenarios
	if *scenarioName != "" {
		s, ok := findScenario(*scenarioName)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown scenario %q; -list shows the available ones\n", *scenarioName)
			os.Exit(1)
		}
		selected = []scenario{s}
	}

	failed := false
	for _, s := range selected {
		outcome, err := runScenario(s, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", s.name, err)
			os.Exit(1)
		}
		if outcome.Failed {
			failed = true
		}
		if *jsonOut {
			if err := json.NewEncoder(os.Stdout).Encode(outcome); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			continue
		}
		printOutcome(outcome)
	}
	if failed {
		os.Exit(1)
	}
}

// outcome is the per-scenario result record, shaped for both the text
// and JSON renderings.
type outcome struct {
	Scenario string        `json:"scenario"`
	RunID    string        `json:"run_id"`
	Failed   bool          `json:"failed"`
	Reports  []diag.Report `json:"reports"`
}

func runScenario(s scenario, opts *config.Options) (outcome, error) {
	h, err := newHarness(opts)
	if err != nil {
		return outcome{}, err
	}
	if err := s.run(h); err != nil {
		return outcome{}, err
	}
	rep := h.layer.Reporter()
	return outcome{
		Scenario: s.name,
		RunID:    rep.RunID(),
		Failed:   rep.Failed(),
		Reports:  rep.Reports(),
	}, nil
}

func printOutcome(o outcome) {
	color := term.IsTerminal(int(os.Stdout.Fd()))
	render := func(st lipgloss.Style, s string) string {
		if !color {
			return s
		}
		return st.Render(s)
	}

	verdict := render(passStyle, "PASS")
	if o.Failed {
		verdict = render(failStyle, "FAIL")
	}
	fmt.Printf("%s  %s  %s\n", verdict, o.Scenario, render(dimStyle, "run "+o.RunID))
	for _, r := range o.Reports {
		line := fmt.Sprintf("    [%s] %s: %s: %s", r.Severity, r.Code, r.Operation, r.Message)
		switch r.Severity {
		case diag.SeverityError:
			line = render(failStyle, line)
		case diag.SeverityWarning:
			line = render(warnStyle, line)
		default:
			line = render(dimStyle, line)
		}
		fmt.Println(line)
	}
}
