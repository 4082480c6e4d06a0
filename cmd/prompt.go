package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"copdcare/internal/symptoms"

	"github.com/mattn/go-isatty"
	"github.com/nexidian/gocliselect"
	"go.uber.org/zap"
)

// Prompt hooks, swapped out in tests.
var (
	isInteractive = interactive
	askSeverities = collectSeverities
	askConfirm    = confirmMenu
)

func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// collectSeverities shows one menu per catalog symptom and returns the
// answers as a single selection map. Skip and Escape leave a symptom out.
func collectSeverities(catalog symptoms.Catalog) (map[string]symptoms.Severity, error) {
	selections := make(map[string]symptoms.Severity, len(catalog))
	for _, d := range catalog {
		fmt.Println(d.Description)
		menu := gocliselect.NewMenu(fmt.Sprintf("Select severity for %s", d.Name))
		for _, lvl := range symptoms.Levels {
			menu.AddItem(lvl.String(), lvl.String())
		}
		menu.EnableSkip("Skip")

		v, err := menu.Display()
		if err != nil {
			return nil, err
		}
		choice, _ := v.(string)
		sev, err := symptoms.ParseSeverity(choice)
		if err != nil {
			sev = symptoms.None
		}
		selections[d.Name] = sev
	}
	return selections, nil
}

// confirmMenu answers false on Escape, skip or a menu failure.
func confirmMenu(question, yes, no string) bool {
	menu := gocliselect.NewMenu(question)
	menu.AddItem(no, "no")
	menu.AddItem(yes, "yes")

	v, err := menu.Display()
	if err != nil {
		logger.Debug("confirm menu failed", zap.Error(err))
		return false
	}
	choice, _ := v.(string)
	return choice == "yes"
}

func readLine(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
