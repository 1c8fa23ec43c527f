package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

type consolePrompter struct {
	in *bufio.Reader
}

func newConsolePrompter() *consolePrompter {
	return &consolePrompter{in: bufio.NewReader(os.Stdin)}
}

// Confirm asks a yes/no question on stdout. Anything but an explicit yes
// counts as a decline.
func (p *consolePrompter) Confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

type consoleReporter struct{}

func (consoleReporter) Report(event string) { fmt.Println(event) }
