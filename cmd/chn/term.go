package main

import (
	"os"

	"github.com/containerd/console"
)

const maxRule = 40

func termWidth() int {
	c, err := console.ConsoleFromFile(os.Stdout)
	if err != nil {
		return 0
	}
	size, err := c.Size()
	if err != nil {
		return 0
	}

	return int(size.Width)
}

func ruleWidth(term int) int {
	if term <= 0 || term > maxRule {
		return maxRule
	}
	return term
}
