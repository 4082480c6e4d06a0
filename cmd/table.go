package cmd

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

func printTable(headers []string, rows [][]string) {
	colWidths := make([]int, len(headers))
	for i, header := range headers {
		colWidths[i] = utf8.RuneCountInString(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > colWidths[i] {
				colWidths[i] = n
			}
		}
	}

	printRow(headers, colWidths)
	total := 0
	for _, w := range colWidths {
		total += w + 2
	}
	fmt.Fprintln(os.Stdout, strings.Repeat("─", total))
	for _, row := range rows {
		printRow(row, colWidths)
	}
}

func printRow(cells []string, widths []int) {
	for i, cell := range cells {
		pad := widths[i] - utf8.RuneCountInString(cell)
		fmt.Fprint(os.Stdout, cell, strings.Repeat(" ", pad+2))
	}
	fmt.Fprintln(os.Stdout)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}
