package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the fretbridge ASCII banner.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Amber-to-rosewood gradient, one line per hue.
	s1 := termenv.String("   __          _   _          _     _            ").Foreground(p.Color("#fbbf24"))
	s2 := termenv.String("  / _|_ __ ___| |_| |__  _ __(_) __| | __ _  ___ ").Foreground(p.Color("#f59e0b"))
	s3 := termenv.String(" | |_| '__/ _ \\ __| '_ \\| '__| |/ _` |/ _` |/ _ \\").Foreground(p.Color("#ea580c"))
	s4 := termenv.String(" |  _| | |  __/ |_| |_) | |  | | (_| | (_| |  __/").Foreground(p.Color("#c2410c"))
	s5 := termenv.String(" |_| |_|  \\___|\\__|_.__/|_|  |_|\\__,_|\\__, |\\___|").Foreground(p.Color("#9a3412"))
	s6 := termenv.String("                                      |___/      ").Foreground(p.Color("#7c2d12"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println()
}
