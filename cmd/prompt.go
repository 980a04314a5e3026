package cmd

import (
	"bufio"
	"fmt"
	"math"
	"strconv"
	"strings"

	"sente/internal/money"
)

// promptLine reads one trimmed line after printing the "  > " marker.
// The reader's error (io.EOF once input runs out) is only surfaced when
// no text came with it, so a final unterminated line still counts.
func promptLine(reader *bufio.Reader) (string, error) {
	fmt.Print("  > ")
	line, err := reader.ReadString('\n')
	text := strings.TrimSpace(line)
	if err != nil && text == "" {
		return "", err
	}
	return text, nil
}

// promptFloat asks until a non-negative number is entered. ParseFloat
// also accepts "NaN" and "Inf" spellings, which are no use here.
func promptFloat(reader *bufio.Reader, label string) (float64, error) {
	fmt.Printf("\n  %s\n", label)
	for {
		text, err := promptLine(reader)
		if err != nil {
			return 0, err
		}
		v, perr := strconv.ParseFloat(text, 64)
		if perr != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			fmt.Println("  Enter a plain number, like 120 or 42.5.")
			continue
		}
		if v < 0 {
			fmt.Println("  It can't be negative. Try again.")
			continue
		}
		return v, nil
	}
}

// promptFloatDefault is promptFloat with a fallback for blank input.
func promptFloatDefault(reader *bufio.Reader, label string, def float64) (float64, error) {
	fmt.Printf("\n  %s\n", label)
	for {
		text, err := promptLine(reader)
		if err != nil {
			return 0, err
		}
		if text == "" {
			return def, nil
		}
		v, perr := strconv.ParseFloat(text, 64)
		if perr != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			fmt.Println("  Enter a plain number, like 120 or 42.5.")
			continue
		}
		if v < 0 {
			fmt.Println("  It can't be negative. Try again.")
			continue
		}
		return v, nil
	}
}

// promptAmount asks until a non-negative money amount is entered. With
// allowBlank, empty input returns ok=false instead of re-prompting.
func promptAmount(reader *bufio.Reader, label string, allowBlank bool) (amt money.Amount, ok bool, err error) {
	fmt.Printf("\n  %s\n", label)
	for {
		text, rerr := promptLine(reader)
		if rerr != nil {
			return 0, false, rerr
		}
		if text == "" && allowBlank {
			return 0, false, nil
		}
		v, perr := money.Parse(text)
		if perr != nil {
			fmt.Println("  Enter an amount like 40000 or 499.99.")
			continue
		}
		if v.IsNegative() {
			fmt.Println("  It can't be negative. Try again.")
			continue
		}
		return v, true, nil
	}
}
