package voice

import (
	"strconv"
	"strings"
)

var smallNumbers = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
}

var tensNumbers = map[string]int{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var scaleNumbers = map[string]int{
	"thousand": 1000,
	"lakh":     100000,
	"million":  1000000,
}

func isNumberWord(w string) bool {
	if _, ok := smallNumbers[w]; ok {
		return true
	}
	if _, ok := tensNumbers[w]; ok {
		return true
	}
	if _, ok := scaleNumbers[w]; ok {
		return true
	}
	return w == "hundred"
}

func cleanWord(w string) string {
	return strings.ToLower(strings.Trim(w, ".,!?;:"))
}

// WordsToNumbers rewrites spelled-out English numbers into digits and leaves
// every other word untouched: "sold twenty one rice" becomes "sold 21 rice".
// Adjacent numbers that cannot form one value ("two three") stay separate.
func WordsToNumbers(text string) string {
	fields := strings.Fields(strings.ReplaceAll(text, "-", " "))
	out := make([]string, 0, len(fields))

	var total, current int
	inNumber := false
	flush := func() {
		if inNumber {
			out = append(out, strconv.Itoa(total+current))
		}
		total, current, inNumber = 0, 0, false
	}

	for i, f := range fields {
		w := cleanWord(f)

		if v, ok := smallNumbers[w]; ok {
			if inNumber && ((v < 10 && current%10 != 0) || (v >= 10 && current%100 != 0)) {
				flush()
			}
			current += v
			inNumber = true
			continue
		}
		if v, ok := tensNumbers[w]; ok {
			if inNumber && current%100 != 0 {
				flush()
			}
			current += v
			inNumber = true
			continue
		}
		if w == "hundred" {
			if current == 0 {
				current = 1
			}
			current *= 100
			inNumber = true
			continue
		}
		if scale, ok := scaleNumbers[w]; ok {
			if current == 0 && total == 0 {
				current = 1
			}
			total += current * scale
			current = 0
			inNumber = true
			continue
		}
		if w == "and" && inNumber && i+1 < len(fields) && isNumberWord(cleanWord(fields[i+1])) {
			continue
		}

		flush()
		out = append(out, f)
	}
	flush()

	return strings.Join(out, " ")
}
