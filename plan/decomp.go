package plan

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	instructionTagRe = regexp.MustCompile(`(?s)<instruction\d*>(.*?)</instruction\d*>`)
	numberedItemRe   = regexp.MustCompile(`\n(\d+)\.\s+`)
)

// ParseInstructionTags extracts instructions from the bracketed dialect:
//
//	<instruction1>TEXT</instruction1><instruction2>TEXT</instruction2>...
//
// Pairs are matched non-greedily across the whole text and returned trimmed
// in appearance order. Text outside the tags is ignored.
func ParseInstructionTags(text string) []string {
	matches := instructionTagRe.FindAllStringSubmatch(text, -1)
	instructions := make([]string, 0, len(matches))
	for _, m := range matches {
		instructions = append(instructions, strings.TrimSpace(m[1]))
	}
	return instructions
}

// ParseNumberedSteps extracts instructions from the enumerated-list dialect:
//
//	1. TEXT
//	2. TEXT
//	...
//
// The literal "1. " marker must be present or ErrNoStepsFound is returned.
// Item boundaries are a line break followed by digits, a period and
// whitespace. Items are trimmed, stripped of ** emphasis markers and
// re-emitted in ascending numeric order: the numbers are authoritative, not
// the order they were discovered in.
func ParseNumberedSteps(text string) ([]string, error) {
	if !strings.Contains(text, "1. ") {
		return nil, ErrNoStepsFound
	}
	// Normalize so the first item matches the same boundary pattern as the
	// rest.
	text = "\n1. " + strings.SplitN(text, "1. ", 2)[1]

	bounds := numberedItemRe.FindAllStringSubmatchIndex(text, -1)
	items := make(map[int]string, len(bounds))
	for i, b := range bounds {
		num, err := strconv.Atoi(text[b[2]:b[3]])
		if err != nil {
			continue
		}
		end := len(text)
		if i+1 < len(bounds) {
			end = bounds[i+1][0]
		}
		item := strings.TrimSpace(text[b[1]:end])
		item = strings.ReplaceAll(item, "**", "")
		if item == "" {
			continue
		}
		items[num] = item
	}

	nums := make([]int, 0, len(items))
	for n := range items {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	instructions := make([]string, 0, len(nums))
	for _, n := range nums {
		instructions = append(instructions, items[n])
	}
	return instructions, nil
}

// ParseDecomposition dispatches between the two decomposition dialects:
// bracketed instruction tags when any "<instruction" prefix is present,
// otherwise the enumerated list.
func ParseDecomposition(text string) ([]string, error) {
	if strings.Contains(text, "<instruction") {
		return ParseInstructionTags(text), nil
	}
	return ParseNumberedSteps(text)
}
