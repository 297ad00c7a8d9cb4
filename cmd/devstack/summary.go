// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"flopods-devstack/pkg/types"
)

// renderSummary formats step results into a short per-outcome tally plus one
// line for every step that did not succeed outright.
func renderSummary(results []types.StepResult) string {
	var b strings.Builder

	counts := map[types.Outcome]int{}
	for _, r := range results {
		counts[r.Outcome]++
	}

	b.WriteString("\n")
	b.WriteString(TitleStyle.Render("Summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %d succeeded", SuccessStyle.Render("✓"), counts[types.OutcomeSucceeded])
	if n := counts[types.OutcomeAlreadyExists]; n > 0 {
		fmt.Fprintf(&b, ", %d already existed", n)
	}
	if n := counts[types.OutcomeAlreadyAbsent]; n > 0 {
		fmt.Fprintf(&b, ", %d already absent", n)
	}
	if n := counts[types.OutcomeSkipped]; n > 0 {
		fmt.Fprintf(&b, ", %d skipped", n)
	}
	if n := counts[types.OutcomeFailed]; n > 0 {
		fmt.Fprintf(&b, ", %s", ErrorStyle.Render(fmt.Sprintf("%d failed", n)))
	}
	b.WriteString("\n")

	for _, r := range results {
		switch r.Outcome {
		case types.OutcomeSucceeded, types.OutcomeAlreadyExists, types.OutcomeAlreadyAbsent:
			continue
		case types.OutcomeFailed:
			fmt.Fprintf(&b, "  %s %s %s: %v\n", ErrorStyle.Render("✗"), r.Op, ResourceStyle.Render(r.Resource), r.Err)
		case types.OutcomeSkipped:
			fmt.Fprintf(&b, "  %s %s %s\n", WarningStyle.Render("-"), r.Op, ResourceStyle.Render(r.Resource))
		}
	}

	return b.String()
}
