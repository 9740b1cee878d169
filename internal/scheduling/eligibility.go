// internal/scheduling/eligibility.go

package scheduling

import (
	"github.com/crewdesk/workforce-service/internal/models"
)

// BlockReason is the machine-readable cause behind a CanAssign=false
// verdict. The human-readable text lives next to it so pickers can show
// it as-is.
type BlockReason string

const (
	BlockNone                  BlockReason = ""
	BlockTimeOverlap           BlockReason = "time_overlap"
	BlockHalfDayExhausted      BlockReason = "half_day_exhausted"
	BlockInsufficientRemaining BlockReason = "insufficient_remaining"
)

var blockMessages = map[BlockReason]string{
	BlockTimeOverlap:           "time overlap with existing task",
	BlockHalfDayExhausted:      "half-day capacity already fully used",
	BlockInsufficientRemaining: "insufficient remaining availability",
}

func (r BlockReason) Message() string {
	return blockMessages[r]
}

// Verdict is an assignability decision reported as data, never as an
// error: the availability picker shows blocked workers instead of hiding
// failures behind exceptions.
type Verdict struct {
	CanAssign bool
	Reason    BlockReason
}

// evalContext carries everything a single rule needs to decide.
type evalContext struct {
	attendance models.AttendanceStatusType
	usage      DayUsage
	requested  *Window // nil when no window was asked for
}

// eligibilityRule is one ordered assignability check. blocked returns
// true when the rule rejects the worker.
type eligibilityRule struct {
	reason  BlockReason
	blocked func(evalContext) bool
}

// eligibilityRules declares the decision order once: overlap first, then
// half-day exhaustion, then insufficient remaining time. Rules that need
// a requested window are inert without one, which leaves exactly the
// half-day rule active for the coarse no-window pre-filter.
var eligibilityRules = []eligibilityRule{
	{
		reason: BlockTimeOverlap,
		blocked: func(c evalContext) bool {
			return c.requested != nil && OverlapsAny(*c.requested, c.usage.Occupied)
		},
	},
	{
		reason: BlockHalfDayExhausted,
		blocked: func(c evalContext) bool {
			return c.attendance == models.AttendanceHalfDay && c.usage.RemainingMin() <= 0
		},
	},
	{
		reason: BlockInsufficientRemaining,
		blocked: func(c evalContext) bool {
			return c.requested != nil && c.requested.Duration() > c.usage.RemainingMin()
		},
	},
}

// Evaluate runs the ordered rule list for one worker; the first blocking
// rule wins.
func Evaluate(
	attendance models.AttendanceStatusType,
	usage DayUsage,
	requested *Window,
) Verdict {
	c := evalContext{attendance: attendance, usage: usage, requested: requested}
	for _, rule := range eligibilityRules {
		if rule.blocked(c) {
			return Verdict{CanAssign: false, Reason: rule.reason}
		}
	}
	return Verdict{CanAssign: true, Reason: BlockNone}
}
