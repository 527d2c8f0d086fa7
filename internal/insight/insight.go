package insight

import (
	"fmt"
	"math/rand"
	"time"
)

// Generator composes short advisory blurbs attached to leave responses.
// The blurbs are presentation only and never influence any decision.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator() *Generator {
	return &Generator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewGeneratorWithSource makes the message selection deterministic.
func NewGeneratorWithSource(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

func (g *Generator) LeaveStatusMessage(leaveType, status string, startDate time.Time, days int) string {
	return fmt.Sprintf("AI Insight: %s %s %s %s",
		seasonalMessage(startDate.Month()),
		durationMessage(days),
		typeMessage(leaveType),
		g.statusMessage(status),
	)
}

func seasonalMessage(m time.Month) string {
	switch m {
	case time.December, time.January:
		return "Perfect winter break timing!"
	case time.March, time.April:
		return "Spring is ideal for rejuvenation!"
	case time.May, time.June:
		return "Summer planning shows great foresight!"
	case time.July, time.August:
		return "Mid-year break, smart decision!"
	case time.September, time.October:
		return "Autumn leaves, perfect for personal time!"
	case time.November:
		return "End-of-year timing is excellent!"
	case time.February:
		return "February break will boost your energy!"
	default:
		return "Great timing for your leave!"
	}
}

func durationMessage(days int) string {
	switch {
	case days <= 1:
		return "A single day off can work wonders."
	case days <= 3:
		return "Short breaks are proven to increase productivity."
	case days <= 7:
		return "A week-long break will recharge your batteries perfectly."
	default:
		return "Extended leave shows excellent self-care planning."
	}
}

func typeMessage(leaveType string) string {
	switch leaveType {
	case "SICK":
		return "Taking care of your health is the top priority."
	case "CASUAL":
		return "Casual leave maintains great work-life balance."
	case "PAID":
		return "Paid leave investment in your wellbeing pays off."
	case "UNPAID":
		return "Your dedication shows even in unpaid leave planning."
	default:
		return "Smart leave planning detected."
	}
}

var (
	approvedMessages = []string{
		"Enjoy your well-deserved break!",
		"Time to relax and return refreshed!",
		"Your team supports your time off!",
		"Make the most of your approved leave!",
	}
	pendingMessages = []string{
		"Your request shows excellent planning!",
		"Proactive leave planning detected!",
		"Your manager will appreciate the advance notice!",
		"Good timing for this request!",
	}
	rejectedMessages = []string{
		"Consider alternative dates for better approval chances.",
		"Your understanding shows great teamwork!",
		"Perhaps a different timing would work better.",
		"Your flexibility will be appreciated!",
	}
)

func (g *Generator) statusMessage(status string) string {
	var pool []string
	switch status {
	case "APPROVED":
		pool = approvedMessages
	case "REJECTED":
		pool = rejectedMessages
	default:
		pool = pendingMessages
	}
	return pool[g.rng.Intn(len(pool))]
}
