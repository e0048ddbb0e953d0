package assistant

import (
	"context"
	"fmt"
	"strings"
)

// OfflinePlanner answers from keyword heuristics without any network
// access. It is the default for local development and tests.
type OfflinePlanner struct {
	persona Persona
}

func NewOfflinePlanner(p Persona) *OfflinePlanner {
	return &OfflinePlanner{persona: p}
}

type topic struct {
	keywords []string
	answer   string
}

var topics = []topic{
	{[]string{"budget", "cost", "price", "afford"}, "A common split is roughly 40% venue and catering, 15% photography, 10% decoration, 10% outfits and jewellery, and the rest for music, makeup, invitations and transport. Keep 5-10% aside for surprises."},
	{[]string{"venue", "hall", "banquet"}, "Book the venue first: it fixes your date and capacity. Compare banquet halls with garden or poolside options and check what catering and decoration they include."},
	{[]string{"photo", "camera", "shoot"}, "Decide between candid, traditional or a mix, and ask photographers for full wedding albums rather than highlights. Pre-wedding shoots are usually priced separately."},
	{[]string{"cater", "food", "menu"}, "Caterers usually quote per plate. Ask for a tasting, confirm live counter charges and check how they handle dietary requirements."},
	{[]string{"decor", "flower", "floral", "stage"}, "Share your colour palette and venue photos with decorators early; stage design and floral work are the biggest line items."},
	{[]string{"timeline", "schedule", "when", "first"}, "Start 12 months out with the venue and budget, photographers and caterers around 8 months, decorators and outfits at 6, invitations at 3, and final fittings and vendor confirmations in the last month."},
	{[]string{"guest", "invite", "invitation"}, "Your guest count drives venue size and catering cost, so settle it before booking either. Invitations should go out about three months ahead."},
}

// Reply picks the first topic mentioned in the message and tailors it to
// the user's preferences.
func (p *OfflinePlanner) Reply(ctx context.Context, req Request) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}
	msg := strings.ToLower(req.Message)
	answer := "I can help with budgets, venues, vendors and timelines."
	for _, t := range topics {
		if containsAny(msg, t.keywords) {
			answer = t.answer
			break
		}
	}

	var b strings.Builder
	b.WriteString(answer)
	if ctxLine := describe(req.Preferences, ""); ctxLine != "" {
		fmt.Fprintf(&b, " Based on what I know (%s), I can shortlist matching vendors.", ctxLine)
	}
	b.WriteString(" ")
	b.WriteString(nextQuestion(req))
	return Reply{Text: b.String()}, nil
}

func nextQuestion(req Request) string {
	prefs := req.Preferences
	switch {
	case prefs == nil || prefs.Budget <= 0:
		return "What budget are you working with?"
	case prefs.GuestCount <= 0:
		return "How many guests are you expecting?"
	case prefs.StylePreference == "":
		return "Which style do you prefer: traditional, modern or fusion?"
	default:
		return "Which vendor category would you like to look at next?"
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
