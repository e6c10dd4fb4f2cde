package domain

import "strings"

// InteractionAction is a follow-up item attached to a contact interaction.
type InteractionAction string

const (
	ActionFollowUpCall      InteractionAction = "follow_up_call"
	ActionFollowUpEmail     InteractionAction = "follow_up_email"
	ActionScheduleMeeting   InteractionAction = "schedule_meeting"
	ActionSendProposal      InteractionAction = "send_proposal"
	ActionReviewProposal    InteractionAction = "review_proposal"
	ActionSendContract      InteractionAction = "send_contract"
	ActionSendDocumentation InteractionAction = "send_documentation"
	ActionScheduleDemo      InteractionAction = "schedule_demo"
	ActionCheckIn           InteractionAction = "check_in"
	ActionSendQuote         InteractionAction = "send_quote"
	ActionFollowUpInWeeks   InteractionAction = "follow_up_in_weeks"
	ActionFollowUpInMonths  InteractionAction = "follow_up_in_months"
	ActionSendInvoice       InteractionAction = "send_invoice"
	ActionRequestFeedback   InteractionAction = "request_feedback"
	ActionSendThankYou      InteractionAction = "send_thank_you"
	ActionOnboardingCall    InteractionAction = "onboarding_call"
	ActionTrainingSession   InteractionAction = "training_session"
	ActionCustom            InteractionAction = "custom"
)

var interactionActionOrder = []InteractionAction{
	ActionFollowUpCall,
	ActionFollowUpEmail,
	ActionScheduleMeeting,
	ActionSendProposal,
	ActionReviewProposal,
	ActionSendContract,
	ActionSendDocumentation,
	ActionScheduleDemo,
	ActionCheckIn,
	ActionSendQuote,
	ActionFollowUpInWeeks,
	ActionFollowUpInMonths,
	ActionSendInvoice,
	ActionRequestFeedback,
	ActionSendThankYou,
	ActionOnboardingCall,
	ActionTrainingSession,
	ActionCustom,
}

var interactionActionSet = func() map[InteractionAction]struct{} {
	m := make(map[InteractionAction]struct{}, len(interactionActionOrder))
	for _, a := range interactionActionOrder {
		m[a] = struct{}{}
	}
	return m
}()

func ValidInteractionAction(a string) bool {
	_, ok := interactionActionSet[InteractionAction(a)]
	return ok
}

func InteractionActionValues() []string {
	out := make([]string, 0, len(interactionActionOrder))
	for _, a := range interactionActionOrder {
		out = append(out, string(a))
	}
	return out
}

// Label renders the action for display, e.g. "follow_up_call" -> "Follow Up Call".
func (a InteractionAction) Label() string {
	parts := strings.Split(string(a), "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
