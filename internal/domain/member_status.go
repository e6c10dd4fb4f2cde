package domain

// MemberStatus is a waiting list member's lifecycle stage. The set is fixed
// but there is no transition graph: any status may be set to any other.
type MemberStatus string

const (
	StatusPending   MemberStatus = "pending"
	StatusApproved  MemberStatus = "approved"
	StatusRejected  MemberStatus = "rejected"
	StatusNotified  MemberStatus = "notified"
	StatusAccepted  MemberStatus = "accepted"
	StatusDeclined  MemberStatus = "declined"
	StatusActive    MemberStatus = "active"
	StatusInactive  MemberStatus = "inactive"
	StatusCancelled MemberStatus = "cancelled"
)

var memberStatusOrder = []MemberStatus{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusNotified,
	StatusAccepted,
	StatusDeclined,
	StatusActive,
	StatusInactive,
	StatusCancelled,
}

var memberStatusSet = func() map[MemberStatus]struct{} {
	m := make(map[MemberStatus]struct{}, len(memberStatusOrder))
	for _, s := range memberStatusOrder {
		m[s] = struct{}{}
	}
	return m
}()

func ValidMemberStatus(s string) bool {
	_, ok := memberStatusSet[MemberStatus(s)]
	return ok
}

// MemberStatusValues returns the fixed status set in declaration order.
func MemberStatusValues() []string {
	out := make([]string, 0, len(memberStatusOrder))
	for _, s := range memberStatusOrder {
		out = append(out, string(s))
	}
	return out
}

func (s MemberStatus) String() string { return string(s) }
