package account

import (
	"fmt"
	"regexp"
	"time"
)

// Tier is the membership tier encoded in a user's account status.
type Tier string

const (
	TierNone    Tier = ""
	TierFree    Tier = "Free"
	TierPremium Tier = "Premium"
)

// Mode describes whether an account is usable.
type Mode int

const (
	ModeActive Mode = iota
	ModeSuspended
	ModeDeactivated
)

func (m Mode) String() string {
	switch m {
	case ModeActive:
		return "active"
	case ModeSuspended:
		return "suspended"
	case ModeDeactivated:
		return "deactivated"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Action is an administrative change to an account status.
type Action string

const (
	ActionActivatePremium   Action = "ActivatePremium"
	ActionActivateFree      Action = "ActivateFree"
	ActionSuspend           Action = "Suspend"
	ActionDeactivatePremium Action = "DeactivatePremium"
	ActionDeactivateFree    Action = "DeactivateFree"
)

// ParseAction validates an action name received from a client.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionActivatePremium, ActionActivateFree, ActionSuspend, ActionDeactivatePremium, ActionDeactivateFree:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

const (
	statusSuspend    = "Suspend"
	statusDeactivate = "Deactivate"

	// untilLayout is MMDDYYYY.
	untilLayout = "01022006"
)

var deactivatedPattern = regexp.MustCompile(`^Deactivate(Free|Premium)(\d{8})$`)

// Status is the decoded form of the textual account_status column.
// Until is set if and only if Mode is ModeDeactivated.
type Status struct {
	Tier  Tier
	Mode  Mode
	Until *time.Time
}

// Encode renders the status string stored for the given action. The date is
// only used, and required, by the deactivate actions.
func Encode(action Action, date time.Time) (string, error) {
	switch action {
	case ActionActivatePremium:
		return string(TierPremium), nil
	case ActionActivateFree:
		return string(TierFree), nil
	case ActionSuspend:
		return statusSuspend, nil
	case ActionDeactivatePremium, ActionDeactivateFree:
		if date.IsZero() {
			return "", ErrEffectiveDateRequired
		}

		tier := TierFree
		if action == ActionDeactivatePremium {
			tier = TierPremium
		}

		return statusDeactivate + string(tier) + date.Format(untilLayout), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

// Decode parses a stored status string. Unrecognized strings return
// ErrUnknownStatus; callers must treat such accounts as unable to transact.
func Decode(s string) (Status, error) {
	if s == statusSuspend {
		return Status{Tier: TierNone, Mode: ModeSuspended}, nil
	}

	if m := deactivatedPattern.FindStringSubmatch(s); m != nil {
		until, err := time.Parse(untilLayout, m[2])
		if err != nil {
			return Status{}, fmt.Errorf("%w: invalid date in %q", ErrUnknownStatus, s)
		}

		return Status{Tier: Tier(m[1]), Mode: ModeDeactivated, Until: &until}, nil
	}

	switch Tier(s) {
	case TierFree, TierPremium:
		return Status{Tier: Tier(s), Mode: ModeActive}, nil
	}

	return Status{}, fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// String re-encodes the status into its stored form.
func (s Status) String() string {
	switch s.Mode {
	case ModeSuspended:
		return statusSuspend
	case ModeDeactivated:
		if s.Until == nil {
			return statusDeactivate + string(s.Tier)
		}

		return statusDeactivate + string(s.Tier) + s.Until.Format(untilLayout)
	default:
		return string(s.Tier)
	}
}

// CanTransact reports whether the account may make or receive offers at now.
// A deactivation lapses on its until date.
func (s Status) CanTransact(now time.Time) bool {
	if s.Tier == TierNone {
		return false
	}

	switch s.Mode {
	case ModeActive:
		return true
	case ModeDeactivated:
		return s.Until != nil && !now.Before(*s.Until)
	default:
		return false
	}
}
