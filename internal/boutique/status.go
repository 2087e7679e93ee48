package boutique

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

var validNext = map[Status]map[Status]bool{
	StatusPending:   {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed: {StatusCompleted: true},
	StatusCompleted: {},
	StatusCancelled: {},
}

func (s Status) Valid() bool {
	_, ok := validNext[s]
	return ok
}

// Active reports whether a reservation in this status still holds its dates.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// CheckTransition returns a validation error when from -> to is not part of
// the order lifecycle.
func CheckTransition(from, to Status) error {
	if !to.Valid() {
		return Validationf("unknown status %q", to)
	}
	if !CanTransition(from, to) {
		return Validationf("cannot move from %s to %s", from, to)
	}
	return nil
}
