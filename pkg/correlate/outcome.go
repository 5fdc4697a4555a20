package correlate

// Outcome describes how a request's correlation id was obtained.
type Outcome uint8

const (
	// OutcomeUnresolved is the zero value: the request was never resolved.
	OutcomeUnresolved Outcome = iota
	// OutcomeAcceptedIncoming means a trusted peer supplied a usable id.
	OutcomeAcceptedIncoming
	// OutcomeRejectedUntrusted means an id was supplied by an untrusted peer.
	OutcomeRejectedUntrusted
	// OutcomeRejectedInvalid means a trusted peer supplied an id the validator refused.
	OutcomeRejectedInvalid
	// OutcomeGeneratedNoHeader means no id was supplied at all.
	OutcomeGeneratedNoHeader
)

// Outcomes lists every resolved outcome in a stable order.
var Outcomes = []Outcome{
	OutcomeAcceptedIncoming,
	OutcomeRejectedUntrusted,
	OutcomeRejectedInvalid,
	OutcomeGeneratedNoHeader,
}

func (o Outcome) String() string {
	switch o {
	case OutcomeAcceptedIncoming:
		return "accepted_incoming"
	case OutcomeRejectedUntrusted:
		return "rejected_untrusted"
	case OutcomeRejectedInvalid:
		return "rejected_invalid"
	case OutcomeGeneratedNoHeader:
		return "generated_no_header"
	default:
		return "unresolved"
	}
}

// Accepted reports whether the incoming id was used as is.
func (o Outcome) Accepted() bool { return o == OutcomeAcceptedIncoming }
