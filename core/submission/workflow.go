package submission

import (
	"strings"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/lessonnotes/core"
)

var (
	errFeedbackRequired = "Feedback is required for this action."
	errInvalidStatus    = "invalid status; expected one of: Pending, Approved, Needs Correction, Rejected"
)

// Transition applies a review to sub and returns the updated copy.
// Needs Correction and Rejected require feedback that is not blank once trimmed;
// on failure sub is returned unchanged along with a *core.ValidationError.
// Feedback is only kept by Needs Correction and Rejected; any other status clears it.
func Transition(sub Submission, r Review) (Submission, error) {
	status, err := ParseStatus(r.Status)
	if err != nil {
		return sub, core.NewValidationError(err, core.FieldError{Field: "status", Error: errInvalidStatus})
	}

	feedback := strings.TrimSpace(r.Feedback)
	if status.RequiresFeedback() && feedback == "" {
		return sub, core.NewValidationError(nil, core.FieldError{Field: "feedback", Error: errFeedbackRequired})
	}

	sub.Status = status
	if status.RequiresFeedback() {
		sub.Feedback = null.StringFrom(feedback)
	} else {
		sub.Feedback = null.String{}
	}
	return sub, nil
}
