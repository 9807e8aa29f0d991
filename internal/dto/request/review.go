package request

import (
	"bytes"
	"encoding/json"
)

type CreateReviewRequest struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

// EditReviewRequest is a partial update: omitted fields keep their stored
// value, an explicit "comment": null clears the comment.
type EditReviewRequest struct {
	Rating       *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Comment      *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
	ClearComment bool    `json:"-"`
}

func (r *EditReviewRequest) UnmarshalJSON(data []byte) error {
	type plain EditReviewRequest
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*r = EditReviewRequest(decoded)
	if raw, ok := fields["comment"]; ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		r.ClearComment = true
	}
	return nil
}
