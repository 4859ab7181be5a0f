package dto

import (
	"github.com/dineflow/table-service/internal/application/booking"
	"github.com/dineflow/table-service/internal/domain"
)

// ToAssignmentRequest validates and normalizes the wire request.
func ToAssignmentRequest(in AssignReq) (domain.AssignmentRequest, error) {
	req, err := domain.NewAssignmentRequest(in.Date, in.Time, in.PartySize, in.DurationMinutes)
	if err != nil {
		return domain.AssignmentRequest{}, err
	}
	req.AreaID = in.AreaID
	req.Location = in.Location
	req.Accessible = in.Accessible

	if in.Shape != "" {
		shape := domain.TableShape(in.Shape)
		if !shape.Valid() {
			return domain.AssignmentRequest{}, domain.ErrValidationMeta("invalid table shape", map[string]string{
				"shape": "must be one of: round, square, rectangle",
			})
		}
		req.Shape = shape
	}
	return req, nil
}

func ToEnqueueCmd(in EnqueueWaitlistReq) booking.EnqueueCmd {
	return booking.EnqueueCmd{
		CustomerID:    in.CustomerID,
		Date:          in.Date,
		PartySize:     in.PartySize,
		PreferredTime: in.PreferredTime,
		AreaID:        in.AreaID,
		Priority:      in.Priority,
	}
}
