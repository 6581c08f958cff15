package mapping

import (
	"github.com/vikoba/vikoba_backend/internal/core/domain"
	"github.com/vikoba/vikoba_backend/internal/models"
)

// ToModelContribution converts a domain.Contribution to its persistence model.
func ToModelContribution(c domain.Contribution) models.Contribution {
	return models.Contribution{
		ContributionID:  c.ContributionID,
		GroupID:         c.GroupID,
		UserID:          c.UserID,
		Amount:          c.Amount,
		Month:           c.Month,
		Year:            c.Year,
		Status:          models.ContributionStatus(c.Status),
		IsLate:          c.IsLate,
		PenaltyApplied:  c.PenaltyApplied,
		ReviewedBy:      c.ReviewedBy,
		ReviewedAt:      c.ReviewedAt,
		RejectionReason: c.RejectionReason,
		AuditFields:     ToModelAuditFields(c.AuditFields),
	}
}

// ToDomainContribution converts a persistence model row to a domain.Contribution.
func ToDomainContribution(m models.Contribution) domain.Contribution {
	return domain.Contribution{
		ContributionID:  m.ContributionID,
		GroupID:         m.GroupID,
		UserID:          m.UserID,
		Amount:          m.Amount,
		Month:           m.Month,
		Year:            m.Year,
		Status:          domain.ContributionStatus(m.Status),
		IsLate:          m.IsLate,
		PenaltyApplied:  m.PenaltyApplied,
		ReviewedBy:      m.ReviewedBy,
		ReviewedAt:      m.ReviewedAt,
		RejectionReason: m.RejectionReason,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainContributionSlice converts a slice of model rows to domain objects.
func ToDomainContributionSlice(ms []models.Contribution) []domain.Contribution {
	out := make([]domain.Contribution, len(ms))
	for i, m := range ms {
		out[i] = ToDomainContribution(m)
	}
	return out
}
