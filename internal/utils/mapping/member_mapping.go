package mapping

import (
	"github.com/vikoba/vikoba_backend/internal/core/domain"
	"github.com/vikoba/vikoba_backend/internal/models"
)

// ToDomainMember converts a membership row to a domain.Member.
func ToDomainMember(m models.Member) domain.Member {
	return domain.Member{
		MemberID:        m.MemberID,
		GroupID:         m.GroupID,
		UserID:          m.UserID,
		Role:            domain.MemberRole(m.Role),
		Status:          domain.MemberStatus(m.Status),
		Balance:         m.Balance,
		UnpaidPenalties: m.UnpaidPenalties,
		JoinedAt:        m.JoinedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainGroup converts a group row to a domain.Group.
func ToDomainGroup(g models.Group) domain.Group {
	return domain.Group{
		GroupID:               g.GroupID,
		Name:                  g.Name,
		Description:           g.Description,
		MonthlyDueAmount:      g.MonthlyDueAmount,
		PenaltyAmount:         g.PenaltyAmount,
		ContributionDueDay:    g.ContributionDueDay,
		MinContributionMonths: g.MinContributionMonths,
		MaxLoanMultiplier:     g.MaxLoanMultiplier,
		IsActive:              g.IsActive,
		AuditFields:           ToDomainAuditFields(g.AuditFields),
	}
}

// ToDomainLoan converts a loan row to a domain.Loan.
func ToDomainLoan(l models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:      l.LoanID,
		GroupID:     l.GroupID,
		UserID:      l.UserID,
		Amount:      l.Amount,
		Status:      domain.LoanStatus(l.Status),
		AuditFields: ToDomainAuditFields(l.AuditFields),
	}
}
