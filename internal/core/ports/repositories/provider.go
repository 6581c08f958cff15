package repositories

// RepositoryProvider bundles the concrete repositories for service wiring.
type RepositoryProvider struct {
	GroupRepo        GroupRepositoryFacade
	ContributionRepo ContributionRepositoryWithTx
	LoanRepo         LoanReader
	ActivityRepo     ActivityWriter
}
