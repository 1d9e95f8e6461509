package services

import (
	"github.com/SscSPs/bank_demo_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_demo_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_demo_app/internal/core/ports/services"
)

// Dependencies are the collaborators shared by the account services.
type Dependencies struct {
	Verifier domain.CompanyVerifier
	Options  []ServiceOption
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, deps Dependencies) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:         NewAccountService(repos.PersonalAccounts, deps.Options...),
		BusinessAccount: NewBusinessAccountService(repos.BusinessAccounts, deps.Verifier, deps.Options...),
	}
}
