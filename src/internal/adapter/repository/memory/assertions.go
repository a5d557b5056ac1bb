package memory

import "github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/repository/repo_interfaces"

var (
	_ repo_interfaces.RegisterRepository        = (*RegisterRepository)(nil)
	_ repo_interfaces.BankAccountRepository     = (*BankAccountRepository)(nil)
	_ repo_interfaces.RegisterSessionRepository = (*RegisterSessionRepository)(nil)
	_ repo_interfaces.LedgerRepository          = (*LedgerRepository)(nil)
	_ repo_interfaces.ContractRepository        = (*ContractRepository)(nil)
	_ repo_interfaces.InstallmentRepository     = (*InstallmentRepository)(nil)
	_ repo_interfaces.PaymentRepository         = (*PaymentRepository)(nil)
	_ repo_interfaces.QuoteRepository           = (*QuoteRepository)(nil)
	_ repo_interfaces.ParameterRepository       = (*ParameterRepository)(nil)
	_ repo_interfaces.AuditRepository           = (*AuditRepository)(nil)
	_ repo_interfaces.ExpenseRepository         = (*ExpenseRepository)(nil)
)
