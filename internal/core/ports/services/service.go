package services

// ServiceContainer holds all service interfaces used by the handlers.
type ServiceContainer struct {
	Ledger     LedgerSvcFacade
	Order      OrderSvcFacade
	Settlement SettlementSvc
	Brigade    BrigadeSvcFacade
	Settings   SettingsSvcFacade
}
