package services

// ServiceContainer bundles every service facade for route registration.
type ServiceContainer struct {
	Inventory InventorySvc
	Deal      DealSvc
	Property  PropertySvc
	Client    ClientSvc
	Document  DocumentSvc
	Balance   BalanceSvc
	Payment   PaymentSvc
	Ticket    TicketSvc
	User      UserSvc
}
