package services

import (
	portsrepo "github.com/FleetScanHQ/fuel_tax_app/internal/core/ports/repositories"
	portssvc "github.com/FleetScanHQ/fuel_tax_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, extractor portssvc.ReceiptExtractor, imageStore portssvc.ReceiptImageStore) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.FuelLog = NewFuelLogService(repos.FuelLogRepo)
	container.Reporting = NewReportingService(repos.FuelLogRepo)
	container.Extraction = NewExtractionService(extractor, imageStore, container.FuelLog)

	return container
}
