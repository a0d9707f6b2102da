package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecodrive/handlers"
	"ecodrive/services"
	"ecodrive/utils"
)

// Services bundles what the router needs to serve every resource.
type Services struct {
	Neighborhoods       *services.NeighborhoodService
	Dealerships         *services.DealershipService
	ChargingStations    *services.ChargingStationService
	SustainableStations *services.SustainableStationService
	EnergySources       *services.EnergySourceService
	StationStatuses     *services.StationStatusService
	ChargingHistory     *services.ChargingHistoryService
	ChargingExpenses    *services.ChargingExpenseService
	Reservations        *services.ReservationService
	Vehicles            *services.VehicleService
	Users               *services.UserService
}

// New builds the engine with the middleware chain and every route.
func New(log *zap.Logger, svc Services, tokens *utils.TokenIssuer) *gin.Engine {
	handlers.RegisterValidators()

	r := gin.New()
	r.Use(RequestID(), Logger(log), Recovery(log), ErrorHandler(log))
	Path(&r.RouterGroup, svc, tokens)
	return r
}

func Path(router *gin.RouterGroup, svc Services, tokens *utils.TokenIssuer) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	handlers.NewNeighborhoodHandler(svc.Neighborhoods).Register(router.Group("/bairros"))
	handlers.NewDealershipHandler(svc.Dealerships).Register(router.Group("/concessionarias"))
	handlers.NewChargingStationHandler(svc.ChargingStations).Register(router.Group("/estacoes-recarga"))
	handlers.NewSustainableStationHandler(svc.SustainableStations).Register(router.Group("/estacoes-sustentaveis"))
	handlers.NewEnergySourceHandler(svc.EnergySources).Register(router.Group("/fontes-energia"))
	handlers.NewStationStatusHandler(svc.StationStatuses).Register(router.Group("/status-estacoes"))
	handlers.NewChargingHistoryHandler(svc.ChargingHistory).Register(router.Group("/historico-carregamento"))
	handlers.NewChargingExpenseHandler(svc.ChargingExpenses).Register(router.Group("/gastos-carregamento"))
	handlers.NewReservationHandler(svc.Reservations).Register(router.Group("/reservas"))
	handlers.NewVehicleHandler(svc.Vehicles).Register(router.Group("/veiculos"))
	handlers.NewUserHandler(svc.Users).Register(router.Group("/usuarios"), AuthMiddleware(tokens))
}
