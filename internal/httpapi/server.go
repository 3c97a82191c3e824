// Package httpapi is the thin Fiber front-end speaking the wire contract
// of spec §6 (Plan request/result, Slack-Insertion response). It holds no
// business logic of its own: every request is deserialized, handed to
// featurize/vrpsolver/serialize/vacancy, and the result re-serialized.
package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/homevisit/phleb-router/engineerr"
	"github.com/homevisit/phleb-router/entities"
	"github.com/homevisit/phleb-router/featurize"
	"github.com/homevisit/phleb-router/logging"
	"github.com/homevisit/phleb-router/metrics"
	"github.com/homevisit/phleb-router/oracle"
	"github.com/homevisit/phleb-router/serialize"
	"github.com/homevisit/phleb-router/vacancy"
	"github.com/homevisit/phleb-router/vrpsolver"
)

// Server wires the HTTP adapter's two endpoints to the core engine.
type Server struct {
	oracle oracle.TravelTimeOracle
	logger *zap.Logger
}

// NewServer constructs a Server. oracle is the shared travel-time
// collaborator (spec §5); logger may be nil, in which case a no-op
// logger is used.
func NewServer(o oracle.TravelTimeOracle, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{oracle: o, logger: logger}
}

// RegisterRoutes attaches the Plan and Slack-Insertion endpoints to app.
func (s *Server) RegisterRoutes(app *fiber.App) {
	app.Post("/plan", s.handlePlan)
	app.Post("/vacancies", s.handleVacancies)
}

func (s *Server) handlePlan(c *fiber.Ctx) error {
	var req planRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	orders, technicians, catchments, err := req.toEntities()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid entity", "details": err.Error()})
	}

	ctx := c.Context()
	view, err := featurize.BuildView(ctx, orders, technicians, catchments, s.oracle, req.mode())
	if err != nil {
		return s.respondEngineError(c, err)
	}

	cfg := vrpsolver.Config{}
	if req.TimeBudgetS > 0 {
		cfg.Budget = time.Duration(req.TimeBudgetS) * time.Second
	}

	start := time.Now()
	solution, err := vrpsolver.Solve(ctx, view, technicians, cfg)
	metrics.SolveDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return s.respondEngineError(c, err)
	}
	metrics.OrdersDropped.Add(float64(len(solution.UnassignedOrderIDs)))

	plan, err := serialize.Serialize(ctx, view, technicians, orders, catchments, solution, s.oracle)
	if err != nil {
		return s.respondEngineError(c, err)
	}

	s.logger.Info("plan solved",
		logging.String("status", plan.SolverStatus),
		logging.Int("routes", len(plan.Routes)),
		logging.Int("dropped", len(plan.DroppedOrderIDs)),
	)

	return c.JSON(buildPlanResponse(view, technicians, plan))
}

func (s *Server) handleVacancies(c *fiber.Ctx) error {
	var body struct {
		Plan    planResultStub `json:"plan"`
		Request vacancyRequest `json:"request"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	technicians, err := body.Plan.technicians()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid technician", "details": err.Error()})
	}

	plan := body.Plan.toPlan()
	coord := entities.Coordinate{Lat: body.Request.Lat, Lon: body.Request.Lon}

	metrics.VacancyQueries.Inc()
	rows, err := vacancy.FindVacancies(c.Context(), plan, technicians, coord, body.Request.RequiredService, body.Request.skillSet(), s.oracle)
	if err != nil {
		return s.respondEngineError(c, err)
	}
	metrics.VacancyRowsFound.Observe(float64(len(rows)))

	out := make([]vacancyRowDTO, len(rows))
	for i, r := range rows {
		out[i] = vacancyRowDTO{
			PhlebotomistID:     r.TechnicianID,
			TotalTravelTime:    r.TotalTravelTime,
			TimeWindowStart:    r.TimeWindowStart,
			TimeWindowEnd:      r.TimeWindowEnd,
			FromLocID:          r.FromLocID,
			ToLocID:            r.ToLocID,
			FromLocCoordinates: coordinateDTO{Lat: r.FromLocCoordinates.Lat, Lon: r.FromLocCoordinates.Lon},
			ToLocCoordinates:   coordinateDTO{Lat: r.ToLocCoordinates.Lat, Lon: r.ToLocCoordinates.Lon},
		}
	}
	return c.JSON(out)
}

func (s *Server) respondEngineError(c *fiber.Ctx, err error) error {
	kind, ok := engineerr.KindOf(err)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	status := fiber.StatusInternalServerError
	switch kind {
	case engineerr.KindInvalidInput:
		status = fiber.StatusBadRequest
	case engineerr.KindOracleError:
		status = fiber.StatusBadGateway
	case engineerr.KindInfeasibleModel, engineerr.KindBudgetExceeded:
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(fiber.Map{"kind": string(kind), "error": err.Error()})
}

func (r planRequest) toEntities() ([]entities.Order, []entities.Technician, []entities.Catchment, error) {
	orders := make([]entities.Order, len(r.Orders))
	for i, d := range r.Orders {
		o, err := d.toEntity()
		if err != nil {
			return nil, nil, nil, err
		}
		orders[i] = o
	}
	technicians := make([]entities.Technician, len(r.Technicians))
	for i, d := range r.Technicians {
		t, err := d.toEntity()
		if err != nil {
			return nil, nil, nil, err
		}
		technicians[i] = t
	}
	catchments := make([]entities.Catchment, len(r.Catchments))
	for i, d := range r.Catchments {
		ct, err := d.toEntity()
		if err != nil {
			return nil, nil, nil, err
		}
		catchments[i] = ct
	}
	return orders, technicians, catchments, nil
}

// planResultStub is the minimal slice of a previously-serialized Plan the
// Slack-Insertion endpoint needs: its routes and the technician roster
// that produced it. A real deployment would look these up by plan ID; the
// wire contract here accepts them inline to keep the adapter stateless.
type planResultStub struct {
	SolverStatus string          `json:"solver_status"`
	Routes       []routeStubDTO  `json:"routes"`
	Technicians  []technicianDTO `json:"technicians"`
}

type routeStubDTO struct {
	TechnicianID   string            `json:"technician_id"`
	EndCatchmentID string            `json:"end_catchment_id"`
	Waypoints      []waypointStubDTO `json:"waypoints"`
}

type waypointStubDTO struct {
	NodeID          string  `json:"node_id"`
	Lat             float64 `json:"lat"`
	Lon             float64 `json:"lon"`
	LowerTimeMinute int     `json:"lower_time_minute"`
	UpperTimeMinute int     `json:"upper_time_minute"`
}

func (p planResultStub) technicians() ([]entities.Technician, error) {
	out := make([]entities.Technician, len(p.Technicians))
	for i, d := range p.Technicians {
		t, err := d.toEntity()
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func (p planResultStub) toPlan() *serialize.Plan {
	routes := make([]serialize.Route, len(p.Routes))
	for i, r := range p.Routes {
		waypoints := make([]serialize.Waypoint, len(r.Waypoints))
		for j, w := range r.Waypoints {
			waypoints[j] = serialize.Waypoint{
				NodeID:          w.NodeID,
				Coordinate:      entities.Coordinate{Lat: w.Lat, Lon: w.Lon},
				LowerTimeMinute: w.LowerTimeMinute,
				UpperTimeMinute: w.UpperTimeMinute,
			}
		}
		routes[i] = serialize.Route{
			TechnicianID:   r.TechnicianID,
			EndCatchmentID: r.EndCatchmentID,
			Waypoints:      waypoints,
		}
	}
	return &serialize.Plan{Routes: routes, SolverStatus: p.SolverStatus}
}
