package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/mtlprog/treelife/docs" // Import generated docs
	"github.com/mtlprog/treelife/internal/handler/dto"
	"github.com/mtlprog/treelife/internal/repository"
	"github.com/mtlprog/treelife/internal/service"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool          *pgxpool.Pool
	personRepo    *repository.PersonRepository
	treeRepo      *repository.TreeRepository
	addressRepo   *repository.AddressRepository
	orderService  *service.OrderService
	personService *service.PersonService
}

// New creates a new Handler instance with all dependencies.
func New(pool *pgxpool.Pool) *Handler {
	// Create repositories
	personRepo := repository.NewPersonRepository(pool)
	treeRepo := repository.NewTreeRepository(pool)
	addressRepo := repository.NewAddressRepository(pool)

	// Create services
	orderService := service.NewOrderService(pool, personRepo, treeRepo)
	personService := service.NewPersonService(pool, personRepo, treeRepo, addressRepo, orderService)

	return &Handler{
		pool:          pool,
		personRepo:    personRepo,
		treeRepo:      treeRepo,
		addressRepo:   addressRepo,
		orderService:  orderService,
		personService: personService,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health
	mux.HandleFunc("GET /{$}", h.handleRoot)
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	mux.HandleFunc("GET /users", h.handleListUsers)

	mux.HandleFunc("GET /persons/email-exists", h.handleEmailExists)
	mux.HandleFunc("POST /persons", h.handleCreatePerson)
	mux.HandleFunc("GET /persons/{id}", h.handleGetPerson)
	mux.HandleFunc("GET /persons/{id}/tree", h.handleGetPersonTree)
	mux.HandleFunc("GET /persons/{id}/has-order", h.handleGetPersonHasOrder)
	mux.HandleFunc("GET /persons/{id}/addresses", h.handleListAddresses)
	mux.HandleFunc("POST /persons/{id}/addresses", h.handleCreateAddress)

	mux.HandleFunc("GET /trees/available", h.handleAvailableTrees)

	mux.HandleFunc("POST /orders/tree", h.handlePlaceOrder)
	mux.HandleFunc("DELETE /orders/cancel/{person_id}", h.handleCancelOrder)
}

// handleRoot answers the root liveness probe.
// @Summary Root
// @Tags health
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router / [get]
func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.MessageResponse{Message: "Hello World"})
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pool.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError maps err with dto.MapDomainError and writes it.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code, message := dto.MapDomainError(err)
	respondError(w, status, code, message)
}

// extractID parses a numeric path parameter.
// Returns (id, true) if valid, (0, false) if invalid (error already sent to client).
func extractID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", name+" must be an integer")
		return 0, false
	}
	return id, true
}
