package api

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type Handlers struct {
	Admin   *AdminHandler
	Blocks  *BlockHandler
	Parking *ParkingHandler
}

// NewRouter registers every route and wraps the mux with access logging,
// panic recovery, request ids and CORS. Request ids wrap the mux itself so
// unmatched routes get one too.
func NewRouter(h Handlers, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", h.Admin.Root).Methods("GET")
	r.HandleFunc("/healthz", h.Admin.Health).Methods("GET")
	r.HandleFunc("/initiate_db", h.Admin.InitiateDB).Methods("GET")

	r.HandleFunc("/block", h.Blocks.CreateBlock).Methods("POST")
	r.HandleFunc("/block/{vehicle_type}/availabilities", h.Blocks.ListAvailabilities).Methods("GET")

	r.HandleFunc("/enter", h.Parking.Enter).Methods("POST")
	r.HandleFunc("/checkout/{vehicle_id}", h.Parking.Checkout).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
		handlers.ExposedHeaders([]string{requestIDHeader}),
	)
	recovery := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))

	return handlers.CombinedLoggingHandler(os.Stdout, recovery(RequestIDMiddleware(cors(r))))
}
