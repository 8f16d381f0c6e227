// Package webservice serves the toolkit over HTTP and streams calculations
// to websocket clients.
package webservice

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ohowland/elecalc/internal/pkg/msg"
	"github.com/ohowland/elecalc/internal/pkg/project"
	"github.com/ohowland/elecalc/internal/pkg/toolkit"
)

// DefaultListen is the listen address used when none is configured.
const DefaultListen = ":8080"

const contentType = "application/json; charset=UTF-8"

// Config holds the server settings.
type Config struct {
	Listen string `json:"Listen" yaml:"listen"`
}

// ProjectResponse is the body of every /project response.
type ProjectResponse struct {
	Message string        `json:"Message"`
	State   project.State `json:"State,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"Error"`
}

// App routes requests to a toolkit and a project service.
type App struct {
	pid       uuid.UUID
	toolkit   *toolkit.Toolkit
	project   *project.Service
	publisher msg.Publisher
	inbox     <-chan msg.Msg
	hub       *hub
	router    *mux.Router
	life      *msg.Lifecycle
}

// New builds an App. The websocket feed subscribes to the publisher's
// calculations.
func New(tk *toolkit.Toolkit, proj *project.Service, publisher msg.Publisher) (*App, error) {
	pid, err := uuid.NewUUID()
	if err != nil {
		return nil, err
	}
	inbox, err := publisher.Subscribe(pid, msg.Calculation)
	if err != nil {
		return nil, err
	}

	a := &App{
		pid:       pid,
		toolkit:   tk,
		project:   proj,
		publisher: publisher,
		inbox:     inbox,
		hub:       newHub(),
		life:      msg.NewLifecycle(),
	}
	a.router = a.makeRouter()
	return a, nil
}

// PID returns the app's PID
func (a *App) PID() uuid.UUID {
	return a.pid
}

// Router returns the request router.
func (a *App) Router() *mux.Router {
	return a.router
}

func (a *App) makeRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", a.calculatorsHandler).Methods("GET")
	r.HandleFunc("/calc/{name}", a.calcHandler).Methods("POST")
	r.HandleFunc("/project", a.projectHandler).Methods("GET", "PUT", "DELETE")
	r.HandleFunc("/ws", a.hub.serveWS).Methods("GET")
	return r
}

// Process forwards calculations to websocket clients until Stop is called
// or the publisher closes.
func (a *App) Process() {
	if !a.life.Start() {
		return
	}
	defer a.life.Done()
loop:
	for {
		select {
		case m, ok := <-a.inbox:
			if !ok {
				break loop
			}
			if c, ok := m.Payload().(toolkit.Calculation); ok {
				a.hub.broadcast(c)
			}
		case <-a.life.Stopping():
			break loop
		}
	}
	a.hub.closeAll()
	log.Println("[Webservice] Process Shutdown")
}

// Stop ends Process and unsubscribes. It is safe to call before Process
// runs or more than once.
func (a *App) Stop() {
	a.life.Stop()
	a.publisher.Unsubscribe(a.pid)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (a *App) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultListen
	}
	srv := &http.Server{Addr: addr, Handler: a.router}

	errc := make(chan error, 1)
	go func() {
		log.Println("[Webservice] Starting Server on", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("[Webservice] malformed JSON:", err)
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, ErrorResponse{Error: err.Error()})
}

func (a *App) calculatorsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.toolkit.Calculators())
}

func decodeForm(r *http.Request) (toolkit.Form, error) {
	form := toolkit.Form{}
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		return nil, err
	}
	return form, nil
}

func (a *App) calcHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if _, ok := a.toolkit.Calculator(name); !ok {
		writeError(w, http.StatusNotFound, toolkit.ErrUnknownCalculator)
		return
	}

	form, err := decodeForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	c, err := a.toolkit.Run(name, form)
	if errors.Is(err, toolkit.ErrUnknownCalculator) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (a *App) projectHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		resp ProjectResponse
		err  error
	)

	switch r.Method {
	case "GET":
		resp.State, resp.Message, err = a.project.Load(ctx)
	case "PUT":
		form, derr := decodeForm(r)
		if derr != nil {
			writeError(w, http.StatusBadRequest, derr)
			return
		}
		resp.Message, err = a.project.Save(ctx, form)
	case "DELETE":
		resp.Message, err = a.project.Clear(ctx)
	}

	if err != nil {
		log.Println("[Webservice] project:", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
