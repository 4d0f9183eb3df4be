package api

import (
	"net/http"
	"strconv"
	"strings"

	"peluqueria/internal/models"
)

func (s *HTTPServer) handleListClientes(w http.ResponseWriter, r *http.Request) {
	clientes, err := s.svc.Clientes.SearchClientes(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"clientes": clientes})
}

func (s *HTTPServer) handleCreateCliente(w http.ResponseWriter, r *http.Request) {
	var req clienteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cliente := &models.Cliente{}
	req.apply(cliente)
	if err := s.svc.Clientes.CreateCliente(r.Context(), cliente); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cliente)
}

func (s *HTTPServer) handleGetCliente(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cliente, err := s.svc.Clientes.GetCliente(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cliente)
}

func (s *HTTPServer) handleUpdateCliente(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req clienteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cliente, err := s.svc.Clientes.GetCliente(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	req.apply(cliente)
	if err := s.svc.Clientes.UpdateCliente(r.Context(), cliente); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cliente)
}

func (s *HTTPServer) handleDeleteCliente(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.svc.Clientes.DeleteCliente(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleListTurnosCliente(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := s.svc.Clientes.GetCliente(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	turnos, err := s.svc.Turnos.ListTurnosByCliente(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"turnos": turnos})
}

func (s *HTTPServer) handleListServicios(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		servicios []*models.Servicio
		err       error
	)
	switch {
	case q.Get("tipo") != "":
		servicios, err = s.svc.Servicios.ListServiciosByTipo(r.Context(),
			models.TipoServicio(strings.ToUpper(strings.TrimSpace(q.Get("tipo")))))
	case q.Get("activos") == "true":
		servicios, err = s.svc.Servicios.ListServiciosActivos(r.Context())
	default:
		servicios, err = s.svc.Servicios.ListServicios(r.Context())
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"servicios": servicios})
}

func (s *HTTPServer) handleCreateServicio(w http.ResponseWriter, r *http.Request) {
	var req servicioRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	servicio := &models.Servicio{}
	req.apply(servicio)
	if err := s.svc.Servicios.CreateServicio(r.Context(), servicio); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, servicio)
}

func (s *HTTPServer) handleGetServicio(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	servicio, err := s.svc.Servicios.GetServicio(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, servicio)
}

func (s *HTTPServer) handleUpdateServicio(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req servicioRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	servicio, err := s.svc.Servicios.GetServicio(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	req.apply(servicio)
	if err := s.svc.Servicios.UpdateServicio(r.Context(), servicio); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, servicio)
}

func (s *HTTPServer) handleDeleteServicio(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.svc.Servicios.DeleteServicio(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleListTurnos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		turnos []*models.Turno
		err    error
	)
	switch {
	case q.Get("fecha") != "":
		fecha, perr := parseFecha(q.Get("fecha"))
		if perr != nil {
			writeError(w, http.StatusBadRequest, perr.Error())
			return
		}
		turnos, err = s.svc.Turnos.ListTurnosByFecha(r.Context(), fecha)
	case q.Get("estado") != "":
		turnos, err = s.svc.Turnos.ListTurnosByEstado(r.Context(),
			models.EstadoTurno(strings.ToUpper(strings.TrimSpace(q.Get("estado")))))
	default:
		turnos, err = s.svc.Turnos.ListTurnos(r.Context())
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"turnos": turnos})
}

func (s *HTTPServer) handleCreateTurno(w http.ResponseWriter, r *http.Request) {
	var req turnoRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	turno := &models.Turno{}
	if err := req.apply(turno); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.svc.Turnos.CreateTurno(r.Context(), turno); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, turno)
}

func (s *HTTPServer) handleGetTurno(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	turno, err := s.svc.Turnos.GetTurno(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, turno)
}

func (s *HTTPServer) handleUpdateTurno(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req turnoRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	turno, err := s.svc.Turnos.GetTurno(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := req.apply(turno); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.svc.Turnos.UpdateTurno(r.Context(), turno); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, turno)
}

func (s *HTTPServer) handleDeleteTurno(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.svc.Turnos.DeleteTurno(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleCompleteTurno(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	turno, err := s.svc.Turnos.CompleteTurno(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, turno)
}

func (s *HTTPServer) handleCancelTurno(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	turno, err := s.svc.Turnos.CancelTurno(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, turno)
}

func (s *HTTPServer) handleRegisterPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req pagoRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	forma := models.FormaPago(strings.ToUpper(strings.TrimSpace(req.FormaPago)))
	turno, err := s.svc.Turnos.RegisterPayment(r.Context(), id, req.Monto, forma)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, turno)
}

func (s *HTTPServer) handleDisponibilidad(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	servicioID, err := strconv.ParseInt(strings.TrimSpace(q.Get("servicio_id")), 10, 64)
	if err != nil || servicioID <= 0 {
		writeError(w, http.StatusBadRequest, "servicio_id is required")
		return
	}
	fechaHora, err := parseFechaHora(q.Get("fecha_hora"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	available, err := s.svc.Turnos.IsAvailable(r.Context(), servicioID, fechaHora)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"servicio_id": servicioID,
		"fecha_hora":  fechaHora.Format(models.APIDateTimeLayout),
		"disponible":  available,
	})
}

func (s *HTTPServer) handleCajaHoy(w http.ResponseWriter, r *http.Request) {
	resumen, err := s.svc.Turnos.ResumenHoy(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resumen)
}

func (s *HTTPServer) handleActividad(w http.ResponseWriter, r *http.Request) {
	if s.svc.Actividad == nil {
		writeJSON(w, http.StatusOK, map[string]any{"actividad": []models.Actividad{}})
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	entries, err := s.svc.Actividad.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error al leer actividad")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"actividad": entries})
}
