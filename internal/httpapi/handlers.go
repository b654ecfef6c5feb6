package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/softwerkskammer/Agora-sub003/core/events"
	"github.com/softwerkskammer/Agora-sub003/core/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeOutcome maps the command result onto the wire: a rejection becomes a
// 409 carrying the message keys, an infrastructure error a 500.
func (s *Server) writeOutcome(w http.ResponseWriter, rejection *service.Rejection, err error) {
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rejection != nil {
		writeJSON(w, http.StatusConflict, rejection)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseRoomType(s string) (events.RoomType, bool) {
	rt, err := events.ParseRoomType(s)
	return rt, err == nil
}

func parseRoomTypes(names []string) ([]events.RoomType, bool) {
	out := make([]events.RoomType, 0, len(names))
	for _, n := range names {
		rt, ok := parseRoomType(n)
		if !ok {
			return nil, false
		}
		out = append(out, rt)
	}
	return out, true
}

// === Conference lifecycle ===

func (s *Server) createConference(w http.ResponseWriter, r *http.Request) {
	url := chi.URLParam(r, "conference")
	if err := s.svc.CreateConference(r.Context(), url); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusCreated)
}

type quotaRequest struct {
	RoomType string `json:"roomType"`
	Quota    int    `json:"quota"`
}

func (s *Server) setRoomQuota(w http.ResponseWriter, r *http.Request) {
	var req quotaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	rt, ok := parseRoomType(req.RoomType)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown room type: "+req.RoomType)
		return
	}
	rejection, err := s.svc.SetRoomQuota(r.Context(), chi.URLParam(r, "conference"), rt, req.Quota)
	s.writeOutcome(w, rejection, err)
}

func (s *Server) openRegistration(w http.ResponseWriter, r *http.Request) {
	err := s.svc.OpenRegistration(r.Context(), chi.URLParam(r, "conference"))
	s.writeOutcome(w, nil, err)
}

func (s *Server) closeRegistration(w http.ResponseWriter, r *http.Request) {
	err := s.svc.CloseRegistration(r.Context(), chi.URLParam(r, "conference"))
	s.writeOutcome(w, nil, err)
}

// === Registration ===

type reservationRequest struct {
	RoomType  string `json:"roomType"`
	Duration  int    `json:"duration"`
	SessionID string `json:"sessionId"`
	MemberID  string `json:"memberId"`
}

func (s *Server) issueReservation(w http.ResponseWriter, r *http.Request) {
	var req reservationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	rt, ok := parseRoomType(req.RoomType)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown room type: "+req.RoomType)
		return
	}
	rejection, err := s.svc.IssueReservation(r.Context(), chi.URLParam(r, "conference"), rt, req.Duration, req.SessionID, req.MemberID)
	s.writeOutcome(w, rejection, err)
}

func (s *Server) registerParticipant(w http.ResponseWriter, r *http.Request) {
	var req reservationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	rt, ok := parseRoomType(req.RoomType)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown room type: "+req.RoomType)
		return
	}
	rejection, err := s.svc.RegisterParticipant(r.Context(), chi.URLParam(r, "conference"), rt, req.Duration, req.SessionID, req.MemberID)
	s.writeOutcome(w, rejection, err)
}

type waitinglistRequest struct {
	DesiredRoomTypes []string `json:"desiredRoomTypes"`
	SessionID        string   `json:"sessionId"`
	MemberID         string   `json:"memberId"`
}

func (s *Server) issueWaitinglistReservation(w http.ResponseWriter, r *http.Request) {
	var req waitinglistRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	rts, ok := parseRoomTypes(req.DesiredRoomTypes)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown room type in desiredRoomTypes")
		return
	}
	rejection, err := s.svc.IssueWaitinglistReservation(r.Context(), chi.URLParam(r, "conference"), rts, req.SessionID, req.MemberID)
	s.writeOutcome(w, rejection, err)
}

func (s *Server) registerWaitinglistParticipant(w http.ResponseWriter, r *http.Request) {
	var req waitinglistRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	rts, ok := parseRoomTypes(req.DesiredRoomTypes)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown room type in desiredRoomTypes")
		return
	}
	rejection, err := s.svc.RegisterWaitinglistParticipant(r.Context(), chi.URLParam(r, "conference"), rts, req.SessionID, req.MemberID)
	s.writeOutcome(w, rejection, err)
}

type promoteRequest struct {
	RoomType string `json:"roomType"`
	Duration int    `json:"duration"`
}

func (s *Server) promoteFromWaitinglist(w http.ResponseWriter, r *http.Request) {
	var req promoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	rt, ok := parseRoomType(req.RoomType)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown room type: "+req.RoomType)
		return
	}
	rejection, err := s.svc.FromWaitinglistToParticipant(r.Context(), chi.URLParam(r, "conference"), rt, req.Duration, chi.URLParam(r, "memberID"))
	s.writeOutcome(w, rejection, err)
}

func (s *Server) removeParticipant(w http.ResponseWriter, r *http.Request) {
	rt, ok := parseRoomType(r.URL.Query().Get("roomType"))
	if !ok {
		writeError(w, http.StatusBadRequest, "missing or unknown roomType query parameter")
		return
	}
	rejection, err := s.svc.RemoveParticipant(r.Context(), chi.URLParam(r, "conference"), rt, chi.URLParam(r, "memberID"))
	s.writeOutcome(w, rejection, err)
}

func (s *Server) removeWaitinglistParticipant(w http.ResponseWriter, r *http.Request) {
	rejection, err := s.svc.RemoveWaitinglistParticipant(r.Context(), chi.URLParam(r, "conference"), chi.URLParam(r, "memberID"))
	s.writeOutcome(w, rejection, err)
}

type roomTypeRequest struct {
	RoomType string `json:"roomType"`
}

func (s *Server) moveParticipant(w http.ResponseWriter, r *http.Request) {
	var req roomTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	rt, ok := parseRoomType(req.RoomType)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown room type: "+req.RoomType)
		return
	}
	rejection, err := s.svc.MoveParticipantToNewRoomType(r.Context(), chi.URLParam(r, "conference"), rt, chi.URLParam(r, "memberID"))
	s.writeOutcome(w, rejection, err)
}

type durationRequest struct {
	Duration int `json:"duration"`
}

func (s *Server) setDuration(w http.ResponseWriter, r *http.Request) {
	var req durationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	rejection, err := s.svc.SetNewDurationForParticipant(r.Context(), chi.URLParam(r, "conference"), req.Duration, chi.URLParam(r, "memberID"))
	s.writeOutcome(w, rejection, err)
}

type desiredRoomTypesRequest struct {
	DesiredRoomTypes []string `json:"desiredRoomTypes"`
}

func (s *Server) changeDesiredRoomTypes(w http.ResponseWriter, r *http.Request) {
	var req desiredRoomTypesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	rts, ok := parseRoomTypes(req.DesiredRoomTypes)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown room type in desiredRoomTypes")
		return
	}
	rejection, err := s.svc.ChangeDesiredRoomTypes(r.Context(), chi.URLParam(r, "conference"), rts, chi.URLParam(r, "memberID"))
	s.writeOutcome(w, rejection, err)
}

// === Rooms ===

type pairRequest struct {
	Participant1ID string `json:"participant1Id"`
	Participant2ID string `json:"participant2Id"`
}

func (s *Server) addRoomPair(w http.ResponseWriter, r *http.Request) {
	var req pairRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	rt, ok := parseRoomType(chi.URLParam(r, "roomType"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown room type")
		return
	}
	rejection, err := s.svc.AddRoomPair(r.Context(), chi.URLParam(r, "conference"), rt, req.Participant1ID, req.Participant2ID)
	s.writeOutcome(w, rejection, err)
}

func (s *Server) removeRoomPair(w http.ResponseWriter, r *http.Request) {
	var req pairRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	rt, ok := parseRoomType(chi.URLParam(r, "roomType"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown room type")
		return
	}
	rejection, err := s.svc.RemoveRoomPair(r.Context(), chi.URLParam(r, "conference"), rt, req.Participant1ID, req.Participant2ID)
	s.writeOutcome(w, rejection, err)
}

// === Queries ===

type conferenceResponse struct {
	Version     int64                   `json:"version"`
	RoomOptions []roomOptionResponse    `json:"roomOptions"`
	Occupancy   map[string]int          `json:"occupancy"`
	Waitinglist map[string][]memberInfo `json:"waitinglist"`
}

type roomOptionResponse struct {
	RoomType         string `json:"roomType"`
	Quota            int    `json:"quota"`
	Full             bool   `json:"full"`
	RegistrationOpen bool   `json:"registrationOpen"`
}

type memberInfo struct {
	MemberID string    `json:"memberId"`
	JoinedAt time.Time `json:"joinedAt"`
}

func (s *Server) getConference(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.View(r.Context(), chi.URLParam(r, "conference"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := conferenceResponse{
		Version:     view.Version,
		Occupancy:   map[string]int{},
		Waitinglist: map[string][]memberInfo{},
	}
	for _, opt := range view.AllRoomOptions() {
		resp.RoomOptions = append(resp.RoomOptions, roomOptionResponse{
			RoomType:         string(opt.RoomType),
			Quota:            opt.Quota,
			Full:             opt.Full,
			RegistrationOpen: opt.RegistrationOpen,
		})
	}
	for rt, n := range view.Registration.OccupancyByRoomType() {
		resp.Occupancy[string(rt)] = n
	}
	for _, rt := range events.AllRoomTypes() {
		for _, p := range view.Registration.WaitinglistParticipantsFor(rt) {
			resp.Waitinglist[string(rt)] = append(resp.Waitinglist[string(rt)], memberInfo{
				MemberID: p.MemberID,
				JoinedAt: p.JoinedWaitinglist,
			})
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type expirationResponse struct {
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Server) reservationExpiration(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.View(r.Context(), chi.URLParam(r, "conference"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sessionID := chi.URLParam(r, "sessionID")
	expiresAt, ok := view.ReservationExpiration(sessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "no valid reservation for session")
		return
	}
	writeJSON(w, http.StatusOK, expirationResponse{SessionID: sessionID, ExpiresAt: expiresAt})
}

type roomsResponse struct {
	RoomType     string       `json:"roomType"`
	Participants []memberInfo `json:"participants"`
	Pairs        []pairInfo   `json:"pairs"`
	Unpaired     []string     `json:"unpaired"`
}

type pairInfo struct {
	Participant1ID string `json:"participant1Id"`
	Participant2ID string `json:"participant2Id"`
}

func (s *Server) getRooms(w http.ResponseWriter, r *http.Request) {
	rt, ok := parseRoomType(chi.URLParam(r, "roomType"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown room type")
		return
	}
	view, err := s.svc.View(r.Context(), chi.URLParam(r, "conference"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := roomsResponse{
		RoomType: string(rt),
		Unpaired: view.ParticipantsWithoutRoomIn(rt),
	}
	for _, p := range view.Registration.ParticipantsIn(rt) {
		resp.Participants = append(resp.Participants, memberInfo{MemberID: p.MemberID, JoinedAt: p.JoinedAt})
	}
	for _, pair := range view.Rooms.PairsFor(rt) {
		resp.Pairs = append(resp.Pairs, pairInfo{Participant1ID: pair.ParticipantA, Participant2ID: pair.ParticipantB})
	}

	writeJSON(w, http.StatusOK, resp)
}
