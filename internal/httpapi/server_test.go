package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softwerkskammer/Agora-sub003/core/es"
	"github.com/softwerkskammer/Agora-sub003/core/service"
)

func newTestAPI(t *testing.T) http.Handler {
	t.Helper()
	svc := service.New(es.NewInMemoryStore())
	return NewServer(svc).Router(nil)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func setupConference(t *testing.T, h http.Handler) {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/conferences/socrates-2026/", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/conferences/socrates-2026/quota", quotaRequest{RoomType: "single", Quota: 2})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/conferences/socrates-2026/registration/open", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHealth(t *testing.T) {
	h := newTestAPI(t)
	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReserveAndRegisterOverHTTP(t *testing.T) {
	h := newTestAPI(t)
	setupConference(t, h)

	rec := doJSON(t, h, http.MethodPost, "/conferences/socrates-2026/reservations", reservationRequest{
		RoomType: "single", Duration: 2, SessionID: "s1", MemberID: "m1",
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/conferences/socrates-2026/reservations/s1/expiration", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var exp expirationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &exp))
	assert.Equal(t, "s1", exp.SessionID)
	assert.False(t, exp.ExpiresAt.IsZero())

	rec = doJSON(t, h, http.MethodPost, "/conferences/socrates-2026/participants", reservationRequest{
		RoomType: "single", Duration: 2, SessionID: "s1", MemberID: "m1",
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/conferences/socrates-2026/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view conferenceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 1, view.Occupancy["single"])
}

func TestRejectionMapsTo409(t *testing.T) {
	h := newTestAPI(t)
	setupConference(t, h)

	// Quota 2; a third reservation bounces.
	for _, s := range []string{"s1", "s2"} {
		rec := doJSON(t, h, http.MethodPost, "/conferences/socrates-2026/reservations", reservationRequest{
			RoomType: "single", Duration: 2, SessionID: s, MemberID: "m-" + s,
		})
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	rec := doJSON(t, h, http.MethodPost, "/conferences/socrates-2026/reservations", reservationRequest{
		RoomType: "single", Duration: 2, SessionID: "s3", MemberID: "m3",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	var rej service.Rejection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rej))
	assert.Equal(t, "message.title.problem", rej.TitleKey)
	assert.Equal(t, "activities.full_resource", rej.BodyKey)
}

func TestBadRequests(t *testing.T) {
	h := newTestAPI(t)
	setupConference(t, h)

	t.Run("unknown room type", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/conferences/socrates-2026/reservations", reservationRequest{
			RoomType: "penthouse", SessionID: "s1", MemberID: "m1",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/conferences/socrates-2026/reservations", bytes.NewBufferString("{nope"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/conferences/socrates-2026/reservations", bytes.NewBufferString(`{"bogus":true}`))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing roomType on participant delete", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodDelete, "/conferences/socrates-2026/participants/m1", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWaitinglistOverHTTP(t *testing.T) {
	h := newTestAPI(t)
	setupConference(t, h)

	rec := doJSON(t, h, http.MethodPost, "/conferences/socrates-2026/waitinglist/reservations", waitinglistRequest{
		DesiredRoomTypes: []string{"single"}, SessionID: "s1", MemberID: "m1",
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodPost, "/conferences/socrates-2026/waitinglist/participants", waitinglistRequest{
		DesiredRoomTypes: []string{"single"}, SessionID: "s1", MemberID: "m1",
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/conferences/socrates-2026/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view conferenceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Waitinglist["single"], 1)
	assert.Equal(t, "m1", view.Waitinglist["single"][0].MemberID)

	rec = doJSON(t, h, http.MethodPost, "/conferences/socrates-2026/waitinglist/m1/promote", promoteRequest{
		RoomType: "single", Duration: 3,
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
}

func TestRoomsOverHTTP(t *testing.T) {
	h := newTestAPI(t)
	setupConference(t, h)

	rec := doJSON(t, h, http.MethodPost, "/conferences/socrates-2026/rooms/bed_in_double/pairs", pairRequest{
		Participant1ID: "a", Participant2ID: "b",
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/conferences/socrates-2026/rooms/bed_in_double", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp roomsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Pairs, 1)
	assert.Equal(t, "a", resp.Pairs[0].Participant1ID)
	assert.Equal(t, "b", resp.Pairs[0].Participant2ID)

	rec = doJSON(t, h, http.MethodPost, "/conferences/socrates-2026/rooms/bed_in_double/pairs", pairRequest{
		Participant1ID: "a", Participant2ID: "a",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "memory", cfg.Backend)
	assert.Equal(t, 0, cfg.MaxRetries)
}
