package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/employee"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func employeeRouter(h EmployeeHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/faces", h.Faces)
	r.Get("/employees/{id}", h.Get)
	r.Post("/employees", h.Create)
	r.Put("/employees/{id}", h.Update)
	r.Put("/employees/{id}/face", h.UpdateFace)
	return r
}

func TestEmployeeHandler_Faces_Shape(t *testing.T) {
	svc := &stubEmployeeService{faces: []employee.FaceResponse{
		{ID: "e1", FullName: "Budi", EmployeeNumber: "1001", Descriptor: []float64{0.1, 0.2}},
	}}
	rec := httptest.NewRecorder()

	employeeRouter(NewEmployeeHandler(svc)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/faces", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.JSONEq(t, `true`, string(body["success"]))
	assert.JSONEq(t, `[{"id":"e1","nama":"Budi","nip":"1001","descriptor":[0.1,0.2]}]`, string(body["faces"]))
	assert.NotContains(t, body, "data")
}

func TestEmployeeHandler_Faces_EmptyList(t *testing.T) {
	svc := &stubEmployeeService{faces: []employee.FaceResponse{}}
	rec := httptest.NewRecorder()

	employeeRouter(NewEmployeeHandler(svc)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/faces", nil))

	assert.JSONEq(t, `{"success":true,"faces":[]}`, rec.Body.String())
}

func TestEmployeeHandler_Create(t *testing.T) {
	svc := &stubEmployeeService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"nama":"Budi","nip":"1001","jabatan":"staff","tim":"alpha"}`))

	employeeRouter(NewEmployeeHandler(svc)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Budi", svc.created.FullName)
	assert.Equal(t, "staff", svc.created.Role)
	require.NotNil(t, svc.created.Team)
	assert.Equal(t, "alpha", *svc.created.Team)
}

func TestEmployeeHandler_Create_DuplicateNumber(t *testing.T) {
	svc := &stubEmployeeService{createErr: employee.ErrEmployeeNumberExists}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"nama":"Budi","nip":"1001","jabatan":"staff"}`))

	employeeRouter(NewEmployeeHandler(svc)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestEmployeeHandler_Create_InvalidJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`not json`))

	employeeRouter(NewEmployeeHandler(&stubEmployeeService{})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmployeeHandler_UpdateUsesPathID(t *testing.T) {
	svc := &stubEmployeeService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/employees/e42", strings.NewReader(`{"id":"ignored","jabatan":"manager"}`))

	employeeRouter(NewEmployeeHandler(svc)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "e42", svc.updated.ID)
	require.NotNil(t, svc.updated.Role)
	assert.Equal(t, "manager", *svc.updated.Role)
}

func TestEmployeeHandler_UpdateFace(t *testing.T) {
	svc := &stubEmployeeService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/employees/e7/face", strings.NewReader(`{"descriptor":[0.5,0.25]}`))

	employeeRouter(NewEmployeeHandler(svc)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "e7", svc.face.ID)
	assert.Equal(t, []float64{0.5, 0.25}, svc.face.Descriptor)
}

func TestEmployeeHandler_GetNotFound(t *testing.T) {
	rec := httptest.NewRecorder()

	employeeRouter(NewEmployeeHandler(&stubEmployeeService{})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
