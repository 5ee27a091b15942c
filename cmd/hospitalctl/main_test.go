package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"hospital-medicine-api/pkg/dto"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stored() dto.HospitalResponse {
	return dto.HospitalResponse{
		ID:          3,
		Name:        "City Hospital",
		Address:     "1 Main st",
		Profile:     "pediatrics",
		OpenDate:    "1998-04-12T08:00:00",
		Departments: 4,
		Beds:        120,
		IsChildDept: true,
		Medicines: dto.MedicineResponse{
			ID:             9,
			Name:           "Paracetamol",
			Form:           "syrup",
			Manufacturer:   "GSK",
			ProductionDate: "2025-01-01T00:00:00",
			Expiration:     "2027-01-01T00:00:00",
			Price:          "3.99",
		},
	}
}

// fakeAPI records the last request body and answers like the server would
type fakeAPI struct {
	lastMethod string
	lastBody   dto.HospitalRequest
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/auth/token" {
		_, _ = w.Write([]byte("minted-token"))
		return
	}
	if r.Header.Get("Authorization") != "Bearer minted-token" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if r.URL.Path == "/hospitals/404" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	f.lastMethod = r.Method
	resp := stored()
	if r.Method == http.MethodPost || r.Method == http.MethodPut {
		_ = json.NewDecoder(r.Body).Decode(&f.lastBody)
		resp.Name = f.lastBody.Name
		resp.Beds = f.lastBody.Beds
	}

	w.Header().Set("Content-Type", "application/json")
	if r.URL.Path == "/hospitals" && r.Method == http.MethodGet {
		_ = json.NewEncoder(w).Encode([]dto.HospitalResponse{resp})
		return
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func run(t *testing.T, api *fakeAPI, args ...string) (string, error) {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	cmd := newRootCmd(viper.New())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", srv.URL, "--username", "alice", "--password", "pw"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestLogin(t *testing.T) {
	out, err := run(t, &fakeAPI{}, "login")
	require.NoError(t, err)
	assert.Equal(t, "minted-token\n", out)
}

func TestListRendersTable(t *testing.T) {
	out, err := run(t, &fakeAPI{}, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "City Hospital")
	assert.Contains(t, out, "Paracetamol")
	assert.Contains(t, out, "3.99")
}

func TestGetDetailAndJSON(t *testing.T) {
	out, err := run(t, &fakeAPI{}, "get", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Manufacturer:")
	assert.Contains(t, out, "GSK")

	out, err = run(t, &fakeAPI{}, "get", "3", "--json")
	require.NoError(t, err)
	var got dto.HospitalResponse
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, stored(), got)
}

func TestGetMissing(t *testing.T) {
	_, err := run(t, &fakeAPI{}, "get", "404")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hospital 404 not found")

	_, err = run(t, &fakeAPI{}, "get", "abc")
	require.Error(t, err)
}

func TestUpdateKeepsUnsetFields(t *testing.T) {
	api := &fakeAPI{}
	_, err := run(t, api, "update", "3", "--beds", "10", "--child-dept=false")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, api.lastMethod)
	want := stored().Request()
	want.Beds = 10
	want.IsChildDept = false
	assert.Equal(t, want, api.lastBody)
}

func TestCreateFromFileWithOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hospital.json")
	raw, err := json.Marshal(stored().Request())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	api := &fakeAPI{}
	out, err := run(t, api, "create", "--file", path, "--name", "North Clinic")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, api.lastMethod)
	assert.Equal(t, "North Clinic", api.lastBody.Name)
	assert.Equal(t, "3.99", api.lastBody.Medicines.Price)
	assert.Contains(t, out, "North Clinic")
}

func TestDelete(t *testing.T) {
	api := &fakeAPI{}
	out, err := run(t, api, "delete", "3")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, api.lastMethod)
	assert.Equal(t, "Deleted hospital 3 (City Hospital)\n", out)
}
