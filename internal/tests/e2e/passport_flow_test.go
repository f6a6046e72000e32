package e2e

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HariStrange/drive-Vault/domain"
)

func TestPassportFlow(t *testing.T) {
	s := NewTestServer(t)
	_, email := s.RegisterVerified(t, domain.RoleStudent)
	token := s.Login(t, email, testPassword)

	resp := s.JSON(t, http.MethodGet, "/passport/me", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Status)

	resp = s.Multipart(t, http.MethodPost, "/passport", token, map[string]string{
		"full_name":       "Sam Park",
		"passport_number": "P1234567",
		"date_of_birth":   "1999-04-12",
		"address":         "1 Harbour Rd",
	}, Upload{Field: "passport_photo", Name: "photo.png", Content: pngBytes(t)})
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)
	passport := resp.Object("passport")
	photo := passport["passport_photo"].(string)

	status, _ := s.Get(t, "/uploads/passports/"+photo)
	assert.Equal(t, http.StatusOK, status)

	dup := s.Multipart(t, http.MethodPost, "/passport", token, map[string]string{"full_name": "Again"})
	assert.Equal(t, http.StatusConflict, dup.Status)

	t.Run("partial update keeps untouched columns", func(t *testing.T) {
		resp := s.Multipart(t, http.MethodPut, "/passport/me", token,
			map[string]string{"full_name": "Sam J. Park", "address": ""},
			Upload{Field: "passport_photo", Name: "new.png", Content: pngBytes(t)})
		require.Equal(t, http.StatusOK, resp.Status, resp.Body)

		updated := resp.Object("passport")
		assert.Equal(t, "Sam J. Park", updated["full_name"])
		assert.Equal(t, "P1234567", updated["passport_number"])
		assert.Nil(t, updated["address"])
		assert.NotEqual(t, photo, updated["passport_photo"])

		status, _ := s.Get(t, "/uploads/passports/"+photo)
		assert.Equal(t, http.StatusNotFound, status, "replaced photo is removed")
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		resp := s.Multipart(t, http.MethodPut, "/passport/me", token, nil)
		assert.Equal(t, http.StatusBadRequest, resp.Status)
		assert.Equal(t, "No fields to update", resp.String("error"))
	})

	t.Run("bad date is rejected", func(t *testing.T) {
		resp := s.Multipart(t, http.MethodPut, "/passport/me", token, map[string]string{"date_of_expiry": "12/31/2030"})
		assert.Equal(t, http.StatusBadRequest, resp.Status)
	})

	id := uint(passport["id"].(float64))
	denied := s.JSON(t, http.MethodDelete, fmt.Sprintf("/passport/%d", id), token, nil)
	assert.Equal(t, http.StatusForbidden, denied.Status)

	admin := s.CreateAdmin(t)
	adminToken := s.Login(t, admin.Email, testPassword)

	all := s.JSON(t, http.MethodGet, "/passport/all", adminToken, nil)
	require.Equal(t, http.StatusOK, all.Status)
	rows := all.Body["passports"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, email, rows[0].(map[string]interface{})["email"])

	del := s.JSON(t, http.MethodDelete, fmt.Sprintf("/passport/%d", id), adminToken, nil)
	require.Equal(t, http.StatusOK, del.Status, del.Body)
	again := s.JSON(t, http.MethodDelete, fmt.Sprintf("/passport/%d", id), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, again.Status)
}

func TestPolicyFlow_AdminGrantsRoute(t *testing.T) {
	s := NewTestServer(t)
	admin := s.CreateAdmin(t)
	adminToken := s.Login(t, admin.Email, testPassword)
	_, email := s.RegisterVerified(t, domain.RoleDriver)
	token := s.Login(t, email, testPassword)

	before := s.JSON(t, http.MethodGet, "/passport/all", token, nil)
	require.Equal(t, http.StatusForbidden, before.Status)

	grant := s.JSON(t, http.MethodPost, "/admin/policies", adminToken,
		map[string]string{"role": "driver", "resource": "/passport/all", "action": "GET"})
	require.Equal(t, http.StatusNoContent, grant.Status, grant.Body)

	after := s.JSON(t, http.MethodGet, "/passport/all", token, nil)
	assert.Equal(t, http.StatusOK, after.Status)

	revoke := s.JSON(t, http.MethodDelete, "/admin/policies", adminToken,
		map[string]string{"role": "driver", "resource": "/passport/all", "action": "GET"})
	require.Equal(t, http.StatusNoContent, revoke.Status)
	assert.Equal(t, http.StatusForbidden, s.JSON(t, http.MethodGet, "/passport/all", token, nil).Status)
}
