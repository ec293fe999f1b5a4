package endpoint

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pijatjogja/pijatjogja-api/model"
)

func TestValidateToken_Success(t *testing.T) {
	r, db := setupEndpointTest(t)

	_, token := loginTestAdmin(t, r, db)

	w, response, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodGet,
		registerPath: "/token/validate",
		requestPath:  "/token/validate",
		handler:      ValidateToken,
		headers:      map[string]string{"session-token": token},
	})
	assert.NoError(t, err)
	assertSuccessResponse(t, w, response)
}

func TestValidateToken_MissingToken(t *testing.T) {
	r, db := setupEndpointTest(t)
	_ = db
	w, _, _ := doRequestWithHandler(r, requestSpec{method: http.MethodGet, registerPath: "/token/validate", requestPath: "/token/validate", handler: ValidateToken})
	assertStatus(t, w, http.StatusUnauthorized)
}

func TestValidateToken_ExpiredSession(t *testing.T) {
	r, db := setupEndpointTest(t)

	admin := createTestAdmin(db, t, "admin@pijatjogja.id", "supersecret")
	session := model.Session{
		AdminID:      admin.ID,
		SessionToken: "expired-token",
		ExpiresAt:    time.Now().Add(-time.Hour),
	}
	assert.NoError(t, db.Create(&session).Error)

	w, _, _ := doRequestWithHandler(r, requestSpec{
		method:       http.MethodGet,
		registerPath: "/token/validate",
		requestPath:  "/token/validate",
		handler:      ValidateToken,
		headers:      map[string]string{"session-token": "expired-token"},
	})
	assertStatus(t, w, http.StatusUnauthorized)
}
