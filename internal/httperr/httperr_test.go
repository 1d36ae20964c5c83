package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf_UnwrapsThroughFmtErrorf(t *testing.T) {
	err := fmt.Errorf("create: %w", SlotUnavailable("time_conflict", "Slot taken."))

	assert.Equal(t, KindSlotUnavailable, KindOf(err))
	assert.True(t, IsBusiness(err, "time_conflict"))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestIsExclusionConflict(t *testing.T) {
	assert.True(t, IsExclusionConflict(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})))
	assert.False(t, IsExclusionConflict(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsExclusionConflict(errors.New("x")))
}

func TestStatusFor_DistinctOutcomes(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, StatusFor(KindAuthRequired))
	assert.Equal(t, http.StatusForbidden, StatusFor(KindPermissionDenied))
	assert.Equal(t, http.StatusNotFound, StatusFor(KindNotFound))
	assert.Equal(t, http.StatusBadRequest, StatusFor(KindValidation))
	assert.Equal(t, http.StatusBadRequest, StatusFor(KindSlotUnavailable))
	assert.Equal(t, http.StatusBadGateway, StatusFor(KindExternal))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(KindInternal))
}

func TestRespond_WritesStructuredBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Respond(c, NotFoundErr("service_not_found", "Service not found."))

	require.Equal(t, http.StatusNotFound, w.Code)
	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "service_not_found", body.Code)
	assert.Equal(t, KindNotFound, body.Kind)
	assert.Equal(t, "Service not found.", body.Message)
}

func TestRespond_HidesUnclassifiedErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Respond(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}
