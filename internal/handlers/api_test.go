package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rental-backoffice/internal/auth"
	"rental-backoffice/internal/handlers"
	"rental-backoffice/internal/lease"
	"rental-backoffice/internal/router"
	"rental-backoffice/internal/store"
)

type testAPI struct {
	engine *gin.Engine
	db     *gorm.DB
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))

	users := store.NewUserStore(db)
	properties := store.NewPropertyStore(db)
	tenants := store.NewTenantStore(db)
	leases := store.NewLeaseStore(db)
	maintenance := store.NewMaintenanceStore(db)
	engine := lease.NewEngine(leases)
	jwt := auth.NewManager("test-secret", time.Hour)

	r := router.Setup(router.Handlers{
		Auth:        handlers.NewAuthHandler(users, jwt),
		Properties:  handlers.NewPropertyHandler(properties),
		Tenants:     handlers.NewTenantHandler(tenants, properties),
		Leases:      handlers.NewLeaseHandler(leases, properties, tenants, engine),
		Maintenance: handlers.NewMaintenanceHandler(maintenance, properties),
	}, jwt)

	return &testAPI{engine: r, db: db}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Success bool                   `json:"success"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

func (a *testAPI) registerAndLogin(t *testing.T, phone string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Owner", "phone": phone, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"phone": phone, "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decodeData(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (a *testAPI) createProperty(t *testing.T, token, name string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/properties", token, gin.H{
		"name": name, "address": "1 Test Street", "type": "house", "monthlyRent": "1000.00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id, _ := decodeData(t, w)["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func (a *testAPI) createTenant(t *testing.T, token, propertyID string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/tenants", token, gin.H{
		"name": "Jane Doe", "phone": "0788300000",
		"idNumber": "1199880012345678", "propertyId": propertyID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id, _ := decodeData(t, w)["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func day(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format("2006-01-02")
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t)

	token := api.registerAndLogin(t, "0788400001")

	// Duplicate registration conflicts.
	w := api.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Owner", "phone": "0788400001", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Wrong password is rejected without leaking which part was wrong.
	w = api.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"phone": "0788400001", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(t, http.MethodGet, "/api/auth/profile", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLeaseCreateConflict(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "0788400002")
	propertyID := api.createProperty(t, token, "Unit A")
	tenantID := api.createTenant(t, token, propertyID)

	payload := gin.H{
		"propertyId": propertyID, "tenantId": tenantID,
		"startDate": day(0), "endDate": day(365), "monthlyRent": "1200.00",
	}
	w := api.do(t, http.MethodPost, "/api/leases", token, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// One active lease per property.
	w = api.do(t, http.MethodPost, "/api/leases", token, payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	// The leased property is no longer available.
	w = api.do(t, http.MethodGet, "/api/properties/"+propertyID+"/availability", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	available, present := decodeData(t, w)["isAvailable"].(bool)
	require.True(t, present)
	assert.False(t, available)
}

func TestLeaseOwnershipScoping(t *testing.T) {
	api := newTestAPI(t)
	ownerToken := api.registerAndLogin(t, "0788400003")
	intruderToken := api.registerAndLogin(t, "0788400004")

	propertyID := api.createProperty(t, ownerToken, "Unit B")
	tenantID := api.createTenant(t, ownerToken, propertyID)

	// Another owner cannot lease a property they do not own; the response
	// is indistinguishable from the property not existing.
	w := api.do(t, http.MethodPost, "/api/leases", intruderToken, gin.H{
		"propertyId": propertyID, "tenantId": tenantID,
		"startDate": day(0), "endDate": day(365), "monthlyRent": "1200.00",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(t, http.MethodPost, "/api/leases", ownerToken, gin.H{
		"propertyId": propertyID, "tenantId": tenantID,
		"startDate": day(0), "endDate": day(365), "monthlyRent": "1200.00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	leaseID, _ := decodeData(t, w)["id"].(string)

	w = api.do(t, http.MethodGet, "/api/leases/"+leaseID, intruderToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckExpiredEndpoint(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "0788400005")
	propertyID := api.createProperty(t, token, "Unit C")
	tenantID := api.createTenant(t, token, propertyID)

	// A lease that already ended; the sweep should transition it.
	w := api.do(t, http.MethodPost, "/api/leases", token, gin.H{
		"propertyId": propertyID, "tenantId": tenantID,
		"startDate": day(-365), "endDate": day(-1), "monthlyRent": "900.00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(t, http.MethodPost, "/api/leases/check-expired", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.EqualValues(t, 1, data["updatedCount"])
	expired, _ := data["expiredLeases"].([]interface{})
	assert.Len(t, expired, 1)

	// Running it again is a no-op.
	w = api.do(t, http.MethodPost, "/api/leases/check-expired", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decodeData(t, w)["updatedCount"])
}

func TestExpiringSoonEndpoint(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "0788400006")
	propertyID := api.createProperty(t, token, "Unit D")
	tenantID := api.createTenant(t, token, propertyID)

	w := api.do(t, http.MethodPost, "/api/leases", token, gin.H{
		"propertyId": propertyID, "tenantId": tenantID,
		"startDate": day(-300), "endDate": day(10), "monthlyRent": "1100.00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(t, http.MethodGet, "/api/leases/expiring-soon", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var within30 struct {
		Data []interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &within30))
	assert.Len(t, within30.Data, 1)

	// A tighter horizon excludes it.
	w = api.do(t, http.MethodGet, "/api/leases/expiring-soon?days=5", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var within5 struct {
		Data []interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &within5))
	assert.Empty(t, within5.Data)
}

func TestMonthlyRevenueEndpoint(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "0788400007")
	propertyID := api.createProperty(t, token, "Unit E")
	tenantID := api.createTenant(t, token, propertyID)

	w := api.do(t, http.MethodPost, "/api/leases", token, gin.H{
		"propertyId": propertyID, "tenantId": tenantID,
		"startDate": day(0), "endDate": day(365), "monthlyRent": "1500.00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(t, http.MethodGet, fmt.Sprintf("/api/leases/revenue/monthly?year=%d&month=%d", time.Now().Year(), int(time.Now().Month())), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, "1500", data["totalRevenue"])
	assert.EqualValues(t, 1, data["activeLeases"])
	breakdown, _ := data["revenueBreakdown"].([]interface{})
	assert.Len(t, breakdown, 1)
}

func TestPropertyDeleteBlockedByActiveLease(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "0788400008")
	propertyID := api.createProperty(t, token, "Unit F")
	tenantID := api.createTenant(t, token, propertyID)

	w := api.do(t, http.MethodPost, "/api/leases", token, gin.H{
		"propertyId": propertyID, "tenantId": tenantID,
		"startDate": day(0), "endDate": day(365), "monthlyRent": "1000.00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(t, http.MethodDelete, "/api/properties/"+propertyID, token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTenantCreateOnLeasedProperty(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "0788400009")
	propertyID := api.createProperty(t, token, "Unit G")
	tenantID := api.createTenant(t, token, propertyID)

	w := api.do(t, http.MethodPost, "/api/leases", token, gin.H{
		"propertyId": propertyID, "tenantId": tenantID,
		"startDate": day(0), "endDate": day(365), "monthlyRent": "1000.00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The property now has an active lease, so it cannot take a new tenant.
	w = api.do(t, http.MethodPost, "/api/tenants", token, gin.H{
		"name": "John Doe", "phone": "0788300001",
		"idNumber": "1199880012345679", "propertyId": propertyID,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
